// Package sequence implementa el asignador de consecutivos de documentos:
// números de referencia únicos y estrictamente crecientes por prefijo, aun
// bajo creación concurrente de documentos.
package sequence

import (
	"context"
	"fmt"
	"strings"

	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// DefaultPadding ancho por defecto del cero-relleno (SALE-000042).
const DefaultPadding = 6

// Allocator emite números de referencia con formato {PREFIX}-{valor con
// cero-relleno}. El incremento vive en el store como un upsert atómico, de
// modo que dos callers concurrentes jamás reciben el mismo valor; no se
// reserva nada fuera de la transacción, así que un rollback devuelve el
// consecutivo junto con todo lo demás.
type Allocator struct {
	seqRepo        repository.SequenceRepository
	defaultPadding int
}

// NewAllocator construye el asignador. padding <= 0 usa DefaultPadding.
func NewAllocator(seqRepo repository.SequenceRepository, padding int) *Allocator {
	if padding <= 0 {
		padding = DefaultPadding
	}
	return &Allocator{seqRepo: seqRepo, defaultPadding: padding}
}

// Allocate emite el siguiente número para el prefijo usando el repositorio
// con el que se construyó el asignador (atado al pool: transacción propia del
// statement). Para emitir dentro de una transacción mayor usar AllocateInTx.
func (a *Allocator) Allocate(ctx context.Context, prefix string) (string, error) {
	return a.AllocateInTx(ctx, a.seqRepo, prefix)
}

// AllocateInTx emite el siguiente número usando un repositorio atado a la
// transacción del caller: si esa transacción aborta, el incremento del
// contador se revierte con ella y no quedan referencias huérfanas.
func (a *Allocator) AllocateInTx(ctx context.Context, seqRepo repository.SequenceRepository, prefix string) (string, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		return "", domain.ErrInvalidInput
	}
	value, padding, err := seqRepo.Next(ctx, prefix, a.defaultPadding)
	if err != nil {
		return "", fmt.Errorf("consecutivo %s: %w: %w", prefix, domain.ErrAllocationUnavailable, err)
	}
	return Format(prefix, value, padding), nil
}

// Counters devuelve el estado de todos los contadores (diagnóstico: qué
// series existen y cuál fue el último número emitido de cada una).
func (a *Allocator) Counters(ctx context.Context) ([]*entity.SequenceCounter, error) {
	return a.seqRepo.List(ctx)
}

// Format arma el número de referencia. El valor puede desbordar el ancho de
// relleno (SALE-1000000 tras SALE-999999); el formato sigue siendo válido.
func Format(prefix string, value int64, padding int) string {
	if padding <= 0 {
		padding = DefaultPadding
	}
	return fmt.Sprintf("%s-%0*d", prefix, padding, value)
}
