package repository

import (
	"context"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// SequenceRepository puerto del contador de consecutivos. Next incrementa y
// lee el contador del prefijo en un solo paso atómico del store (upsert con
// incremento); devuelve el valor recién emitido y el ancho de relleno
// configurado para el prefijo. Si el prefijo no existe se crea con
// defaultPadding y arranca en 1. List es solo diagnóstico: el estado de los
// contadores sin tocarlos.
type SequenceRepository interface {
	Next(ctx context.Context, prefix string, defaultPadding int) (value int64, padding int, err error)
	List(ctx context.Context) ([]*entity.SequenceCounter, error)
}
