package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador de consecutivos sobre PostgreSQL (usable con pool o
// tx). Una fila por prefijo en document_sequences.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa y lee el contador del prefijo en un solo statement: el
// upsert toma el lock de fila y devuelve el valor recién emitido, así dos
// callers concurrentes se serializan en el store y jamás ven el mismo número.
// Nunca "leer la última referencia del historial, parsear e incrementar".
// Si el prefijo no existe, nace en 1 con el padding por defecto.
func (r *SequenceRepo) Next(ctx context.Context, prefix string, defaultPadding int) (int64, int, error) {
	query := `
		INSERT INTO document_sequences (prefix, last_value, padding, updated_at)
		VALUES ($1, 1, $2, now())
		ON CONFLICT (prefix)
		DO UPDATE SET last_value = document_sequences.last_value + 1, updated_at = now()
		RETURNING last_value, padding`
	var value int64
	var padding int
	if err := r.q.QueryRow(ctx, query, prefix, defaultPadding).Scan(&value, &padding); err != nil {
		return 0, 0, mapError("next sequence value", err)
	}
	return value, padding, nil
}

// List devuelve el estado de todos los contadores, ordenado por prefijo.
func (r *SequenceRepo) List(ctx context.Context) ([]*entity.SequenceCounter, error) {
	query := `SELECT prefix, last_value, padding, updated_at
		FROM document_sequences ORDER BY prefix`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, mapError("list sequences", err)
	}
	defer rows.Close()
	var list []*entity.SequenceCounter
	for rows.Next() {
		var c entity.SequenceCounter
		if err := rows.Scan(&c.Prefix, &c.LastValue, &c.Padding, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sequence counter: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
