package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, kind, quantity_delta, document_type,
	document_id, reversal_of, notes, created_at, created_by`

// StockMovementRepo implementación del ledger sobre PostgreSQL (usable con
// pool o tx). La tabla stock_movements solo tiene INSERT y SELECT: no existe
// camino de código que la actualice o borre.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento inmutable.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, kind, quantity_delta,
			document_type, document_id, reversal_of, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.Kind, m.QuantityDelta,
		nullable(m.DocumentType), nullable(m.DocumentID), nullable(m.ReversalOf),
		m.Notes, m.CreatedAt, nullable(m.CreatedBy),
	)
	if err != nil {
		return mapError("create stock movement", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID; nil si no existe.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get stock movement", err)
	}
	return m, nil
}

// ListByProduct movimientos de un producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + `
		FROM stock_movements WHERE product_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, "list movements by product", productID, limit, offset)
}

// ListByDocument movimientos producidos por un documento, en orden de
// creación (el orden importa para la cancelación: se revierte cada original).
func (r *StockMovementRepo) ListByDocument(ctx context.Context, documentType, documentID string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + `
		FROM stock_movements WHERE document_type = $1 AND document_id = $2
		ORDER BY created_at, id`
	return r.list(ctx, query, "list movements by document", documentType, documentID)
}

// SumDeltaByProduct suma los deltas del historial completo de un producto.
// Base del chequeo de invariante proyección == suma del ledger.
func (r *StockMovementRepo) SumDeltaByProduct(ctx context.Context, productID string) (int64, error) {
	query := `SELECT COALESCE(SUM(quantity_delta), 0) FROM stock_movements WHERE product_id = $1`
	var sum int64
	if err := r.q.QueryRow(ctx, query, productID).Scan(&sum); err != nil {
		return 0, mapError("sum movement deltas", err)
	}
	return sum, nil
}

func (r *StockMovementRepo) list(ctx context.Context, query, op string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var docType, docID, reversalOf, createdBy *string
	err := row.Scan(
		&m.ID, &m.ProductID, &m.Kind, &m.QuantityDelta,
		&docType, &docID, &reversalOf, &m.Notes, &m.CreatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	m.DocumentType = deref(docType)
	m.DocumentID = deref(docID)
	m.ReversalOf = deref(reversalOf)
	m.CreatedBy = deref(createdBy)
	return &m, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
