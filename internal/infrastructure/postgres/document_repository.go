package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

const documentColumns = `id, type, reference_number, status, party_id,
	subtotal, document_discount, discount_amount, tax_amount, total_amount, notes,
	created_by, created_at, updated_at`

// DocumentRepo implementación de cabeceras y líneas sobre PostgreSQL (usable
// con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create persiste la cabecera. El UNIQUE sobre reference_number respalda al
// asignador: un duplicado aquí es un bug del contador, no un caso esperado.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	query := `
		INSERT INTO documents (id, type, reference_number, status, party_id,
			subtotal, document_discount, discount_amount, tax_amount, total_amount, notes,
			created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.Type, doc.ReferenceNumber, doc.Status, nullable(doc.PartyID),
		doc.Subtotal, doc.DocumentDiscount, doc.DiscountAmount, doc.TaxAmount, doc.TotalAmount, doc.Notes,
		nullable(doc.CreatedBy), doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return mapError("create document", err)
	}
	return nil
}

// CreateLine persiste una línea.
func (r *DocumentRepo) CreateLine(ctx context.Context, line *entity.DocumentLine) error {
	query := `
		INSERT INTO document_lines (id, document_id, product_id, quantity,
			unit_price, discount_percent, tax_percent, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	// product_id nulo: líneas de gasto, sin producto de catálogo.
	_, err := r.q.Exec(ctx, query,
		line.ID, line.DocumentID, nullable(line.ProductID), line.Quantity,
		line.UnitPrice, line.DiscountPercent, line.TaxPercent, line.LineTotal,
	)
	if err != nil {
		return mapError("create document line", err)
	}
	return nil
}

// GetByID obtiene la cabecera; nil si no existe. Las líneas se cargan aparte
// con ListLines.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get document")
}

// GetByReference obtiene la cabecera por número de referencia; nil si no existe.
func (r *DocumentRepo) GetByReference(ctx context.Context, referenceNumber string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE reference_number = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, referenceNumber), "get document by reference")
}

// ListLines líneas de un documento en orden de inserción.
func (r *DocumentRepo) ListLines(ctx context.Context, documentID string) ([]*entity.DocumentLine, error) {
	query := `
		SELECT id, document_id, product_id, quantity, unit_price,
			discount_percent, tax_percent, line_total
		FROM document_lines WHERE document_id = $1 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, mapError("list document lines", err)
	}
	defer rows.Close()
	var list []*entity.DocumentLine
	for rows.Next() {
		var l entity.DocumentLine
		var productID *string
		if err := rows.Scan(&l.ID, &l.DocumentID, &productID, &l.Quantity,
			&l.UnitPrice, &l.DiscountPercent, &l.TaxPercent, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan document line: %w", err)
		}
		l.ProductID = deref(productID)
		list = append(list, &l)
	}
	return list, rows.Err()
}

// List lista cabeceras filtrando por tipo y/o estado, más recientes primero.
func (r *DocumentRepo) List(ctx context.Context, docType, status string, limit, offset int) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE 1=1`
	args := []any{}
	if docType != "" {
		args = append(args, docType)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("list documents", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, doc)
	}
	return list, rows.Err()
}

// UpdateHeader actualiza los campos editables de la cabecera. Tipo, número de
// referencia y created_at/by son inmutables y no aparecen en el SET.
func (r *DocumentRepo) UpdateHeader(ctx context.Context, doc *entity.Document) error {
	query := `
		UPDATE documents
		SET party_id = $2, subtotal = $3, document_discount = $4,
			discount_amount = $5, tax_amount = $6, total_amount = $7,
			notes = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		doc.ID, nullable(doc.PartyID), doc.Subtotal, doc.DocumentDiscount,
		doc.DiscountAmount, doc.TaxAmount, doc.TotalAmount, doc.Notes, doc.UpdatedAt,
	)
	if err != nil {
		return mapError("update document header", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia solo el estado.
func (r *DocumentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE documents SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status)
	if err != nil {
		return mapError("update document status", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceLines borra y reinserta el juego completo de líneas de un documento
// (solo lo usa UpdateDocument; las líneas individuales son inmutables).
func (r *DocumentRepo) ReplaceLines(ctx context.Context, documentID string, lines []*entity.DocumentLine) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM document_lines WHERE document_id = $1`, documentID); err != nil {
		return mapError("replace document lines", err)
	}
	for _, line := range lines {
		if err := r.CreateLine(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *DocumentRepo) scanOne(row pgx.Row, op string) (*entity.Document, error) {
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(op, err)
	}
	return doc, nil
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	var partyID, createdBy *string
	err := row.Scan(
		&d.ID, &d.Type, &d.ReferenceNumber, &d.Status, &partyID,
		&d.Subtotal, &d.DocumentDiscount, &d.DiscountAmount, &d.TaxAmount, &d.TotalAmount, &d.Notes,
		&createdBy, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.PartyID = deref(partyID)
	d.CreatedBy = deref(createdBy)
	return &d, nil
}
