package repository

import (
	"context"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// DocumentRepository puerto de cabeceras y líneas de documento. Las líneas se
// crean con su cabecera; ReplaceLines existe solo para UpdateDocument, que
// reemplaza el juego completo de líneas (las líneas son inmutables una a una).
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	CreateLine(ctx context.Context, line *entity.DocumentLine) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	GetByReference(ctx context.Context, referenceNumber string) (*entity.Document, error)
	ListLines(ctx context.Context, documentID string) ([]*entity.DocumentLine, error)
	List(ctx context.Context, docType, status string, limit, offset int) ([]*entity.Document, error)
	UpdateHeader(ctx context.Context, doc *entity.Document) error
	UpdateStatus(ctx context.Context, id, status string) error
	ReplaceLines(ctx context.Context, documentID string, lines []*entity.DocumentLine) error
}
