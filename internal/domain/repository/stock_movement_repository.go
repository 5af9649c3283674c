package repository

import (
	"context"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// StockMovementRepository puerto del ledger append-only. No hay Update ni
// Delete: las correcciones son movimientos nuevos que compensan.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByDocument(ctx context.Context, documentType, documentID string) ([]*entity.StockMovement, error)
	// SumDeltaByProduct recalcula la proyección desde el historial; se usa en
	// el chequeo de invariante, nunca en el camino de escritura.
	SumDeltaByProduct(ctx context.Context, productID string) (int64, error)
}
