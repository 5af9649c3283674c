package repository

import (
	"context"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// ProductRepository puerto de persistencia de productos.
//
// GetForUpdate y AdjustStock existen solo para el Stock Ledger: GetForUpdate
// bloquea la fila (SELECT FOR UPDATE) y AdjustStock aplica el delta sobre la
// cantidad cacheada devolviendo el valor resultante. Ningún otro componente
// escribe stock_quantity; Update no la toca.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	AdjustStock(ctx context.Context, id string, delta int64) (int64, error)
}
