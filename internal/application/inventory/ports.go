package inventory

import (
	"context"

	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad movimiento + proyección.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// LowStockEvent se emite cuando un movimiento deja la cantidad en o por
// debajo del umbral mínimo del producto.
type LowStockEvent struct {
	ProductID       string
	ProductName     string
	CurrentQuantity int64
	MinLevel        int64
}

// LowStockNotifier colaborador externo de notificaciones. La entrega es
// best-effort: el ledger la dispara fuera de la transacción y nunca deja que
// un fallo del notificador afecte el movimiento.
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, ev LowStockEvent) error
}
