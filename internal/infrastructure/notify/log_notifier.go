package notify

import (
	"context"

	"github.com/tu-usuario/retail-pos/internal/application/inventory"
	"github.com/tu-usuario/retail-pos/pkg/logger"
)

var _ inventory.LowStockNotifier = (*LogNotifier)(nil)

// LogNotifier degradación cuando Redis no está habilitado: la alerta de stock
// bajo queda en el log estructurado.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador de log.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// NotifyLowStock escribe la alerta en el log.
func (n *LogNotifier) NotifyLowStock(_ context.Context, ev inventory.LowStockEvent) error {
	n.log.Warn().
		Str("product_id", ev.ProductID).
		Str("product", ev.ProductName).
		Int64("quantity", ev.CurrentQuantity).
		Int64("min_level", ev.MinLevel).
		Msg("stock bajo")
	return nil
}
