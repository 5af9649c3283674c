package entity

import "time"

// Clases de movimiento de inventario. El signo del delta lo fija el
// coordinador según el tipo de documento; la clase solo describe la causa.
const (
	MovementKindInitialStock     = "initial_stock"
	MovementKindSale             = "sale"
	MovementKindPurchase         = "purchase"
	MovementKindSaleReturn       = "sale_return"
	MovementKindPurchaseReturn   = "purchase_return"
	MovementKindTransferOut      = "transfer_out"
	MovementKindTransferIn       = "transfer_in"
	MovementKindManualAdjustment = "manual_adjustment"
	MovementKindDamage           = "damage"
	MovementKindTheft            = "theft"
)

// ValidMovementKind verifica que la clase pertenezca al catálogo.
func ValidMovementKind(kind string) bool {
	switch kind {
	case MovementKindInitialStock, MovementKindSale, MovementKindPurchase,
		MovementKindSaleReturn, MovementKindPurchaseReturn,
		MovementKindTransferOut, MovementKindTransferIn,
		MovementKindManualAdjustment, MovementKindDamage, MovementKindTheft:
		return true
	}
	return false
}

// StockMovement es un hecho inmutable del ledger de inventario: se crea,
// nunca se actualiza ni se borra. Las correcciones son movimientos nuevos
// que compensan (ReversalOf apunta al original).
// Invariante del ledger: sum(QuantityDelta) por producto == Product.StockQuantity.
type StockMovement struct {
	ID            string
	ProductID     string
	Kind          string
	QuantityDelta int64  // firmado: positivo entra, negativo sale
	DocumentType  string // tipo del documento origen; vacío en ajustes puros
	DocumentID    string // ID del documento origen; vacío en ajustes puros
	ReversalOf    string // ID del movimiento que este compensa; vacío si no es reversa
	Notes         string
	CreatedAt     time.Time
	CreatedBy     string // UserID del actor
}
