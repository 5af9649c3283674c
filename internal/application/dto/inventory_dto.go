package dto

import "time"

// RegisterAdjustmentRequest body para POST /api/v1/inventory/movements:
// ajustes manuales, daños, robos y stock inicial (movimientos sin documento).
type RegisterAdjustmentRequest struct {
	ProductID     string `json:"product_id"`
	Kind          string `json:"kind"` // manual_adjustment, damage, theft, initial_stock
	QuantityDelta int64  `json:"quantity_delta"`
	Notes         string `json:"notes,omitempty"`
}

// MovementResponse un movimiento del ledger.
type MovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	Kind          string    `json:"kind"`
	QuantityDelta int64     `json:"quantity_delta"`
	DocumentType  string    `json:"document_type,omitempty"`
	DocumentID    string    `json:"document_id,omitempty"`
	ReversalOf    string    `json:"reversal_of,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     string    `json:"created_by,omitempty"`
}

// AdjustmentResponse resultado de registrar un movimiento: la cantidad
// resultante siempre vuelve al caller para que pueda advertir sobreventa.
type AdjustmentResponse struct {
	MovementID  string `json:"movement_id"`
	NewQuantity int64  `json:"new_quantity"`
}

// ProjectionResponse resultado del chequeo de consistencia del ledger.
type ProjectionResponse struct {
	ProductID      string `json:"product_id"`
	LedgerSum      int64  `json:"ledger_sum"`
	CachedQuantity int64  `json:"cached_quantity"`
	Consistent     bool   `json:"consistent"`
}
