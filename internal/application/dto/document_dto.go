package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentLineRequest línea tal como la envía el cliente. LineTotal nunca se
// acepta del cliente: lo calcula el motor.
type DocumentLineRequest struct {
	ProductID       string          `json:"product_id"`
	Quantity        int64           `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxPercent      decimal.Decimal `json:"tax_percent"`
}

// CreateDocumentRequest body para POST /api/v1/documents.
type CreateDocumentRequest struct {
	Type             string                `json:"type"`
	PartyID          string                `json:"party_id,omitempty"`
	Notes            string                `json:"notes,omitempty"`
	DocumentDiscount decimal.Decimal       `json:"document_discount"`
	Lines            []DocumentLineRequest `json:"lines"`
}

// CreateExpenseRequest body para POST /api/v1/expenses: un gasto es un
// documento degenerado de una línea. El impuesto llega como monto plano y se
// convierte a porcentaje sobre el monto base (modelo general del motor).
type CreateExpenseRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Notes     string          `json:"notes,omitempty"`
}

// UpdateDocumentRequest body para PUT /api/v1/documents/:id. Campos nil se
// conservan; Lines no-nil reemplaza el juego completo de líneas.
type UpdateDocumentRequest struct {
	PartyID          *string               `json:"party_id,omitempty"`
	Notes            *string               `json:"notes,omitempty"`
	DocumentDiscount *decimal.Decimal      `json:"document_discount,omitempty"`
	Lines            []DocumentLineRequest `json:"lines,omitempty"`
}

// TransitionRequest body para POST /api/v1/documents/:id/transition.
type TransitionRequest struct {
	Status string `json:"status"`
}

// SequenceResponse estado de un contador de consecutivos (diagnóstico).
type SequenceResponse struct {
	Prefix    string    `json:"prefix"`
	LastValue int64     `json:"last_value"`
	Padding   int       `json:"padding"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DocumentLineResponse línea en respuestas.
type DocumentLineResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	Quantity        int64           `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxPercent      decimal.Decimal `json:"tax_percent"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// DocumentResponse documento con consecutivo y totales calculados.
type DocumentResponse struct {
	ID               string                 `json:"id"`
	Type             string                 `json:"type"`
	ReferenceNumber  string                 `json:"reference_number"`
	Status           string                 `json:"status"`
	PartyID          string                 `json:"party_id,omitempty"`
	Subtotal         decimal.Decimal        `json:"subtotal"`
	DocumentDiscount decimal.Decimal        `json:"document_discount"`
	DiscountAmount   decimal.Decimal        `json:"discount_amount"`
	TaxAmount        decimal.Decimal        `json:"tax_amount"`
	TotalAmount      decimal.Decimal        `json:"total_amount"`
	Notes            string                 `json:"notes,omitempty"`
	CreatedBy        string                 `json:"created_by,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
	Lines            []DocumentLineResponse `json:"lines,omitempty"`
}
