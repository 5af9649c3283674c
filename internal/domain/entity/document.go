package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento de negocio. Cada tipo tiene un prefijo de consecutivo
// propio (SALE-000042, EXP-000001, ...).
const (
	DocumentTypeSale           = "sale"
	DocumentTypePurchaseOrder  = "purchase_order"
	DocumentTypeQuotation      = "quotation"
	DocumentTypeSaleReturn     = "sale_return"
	DocumentTypePurchaseReturn = "purchase_return"
	DocumentTypeTransfer       = "transfer"
	DocumentTypeExpense        = "expense"
)

// Estados del ciclo de vida: draft → pending → {approved|rejected} → processed.
// cancelled es alcanzable desde cualquier estado no terminal y revierte los
// movimientos de stock que el documento haya producido.
const (
	DocumentStatusDraft     = "draft"
	DocumentStatusPending   = "pending"
	DocumentStatusApproved  = "approved"
	DocumentStatusRejected  = "rejected"
	DocumentStatusProcessed = "processed"
	DocumentStatusCancelled = "cancelled"
)

// Document es la cabecera polimórfica de venta, orden de compra, cotización,
// devolución, traslado o gasto. Invariantes:
//   TotalAmount = Subtotal - DiscountAmount + TaxAmount
//   Subtotal    = sum(línea.Quantity * línea.UnitPrice)
// ReferenceNumber es identificador durable visible al usuario; una vez
// emitido no cambia (aparece en documentos impresos/enviados).
type Document struct {
	ID              string
	Type            string
	ReferenceNumber string
	Status          string
	PartyID         string // cliente o proveedor según el tipo; opcional
	Subtotal        decimal.Decimal
	// DocumentDiscount es el descuento plano del documento tal como se
	// ingresó, sin redondear: es base de cálculo en recálculos, no display.
	DocumentDiscount decimal.Decimal
	DiscountAmount   decimal.Decimal // descuentos de línea + DocumentDiscount, redondeado
	TaxAmount        decimal.Decimal
	TotalAmount      decimal.Decimal
	Notes            string
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Lines            []*DocumentLine
}

// IsTerminal indica si el estado ya no admite transiciones.
func (d *Document) IsTerminal() bool {
	return d.Status == DocumentStatusRejected ||
		d.Status == DocumentStatusProcessed ||
		d.Status == DocumentStatusCancelled
}

// ValidDocumentType verifica que el tipo pertenezca al catálogo.
func ValidDocumentType(t string) bool {
	switch t {
	case DocumentTypeSale, DocumentTypePurchaseOrder, DocumentTypeQuotation,
		DocumentTypeSaleReturn, DocumentTypePurchaseReturn,
		DocumentTypeTransfer, DocumentTypeExpense:
		return true
	}
	return false
}
