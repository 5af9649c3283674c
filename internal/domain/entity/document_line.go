package entity

import "github.com/shopspring/decimal"

// DocumentLine es una línea de documento. Se crea junto con su cabecera y es
// inmutable después: una corrección reemplaza el documento completo (requisito
// de auditoría). LineTotal es calculado, nunca lo envía el cliente.
type DocumentLine struct {
	ID              string
	DocumentID      string
	ProductID       string
	Quantity        int64           // > 0 siempre
	UnitPrice       decimal.Decimal // >= 0
	DiscountPercent decimal.Decimal // 0..100
	TaxPercent      decimal.Decimal // 0..100
	LineTotal       decimal.Decimal
}
