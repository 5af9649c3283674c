package document

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// Prefijos de consecutivo por tipo de documento. Forman parte del contrato
// externo (SALE-000042 aparece en documentos impresos); no cambiar.
var prefixes = map[string]string{
	entity.DocumentTypeSale:           "SALE",
	entity.DocumentTypePurchaseOrder:  "PO",
	entity.DocumentTypeQuotation:      "QUO",
	entity.DocumentTypeSaleReturn:     "SRET",
	entity.DocumentTypePurchaseReturn: "PRET",
	entity.DocumentTypeTransfer:       "TRF",
	entity.DocumentTypeExpense:        "EXP",
}

// Prefix devuelve el prefijo de consecutivo del tipo; cadena vacía si el tipo
// no existe.
func Prefix(docType string) string {
	return prefixes[docType]
}

// StockEffect describe un movimiento de ledger que un tipo de documento
// produce por cada línea: la clase del movimiento y la dirección por unidad
// (+1 entra, -1 sale). Un traslado produce dos efectos (salida y entrada de
// ubicación) con neto cero sobre la cantidad cacheada.
type StockEffect struct {
	Kind      string
	Direction int64
}

var effects = map[string][]StockEffect{
	entity.DocumentTypeSale:           {{Kind: entity.MovementKindSale, Direction: -1}},
	entity.DocumentTypeSaleReturn:     {{Kind: entity.MovementKindSaleReturn, Direction: +1}},
	entity.DocumentTypePurchaseReturn: {{Kind: entity.MovementKindPurchaseReturn, Direction: -1}},
	entity.DocumentTypePurchaseOrder:  {{Kind: entity.MovementKindPurchase, Direction: +1}},
	entity.DocumentTypeQuotation:      {{Kind: entity.MovementKindSale, Direction: -1}},
	entity.DocumentTypeTransfer: {
		{Kind: entity.MovementKindTransferOut, Direction: -1},
		{Kind: entity.MovementKindTransferIn, Direction: +1},
	},
	entity.DocumentTypeExpense: {},
}

// Effects devuelve los efectos de inventario del tipo (vacío para gastos).
func Effects(docType string) []StockEffect {
	return effects[docType]
}

// CommitsAtCreation indica si el tipo afecta inventario al crear el documento
// (inmediatez de punto de venta: ventas, devoluciones, traslados).
func CommitsAtCreation(docType string) bool {
	switch docType {
	case entity.DocumentTypeSale, entity.DocumentTypeSaleReturn,
		entity.DocumentTypePurchaseReturn, entity.DocumentTypeTransfer:
		return true
	}
	return false
}

// CommitsAtProcessing indica si el tipo afecta inventario solo en la
// transición approved → processed (órdenes de compra, cotizaciones).
func CommitsAtProcessing(docType string) bool {
	switch docType {
	case entity.DocumentTypePurchaseOrder, entity.DocumentTypeQuotation:
		return true
	}
	return false
}
