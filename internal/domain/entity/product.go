package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo de la tienda.
// StockQuantity es una proyección materializada del ledger de movimientos:
// la escribe únicamente el Stock Ledger (misma tx que el movimiento), nunca
// los casos de uso de catálogo ni los handlers.
type Product struct {
	ID            string
	SKU           string // código único
	Barcode       string // opcional; único cuando no está vacío
	Name          string
	Description   string
	Unit          string          // unidad de medida (und, kg, lt, ...)
	Price         decimal.Decimal // precio de venta
	Cost          decimal.Decimal // costo de compra
	StockQuantity int64           // proyección cacheada, firmada (negativo = sobreventa)
	MinStockLevel int64           // umbral para alerta de stock bajo
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
