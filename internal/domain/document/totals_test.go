package document_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/document"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario de referencia calculado a mano:
//
//	Línea 1: 2 × 10.00, sin descuento, IVA 10%  → subtotal 20, tax 2.00
//	Línea 2: 1 × 5.00, descuento 10%, sin IVA   → subtotal 5, descuento 0.50
//
//	Subtotal  = 25.00
//	Descuento = 0.50
//	Impuesto  = 2.00
//	Total     = 25.00 - 0.50 + 2.00 = 26.50
// ──────────────────────────────────────────────────────────────────────────────
func TestComputeTotals_EscenarioReferencia(t *testing.T) {
	lines := []document.LineInput{
		{Quantity: 2, UnitPrice: dec("10.00"), DiscountPercent: decimal.Zero, TaxPercent: dec("10")},
		{Quantity: 1, UnitPrice: dec("5.00"), DiscountPercent: dec("10"), TaxPercent: decimal.Zero},
	}

	totals, err := document.ComputeTotals(lines, decimal.Zero)
	require.NoError(t, err)
	rounded := totals.Rounded()

	assert.True(t, rounded.Subtotal.Equal(dec("25.00")), "subtotal: %s", rounded.Subtotal)
	assert.True(t, rounded.DiscountAmount.Equal(dec("0.50")), "descuento: %s", rounded.DiscountAmount)
	assert.True(t, rounded.TaxAmount.Equal(dec("2.00")), "impuesto: %s", rounded.TaxAmount)
	assert.True(t, rounded.TotalAmount.Equal(dec("26.50")), "total: %s", rounded.TotalAmount)
}

// El impuesto se calcula sobre la base ya descontada, no sobre el subtotal.
func TestComputeTotals_ImpuestoSobreBaseDescontada(t *testing.T) {
	lines := []document.LineInput{
		{Quantity: 1, UnitPrice: dec("100.00"), DiscountPercent: dec("50"), TaxPercent: dec("10")},
	}

	totals, err := document.ComputeTotals(lines, decimal.Zero)
	require.NoError(t, err)

	// base imponible 50.00 → impuesto 5.00, no 10.00
	assert.True(t, totals.TaxAmount.Equal(dec("5")), "impuesto: %s", totals.TaxAmount)
	assert.True(t, totals.TotalAmount.Equal(dec("55")), "total: %s", totals.TotalAmount)
}

// El descuento plano del documento se suma después de la agregación y no se
// redistribuye a las líneas.
func TestComputeTotals_DescuentoDeDocumento(t *testing.T) {
	lines := []document.LineInput{
		{Quantity: 3, UnitPrice: dec("10.00")},
	}

	totals, err := document.ComputeTotals(lines, dec("5.00"))
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(dec("30.00")))
	assert.True(t, totals.DiscountAmount.Equal(dec("5.00")))
	assert.True(t, totals.TotalAmount.Equal(dec("25.00")))
	// las líneas no cargan el descuento del documento
	assert.True(t, totals.Lines[0].Discount.IsZero())
}

// Tabla de rechazo: entradas inválidas siempre producen ErrInvalidLine, nunca
// un resultado parcial.
func TestComputeTotals_EntradasInvalidas(t *testing.T) {
	cases := []struct {
		name     string
		line     document.LineInput
		discount decimal.Decimal
	}{
		{"cantidad cero", document.LineInput{Quantity: 0, UnitPrice: dec("10")}, decimal.Zero},
		{"cantidad negativa", document.LineInput{Quantity: -1, UnitPrice: dec("10")}, decimal.Zero},
		{"precio negativo", document.LineInput{Quantity: 1, UnitPrice: dec("-10")}, decimal.Zero},
		{"descuento negativo", document.LineInput{Quantity: 1, UnitPrice: dec("10"), DiscountPercent: dec("-1")}, decimal.Zero},
		{"descuento > 100", document.LineInput{Quantity: 1, UnitPrice: dec("10"), DiscountPercent: dec("101")}, decimal.Zero},
		{"impuesto negativo", document.LineInput{Quantity: 1, UnitPrice: dec("10"), TaxPercent: dec("-1")}, decimal.Zero},
		{"impuesto > 100", document.LineInput{Quantity: 1, UnitPrice: dec("10"), TaxPercent: dec("100.01")}, decimal.Zero},
		{"descuento de documento negativo", document.LineInput{Quantity: 1, UnitPrice: dec("10")}, dec("-0.01")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := document.ComputeTotals([]document.LineInput{tc.line}, tc.discount)
			assert.ErrorIs(t, err, domain.ErrInvalidLine)
		})
	}
}

// Redondeo bancario: el medio centavo va al dígito par.
func TestRound2_RedondeoBancario(t *testing.T) {
	assert.True(t, document.Round2(dec("2.345")).Equal(dec("2.34")), "2.345 → 2.34")
	assert.True(t, document.Round2(dec("2.355")).Equal(dec("2.36")), "2.355 → 2.36")
	assert.True(t, document.Round2(dec("2.344")).Equal(dec("2.34")))
	assert.True(t, document.Round2(dec("2.346")).Equal(dec("2.35")))
}

// El redondeo ocurre una sola vez, al final: sumar muchas líneas con valores
// de tres decimales no acumula deriva.
func TestComputeTotals_SinDerivaDeRedondeo(t *testing.T) {
	var lines []document.LineInput
	for i := 0; i < 1000; i++ {
		// cada línea vale 0.005; redondeada por línea daría 0.00 × 1000 = 0
		lines = append(lines, document.LineInput{Quantity: 1, UnitPrice: dec("0.005")})
	}

	totals, err := document.ComputeTotals(lines, decimal.Zero)
	require.NoError(t, err)

	// a precisión completa la suma es exactamente 5.00
	assert.True(t, totals.Subtotal.Equal(dec("5.00")), "subtotal: %s", totals.Subtotal)
	assert.True(t, totals.Rounded().TotalAmount.Equal(dec("5.00")))
}

// Función pura: misma entrada, mismo resultado, sin importar cuántas veces se
// invoque.
func TestComputeTotals_Deterministico(t *testing.T) {
	lines := []document.LineInput{
		{Quantity: 7, UnitPrice: dec("3.33"), DiscountPercent: dec("12.5"), TaxPercent: dec("19")},
		{Quantity: 2, UnitPrice: dec("0.01"), TaxPercent: dec("5")},
	}

	first, err := document.ComputeTotals(lines, dec("1.17"))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := document.ComputeTotals(lines, dec("1.17"))
		require.NoError(t, err)
		assert.True(t, first.TotalAmount.Equal(again.TotalAmount))
		assert.True(t, first.TaxAmount.Equal(again.TaxAmount))
		assert.True(t, first.DiscountAmount.Equal(again.DiscountAmount))
	}
}

// En el documento persistido se cumple Total = Subtotal - Descuento + Impuesto
// sobre los valores ya redondeados.
func TestRounded_InvarianteAritmetica(t *testing.T) {
	lines := []document.LineInput{
		{Quantity: 3, UnitPrice: dec("9.99"), DiscountPercent: dec("7.77"), TaxPercent: dec("19")},
		{Quantity: 13, UnitPrice: dec("1.015"), TaxPercent: dec("5")},
	}

	totals, err := document.ComputeTotals(lines, dec("0.33"))
	require.NoError(t, err)
	r := totals.Rounded()

	expected := r.Subtotal.Sub(r.DiscountAmount).Add(r.TaxAmount)
	assert.True(t, r.TotalAmount.Equal(expected),
		"total %s != subtotal %s - descuento %s + impuesto %s",
		r.TotalAmount, r.Subtotal, r.DiscountAmount, r.TaxAmount)
}
