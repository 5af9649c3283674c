package document

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// LineInput es la entrada de la calculadora por línea.
type LineInput struct {
	Quantity        int64
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	TaxPercent      decimal.Decimal
}

// LineTotals valores por línea a precisión completa.
type LineTotals struct {
	Subtotal decimal.Decimal // quantity * unit_price
	Discount decimal.Decimal // subtotal * discount% / 100
	Taxable  decimal.Decimal // subtotal - discount
	Tax      decimal.Decimal // taxable * tax% / 100
	Total    decimal.Decimal // taxable + tax
}

// Totals agregados del documento a precisión completa. Redondear únicamente
// al persistir o mostrar (ver Round2), nunca a mitad de cálculo, para evitar
// deriva acumulada al sumar muchas líneas.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal // descuentos de línea + descuento plano del documento
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal // subtotal - discount + tax
	Lines          []LineTotals
}

// ComputeTotals calcula subtotal, descuento, impuesto y total de una lista de
// líneas más un descuento plano a nivel de documento (aplicado después de la
// agregación, no redistribuido a las líneas). Función pura: misma entrada,
// mismo resultado.
//
// Rechaza con ErrInvalidLine: cantidad <= 0, precio unitario negativo,
// porcentaje de descuento o impuesto fuera de [0,100]. Descuento de documento
// negativo también es inválido.
func ComputeTotals(lines []LineInput, documentDiscount decimal.Decimal) (*Totals, error) {
	if documentDiscount.IsNegative() {
		return nil, domain.ErrInvalidLine
	}
	t := &Totals{
		Subtotal:       decimal.Zero,
		DiscountAmount: decimal.Zero,
		TaxAmount:      decimal.Zero,
		Lines:          make([]LineTotals, 0, len(lines)),
	}
	for _, in := range lines {
		lt, err := computeLine(in)
		if err != nil {
			return nil, err
		}
		t.Subtotal = t.Subtotal.Add(lt.Subtotal)
		t.DiscountAmount = t.DiscountAmount.Add(lt.Discount)
		t.TaxAmount = t.TaxAmount.Add(lt.Tax)
		t.Lines = append(t.Lines, lt)
	}
	t.DiscountAmount = t.DiscountAmount.Add(documentDiscount)
	t.TotalAmount = t.Subtotal.Sub(t.DiscountAmount).Add(t.TaxAmount)
	return t, nil
}

func computeLine(in LineInput) (LineTotals, error) {
	if in.Quantity <= 0 {
		return LineTotals{}, domain.ErrInvalidLine
	}
	if in.UnitPrice.IsNegative() {
		return LineTotals{}, domain.ErrInvalidLine
	}
	if !validPercent(in.DiscountPercent) || !validPercent(in.TaxPercent) {
		return LineTotals{}, domain.ErrInvalidLine
	}
	subtotal := decimal.NewFromInt(in.Quantity).Mul(in.UnitPrice)
	discount := subtotal.Mul(in.DiscountPercent).Div(hundred)
	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(in.TaxPercent).Div(hundred)
	return LineTotals{
		Subtotal: subtotal,
		Discount: discount,
		Taxable:  taxable,
		Tax:      tax,
		Total:    taxable.Add(tax),
	}, nil
}

func validPercent(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(hundred)
}

// Round2 redondea a 2 decimales con round-half-to-even (redondeo bancario).
// Es el único punto de redondeo del motor: se aplica en persistencia/display.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}

// Rounded devuelve una copia con los agregados redondeados a 2 decimales,
// lista para persistir. Los valores por línea se redondean de forma
// independiente (el total de línea persistido es display, no base de cálculo).
func (t *Totals) Rounded() *Totals {
	out := &Totals{
		Subtotal:       Round2(t.Subtotal),
		DiscountAmount: Round2(t.DiscountAmount),
		TaxAmount:      Round2(t.TaxAmount),
		Lines:          make([]LineTotals, len(t.Lines)),
	}
	out.TotalAmount = out.Subtotal.Sub(out.DiscountAmount).Add(out.TaxAmount)
	for i, lt := range t.Lines {
		out.Lines[i] = LineTotals{
			Subtotal: Round2(lt.Subtotal),
			Discount: Round2(lt.Discount),
			Taxable:  Round2(lt.Taxable),
			Tax:      Round2(lt.Tax),
			Total:    Round2(lt.Total),
		}
	}
	return out
}
