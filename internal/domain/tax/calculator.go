// Package tax implements the volume conversion and tax computation for
// fuel-import invoices. Compute is a pure function: the caller resolves the
// active configuration and passes it in explicitly.
package tax

import "github.com/shopspring/decimal"

// Rates holds the tax rates and conversion factor applied to an invoice.
type Rates struct {
	IEPS             decimal.Decimal // per gallon
	IVA              decimal.Decimal // fraction applied to invoice value + IEPS
	PVR              decimal.Decimal // per gallon
	IVAPVR           decimal.Decimal // fraction applied to the PVR amount
	ConversionFactor decimal.Decimal // liters -> gallons
}

// Inputs are the financial inputs of an invoice. Absent volume slots must be
// passed as zero; Compute treats that as a documented contract rather than a
// defensive coercion.
type Inputs struct {
	LitersTrailerOne   decimal.Decimal
	LitersTrailerTwo   decimal.Decimal
	LitersTankerTruck  decimal.Decimal
	LitersBarge        decimal.Decimal
	UnitPricePerGallon decimal.Decimal
}

// Totals are the derived volumes, tax amounts and grand total of an invoice.
// Tax amounts carry two decimal places; gallon volumes and the invoice value
// keep full precision.
type Totals struct {
	GallonsTrailerOne  decimal.Decimal
	GallonsTrailerTwo  decimal.Decimal
	GallonsTankerTruck decimal.Decimal
	GallonsBarge       decimal.Decimal
	TotalGallons       decimal.Decimal
	InvoiceValue       decimal.Decimal
	IEPS               decimal.Decimal
	IVA                decimal.Decimal
	PVR                decimal.Decimal
	IVAPVR             decimal.Decimal
	TotalTaxes         decimal.Decimal
	TotalDue           decimal.Decimal
}

// HasVolume returns true if at least one volume slot is positive
func (in Inputs) HasVolume() bool {
	return in.LitersTrailerOne.IsPositive() ||
		in.LitersTrailerTwo.IsPositive() ||
		in.LitersTankerTruck.IsPositive() ||
		in.LitersBarge.IsPositive()
}

// Compute derives gallons, invoice value, the four tax components and the
// grand total. Each stored tax amount is rounded to two decimals; the IVA and
// IVA-PVR bases use the unrounded IEPS and PVR amounts.
func Compute(in Inputs, rates Rates) Totals {
	factor := rates.ConversionFactor

	t := Totals{
		GallonsTrailerOne:  in.LitersTrailerOne.Mul(factor),
		GallonsTrailerTwo:  in.LitersTrailerTwo.Mul(factor),
		GallonsTankerTruck: in.LitersTankerTruck.Mul(factor),
		GallonsBarge:       in.LitersBarge.Mul(factor),
	}

	t.TotalGallons = t.GallonsTrailerOne.
		Add(t.GallonsTrailerTwo).
		Add(t.GallonsTankerTruck).
		Add(t.GallonsBarge)

	t.InvoiceValue = t.TotalGallons.Mul(in.UnitPricePerGallon)

	iepsAmount := t.TotalGallons.Mul(rates.IEPS)
	ivaAmount := t.InvoiceValue.Add(iepsAmount).Mul(rates.IVA)
	pvrAmount := t.TotalGallons.Mul(rates.PVR)
	ivaPVRAmount := pvrAmount.Mul(rates.IVAPVR)

	t.IEPS = iepsAmount.Round(2)
	t.IVA = ivaAmount.Round(2)
	t.PVR = pvrAmount.Round(2)
	t.IVAPVR = ivaPVRAmount.Round(2)

	t.TotalTaxes = t.IEPS.Add(t.IVA).Add(t.PVR).Add(t.IVAPVR).Round(2)
	t.TotalDue = t.InvoiceValue.Add(t.TotalTaxes).Round(2)

	return t
}
