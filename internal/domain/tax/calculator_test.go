package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultRates() Rates {
	return Rates{
		IEPS:             decimal.RequireFromString("4.59"),
		IVA:              decimal.RequireFromString("0.16"),
		PVR:              decimal.RequireFromString("0.20"),
		IVAPVR:           decimal.RequireFromString("0.16"),
		ConversionFactor: decimal.RequireFromString("0.264172"),
	}
}

func TestCompute_SingleTrailer(t *testing.T) {
	in := Inputs{
		LitersTrailerOne:   decimal.NewFromInt(1000),
		UnitPricePerGallon: decimal.RequireFromString("2.50"),
	}

	got := Compute(in, defaultRates())

	assert.True(t, got.TotalGallons.Equal(decimal.RequireFromString("264.172")),
		"total gallons = %s", got.TotalGallons)
	assert.True(t, got.InvoiceValue.Equal(decimal.RequireFromString("660.43")),
		"invoice value = %s", got.InvoiceValue)
	assert.Equal(t, "1212.55", got.IEPS.StringFixed(2))
	assert.Equal(t, "299.68", got.IVA.StringFixed(2))
	assert.Equal(t, "52.83", got.PVR.StringFixed(2))
	assert.Equal(t, "8.45", got.IVAPVR.StringFixed(2))
	assert.Equal(t, "1573.51", got.TotalTaxes.StringFixed(2))
	assert.Equal(t, "2233.94", got.TotalDue.StringFixed(2))
}

func TestCompute_AllSlots(t *testing.T) {
	in := Inputs{
		LitersTrailerOne:   decimal.NewFromInt(10000),
		LitersTrailerTwo:   decimal.NewFromInt(12000),
		LitersTankerTruck:  decimal.NewFromInt(30000),
		LitersBarge:        decimal.NewFromInt(500000),
		UnitPricePerGallon: decimal.RequireFromString("2.10"),
	}
	rates := defaultRates()

	got := Compute(in, rates)

	wantGallons := got.GallonsTrailerOne.
		Add(got.GallonsTrailerTwo).
		Add(got.GallonsTankerTruck).
		Add(got.GallonsBarge)
	assert.True(t, got.TotalGallons.Equal(wantGallons), "total gallons must equal slot sum")

	wantValue := got.TotalGallons.Mul(in.UnitPricePerGallon)
	assert.True(t, got.InvoiceValue.Equal(wantValue))

	wantTaxes := got.IEPS.Add(got.IVA).Add(got.PVR).Add(got.IVAPVR).Round(2)
	assert.True(t, got.TotalTaxes.Equal(wantTaxes), "total taxes must equal the rounded component sum")

	wantDue := got.InvoiceValue.Add(got.TotalTaxes).Round(2)
	assert.True(t, got.TotalDue.Equal(wantDue), "total due must equal invoice value plus taxes")
}

func TestCompute_ZeroVolumes(t *testing.T) {
	got := Compute(Inputs{UnitPricePerGallon: decimal.RequireFromString("2.50")}, defaultRates())

	assert.True(t, got.TotalGallons.IsZero())
	assert.True(t, got.InvoiceValue.IsZero())
	assert.True(t, got.TotalTaxes.IsZero())
	assert.True(t, got.TotalDue.IsZero())
}

func TestCompute_IVABaseUsesUnroundedIEPS(t *testing.T) {
	// A volume chosen so the IEPS amount rounds up: the IVA base must still
	// use the unrounded amount.
	in := Inputs{
		LitersTrailerOne:   decimal.RequireFromString("1.3"),
		UnitPricePerGallon: decimal.Zero,
	}
	rates := defaultRates()

	got := Compute(in, rates)

	gallons := in.LitersTrailerOne.Mul(rates.ConversionFactor)
	unroundedIEPS := gallons.Mul(rates.IEPS)
	wantIVA := unroundedIEPS.Mul(rates.IVA).Round(2)
	assert.True(t, got.IVA.Equal(wantIVA), "IVA = %s, want %s", got.IVA, wantIVA)
}

func TestInputs_HasVolume(t *testing.T) {
	tests := []struct {
		name     string
		in       Inputs
		expected bool
	}{
		{"all zero", Inputs{}, false},
		{"trailer one", Inputs{LitersTrailerOne: decimal.NewFromInt(1)}, true},
		{"trailer two", Inputs{LitersTrailerTwo: decimal.NewFromInt(1)}, true},
		{"tanker truck", Inputs{LitersTankerTruck: decimal.NewFromInt(1)}, true},
		{"barge", Inputs{LitersBarge: decimal.NewFromInt(1)}, true},
		{"negative only", Inputs{LitersBarge: decimal.NewFromInt(-5)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.in.HasVolume())
		})
	}
}
