package massbalance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logicshaper19/palmtrace/internal/domain"
	"github.com/logicshaper19/palmtrace/internal/domain/entity"
	"github.com/logicshaper19/palmtrace/internal/domain/massbalance"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestValidate_PerfectMillingYield(t *testing.T) {
	// 1000 kg FFB at a 20% OER yields exactly 200 kg CPO.
	r, err := massbalance.Validate(dec("1000"), []decimal.Decimal{dec("200")}, dec("0.20"), decimal.Zero)
	require.NoError(t, err)

	assert.True(t, r.IsBalanced)
	assert.True(t, r.BalanceRatio.Equal(dec("1")))
	assert.True(t, r.DeviationPercentage.IsZero())
	assert.True(t, r.ExpectedOutput.Equal(dec("200")))
	assert.True(t, r.WasteQuantity.Equal(dec("800")))
	assert.False(t, r.OverYield)
	assert.True(t, r.Tolerance.Equal(massbalance.DefaultTolerance), "zero tolerance falls back to the default")
}

func TestValidate_UnderYieldOutsideTolerance(t *testing.T) {
	// 150 kg out of an expected 200 kg: ratio 0.75, 25% deviation.
	r, err := massbalance.Validate(dec("1000"), []decimal.Decimal{dec("150")}, dec("0.20"), decimal.Zero)
	require.NoError(t, err)

	assert.False(t, r.IsBalanced)
	assert.True(t, r.BalanceRatio.Equal(dec("0.75")))
	assert.True(t, r.DeviationPercentage.Equal(dec("25")))
}

func TestValidate_WithinCustomTolerance(t *testing.T) {
	// 8% deviation passes with a 10% tolerance and fails with the default 5%.
	outputs := []decimal.Decimal{dec("184")}

	loose, err := massbalance.Validate(dec("1000"), outputs, dec("0.20"), dec("0.10"))
	require.NoError(t, err)
	assert.True(t, loose.IsBalanced)

	strict, err := massbalance.Validate(dec("1000"), outputs, dec("0.20"), decimal.Zero)
	require.NoError(t, err)
	assert.False(t, strict.IsBalanced)
}

func TestValidate_MultipleOutputsAreSummed(t *testing.T) {
	// Crushing kernel into oil + meal: outputs sum before the comparison.
	r, err := massbalance.Validate(dec("500"), []decimal.Decimal{dec("120"), dec("105")}, dec("0.45"), decimal.Zero)
	require.NoError(t, err)

	assert.True(t, r.TotalOutput.Equal(dec("225")))
	assert.True(t, r.IsBalanced)
}

func TestValidate_OverYieldFlagged(t *testing.T) {
	// Output above input: physically suspect, flagged but still evaluated.
	r, err := massbalance.Validate(dec("100"), []decimal.Decimal{dec("120")}, dec("0.95"), dec("0.30"))
	require.NoError(t, err)

	assert.True(t, r.OverYield)
	assert.True(t, r.WasteQuantity.IsNegative())
}

func TestValidate_ZeroExpectedOutput(t *testing.T) {
	r, err := massbalance.Validate(dec("0"), []decimal.Decimal{dec("10")}, dec("0.20"), decimal.Zero)
	require.NoError(t, err)

	assert.True(t, r.BalanceRatio.IsZero(), "ratio is 0 when expected output is 0")
	assert.False(t, r.IsBalanced)
}

func TestValidate_RejectsBadInputs(t *testing.T) {
	_, err := massbalance.Validate(dec("-1"), nil, dec("0.20"), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "negative input")

	_, err = massbalance.Validate(dec("100"), nil, dec("0"), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "zero yield ratio")

	_, err = massbalance.Validate(dec("100"), nil, dec("1.5"), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "yield ratio above 1")

	_, err = massbalance.Validate(dec("100"), nil, dec("0.20"), dec("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tolerance must be below 1")
}

func TestFailureError(t *testing.T) {
	r, err := massbalance.Validate(dec("1000"), []decimal.Decimal{dec("150")}, dec("0.20"), decimal.Zero)
	require.NoError(t, err)

	failure := massbalance.FailureError(r, dec("1000"))
	require.Error(t, failure)
	assert.ErrorIs(t, failure, domain.ErrConflict)

	var de *domain.DomainError
	require.ErrorAs(t, failure, &de)
	assert.Equal(t, domain.KindMassBalanceFailed, de.Kind)
	assert.Equal(t, "150", de.Details["output"])

	balanced, err := massbalance.Validate(dec("1000"), []decimal.Decimal{dec("200")}, dec("0.20"), decimal.Zero)
	require.NoError(t, err)
	assert.NoError(t, massbalance.FailureError(balanced, dec("1000")))
}

func TestExpectedYieldRatio_TableLookups(t *testing.T) {
	cases := []struct {
		transformationType string
		inputProduct       string
		want               string
	}{
		{entity.TransformationMilling, "Fresh Fruit Bunches", "0.2"},
		{entity.TransformationMilling, "FFB Grade A", "0.2"},
		{entity.TransformationCrushing, "Palm Kernel", "0.45"},
		{entity.TransformationRefining, "Crude Palm Oil", "0.95"},
		{entity.TransformationRefining, "CPO", "0.95"},
		{entity.TransformationFractionation, "RBD Palm Oil", "0.8"},
		{entity.TransformationBlending, "Palm Olein", "0.98"},
		{entity.TransformationManufacturing, "anything", "0.85"},
	}
	for _, tc := range cases {
		got := massbalance.ExpectedYieldRatio(tc.transformationType, tc.inputProduct)
		assert.True(t, got.Equal(dec(tc.want)),
			"%s/%s: want %s, got %s", tc.transformationType, tc.inputProduct, tc.want, got)
	}
}

func TestExpectedYieldRatio_FallsBackToGeneric(t *testing.T) {
	got := massbalance.ExpectedYieldRatio(entity.TransformationMilling, "soybean oil")
	assert.True(t, got.Equal(dec("0.85")), "unknown product falls back to the generic ratio")

	got = massbalance.ExpectedYieldRatio("unknown_type", "whatever")
	assert.True(t, got.Equal(dec("0.85")))
}
