package massbalance

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/logicshaper19/palmtrace/internal/domain/entity"
)

// yieldRate maps a (transformation type, input product substring) pair to the
// expected yield ratio. Input product names are matched case-insensitively by
// substring, so "Crude Palm Oil (CPO)" still hits the CPO row.
type yieldRate struct {
	transformationType string
	inputProduct       string // substring of the input product name, lowercase
	ratio              decimal.Decimal
}

// Industry-standard yield rates. Best-effort heuristics, not a validated
// physical model; unmatched combinations fall back to the generic ratio.
var yieldRates = []yieldRate{
	// Milling: FFB oil extraction rate ~20%, kernel extraction ~4.5%
	{entity.TransformationMilling, "fresh fruit", decimal.NewFromFloat(0.20)},
	{entity.TransformationMilling, "ffb", decimal.NewFromFloat(0.20)},
	// Crushing: palm kernel to PKO
	{entity.TransformationCrushing, "kernel", decimal.NewFromFloat(0.45)},
	// Refining: CPO to RBD palm oil
	{entity.TransformationRefining, "crude palm", decimal.NewFromFloat(0.95)},
	{entity.TransformationRefining, "cpo", decimal.NewFromFloat(0.95)},
	// Fractionation: RBD palm oil splits into olein/stearin
	{entity.TransformationFractionation, "rbd", decimal.NewFromFloat(0.80)},
	{entity.TransformationBlending, "palm", decimal.NewFromFloat(0.98)},
	{entity.TransformationManufacturing, "", decimal.NewFromFloat(0.85)},
}

// genericYieldRatio is the fallback for unknown combinations.
var genericYieldRatio = decimal.NewFromFloat(0.85)

// ExpectedYieldRatio looks up the expected output/input ratio for a
// transformation type and input product name.
func ExpectedYieldRatio(transformationType, inputProductName string) decimal.Decimal {
	name := strings.ToLower(inputProductName)
	for _, r := range yieldRates {
		if r.transformationType != transformationType {
			continue
		}
		if r.inputProduct == "" || strings.Contains(name, r.inputProduct) {
			return r.ratio
		}
	}
	return genericYieldRatio
}
