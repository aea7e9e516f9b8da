package traceability

import (
	"encoding/json"

	"github.com/logicshaper19/palmtrace/internal/domain/entity"
)

// DefaultProcessData returns the role-specific process data template for a
// company type. Transformation events are pre-filled with these defaults;
// caller-supplied process data overrides them key by key.
func DefaultProcessData(companyType string) map[string]any {
	switch companyType {
	case entity.CompanyTypePlantation:
		return map[string]any{
			"harvest_method": "manual",
			"labor_type":     "estate",
			"ffb_grading": map[string]any{
				"ripe_pct":     85,
				"underripe_pct": 5,
				"overripe_pct": 10,
			},
		}
	case entity.CompanyTypeMill:
		return map[string]any{
			"extraction_process":    "screw_press",
			"oer_target_pct":        20.0,
			"sterilization_temp_c":  140,
			"pressing_pressure_bar": 35,
			"ffa_at_reception_pct":  3.5,
		}
	case entity.CompanyTypeRefinery:
		return map[string]any{
			"process_stages":             []string{"degumming", "bleaching", "deodorization"},
			"refining_loss_pct":          4.5,
			"bleaching_earth_dosage_pct": 1.0,
			"target_ffa_pct":             0.1,
		}
	case entity.CompanyTypeManufacturer:
		return map[string]any{
			"production_line": "default",
			"recipe_version":  "v1",
			"quality_checks":  []string{"moisture", "iv", "color"},
		}
	default:
		return map[string]any{}
	}
}

// MergeProcessData overlays caller-supplied process data on the template
// defaults (shallow, key by key) and returns the merged JSON blob.
func MergeProcessData(defaults map[string]any, override json.RawMessage) (json.RawMessage, error) {
	merged := make(map[string]any, len(defaults))
	for k, v := range defaults {
		merged[k] = v
	}
	if len(override) > 0 {
		var custom map[string]any
		if err := json.Unmarshal(override, &custom); err != nil {
			return nil, err
		}
		for k, v := range custom {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}
