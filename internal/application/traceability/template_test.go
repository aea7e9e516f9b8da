package traceability_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logicshaper19/palmtrace/internal/application/traceability"
	"github.com/logicshaper19/palmtrace/internal/domain/entity"
)

func TestDefaultProcessData_PerCompanyType(t *testing.T) {
	mill := traceability.DefaultProcessData(entity.CompanyTypeMill)
	assert.Equal(t, 20.0, mill["oer_target_pct"])
	assert.Equal(t, "screw_press", mill["extraction_process"])

	plantation := traceability.DefaultProcessData(entity.CompanyTypePlantation)
	assert.Equal(t, "manual", plantation["harvest_method"])
	assert.Contains(t, plantation, "ffb_grading")

	refinery := traceability.DefaultProcessData(entity.CompanyTypeRefinery)
	assert.Contains(t, refinery, "process_stages")

	manufacturer := traceability.DefaultProcessData(entity.CompanyTypeManufacturer)
	assert.Equal(t, "v1", manufacturer["recipe_version"])
}

func TestDefaultProcessData_UnknownTypeIsEmpty(t *testing.T) {
	got := traceability.DefaultProcessData(entity.CompanyTypeTrader)
	assert.Empty(t, got)
}

func TestMergeProcessData_OverrideWinsKeyByKey(t *testing.T) {
	defaults := traceability.DefaultProcessData(entity.CompanyTypeMill)
	override := json.RawMessage(`{"oer_target_pct": 22.5, "shift": "night"}`)

	blob, err := traceability.MergeProcessData(defaults, override)
	require.NoError(t, err)

	var merged map[string]any
	require.NoError(t, json.Unmarshal(blob, &merged))

	assert.Equal(t, 22.5, merged["oer_target_pct"], "caller value replaces the template default")
	assert.Equal(t, "night", merged["shift"], "new keys are added")
	assert.Equal(t, "screw_press", merged["extraction_process"], "untouched defaults survive")
}

func TestMergeProcessData_NoOverrideKeepsDefaults(t *testing.T) {
	defaults := traceability.DefaultProcessData(entity.CompanyTypeMill)

	blob, err := traceability.MergeProcessData(defaults, nil)
	require.NoError(t, err)

	var merged map[string]any
	require.NoError(t, json.Unmarshal(blob, &merged))
	assert.Len(t, merged, len(defaults))
}

func TestMergeProcessData_MalformedOverrideFails(t *testing.T) {
	_, err := traceability.MergeProcessData(map[string]any{}, json.RawMessage(`not json`))
	assert.Error(t, err)
}
