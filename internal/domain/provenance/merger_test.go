package provenance_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logicshaper19/palmtrace/internal/domain/allocation"
	"github.com/logicshaper19/palmtrace/internal/domain/provenance"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func line(batchID, qty, ratio string, origin, certs string) allocation.Line {
	l := allocation.Line{
		BatchID:           batchID,
		BatchNumber:       "B-" + batchID,
		QuantityUsed:      dec(qty),
		ContributionRatio: dec(ratio),
		Unit:              "KGM",
	}
	if origin != "" {
		l.OriginData = json.RawMessage(origin)
	}
	if certs != "" {
		l.Certifications = json.RawMessage(certs)
	}
	return l
}

func TestMerge_CombinesFarmsAndLocations(t *testing.T) {
	lines := []allocation.Line{
		line("a", "600", "0.6",
			`{"farm":{"name":"Sungai Estate"},"location":{"country":"MY"}}`,
			`["RSPO"]`),
		line("b", "400", "0.4",
			`{"farm":{"name":"Rio Verde"},"location":{"country":"CO"}}`,
			`["RSPO","NDPE"]`),
	}

	m := provenance.Merge(lines)

	require.Len(t, m.SourceBatches, 2)
	assert.Equal(t, "a", m.SourceBatches[0].BatchID)
	assert.True(t, m.SourceBatches[0].ContributionRatio.Equal(dec("0.6")))

	require.Len(t, m.Farms, 2)
	assert.Equal(t, "Sungai Estate", m.Farms[0].Data["name"])
	assert.Equal(t, "a", m.Farms[0].SourceBatchID)
	assert.True(t, m.Farms[0].ContributionRatio.Equal(dec("0.6")))

	require.Len(t, m.Locations, 2)
	assert.Equal(t, "MY", m.Locations[0].Data["country"])

	assert.Zero(t, m.SkippedCount)
}

func TestMerge_DeduplicatesCertifications(t *testing.T) {
	lines := []allocation.Line{
		line("a", "100", "0.5", "", `["RSPO","ISCC"]`),
		line("b", "100", "0.5", "", `["NDPE","RSPO"]`),
	}

	m := provenance.Merge(lines)

	assert.Equal(t, []string{"ISCC", "NDPE", "RSPO"}, m.Certifications, "union, deduplicated and sorted")
}

func TestMerge_MissingOriginContributesBatchReferenceOnly(t *testing.T) {
	lines := []allocation.Line{
		line("a", "100", "1", "", ""),
	}

	m := provenance.Merge(lines)

	require.Len(t, m.SourceBatches, 1)
	assert.Empty(t, m.Farms)
	assert.Empty(t, m.Locations)
	assert.Zero(t, m.SkippedCount, "missing origin data is not an error")
}

func TestMerge_MalformedOriginCountedAsSkipped(t *testing.T) {
	lines := []allocation.Line{
		line("a", "100", "0.5", `{"farm":{"name":"OK Farm"}}`, ""),
		line("b", "100", "0.5", `not json at all`, ""),
	}

	m := provenance.Merge(lines)

	require.Len(t, m.SourceBatches, 2, "malformed origin does not drop the batch reference")
	require.Len(t, m.Farms, 1)
	assert.Equal(t, 1, m.SkippedCount)
}

func TestMerge_MalformedCertificationsIgnored(t *testing.T) {
	lines := []allocation.Line{
		line("a", "100", "1", "", `{"not":"a list"}`),
	}

	m := provenance.Merge(lines)
	assert.Empty(t, m.Certifications)
	assert.Zero(t, m.SkippedCount, "certifications are independent of the origin skip counter")
}

func TestMerge_Empty(t *testing.T) {
	m := provenance.Merge(nil)
	assert.Empty(t, m.SourceBatches)
	assert.NotNil(t, m.Certifications)
	assert.Empty(t, m.Certifications)
}

func TestMerge_FarmOnlyPayload(t *testing.T) {
	lines := []allocation.Line{
		line("a", "100", "1", `{"farm":{"name":"Solo Farm","registration_number":"REG-1"}}`, ""),
	}

	m := provenance.Merge(lines)
	require.Len(t, m.Farms, 1)
	assert.Equal(t, "REG-1", m.Farms[0].Data["registration_number"])
	assert.Empty(t, m.Locations)
}
