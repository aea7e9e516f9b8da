// Package provenance combines origin and certification metadata from the
// batches contributing to a transformation into a single inherited-provenance
// record for the output batches.
package provenance

import (
	"encoding/json"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/logicshaper19/palmtrace/internal/domain/allocation"
)

// SourceBatch is one contributing batch's share of the merged record.
type SourceBatch struct {
	BatchID           string          `json:"batch_id"`
	BatchNumber       string          `json:"batch_number"`
	QuantityUsed      decimal.Decimal `json:"quantity_used"`
	ContributionRatio decimal.Decimal `json:"contribution_ratio"`
	Unit              string          `json:"unit"`
}

// Tagged is a farm or location sub-object annotated with the contribution
// ratio of the line it came from.
type Tagged struct {
	Data              map[string]any  `json:"data"`
	SourceBatchID     string          `json:"source_batch_id"`
	ContributionRatio decimal.Decimal `json:"contribution_ratio"`
}

// Merged is advisory metadata attached to output batches. It carries no
// normative validation; SkippedCount reports how many lines had origin data
// that could not be decoded, so callers can judge data quality.
type Merged struct {
	SourceBatches  []SourceBatch `json:"source_batches"`
	Farms          []Tagged      `json:"farms"`
	Locations      []Tagged      `json:"locations"`
	Certifications []string      `json:"certifications"`
	SkippedCount   int           `json:"skipped_count"`
}

// originPayload is the shape expected inside a batch's origin data blob.
// Extra fields are ignored.
type originPayload struct {
	Farm     map[string]any `json:"farm"`
	Location map[string]any `json:"location"`
}

// Merge combines the origin metadata of all allocation lines. Certifications
// are unioned and deduplicated; farm/location sub-objects are tagged with the
// line's contribution ratio. Lines with missing origin data contribute only
// their batch reference; malformed origin data is skipped and counted.
func Merge(lines []allocation.Line) *Merged {
	merged := &Merged{}
	certSet := make(map[string]struct{})

	for _, line := range lines {
		merged.SourceBatches = append(merged.SourceBatches, SourceBatch{
			BatchID:           line.BatchID,
			BatchNumber:       line.BatchNumber,
			QuantityUsed:      line.QuantityUsed,
			ContributionRatio: line.ContributionRatio,
			Unit:              line.Unit,
		})

		for _, cert := range decodeCerts(line.Certifications) {
			certSet[cert] = struct{}{}
		}

		if len(line.OriginData) == 0 {
			continue
		}
		var origin originPayload
		if err := json.Unmarshal(line.OriginData, &origin); err != nil {
			merged.SkippedCount++
			continue
		}
		if origin.Farm != nil {
			merged.Farms = append(merged.Farms, Tagged{
				Data:              origin.Farm,
				SourceBatchID:     line.BatchID,
				ContributionRatio: line.ContributionRatio,
			})
		}
		if origin.Location != nil {
			merged.Locations = append(merged.Locations, Tagged{
				Data:              origin.Location,
				SourceBatchID:     line.BatchID,
				ContributionRatio: line.ContributionRatio,
			})
		}
	}

	merged.Certifications = make([]string, 0, len(certSet))
	for cert := range certSet {
		merged.Certifications = append(merged.Certifications, cert)
	}
	sort.Strings(merged.Certifications)

	return merged
}

func decodeCerts(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var certs []string
	if err := json.Unmarshal(raw, &certs); err != nil {
		return nil
	}
	return certs
}
