package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TransformationProvenance is one record per (transformation event, source
// batch): the contribution of that batch to the event's outputs plus the
// origin/certification/quality data inherited from it. Immutable once created.
type TransformationProvenance struct {
	ID                string
	TransformationID  string
	SourceBatchID     string
	ContributionRatio decimal.Decimal // 0..1 share of the total draw-down
	QuantityUsed      decimal.Decimal
	Unit              string
	OriginData        json.RawMessage
	Certifications    json.RawMessage
	QualityMetrics    json.RawMessage
	CreatedAt         time.Time
}
