package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Batch statuses. Allocation decrements Quantity and flips the status to
// consumed when it reaches zero.
const (
	BatchStatusActive   = "active"
	BatchStatusReserved = "reserved"
	BatchStatusConsumed = "consumed"
	BatchStatusExpired  = "expired"
)

// Batch types, mirroring how the batch entered the system.
const (
	BatchTypeHarvest    = "harvest"
	BatchTypeProcessing = "processing"
	BatchTypeIncoming   = "incoming"
)

// Batch represents a discrete, trackable quantity of a product owned by one
// company. OriginData, Certifications and QualityMetrics are free-form JSON
// blobs inherited by downstream batches through provenance records.
type Batch struct {
	ID             string
	CompanyID      string
	ProductID      string
	BatchNumber    string // human-readable code, unique per company
	Type           string
	Quantity       decimal.Decimal
	Unit           string // KGM, MT
	ProductionDate time.Time
	ExpiryDate     *time.Time
	Status         string
	LocationName   string
	Latitude       *decimal.Decimal
	Longitude      *decimal.Decimal
	OriginData     json.RawMessage // {farm: {...}, location: {...}, ...}
	Certifications json.RawMessage // ["RSPO", "NDPE", ...]
	QualityMetrics json.RawMessage // {ffa_content: ..., moisture: ...}
	// SourceTransformationID links an output batch to the transformation
	// event that produced it; empty for harvested/incoming batches.
	SourceTransformationID string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// CertificationList decodes the certifications blob. Malformed or empty
// blobs yield an empty list.
func (b *Batch) CertificationList() []string {
	if len(b.Certifications) == 0 {
		return nil
	}
	var certs []string
	if err := json.Unmarshal(b.Certifications, &certs); err != nil {
		return nil
	}
	return certs
}
