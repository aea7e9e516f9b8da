package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateBatchRequest body for POST /api/batches.
type CreateBatchRequest struct {
	ProductID      string           `json:"product_id"`
	BatchNumber    string           `json:"batch_number"`
	Type           string           `json:"type,omitempty"` // harvest, processing, incoming
	Quantity       decimal.Decimal  `json:"quantity"`
	Unit           string           `json:"unit,omitempty"`
	ProductionDate time.Time        `json:"production_date"`
	ExpiryDate     *time.Time       `json:"expiry_date,omitempty"`
	LocationName   string           `json:"location_name,omitempty"`
	Latitude       *decimal.Decimal `json:"latitude,omitempty"`
	Longitude      *decimal.Decimal `json:"longitude,omitempty"`
	OriginData     json.RawMessage  `json:"origin_data,omitempty"`
	Certifications json.RawMessage  `json:"certifications,omitempty"`
	QualityMetrics json.RawMessage  `json:"quality_metrics,omitempty"`
}

// BatchResponse batch payload.
type BatchResponse struct {
	ID             string           `json:"id"`
	CompanyID      string           `json:"company_id"`
	ProductID      string           `json:"product_id"`
	BatchNumber    string           `json:"batch_number"`
	Type           string           `json:"type"`
	Quantity       decimal.Decimal  `json:"quantity"`
	Unit           string           `json:"unit"`
	ProductionDate time.Time        `json:"production_date"`
	ExpiryDate     *time.Time       `json:"expiry_date,omitempty"`
	Status         string           `json:"status"`
	LocationName   string           `json:"location_name,omitempty"`
	Latitude       *decimal.Decimal `json:"latitude,omitempty"`
	Longitude      *decimal.Decimal `json:"longitude,omitempty"`
	OriginData     json.RawMessage  `json:"origin_data,omitempty"`
	Certifications json.RawMessage  `json:"certifications,omitempty"`
	QualityMetrics json.RawMessage  `json:"quality_metrics,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// BatchListResponse paged batch listing.
type BatchListResponse struct {
	Items []BatchResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
