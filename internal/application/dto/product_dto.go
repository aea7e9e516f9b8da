package dto

import (
	"encoding/json"
	"time"
)

// CreateProductRequest body for POST /api/products.
type CreateProductRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category"` // raw_material, processed, finished_good
	DefaultUnit   string          `json:"default_unit,omitempty"`
	HSCode        string          `json:"hs_code,omitempty"`
	CanHaveOrigin bool            `json:"can_have_origin"`
	Attributes    json.RawMessage `json:"attributes,omitempty"`
}

// ProductResponse product payload.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category"`
	DefaultUnit   string          `json:"default_unit"`
	HSCode        string          `json:"hs_code,omitempty"`
	CanHaveOrigin bool            `json:"can_have_origin"`
	Attributes    json.RawMessage `json:"attributes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse paged product listing.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
