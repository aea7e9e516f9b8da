package dto

import "time"

// CreateCompanyRequest body for POST /api/companies.
type CreateCompanyRequest struct {
	Name    string `json:"name"`
	Type    string `json:"type"` // plantation_grower, mill, refinery_crusher, manufacturer, brand, trader
	Country string `json:"country"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email"`
}

// CompanyResponse company payload.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Country   string    `json:"country"`
	Address   string    `json:"address,omitempty"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyListResponse paged company listing.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
