package entity

import "time"

// Company types along the palm-oil supply chain. The type drives which
// role-specific process data template a transformation event is pre-filled with.
const (
	CompanyTypePlantation   = "plantation_grower"
	CompanyTypeMill         = "mill"
	CompanyTypeRefinery     = "refinery_crusher"
	CompanyTypeManufacturer = "manufacturer"
	CompanyTypeBrand        = "brand"
	CompanyTypeTrader       = "trader"
)

// ValidCompanyType reports whether t is one of the known company types.
func ValidCompanyType(t string) bool {
	switch t {
	case CompanyTypePlantation, CompanyTypeMill, CompanyTypeRefinery,
		CompanyTypeManufacturer, CompanyTypeBrand, CompanyTypeTrader:
		return true
	}
	return false
}

// Company represents an organization/tenant participating in the supply chain.
type Company struct {
	ID        string
	Name      string
	Type      string // see CompanyType* constants
	Country   string
	Address   string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
