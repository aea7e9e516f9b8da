package entity

import (
	"encoding/json"
	"time"
)

// Product categories.
const (
	ProductCategoryRawMaterial  = "raw_material"
	ProductCategoryProcessed    = "processed"
	ProductCategoryFinishedGood = "finished_good"
)

// Common product names used by the yield-rate table. Free-form names are
// allowed; these are the ones the milling/refining heuristics key on.
const (
	ProductFFB        = "Fresh Fruit Bunches"
	ProductCPO        = "Crude Palm Oil"
	ProductPalmKernel = "Palm Kernel"
	ProductPKO        = "Palm Kernel Oil"
	ProductRBDPalmOil = "RBD Palm Oil"
	ProductPalmOlein  = "Palm Olein"
	ProductPalmStearin = "Palm Stearin"
)

// Product represents a tradeable palm product (FFB, CPO, RBD olein, ...).
// Products are shared across companies; batches are company-owned.
type Product struct {
	ID              string
	CommonProductID string // optional grouping across name variants
	Name            string
	Description     string
	Category        string // raw_material, processed, finished_good
	DefaultUnit     string // KGM, MT
	HSCode          string
	CanHaveOrigin   bool   // raw materials carry origin data at batch level
	Attributes      json.RawMessage
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
