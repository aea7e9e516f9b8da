// Package pdf renders the batch traceability report.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Batch number + product  │  Status + production date │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BATCH: quantity / unit / location / coordinates             │
//	│  CERTIFICATIONS: inherited chain-of-custody claims            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Source batch | Qty used | Ratio | Farm               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR (batch id) + verification note                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/logicshaper19/palmtrace/internal/application/traceability"
	"github.com/logicshaper19/palmtrace/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 27, Green: 94, Blue: 32}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var hundred = decimal.NewFromInt(100)

var _ traceability.ReportGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implements traceability.ReportGenerator using Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator builds the generator.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateTraceabilityPDF renders the report and returns its bytes.
func (g *MarotoPDFGenerator) GenerateTraceabilityPDF(
	_ context.Context,
	batch *entity.Batch,
	product *entity.Product,
	sources []*entity.TransformationProvenance,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Batch Traceability Report", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(batch, product))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(batchDetailRow(batch, product))
	m.AddRows(certificationsRow(batch))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(sources) > 0 {
		m.AddRows(sourcesHeaderRow())
		for _, r := range sourceRows(sources) {
			m.AddRows(r)
		}
	} else {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Origin batch. No upstream transformation sources.", props.Text{
				Size: 8, Top: 2, Color: colorGray,
			}),
		)))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(batch))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: batch number + product (left), status + production date (right).
func headerRow(batch *entity.Batch, product *entity.Product) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(batch.BatchNumber, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(product.Name, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("TRACEABILITY REPORT", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(strings.ToUpper(batch.Status), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Produced: "+batch.ProductionDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// batchDetailRow: quantity, unit and location line.
func batchDetailRow(batch *entity.Batch, product *entity.Product) core.Row {
	location := nonEmpty(batch.LocationName, "—")
	if batch.Latitude != nil && batch.Longitude != nil {
		location += fmt.Sprintf(" (%s, %s)",
			batch.Latitude.StringFixed(6), batch.Longitude.StringFixed(6))
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("BATCH", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Quantity: %s %s   |   Type: %s   |   HS code: %s   |   Location: %s",
				batch.Quantity.StringFixed(4), batch.Unit, batch.Type,
				nonEmpty(product.HSCode, "—"), location,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// certificationsRow: inherited certifications, or a dash when none.
func certificationsRow(batch *entity.Batch) core.Row {
	certs := batch.CertificationList()
	value := "—"
	if len(certs) > 0 {
		value = strings.Join(certs, ", ")
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CERTIFICATIONS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		),
	)
}

// sourcesHeaderRow: header of the source-batch table.
func sourcesHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Source batch", 5, align.Left),
		h("Quantity used", 3, align.Right),
		h("Share", 2, align.Right),
		h("Farm", 2, align.Left),
	)
}

// sourceRows: one row per provenance record.
func sourceRows(sources []*entity.TransformationProvenance) []core.Row {
	result := make([]core.Row, 0, len(sources))
	for _, s := range sources {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(
				s.SourceBatchID,
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				s.QuantityUsed.StringFixed(4)+" "+s.Unit,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				s.ContributionRatio.Mul(hundred).StringFixed(2)+"%",
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				farmName(s.OriginData),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

// footerRow: QR with the batch id plus a verification note.
func footerRow(batch *entity.Batch) core.Row {
	return row.New(45).Add(
		col.New(4).Add(code.NewQr(batch.ID, props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(8).Add(
			text.New("Scan the QR code to look up this batch\nin the traceability API.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("CHAIN-OF-CUSTODY RECORD", props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 22,
				Left: 3, Color: colorPrimary,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// farmName pulls the farm name out of an origin_data blob. Malformed or
// missing data renders as a dash rather than failing the report.
func farmName(origin json.RawMessage) string {
	if len(origin) == 0 {
		return "—"
	}
	var payload struct {
		Farm struct {
			Name string `json:"name"`
		} `json:"farm"`
	}
	if err := json.Unmarshal(origin, &payload); err != nil || payload.Farm.Name == "" {
		return "—"
	}
	return payload.Farm.Name
}
