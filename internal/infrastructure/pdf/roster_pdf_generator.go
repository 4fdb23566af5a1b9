// Package pdf genera la plantilla de personal de una granja en PDF (A4 apaisado).
//
// Layout:
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│  HEADER: Granja + dueño          │  STAFF ROSTER + fecha          │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  GRANJA: Ubicación / Tamaño / N° empleados                        │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  TABLA: Nombre | Email | Rol | Cargo | Alta | Capacidades          │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                                   │
//	└──────────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farm-api/internal/application/usecase"
	"github.com/jhoicas/farm-api/internal/domain/entity"
)

var _ usecase.RosterPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 34, Green: 102, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 240, Green: 245, Blue: 240}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa usecase.RosterPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateRosterPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateRosterPDF(
	_ context.Context,
	farm *entity.Account,
	staff []*entity.Account,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Staff roster", true).
		WithAuthor(farm.Email, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(farm, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(farmRow(farm, len(staff)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(staff) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No employees registered.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	m.AddRows(tableStaffRows(staff)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: granja + dueño (izq) y título + fecha (der).
func headerRow(farm *entity.Account, generatedAt time.Time) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(nonEmpty(farm.FarmName, "Farm"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(farm.DisplayName()+" <"+farm.Email+">", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("STAFF ROSTER", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generated: "+generatedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// farmRow: ubicación, tamaño y total de empleados.
func farmRow(farm *entity.Account, count int) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("FARM", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Location: %s   |   Size: %s   |   Employees: %d",
				nonEmpty(farm.FarmLocation, "—"),
				formatAcres(farm.FarmSize),
				count,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de personal.
func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Name", 2),
		h("Email", 3),
		h("Role", 1),
		h("Job title", 2),
		h("Hire date", 1),
		h("Capabilities", 3),
	)
}

// tableStaffRows: una fila por empleado, con franjas alternas.
func tableStaffRows(staff []*entity.Account) []core.Row {
	cell := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Top: 1, Left: 1, Right: 1}))
	}
	result := make([]core.Row, 0, len(staff))
	for i, a := range staff {
		hire := "—"
		if a.HireDate != nil {
			hire = a.HireDate.Format("2006-01-02")
		}
		r := row.New(7).Add(
			cell(a.DisplayName(), 2),
			cell(a.Email, 3),
			cell(entity.RoleDisplay(a.Role), 1),
			cell(nonEmpty(a.JobTitle, "—"), 2),
			cell(hire, 1),
			cell(capabilityList(a.Permissions), 3),
		)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	return result
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Capabilities are derived from each employee's role and cannot be edited individually.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

var capabilityLabels = []struct {
	cap   entity.Capability
	label string
}{
	{entity.CapManageAnimals, "Animals"},
	{entity.CapManageHealth, "Health"},
	{entity.CapManageFeeding, "Feeding"},
	{entity.CapManageInventory, "Inventory"},
	{entity.CapManageSales, "Sales"},
	{entity.CapManageEmployees, "Employees"},
	{entity.CapViewReports, "Reports"},
}

// capabilityList etiquetas de las capacidades activas, en orden fijo.
func capabilityList(p entity.Permissions) string {
	var out []string
	for _, c := range capabilityLabels {
		if p.Has(c.cap) {
			out = append(out, c.label)
		}
	}
	if len(out) == 0 {
		return "—"
	}
	return strings.Join(out, ", ")
}

func formatAcres(d *decimal.Decimal) string {
	if d == nil {
		return "—"
	}
	return d.StringFixed(2) + " acres"
}

func nonEmpty(s *string, fallback string) string {
	if s != nil && strings.TrimSpace(*s) != "" {
		return *s
	}
	return fallback
}
