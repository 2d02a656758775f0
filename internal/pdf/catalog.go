package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"galleria/internal/models"
)

// Generator renders a user's collection as a printable catalogue.
type Generator interface {
	GenerateCatalog(data CatalogData) ([]byte, error)
}

type CatalogData struct {
	OwnerName   string
	GeneratedAt time.Time
	Artworks    []*models.Artwork
}

type CatalogGenerator struct{}

func NewCatalogGenerator() *CatalogGenerator {
	return &CatalogGenerator{}
}

func (g *CatalogGenerator) GenerateCatalog(data CatalogData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Collection of %s", data.OwnerName), false)
	pdf.SetAuthor("Galleria", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "COLLECTION CATALOGUE", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	sub := fmt.Sprintf("%s  -  %s", data.OwnerName, data.GeneratedAt.Format("02.01.2006"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)

	if len(data.Artworks) == 0 {
		pdf.SetFont("Helvetica", "I", 12)
		pdf.CellFormat(0, 10, "The collection is empty.", "", 1, "L", false, 0, "")
	}

	for i, a := range data.Artworks {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, fmt.Sprintf("%d. %s", i+1, a.Title), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 11)
		if a.Artist != "" {
			pdf.CellFormat(0, 6, fmt.Sprintf("Artist: %s", a.Artist), "", 1, "L", false, 0, "")
		}
		if a.ObjectDate != "" {
			pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", a.ObjectDate), "", 1, "L", false, 0, "")
		}
		if a.Medium != "" {
			pdf.CellFormat(0, 6, fmt.Sprintf("Medium: %s", a.Medium), "", 1, "L", false, 0, "")
		}
		if a.Notes != "" {
			pdf.MultiCell(0, 6, fmt.Sprintf("Notes: %s", a.Notes), "", "L", false)
		}
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("catalog pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *CatalogGenerator) hr(pdf *gofpdf.Fpdf) {
	pdf.Ln(2)
	x, y := pdf.GetXY()
	pdf.SetDrawColor(120, 120, 120)
	pdf.Line(20, y, 190, y)
	pdf.SetXY(x, y+4)
}
