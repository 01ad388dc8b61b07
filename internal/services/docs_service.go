package services

import (
	"bytes"
	"fmt"
	"strings"

	"backend/internal/domain/models"
	"backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders printable product sheets.
type DocsService struct {
	Products  ProductStore
	RequestID string
	Loader    func(int64) (models.Product, error)
}

var continentNames = map[int]string{
	1: "Africa",
	2: "Europe",
	3: "Asia",
	4: "North America",
	5: "South America",
	6: "Australia",
	7: "Antarctica",
}

func (s DocsService) GenerateProductSheet(productID int64) ([]byte, string, error) {
	p, err := s.loadProduct(productID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_product_sheet", fmt.Sprintf("product_id=%d", productID))
	return buildProductSheetPDF(p)
}

func (s DocsService) loadProduct(id int64) (models.Product, error) {
	if s.Loader != nil {
		return s.Loader(id)
	}
	return s.Products.GetByID(id)
}

func buildProductSheetPDF(p models.Product) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Product Sheet", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PRODUCT SHEET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Title      : %s", safe(p.Title, "-")),
		fmt.Sprintf("Price      : %s", utils.FormatPrice(p.Price)),
		fmt.Sprintf("Region     : %s", safe(continentNames[p.Continents], "-")),
		fmt.Sprintf("Sold       : %d", p.Sold),
		fmt.Sprintf("Views      : %d", p.Views),
		fmt.Sprintf("Images     : %d", len(p.Images)),
		fmt.Sprintf("Product ID : #%d", p.ID),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, safe(p.Description, "No description."), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("PRODUCT_%d_%s.pdf", p.ID, safeFilenamePart(p.Title))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "item"
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == ' ', r == '-', r == '_':
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "item"
	}
	if len(out) > 40 {
		out = out[:40]
	}
	return string(out)
}
