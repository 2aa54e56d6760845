package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/tlind/coachdesk/internal/model"
)

// Compile-time check that *PDFRenderer satisfies Renderer.
var _ Renderer = (*PDFRenderer)(nil)

// Page geometry in millimetres (A4 portrait).
const (
	pageWidth  = 210.0
	marginSide = 18.0
	logoWidth  = 28.0
)

// fixedCreationDate pins the PDF metadata clock so that identical inputs
// produce byte-identical files.
var fixedCreationDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// PDFRenderer lays out plan documents with go-pdf/fpdf. It is stateless and
// safe for concurrent use; every Render call builds a fresh fpdf instance.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render produces the PDF: a cover page with the coach's front matter, one
// block per selected item, and the footer text as closing matter.
func (r *PDFRenderer) Render(doc PlanDocument, style StyleParams) ([]byte, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}

	ar, ag, ab := style.AccentRGB()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s - %s", doc.Kind.Title(), doc.ClientName), true)
	pdf.SetCreationDate(fixedCreationDate)
	pdf.SetMargins(marginSide, 20, marginSide)
	pdf.SetAutoPageBreak(true, 24)

	// Cover page.
	pdf.AddPage()
	if doc.ShowLogo && len(doc.Logo) > 0 {
		r.placeLogo(pdf, doc.Logo, style.LogoPosition)
		pdf.Ln(8)
	}

	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetTextColor(ar, ag, ab)
	pdf.MultiCell(0, 12, doc.Heading, "", "C", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(60, 60, 60)
	pdf.MultiCell(0, 8, fmt.Sprintf("%s for %s", doc.Kind.Title(), doc.ClientName), "", "C", false)
	pdf.Ln(6)

	if doc.Body != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(80, 80, 80)
		pdf.MultiCell(0, 6, doc.Body, "", "C", false)
	}

	// One block per selected item, in selection order.
	pdf.AddPage()
	for i, item := range doc.Items {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetTextColor(ar, ag, ab)
		pdf.MultiCell(0, 7, fmt.Sprintf("%d. %s", i+1, item.Title), "", "L", false)

		pdf.SetFont("Helvetica", "", 10.5)
		pdf.SetTextColor(40, 40, 40)
		for _, line := range item.Details {
			pdf.MultiCell(0, 5.5, line, "", "L", false)
		}
		pdf.Ln(4)
	}

	// Closing matter.
	if doc.Footer != "" {
		pdf.Ln(6)
		pdf.SetDrawColor(ar, ag, ab)
		pdf.Line(marginSide, pdf.GetY(), pageWidth-marginSide, pdf.GetY())
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9.5)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, doc.Footer, "", "C", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render: writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// placeLogo registers the already-fetched PNG bytes and draws them at the
// configured position on the cover page.
func (r *PDFRenderer) placeLogo(pdf *fpdf.Fpdf, png []byte, position string) {
	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("brand-logo", opts, bytes.NewReader(png))
	if pdf.Err() {
		// A corrupt logo must not sink the whole document; render without it.
		pdf.ClearError()
		return
	}

	x := marginSide
	switch position {
	case model.LogoCenter:
		x = (pageWidth - logoWidth) / 2
	case model.LogoRight:
		x = pageWidth - marginSide - logoWidth
	}
	pdf.ImageOptions("brand-logo", x, pdf.GetY(), logoWidth, 0, true, opts, 0, "")
}
