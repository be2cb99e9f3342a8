package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"agrosense/crop-advisor-backend/internal/recommend"
)

// PDFWriter renders a recommendation as a one-page printable report.
type PDFWriter struct {
	pdf *gofpdf.Fpdf
}

// NewPDFWriter creates an A4 portrait report.
func NewPDFWriter() *PDFWriter {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	return &PDFWriter{pdf: pdf}
}

// Write renders the recommendation and streams the document out.
func (p *PDFWriter) Write(rec *recommend.Recommendation, w io.Writer) error {
	p.pdf.AddPage()
	p.addTitle(rec)
	p.addFieldSummary(rec)
	p.addIndices(rec)
	p.addCropTable(rec)
	p.addRiskNotes(rec)
	if err := p.pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

func (p *PDFWriter) addTitle(rec *recommend.Recommendation) {
	p.pdf.SetFont("Arial", "B", 16)
	p.pdf.SetTextColor(0, 0, 0)
	p.pdf.CellFormat(0, 10, "Crop Suitability Report", "", 1, "C", false, 0, "")

	p.pdf.SetFont("Arial", "", 9)
	p.pdf.SetTextColor(128, 128, 128)
	generated := fmt.Sprintf("Generated: %s", rec.GeneratedAt.Format(time.DateOnly))
	p.pdf.CellFormat(0, 6, generated, "", 1, "R", false, 0, "")
	p.pdf.Ln(2)
}

func (p *PDFWriter) addFieldSummary(rec *recommend.Recommendation) {
	p.pdf.SetFont("Arial", "", 10)
	p.pdf.SetTextColor(0, 0, 0)
	p.keyValue("Location", fmt.Sprintf("%.4f, %.4f", rec.Latitude, rec.Longitude))
	p.keyValue("Field area", fmt.Sprintf("%.1f ha", rec.AreaHa))
	if rec.Soil != nil {
		p.keyValue("Soil texture", rec.Soil.TextureClass)
		p.keyValue("Soil pH", fmt.Sprintf("%.1f", rec.Soil.PHWater))
	}
	p.pdf.Ln(3)
}

func (p *PDFWriter) addIndices(rec *recommend.Recommendation) {
	if rec.Indices == nil {
		return
	}
	p.pdf.SetFont("Arial", "B", 12)
	p.pdf.CellFormat(0, 8, "Agroclimatic indices", "", 1, "L", false, 0, "")
	p.pdf.SetFont("Arial", "", 10)

	if gdd := rec.Indices.GDD; gdd != nil {
		p.keyValue("Growing degree days", fmt.Sprintf("%.0f", gdd.Total))
	}
	if gtk := rec.Indices.GTK; gtk != nil {
		p.keyValue("Hydrothermal coefficient", fmt.Sprintf("%.2f (%s)", gtk.Value, gtk.Interpretation))
	}
	if spi := rec.Indices.SPI; spi != nil {
		p.keyValue("Precipitation index (SPI)", fmt.Sprintf("%.2f (%s)", spi.Latest, spi.Interpretation))
	}
	if lai := rec.Indices.LAI; lai != nil {
		p.keyValue("Leaf area index", fmt.Sprintf("%.2f (NDVI mean %.3f)", lai.LAI, lai.NDVIMean))
	}
	p.pdf.Ln(3)
}

func (p *PDFWriter) addCropTable(rec *recommend.Recommendation) {
	p.pdf.SetFont("Arial", "B", 12)
	p.pdf.CellFormat(0, 8, "Recommended crops", "", 1, "L", false, 0, "")

	widths := []float64{10, 34, 22, 24, 28, 28, 22, 22}
	headers := []string{"#", "Crop", "Rating", "Suitability", "Yield, c/ha", "Profit/ha", "ROI, %", "Risk"}

	p.pdf.SetFont("Arial", "B", 9)
	p.pdf.SetFillColor(68, 114, 196)
	p.pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		p.pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	p.pdf.Ln(-1)

	p.pdf.SetFont("Arial", "", 9)
	p.pdf.SetTextColor(0, 0, 0)
	for i, advice := range rec.TopCrops {
		fill := i%2 == 1
		p.pdf.SetFillColor(242, 242, 242)

		yield := "-"
		if advice.YieldForecast != nil {
			yield = fmt.Sprintf("%.1f", *advice.YieldForecast)
		}
		profit, roi := "-", "-"
		if advice.Economics != nil {
			profit = fmt.Sprintf("%.0f", advice.Economics.Profit)
			roi = fmt.Sprintf("%.1f", advice.Economics.ROIPercent)
		}

		cells := []string{
			fmt.Sprintf("%d", i+1),
			advice.Suitability.CropName,
			fmt.Sprintf("%.1f", advice.FinalRating),
			fmt.Sprintf("%.1f", advice.Suitability.Score),
			yield,
			profit,
			roi,
			fmt.Sprintf("%.0f", advice.Risk.TotalRisk),
		}
		for j, c := range cells {
			align := "R"
			if j == 1 {
				align = "L"
			}
			p.pdf.CellFormat(widths[j], 7, c, "1", 0, align, fill, 0, "")
		}
		p.pdf.Ln(-1)
	}
	p.pdf.Ln(4)
}

func (p *PDFWriter) addRiskNotes(rec *recommend.Recommendation) {
	if len(rec.TopCrops) == 0 {
		return
	}
	p.pdf.SetFont("Arial", "B", 12)
	p.pdf.CellFormat(0, 8, "Risk notes", "", 1, "L", false, 0, "")
	p.pdf.SetFont("Arial", "", 9)
	for _, advice := range rec.TopCrops {
		line := fmt.Sprintf("%s: %s. %s",
			advice.Suitability.CropName, advice.Risk.Interpretation, advice.Risk.Recommendation)
		p.pdf.MultiCell(0, 5, line, "", "L", false)
		p.pdf.Ln(1)
	}
}

func (p *PDFWriter) keyValue(key, value string) {
	p.pdf.CellFormat(55, 6, key, "", 0, "L", false, 0, "")
	p.pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}
