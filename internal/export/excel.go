package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"agrosense/crop-advisor-backend/internal/recommend"
)

const (
	summarySheet = "Summary"
	cropsSheet   = "Crops"
	costsSheet   = "Costs"
)

// ExcelWriter renders a recommendation as a styled workbook.
type ExcelWriter struct {
	file          *excelize.File
	headerStyleID int
	moneyStyleID  int
}

// NewExcelWriter creates the workbook and its shared styles.
func NewExcelWriter() (*ExcelWriter, error) {
	file := excelize.NewFile()
	file.SetSheetName("Sheet1", summarySheet)

	headerStyleID, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	moneyFormat := "#,##0"
	moneyStyleID, err := file.NewStyle(&excelize.Style{CustomNumFmt: &moneyFormat})
	if err != nil {
		return nil, fmt.Errorf("failed to create number style: %w", err)
	}

	return &ExcelWriter{
		file:          file,
		headerStyleID: headerStyleID,
		moneyStyleID:  moneyStyleID,
	}, nil
}

// Write fills the workbook from a recommendation and streams it out.
func (e *ExcelWriter) Write(rec *recommend.Recommendation, w io.Writer) error {
	if err := e.writeSummary(rec); err != nil {
		return err
	}
	if err := e.writeCrops(rec); err != nil {
		return err
	}
	if err := e.writeCosts(rec); err != nil {
		return err
	}
	return e.file.Write(w)
}

// Close releases the underlying workbook.
func (e *ExcelWriter) Close() error {
	return e.file.Close()
}

func (e *ExcelWriter) writeSummary(rec *recommend.Recommendation) error {
	rows := [][]interface{}{
		{"Recommendation ID", rec.ID.String()},
		{"Generated at", rec.GeneratedAt.Format("2006-01-02 15:04")},
		{"Latitude", rec.Latitude},
		{"Longitude", rec.Longitude},
		{"Area, ha", rec.AreaHa},
	}
	if rec.Indices != nil {
		if rec.Indices.GDD != nil {
			rows = append(rows, []interface{}{"GDD total", rec.Indices.GDD.Total})
		}
		if rec.Indices.GTK != nil {
			rows = append(rows, []interface{}{"GTK", rec.Indices.GTK.Value})
			rows = append(rows, []interface{}{"Moisture regime", rec.Indices.GTK.Interpretation})
		}
		if rec.Indices.SPI != nil {
			rows = append(rows, []interface{}{"SPI (latest)", rec.Indices.SPI.Latest})
			rows = append(rows, []interface{}{"Precipitation regime", rec.Indices.SPI.Interpretation})
		}
		if rec.Indices.LAI != nil {
			rows = append(rows, []interface{}{"LAI estimate", rec.Indices.LAI.LAI})
			rows = append(rows, []interface{}{"NDVI mean", rec.Indices.LAI.NDVIMean})
		}
	}
	if rec.Soil != nil {
		rows = append(rows, []interface{}{"Soil texture", rec.Soil.TextureClass})
		rows = append(rows, []interface{}{"Soil pH (water)", rec.Soil.PHWater})
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := e.file.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	e.file.SetColWidth(summarySheet, "A", "A", 24)
	e.file.SetColWidth(summarySheet, "B", "B", 28)
	return nil
}

func (e *ExcelWriter) writeCrops(rec *recommend.Recommendation) error {
	if _, err := e.file.NewSheet(cropsSheet); err != nil {
		return fmt.Errorf("failed to create crops sheet: %w", err)
	}

	header := []interface{}{
		"Rank", "Crop", "Final rating", "Suitability", "Verdict",
		"Yield, c/ha", "Revenue", "Costs", "Profit", "ROI, %", "Risk", "Risk level",
	}
	if err := e.file.SetSheetRow(cropsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write crops header: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	e.file.SetCellStyle(cropsSheet, "A1", lastCol+"1", e.headerStyleID)
	e.file.SetPanes(cropsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	for i, advice := range rec.TopCrops {
		row := []interface{}{
			i + 1,
			advice.Suitability.CropName,
			advice.FinalRating,
			advice.Suitability.Score,
			advice.Suitability.Interpretation,
		}
		if advice.YieldForecast != nil {
			row = append(row, *advice.YieldForecast)
		} else {
			row = append(row, "")
		}
		if advice.Economics != nil {
			row = append(row,
				advice.Economics.Revenue,
				advice.Economics.TotalCost,
				advice.Economics.Profit,
				advice.Economics.ROIPercent,
			)
		} else {
			row = append(row, "", "", "", "")
		}
		row = append(row, advice.Risk.TotalRisk, advice.Risk.Interpretation)

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := e.file.SetSheetRow(cropsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write crop row: %w", err)
		}
		e.file.SetCellStyle(cropsSheet, fmt.Sprintf("G%d", i+2), fmt.Sprintf("I%d", i+2), e.moneyStyleID)
	}

	e.file.SetColWidth(cropsSheet, "B", "B", 16)
	e.file.SetColWidth(cropsSheet, "E", "E", 24)
	e.file.SetColWidth(cropsSheet, "L", "L", 18)
	if len(rec.TopCrops) > 0 {
		e.file.AutoFilter(cropsSheet, fmt.Sprintf("A1:%s%d", lastCol, len(rec.TopCrops)+1), nil)
	}
	return nil
}

func (e *ExcelWriter) writeCosts(rec *recommend.Recommendation) error {
	if _, err := e.file.NewSheet(costsSheet); err != nil {
		return fmt.Errorf("failed to create costs sheet: %w", err)
	}

	header := []interface{}{
		"Crop", "Seeds", "Fertilizers", "Crop protection", "Fuel",
		"Machinery", "Labor", "Other", "Total per ha",
	}
	if err := e.file.SetSheetRow(costsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write costs header: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	e.file.SetCellStyle(costsSheet, "A1", lastCol+"1", e.headerStyleID)

	rowNum := 2
	for _, advice := range rec.TopCrops {
		if advice.Economics == nil {
			continue
		}
		c := advice.Economics.Costs
		row := []interface{}{
			advice.Suitability.CropName,
			c.Seeds, c.Fertilizers, c.Pesticides, c.Fuel,
			c.Machinery, c.Labor, c.Other, c.Total(),
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := e.file.SetSheetRow(costsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write cost row: %w", err)
		}
		e.file.SetCellStyle(costsSheet, fmt.Sprintf("B%d", rowNum), fmt.Sprintf("I%d", rowNum), e.moneyStyleID)
		rowNum++
	}

	e.file.SetColWidth(costsSheet, "A", "A", 16)
	return nil
}
