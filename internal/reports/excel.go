package reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Report"

// RenderXLSX renders a document as a single-sheet Excel workbook.
func RenderXLSX(doc Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	f.SetCellValue(sheetName, "A1", doc.Title)
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetCellValue(sheetName, "A2", doc.Subtitle)

	rowIdx := 4
	for _, row := range doc.Rows {
		labelCell := fmt.Sprintf("A%d", rowIdx)
		valueCell := fmt.Sprintf("B%d", rowIdx)
		f.SetCellValue(sheetName, labelCell, row.Label)
		f.SetCellValue(sheetName, valueCell, row.Value)
		if row.Emphasize {
			f.SetCellStyle(sheetName, labelCell, valueCell, boldStyle)
		}
		rowIdx++
	}

	f.SetColWidth(sheetName, "A", "A", 32)
	f.SetColWidth(sheetName, "B", "B", 20)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}
