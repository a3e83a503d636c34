package business

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Businesses"

var exportHeader = []string{
	"ID",
	"Name",
	"Tax ID",
	"Address",
	"Phone",
	"Email",
	"Website",
	"Industry",
	"Contact Person",
	"Bank Account",
	"Bank Name",
	"Custom Fields",
	"Notes",
	"Created At",
}

// renderXLSX builds the directory export workbook: one sheet, a styled
// header row, one row per business ordered as given.
func renderXLSX(businesses []Business) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("business: create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("business: header style: %w", err)
	}

	for col, header := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("business: header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("business: set header %s: %w", cell, err)
		}
		if err := f.SetCellStyle(exportSheet, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("business: style header %s: %w", cell, err)
		}
	}

	for i, b := range businesses {
		values := []any{
			b.ID,
			b.Name,
			b.TaxID,
			derefOrEmpty(b.Address),
			derefOrEmpty(b.Phone),
			derefOrEmpty(b.Email),
			derefOrEmpty(b.Website),
			derefOrEmpty(b.Industry),
			derefOrEmpty(b.ContactPerson),
			derefOrEmpty(b.BankAccount),
			derefOrEmpty(b.BankName),
			flattenCustomFields(b.CustomFields),
			derefOrEmpty(b.Notes),
			b.CreatedAt.Format(time.RFC3339),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("business: data cell: %w", err)
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("business: set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("business: write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("business: close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// flattenCustomFields serializes the open mapping for a single cell.
func flattenCustomFields(fields map[string]string) string {
	if len(fields) == 0 {
		return ""
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return ""
	}
	return string(data)
}
