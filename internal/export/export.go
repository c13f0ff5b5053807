// Package export renders sale history for download. It is read-only and
// feeds nothing back into the workflow.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"go-phoneshop-pos/internal/model"
)

var header = []string{"Product", "IMEI", "Cost Price", "Sale Price", "Profit", "Date"}

const dateLayout = "2006-01-02 15:04:05"

func soldAt(s model.Sale) string {
	if s.SoldAt.IsZero() {
		return ""
	}
	return s.SoldAt.Format(dateLayout)
}

// CSV renders the sales as a comma-separated document.
func CSV(sales []model.Sale) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, s := range sales {
		record := []string{
			s.ProductName,
			s.IMEI,
			strconv.FormatFloat(s.CostPrice, 'f', 2, 64),
			strconv.FormatFloat(s.SalePrice, 'f', 2, 64),
			strconv.FormatFloat(s.Profit, 'f', 2, 64),
			soldAt(s),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// XLSX renders the sales as a spreadsheet with one "Sales" sheet.
func XLSX(sales []model.Sale) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sales"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for row, s := range sales {
		values := []interface{}{
			s.ProductName,
			s.IMEI,
			s.CostPrice,
			s.SalePrice,
			s.Profit,
			soldAt(s),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
