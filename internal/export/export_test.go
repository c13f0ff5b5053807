package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"go-phoneshop-pos/internal/model"
)

func testSales() []model.Sale {
	soldAt := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	return []model.Sale{
		{
			ProductName: "iPhone 15 Pro",
			IMEI:        "111111111111111",
			CostPrice:   850,
			SalePrice:   1000,
			Profit:      150,
			SoldAt:      soldAt,
		},
		{
			ProductName: "iPhone 14",
			IMEI:        "222222222222222",
			CostPrice:   600,
			SalePrice:   750,
			Profit:      150,
		},
	}
}

func TestCSV(t *testing.T) {
	out, err := CSV(testSales())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, header, records[0])
	assert.Equal(t, []string{"iPhone 15 Pro", "111111111111111", "850.00", "1000.00", "150.00", "2024-03-15 14:30:00"}, records[1])

	// Undated sales export with an empty date cell.
	assert.Equal(t, "", records[2][5])
}

func TestCSVEmpty(t *testing.T) {
	out, err := CSV(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, header, records[0])
}

func TestXLSX(t *testing.T) {
	out, err := XLSX(testSales())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Sales"}, f.GetSheetList())

	rows, err := f.GetRows("Sales")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, header, rows[0])
	assert.Equal(t, "iPhone 15 Pro", rows[1][0])
	assert.Equal(t, "111111111111111", rows[1][1])
	assert.Equal(t, "2024-03-15 14:30:00", rows[1][5])
}
