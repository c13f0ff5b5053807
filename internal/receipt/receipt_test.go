package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	lines := []Line{
		{Model: "iPhone 15 Pro", IMEI: "111111111111111", SalePrice: 1000, Date: "2024-01-01 10:00:00"},
		{Model: "iPhone 14", IMEI: "222222222222222", SalePrice: 750.5, Date: "2024-01-01 10:00:00"},
	}

	html, err := Render("Maks Mobiles", lines)
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "Maks Mobiles")
	assert.Contains(t, out, "iPhone 15 Pro")
	assert.Contains(t, out, "111111111111111")
	assert.Contains(t, out, "Rs.1000.00")
	assert.Contains(t, out, "Rs.750.50")
	assert.Contains(t, out, "Rs.1750.50", "total row must sum the lines")
	assert.Contains(t, out, "Powered by Maks POS")
	assert.Contains(t, out, "Warranty")
}

func TestRenderEmpty(t *testing.T) {
	html, err := Render("Maks Mobiles", nil)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Rs.0.00")
}

func TestRenderEscapesMarkup(t *testing.T) {
	lines := []Line{
		{Model: "<script>alert(1)</script>", IMEI: "111111111111111", SalePrice: 10},
	}

	html, err := Render("Shop", lines)
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>alert(1)</script>")
}
