// Package receipt renders the printable document handed to the customer
// after checkout. Rendering happens after the sale has committed; a render
// failure never rolls the sale back.
package receipt

import (
	"bytes"
	"html/template"
	"time"
)

// Line is one sold handset on the receipt.
type Line struct {
	Model     string  `json:"model"`
	IMEI      string  `json:"imei"`
	SalePrice float64 `json:"sale_price"`
	Date      string  `json:"date"`
}

type receiptData struct {
	Branch string
	Date   string
	Lines  []Line
	Total  float64
}

var tmpl = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Branch}} - Receipt</title>
<style>
body { font-family: Arial, sans-serif; font-size: 14px; color: #111; max-width: 600px; margin: 0 auto; padding: 20px; }
h1 { margin: 0; color: #2563eb; text-align: center; }
.header { text-align: center; margin-bottom: 20px; }
table { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
th, td { border: 1px solid #ccc; padding: 8px; }
th { background: #f3f4f6; }
tr.total { background: #e0f7fa; font-weight: bold; }
.footer { margin-top: 20px; font-size: 12px; line-height: 1.4; }
.powered { font-style: italic; color: #555; text-align: right; }
</style>
</head>
<body>
<div class="header">
<h1>{{.Branch}}</h1>
<p>Date: {{.Date}}</p>
<hr>
</div>
<table>
<thead>
<tr><th>Model</th><th>IMEI</th><th>Price (Rs.)</th></tr>
</thead>
<tbody>
{{range .Lines}}<tr><td>{{.Model}}</td><td>{{.IMEI}}</td><td>Rs.{{printf "%.2f" .SalePrice}}</td></tr>
{{end}}<tr class="total"><td colspan="2">Total</td><td>Rs.{{printf "%.2f" .Total}}</td></tr>
</tbody>
</table>
<div class="footer">
<p>Please verify all accessories, IMEI, and device condition at the counter. No claims accepted after leaving the shop.</p>
<p>Warranty only covers display, camera, and battery check on spot.</p>
<p>Warranty claims are valid only if original packaging and invoice are retained.</p>
<p>Thank you for shopping!</p>
<p class="powered">Powered by Maks POS</p>
</div>
</body>
</html>
`))

// Render produces the printable receipt for the given lines and branch
// label.
func Render(branch string, lines []Line) ([]byte, error) {
	var total float64
	for _, line := range lines {
		total += line.SalePrice
	}

	data := receiptData{
		Branch: branch,
		Date:   time.Now().Format("2006-01-02 15:04:05"),
		Lines:  lines,
		Total:  total,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
