package admin

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/skip2/go-qrcode"

	"cr-records/internal/models"
)

// invoiceTemplate renders a printable document for one order. The tax row is
// omitted when the tax is zero.
var invoiceTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	"dash": func(s string) string {
		if s == "" {
			return "—"
		}
		return s
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<title>Invoice - {{.Order.ID}}</title>
<style>
body{font-family:Arial,sans-serif;padding:40px;max-width:800px;margin:0 auto;}
table{width:100%;border-collapse:collapse;margin:20px 0;}
th,td{padding:10px;text-align:left;border-bottom:1px solid #ddd;}
th{background:#f8f9fa;}
.text-end{text-align:right;}
.invoice-header{display:flex;justify-content:space-between;margin-bottom:30px;}
.total-row{font-weight:bold;font-size:1.1em;}
@media print{body{padding:20px;}}
</style>
</head>
<body>
<div class="invoice-header">
<div><h1>Invoice</h1><p>Cyrus Reigns Records</p></div>
<div style="text-align:right;">
<p><strong>Invoice #:</strong> {{.Order.ID}}</p>
<p><strong>Date:</strong> {{.Order.CreatedAt.Format "January 2, 2006"}}</p>
<p><strong>Status:</strong> {{.Order.PaymentStatus}}</p>
</div>
</div>
<div style="margin-bottom:30px;"><h3>Bill To:</h3>
<p>{{.Order.Customer.FullName}}<br>
{{.Order.Customer.Address1}}<br>
{{if .Order.Customer.Address2}}{{.Order.Customer.Address2}}<br>{{end}}
{{.Order.Customer.City}}, {{.Order.Customer.State}} {{.Order.Customer.Zip}}<br>
{{.Order.Customer.Country}}</p>
</div>
<table>
<thead><tr><th>Item</th><th>Size</th><th>Qty</th><th class="text-end">Price</th><th class="text-end">Total</th></tr></thead>
<tbody>
{{range .Order.Items}}<tr><td>{{.Name}}</td><td>{{dash .Size}}</td><td>{{.Quantity}}</td><td class="text-end">{{money .Price}}</td><td class="text-end">{{money .LineTotal}}</td></tr>
{{end}}</tbody>
<tfoot>
<tr><td colspan="4" class="text-end">Subtotal:</td><td class="text-end">{{money .Order.Subtotal}}</td></tr>
<tr><td colspan="4" class="text-end">Shipping ({{.Order.Shipping.Method}}):</td><td class="text-end">{{money .Order.Shipping.Cost}}</td></tr>
{{if gt .Order.Tax 0.0}}<tr><td colspan="4" class="text-end">Tax:</td><td class="text-end">{{money .Order.Tax}}</td></tr>
{{end}}<tr class="total-row"><td colspan="4" class="text-end">Total:</td><td class="text-end">{{money .Order.Total}}</td></tr>
</tfoot>
</table>
{{if .QRDataURI}}<div style="text-align:center;margin-top:20px;">
<img src="{{.QRDataURI}}" alt="Order reference" width="128" height="128">
</div>
{{end}}<div style="margin-top:40px;padding-top:20px;border-top:1px solid #ddd;text-align:center;color:#666;">
<p>Thank you for your order!</p>
<p>Cyrus Reigns Records - Reigning Over Darkness</p>
</div>
</body>
</html>
`))

type invoiceData struct {
	Order     models.Order
	QRDataURI template.URL
}

// Invoice renders the printable HTML invoice for one order, with a QR code
// carrying the order reference.
func (s *Service) Invoice(ctx context.Context, id string) ([]byte, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	data := invoiceData{Order: *order}
	if png, err := qrcode.Encode(order.ID, qrcode.Medium, 256); err == nil {
		data.QRDataURI = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
	} else {
		s.Logger.Warn("ADMIN", fmt.Sprintf("QR generation failed for %s: %v", id, err))
	}

	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render invoice: %w", err)
	}
	return buf.Bytes(), nil
}
