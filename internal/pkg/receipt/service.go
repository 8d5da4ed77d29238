// internal/pkg/receipt/service.go
package receipt

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"github.com/your-org/glowing-legacy-backend/internal/config"
	"github.com/your-org/glowing-legacy-backend/internal/domain/order"
	"github.com/your-org/glowing-legacy-backend/internal/pkg/money"
)

// Service generates PDF receipts for placed orders
type Service struct {
	config *config.Config
}

// NewService creates a new receipt service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateReceipt renders a PDF receipt for an order
func (s *Service) GenerateReceipt(placed *order.Order) (*bytes.Buffer, error) {
	htmlContent, err := s.generateHTML(s.buildReceiptData(placed))
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

func (s *Service) buildReceiptData(placed *order.Order) ReceiptData {
	data := ReceiptData{
		ReceiptNumber: fmt.Sprintf("RCT-%s", placed.OrderNumber),
		ReceiptDate:   time.Now().Format("January 2, 2006"),
		OrderNumber:   placed.OrderNumber,
		OrderDate:     placed.CreatedAt.Format("January 2, 2006"),
		Status:        string(placed.Status),
		Email:         placed.Email,
		ShippingAddr:  placed.ShippingAddress,
		Subtotal:      money.FormatPrice(placed.Subtotal),
		Tax:           money.FormatPrice(placed.Tax),
		Shipping:      money.FormatPrice(placed.Shipping),
		Total:         money.FormatPrice(placed.Total),
		Company: CompanyInfo{
			Name:    s.config.App.CompanyName,
			Address: s.config.App.CompanyAddress,
			Email:   s.config.App.CompanyEmail,
			Website: s.config.App.CompanyWebsite,
		},
	}

	if placed.Discount > 0 {
		data.Discount = money.FormatPrice(placed.Discount)
	}

	for _, item := range placed.Items {
		data.Items = append(data.Items, ReceiptItem{
			Name:           item.ProductName,
			VariantDetails: item.VariantDetails,
			Quantity:       item.Quantity,
			UnitPrice:      money.FormatPrice(item.UnitPrice),
			Subtotal:       money.FormatPrice(item.Subtotal),
		})
	}

	return data
}

// generateHTML generates HTML content from the receipt template
func (s *Service) generateHTML(data ReceiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// ReceiptData represents the data passed to the receipt template.
// Amounts are pre-formatted strings so the template stays dumb.
type ReceiptData struct {
	ReceiptNumber string
	ReceiptDate   string
	OrderNumber   string
	OrderDate     string
	Status        string
	Email         string
	ShippingAddr  order.Address
	Items         []ReceiptItem
	Subtotal      string
	Discount      string
	Shipping      string
	Tax           string
	Total         string
	Company       CompanyInfo
}

// ReceiptItem represents one line on the receipt
type ReceiptItem struct {
	Name           string
	VariantDetails string
	Quantity       int
	UnitPrice      string
	Subtotal       string
}

// CompanyInfo represents company information printed on the receipt
type CompanyInfo struct {
	Name    string
	Address string
	Email   string
	Website string
}

// Receipt HTML template
const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.ReceiptNumber}}</title>
    <style>
        body {
            font-family: Georgia, serif;
            margin: 0;
            padding: 20px;
            color: #3b3228;
        }
        .header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 30px;
            border-bottom: 2px solid #e8e1d6;
            padding-bottom: 20px;
        }
        .company-info {
            flex: 1;
        }
        .receipt-info {
            text-align: right;
            flex: 1;
        }
        .receipt-title {
            font-size: 28px;
            font-weight: bold;
            color: #9a7b4f;
            margin-bottom: 10px;
        }
        .addresses {
            margin-bottom: 30px;
        }
        .section-title {
            font-size: 16px;
            font-weight: bold;
            margin-bottom: 10px;
            color: #5c5242;
        }
        .items-table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 30px;
        }
        .items-table th,
        .items-table td {
            border: 1px solid #e0d8ca;
            padding: 12px 8px;
            text-align: left;
        }
        .items-table th {
            background-color: #faf7f2;
            font-weight: bold;
        }
        .items-table .qty-col,
        .items-table .price-col,
        .items-table .total-col {
            text-align: right;
            width: 90px;
        }
        .totals {
            float: right;
            width: 300px;
        }
        .totals table {
            width: 100%;
            border-collapse: collapse;
        }
        .totals td {
            padding: 8px;
            border-bottom: 1px solid #e8e1d6;
        }
        .totals .label {
            text-align: right;
            font-weight: bold;
        }
        .totals .amount {
            text-align: right;
            width: 110px;
        }
        .total-row {
            font-size: 18px;
            font-weight: bold;
            border-top: 2px solid #3b3228 !important;
        }
        .footer {
            margin-top: 50px;
            padding-top: 20px;
            border-top: 1px solid #e8e1d6;
            text-align: center;
            color: #8a7f72;
            font-size: 12px;
        }
    </style>
</head>
<body>
    <div class="header">
        <div class="company-info">
            <h1>{{.Company.Name}}</h1>
            {{if .Company.Address}}<p>{{.Company.Address}}</p>{{end}}
            <p>Email: {{.Company.Email}}</p>
            <p>{{.Company.Website}}</p>
        </div>
        <div class="receipt-info">
            <div class="receipt-title">RECEIPT</div>
            <p><strong>Receipt #:</strong> {{.ReceiptNumber}}</p>
            <p><strong>Receipt Date:</strong> {{.ReceiptDate}}</p>
            <p><strong>Order #:</strong> {{.OrderNumber}}</p>
            <p><strong>Order Date:</strong> {{.OrderDate}}</p>
            <p><strong>Status:</strong> {{.Status}}</p>
        </div>
    </div>

    <div class="addresses">
        <div class="section-title">Ship To:</div>
        <p><strong>{{.ShippingAddr.FirstName}} {{.ShippingAddr.LastName}}</strong></p>
        <p>{{.ShippingAddr.AddressLine1}}</p>
        {{if .ShippingAddr.AddressLine2}}<p>{{.ShippingAddr.AddressLine2}}</p>{{end}}
        <p>{{.ShippingAddr.City}}, {{.ShippingAddr.State}} {{.ShippingAddr.PostalCode}}</p>
        <p>{{.ShippingAddr.Country}}</p>
        {{if .ShippingAddr.Phone}}<p>Phone: {{.ShippingAddr.Phone}}</p>{{end}}
        <p>Email: {{.Email}}</p>
    </div>

    <table class="items-table">
        <thead>
            <tr>
                <th>Item</th>
                <th class="qty-col">Qty</th>
                <th class="price-col">Price</th>
                <th class="total-col">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Items}}
            <tr>
                <td>
                    <strong>{{.Name}}</strong>
                    {{if .VariantDetails}}<br><small>{{.VariantDetails}}</small>{{end}}
                </td>
                <td class="qty-col">{{.Quantity}}</td>
                <td class="price-col">{{.UnitPrice}}</td>
                <td class="total-col">{{.Subtotal}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <table>
            <tr>
                <td class="label">Subtotal:</td>
                <td class="amount">{{.Subtotal}}</td>
            </tr>
            {{if .Discount}}
            <tr>
                <td class="label">Discount:</td>
                <td class="amount">-{{.Discount}}</td>
            </tr>
            {{end}}
            <tr>
                <td class="label">Shipping:</td>
                <td class="amount">{{.Shipping}}</td>
            </tr>
            <tr>
                <td class="label">Tax:</td>
                <td class="amount">{{.Tax}}</td>
            </tr>
            <tr class="total-row">
                <td class="label">Total:</td>
                <td class="amount">{{.Total}}</td>
            </tr>
        </table>
    </div>

    <div style="clear: both;"></div>

    <div class="footer">
        <p>Thank you for building your legacy with us.</p>
        <p>If you have any questions about this receipt, please contact us at {{.Company.Email}}</p>
    </div>
</body>
</html>
`
