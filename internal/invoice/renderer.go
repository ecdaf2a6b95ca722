package invoice

import (
	"bytes"
	"fmt"

	"foodnet/internal/domain"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// Renderer produces buyer-facing PDF documents for an order. All
// product and seller data comes from the item snapshots frozen at
// checkout, so later catalog edits never change an issued document.
type Renderer struct {
	merchantName string
}

func NewRenderer(merchantName string) *Renderer {
	if merchantName == "" {
		merchantName = "foodnet"
	}
	return &Renderer{merchantName: merchantName}
}

// Invoice renders the order's pricing breakdown.
func (r *Renderer) Invoice(order *domain.Order, region *domain.Region, buyer *domain.User) ([]byte, error) {
	pdf := newDocument()
	r.header(pdf, "Invoice", order.ID)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Region: %s (%s)", region.Name, region.Currency), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Billed to: %s %s, %s", buyer.FirstName, buyer.LastName, order.DeliveryAddress), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 9)
	widths := []float64{62, 14, 24, 14, 26, 26}
	for i, h := range []string{"Item", "Qty", "Unit net", "VAT %", "Line net", "Line gross"} {
		pdf.CellFormat(widths[i], 7, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range order.Items {
		snap := domain.ParseItemSnapshot(item.Snapshot)
		name := snap.ProductName
		if name == "" {
			name = item.ProductID
		}
		cells := []string{
			fmt.Sprintf("%s (%s)", name, snap.SellerName),
			fmt.Sprintf("%d", item.Quantity),
			money(snap.PriceNet, region.Currency),
			snap.VATRate.String(),
			money(item.TotalNet.Sub(item.DeliveryFeeNet), region.Currency),
			money(item.TotalGross, region.Currency),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		if !item.DeliveryFeeNet.IsZero() {
			pdf.CellFormat(widths[0], 6, fmt.Sprintf("  delivery: %s", snap.DeliveryName), "", 0, "L", false, 0, "")
			pdf.CellFormat(widths[1]+widths[2]+widths[3], 6, "", "", 0, "L", false, 0, "")
			pdf.CellFormat(widths[4], 6, money(item.DeliveryFeeNet, region.Currency), "", 1, "L", false, 0, "")
		}
		if !item.BuyerFeeNet.IsZero() {
			pdf.CellFormat(widths[0], 6, "  marketplace surcharge", "", 0, "L", false, 0, "")
			pdf.CellFormat(widths[1]+widths[2]+widths[3], 6, "", "", 0, "L", false, 0, "")
			pdf.CellFormat(widths[4], 6, money(item.BuyerFeeNet, region.Currency), "", 1, "L", false, 0, "")
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total net: %s", money(order.TotalNet, region.Currency)), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total gross: %s", money(order.TotalGross, region.Currency)), "", 1, "R", false, 0, "")

	return render(pdf)
}

// DeliveryNote renders the courier document: addresses and quantities
// without prices.
func (r *Renderer) DeliveryNote(order *domain.Order, region *domain.Region, buyer *domain.User) ([]byte, error) {
	pdf := newDocument()
	r.header(pdf, "Delivery note", order.ID)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Deliver to: %s %s", buyer.FirstName, buyer.LastName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, order.DeliveryAddress, "", 1, "L", false, 0, "")
	if order.EarliestDeliveryDate != nil {
		pdf.CellFormat(0, 6, fmt.Sprintf("Earliest delivery: %s", order.EarliestDeliveryDate.Format("2006-01-02")), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 9)
	widths := []float64{80, 16, 26, 60}
	for i, h := range []string{"Item", "Qty", "Amount", "Seller"} {
		pdf.CellFormat(widths[i], 7, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range order.Items {
		snap := domain.ParseItemSnapshot(item.Snapshot)
		cells := []string{
			snap.ProductName,
			fmt.Sprintf("%d", item.Quantity),
			fmt.Sprintf("%s %s", snap.Amount.String(), snap.Unit),
			snap.SellerName,
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return render(pdf)
}

func (r *Renderer) header(pdf *fpdf.Fpdf, title, orderID string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, r.merchantName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("%s  #%s", title, orderID), "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func newDocument() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	return pdf
}

func render(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func money(d decimal.Decimal, currency string) string {
	return d.StringFixed(2) + " " + currency
}
