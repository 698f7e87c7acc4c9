// Package pdf renders the printable order receipt handed to the
// dispatch team and attached to confirmation emails.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Brand name         │  Order number + Date          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SHIP TO: Customer name + address + contact                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Qty | Item | Options | Unit Price | Subtotal        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Subtotal / Shipping / GRAND TOTAL                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: care note + return policy line                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	apporder "github.com/aaryaethnics/storefront-api/internal/application/order"
	"github.com/aaryaethnics/storefront-api/internal/domain/entity"
)

const brandName = "Aarya Ethnics"

var (
	colorPrimary = &props.Color{Red: 128, Green: 0, Blue: 32} // maroon
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ apporder.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implements order.ReceiptGenerator using Maroto v2.
type MarotoReceiptGenerator struct{}

func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceipt renders the order receipt and returns its bytes.
func (g *MarotoReceiptGenerator) GenerateReceipt(_ context.Context, order *entity.Order) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Order Receipt "+order.Number, true).
		WithAuthor(brandName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(shipToRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(order.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(order))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: brand (left), order number and date (right).
func headerRow(order *entity.Order) core.Row {
	date := order.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(brandName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Handcrafted ethnic wear", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDER RECEIPT", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(order.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+date, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// shipToRow: delivery address and contact.
func shipToRow(order *entity.Order) core.Row {
	address := order.AddressLine1
	if order.AddressLine2 != "" {
		address += ", " + order.AddressLine2
	}
	address += fmt.Sprintf(", %s, %s %s", order.City, order.State, order.PostalCode)

	return row.New(16).Add(
		col.New(12).Add(
			text.New("SHIP TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(order.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(address, props.Text{Size: 8, Top: 11, Color: colorGray}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s", order.Email, order.Phone),
				props.Text{Size: 8, Top: 15, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Item", 4, align.Left),
		h("Options", 3, align.Left),
		h("Unit Price", 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

// tableItemRows: one row per order line.
func tableItemRows(items []entity.OrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				it.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				it.Options,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
			)),
			col.New(2).Add(text.New(
				"₹"+formatMoney(it.UnitPrice.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"₹"+formatMoney(it.Subtotal.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: right-aligned totals block.
func totalsRow(order *entity.Order) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	shipping := "FREE"
	if !order.ShippingFee.IsZero() {
		shipping = "₹" + formatMoney(order.ShippingFee.StringFixed(0))
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			label("Shipping:"),
			grandLabel("GRAND TOTAL:"),
		),
		col.New(3).Add(
			value("₹"+formatMoney(order.Subtotal.StringFixed(0))),
			value(shipping),
			grandValue("₹"+formatMoney(order.Total.StringFixed(0))),
		),
		col.New(3),
	)
}

func footerRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(
			"Handloom pieces may show slight weave variations; that is the mark of "+
				"the craft, not a defect. Unworn items can be returned within 7 days "+
				"of delivery with tags intact.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// formatMoney inserts thousands separators Indian style: the last three
// digits group together, the rest in pairs. "1234567" → "12,34,567".
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	head := s[:n-3]
	out := s[n-3:]
	for len(head) > 2 {
		out = head[len(head)-2:] + "," + out
		head = head[:len(head)-2]
	}
	return head + "," + out
}
