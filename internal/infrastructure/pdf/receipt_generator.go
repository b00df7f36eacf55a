// Package pdf renders the printable sale receipt (struk).
//
// Layout, sized for an 80mm thermal roll:
//
//	┌──────────────────────────────┐
//	│        NAMA TOKO             │
//	│  INV-20260115-9F3A21BC       │
//	│  15/01/2026 14:32            │
//	│  ──────────────────────────  │
//	│  2x Kopi Sachet      24.000  │
//	│  1x Mie Instan        3.500  │
//	│  ──────────────────────────  │
//	│  Total / Diskon / Pajak      │
//	│  GRAND TOTAL / Bayar         │
//	│  ──────────────────────────  │
//	│  Terima kasih                │
//	└──────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/iknmuh/mypos/internal/application/dto"
	"github.com/iknmuh/mypos/internal/domain/entity"
)

var colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}

// ReceiptGenerator renders receipts with Maroto v2.
type ReceiptGenerator struct{}

// NewReceiptGenerator builds the generator.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// GenerateReceipt renders the transaction as PDF bytes. Voided transactions
// carry a DIBATALKAN banner so a reprint can never pass as a live receipt.
func (g *ReceiptGenerator) GenerateReceipt(_ context.Context, storeName string, t *dto.SaleDetailResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithDimensions(80, 200).
		WithLeftMargin(5).WithRightMargin(5).
		WithTopMargin(5).WithBottomMargin(5).
		WithDefaultFont(&props.Font{Family: "courier", Size: 8}).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows(storeName, t)...)
	if t.Status == entity.TxStatusVoided {
		m.AddRows(row.New(7).Add(col.New(12).Add(
			text.New("*** DIBATALKAN ***", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center, Top: 1,
			}),
		)))
	}
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))

	for i := range t.Items {
		m.AddRows(itemRow(&t.Items[i]))
	}

	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(totalsRows(t)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Terima kasih atas kunjungan Anda", props.Text{
			Size: 7, Align: align.Center, Top: 2, Color: colorGray,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate receipt: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRows(storeName string, t *dto.SaleDetailResponse) []core.Row {
	return []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New(storeName, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center, Top: 1,
			}),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New(t.Nomor, props.Text{Size: 8, Align: align.Center, Top: 1}),
			text.New(t.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 7, Align: align.Center, Top: 5, Color: colorGray,
			}),
		)),
	}
}

func itemRow(item *dto.SaleItemResponse) core.Row {
	label := strconv.Itoa(item.Jumlah) + "x " + item.Nama
	if item.Diskon > 0 {
		label += " (-" + formatRupiah(item.Diskon) + ")"
	}
	return row.New(5).Add(
		col.New(8).Add(text.New(label, props.Text{Size: 7, Top: 1})),
		col.New(4).Add(text.New(formatRupiah(item.Subtotal), props.Text{
			Size: 7, Align: align.Right, Top: 1,
		})),
	)
}

func totalsRows(t *dto.SaleDetailResponse) []core.Row {
	rows := []core.Row{
		amountRow("Total", t.Total, false),
	}
	if t.Diskon > 0 {
		rows = append(rows, amountRow("Diskon", -t.Diskon, false))
	}
	if t.Pajak > 0 {
		rows = append(rows, amountRow("Pajak", t.Pajak, false))
	}
	rows = append(rows,
		amountRow("GRAND TOTAL", t.GrandTotal, true),
		amountRow("Bayar ("+t.Metode+")", t.Bayar, false),
		amountRow("Kembalian", t.Kembalian, false),
	)
	return rows
}

func amountRow(label string, amount int64, bold bool) core.Row {
	style := fontstyle.Normal
	size := 7.0
	if bold {
		style = fontstyle.Bold
		size = 8
	}
	return row.New(5).Add(
		col.New(7).Add(text.New(label, props.Text{Style: style, Size: size, Top: 1})),
		col.New(5).Add(text.New(formatRupiah(amount), props.Text{
			Style: style, Size: size, Align: align.Right, Top: 1,
		})),
	)
}

// formatRupiah renders an amount with thousand dots, e.g. 1250000 -> 1.250.000.
func formatRupiah(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)
	n := len(s)
	if n > 3 {
		buf := make([]byte, 0, n+n/3)
		for i := 0; i < n; i++ {
			if i > 0 && (n-i)%3 == 0 {
				buf = append(buf, '.')
			}
			buf = append(buf, s[i])
		}
		s = string(buf)
	}
	if neg {
		return "-" + s
	}
	return s
}
