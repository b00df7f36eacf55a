package dto

import (
	"github.com/iknmuh/mypos/internal/domain/repository"
)

// DashboardResponse is the GET /api/dashboard body.
type DashboardResponse struct {
	OmzetHariIni     int64 `json:"omzet_hari_ini"`
	TransaksiHariIni int   `json:"transaksi_hari_ini"`
	JumlahProduk     int   `json:"jumlah_produk"`
	StokMenipis      int   `json:"stok_menipis"`
}

// SalesPerDayResponse is one bucket of the sales report.
type SalesPerDayResponse struct {
	Tanggal   string `json:"tanggal"` // YYYY-MM-DD
	Omzet     int64  `json:"omzet"`
	Transaksi int    `json:"transaksi"`
}

// SalesReportResponse is the GET /api/laporan/penjualan body.
type SalesReportResponse struct {
	Omzet      int64                 `json:"omzet"`
	Transaksi  int                   `json:"transaksi"`
	ItemTerjual int                  `json:"item_terjual"`
	PerHari    []SalesPerDayResponse `json:"per_hari"`
}

// ReportQuery bounds the sales report. Dates are YYYY-MM-DD, inclusive.
type ReportQuery struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// NewDashboardResponse maps the aggregate onto the wire shape.
func NewDashboardResponse(s *repository.DashboardStats) DashboardResponse {
	return DashboardResponse{
		OmzetHariIni:     s.RevenueToday,
		TransaksiHariIni: s.TransactionsToday,
		JumlahProduk:     s.ProductCount,
		StokMenipis:      s.LowStockCount,
	}
}

// NewSalesReportResponse maps the aggregate onto the wire shape.
func NewSalesReportResponse(s *repository.SalesSummary) SalesReportResponse {
	resp := SalesReportResponse{
		Omzet:       s.Revenue,
		Transaksi:   s.TransactionCount,
		ItemTerjual: s.ItemsSold,
		PerHari:     make([]SalesPerDayResponse, 0, len(s.PerDay)),
	}
	for _, d := range s.PerDay {
		resp.PerHari = append(resp.PerHari, SalesPerDayResponse{
			Tanggal:   d.Date.Format("2006-01-02"),
			Omzet:     d.Revenue,
			Transaksi: d.TxCount,
		})
	}
	return resp
}
