package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iknmuh/mypos/internal/application/dto"
	"github.com/iknmuh/mypos/internal/domain"
	"github.com/iknmuh/mypos/internal/domain/entity"
)

func validSale() *dto.CreateSaleRequest {
	return &dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProdukID: "p-1", Nama: "Kopi", Harga: 2500, Jumlah: 3, Subtotal: 7500},
			{ProdukID: "p-2", Nama: "Teh", Harga: 5000, Jumlah: 2, Diskon: 1000, Subtotal: 9000},
		},
		Total:      16500,
		Diskon:     500,
		Pajak:      0,
		GrandTotal: 16000,
		Bayar:      20000,
		Metode:     entity.PaymentCash,
	}
}

func TestCreateSaleValidate_AcceptsConsistentCart(t *testing.T) {
	require.NoError(t, validSale().Validate())
}

func TestCreateSaleValidate_DefaultsToCash(t *testing.T) {
	req := validSale()
	req.Metode = ""
	require.NoError(t, req.Validate())
	assert.Equal(t, entity.PaymentCash, req.Metode)
}

func TestCreateSaleValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*dto.CreateSaleRequest)
	}{
		{"empty cart", func(r *dto.CreateSaleRequest) { r.Items = nil }},
		{"unknown payment method", func(r *dto.CreateSaleRequest) { r.Metode = "Cek" }},
		{"missing produk_id", func(r *dto.CreateSaleRequest) { r.Items[0].ProdukID = "" }},
		{"zero quantity", func(r *dto.CreateSaleRequest) { r.Items[0].Jumlah = 0 }},
		{"negative price", func(r *dto.CreateSaleRequest) { r.Items[0].Harga = -1 }},
		{"subtotal mismatch", func(r *dto.CreateSaleRequest) { r.Items[0].Subtotal += 100 }},
		{"total mismatch", func(r *dto.CreateSaleRequest) { r.Total += 100 }},
		{"grand total mismatch", func(r *dto.CreateSaleRequest) { r.GrandTotal += 100 }},
		{"negative discount", func(r *dto.CreateSaleRequest) { r.Diskon = -1 }},
		{"cash underpayment", func(r *dto.CreateSaleRequest) { r.Bayar = r.GrandTotal - 1 }},
		{"negative change", func(r *dto.CreateSaleRequest) { r.Kembalian = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validSale()
			tc.mutate(req)
			err := req.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreateSaleValidate_NonCashSkipsPaymentFloor(t *testing.T) {
	req := validSale()
	req.Metode = entity.PaymentQRIS
	req.Bayar = 0
	require.NoError(t, req.Validate(), "QRIS settles externally, bayar may be below grand_total")
}

func TestCreateSaleValidate_TooManyItems(t *testing.T) {
	req := validSale()
	item := dto.SaleItemRequest{ProdukID: "p-x", Harga: 100, Jumlah: 1, Subtotal: 100}
	req.Items = req.Items[:0]
	var total int64
	for i := 0; i < 101; i++ {
		req.Items = append(req.Items, item)
		total += item.Subtotal
	}
	req.Total = total
	req.Diskon = 0
	req.GrandTotal = total
	req.Bayar = total

	err := req.Validate()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
