package pos_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iknmuh/mypos/internal/application/dto"
	"github.com/iknmuh/mypos/internal/application/inventory"
	"github.com/iknmuh/mypos/internal/application/pos"
	"github.com/iknmuh/mypos/internal/domain"
	"github.com/iknmuh/mypos/internal/domain/entity"
)

type voidEnv struct {
	store  *memStore
	saleUC *pos.SaleUseCase
	voidUC *pos.VoidUseCase
}

func newVoidEnv() *voidEnv {
	store := newMemStore()
	ledger := inventory.NewLedger()
	return &voidEnv{
		store:  store,
		saleUC: pos.NewSaleUseCase(&memTxRunner{store}, ledger, &memTransactions{store}, &memAudit{store}, noopCache{}, testLogger()),
		voidUC: pos.NewVoidUseCase(&memTxRunner{store}, ledger, &memAudit{store}, noopCache{}, testLogger()),
	}
}

func voidRequest() *dto.VoidSaleRequest {
	return &dto.VoidSaleRequest{Status: entity.TxStatusVoided, Alasan: "salah input kasir"}
}

func (e *voidEnv) mustSell(t *testing.T, items ...dto.SaleItemRequest) *dto.SaleResponse {
	t.Helper()
	resp, err := e.saleUC.Create(context.Background(), testStoreID, testUserID, buildSale(items...))
	require.NoError(t, err)
	return resp
}

func TestVoid_RestoresStockAndFlipsStatus(t *testing.T) {
	env := newVoidEnv()
	kopi := env.store.seedProduct(testStoreID, "p-kopi", "Kopi Sachet", 2500, 50)
	teh := env.store.seedProduct(testStoreID, "p-teh", "Teh Botol", 5000, 20)

	sale := env.mustSell(t, cartItem(kopi, 3), cartItem(teh, 2))
	require.Equal(t, 47, env.store.products["p-kopi"].Stock)

	resp, err := env.voidUC.Void(context.Background(), testStoreID, testUserID, sale.ID, voidRequest())
	require.NoError(t, err)
	assert.Equal(t, sale.ID, resp.ID)
	assert.Equal(t, sale.Nomor, resp.Nomor)
	assert.Equal(t, entity.TxStatusVoided, resp.Status)

	assert.Equal(t, 50, env.store.products["p-kopi"].Stock)
	assert.Equal(t, 20, env.store.products["p-teh"].Stock)

	header := env.store.transactions[sale.ID]
	assert.Equal(t, entity.TxStatusVoided, header.Status)
	assert.Equal(t, "salah input kasir", header.VoidReason)

	// 2 keluar entries from the sale plus 2 masuk entries from the void.
	require.Len(t, env.store.movements, 4)
	assert.Equal(t, entity.MovementIn, env.store.movements[2].Kind)
	assert.Equal(t, sale.Nomor, env.store.movements[2].Reference)
}

func TestVoid_SecondVoidRejected(t *testing.T) {
	env := newVoidEnv()
	kopi := env.store.seedProduct(testStoreID, "p-kopi", "Kopi Sachet", 2500, 50)
	sale := env.mustSell(t, cartItem(kopi, 3))

	_, err := env.voidUC.Void(context.Background(), testStoreID, testUserID, sale.ID, voidRequest())
	require.NoError(t, err)

	_, err = env.voidUC.Void(context.Background(), testStoreID, testUserID, sale.ID, voidRequest())
	assert.ErrorIs(t, err, domain.ErrAlreadyVoided)

	// Stock restored exactly once.
	assert.Equal(t, 50, env.store.products["p-kopi"].Stock)
}

func TestVoid_UnknownTransaction(t *testing.T) {
	env := newVoidEnv()
	_, err := env.voidUC.Void(context.Background(), testStoreID, testUserID, "t-hilang", voidRequest())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVoid_CrossStoreTransactionLooksAbsent(t *testing.T) {
	env := newVoidEnv()
	kopi := env.store.seedProduct(testStoreID, "p-kopi", "Kopi Sachet", 2500, 50)
	sale := env.mustSell(t, cartItem(kopi, 1))

	_, err := env.voidUC.Void(context.Background(), "99999999-9999-9999-9999-999999999999", testUserID, sale.ID, voidRequest())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, entity.TxStatusCompleted, env.store.transactions[sale.ID].Status)
}

func TestVoid_ReasonIsOptional(t *testing.T) {
	env := newVoidEnv()
	kopi := env.store.seedProduct(testStoreID, "p-kopi", "Kopi Sachet", 2500, 50)
	sale := env.mustSell(t, cartItem(kopi, 3))

	resp, err := env.voidUC.Void(context.Background(), testStoreID, testUserID, sale.ID,
		&dto.VoidSaleRequest{Status: entity.TxStatusVoided})
	require.NoError(t, err)
	assert.Equal(t, entity.TxStatusVoided, resp.Status)

	header := env.store.transactions[sale.ID]
	assert.Equal(t, entity.TxStatusVoided, header.Status)
	assert.Empty(t, header.VoidReason)
	assert.Equal(t, 50, env.store.products["p-kopi"].Stock)
}

func TestVoid_OnlyVoidTransitionAllowed(t *testing.T) {
	env := newVoidEnv()
	kopi := env.store.seedProduct(testStoreID, "p-kopi", "Kopi Sachet", 2500, 50)
	sale := env.mustSell(t, cartItem(kopi, 1))

	_, err := env.voidUC.Void(context.Background(), testStoreID, testUserID, sale.ID,
		&dto.VoidSaleRequest{Status: entity.TxStatusPending, Alasan: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVoid_SkipsProductDeletedAfterSale(t *testing.T) {
	env := newVoidEnv()
	kopi := env.store.seedProduct(testStoreID, "p-kopi", "Kopi Sachet", 2500, 50)
	teh := env.store.seedProduct(testStoreID, "p-teh", "Teh Botol", 5000, 20)

	sale := env.mustSell(t, cartItem(kopi, 3), cartItem(teh, 2))

	// The teh product disappears from the catalog entirely.
	delete(env.store.products, "p-teh")

	resp, err := env.voidUC.Void(context.Background(), testStoreID, testUserID, sale.ID, voidRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.TxStatusVoided, resp.Status)

	// Kopi stock comes back; the missing product is skipped without failing
	// the void.
	assert.Equal(t, 50, env.store.products["p-kopi"].Stock)
	assert.Equal(t, entity.TxStatusVoided, env.store.transactions[sale.ID].Status)
}

func TestVoid_WritesAuditTrail(t *testing.T) {
	env := newVoidEnv()
	kopi := env.store.seedProduct(testStoreID, "p-kopi", "Kopi Sachet", 2500, 50)
	sale := env.mustSell(t, cartItem(kopi, 1))

	_, err := env.voidUC.Void(context.Background(), testStoreID, testUserID, sale.ID, voidRequest())
	require.NoError(t, err)

	// One CREATE entry from the sale, one VOID entry from the cancellation.
	require.Len(t, env.store.audits, 2)
	assert.Equal(t, entity.AuditVoid, env.store.audits[1].Action)
	assert.Equal(t, sale.ID, env.store.audits[1].RecordID)
}
