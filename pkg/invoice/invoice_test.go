package invoice_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iknmuh/mypos/pkg/invoice"
)

func TestNextAt_Format(t *testing.T) {
	ts := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	n := invoice.NextAt(ts)
	assert.Regexp(t, `^INV-20260115-[0-9A-F]{8}$`, n)
}

func TestNextPurchase_Format(t *testing.T) {
	n := invoice.NextPurchase()
	assert.Regexp(t, `^PO-\d{8}-[0-9A-F]{8}$`, n)
}

func TestNext_UniqueUnderConcurrency(t *testing.T) {
	const workers = 50
	const perWorker = 20

	var mu sync.Mutex
	seen := make(map[string]bool, workers*perWorker)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]string, 0, perWorker)
			for j := 0; j < perWorker; j++ {
				local = append(local, invoice.Next())
			}
			mu.Lock()
			for _, n := range local {
				seen[n] = true
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, seen, workers*perWorker, "every generated number must be distinct")
}
