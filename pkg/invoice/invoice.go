// Package invoice generates unique, human-readable document numbers.
package invoice

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Next returns a sale number of the form INV-20260115-9F3A21BC. The date keeps
// the number sortable and legible; the 8-hex-char suffix comes from
// crypto/rand so two cashiers completing sales in the same millisecond cannot
// collide. A unique index on transaksi.nomor backs the residual
// 1-in-4-billion case.
func Next() string {
	return NextAt(time.Now())
}

// NextAt is Next with an explicit timestamp, for tests.
func NextAt(t time.Time) string {
	return nextAt("INV", t)
}

// NextPurchase returns a purchase-order number of the form PO-20260115-9F3A21BC.
func NextPurchase() string {
	return nextAt("PO", time.Now())
}

func nextAt(prefix string, t time.Time) string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in serious trouble;
		// fall back to the nanosecond clock rather than blocking a sale.
		return fmt.Sprintf("%s-%s-%09d", prefix, t.Format("20060102"), t.Nanosecond())
	}
	return fmt.Sprintf("%s-%s-%s", prefix, t.Format("20060102"), strings.ToUpper(hex.EncodeToString(buf)))
}
