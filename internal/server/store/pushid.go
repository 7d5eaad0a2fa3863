package store

import (
	"time"

	"github.com/google/uuid"
)

// pushChars is ordered by ASCII value so generated keys compare the same
// way lexicographically and chronologically.
const pushChars = "-0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"

// newPushID builds a 20-character child key: 8 characters encode the
// timestamp in milliseconds, 12 carry random entropy. Keys generated in
// different milliseconds sort in creation order.
func newPushID(now time.Time) string {
	ms := now.UnixMilli()

	var key [20]byte
	for i := 7; i >= 0; i-- {
		key[i] = pushChars[ms%64]
		ms /= 64
	}

	u := uuid.New()
	for i := 0; i < 12; i++ {
		key[8+i] = pushChars[int(u[i])%64]
	}
	return string(key[:])
}
