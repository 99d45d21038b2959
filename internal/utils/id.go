package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewOrderID returns a unique order identifier: the current millisecond
// timestamp plus a random hex suffix. The timestamp keeps ids roughly
// sortable by creation time; the suffix makes same-millisecond
// submissions collision-free.
func NewOrderID() string {
	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), RandomHex(4))
}

// NewUserID returns a unique account identifier in the same format.
func NewUserID() string {
	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), RandomHex(4))
}

// RandomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func RandomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; a broken
		// entropy source is not something we can recover from here.
		panic(err)
	}
	return hex.EncodeToString(buf)
}
