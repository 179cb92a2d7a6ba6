// Package ident generates entity identifiers: a time-based component
// plus a short random suffix. Identifiers are unique within a project's
// scope and sort roughly by creation time.
package ident

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// New returns an identifier of the form "<prefix>-<unix-millis base36>-<8 hex>".
// Four random bytes keep a burst of ids minted in the same millisecond
// collision-free.
func New(prefix string) string {
	var buf [4]byte
	_, _ = rand.Read(buf[:])
	return fmt.Sprintf("%s-%s-%s",
		prefix,
		strconv.FormatInt(time.Now().UnixMilli(), 36),
		hex.EncodeToString(buf[:]))
}
