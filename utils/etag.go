package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"time"
)

// GenerateETag derives a strong validator from a record id and its last update.
func GenerateETag(id string, updatedAt time.Time) string {
	h := sha1.New()
	h.Write([]byte(id))
	h.Write([]byte(strconv.FormatInt(updatedAt.UnixNano(), 10)))
	return `"` + hex.EncodeToString(h.Sum(nil)) + `"`
}
