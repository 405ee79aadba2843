// Package offline keeps a versioned copy of site responses so pages keep
// working when their handlers fail. It mirrors a browser service worker:
// Install precaches a fixed path list, Lookup answers cache-first, and
// Activate drops every version but the current one.
package offline

import (
	"encoding/hex"
	"net/http"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Entry is one stored response.
type Entry struct {
	Status   int         `json:"status"`
	Header   http.Header `json:"header"`
	Body     []byte      `json:"body"`
	ETag     string      `json:"etag"`
	StoredAt time.Time   `json:"stored_at"`
}

// NewEntry copies a response into an Entry and computes its ETag.
func NewEntry(status int, header http.Header, body []byte) Entry {
	h := make(http.Header, len(header))
	for k, v := range header {
		switch k {
		case "Set-Cookie", "Content-Length", "Content-Encoding", "Vary", "X-Request-Id":
			continue
		}
		h[k] = append([]string(nil), v...)
	}
	return Entry{
		Status:   status,
		Header:   h,
		Body:     append([]byte(nil), body...),
		ETag:     ETag(body),
		StoredAt: time.Now().UTC(),
	}
}

// ETag returns a strong validator over body.
func ETag(body []byte) string {
	sum := blake2b.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}
