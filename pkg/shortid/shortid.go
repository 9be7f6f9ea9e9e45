// Package shortid generates short random identifiers for content ids and
// public share URLs. Identifiers use an unambiguous alphanumeric alphabet
// (no 0/O, 1/l/I) so they survive being read aloud or hand-typed.
package shortid

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

const alphabet = "23456789abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ"

const (
	// ContentIDLength is used for memory, message and contributor ids.
	ContentIDLength = 8
	// URLLength is used for the public share slug of a published document.
	URLLength = 10
	// DocumentIDLength is the length of a raw document id.
	DocumentIDLength = 24
)

// New returns a random identifier of the given length.
func New(length int) string {
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the platform entropy source is
			// broken, at which point nothing in this process is trustworthy.
			panic(err)
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b)
}

// NewContentID returns an 8-character identifier for memories, messages
// and contributors.
func NewContentID() string {
	return New(ContentIDLength)
}

// NewURL returns a 10-character public share slug.
func NewURL() string {
	return New(URLLength)
}

// NewDocumentID returns a 24-character lowercase hex document id.
func NewDocumentID() string {
	b := make([]byte, DocumentIDLength/2)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
