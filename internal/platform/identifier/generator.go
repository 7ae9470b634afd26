// Package identifier issues the opaque content identifiers used as document and
// transaction hashes.
package identifier

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// Kind names what an identifier is issued for
type Kind string

const (
	KindDocument    Kind = "document"
	KindTransaction Kind = "transaction"
	KindEvent       Kind = "event"
)

// Prefix marks every identifier as a hex content hash.
const Prefix = "0x"

// bodyLength is the number of hex characters after the prefix, per kind.
var bodyLength = map[Kind]int{
	KindDocument:    64,
	KindTransaction: 64,
	KindEvent:       32,
}

// Generator issues random identifiers. It is safe for concurrent use.
type Generator struct{}

// NewGenerator creates a Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Next returns a fresh identifier of the given kind. Unknown kinds get the document length.
func (g *Generator) Next(kind Kind) string {
	n := length(kind)
	var b strings.Builder
	b.Grow(len(Prefix) + n)
	b.WriteString(Prefix)
	for b.Len() < len(Prefix)+n {
		id := uuid.New()
		b.WriteString(hex.EncodeToString(id[:]))
	}
	return b.String()[:len(Prefix)+n]
}

// Valid reports whether s has the shape of an identifier of the given kind.
func Valid(kind Kind, s string) bool {
	if !strings.HasPrefix(s, Prefix) {
		return false
	}
	body := s[len(Prefix):]
	if len(body) != length(kind) {
		return false
	}
	_, err := hex.DecodeString(body)
	return err == nil
}

func length(kind Kind) int {
	if n, ok := bodyLength[kind]; ok {
		return n
	}
	return bodyLength[KindDocument]
}

// Source issues identifiers; *Generator is the production implementation.
type Source interface {
	Next(kind Kind) string
}

var _ Source = (*Generator)(nil)
