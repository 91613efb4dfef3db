package finance

import (
	"math/rand/v2"
	"strings"
)

// Obfuscate XORs byte i of plaintext with byte i mod len(key) of key.
//
// It is not encryption: the key is stored next to the result. An empty key
// returns plaintext unchanged.
func Obfuscate(plaintext, key string) string {
	if key == "" {
		return plaintext
	}
	b := []byte(plaintext)
	for i := range b {
		b[i] ^= key[i%len(key)]
	}
	return string(b)
}

// Reveal is the inverse of Obfuscate, which is its own inverse.
func Reveal(obfuscated, key string) string { return Obfuscate(obfuscated, key) }

// NewKey returns a random key of n bytes.
//
// Each byte is drawn uniformly in [11, 1e6] and narrowed to a byte, line
// breaks are drawn again as the key is stored on its own line.
func NewKey(n int) string {
	var b strings.Builder
	b.Grow(n)
	for b.Len() < n {
		c := byte(11 + rand.IntN(1e6-11+1))
		if breaksLine(c) {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func breaksLine(c byte) bool { return c == '\n' || c == '\r' }

// fitsLine reports whether s can be stored on a single record line.
func fitsLine(s string) bool { return !strings.ContainsAny(s, "\r\n") }
