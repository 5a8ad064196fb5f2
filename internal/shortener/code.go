package shortener

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"
)

// alphabet is the base62 alphabet used for short codes: digits first,
// then uppercase, then lowercase. Code order matters for decoding.
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// DefaultCodeLength is the default length for generated short codes.
const DefaultCodeLength = 8

// randomBits is how much entropy each candidate code draws.
const randomBits = 48

// EncodeBase62 converts n to a base62 string, most significant digit first.
// Zero encodes to "0".
func EncodeBase62(n uint64) string {
	if n == 0 {
		return string(alphabet[0])
	}

	base := uint64(len(alphabet))

	// 64 bits never need more than 11 base62 digits
	buf := make([]byte, 11)
	i := len(buf)

	for n > 0 {
		i--
		buf[i] = alphabet[n%base]
		n /= base
	}

	return string(buf[i:])
}

// DecodeBase62 is the inverse of EncodeBase62.
func DecodeBase62(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("decode base62: empty string")
	}

	base := uint64(len(alphabet))

	var n uint64

	for _, c := range []byte(s) {
		idx := strings.IndexByte(alphabet, c)
		if idx < 0 {
			return 0, fmt.Errorf("decode base62: invalid character %q", c)
		}

		n = n*base + uint64(idx)
	}

	return n, nil
}

// Generator produces candidate short codes. Collisions are possible;
// the service layer, not the generator, handles them.
type Generator interface {
	Generate() (string, error)
}

// RandomGenerator generates fixed-length base62 codes from 48 bits of
// cryptographically secure randomness.
type RandomGenerator struct {
	length int
}

// NewRandomGenerator creates a generator for codes of the given length.
func NewRandomGenerator(length int) *RandomGenerator {
	if length < 1 {
		length = DefaultCodeLength
	}

	return &RandomGenerator{length: length}
}

// Length returns the configured code length.
func (g *RandomGenerator) Length() int {
	return g.length
}

// Generate draws 48 random bits and encodes them as a base62 string,
// left-padded with '0' or truncated to the configured length.
func (g *RandomGenerator) Generate() (string, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[2:]); err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	n := binary.BigEndian.Uint64(buf[:]) // top 16 bits are zero

	code := EncodeBase62(n)
	if len(code) < g.length {
		code = strings.Repeat(string(alphabet[0]), g.length-len(code)) + code
	} else if len(code) > g.length {
		code = code[:g.length]
	}

	return code, nil
}

var _ Generator = (*RandomGenerator)(nil)
