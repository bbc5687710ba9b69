package types

import (
	"bytes"
	"math/big"
	"strconv"

	"go.uber.org/zap"

	"github.com/shieldpool/subgraph-go/internal/logger"
)

// BigInt is an arbitrary-precision unsigned integer that travels as a quoted
// decimal string on the wire. Subgraph clients consume JSON, and JSON numbers
// cannot carry 64+-bit on-chain quantities without precision loss, so every
// numeric leaf is serialized as a string.
//
// Decoding is deliberately lenient: a malformed literal decodes to zero with a
// warn-level diagnostic instead of failing the surrounding result set. Partial
// or legacy data must never crash a read path.
type BigInt struct {
	big.Int
}

// NewBigInt creates a BigInt from an int64
func NewBigInt(x int64) *BigInt {
	b := new(BigInt)
	b.SetInt64(x)
	return b
}

// NewBigIntFromString creates a BigInt from a base-10 string literal.
// Malformed input yields zero plus a diagnostic, never an error.
func NewBigIntFromString(s string) *BigInt {
	b := new(BigInt)
	if _, ok := b.SetString(s, 10); !ok {
		logger.Warn("malformed numeric literal, falling back to zero", zap.String("literal", s))
		b.SetInt64(0)
	}
	return b
}

// Unwrap returns the embedded big.Int for arithmetic
func (b *BigInt) Unwrap() *big.Int {
	if b == nil {
		return new(big.Int)
	}
	return &b.Int
}

// IsZero reports whether the value is zero (or the receiver is nil)
func (b *BigInt) IsZero() bool {
	return b == nil || b.Sign() == 0
}

// Eq reports whether two values are numerically equal
func (b *BigInt) Eq(o *BigInt) bool {
	return b.Unwrap().Cmp(o.Unwrap()) == 0
}

// MarshalJSON implements json.Marshaler, writing a quoted decimal string
func (b BigInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(b.String())), nil
}

// UnmarshalJSON implements json.Unmarshaler. It accepts quoted decimal
// strings (the canonical wire form) and bare JSON numbers. It never returns
// an error: unparseable input decodes to zero with a diagnostic.
func (b *BigInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	literal := string(data)
	if unquoted, err := strconv.Unquote(literal); err == nil {
		literal = unquoted
	}

	if _, ok := b.SetString(literal, 10); ok {
		return nil
	}

	// Bare floats show up in hand-edited fixtures; take the integer part
	if f, _, err := big.ParseFloat(literal, 10, 256, big.ToZero); err == nil {
		f.Int(&b.Int)
		return nil
	}

	logger.Warn("malformed numeric literal, falling back to zero", zap.String("literal", literal))
	b.SetInt64(0)
	return nil
}
