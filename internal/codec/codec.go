// Package codec converts arbitrary-precision on-chain integers between their
// in-memory form (math/big.Int) and the decimal-string wire form used by the
// subgraph. Encoding is structural: any arithmetic-typed leaf becomes a
// string. Decoding is schema-driven: the wire envelope is weakly typed JSON,
// so only leaves named in a per-entity field list are converted back. The two
// directions are deliberately separate operations and must not be unified.
package codec

import (
	"math/big"
	"strconv"

	"go.uber.org/zap"

	"github.com/shieldpool/subgraph-go/internal/logger"
	"github.com/shieldpool/subgraph-go/internal/types"
)

// Encode converts an arithmetic value to its base-10 string form. Plain
// integers are treated as magnitudes. Values that are not arithmetic
// (strings, booleans, nil) pass through unchanged.
func Encode(v any) any {
	switch n := v.(type) {
	case *big.Int:
		if n == nil {
			return v
		}
		return n.String()
	case big.Int:
		return n.String()
	case *types.BigInt:
		if n == nil {
			return v
		}
		return n.String()
	case types.BigInt:
		return n.String()
	case int:
		return strconv.FormatInt(int64(n), 10)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float64:
		f := new(big.Float).SetFloat64(n)
		i, _ := f.Int(nil)
		return i.String()
	default:
		return v
	}
}

// Decode is the inverse of Encode. It accepts Encode's own output and
// round-trips it exactly. Malformed input decodes to zero with a warn-level
// diagnostic rather than an error: one corrupt field must not fail an entire
// result set.
func Decode(v any) *big.Int {
	switch n := v.(type) {
	case string:
		if i, ok := new(big.Int).SetString(n, 10); ok {
			return i
		}
		logger.Warn("malformed numeric literal, falling back to zero", zap.String("literal", n))
		return new(big.Int)
	case *big.Int:
		if n == nil {
			return new(big.Int)
		}
		return new(big.Int).Set(n)
	case *types.BigInt:
		return new(big.Int).Set(n.Unwrap())
	case float64:
		f := new(big.Float).SetFloat64(n)
		i, _ := f.Int(nil)
		return i
	case int:
		return big.NewInt(int64(n))
	case int64:
		return big.NewInt(n)
	case uint64:
		return new(big.Int).SetUint64(n)
	default:
		logger.Warn("unsupported numeric input, falling back to zero", zap.Any("value", v))
		return new(big.Int)
	}
}

// DeepEncode applies Encode recursively through nested records and
// sequences. Conversion is type-driven: every arithmetic leaf is encoded, no
// matter what key it sits under. Non-numeric leaves pass through unchanged.
func DeepEncode(v any) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[k] = DeepEncode(child)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = DeepEncode(child)
		}
		return out
	default:
		return Encode(v)
	}
}

// DecodeByFieldList applies Decode recursively through nested records and
// sequences, converting only leaves whose key appears in fields. The wire
// representation cannot be introspected for "was this originally an
// integer", so decoding is name-driven where encoding is structural.
// Missing optional fields stay absent; non-listed leaves pass through.
func DecodeByFieldList(v any, fields []string) any {
	allow := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		allow[f] = struct{}{}
	}
	return decodeAllowed(v, allow)
}

func decodeAllowed(v any, allow map[string]struct{}) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			switch child.(type) {
			case map[string]any, []any:
				out[k] = decodeAllowed(child, allow)
			default:
				if _, ok := allow[k]; ok {
					out[k] = Decode(child)
				} else {
					out[k] = child
				}
			}
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = decodeAllowed(child, allow)
		}
		return out
	default:
		return v
	}
}
