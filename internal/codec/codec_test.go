package codec_test

import (
	"math/big"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shieldpool/subgraph-go/internal/codec"
	"github.com/shieldpool/subgraph-go/internal/logger"
	"github.com/shieldpool/subgraph-go/internal/types"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestEncode(t *testing.T) {
	testCases := []struct {
		name     string
		input    any
		expected any
	}{
		{name: "big int", input: big.NewInt(1234567890), expected: "1234567890"},
		{name: "zero", input: big.NewInt(0), expected: "0"},
		{name: "int", input: 42, expected: "42"},
		{name: "int64", input: int64(-7), expected: "-7"},
		{name: "uint64 max", input: uint64(18446744073709551615), expected: "18446744073709551615"},
		{name: "float magnitude", input: float64(1e6), expected: "1000000"},
		{name: "string passes through", input: "already-encoded", expected: "already-encoded"},
		{name: "bool passes through", input: true, expected: true},
		{name: "nil passes through", input: nil, expected: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, codec.Encode(tc.input))
		})
	}
}

func TestEncodeScalarType(t *testing.T) {
	b := types.NewBigInt(987654321)
	assert.Equal(t, "987654321", codec.Encode(b))
}

func TestDecode_RoundTrip(t *testing.T) {
	// Magnitudes well beyond 64 bits must survive the string round trip
	literals := []string{
		"0",
		"1",
		"100",
		"18446744073709551616",                          // 2^64
		"340282366920938463463374607431768211456",       // 2^128
		"21888242871839275222246405745257275088548364400416034343698204186575808495617", // bn254 field order
	}

	for _, lit := range literals {
		t.Run(lit, func(t *testing.T) {
			n, ok := new(big.Int).SetString(lit, 10)
			require.True(t, ok)

			encoded := codec.Encode(n)
			decoded := codec.Decode(encoded)
			assert.Zero(t, n.Cmp(decoded), "decode(encode(n)) must equal n")
		})
	}
}

func TestDecode_MalformedFallsBackToZero(t *testing.T) {
	assert.NotPanics(t, func() {
		decoded := codec.Decode("not-a-number")
		assert.Zero(t, decoded.Sign())
	})
}

func TestDecode_UnsupportedFallsBackToZero(t *testing.T) {
	decoded := codec.Decode(struct{}{})
	assert.Zero(t, decoded.Sign())
}

func TestDeepEncode(t *testing.T) {
	record := map[string]any{
		"id":      "ethereum-0xabc",
		"amount":  big.NewInt(1000000000000000000),
		"spent":   false,
		"pool": map[string]any{
			"index":     big.NewInt(3),
			"asset":     "0xdef",
			"leafCount": uint64(42),
		},
		"roots": []any{big.NewInt(7), big.NewInt(8)},
	}

	encoded := codec.DeepEncode(record).(map[string]any)

	assert.Equal(t, "ethereum-0xabc", encoded["id"])
	assert.Equal(t, "1000000000000000000", encoded["amount"])
	assert.Equal(t, false, encoded["spent"])

	pool := encoded["pool"].(map[string]any)
	assert.Equal(t, "3", pool["index"])
	assert.Equal(t, "0xdef", pool["asset"])
	assert.Equal(t, "42", pool["leafCount"])

	roots := encoded["roots"].([]any)
	assert.Equal(t, []any{"7", "8"}, roots)
}

func TestDecodeByFieldList(t *testing.T) {
	wire := map[string]any{
		"id":     "ethereum-0xabc-0",
		"amount": "250",
		"owner":  "0x123",
		"pool": map[string]any{
			"index": "3",
			"asset": "0xdef",
		},
	}

	decoded := codec.DecodeByFieldList(wire, []string{"amount", "index"}).(map[string]any)

	// Listed leaves become arithmetic values, nested records included
	assert.Zero(t, big.NewInt(250).Cmp(decoded["amount"].(*big.Int)))
	pool := decoded["pool"].(map[string]any)
	assert.Zero(t, big.NewInt(3).Cmp(pool["index"].(*big.Int)))

	// Non-listed leaves pass through untouched, even numeric-looking ones
	assert.Equal(t, "ethereum-0xabc-0", decoded["id"])
	assert.Equal(t, "0x123", decoded["owner"])
	assert.Equal(t, "0xdef", pool["asset"])
}

func TestDecodeByFieldList_MissingFieldsStayAbsent(t *testing.T) {
	wire := map[string]any{"id": "x"}

	decoded := codec.DecodeByFieldList(wire, []string{"amount"}).(map[string]any)

	_, present := decoded["amount"]
	assert.False(t, present, "missing optional numeric fields must not be coerced to zero")
}

func TestDeepRoundTrip(t *testing.T) {
	record := map[string]any{
		"amount":    big.NewInt(12345),
		"gasUsed":   big.NewInt(0),
		"timestamp": big.NewInt(1756500000),
		"txHash":    "0xbeef",
	}

	encoded := codec.DeepEncode(record)
	decoded := codec.DecodeByFieldList(encoded, []string{"amount", "gasUsed", "timestamp"}).(map[string]any)

	assert.Zero(t, record["amount"].(*big.Int).Cmp(decoded["amount"].(*big.Int)))
	assert.Zero(t, record["gasUsed"].(*big.Int).Cmp(decoded["gasUsed"].(*big.Int)))
	assert.Zero(t, record["timestamp"].(*big.Int).Cmp(decoded["timestamp"].(*big.Int)))
	assert.Equal(t, "0xbeef", decoded["txHash"])
}
