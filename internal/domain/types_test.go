package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkChainID(t *testing.T) {
	assert.Equal(t, uint64(1), NetworkEthereum.ChainID())
	assert.Equal(t, uint64(11155111), NetworkSepolia.ChainID())
	assert.Equal(t, uint64(137), NetworkPolygon.ChainID())
	assert.Equal(t, uint64(42161), NetworkArbitrum.ChainID())
	assert.Equal(t, uint64(8453), NetworkBase.ChainID())
	assert.Equal(t, uint64(0), Network("mars").ChainID())
}

func TestIsValidNetwork(t *testing.T) {
	assert.True(t, IsValidNetwork(NetworkSepolia))
	assert.False(t, IsValidNetwork(Network("")))
	assert.False(t, IsValidNetwork(Network("mainnet")))
}

func TestCompositeIDs(t *testing.T) {
	contract := ContractID(NetworkSepolia, "0xAbCdEf1234567890aBcDeF1234567890ABcDEf12")
	assert.Equal(t, "sepolia-0xabcdef1234567890abcdef1234567890abcdef12", contract)

	pool := PoolID(NetworkSepolia, "0xAbCdEf1234567890aBcDeF1234567890ABcDEf12", 3)
	assert.Equal(t, "sepolia-0xabcdef1234567890abcdef1234567890abcdef12-3", pool)

	membership := MembershipID(pool, 42)
	assert.Equal(t, "sepolia-0xabcdef1234567890abcdef1234567890abcdef12-3-42", membership)

	stat := DailyStatID(NetworkEthereum, "pool", 1767225600)
	assert.Equal(t, "ethereum-pool-1767225600", stat)
}

func TestParseCompositeID(t *testing.T) {
	testCases := []struct {
		name            string
		id              string
		expectedNetwork Network
		expectedParts   []string
		expectedErr     error
	}{
		{
			name:            "pool id",
			id:              "sepolia-0xabc-0",
			expectedNetwork: NetworkSepolia,
			expectedParts:   []string{"0xabc", "0"},
		},
		{
			name:            "membership id",
			id:              "ethereum-0xabc-0-17",
			expectedNetwork: NetworkEthereum,
			expectedParts:   []string{"0xabc", "0", "17"},
		},
		{
			name:        "missing separator",
			id:          "sepolia",
			expectedErr: ErrMalformedID,
		},
		{
			name:        "unknown network",
			id:          "mars-0xabc-0",
			expectedErr: ErrMalformedID,
		},
		{
			name:        "empty id",
			id:          "",
			expectedErr: ErrMalformedID,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			network, parts, err := ParseCompositeID(tc.id)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedNetwork, network)
			assert.Equal(t, tc.expectedParts, parts)
		})
	}
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t,
		"0xabcdef1234567890abcdef1234567890abcdef12",
		NormalizeAddress("0xABCDEF1234567890ABCDEF1234567890ABCDEF12"))
	// Pass-through for non-address inputs
	assert.Equal(t, "not-an-address", NormalizeAddress("not-an-address"))
	assert.Equal(t, "", NormalizeAddress(""))
}

func TestIsEthereumAddress(t *testing.T) {
	assert.True(t, IsEthereumAddress("0xabcdef1234567890abcdef1234567890abcdef12"))
	assert.True(t, IsEthereumAddress("0xABCDEF1234567890ABCDEF1234567890ABCDEF12"))
	assert.False(t, IsEthereumAddress("0xabc"))
	assert.False(t, IsEthereumAddress("sepolia-0xabc-0"))
	assert.False(t, IsEthereumAddress(""))
}

func TestIsFieldElement(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "decimal", input: "123456789", expected: true},
		{name: "zero", input: "0", expected: true},
		{name: "hex", input: "0x1a2b3c", expected: true},
		{name: "hex uppercase", input: "0x1A2B3C", expected: true},
		{name: "hex digits without prefix rejected", input: "1a2b3c", expected: false},
		{name: "bare prefix", input: "0x", expected: false},
		{name: "empty", input: "", expected: false},
		{name: "negative", input: "-5", expected: false},
		{name: "non hex letter", input: "0x12g4", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsFieldElement(tc.input))
		})
	}
}
