package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Network represents a supported network by its canonical subgraph name
type Network string

const (
	NetworkEthereum Network = "ethereum"
	NetworkSepolia  Network = "sepolia"
	NetworkPolygon  Network = "polygon"
	NetworkArbitrum Network = "arbitrum"
	NetworkBase     Network = "base"
)

// ChainID returns the numeric chain id for a network, or 0 for an unknown one
func (n Network) ChainID() uint64 {
	switch n {
	case NetworkEthereum:
		return 1
	case NetworkSepolia:
		return 11155111
	case NetworkPolygon:
		return 137
	case NetworkArbitrum:
		return 42161
	case NetworkBase:
		return 8453
	default:
		return 0
	}
}

// IsValidNetwork checks if a network is supported
func IsValidNetwork(n Network) bool {
	return n.ChainID() != 0
}

// ContractKind represents the spending model of a pool contract
type ContractKind string

const (
	// KindGasLimited contracts meter cumulative gas consumption per membership
	KindGasLimited ContractKind = "gas_limited"
	// KindSingleUse contracts burn a nullifier on first use
	KindSingleUse ContractKind = "single_use"
)

// OperationKind represents the type of an indexed pool operation
type OperationKind string

const (
	OperationDeposit    OperationKind = "deposit"
	OperationWithdrawal OperationKind = "withdrawal"
	OperationTransfer   OperationKind = "transfer"
	OperationRagequit   OperationKind = "ragequit"
)

// ContractID builds the composite id of a contract: network-address
func ContractID(network Network, address string) string {
	return fmt.Sprintf("%s-%s", network, NormalizeAddress(address))
}

// PoolID builds the composite id of a pool: network-contractAddress-index
func PoolID(network Network, contractAddress string, index uint64) string {
	return fmt.Sprintf("%s-%s-%d", network, NormalizeAddress(contractAddress), index)
}

// MembershipID builds the composite id of a membership: poolID-index.
// The pool id already carries the network prefix, so only the natural key is appended.
func MembershipID(poolID string, index uint64) string {
	return fmt.Sprintf("%s-%d", poolID, index)
}

// DailyStatID builds the composite id of a daily stat bucket: network-scope-day,
// where day is the unix timestamp of the UTC midnight opening the bucket
func DailyStatID(network Network, scope string, dayStart int64) string {
	return fmt.Sprintf("%s-%s-%d", network, scope, dayStart)
}

// ParseCompositeID splits a composite id into its network and natural-key parts
func ParseCompositeID(id string) (Network, []string, error) {
	parts := strings.Split(id, "-")
	if len(parts) < 2 {
		return "", nil, fmt.Errorf("%w: %q", ErrMalformedID, id)
	}
	network := Network(parts[0])
	if !IsValidNetwork(network) {
		return "", nil, fmt.Errorf("%w: unknown network in %q", ErrMalformedID, id)
	}
	return network, parts[1:], nil
}

// IsEthereumAddress checks if a string is a valid hex address
func IsEthereumAddress(s string) bool {
	return common.IsHexAddress(s)
}

// NormalizeAddress lowercases a hex address to the form the subgraph stores.
// Non-address inputs are returned unchanged.
func NormalizeAddress(address string) string {
	if common.IsHexAddress(address) {
		return strings.ToLower(common.HexToAddress(address).Hex())
	}
	return address
}

// IsFieldElement checks if a string is a decimal or 0x-prefixed hex field element,
// the two encodings commitments and nullifiers appear in
func IsFieldElement(s string) bool {
	digits := s
	hex := false
	if strings.HasPrefix(s, "0x") {
		digits = strings.TrimPrefix(s, "0x")
		hex = true
	}
	if digits == "" {
		return false
	}
	for _, c := range strings.ToLower(digits) {
		if c >= '0' && c <= '9' {
			continue
		}
		if hex && c >= 'a' && c <= 'f' {
			continue
		}
		return false
	}
	return true
}
