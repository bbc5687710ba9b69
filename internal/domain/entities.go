package domain

import (
	"github.com/shieldpool/subgraph-go/internal/types"
)

// ContractRef is the one-level embedding of a contract inside related entities
type ContractRef struct {
	ID      string  `json:"id"`
	Address string  `json:"address"`
	Network Network `json:"network"`
}

// PoolRef is the one-level embedding of a pool inside related entities
type PoolRef struct {
	ID      string        `json:"id"`
	Index   *types.BigInt `json:"index"`
	Asset   string        `json:"asset"`
	Network Network       `json:"network"`
}

// MembershipRef is the one-level embedding of a membership inside usage records
type MembershipRef struct {
	ID         string        `json:"id"`
	Index      *types.BigInt `json:"index"`
	Commitment string        `json:"commitment"`
}

// Contract is a deployed pool contract. The two contract kinds share this
// shape: gas-limited contracts populate TotalGasUsed/GasLimit, single-use
// contracts populate SpentNullifiers. The other kind leaves those fields nil.
type Contract struct {
	ID              string        `json:"id"`
	Network         Network       `json:"network"`
	ChainID         *types.BigInt `json:"chainId"`
	Address         string        `json:"address"`
	Owner           string        `json:"owner"`
	Kind            ContractKind  `json:"kind"`
	PoolCount       *types.BigInt `json:"poolCount"`
	MembershipCount *types.BigInt `json:"membershipCount"`
	TotalGasUsed    *types.BigInt `json:"totalGasUsed,omitempty"`
	GasLimit        *types.BigInt `json:"gasLimit,omitempty"`
	SpentNullifiers *types.BigInt `json:"spentNullifiers,omitempty"`
	CreatedAt       *types.BigInt `json:"createdAt"`
	CreatedAtBlock  *types.BigInt `json:"createdAtBlock"`
}

// Pool is one privacy pool under a contract
type Pool struct {
	ID             string        `json:"id"`
	Network        Network       `json:"network"`
	ChainID        *types.BigInt `json:"chainId"`
	Contract       *ContractRef  `json:"contract"`
	Index          *types.BigInt `json:"index"`
	Asset          string        `json:"asset"`
	Denomination   *types.BigInt `json:"denomination"`
	TotalDeposited *types.BigInt `json:"totalDeposited"`
	TotalWithdrawn *types.BigInt `json:"totalWithdrawn"`
	MemberCount    *types.BigInt `json:"memberCount"`
	CurrentRoot    string        `json:"currentRoot"`
	CreatedAt      *types.BigInt `json:"createdAt"`
	CreatedAtBlock *types.BigInt `json:"createdAtBlock"`
}

// Membership is one leaf in a pool's commitment tree
type Membership struct {
	ID             string        `json:"id"`
	Network        Network       `json:"network"`
	Pool           *PoolRef      `json:"pool"`
	Index          *types.BigInt `json:"index"`
	Commitment     string        `json:"commitment"`
	Owner          string        `json:"owner"`
	Nullifier      string        `json:"nullifier,omitempty"`
	GasUsed        *types.BigInt `json:"gasUsed,omitempty"`
	GasLimit       *types.BigInt `json:"gasLimit,omitempty"`
	Spent          *bool         `json:"spent,omitempty"`
	CreatedAt      *types.BigInt `json:"createdAt"`
	CreatedAtBlock *types.BigInt `json:"createdAtBlock"`
	TxHash         string        `json:"txHash"`
}

// RootUpdate is one historical state of a pool's commitment tree root
type RootUpdate struct {
	ID        string        `json:"id"`
	Network   Network       `json:"network"`
	Pool      *PoolRef      `json:"pool"`
	Index     *types.BigInt `json:"index"`
	Root      string        `json:"root"`
	LeafCount *types.BigInt `json:"leafCount"`
	Timestamp *types.BigInt `json:"timestamp"`
	Block     *types.BigInt `json:"block"`
	TxHash    string        `json:"txHash"`
}

// Operation is one indexed pool transaction
type Operation struct {
	ID         string        `json:"id"`
	Network    Network       `json:"network"`
	Pool       *PoolRef      `json:"pool"`
	Kind       OperationKind `json:"kind"`
	Commitment string        `json:"commitment,omitempty"`
	Nullifier  string        `json:"nullifier,omitempty"`
	Amount     *types.BigInt `json:"amount"`
	Fee        *types.BigInt `json:"fee,omitempty"`
	GasUsed    *types.BigInt `json:"gasUsed"`
	GasPrice   *types.BigInt `json:"gasPrice"`
	Sender     string        `json:"sender"`
	Timestamp  *types.BigInt `json:"timestamp"`
	Block      *types.BigInt `json:"block"`
	TxHash     string        `json:"txHash"`
}

// Withdrawal is one completed withdrawal from a pool
type Withdrawal struct {
	ID        string        `json:"id"`
	Network   Network       `json:"network"`
	Pool      *PoolRef      `json:"pool"`
	Recipient string        `json:"recipient"`
	Relayer   string        `json:"relayer,omitempty"`
	Nullifier string        `json:"nullifier"`
	Amount    *types.BigInt `json:"amount"`
	Fee       *types.BigInt `json:"fee"`
	Timestamp *types.BigInt `json:"timestamp"`
	Block     *types.BigInt `json:"block"`
	TxHash    string        `json:"txHash"`
}

// UsageRecord is one metered consumption event against a membership
type UsageRecord struct {
	ID         string         `json:"id"`
	Network    Network        `json:"network"`
	Membership *MembershipRef `json:"membership"`
	GasUsed    *types.BigInt  `json:"gasUsed"`
	GasPrice   *types.BigInt  `json:"gasPrice"`
	Paymaster  string         `json:"paymaster,omitempty"`
	Timestamp  *types.BigInt  `json:"timestamp"`
	Block      *types.BigInt  `json:"block"`
	TxHash     string         `json:"txHash"`
}

// PoolDailyStat is the per-pool daily rollup maintained by the subgraph
type PoolDailyStat struct {
	ID            string        `json:"id"`
	Network       Network       `json:"network"`
	Pool          *PoolRef      `json:"pool"`
	DayStart      *types.BigInt `json:"dayStart"`
	Deposits      *types.BigInt `json:"deposits"`
	Withdrawals   *types.BigInt `json:"withdrawals"`
	Volume        *types.BigInt `json:"volume"`
	GasUsed       *types.BigInt `json:"gasUsed"`
	NewMembers    *types.BigInt `json:"newMembers"`
	ActiveMembers *types.BigInt `json:"activeMembers"`
}

// GlobalDailyStat is the network-wide daily rollup maintained by the subgraph
type GlobalDailyStat struct {
	ID              string        `json:"id"`
	Network         Network       `json:"network"`
	DayStart        *types.BigInt `json:"dayStart"`
	PoolCount       *types.BigInt `json:"poolCount"`
	MembershipCount *types.BigInt `json:"membershipCount"`
	OperationCount  *types.BigInt `json:"operationCount"`
	Volume          *types.BigInt `json:"volume"`
	GasUsed         *types.BigInt `json:"gasUsed"`
}
