package query

import (
	"context"
	"math/big"

	"github.com/shieldpool/subgraph-go/internal/analytics"
	"github.com/shieldpool/subgraph-go/internal/domain"
	"github.com/shieldpool/subgraph-go/internal/graph"
)

var withdrawalSpec = Spec{
	Collection: "withdrawals",
	Operation:  "Withdrawals",
	OrderBy:    "timestamp",
	OrderDir:   "desc",
	DefaultFields: []string{
		"id",
		"network",
		"recipient",
		"relayer",
		"nullifier",
		"amount",
		"fee",
		"timestamp",
		"block",
		"txHash",
		"pool { id index asset network }",
	},
	Filters: map[string]Filter{
		"id":            {Var: "id", Type: "ID!", Cond: "id: $id"},
		"network":       {Var: "network", Type: "String!", Cond: "network: $network"},
		"pool":          {Var: "pool", Type: "String!", Cond: "pool: $pool"},
		"recipient":     {Var: "recipient", Type: "String!", Cond: "recipient: $recipient"},
		"relayer":       {Var: "relayer", Type: "String!", Cond: "relayer: $relayer"},
		"nullifier":     {Var: "nullifier", Type: "String!", Cond: "nullifier: $nullifier"},
		"amount_gte":    {Var: "amountGte", Type: "BigInt!", Cond: "amount_gte: $amountGte"},
		"timestamp_gte": {Var: "timestampGte", Type: "BigInt!", Cond: "timestamp_gte: $timestampGte"},
		"timestamp_lte": {Var: "timestampLte", Type: "BigInt!", Cond: "timestamp_lte: $timestampLte"},
	},
	NumericFields: []string{"amount", "fee", "timestamp", "block"},
}

// WithdrawalQuery builds queries over completed withdrawals
type WithdrawalQuery struct {
	*Builder[domain.Withdrawal]
}

// NewWithdrawalQuery creates a withdrawal query builder
func NewWithdrawalQuery(exec graph.Executor) *WithdrawalQuery {
	return &WithdrawalQuery{New[domain.Withdrawal](withdrawalSpec, exec)}
}

// Clone returns an independent copy of the query
func (q *WithdrawalQuery) Clone() *WithdrawalQuery {
	return &WithdrawalQuery{q.Builder.Clone()}
}

// ByNetwork filters to one network
func (q *WithdrawalQuery) ByNetwork(network domain.Network) *WithdrawalQuery {
	q.Where(map[string]any{"network": string(network)})
	return q
}

// ByPool filters to one pool's withdrawals
func (q *WithdrawalQuery) ByPool(poolID string) *WithdrawalQuery {
	q.Where(map[string]any{"pool": poolID})
	return q
}

// ByRecipient filters to withdrawals paid to one address
func (q *WithdrawalQuery) ByRecipient(recipient string) *WithdrawalQuery {
	q.Where(map[string]any{"recipient": domain.NormalizeAddress(recipient)})
	return q
}

// ByRelayer filters to withdrawals submitted through one relayer
func (q *WithdrawalQuery) ByRelayer(relayer string) *WithdrawalQuery {
	q.Where(map[string]any{"relayer": domain.NormalizeAddress(relayer)})
	return q
}

// ByNullifier looks up the single withdrawal consuming a nullifier
func (q *WithdrawalQuery) ByNullifier(ctx context.Context, network domain.Network, nullifier string) (*domain.Withdrawal, error) {
	lookup := q.Clone().ByNetwork(network)
	lookup.Where(map[string]any{"nullifier": nullifier})
	return lookup.First(ctx)
}

// Between filters to the inclusive unix-timestamp window [from, to]
func (q *WithdrawalQuery) Between(from, to int64) *WithdrawalQuery {
	q.Where(map[string]any{
		"timestamp_gte": big.NewInt(from),
		"timestamp_lte": big.NewInt(to),
	})
	return q
}

// Latest returns the most recent matching withdrawal
func (q *WithdrawalQuery) Latest(ctx context.Context) (*domain.Withdrawal, error) {
	return q.Clone().OrderBy("timestamp", "desc").First(ctx)
}

// Stats executes the current query and folds the result into volume
// statistics. The receiver is never mutated.
func (q *WithdrawalQuery) Stats(ctx context.Context) (*analytics.VolumeStats, error) {
	ws, err := q.Clone().Execute(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.WithdrawalVolume(ws), nil
}
