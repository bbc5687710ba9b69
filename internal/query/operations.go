package query

import (
	"context"
	"math/big"

	"github.com/shieldpool/subgraph-go/internal/analytics"
	"github.com/shieldpool/subgraph-go/internal/domain"
	"github.com/shieldpool/subgraph-go/internal/graph"
)

var operationSpec = Spec{
	Collection: "operations",
	Operation:  "Operations",
	OrderBy:    "timestamp",
	OrderDir:   "desc",
	DefaultFields: []string{
		"id",
		"network",
		"kind",
		"commitment",
		"nullifier",
		"amount",
		"fee",
		"gasUsed",
		"gasPrice",
		"sender",
		"timestamp",
		"block",
		"txHash",
		"pool { id index asset network }",
	},
	Filters: map[string]Filter{
		"id":            {Var: "id", Type: "ID!", Cond: "id: $id"},
		"network":       {Var: "network", Type: "String!", Cond: "network: $network"},
		"pool":          {Var: "pool", Type: "String!", Cond: "pool: $pool"},
		"kind":          {Var: "kind", Type: "String!", Cond: "kind: $kind"},
		"sender":        {Var: "sender", Type: "String!", Cond: "sender: $sender"},
		"nullifier":     {Var: "nullifier", Type: "String!", Cond: "nullifier: $nullifier"},
		"commitment":    {Var: "commitment", Type: "String!", Cond: "commitment: $commitment"},
		"amount_gte":    {Var: "amountGte", Type: "BigInt!", Cond: "amount_gte: $amountGte"},
		"amount_lte":    {Var: "amountLte", Type: "BigInt!", Cond: "amount_lte: $amountLte"},
		"timestamp_gte": {Var: "timestampGte", Type: "BigInt!", Cond: "timestamp_gte: $timestampGte"},
		"timestamp_lte": {Var: "timestampLte", Type: "BigInt!", Cond: "timestamp_lte: $timestampLte"},
		"block_gte":     {Var: "blockGte", Type: "BigInt!", Cond: "block_gte: $blockGte"},
		"block_lte":     {Var: "blockLte", Type: "BigInt!", Cond: "block_lte: $blockLte"},
	},
	NumericFields: []string{"amount", "fee", "gasUsed", "gasPrice", "timestamp", "block"},
}

// OperationQuery builds queries over indexed pool transactions
type OperationQuery struct {
	*Builder[domain.Operation]
}

// NewOperationQuery creates an operation query builder
func NewOperationQuery(exec graph.Executor) *OperationQuery {
	return &OperationQuery{New[domain.Operation](operationSpec, exec)}
}

// Clone returns an independent copy of the query
func (q *OperationQuery) Clone() *OperationQuery {
	return &OperationQuery{q.Builder.Clone()}
}

// ByNetwork filters to one network
func (q *OperationQuery) ByNetwork(network domain.Network) *OperationQuery {
	q.Where(map[string]any{"network": string(network)})
	return q
}

// ByPool filters to one pool's operations
func (q *OperationQuery) ByPool(poolID string) *OperationQuery {
	q.Where(map[string]any{"pool": poolID})
	return q
}

// ByKind filters to one operation type
func (q *OperationQuery) ByKind(kind domain.OperationKind) *OperationQuery {
	q.Where(map[string]any{"kind": string(kind)})
	return q
}

// BySender filters to operations submitted by one address
func (q *OperationQuery) BySender(sender string) *OperationQuery {
	q.Where(map[string]any{"sender": domain.NormalizeAddress(sender)})
	return q
}

// MinAmount filters to operations moving at least amount wei
func (q *OperationQuery) MinAmount(amount *big.Int) *OperationQuery {
	q.Where(map[string]any{"amount_gte": amount})
	return q
}

// Between filters to the inclusive unix-timestamp window [from, to]
func (q *OperationQuery) Between(from, to int64) *OperationQuery {
	q.Where(map[string]any{
		"timestamp_gte": big.NewInt(from),
		"timestamp_lte": big.NewInt(to),
	})
	return q
}

// InBlockRange filters to the inclusive block window [from, to]
func (q *OperationQuery) InBlockRange(from, to uint64) *OperationQuery {
	q.Where(map[string]any{
		"block_gte": new(big.Int).SetUint64(from),
		"block_lte": new(big.Int).SetUint64(to),
	})
	return q
}

// OrderByAmount orders largest operations first
func (q *OperationQuery) OrderByAmount() *OperationQuery {
	q.OrderBy("amount", "desc")
	return q
}

// NullifierSpent reports whether a nullifier was ever consumed on a
// network, the double-spend check run before accepting a withdrawal
func (q *OperationQuery) NullifierSpent(ctx context.Context, network domain.Network, nullifier string) (bool, error) {
	lookup := q.Clone().ByNetwork(network)
	lookup.Where(map[string]any{"nullifier": nullifier})
	return lookup.Exists(ctx)
}

// Latest returns the most recent matching operation
func (q *OperationQuery) Latest(ctx context.Context) (*domain.Operation, error) {
	return q.Clone().OrderBy("timestamp", "desc").First(ctx)
}

// Stats executes the current query and folds the result into volume
// statistics. The receiver is never mutated.
func (q *OperationQuery) Stats(ctx context.Context) (*analytics.VolumeStats, error) {
	ops, err := q.Clone().Execute(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.OperationVolume(ops), nil
}

// Timeline executes the current query and buckets the result per UTC day,
// each bucket summing moved value and counting distinct senders
func (q *OperationQuery) Timeline(ctx context.Context) ([]analytics.DailyBucket, error) {
	ops, err := q.Clone().Execute(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Daily(ops,
		func(o domain.Operation) *big.Int { return o.Timestamp.Unwrap() },
		func(o domain.Operation) *big.Int { return o.Amount.Unwrap() },
		func(o domain.Operation) string { return o.Sender },
	), nil
}
