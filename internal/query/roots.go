package query

import (
	"context"

	"github.com/shieldpool/subgraph-go/internal/domain"
	"github.com/shieldpool/subgraph-go/internal/graph"
)

var rootUpdateSpec = Spec{
	Collection: "rootUpdates",
	Operation:  "RootUpdates",
	OrderBy:    "index",
	OrderDir:   "desc",
	DefaultFields: []string{
		"id",
		"network",
		"index",
		"root",
		"leafCount",
		"timestamp",
		"block",
		"txHash",
		"pool { id index asset network }",
	},
	Filters: map[string]Filter{
		"id":            {Var: "id", Type: "ID!", Cond: "id: $id"},
		"network":       {Var: "network", Type: "String!", Cond: "network: $network"},
		"pool":          {Var: "pool", Type: "String!", Cond: "pool: $pool"},
		"root":          {Var: "root", Type: "String!", Cond: "root: $root"},
		"index_gte":     {Var: "indexGte", Type: "BigInt!", Cond: "index_gte: $indexGte"},
		"index_lte":     {Var: "indexLte", Type: "BigInt!", Cond: "index_lte: $indexLte"},
		"timestamp_gte": {Var: "timestampGte", Type: "BigInt!", Cond: "timestamp_gte: $timestampGte"},
		"timestamp_lte": {Var: "timestampLte", Type: "BigInt!", Cond: "timestamp_lte: $timestampLte"},
	},
	NumericFields: []string{"index", "leafCount", "timestamp", "block"},
}

// RootUpdateQuery builds queries over commitment tree root history
type RootUpdateQuery struct {
	*Builder[domain.RootUpdate]
}

// NewRootUpdateQuery creates a root history query builder
func NewRootUpdateQuery(exec graph.Executor) *RootUpdateQuery {
	return &RootUpdateQuery{New[domain.RootUpdate](rootUpdateSpec, exec)}
}

// Clone returns an independent copy of the query
func (q *RootUpdateQuery) Clone() *RootUpdateQuery {
	return &RootUpdateQuery{q.Builder.Clone()}
}

// ByNetwork filters to one network
func (q *RootUpdateQuery) ByNetwork(network domain.Network) *RootUpdateQuery {
	q.Where(map[string]any{"network": string(network)})
	return q
}

// ByPool filters to one pool's root history
func (q *RootUpdateQuery) ByPool(poolID string) *RootUpdateQuery {
	q.Where(map[string]any{"pool": poolID})
	return q
}

// KnownRoot reports whether a root value ever appeared in a pool's history.
// Withdrawal proofs are valid against any historical root, so this is the
// membership check relayers run before submitting.
func (q *RootUpdateQuery) KnownRoot(ctx context.Context, poolID, root string) (bool, error) {
	lookup := q.Clone().ByPool(poolID)
	lookup.Where(map[string]any{"root": root})
	return lookup.Exists(ctx)
}

// Latest returns the pool's current root, the one with the highest index
func (q *RootUpdateQuery) Latest(ctx context.Context) (*domain.RootUpdate, error) {
	return q.Clone().OrderBy("index", "desc").First(ctx)
}
