package query

import (
	"context"
	"math/big"

	"github.com/shieldpool/subgraph-go/internal/analytics"
	"github.com/shieldpool/subgraph-go/internal/domain"
	"github.com/shieldpool/subgraph-go/internal/graph"
)

var poolSpec = Spec{
	Collection: "pools",
	Operation:  "Pools",
	OrderBy:    "createdAt",
	OrderDir:   "desc",
	DefaultFields: []string{
		"id",
		"network",
		"chainId",
		"index",
		"asset",
		"denomination",
		"totalDeposited",
		"totalWithdrawn",
		"memberCount",
		"currentRoot",
		"createdAt",
		"createdAtBlock",
		"contract { id address network }",
	},
	Filters: map[string]Filter{
		"id":                 {Var: "id", Type: "ID!", Cond: "id: $id"},
		"network":            {Var: "network", Type: "String!", Cond: "network: $network"},
		"contract":           {Var: "contract", Type: "String!", Cond: "contract: $contract"},
		"asset":              {Var: "asset", Type: "String!", Cond: "asset: $asset"},
		"denomination":       {Var: "denomination", Type: "BigInt!", Cond: "denomination: $denomination"},
		"memberCount_gte":    {Var: "memberCountGte", Type: "BigInt!", Cond: "memberCount_gte: $memberCountGte"},
		"totalDeposited_gte": {Var: "totalDepositedGte", Type: "BigInt!", Cond: "totalDeposited_gte: $totalDepositedGte"},
		"createdAt_gte":      {Var: "createdAtGte", Type: "BigInt!", Cond: "createdAt_gte: $createdAtGte"},
		"createdAt_lte":      {Var: "createdAtLte", Type: "BigInt!", Cond: "createdAt_lte: $createdAtLte"},
	},
	NumericFields: []string{"chainId", "index", "denomination", "totalDeposited", "totalWithdrawn", "memberCount", "createdAt", "createdAtBlock"},
}

// PoolQuery builds queries over privacy pools
type PoolQuery struct {
	*Builder[domain.Pool]
}

// NewPoolQuery creates a pool query builder
func NewPoolQuery(exec graph.Executor) *PoolQuery {
	return &PoolQuery{New[domain.Pool](poolSpec, exec)}
}

// Clone returns an independent copy of the query
func (q *PoolQuery) Clone() *PoolQuery {
	return &PoolQuery{q.Builder.Clone()}
}

// ByNetwork filters to one network
func (q *PoolQuery) ByNetwork(network domain.Network) *PoolQuery {
	q.Where(map[string]any{"network": string(network)})
	return q
}

// ByContract filters to pools under one contract by its composite id
func (q *PoolQuery) ByContract(contractID string) *PoolQuery {
	q.Where(map[string]any{"contract": contractID})
	return q
}

// ByAsset filters to pools denominated in one asset
func (q *PoolQuery) ByAsset(asset string) *PoolQuery {
	q.Where(map[string]any{"asset": domain.NormalizeAddress(asset)})
	return q
}

// ByDenomination filters to pools of one fixed denomination
func (q *PoolQuery) ByDenomination(denomination *big.Int) *PoolQuery {
	q.Where(map[string]any{"denomination": denomination})
	return q
}

// MinMembers filters to pools with at least n members
func (q *PoolQuery) MinMembers(n int64) *PoolQuery {
	q.Where(map[string]any{"memberCount_gte": big.NewInt(n)})
	return q
}

// OrderByLiquidity orders deepest pools first
func (q *PoolQuery) OrderByLiquidity() *PoolQuery {
	q.OrderBy("totalDeposited", "desc")
	return q
}

// ByIndex looks up the single pool at an index under a contract,
// reconstructing the composite id locally
func (q *PoolQuery) ByIndex(ctx context.Context, network domain.Network, contractAddress string, index uint64) (*domain.Pool, error) {
	lookup := q.Clone()
	lookup.Where(map[string]any{"id": domain.PoolID(network, contractAddress, index)})
	return lookup.First(ctx)
}

// Latest returns the most recently created matching pool
func (q *PoolQuery) Latest(ctx context.Context) (*domain.Pool, error) {
	return q.Clone().OrderBy("createdAt", "desc").First(ctx)
}

// TotalDeposited sums totalDeposited across all matching pools
func (q *PoolQuery) TotalDeposited(ctx context.Context) (*big.Int, error) {
	pools, err := q.Clone().Execute(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Sum(pools, func(p domain.Pool) *big.Int { return p.TotalDeposited.Unwrap() }), nil
}
