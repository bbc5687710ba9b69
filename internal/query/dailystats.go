package query

import (
	"context"
	"math/big"

	"github.com/shieldpool/subgraph-go/internal/analytics"
	"github.com/shieldpool/subgraph-go/internal/domain"
	"github.com/shieldpool/subgraph-go/internal/graph"
)

var poolDailyStatSpec = Spec{
	Collection: "poolDailyStats",
	Operation:  "PoolDailyStats",
	OrderBy:    "dayStart",
	OrderDir:   "desc",
	DefaultFields: []string{
		"id",
		"network",
		"dayStart",
		"deposits",
		"withdrawals",
		"volume",
		"gasUsed",
		"newMembers",
		"activeMembers",
		"pool { id index asset network }",
	},
	Filters: map[string]Filter{
		"id":           {Var: "id", Type: "ID!", Cond: "id: $id"},
		"network":      {Var: "network", Type: "String!", Cond: "network: $network"},
		"pool":         {Var: "pool", Type: "String!", Cond: "pool: $pool"},
		"dayStart_gte": {Var: "dayStartGte", Type: "BigInt!", Cond: "dayStart_gte: $dayStartGte"},
		"dayStart_lte": {Var: "dayStartLte", Type: "BigInt!", Cond: "dayStart_lte: $dayStartLte"},
	},
	NumericFields: []string{"dayStart", "deposits", "withdrawals", "volume", "gasUsed", "newMembers", "activeMembers"},
}

// PoolDailyStatQuery builds queries over per-pool daily rollups
type PoolDailyStatQuery struct {
	*Builder[domain.PoolDailyStat]
}

// NewPoolDailyStatQuery creates a pool daily stat query builder
func NewPoolDailyStatQuery(exec graph.Executor) *PoolDailyStatQuery {
	return &PoolDailyStatQuery{New[domain.PoolDailyStat](poolDailyStatSpec, exec)}
}

// Clone returns an independent copy of the query
func (q *PoolDailyStatQuery) Clone() *PoolDailyStatQuery {
	return &PoolDailyStatQuery{q.Builder.Clone()}
}

// ByNetwork filters to one network
func (q *PoolDailyStatQuery) ByNetwork(network domain.Network) *PoolDailyStatQuery {
	q.Where(map[string]any{"network": string(network)})
	return q
}

// ByPool filters to one pool's daily series
func (q *PoolDailyStatQuery) ByPool(poolID string) *PoolDailyStatQuery {
	q.Where(map[string]any{"pool": poolID})
	return q
}

// Since filters to buckets opening at or after a unix timestamp
func (q *PoolDailyStatQuery) Since(dayStart int64) *PoolDailyStatQuery {
	q.Where(map[string]any{"dayStart_gte": big.NewInt(dayStart)})
	return q
}

// Activity executes the current query and folds the daily series into one
// summary. The receiver is never mutated.
func (q *PoolDailyStatQuery) Activity(ctx context.Context) (*analytics.PoolActivity, error) {
	stats, err := q.Clone().Execute(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.PoolDailyActivity(stats), nil
}

var globalDailyStatSpec = Spec{
	Collection: "globalDailyStats",
	Operation:  "GlobalDailyStats",
	OrderBy:    "dayStart",
	OrderDir:   "desc",
	DefaultFields: []string{
		"id",
		"network",
		"dayStart",
		"poolCount",
		"membershipCount",
		"operationCount",
		"volume",
		"gasUsed",
	},
	Filters: map[string]Filter{
		"id":           {Var: "id", Type: "ID!", Cond: "id: $id"},
		"network":      {Var: "network", Type: "String!", Cond: "network: $network"},
		"dayStart_gte": {Var: "dayStartGte", Type: "BigInt!", Cond: "dayStart_gte: $dayStartGte"},
		"dayStart_lte": {Var: "dayStartLte", Type: "BigInt!", Cond: "dayStart_lte: $dayStartLte"},
	},
	NumericFields: []string{"dayStart", "poolCount", "membershipCount", "operationCount", "volume", "gasUsed"},
}

// GlobalDailyStatQuery builds queries over network-wide daily rollups
type GlobalDailyStatQuery struct {
	*Builder[domain.GlobalDailyStat]
}

// NewGlobalDailyStatQuery creates a global daily stat query builder
func NewGlobalDailyStatQuery(exec graph.Executor) *GlobalDailyStatQuery {
	return &GlobalDailyStatQuery{New[domain.GlobalDailyStat](globalDailyStatSpec, exec)}
}

// Clone returns an independent copy of the query
func (q *GlobalDailyStatQuery) Clone() *GlobalDailyStatQuery {
	return &GlobalDailyStatQuery{q.Builder.Clone()}
}

// ByNetwork filters to one network
func (q *GlobalDailyStatQuery) ByNetwork(network domain.Network) *GlobalDailyStatQuery {
	q.Where(map[string]any{"network": string(network)})
	return q
}

// Since filters to buckets opening at or after a unix timestamp
func (q *GlobalDailyStatQuery) Since(dayStart int64) *GlobalDailyStatQuery {
	q.Where(map[string]any{"dayStart_gte": big.NewInt(dayStart)})
	return q
}

// Window filters to the inclusive day-start window [from, to]
func (q *GlobalDailyStatQuery) Window(from, to int64) *GlobalDailyStatQuery {
	q.Where(map[string]any{
		"dayStart_gte": big.NewInt(from),
		"dayStart_lte": big.NewInt(to),
	})
	return q
}

// VolumeGrowth executes the current query and returns the display-only
// percentage change of volume between the two most recent days
func (q *GlobalDailyStatQuery) VolumeGrowth(ctx context.Context) (float64, error) {
	stats, err := q.Clone().Execute(ctx)
	if err != nil {
		return 0, err
	}
	if len(stats) < 2 {
		return 0, nil
	}
	// Most recent first under the default ordering
	return analytics.PercentChange(stats[1].Volume.Unwrap(), stats[0].Volume.Unwrap()), nil
}
