package query

import (
	"context"
	"math/big"

	"github.com/shieldpool/subgraph-go/internal/analytics"
	"github.com/shieldpool/subgraph-go/internal/domain"
	"github.com/shieldpool/subgraph-go/internal/graph"
)

var usageRecordSpec = Spec{
	Collection: "usageRecords",
	Operation:  "UsageRecords",
	OrderBy:    "timestamp",
	OrderDir:   "desc",
	DefaultFields: []string{
		"id",
		"network",
		"gasUsed",
		"gasPrice",
		"paymaster",
		"timestamp",
		"block",
		"txHash",
		"membership { id index commitment }",
	},
	Filters: map[string]Filter{
		"id":            {Var: "id", Type: "ID!", Cond: "id: $id"},
		"network":       {Var: "network", Type: "String!", Cond: "network: $network"},
		"membership":    {Var: "membership", Type: "String!", Cond: "membership: $membership"},
		"paymaster":     {Var: "paymaster", Type: "String!", Cond: "paymaster: $paymaster"},
		"gasUsed_gte":   {Var: "gasUsedGte", Type: "BigInt!", Cond: "gasUsed_gte: $gasUsedGte"},
		"timestamp_gte": {Var: "timestampGte", Type: "BigInt!", Cond: "timestamp_gte: $timestampGte"},
		"timestamp_lte": {Var: "timestampLte", Type: "BigInt!", Cond: "timestamp_lte: $timestampLte"},
	},
	NumericFields: []string{"gasUsed", "gasPrice", "timestamp", "block"},
}

// UsageRecordQuery builds queries over metered consumption events
type UsageRecordQuery struct {
	*Builder[domain.UsageRecord]
}

// NewUsageRecordQuery creates a usage record query builder
func NewUsageRecordQuery(exec graph.Executor) *UsageRecordQuery {
	return &UsageRecordQuery{New[domain.UsageRecord](usageRecordSpec, exec)}
}

// Clone returns an independent copy of the query
func (q *UsageRecordQuery) Clone() *UsageRecordQuery {
	return &UsageRecordQuery{q.Builder.Clone()}
}

// ByNetwork filters to one network
func (q *UsageRecordQuery) ByNetwork(network domain.Network) *UsageRecordQuery {
	q.Where(map[string]any{"network": string(network)})
	return q
}

// ByMembership filters to one membership's consumption history
func (q *UsageRecordQuery) ByMembership(membershipID string) *UsageRecordQuery {
	q.Where(map[string]any{"membership": membershipID})
	return q
}

// ByPaymaster filters to events sponsored by one paymaster
func (q *UsageRecordQuery) ByPaymaster(paymaster string) *UsageRecordQuery {
	q.Where(map[string]any{"paymaster": domain.NormalizeAddress(paymaster)})
	return q
}

// Between filters to the inclusive unix-timestamp window [from, to]
func (q *UsageRecordQuery) Between(from, to int64) *UsageRecordQuery {
	q.Where(map[string]any{
		"timestamp_gte": big.NewInt(from),
		"timestamp_lte": big.NewInt(to),
	})
	return q
}

// Latest returns the most recent matching usage record
func (q *UsageRecordQuery) Latest(ctx context.Context) (*domain.UsageRecord, error) {
	return q.Clone().OrderBy("timestamp", "desc").First(ctx)
}

// TotalGasUsed sums gas consumption across all matching records
func (q *UsageRecordQuery) TotalGasUsed(ctx context.Context) (*big.Int, error) {
	records, err := q.Clone().Execute(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Sum(records, func(r domain.UsageRecord) *big.Int { return r.GasUsed.Unwrap() }), nil
}

// Timeline executes the current query and buckets the result per UTC day,
// each bucket summing gas and counting distinct memberships
func (q *UsageRecordQuery) Timeline(ctx context.Context) ([]analytics.DailyBucket, error) {
	records, err := q.Clone().Execute(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Daily(records,
		func(r domain.UsageRecord) *big.Int { return r.Timestamp.Unwrap() },
		func(r domain.UsageRecord) *big.Int { return r.GasUsed.Unwrap() },
		func(r domain.UsageRecord) string {
			if r.Membership == nil {
				return ""
			}
			return r.Membership.ID
		},
	), nil
}
