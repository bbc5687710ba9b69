package query

import (
	"context"
	"math/big"

	"github.com/shieldpool/subgraph-go/internal/analytics"
	"github.com/shieldpool/subgraph-go/internal/domain"
	"github.com/shieldpool/subgraph-go/internal/graph"
)

var membershipSpec = Spec{
	Collection: "memberships",
	Operation:  "Memberships",
	OrderBy:    "createdAt",
	OrderDir:   "desc",
	DefaultFields: []string{
		"id",
		"network",
		"index",
		"commitment",
		"owner",
		"nullifier",
		"gasUsed",
		"gasLimit",
		"spent",
		"createdAt",
		"createdAtBlock",
		"txHash",
		"pool { id index asset network }",
	},
	Filters: map[string]Filter{
		"id":            {Var: "id", Type: "ID!", Cond: "id: $id"},
		"network":       {Var: "network", Type: "String!", Cond: "network: $network"},
		"pool":          {Var: "pool", Type: "String!", Cond: "pool: $pool"},
		"owner":         {Var: "owner", Type: "String!", Cond: "owner: $owner"},
		"commitment":    {Var: "commitment", Type: "String!", Cond: "commitment: $commitment"},
		"spent":         {Var: "spent", Type: "Boolean!", Cond: "spent: $spent"},
		"index_gte":     {Var: "indexGte", Type: "BigInt!", Cond: "index_gte: $indexGte"},
		"index_lte":     {Var: "indexLte", Type: "BigInt!", Cond: "index_lte: $indexLte"},
		"gasUsed_gte":   {Var: "gasUsedGte", Type: "BigInt!", Cond: "gasUsed_gte: $gasUsedGte"},
		"gasUsed_lte":   {Var: "gasUsedLte", Type: "BigInt!", Cond: "gasUsed_lte: $gasUsedLte"},
		"createdAt_gte": {Var: "createdAtGte", Type: "BigInt!", Cond: "createdAt_gte: $createdAtGte"},
		"createdAt_lte": {Var: "createdAtLte", Type: "BigInt!", Cond: "createdAt_lte: $createdAtLte"},
		// The subgraph cannot express a null-check on the nullifier
		// relationship; a not-equals against the empty string stands in
		// for "has been assigned a nullifier". Do not generalize this
		// sentinel to other relationship fields.
		"nullifier_not": {Var: "nullifierNot", Type: "String!", Cond: "nullifier_not: $nullifierNot"},
	},
	NumericFields: []string{"index", "gasUsed", "gasLimit", "createdAt", "createdAtBlock"},
}

// MembershipQuery builds queries over pool memberships
type MembershipQuery struct {
	*Builder[domain.Membership]
}

// NewMembershipQuery creates a membership query builder
func NewMembershipQuery(exec graph.Executor) *MembershipQuery {
	return &MembershipQuery{New[domain.Membership](membershipSpec, exec)}
}

// Clone returns an independent copy of the query
func (q *MembershipQuery) Clone() *MembershipQuery {
	return &MembershipQuery{q.Builder.Clone()}
}

// ByNetwork filters to one network
func (q *MembershipQuery) ByNetwork(network domain.Network) *MembershipQuery {
	q.Where(map[string]any{"network": string(network)})
	return q
}

// ByPool filters to one pool by its composite id
func (q *MembershipQuery) ByPool(poolID string) *MembershipQuery {
	q.Where(map[string]any{"pool": poolID})
	return q
}

// ByOwner filters to memberships held by one address
func (q *MembershipQuery) ByOwner(owner string) *MembershipQuery {
	q.Where(map[string]any{"owner": domain.NormalizeAddress(owner)})
	return q
}

// ByCommitment filters to one commitment
func (q *MembershipQuery) ByCommitment(commitment string) *MembershipQuery {
	q.Where(map[string]any{"commitment": commitment})
	return q
}

// Spent filters by whether the membership's nullifier has been used
func (q *MembershipQuery) Spent(spent bool) *MembershipQuery {
	q.Where(map[string]any{"spent": spent})
	return q
}

// WithNullifier narrows to memberships that have a nullifier assigned
func (q *MembershipQuery) WithNullifier() *MembershipQuery {
	q.Where(map[string]any{"nullifier_not": ""})
	return q
}

// MinGasUsed filters to memberships at or above a gas floor
func (q *MembershipQuery) MinGasUsed(gas *big.Int) *MembershipQuery {
	q.Where(map[string]any{"gasUsed_gte": gas})
	return q
}

// MaxGasUsed filters to memberships at or below a gas ceiling
func (q *MembershipQuery) MaxGasUsed(gas *big.Int) *MembershipQuery {
	q.Where(map[string]any{"gasUsed_lte": gas})
	return q
}

// CreatedAfter filters to memberships created at or after a unix timestamp
func (q *MembershipQuery) CreatedAfter(ts int64) *MembershipQuery {
	q.Where(map[string]any{"createdAt_gte": big.NewInt(ts)})
	return q
}

// CreatedBefore filters to memberships created at or before a unix timestamp
func (q *MembershipQuery) CreatedBefore(ts int64) *MembershipQuery {
	q.Where(map[string]any{"createdAt_lte": big.NewInt(ts)})
	return q
}

// OrderByCreation orders most recent first
func (q *MembershipQuery) OrderByCreation() *MembershipQuery {
	q.OrderBy("createdAt", "desc")
	return q
}

// OrderByGasUsed orders heaviest consumers first
func (q *MembershipQuery) OrderByGasUsed() *MembershipQuery {
	q.OrderBy("gasUsed", "desc")
	return q
}

// OrderByIndex orders by leaf index ascending
func (q *MembershipQuery) OrderByIndex() *MembershipQuery {
	q.OrderBy("index", "asc")
	return q
}

// ByIndex looks up the single membership at a leaf index, reconstructing
// the composite id locally. Returns nil when the leaf does not exist.
func (q *MembershipQuery) ByIndex(ctx context.Context, poolID string, index uint64) (*domain.Membership, error) {
	lookup := q.Clone()
	lookup.Where(map[string]any{"id": domain.MembershipID(poolID, index)})
	return lookup.First(ctx)
}

// IndexRange fetches the contiguous run of leaves [from, to] in a pool
func (q *MembershipQuery) IndexRange(ctx context.Context, poolID string, from, to uint64) ([]domain.Membership, error) {
	ranged := q.Clone().ByPool(poolID).OrderByIndex()
	ranged.Where(map[string]any{
		"index_gte": new(big.Int).SetUint64(from),
		"index_lte": new(big.Int).SetUint64(to),
	})
	if to >= from {
		ranged.Limit(int(to - from + 1))
	}
	return ranged.Execute(ctx)
}

// Latest returns the most recently created matching membership
func (q *MembershipQuery) Latest(ctx context.Context) (*domain.Membership, error) {
	return q.Clone().OrderByCreation().First(ctx)
}

// CommitmentExists reports whether a commitment is already present on a
// network, the check run before issuing a new record
func (q *MembershipQuery) CommitmentExists(ctx context.Context, network domain.Network, commitment string) (bool, error) {
	return q.Clone().ByNetwork(network).ByCommitment(commitment).Exists(ctx)
}

// Stats executes the current query and folds the result into gas-usage
// statistics. The receiver is never mutated.
func (q *MembershipQuery) Stats(ctx context.Context) (*analytics.GasUsageStats, error) {
	members, err := q.Clone().Execute(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.MembershipGasUsage(members), nil
}

// Timeline executes the current query and buckets the result per UTC day,
// each bucket summing gas usage and counting distinct owners
func (q *MembershipQuery) Timeline(ctx context.Context) ([]analytics.DailyBucket, error) {
	members, err := q.Clone().Execute(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Daily(members,
		func(m domain.Membership) *big.Int { return m.CreatedAt.Unwrap() },
		func(m domain.Membership) *big.Int { return m.GasUsed.Unwrap() },
		func(m domain.Membership) string { return m.Owner },
	), nil
}
