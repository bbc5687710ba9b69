package query

import (
	"context"

	"github.com/shieldpool/subgraph-go/internal/domain"
	"github.com/shieldpool/subgraph-go/internal/graph"
)

var contractSpec = Spec{
	Collection: "contracts",
	Operation:  "Contracts",
	OrderBy:    "createdAt",
	OrderDir:   "desc",
	DefaultFields: []string{
		"id",
		"network",
		"chainId",
		"address",
		"owner",
		"kind",
		"poolCount",
		"membershipCount",
		"totalGasUsed",
		"gasLimit",
		"spentNullifiers",
		"createdAt",
		"createdAtBlock",
	},
	Filters: map[string]Filter{
		"id":            {Var: "id", Type: "ID!", Cond: "id: $id"},
		"network":       {Var: "network", Type: "String!", Cond: "network: $network"},
		"address":       {Var: "address", Type: "String!", Cond: "address: $address"},
		"owner":         {Var: "owner", Type: "String!", Cond: "owner: $owner"},
		"kind":          {Var: "kind", Type: "String!", Cond: "kind: $kind"},
		"createdAt_gte": {Var: "createdAtGte", Type: "BigInt!", Cond: "createdAt_gte: $createdAtGte"},
		"createdAt_lte": {Var: "createdAtLte", Type: "BigInt!", Cond: "createdAt_lte: $createdAtLte"},
	},
	NumericFields: []string{"chainId", "poolCount", "membershipCount", "totalGasUsed", "gasLimit", "spentNullifiers", "createdAt", "createdAtBlock"},
}

// ContractQuery builds queries over deployed pool contracts
type ContractQuery struct {
	*Builder[domain.Contract]
}

// NewContractQuery creates a contract query builder
func NewContractQuery(exec graph.Executor) *ContractQuery {
	return &ContractQuery{New[domain.Contract](contractSpec, exec)}
}

// Clone returns an independent copy of the query
func (q *ContractQuery) Clone() *ContractQuery {
	return &ContractQuery{q.Builder.Clone()}
}

// ByNetwork filters to one network
func (q *ContractQuery) ByNetwork(network domain.Network) *ContractQuery {
	q.Where(map[string]any{"network": string(network)})
	return q
}

// ByOwner filters to contracts owned by one address
func (q *ContractQuery) ByOwner(owner string) *ContractQuery {
	q.Where(map[string]any{"owner": domain.NormalizeAddress(owner)})
	return q
}

// ByKind filters to one contract spending model
func (q *ContractQuery) ByKind(kind domain.ContractKind) *ContractQuery {
	q.Where(map[string]any{"kind": string(kind)})
	return q
}

// ByAddress looks up the single contract at an address, reconstructing the
// composite id locally. Returns nil when not deployed on the network.
func (q *ContractQuery) ByAddress(ctx context.Context, network domain.Network, address string) (*domain.Contract, error) {
	lookup := q.Clone()
	lookup.Where(map[string]any{"id": domain.ContractID(network, address)})
	return lookup.First(ctx)
}

// Deployed reports whether a contract exists at an address on a network
func (q *ContractQuery) Deployed(ctx context.Context, network domain.Network, address string) (bool, error) {
	lookup := q.Clone()
	lookup.Where(map[string]any{"id": domain.ContractID(network, address)})
	return lookup.Exists(ctx)
}

// Latest returns the most recently deployed matching contract
func (q *ContractQuery) Latest(ctx context.Context) (*domain.Contract, error) {
	return q.Clone().OrderBy("createdAt", "desc").First(ctx)
}
