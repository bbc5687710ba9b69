// Package client is the entry point of the library: it binds a network
// identity to a subgraph transport and hands out one query builder per
// indexed entity type.
package client

import (
	"fmt"
	"time"

	"github.com/shieldpool/subgraph-go/internal/adapter"
	"github.com/shieldpool/subgraph-go/internal/domain"
	"github.com/shieldpool/subgraph-go/internal/graph"
	"github.com/shieldpool/subgraph-go/internal/query"
	"github.com/shieldpool/subgraph-go/internal/ratelimit"
)

// Client is a typed subgraph client bound to one network
type Client struct {
	network domain.Network
	exec    graph.Executor
}

// New creates a client over an injected transport
func New(network domain.Network, exec graph.Executor) (*Client, error) {
	if !domain.IsValidNetwork(network) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownNetwork, network)
	}
	return &Client{network: network, exec: exec}, nil
}

// NewHTTP creates a client speaking to a subgraph endpoint over HTTP
func NewHTTP(network domain.Network, endpoint string, timeout time.Duration) (*Client, error) {
	exec := graph.NewClient(adapter.NewHTTPClient(timeout), endpoint, adapter.NewJSON())
	return New(network, exec)
}

// NewHTTPThrottled creates an HTTP client whose queries are paced with a
// token-bucket limiter, for endpoints enforcing per-key request budgets
func NewHTTPThrottled(network domain.Network, endpoint string, timeout time.Duration, rps float64, burst int) (*Client, error) {
	exec := graph.NewClient(adapter.NewHTTPClient(timeout), endpoint, adapter.NewJSON())
	return New(network, ratelimit.NewThrottle(exec, rps, burst))
}

// Network returns the network this client is bound to
func (c *Client) Network() domain.Network {
	return c.network
}

// Contracts starts a contract query scoped to the client's network
func (c *Client) Contracts() *query.ContractQuery {
	return query.NewContractQuery(c.exec).ByNetwork(c.network)
}

// Pools starts a pool query scoped to the client's network
func (c *Client) Pools() *query.PoolQuery {
	return query.NewPoolQuery(c.exec).ByNetwork(c.network)
}

// Memberships starts a membership query scoped to the client's network
func (c *Client) Memberships() *query.MembershipQuery {
	return query.NewMembershipQuery(c.exec).ByNetwork(c.network)
}

// RootUpdates starts a root history query scoped to the client's network
func (c *Client) RootUpdates() *query.RootUpdateQuery {
	return query.NewRootUpdateQuery(c.exec).ByNetwork(c.network)
}

// Operations starts an operation query scoped to the client's network
func (c *Client) Operations() *query.OperationQuery {
	return query.NewOperationQuery(c.exec).ByNetwork(c.network)
}

// Withdrawals starts a withdrawal query scoped to the client's network
func (c *Client) Withdrawals() *query.WithdrawalQuery {
	return query.NewWithdrawalQuery(c.exec).ByNetwork(c.network)
}

// UsageRecords starts a usage record query scoped to the client's network
func (c *Client) UsageRecords() *query.UsageRecordQuery {
	return query.NewUsageRecordQuery(c.exec).ByNetwork(c.network)
}

// PoolDailyStats starts a per-pool daily stat query scoped to the client's network
func (c *Client) PoolDailyStats() *query.PoolDailyStatQuery {
	return query.NewPoolDailyStatQuery(c.exec).ByNetwork(c.network)
}

// GlobalDailyStats starts a network-wide daily stat query scoped to the client's network
func (c *Client) GlobalDailyStats() *query.GlobalDailyStatQuery {
	return query.NewGlobalDailyStatQuery(c.exec).ByNetwork(c.network)
}
