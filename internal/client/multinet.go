package client

import (
	"context"
	"math/big"
	"time"

	"github.com/alitto/pond/v2"

	"github.com/shieldpool/subgraph-go/internal/analytics"
	"github.com/shieldpool/subgraph-go/internal/domain"
)

// MultiClient fans queries out across every configured network. Each
// underlying client is independent; only the worker pool is shared.
type MultiClient struct {
	clients map[domain.Network]*Client
	pool    pond.ResultPool[*networkResult]
}

type networkResult struct {
	network domain.Network
	stats   *analytics.GasUsageStats
	volume  *big.Int
}

// NewMulti creates a multi-network client from per-network endpoints
func NewMulti(endpoints map[domain.Network]string, timeout time.Duration) (*MultiClient, error) {
	clients := make(map[domain.Network]*Client, len(endpoints))
	for network, endpoint := range endpoints {
		c, err := NewHTTP(network, endpoint, timeout)
		if err != nil {
			return nil, err
		}
		clients[network] = c
	}
	return &MultiClient{
		clients: clients,
		pool:    pond.NewResultPool[*networkResult](len(clients)),
	}, nil
}

// Networks returns the configured networks
func (m *MultiClient) Networks() []domain.Network {
	networks := make([]domain.Network, 0, len(m.clients))
	for n := range m.clients {
		networks = append(networks, n)
	}
	return networks
}

// Network returns the client for one network, or nil when not configured
func (m *MultiClient) Network(n domain.Network) *Client {
	return m.clients[n]
}

// MembershipStats computes gas-usage statistics per network concurrently.
// The first failing network aborts the whole call.
func (m *MultiClient) MembershipStats(ctx context.Context) (map[domain.Network]*analytics.GasUsageStats, error) {
	tasks := make([]pond.Result[*networkResult], 0, len(m.clients))
	for network, c := range m.clients {
		network, c := network, c
		tasks = append(tasks, m.pool.SubmitErr(func() (*networkResult, error) {
			stats, err := c.Memberships().Stats(ctx)
			if err != nil {
				return nil, err
			}
			return &networkResult{network: network, stats: stats}, nil
		}))
	}

	out := make(map[domain.Network]*analytics.GasUsageStats, len(tasks))
	for _, task := range tasks {
		res, err := task.Wait()
		if err != nil {
			return nil, err
		}
		out[res.network] = res.stats
	}
	return out, nil
}

// TotalDeposited sums pool liquidity across every network concurrently
func (m *MultiClient) TotalDeposited(ctx context.Context) (*big.Int, error) {
	tasks := make([]pond.Result[*networkResult], 0, len(m.clients))
	for network, c := range m.clients {
		network, c := network, c
		tasks = append(tasks, m.pool.SubmitErr(func() (*networkResult, error) {
			volume, err := c.Pools().TotalDeposited(ctx)
			if err != nil {
				return nil, err
			}
			return &networkResult{network: network, volume: volume}, nil
		}))
	}

	total := new(big.Int)
	for _, task := range tasks {
		res, err := task.Wait()
		if err != nil {
			return nil, err
		}
		total.Add(total, res.volume)
	}
	return total, nil
}

// Close stops the worker pool and waits for in-flight tasks
func (m *MultiClient) Close() {
	m.pool.StopAndWait()
}
