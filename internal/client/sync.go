package client

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shieldpool/subgraph-go/internal/domain"
	"github.com/shieldpool/subgraph-go/internal/logger"
	"github.com/shieldpool/subgraph-go/internal/store"
	"github.com/shieldpool/subgraph-go/internal/store/schema"
	"github.com/shieldpool/subgraph-go/internal/types"
)

// syncPageSize is the number of memberships fetched per subgraph round trip
const syncPageSize = 500

// CacheSync mirrors pool memberships from the subgraph into the local
// record store so lookups and proof preparation work offline.
type CacheSync struct {
	client  *Client
	records store.RecordStore
}

// NewCacheSync creates a sync over a client and a record store
func NewCacheSync(c *Client, records store.RecordStore) *CacheSync {
	return &CacheSync{client: c, records: records}
}

// SyncPool pages through all memberships of a pool in leaf order and
// upserts them into the cache. Returns the number of records written.
func (s *CacheSync) SyncPool(ctx context.Context, poolID string) (int, error) {
	var (
		total     int
		skip      int
		lastBlock uint64
	)

	for {
		page, err := s.client.Memberships().
			ByPool(poolID).
			OrderByIndex().
			Limit(syncPageSize).
			Skip(skip).
			Execute(ctx)
		if err != nil {
			return total, err
		}
		if len(page) == 0 {
			break
		}

		records := make([]schema.MembershipRecord, 0, len(page))
		for _, m := range page {
			records = append(records, recordFromMembership(m))
			if b := m.CreatedAtBlock.Unwrap(); b.IsUint64() && b.Uint64() > lastBlock {
				lastBlock = b.Uint64()
			}
		}

		if err := s.records.UpsertMemberships(ctx, records); err != nil {
			return total, err
		}

		total += len(records)
		if len(page) < syncPageSize {
			break
		}
		skip += syncPageSize
	}

	if lastBlock > 0 {
		if err := s.records.SetSyncCursor(ctx, string(s.client.Network()), lastBlock); err != nil {
			return total, err
		}
	}

	logger.Debug("pool cache synced",
		zap.String("pool", poolID),
		zap.String("network", string(s.client.Network())),
		zap.Int("records", total),
		zap.Uint64("last_block", lastBlock))

	return total, nil
}

// CachedMemberships returns the locally cached leaves of a pool in leaf order
func (s *CacheSync) CachedMemberships(ctx context.Context, poolID string) ([]schema.MembershipRecord, error) {
	return s.records.ListMembershipsByPool(ctx, poolID)
}

// LastSyncedBlock returns the highest block number the cache has seen for
// the client's network, 0 when nothing has been synced yet
func (s *CacheSync) LastSyncedBlock(ctx context.Context) (uint64, error) {
	return s.records.GetSyncCursor(ctx, string(s.client.Network()))
}

func recordFromMembership(m domain.Membership) schema.MembershipRecord {
	record := schema.MembershipRecord{
		ID:          m.ID,
		Network:     string(m.Network),
		MemberIndex: bigIntText(m.Index),
		Owner:       m.Owner,
		Commitment:  m.Commitment,
		GasUsed:     bigIntText(m.GasUsed),
		GasLimit:    bigIntText(m.GasLimit),
	}
	if m.Pool != nil {
		record.PoolID = m.Pool.ID
	}
	if m.Spent != nil {
		record.Spent = *m.Spent
	}
	if m.Nullifier != "" {
		nullifier := m.Nullifier
		record.Nullifier = &nullifier
	}
	if m.CreatedAt != nil && m.CreatedAt.IsInt64() {
		record.ChainCreatedAt = time.Unix(m.CreatedAt.Int64(), 0).UTC()
	}
	return record
}

func bigIntText(b *types.BigInt) string {
	if b == nil {
		return "0"
	}
	return b.String()
}
