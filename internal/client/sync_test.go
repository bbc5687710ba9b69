package client

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shieldpool/subgraph-go/internal/domain"
	"github.com/shieldpool/subgraph-go/internal/logger"
	"github.com/shieldpool/subgraph-go/internal/mocks"
	"github.com/shieldpool/subgraph-go/internal/store/schema"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	m.Run()
}

// fakeRecordStore is an in-memory RecordStore for sync tests
type fakeRecordStore struct {
	records map[string]schema.MembershipRecord
	cursors map[string]uint64
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{
		records: make(map[string]schema.MembershipRecord),
		cursors: make(map[string]uint64),
	}
}

func (s *fakeRecordStore) GetMembership(_ context.Context, id string) (*schema.MembershipRecord, error) {
	if r, ok := s.records[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (s *fakeRecordStore) ListMembershipsByPool(_ context.Context, poolID string) ([]schema.MembershipRecord, error) {
	var out []schema.MembershipRecord
	for _, r := range s.records {
		if r.PoolID == poolID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeRecordStore) UpsertMemberships(_ context.Context, records []schema.MembershipRecord) error {
	for _, r := range records {
		s.records[r.ID] = r
	}
	return nil
}

func (s *fakeRecordStore) DeleteMembership(_ context.Context, id string) error {
	delete(s.records, id)
	return nil
}

func (s *fakeRecordStore) GetSyncCursor(_ context.Context, network string) (uint64, error) {
	return s.cursors[network], nil
}

func (s *fakeRecordStore) SetSyncCursor(_ context.Context, network string, blockNumber uint64) error {
	s.cursors[network] = blockNumber
	return nil
}

func membershipsPage(t *testing.T, memberships []map[string]any) map[string]json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(memberships)
	require.NoError(t, err)
	return map[string]json.RawMessage{"memberships": raw}
}

func TestSyncPool(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	exec := mocks.NewMockExecutor(ctrl)
	c, err := New(domain.NetworkSepolia, exec)
	require.NoError(t, err)

	spent := true
	page := membershipsPage(t, []map[string]any{
		{
			"id":             "sepolia-0xabc-0-0",
			"network":        "sepolia",
			"index":          "0",
			"commitment":     "111",
			"owner":          "0xaaa",
			"nullifier":      "999",
			"gasUsed":        "100",
			"gasLimit":       "1000",
			"spent":          spent,
			"createdAt":      "1767225600",
			"createdAtBlock": "500",
			"txHash":         "0xt1",
			"pool":           map[string]any{"id": "sepolia-0xabc-0", "index": "0", "asset": "ETH", "network": "sepolia"},
		},
		{
			"id":             "sepolia-0xabc-0-1",
			"network":        "sepolia",
			"index":          "1",
			"commitment":     "222",
			"owner":          "0xbbb",
			"gasUsed":        "0",
			"gasLimit":       "1000",
			"spent":          false,
			"createdAt":      "1767312000",
			"createdAtBlock": "620",
			"txHash":         "0xt2",
			"pool":           map[string]any{"id": "sepolia-0xabc-0", "index": "0", "asset": "ETH", "network": "sepolia"},
		},
	})

	exec.EXPECT().
		Execute(gomock.Any(), "Memberships", gomock.Any(), gomock.Any()).
		Return(page, nil)

	records := newFakeRecordStore()
	sync := NewCacheSync(c, records)

	written, err := sync.SyncPool(context.Background(), "sepolia-0xabc-0")
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	cached, err := sync.CachedMemberships(context.Background(), "sepolia-0xabc-0")
	require.NoError(t, err)
	assert.Len(t, cached, 2)

	first, err := records.GetMembership(context.Background(), "sepolia-0xabc-0-0")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "100", first.GasUsed)
	assert.True(t, first.Spent)
	require.NotNil(t, first.Nullifier)
	assert.Equal(t, "999", *first.Nullifier)
	assert.Equal(t, "sepolia-0xabc-0", first.PoolID)

	second, err := records.GetMembership(context.Background(), "sepolia-0xabc-0-1")
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.False(t, second.Spent)
	assert.Nil(t, second.Nullifier)

	// Cursor advances to the highest block seen
	last, err := sync.LastSyncedBlock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(620), last)
}

func TestSyncPoolEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	exec := mocks.NewMockExecutor(ctrl)
	c, err := New(domain.NetworkSepolia, exec)
	require.NoError(t, err)

	exec.EXPECT().
		Execute(gomock.Any(), "Memberships", gomock.Any(), gomock.Any()).
		Return(membershipsPage(t, []map[string]any{}), nil)

	records := newFakeRecordStore()
	sync := NewCacheSync(c, records)

	written, err := sync.SyncPool(context.Background(), "sepolia-0xabc-0")
	require.NoError(t, err)
	assert.Zero(t, written)

	last, err := sync.LastSyncedBlock(context.Background())
	require.NoError(t, err)
	assert.Zero(t, last)
}
