package store

import (
	"context"

	"github.com/shieldpool/subgraph-go/internal/store/schema"
)

// noopStore is used when no database is configured. Reads return empty
// results and writes are discarded, so callers never have to branch on
// whether a cache is present.
type noopStore struct{}

// NewNoopStore creates a record store backed by nothing
func NewNoopStore() RecordStore {
	return &noopStore{}
}

func (s *noopStore) GetMembership(_ context.Context, _ string) (*schema.MembershipRecord, error) {
	return nil, nil
}

func (s *noopStore) ListMembershipsByPool(_ context.Context, _ string) ([]schema.MembershipRecord, error) {
	return []schema.MembershipRecord{}, nil
}

func (s *noopStore) UpsertMemberships(_ context.Context, _ []schema.MembershipRecord) error {
	return nil
}

func (s *noopStore) DeleteMembership(_ context.Context, _ string) error {
	return nil
}

func (s *noopStore) GetSyncCursor(_ context.Context, _ string) (uint64, error) {
	return 0, nil
}

func (s *noopStore) SetSyncCursor(_ context.Context, _ string, _ uint64) error {
	return nil
}
