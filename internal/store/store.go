package store

import (
	"context"

	"github.com/shieldpool/subgraph-go/internal/store/schema"
)

// RecordStore defines the interface for the local membership record cache
type RecordStore interface {
	// GetMembership retrieves a cached membership by its composite ID.
	// Returns nil without error when the record is not cached.
	GetMembership(ctx context.Context, id string) (*schema.MembershipRecord, error)
	// ListMembershipsByPool retrieves all cached memberships for a pool
	ListMembershipsByPool(ctx context.Context, poolID string) ([]schema.MembershipRecord, error)
	// UpsertMemberships inserts or refreshes a batch of membership records
	UpsertMemberships(ctx context.Context, records []schema.MembershipRecord) error
	// DeleteMembership removes a cached membership
	DeleteMembership(ctx context.Context, id string) error
	// GetSyncCursor retrieves the last synced block number for a network
	GetSyncCursor(ctx context.Context, network string) (uint64, error)
	// SetSyncCursor stores the last synced block number for a network
	SetSyncCursor(ctx context.Context, network string, blockNumber uint64) error
}
