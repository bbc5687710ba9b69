package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shieldpool/subgraph-go/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL record store instance
func NewPGStore(db *gorm.DB) RecordStore {
	return &pgStore{db: db}
}

// AutoMigrate creates or updates the cache tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.MembershipRecord{},
		&schema.KeyValueStore{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. It accesses the underlying *sql.DB and sets the pool
// configuration. Zero settings fall back to defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings
// into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// upsertBatchSize keeps batched upserts well under PostgreSQL's 65535
// bind-parameter limit for the membership_records column count.
const upsertBatchSize = 4000

// GetMembership retrieves a cached membership by its composite ID
func (s *pgStore) GetMembership(ctx context.Context, id string) (*schema.MembershipRecord, error) {
	var record schema.MembershipRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get membership record: %w", err)
	}

	return &record, nil
}

// ListMembershipsByPool retrieves all cached memberships for a pool ordered
// by member index
func (s *pgStore) ListMembershipsByPool(ctx context.Context, poolID string) ([]schema.MembershipRecord, error) {
	var records []schema.MembershipRecord
	err := s.db.WithContext(ctx).
		Where("pool_id = ?", poolID).
		Order("member_index ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list membership records: %w", err)
	}

	return records, nil
}

// UpsertMemberships inserts new records and refreshes existing ones by primary key
func (s *pgStore) UpsertMemberships(ctx context.Context, records []schema.MembershipRecord) error {
	if len(records) == 0 {
		return nil
	}

	for i := range records {
		if records[i].CachedAt.IsZero() {
			records[i].CachedAt = time.Now().UTC()
		}
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"nullifier", "spent", "gas_used", "cached_at",
		}),
	}).CreateInBatches(records, upsertBatchSize).Error
	if err != nil {
		return fmt.Errorf("failed to upsert membership records: %w", err)
	}

	return nil
}

// DeleteMembership removes a cached membership. Deleting a record that is
// not cached is not an error.
func (s *pgStore) DeleteMembership(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&schema.MembershipRecord{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete membership record: %w", err)
	}

	return nil
}

// GetSyncCursor retrieves the last synced block number for a network
func (s *pgStore) GetSyncCursor(ctx context.Context, network string) (uint64, error) {
	key := fmt.Sprintf("sync_cursor:%s", network)

	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil // Return 0 if no cursor exists
		}
		return 0, fmt.Errorf("failed to get sync cursor: %w", err)
	}

	blockNumber, err := strconv.ParseUint(kv.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse sync cursor: %w", err)
	}

	return blockNumber, nil
}

// SetSyncCursor stores the last synced block number for a network
func (s *pgStore) SetSyncCursor(ctx context.Context, network string, blockNumber uint64) error {
	key := fmt.Sprintf("sync_cursor:%s", network)
	value := strconv.FormatUint(blockNumber, 10)

	kv := schema.KeyValueStore{
		Key:   key,
		Value: value,
	}

	err := s.db.WithContext(ctx).Save(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set sync cursor: %w", err)
	}

	return nil
}
