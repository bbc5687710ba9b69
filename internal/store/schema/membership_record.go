package schema

import (
	"time"
)

// MembershipRecord is a locally cached pool membership fetched from the
// subgraph. Numeric fields are stored as decimal text so values never lose
// precision in the database.
type MembershipRecord struct {
	// ID is the composite membership identifier: network-contractAddress-poolIndex-memberIndex
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Network identifies the chain the membership lives on
	Network string `gorm:"column:network;not null;type:text;index:idx_membership_records_network_pool,priority:1"`
	// PoolID is the composite identifier of the owning pool
	PoolID string `gorm:"column:pool_id;not null;type:text;index:idx_membership_records_network_pool,priority:2"`
	// MemberIndex is the leaf index within the pool's merkle tree (decimal text)
	MemberIndex string `gorm:"column:member_index;not null;type:text"`
	// Owner is the normalized address that registered the membership
	Owner string `gorm:"column:owner;not null;type:text;index"`
	// Commitment is the field element committed into the tree
	Commitment string `gorm:"column:commitment;not null;type:text;index"`
	// Nullifier is set once the membership has been spent
	Nullifier *string `gorm:"column:nullifier;type:text"`
	Spent     bool    `gorm:"column:spent;not null;default:false"`
	// GasUsed and GasLimit are decimal text amounts
	GasUsed  string `gorm:"column:gas_used;not null;type:text"`
	GasLimit string `gorm:"column:gas_limit;not null;type:text"`
	// ChainCreatedAt is the on-chain registration time
	ChainCreatedAt time.Time `gorm:"column:chain_created_at;not null"`
	// CachedAt is when this row was last refreshed from the subgraph
	CachedAt time.Time `gorm:"column:cached_at;not null;default:now()"`
}

// TableName specifies the table name for GORM
func (MembershipRecord) TableName() string {
	return "membership_records"
}
