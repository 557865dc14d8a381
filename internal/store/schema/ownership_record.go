package schema

import "time"

// OwnershipRecord represents the ownership_records table - append-only ownership history.
// Sequence 0 is the registration recipient; each transfer appends the next sequence.
type OwnershipRecord struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TokenID references the property
	TokenID uint64 `gorm:"column:token_id;not null;uniqueIndex:uq_ownership_records_token_sequence,priority:1"`
	// Sequence is the position of this owner in the history
	Sequence int `gorm:"column:sequence;not null;uniqueIndex:uq_ownership_records_token_sequence,priority:2"`
	// Owner is the identity that acquired the token
	Owner string `gorm:"column:owner;not null;type:text"`
	// AcquiredAt is the commit timestamp of the acquisition
	AcquiredAt time.Time `gorm:"column:acquired_at;not null;type:timestamptz"`
}

// TableName specifies the table name for the OwnershipRecord model
func (OwnershipRecord) TableName() string {
	return "ownership_records"
}
