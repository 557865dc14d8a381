package schema

import "time"

// RegistryEvent represents the registry_events table - the durable journal of registry mutations
type RegistryEvent struct {
	// ID is the journal sequence; allocated densely from 1 in commit order
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement:false"`
	// EventType is property.registered, property.transferred or registrar.transferred
	EventType string `gorm:"column:event_type;not null;type:varchar(50)"`
	// TokenID is the affected token; NULL for registrar events
	TokenID *uint64 `gorm:"column:token_id;index:idx_registry_events_token_id"`
	// FromIdentity is the previous holder; NULL for registrations
	FromIdentity *string `gorm:"column:from_identity;type:text"`
	// ToIdentity is the new holder
	ToIdentity string `gorm:"column:to_identity;not null;type:text"`
	// OccurredAt is the commit timestamp of the mutation
	OccurredAt time.Time `gorm:"column:occurred_at;not null;type:timestamptz"`
}

// TableName specifies the table name for the RegistryEvent model
func (RegistryEvent) TableName() string {
	return "registry_events"
}
