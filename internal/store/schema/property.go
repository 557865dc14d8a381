package schema

import "time"

// Property represents the properties table - one row per registered token
type Property struct {
	// TokenID is the registry-assigned identifier; allocated densely from zero
	TokenID uint64 `gorm:"column:token_id;primaryKey;autoIncrement:false"`
	// Description is free-form text describing the property
	Description string `gorm:"column:description;not null;type:text"`
	// Location is free-form text locating the property
	Location string `gorm:"column:location;not null;type:text"`
	// MediaHash is an opaque reference to media content
	MediaHash string `gorm:"column:media_hash;not null;type:text"`
	// DocumentHash is an opaque reference to legal documents
	DocumentHash string `gorm:"column:document_hash;not null;type:text"`
	// CurrentOwner is the identity currently holding the token
	CurrentOwner string `gorm:"column:current_owner;not null;type:text;index:idx_properties_current_owner"`
	// OwnershipCount is the number of ownership_records rows for this token
	OwnershipCount int `gorm:"column:ownership_count;not null;default:1"`
	// RegisteredAt is the timestamp of the registration
	RegisteredAt time.Time `gorm:"column:registered_at;not null;type:timestamptz"`
	// UpdatedAt is the timestamp of the last transfer, or the registration
	UpdatedAt time.Time `gorm:"column:updated_at;not null;type:timestamptz"`
}

// TableName specifies the table name for the Property model
func (Property) TableName() string {
	return "properties"
}
