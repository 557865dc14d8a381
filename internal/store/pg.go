package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"github.com/feral-file/property-registry/internal/domain"
	"github.com/feral-file/property-registry/internal/store/schema"
)

// snapshotTxOptions gives reads a single consistent view without taking row locks
var snapshotTxOptions = &sql.TxOptions{
	Isolation: sql.LevelRepeatableRead,
	ReadOnly:  true,
}

// pgStore implements Store using PostgreSQL via GORM.
//
// Lock order inside write transactions is fixed: registrar row, token counter,
// property row, event counter. The event counter is always taken last and held
// until commit, so journal IDs become visible in ID order.
type pgStore struct {
	db *gorm.DB
}

func hasDBResolver(db *gorm.DB) bool {
	return db != nil && db.Callback().Query().Get("gorm:db_resolver") != nil
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureReadReplica routes reads to the given replica through dbresolver
func ConfigureReadReplica(db *gorm.DB, replica gorm.Dialector) error {
	err := db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: []gorm.Dialector{replica},
		Policy:   dbresolver.RandomPolicy{},
	}))
	if err != nil {
		return fmt.Errorf("failed to register read replica: %w", err)
	}
	return nil
}

// ConfigureConnectionPool configures the pool of the underlying *sql.DB.
// Zero values fall back to the defaults of NormalizeConnectionPoolSettings.
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

// NormalizeConnectionPoolSettings applies defaults and keeps idle connections within the open limit.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns <= 0 {
		maxOpenConns = 20
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}
	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// =============================================================================
// Transaction helpers
// =============================================================================

// reader returns the handle used for reads; it targets the replica when one is registered
func (s *pgStore) reader() *gorm.DB {
	if hasDBResolver(s.db) {
		return s.db.Clauses(dbresolver.Read)
	}
	return s.db
}

// snapshot runs fn in a read-only REPEATABLE READ transaction on the reader.
// A replica can lag behind the primary, so a not-found result is retried on the primary.
func (s *pgStore) snapshot(ctx context.Context, fn func(tx *gorm.DB) error) error {
	err := s.reader().WithContext(ctx).Transaction(fn, snapshotTxOptions)
	if errors.Is(err, domain.ErrTokenNotFound) && hasDBResolver(s.db) {
		return s.db.Clauses(dbresolver.Write).WithContext(ctx).Transaction(fn, snapshotTxOptions)
	}
	return err
}

// lockCounter locks a counter row, creating it with initial if absent, and returns its value
func lockCounter(tx *gorm.DB, key string, initial uint64) (uint64, error) {
	seed := schema.KeyValueStore{Key: key, Value: strconv.FormatUint(initial, 10)}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return 0, fmt.Errorf("failed to seed counter %s: %w", key, err)
	}

	var kv schema.KeyValueStore
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("key = ?", key).
		First(&kv).Error
	if err != nil {
		return 0, fmt.Errorf("failed to lock counter %s: %w", key, err)
	}

	value, err := strconv.ParseUint(kv.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse counter %s: %w", key, err)
	}
	return value, nil
}

func setCounter(tx *gorm.DB, key string, value uint64) error {
	err := tx.Model(&schema.KeyValueStore{}).
		Where("key = ?", key).
		Update("value", strconv.FormatUint(value, 10)).Error
	if err != nil {
		return fmt.Errorf("failed to update counter %s: %w", key, err)
	}
	return nil
}

// lockRegistrar locks the registrar row and returns the stored identity, or empty if unset
func lockRegistrar(tx *gorm.DB) (domain.Identity, error) {
	var kv schema.KeyValueStore
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("key = ?", KEY_REGISTRAR).
		First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to lock registrar: %w", err)
	}
	return domain.Identity(kv.Value), nil
}

// appendEvent allocates the next journal ID and inserts the event
func appendEvent(tx *gorm.DB, eventType domain.EventType, tokenID *domain.TokenID, from, to domain.Identity, occurredAt time.Time) (*domain.Event, error) {
	id, err := lockCounter(tx, KEY_NEXT_EVENT_ID, 1)
	if err != nil {
		return nil, err
	}

	row := schema.RegistryEvent{
		ID:         id,
		EventType:  string(eventType),
		ToIdentity: string(to),
		OccurredAt: occurredAt,
	}
	if tokenID != nil {
		v := uint64(*tokenID)
		row.TokenID = &v
	}
	if !from.IsEmpty() {
		f := string(from)
		row.FromIdentity = &f
	}

	if err := tx.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to create registry event: %w", err)
	}
	if err := setCounter(tx, KEY_NEXT_EVENT_ID, id+1); err != nil {
		return nil, err
	}

	return toDomainEvent(row), nil
}

func loadHistory(tx *gorm.DB, tokenID domain.TokenID) ([]domain.Identity, error) {
	var records []schema.OwnershipRecord
	err := tx.Where("token_id = ?", uint64(tokenID)).
		Order("sequence ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get ownership records: %w", err)
	}

	history := make([]domain.Identity, len(records))
	for i, r := range records {
		history[i] = domain.Identity(r.Owner)
	}
	return history, nil
}

// =============================================================================
// Registrar
// =============================================================================

// GetRegistrar returns the registrar identity, or an empty identity if none is set
func (s *pgStore) GetRegistrar(ctx context.Context) (domain.Identity, error) {
	value, err := s.GetKeyValue(ctx, KEY_REGISTRAR)
	if err != nil {
		return "", err
	}
	return domain.Identity(value), nil
}

// InitializeRegistrar sets the registrar if none is set and returns the effective registrar
func (s *pgStore) InitializeRegistrar(ctx context.Context, registrar domain.Identity) (domain.Identity, error) {
	var effective domain.Identity
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !registrar.IsEmpty() {
			kv := schema.KeyValueStore{Key: KEY_REGISTRAR, Value: string(registrar)}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&kv).Error; err != nil {
				return fmt.Errorf("failed to initialize registrar: %w", err)
			}
		}

		current, err := lockRegistrar(tx)
		if err != nil {
			return err
		}
		effective = current
		return nil
	})
	if err != nil {
		return "", err
	}
	return effective, nil
}

// TransferRegistrar hands the registrar capability to a new identity
func (s *pgStore) TransferRegistrar(ctx context.Context, input TransferRegistrarInput) (*domain.Event, error) {
	var event *domain.Event
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := lockRegistrar(tx)
		if err != nil {
			return err
		}
		if current.IsEmpty() || current != input.Expected {
			return domain.ErrUnauthorized
		}

		err = tx.Model(&schema.KeyValueStore{}).
			Where("key = ?", KEY_REGISTRAR).
			Update("value", string(input.New)).Error
		if err != nil {
			return fmt.Errorf("failed to update registrar: %w", err)
		}

		event, err = appendEvent(tx, domain.EventTypeRegistrarTransferred, nil, current, input.New, input.Timestamp)
		return err
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// =============================================================================
// Properties
// =============================================================================

// CreateProperty allocates the next token ID and records the property with its first owner
func (s *pgStore) CreateProperty(ctx context.Context, input CreatePropertyInput) (*domain.Property, *domain.Event, error) {
	var property *domain.Property
	var event *domain.Event

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		registrar, err := lockRegistrar(tx)
		if err != nil {
			return err
		}
		if registrar.IsEmpty() || registrar != input.Registrar {
			return domain.ErrUnauthorized
		}

		next, err := lockCounter(tx, KEY_NEXT_TOKEN_ID, 0)
		if err != nil {
			return err
		}

		row := schema.Property{
			TokenID:        next,
			Description:    input.Info.Description,
			Location:       input.Info.Location,
			MediaHash:      input.Info.MediaHash,
			DocumentHash:   input.Info.DocumentHash,
			CurrentOwner:   string(input.Recipient),
			OwnershipCount: 1,
			RegisteredAt:   input.Timestamp,
			UpdatedAt:      input.Timestamp,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to create property: %w", err)
		}

		record := schema.OwnershipRecord{
			TokenID:    next,
			Sequence:   0,
			Owner:      string(input.Recipient),
			AcquiredAt: input.Timestamp,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create ownership record: %w", err)
		}

		if err := setCounter(tx, KEY_NEXT_TOKEN_ID, next+1); err != nil {
			return err
		}

		tokenID := domain.TokenID(next)
		event, err = appendEvent(tx, domain.EventTypePropertyRegistered, &tokenID, "", input.Recipient, input.Timestamp)
		if err != nil {
			return err
		}

		property = toDomainProperty(row, []domain.Identity{input.Recipient})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return property, event, nil
}

// TransferProperty moves a token and appends the recipient to its history
func (s *pgStore) TransferProperty(ctx context.Context, input TransferPropertyInput) (*domain.Property, *domain.Event, error) {
	var property *domain.Property
	var event *domain.Event

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row schema.Property
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("token_id = ?", uint64(input.TokenID)).
			First(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTokenNotFound
			}
			return fmt.Errorf("failed to lock property: %w", err)
		}

		if domain.Identity(row.CurrentOwner) != input.From {
			return domain.ErrOwnerMismatch
		}

		sequence := row.OwnershipCount
		err = tx.Model(&schema.Property{}).
			Where("token_id = ?", row.TokenID).
			Updates(map[string]interface{}{
				"current_owner":   string(input.To),
				"ownership_count": sequence + 1,
				"updated_at":      input.Timestamp,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update property owner: %w", err)
		}

		record := schema.OwnershipRecord{
			TokenID:    row.TokenID,
			Sequence:   sequence,
			Owner:      string(input.To),
			AcquiredAt: input.Timestamp,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create ownership record: %w", err)
		}

		event, err = appendEvent(tx, domain.EventTypePropertyTransferred, &input.TokenID, input.From, input.To, input.Timestamp)
		if err != nil {
			return err
		}

		history, err := loadHistory(tx, input.TokenID)
		if err != nil {
			return err
		}

		row.CurrentOwner = string(input.To)
		row.OwnershipCount = sequence + 1
		row.UpdatedAt = input.Timestamp
		property = toDomainProperty(row, history)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return property, event, nil
}

// GetProperty returns the full record of a token
func (s *pgStore) GetProperty(ctx context.Context, tokenID domain.TokenID) (*domain.Property, error) {
	var property *domain.Property
	err := s.snapshot(ctx, func(tx *gorm.DB) error {
		var row schema.Property
		err := tx.Where("token_id = ?", uint64(tokenID)).First(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTokenNotFound
			}
			return fmt.Errorf("failed to get property: %w", err)
		}

		history, err := loadHistory(tx, tokenID)
		if err != nil {
			return err
		}

		property = toDomainProperty(row, history)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return property, nil
}

// GetOwnershipHistory returns the owners of a token in acquisition order
func (s *pgStore) GetOwnershipHistory(ctx context.Context, tokenID domain.TokenID) ([]domain.Identity, error) {
	var history []domain.Identity
	err := s.snapshot(ctx, func(tx *gorm.DB) error {
		var err error
		history, err = loadHistory(tx, tokenID)
		if err != nil {
			return err
		}
		// Every registered token has at least its first owner
		if len(history) == 0 {
			return domain.ErrTokenNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}

// GetPropertiesByOwner returns the tokens currently held by owner
func (s *pgStore) GetPropertiesByOwner(ctx context.Context, owner domain.Identity, limit int, offset int) ([]domain.PropertyDetails, uint64, error) {
	limit, offset = NormalizePage(limit, offset)

	var rows []schema.Property
	var total int64

	err := s.snapshot(ctx, func(tx *gorm.DB) error {
		err := tx.Model(&schema.Property{}).
			Where("current_owner = ?", string(owner)).
			Count(&total).Error
		if err != nil {
			return fmt.Errorf("failed to count properties by owner: %w", err)
		}

		err = tx.Where("current_owner = ?", string(owner)).
			Order("token_id ASC").
			Limit(limit).
			Offset(offset).
			Find(&rows).Error
		if err != nil {
			return fmt.Errorf("failed to get properties by owner: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	details := make([]domain.PropertyDetails, len(rows))
	for i, row := range rows {
		details[i] = toDomainDetails(row)
	}
	return details, uint64(total), nil //nolint:gosec,G115
}

// CountProperties returns the number of registered tokens.
// Token IDs are dense, so the next token ID is the count.
func (s *pgStore) CountProperties(ctx context.Context) (uint64, error) {
	var kv schema.KeyValueStore
	err := s.reader().WithContext(ctx).Where("key = ?", KEY_NEXT_TOKEN_ID).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}

	count, err := strconv.ParseUint(kv.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse token counter: %w", err)
	}
	return count, nil
}

// =============================================================================
// Journal
// =============================================================================

// GetEvents returns journal events after filter.AfterID in ascending ID order
func (s *pgStore) GetEvents(ctx context.Context, filter EventQueryFilter) ([]*domain.Event, error) {
	query := s.reader().WithContext(ctx).Where("id > ?", filter.AfterID)
	if filter.TokenID != nil {
		query = query.Where("token_id = ?", uint64(*filter.TokenID))
	}

	var rows []schema.RegistryEvent
	err := query.Order("id ASC").Limit(filter.EffectiveLimit()).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get registry events: %w", err)
	}

	events := make([]*domain.Event, len(rows))
	for i, row := range rows {
		events[i] = toDomainEvent(row)
	}
	return events, nil
}

// =============================================================================
// Key-Value Store
// =============================================================================

// SetKeyValue upserts the value for key
func (s *pgStore) SetKeyValue(ctx context.Context, key string, value string) error {
	kv := schema.KeyValueStore{
		Key:   key,
		Value: value,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set key-value: %w", err)
	}

	return nil
}

// GetKeyValue returns the value for key, or an empty string if the key is absent
func (s *pgStore) GetKeyValue(ctx context.Context, key string) (string, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get key-value: %w", err)
	}

	return kv.Value, nil
}

// =============================================================================
// Webhooks
// =============================================================================

// GetActiveWebhookClientsByEventType returns active clients subscribed to eventType or to the wildcard
func (s *pgStore) GetActiveWebhookClientsByEventType(ctx context.Context, eventType string) ([]*schema.WebhookClient, error) {
	var clients []*schema.WebhookClient

	// JSONB containment: the filter array holds the event type or "*"
	err := s.db.WithContext(ctx).
		Where("is_active").
		Where("event_filters @> ?::jsonb OR event_filters @> ?::jsonb",
			fmt.Sprintf(`[%q]`, eventType),
			`["*"]`).
		Order("id ASC").
		Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get webhook clients by event type: %w", err)
	}

	return clients, nil
}

// GetWebhookClientByID returns a webhook client, or nil if it does not exist
func (s *pgStore) GetWebhookClientByID(ctx context.Context, clientID string) (*schema.WebhookClient, error) {
	var client schema.WebhookClient
	err := s.db.WithContext(ctx).Where("client_id = ?", clientID).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get webhook client: %w", err)
	}
	return &client, nil
}

// CreateWebhookClient creates a new webhook client
func (s *pgStore) CreateWebhookClient(ctx context.Context, input CreateWebhookClientInput) (*schema.WebhookClient, error) {
	now := time.Now()
	client := &schema.WebhookClient{
		ClientID:         input.ClientID,
		WebhookURL:       input.WebhookURL,
		WebhookSecret:    input.WebhookSecret,
		EventFilters:     input.EventFilters,
		IsActive:         input.IsActive,
		RetryMaxAttempts: input.RetryMaxAttempts,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.db.WithContext(ctx).Create(client).Error; err != nil {
		return nil, fmt.Errorf("failed to create webhook client: %w", err)
	}
	return client, nil
}

// CreateWebhookDelivery records a delivery attempt
func (s *pgStore) CreateWebhookDelivery(ctx context.Context, delivery *schema.WebhookDelivery) error {
	if err := s.db.WithContext(ctx).Create(delivery).Error; err != nil {
		return fmt.Errorf("failed to create webhook delivery: %w", err)
	}
	return nil
}

// UpdateWebhookDeliveryStatus updates the status and result of a delivery
func (s *pgStore) UpdateWebhookDeliveryStatus(ctx context.Context, deliveryID uint64, status schema.WebhookDeliveryStatus, attempts int, responseStatus *int, responseBody, errorMessage string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"delivery_status": status,
		"attempts":        attempts,
		"response_body":   responseBody,
		"last_attempt_at": now,
		"updated_at":      now,
	}
	if responseStatus != nil {
		updates["response_status"] = *responseStatus
	}
	if errorMessage != "" {
		updates["error_message"] = truncateErrorMessage(errorMessage)
	}

	err := s.db.WithContext(ctx).
		Model(&schema.WebhookDelivery{}).
		Where("id = ?", deliveryID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to update webhook delivery status: %w", err)
	}

	return nil
}

// =============================================================================
// Mapping
// =============================================================================

func truncateErrorMessage(msg string) string {
	const maxLen = 1024
	if len(msg) > maxLen {
		return msg[:maxLen]
	}
	return msg
}

func toDomainProperty(row schema.Property, history []domain.Identity) *domain.Property {
	return &domain.Property{
		TokenID: domain.TokenID(row.TokenID),
		Info: domain.PropertyInfo{
			Description:  row.Description,
			Location:     row.Location,
			MediaHash:    row.MediaHash,
			DocumentHash: row.DocumentHash,
		},
		CurrentOwner:     domain.Identity(row.CurrentOwner),
		OwnershipHistory: history,
		RegisteredAt:     row.RegisteredAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

func toDomainDetails(row schema.Property) domain.PropertyDetails {
	return domain.PropertyDetails{
		TokenID: domain.TokenID(row.TokenID),
		Info: domain.PropertyInfo{
			Description:  row.Description,
			Location:     row.Location,
			MediaHash:    row.MediaHash,
			DocumentHash: row.DocumentHash,
		},
		CurrentOwner: domain.Identity(row.CurrentOwner),
	}
}

func toDomainEvent(row schema.RegistryEvent) *domain.Event {
	event := &domain.Event{
		ID:         row.ID,
		Type:       domain.EventType(row.EventType),
		To:         domain.Identity(row.ToIdentity),
		OccurredAt: row.OccurredAt,
	}
	if row.TokenID != nil {
		tokenID := domain.TokenID(*row.TokenID)
		event.TokenID = &tokenID
	}
	if row.FromIdentity != nil {
		event.From = domain.Identity(*row.FromIdentity)
	}
	return event
}
