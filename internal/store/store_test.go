package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/feral-file/property-registry/internal/domain"
	"github.com/feral-file/property-registry/internal/store/schema"
)

const (
	testRegistrar = domain.Identity("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	testAlice     = domain.Identity("alice")
	testBob       = domain.Identity("bob")
	testCarol     = domain.Identity("carol")
)

// testTime is truncated to microseconds so that it survives a timestamptz round trip
var testTime = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

// =============================================================================
// Test Data Builders
// =============================================================================

func buildTestInfo(n int) domain.PropertyInfo {
	return domain.PropertyInfo{
		Description:  "Two bedroom apartment",
		Location:     fmt.Sprintf("12 Harbour Street, unit %d", n),
		MediaHash:    "QmMediaHash",
		DocumentHash: "QmDocumentHash",
	}
}

func initRegistrar(t *testing.T, store Store) {
	t.Helper()
	registrar, err := store.InitializeRegistrar(context.Background(), testRegistrar)
	require.NoError(t, err)
	require.Equal(t, testRegistrar, registrar)
}

func registerTestProperty(t *testing.T, store Store, recipient domain.Identity) *domain.Property {
	t.Helper()
	property, _, err := store.CreateProperty(context.Background(), CreatePropertyInput{
		Registrar: testRegistrar,
		Recipient: recipient,
		Info:      buildTestInfo(1),
		Timestamp: testTime,
	})
	require.NoError(t, err)
	return property
}

// =============================================================================
// Test: Registrar
// =============================================================================

func testRegistrarSuite(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("no registrar before initialization", func(t *testing.T) {
		registrar, err := store.GetRegistrar(ctx)
		require.NoError(t, err)
		assert.True(t, registrar.IsEmpty())
	})

	t.Run("initialize sets the registrar once", func(t *testing.T) {
		registrar, err := store.InitializeRegistrar(ctx, testRegistrar)
		require.NoError(t, err)
		assert.Equal(t, testRegistrar, registrar)

		registrar, err = store.InitializeRegistrar(ctx, testAlice)
		require.NoError(t, err)
		assert.Equal(t, testRegistrar, registrar, "second initialization must not replace the registrar")

		registrar, err = store.GetRegistrar(ctx)
		require.NoError(t, err)
		assert.Equal(t, testRegistrar, registrar)
	})

	t.Run("transfer with stale expected registrar is rejected", func(t *testing.T) {
		event, err := store.TransferRegistrar(ctx, TransferRegistrarInput{
			Expected:  testAlice,
			New:       testBob,
			Timestamp: testTime,
		})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Nil(t, event)

		registrar, err := store.GetRegistrar(ctx)
		require.NoError(t, err)
		assert.Equal(t, testRegistrar, registrar)
	})

	t.Run("transfer hands over the capability and journals it", func(t *testing.T) {
		event, err := store.TransferRegistrar(ctx, TransferRegistrarInput{
			Expected:  testRegistrar,
			New:       testBob,
			Timestamp: testTime,
		})
		require.NoError(t, err)
		require.NotNil(t, event)
		assert.Equal(t, uint64(1), event.ID)
		assert.Equal(t, domain.EventTypeRegistrarTransferred, event.Type)
		assert.Nil(t, event.TokenID)
		assert.Equal(t, testRegistrar, event.From)
		assert.Equal(t, testBob, event.To)

		registrar, err := store.GetRegistrar(ctx)
		require.NoError(t, err)
		assert.Equal(t, testBob, registrar)

		// The old registrar can no longer register
		_, _, err = store.CreateProperty(ctx, CreatePropertyInput{
			Registrar: testRegistrar,
			Recipient: testAlice,
			Info:      buildTestInfo(1),
			Timestamp: testTime,
		})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

// =============================================================================
// Test: Create Property
// =============================================================================

func testCreateProperty(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("rejected without a registrar", func(t *testing.T) {
		property, event, err := store.CreateProperty(ctx, CreatePropertyInput{
			Registrar: testRegistrar,
			Recipient: testAlice,
			Info:      buildTestInfo(1),
			Timestamp: testTime,
		})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Nil(t, property)
		assert.Nil(t, event)

		count, err := store.CountProperties(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), count)
	})

	t.Run("allocates dense identifiers from zero", func(t *testing.T) {
		initRegistrar(t, store)

		for i := 0; i < 3; i++ {
			info := buildTestInfo(i)
			property, event, err := store.CreateProperty(ctx, CreatePropertyInput{
				Registrar: testRegistrar,
				Recipient: testAlice,
				Info:      info,
				Timestamp: testTime,
			})
			require.NoError(t, err)
			assert.Equal(t, domain.TokenID(i), property.TokenID) //nolint:gosec,G115
			assert.Equal(t, info, property.Info)
			assert.Equal(t, testAlice, property.CurrentOwner)
			assert.Equal(t, []domain.Identity{testAlice}, property.OwnershipHistory)
			assert.WithinDuration(t, testTime, property.RegisteredAt, 0)

			require.NotNil(t, event)
			assert.Equal(t, uint64(i+1), event.ID) //nolint:gosec,G115
			assert.Equal(t, domain.EventTypePropertyRegistered, event.Type)
			require.NotNil(t, event.TokenID)
			assert.Equal(t, property.TokenID, *event.TokenID)
			assert.True(t, event.From.IsEmpty())
			assert.Equal(t, testAlice, event.To)
		}

		count, err := store.CountProperties(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), count)
	})

	t.Run("wrong registrar leaves the counter untouched", func(t *testing.T) {
		_, _, err := store.CreateProperty(ctx, CreatePropertyInput{
			Registrar: testBob,
			Recipient: testBob,
			Info:      buildTestInfo(9),
			Timestamp: testTime,
		})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)

		count, err := store.CountProperties(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), count)

		property := registerTestProperty(t, store, testBob)
		assert.Equal(t, domain.TokenID(3), property.TokenID)
	})

	t.Run("stored record matches the returned one", func(t *testing.T) {
		property, err := store.GetProperty(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, domain.TokenID(3), property.TokenID)
		assert.Equal(t, buildTestInfo(1), property.Info)
		assert.Equal(t, testBob, property.CurrentOwner)
		assert.Equal(t, []domain.Identity{testBob}, property.OwnershipHistory)
	})
}

// =============================================================================
// Test: Transfer Property
// =============================================================================

func testTransferProperty(t *testing.T, store Store) {
	ctx := context.Background()
	initRegistrar(t, store)
	property := registerTestProperty(t, store, testAlice)

	t.Run("unknown token", func(t *testing.T) {
		_, _, err := store.TransferProperty(ctx, TransferPropertyInput{
			TokenID:   99,
			From:      testAlice,
			To:        testBob,
			Timestamp: testTime,
		})
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)
	})

	t.Run("from is not the current owner", func(t *testing.T) {
		_, _, err := store.TransferProperty(ctx, TransferPropertyInput{
			TokenID:   property.TokenID,
			From:      testBob,
			To:        testCarol,
			Timestamp: testTime,
		})
		assert.ErrorIs(t, err, domain.ErrOwnerMismatch)

		history, err := store.GetOwnershipHistory(ctx, property.TokenID)
		require.NoError(t, err)
		assert.Equal(t, []domain.Identity{testAlice}, history)
	})

	t.Run("successful transfer appends to the history", func(t *testing.T) {
		later := testTime.Add(time.Hour)
		updated, event, err := store.TransferProperty(ctx, TransferPropertyInput{
			TokenID:   property.TokenID,
			From:      testAlice,
			To:        testBob,
			Timestamp: later,
		})
		require.NoError(t, err)
		assert.Equal(t, testBob, updated.CurrentOwner)
		assert.Equal(t, []domain.Identity{testAlice, testBob}, updated.OwnershipHistory)
		assert.WithinDuration(t, later, updated.UpdatedAt, 0)
		assert.WithinDuration(t, testTime, updated.RegisteredAt, 0)

		require.NotNil(t, event)
		assert.Equal(t, uint64(2), event.ID)
		assert.Equal(t, domain.EventTypePropertyTransferred, event.Type)
		assert.Equal(t, testAlice, event.From)
		assert.Equal(t, testBob, event.To)
	})

	t.Run("repeating the same transfer fails", func(t *testing.T) {
		_, _, err := store.TransferProperty(ctx, TransferPropertyInput{
			TokenID:   property.TokenID,
			From:      testAlice,
			To:        testBob,
			Timestamp: testTime,
		})
		assert.ErrorIs(t, err, domain.ErrOwnerMismatch)
	})

	t.Run("history survives a chain of transfers", func(t *testing.T) {
		_, _, err := store.TransferProperty(ctx, TransferPropertyInput{
			TokenID: property.TokenID, From: testBob, To: testCarol, Timestamp: testTime,
		})
		require.NoError(t, err)
		_, _, err = store.TransferProperty(ctx, TransferPropertyInput{
			TokenID: property.TokenID, From: testCarol, To: testAlice, Timestamp: testTime,
		})
		require.NoError(t, err)

		stored, err := store.GetProperty(ctx, property.TokenID)
		require.NoError(t, err)
		assert.Equal(t, testAlice, stored.CurrentOwner)
		assert.Equal(t, []domain.Identity{testAlice, testBob, testCarol, testAlice}, stored.OwnershipHistory)
	})
}

// =============================================================================
// Test: Reads
// =============================================================================

func testGetProperty(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("unknown token", func(t *testing.T) {
		_, err := store.GetProperty(ctx, 0)
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)

		_, err = store.GetOwnershipHistory(ctx, 0)
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)
	})

	t.Run("returned records are copies", func(t *testing.T) {
		initRegistrar(t, store)
		property := registerTestProperty(t, store, testAlice)

		fetched, err := store.GetProperty(ctx, property.TokenID)
		require.NoError(t, err)
		fetched.OwnershipHistory[0] = testCarol
		fetched.CurrentOwner = testCarol

		again, err := store.GetProperty(ctx, property.TokenID)
		require.NoError(t, err)
		assert.Equal(t, testAlice, again.CurrentOwner)
		assert.Equal(t, []domain.Identity{testAlice}, again.OwnershipHistory)
	})
}

func testGetPropertiesByOwner(t *testing.T, store Store) {
	ctx := context.Background()
	initRegistrar(t, store)

	for i := 0; i < 5; i++ {
		owner := testAlice
		if i%2 == 1 {
			owner = testBob
		}
		registerTestProperty(t, store, owner)
	}
	// Token 0 moves from alice to bob
	_, _, err := store.TransferProperty(ctx, TransferPropertyInput{
		TokenID: 0, From: testAlice, To: testBob, Timestamp: testTime,
	})
	require.NoError(t, err)

	t.Run("lists current holdings ordered by token id", func(t *testing.T) {
		details, total, err := store.GetPropertiesByOwner(ctx, testBob, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), total)
		require.Len(t, details, 3)
		assert.Equal(t, domain.TokenID(0), details[0].TokenID)
		assert.Equal(t, domain.TokenID(1), details[1].TokenID)
		assert.Equal(t, domain.TokenID(3), details[2].TokenID)
		for _, d := range details {
			assert.Equal(t, testBob, d.CurrentOwner)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		details, total, err := store.GetPropertiesByOwner(ctx, testBob, 2, 1)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), total)
		require.Len(t, details, 2)
		assert.Equal(t, domain.TokenID(1), details[0].TokenID)
		assert.Equal(t, domain.TokenID(3), details[1].TokenID)
	})

	t.Run("zero limit and negative offset read the first full page", func(t *testing.T) {
		details, total, err := store.GetPropertiesByOwner(ctx, testBob, 0, -5)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), total)
		require.Len(t, details, 3)
		assert.Equal(t, domain.TokenID(0), details[0].TokenID)
	})

	t.Run("limit above the cap is clamped", func(t *testing.T) {
		limit, offset := NormalizePage(MAX_OWNER_QUERY_LIMIT+1, 2)
		assert.Equal(t, MAX_OWNER_QUERY_LIMIT, limit)
		assert.Equal(t, 2, offset)
	})

	t.Run("owner without tokens", func(t *testing.T) {
		details, total, err := store.GetPropertiesByOwner(ctx, testCarol, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), total)
		assert.Empty(t, details)
	})
}

// =============================================================================
// Test: Journal
// =============================================================================

func testGetEvents(t *testing.T, store Store) {
	ctx := context.Background()
	initRegistrar(t, store)

	first := registerTestProperty(t, store, testAlice)
	second := registerTestProperty(t, store, testBob)
	_, _, err := store.TransferProperty(ctx, TransferPropertyInput{
		TokenID: first.TokenID, From: testAlice, To: testCarol, Timestamp: testTime,
	})
	require.NoError(t, err)
	_, err = store.TransferRegistrar(ctx, TransferRegistrarInput{
		Expected: testRegistrar, New: testCarol, Timestamp: testTime,
	})
	require.NoError(t, err)

	t.Run("journal is dense and ordered", func(t *testing.T) {
		events, err := store.GetEvents(ctx, EventQueryFilter{})
		require.NoError(t, err)
		require.Len(t, events, 4)
		for i, e := range events {
			assert.Equal(t, uint64(i+1), e.ID) //nolint:gosec,G115
		}
		assert.Equal(t, domain.EventTypePropertyRegistered, events[0].Type)
		assert.Equal(t, domain.EventTypePropertyRegistered, events[1].Type)
		assert.Equal(t, domain.EventTypePropertyTransferred, events[2].Type)
		assert.Equal(t, domain.EventTypeRegistrarTransferred, events[3].Type)
	})

	t.Run("after id", func(t *testing.T) {
		events, err := store.GetEvents(ctx, EventQueryFilter{AfterID: 2})
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, uint64(3), events[0].ID)
		assert.Equal(t, uint64(4), events[1].ID)

		events, err = store.GetEvents(ctx, EventQueryFilter{AfterID: 4})
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("token filter", func(t *testing.T) {
		tokenID := first.TokenID
		events, err := store.GetEvents(ctx, EventQueryFilter{TokenID: &tokenID})
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, uint64(1), events[0].ID)
		assert.Equal(t, uint64(3), events[1].ID)

		tokenID = second.TokenID
		events, err = store.GetEvents(ctx, EventQueryFilter{TokenID: &tokenID})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, testBob, events[0].To)
	})

	t.Run("limit", func(t *testing.T) {
		events, err := store.GetEvents(ctx, EventQueryFilter{AfterID: 1, Limit: 2})
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, uint64(2), events[0].ID)
		assert.Equal(t, uint64(3), events[1].ID)
	})
}

// =============================================================================
// Test: Key-Value Store & Cursors
// =============================================================================

func testKeyValueStore(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("set and get key-value", func(t *testing.T) {
		err := store.SetKeyValue(ctx, "test:key1", "value1")
		require.NoError(t, err)

		value, err := store.GetKeyValue(ctx, "test:key1")
		require.NoError(t, err)
		assert.Equal(t, "value1", value)
	})

	t.Run("get non-existent key returns empty string", func(t *testing.T) {
		value, err := store.GetKeyValue(ctx, "nonexistent:key")
		require.NoError(t, err)
		assert.Equal(t, "", value)
	})

	t.Run("update existing key", func(t *testing.T) {
		require.NoError(t, store.SetKeyValue(ctx, "test:key2", "value1"))
		require.NoError(t, store.SetKeyValue(ctx, "test:key2", "value2"))

		value, err := store.GetKeyValue(ctx, "test:key2")
		require.NoError(t, err)
		assert.Equal(t, "value2", value)
	})
}

func testRelayCursor(t *testing.T, store Store) {
	ctx := context.Background()
	cursors := NewCursorStore(store)

	cursor, err := cursors.GetRelayCursor(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), cursor)

	require.NoError(t, cursors.SetRelayCursor(ctx, "default", 42))
	require.NoError(t, cursors.SetRelayCursor(ctx, "analytics", 7))

	cursor, err = cursors.GetRelayCursor(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), cursor)

	value, err := store.GetKeyValue(ctx, "relay_cursor:analytics")
	require.NoError(t, err)
	assert.Equal(t, "7", value)

	require.NoError(t, store.SetKeyValue(ctx, "relay_cursor:broken", "not-a-number"))
	_, err = cursors.GetRelayCursor(ctx, "broken")
	assert.Error(t, err)
}

// =============================================================================
// Test: Webhooks
// =============================================================================

func seedWebhookClients(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	inputs := []CreateWebhookClientInput{
		{
			ClientID:         "client-all-events-123",
			WebhookURL:       "https://webhook.example.com/all",
			WebhookSecret:    "736563726574",
			EventFilters:     datatypes.JSON(`["*"]`),
			IsActive:         true,
			RetryMaxAttempts: 5,
		},
		{
			ClientID:         "client-transfers-456",
			WebhookURL:       "https://webhook.example.com/transfers",
			WebhookSecret:    "736563726574",
			EventFilters:     datatypes.JSON(`["property.transferred"]`),
			IsActive:         true,
			RetryMaxAttempts: 3,
		},
		{
			ClientID:         "client-inactive-789",
			WebhookURL:       "https://webhook.example.com/inactive",
			WebhookSecret:    "736563726574",
			EventFilters:     datatypes.JSON(`["*"]`),
			IsActive:         false,
			RetryMaxAttempts: 5,
		},
	}
	for _, input := range inputs {
		client, err := store.CreateWebhookClient(ctx, input)
		require.NoError(t, err)
		require.NotZero(t, client.ID)
	}
}

func clientIDs(clients []*schema.WebhookClient) []string {
	ids := make([]string, len(clients))
	for i, c := range clients {
		ids[i] = c.ClientID
	}
	return ids
}

func testWebhookClients(t *testing.T, store Store) {
	ctx := context.Background()
	seedWebhookClients(t, store)

	t.Run("GetActiveWebhookClientsByEventType - specific and wildcard", func(t *testing.T) {
		clients, err := store.GetActiveWebhookClientsByEventType(ctx, string(domain.EventTypePropertyTransferred))
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"client-all-events-123", "client-transfers-456"}, clientIDs(clients))
	})

	t.Run("GetActiveWebhookClientsByEventType - wildcard only", func(t *testing.T) {
		clients, err := store.GetActiveWebhookClientsByEventType(ctx, string(domain.EventTypePropertyRegistered))
		require.NoError(t, err)
		assert.Equal(t, []string{"client-all-events-123"}, clientIDs(clients))
	})

	t.Run("GetWebhookClientByID", func(t *testing.T) {
		client, err := store.GetWebhookClientByID(ctx, "client-transfers-456")
		require.NoError(t, err)
		require.NotNil(t, client)
		assert.Equal(t, "https://webhook.example.com/transfers", client.WebhookURL)
		assert.Equal(t, 3, client.RetryMaxAttempts)
		assert.True(t, client.IsActive)

		client, err = store.GetWebhookClientByID(ctx, "non-existent-client")
		require.NoError(t, err)
		assert.Nil(t, client)
	})

	// Runs last: on PostgreSQL the constraint violation aborts the test transaction
	t.Run("duplicate client id is rejected", func(t *testing.T) {
		_, err := store.CreateWebhookClient(ctx, CreateWebhookClientInput{
			ClientID:     "client-all-events-123",
			WebhookURL:   "https://webhook.example.com/dup",
			EventFilters: datatypes.JSON(`["*"]`),
			IsActive:     true,
		})
		assert.Error(t, err)
	})
}

func testWebhookDeliveries(t *testing.T, store Store) {
	ctx := context.Background()
	seedWebhookClients(t, store)

	payload := []byte(`{"event_id":"01JG8XAMPLE000000000000000","event_type":"property.transferred","timestamp":"2024-01-15T10:00:00Z","data":{"token_id":"0"}}`)

	t.Run("CreateWebhookDelivery", func(t *testing.T) {
		delivery := &schema.WebhookDelivery{
			ClientID:        "client-all-events-123",
			EventID:         "01JG8XAMPLE000000000000000",
			RegistryEventID: 2,
			EventType:       "property.transferred",
			Payload:         payload,
			WorkflowID:      "webhook-delivery-client-all-events-123-01JG8XAMPLE000000000000000",
			WorkflowRunID:   "run-1",
			DeliveryStatus:  schema.WebhookDeliveryStatusPending,
		}
		err := store.CreateWebhookDelivery(ctx, delivery)
		require.NoError(t, err)
		assert.NotZero(t, delivery.ID)

		statusCode := 200
		err = store.UpdateWebhookDeliveryStatus(ctx, delivery.ID, schema.WebhookDeliveryStatusSuccess, 1, &statusCode, `{"ok":true}`, "")
		assert.NoError(t, err)

		statusCode = 500
		err = store.UpdateWebhookDeliveryStatus(ctx, delivery.ID, schema.WebhookDeliveryStatusFailed, 2, &statusCode, "", "HTTP 500")
		assert.NoError(t, err)
	})

	t.Run("CreateWebhookDelivery - unknown client", func(t *testing.T) {
		delivery := &schema.WebhookDelivery{
			ClientID:       "non-existent-client",
			EventID:        "01JG8XAMPLE000000000000001",
			EventType:      "property.transferred",
			Payload:        payload,
			WorkflowID:     "workflow-invalid",
			DeliveryStatus: schema.WebhookDeliveryStatusPending,
		}
		err := store.CreateWebhookDelivery(ctx, delivery)
		assert.Error(t, err)
	})
}

// =============================================================================
// Test Runner - runs all tests against a given store implementation
// =============================================================================

func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"Registrar", testRegistrarSuite},
		{"CreateProperty", testCreateProperty},
		{"TransferProperty", testTransferProperty},
		{"GetProperty", testGetProperty},
		{"GetPropertiesByOwner", testGetPropertiesByOwner},
		{"GetEvents", testGetEvents},
		{"KeyValueStore", testKeyValueStore},
		{"RelayCursor", testRelayCursor},
		{"WebhookClients", testWebhookClients},
		{"WebhookDeliveries", testWebhookDeliveries},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
