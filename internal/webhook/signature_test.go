package webhook_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/property-registry/internal/adapter"
	"github.com/feral-file/property-registry/internal/domain"
	"github.com/feral-file/property-registry/internal/mocks"
	"github.com/feral-file/property-registry/internal/webhook"
)

const testHexSecret = "746573742d7365637265742d6b6579" //nolint:gosec,G101

var testNow = time.Date(2024, 1, 15, 10, 0, 5, 0, time.UTC)

func testEvent(eventID string, tokenID domain.TokenID) webhook.WebhookEvent {
	return webhook.NewWebhookEvent(eventID, domain.Event{
		ID:         uint64(tokenID) + 1,
		Type:       domain.EventTypePropertyTransferred,
		TokenID:    &tokenID,
		From:       "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		To:         "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC",
		OccurredAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
	})
}

func TestGenerateSignedPayload(t *testing.T) {
	jsonAdapter := adapter.NewJSON()

	t.Run("generates valid payload and signature", func(t *testing.T) {
		event := testEvent("01JG8XAMPLE1234567890123456", 7)

		payload, signature, timestamp, err := webhook.GenerateSignedPayload(jsonAdapter, testHexSecret, event, testNow)
		require.NoError(t, err)
		assert.Equal(t, testNow.Unix(), timestamp)

		var parsed webhook.WebhookEvent
		require.NoError(t, json.Unmarshal(payload, &parsed))
		assert.Equal(t, event.EventID, parsed.EventID)
		assert.Equal(t, webhook.EventTypePropertyTransferred, parsed.EventType)
		require.NotNil(t, parsed.Data.TokenID)
		assert.Equal(t, "7", *parsed.Data.TokenID)
		assert.Equal(t, uint64(8), parsed.Data.JournalID)

		// Client-side verification
		secretBytes, err := hex.DecodeString(testHexSecret)
		require.NoError(t, err)
		h := hmac.New(sha256.New, secretBytes)
		h.Write([]byte(fmt.Sprintf("%d.%s.%s", timestamp, event.EventID, string(payload))))
		assert.Equal(t, "sha256="+hex.EncodeToString(h.Sum(nil)), signature)
		assert.True(t, webhook.Verify(secretBytes, timestamp, event.EventID, payload, signature))
	})

	t.Run("signature includes event_id to prevent replay", func(t *testing.T) {
		_, signature1, _, err := webhook.GenerateSignedPayload(jsonAdapter, testHexSecret, testEvent("01JG8XAMPLE1111111111111111", 1), testNow)
		require.NoError(t, err)
		_, signature2, _, err := webhook.GenerateSignedPayload(jsonAdapter, testHexSecret, testEvent("01JG8XAMPLE2222222222222222", 1), testNow)
		require.NoError(t, err)

		assert.NotEqual(t, signature1, signature2)
	})

	t.Run("different secrets produce different signatures", func(t *testing.T) {
		event := testEvent("01JG8XAMPLE1234567890123456", 1)

		_, signature1, _, err := webhook.GenerateSignedPayload(jsonAdapter, "73656372657431", event, testNow) // "secret1" in hex
		require.NoError(t, err)
		_, signature2, _, err := webhook.GenerateSignedPayload(jsonAdapter, "73656372657432", event, testNow) // "secret2" in hex
		require.NoError(t, err)

		assert.NotEqual(t, signature1, signature2)
	})

	t.Run("tampered payload fails verification", func(t *testing.T) {
		event := testEvent("01JG8XAMPLE1234567890123456", 1)
		payload, signature, timestamp, err := webhook.GenerateSignedPayload(jsonAdapter, testHexSecret, event, testNow)
		require.NoError(t, err)

		secretBytes, _ := hex.DecodeString(testHexSecret)
		tampered := append([]byte{}, payload...)
		tampered[len(tampered)-2] = 'x'
		assert.False(t, webhook.Verify(secretBytes, timestamp, event.EventID, tampered, signature))
		assert.False(t, webhook.Verify(secretBytes, timestamp+1, event.EventID, payload, signature))
	})

	t.Run("invalid hex secret returns error", func(t *testing.T) {
		_, _, _, err := webhook.GenerateSignedPayload(jsonAdapter, "not-valid-hex-string", testEvent("01JG8XAMPLE1234567890123456", 1), testNow)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode hex secret")
	})

	t.Run("marshal failure is wrapped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockJSON := mocks.NewMockJSON(ctrl)
		mockJSON.EXPECT().Marshal(gomock.Any()).Return(nil, errors.New("boom"))

		_, _, _, err := webhook.GenerateSignedPayload(mockJSON, testHexSecret, testEvent("01JG8XAMPLE1234567890123456", 1), testNow)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to marshal event")
	})
}

func TestNewWebhookEvent_RegistrarEvent(t *testing.T) {
	event := webhook.NewWebhookEvent("01JG8XAMPLE1234567890123456", domain.Event{
		ID:   3,
		Type: domain.EventTypeRegistrarTransferred,
		From: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		To:   "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
	})

	assert.Nil(t, event.Data.TokenID)
	assert.Equal(t, webhook.EventTypeRegistrarTransferred, event.EventType)

	payload, err := json.Marshal(event)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "token_id")
}

func TestValidateEventFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters []string
		wantErr bool
	}{
		{name: "wildcard", filters: []string{"*"}},
		{name: "known types", filters: []string{webhook.EventTypePropertyRegistered, webhook.EventTypePropertyTransferred}},
		{name: "empty", filters: nil, wantErr: true},
		{name: "unknown type", filters: []string{"property.burned"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := webhook.ValidateEventFilters(tt.filters)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGenerateSecret(t *testing.T) {
	s1, err := webhook.GenerateSecret()
	require.NoError(t, err)
	s2, err := webhook.GenerateSecret()
	require.NoError(t, err)

	assert.Len(t, s1, 64)
	assert.NotEqual(t, s1, s2)
	_, err = hex.DecodeString(s1)
	assert.NoError(t, err)
}

func TestEventIDFor(t *testing.T) {
	occurredAt := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	id1, err := webhook.EventIDFor(domain.Event{ID: 1, OccurredAt: occurredAt})
	require.NoError(t, err)
	again, err := webhook.EventIDFor(domain.Event{ID: 1, OccurredAt: occurredAt})
	require.NoError(t, err)
	id2, err := webhook.EventIDFor(domain.Event{ID: 2, OccurredAt: occurredAt})
	require.NoError(t, err)

	assert.Len(t, id1, 26)
	assert.Equal(t, id1, again, "same journal entry yields the same event id")
	assert.NotEqual(t, id1, id2)
	assert.Less(t, id1, id2, "ids sort in journal order")
}
