package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/feral-file/property-registry/internal/adapter"
)

const (
	// Headers set on every delivery
	HEADER_SIGNATURE  = "X-Webhook-Signature"
	HEADER_TIMESTAMP  = "X-Webhook-Timestamp"
	HEADER_EVENT_ID   = "X-Webhook-Event-ID"
	HEADER_EVENT_TYPE = "X-Webhook-Event-Type"

	// SIGNATURE_PREFIX names the algorithm in the signature header
	SIGNATURE_PREFIX = "sha256="
)

// GenerateSignedPayload generates a signed webhook payload with HMAC-SHA256 signature.
// The secret is hex encoded. Returns the JSON payload, signature header value and timestamp.
func GenerateSignedPayload(jsonAdapter adapter.JSON, secret string, event WebhookEvent, now time.Time) (payload []byte, signature string, timestamp int64, err error) {
	secretBytes, err := adapter.DecodeHexSecret(secret)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to decode hex secret: %w", err)
	}

	payload, err = jsonAdapter.Marshal(event)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to marshal event: %w", err)
	}

	timestamp = now.Unix()
	return payload, Sign(secretBytes, timestamp, event.EventID, payload), timestamp, nil
}

// Sign computes the signature header value over {timestamp}.{event_id}.{body}
func Sign(secret []byte, timestamp int64, eventID string, payload []byte) string {
	h := hmac.New(sha256.New, secret)
	fmt.Fprintf(h, "%d.%s.", timestamp, eventID)
	h.Write(payload)
	return SIGNATURE_PREFIX + hex.EncodeToString(h.Sum(nil))
}

// Verify reports whether signature matches the payload, using a constant time comparison
func Verify(secret []byte, timestamp int64, eventID string, payload []byte, signature string) bool {
	expected := Sign(secret, timestamp, eventID, payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// GenerateSecret returns a new random hex encoded webhook secret
func GenerateSecret() (string, error) {
	b, err := adapter.RandomBytes(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
