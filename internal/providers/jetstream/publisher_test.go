package jetstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/property-registry/internal/adapter"
	"github.com/feral-file/property-registry/internal/domain"
	"github.com/feral-file/property-registry/internal/logger"
	"github.com/feral-file/property-registry/internal/mocks"
	jspublisher "github.com/feral-file/property-registry/internal/providers/jetstream"
)

type publisherMocks struct {
	ctrl   *gomock.Controller
	natsJS *mocks.MockNatsJetStream
	conn   *mocks.MockNatsConn
	js     *mocks.MockJetStream
}

func testPublisherConfig() jspublisher.Config {
	return jspublisher.Config{
		URL:            "nats://localhost:4222",
		StreamName:     "REGISTRY_EVENTS",
		SubjectPrefix:  "registry.events",
		MaxReconnects:  3,
		ReconnectWait:  time.Second,
		ConnectionName: "event-relay",
	}
}

func setupPublisherMocks(t *testing.T) *publisherMocks {
	require.NoError(t, logger.Initialize(logger.Config{Debug: true}))

	ctrl := gomock.NewController(t)
	return &publisherMocks{
		ctrl:   ctrl,
		natsJS: mocks.NewMockNatsJetStream(ctrl),
		conn:   mocks.NewMockNatsConn(ctrl),
		js:     mocks.NewMockJetStream(ctrl),
	}
}

func TestNewPublisher_ConnectError(t *testing.T) {
	m := setupPublisherMocks(t)
	defer m.ctrl.Finish()

	m.natsJS.EXPECT().Connect("nats://localhost:4222", gomock.Any()).Return(nil, nil, errors.New("connection refused"))

	_, err := jspublisher.NewPublisher(testPublisherConfig(), m.natsJS, adapter.NewJSON())
	assert.ErrorContains(t, err, "failed to connect to NATS")
}

func TestPublisher_PublishEvent(t *testing.T) {
	m := setupPublisherMocks(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	m.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(m.conn, m.js, nil)

	p, err := jspublisher.NewPublisher(testPublisherConfig(), m.natsJS, adapter.NewJSON())
	require.NoError(t, err)

	tokenID := domain.TokenID(0)
	event := domain.Event{
		ID:         1,
		Type:       domain.EventTypePropertyRegistered,
		TokenID:    &tokenID,
		To:         "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		OccurredAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
	}

	m.js.EXPECT().
		Publish(ctx, "registry.events.property.registered", gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
			var decoded domain.Event
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, event.ID, decoded.ID)
			assert.Equal(t, event.To, decoded.To)
			assert.Len(t, opts, 1)
			return &jetstream.PubAck{Stream: "REGISTRY_EVENTS", Sequence: 1}, nil
		})

	require.NoError(t, p.PublishEvent(ctx, event))
	assert.Equal(t, "registry-event-1", jspublisher.MessageID(event))

	m.js.EXPECT().Publish(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("no responders"))
	assert.ErrorContains(t, p.PublishEvent(ctx, event), "failed to publish event")

	m.conn.EXPECT().Drain().Return(nil)
	p.Close()
}

func TestPublisher_EnsureStream(t *testing.T) {
	m := setupPublisherMocks(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	m.natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(m.conn, m.js, nil)

	p, err := jspublisher.NewPublisher(testPublisherConfig(), m.natsJS, adapter.NewJSON())
	require.NoError(t, err)

	m.js.EXPECT().
		CreateOrUpdateStream(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, cfg jetstream.StreamConfig) (*jetstream.StreamInfo, error) {
			assert.Equal(t, "REGISTRY_EVENTS", cfg.Name)
			assert.Equal(t, []string{"registry.events.>"}, cfg.Subjects)
			return &jetstream.StreamInfo{Config: cfg}, nil
		})
	require.NoError(t, p.EnsureStream(ctx))

	m.js.EXPECT().CreateOrUpdateStream(ctx, gomock.Any()).Return(nil, errors.New("insufficient resources"))
	assert.ErrorContains(t, p.EnsureStream(ctx), "failed to ensure stream REGISTRY_EVENTS")

	// Drain failure falls back to Close
	m.conn.EXPECT().Drain().Return(errors.New("already closed"))
	m.conn.EXPECT().Close()
	p.Close()
}
