package workflows_test

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	"github.com/feral-file/property-registry/internal/adapter"
	"github.com/feral-file/property-registry/internal/logger"
	"github.com/feral-file/property-registry/internal/mocks"
	"github.com/feral-file/property-registry/internal/store/schema"
	"github.com/feral-file/property-registry/internal/webhook"
	"github.com/feral-file/property-registry/internal/workflows"
)

var testDeliveryTime = time.Date(2024, 1, 15, 10, 0, 5, 0, time.UTC)

// testExecutorMocks contains all the mocks needed for testing the executor
type testExecutorMocks struct {
	ctrl             *gomock.Controller
	store            *mocks.MockStore
	json             *mocks.MockJSON
	clock            *mocks.MockClock
	httpClient       *mocks.MockHTTPClient
	io               *mocks.MockIO
	temporalActivity *mocks.MockActivity
	executor         workflows.Executor
}

// setupTestExecutor creates all the mocks and executor for testing.
// JSON is real unless useMockJSON is set, since signing needs the real payload.
func setupTestExecutor(t *testing.T, useMockJSON bool) *testExecutorMocks {
	err := logger.Initialize(logger.Config{
		Debug: true,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	ctrl := gomock.NewController(t)

	tm := &testExecutorMocks{
		ctrl:             ctrl,
		store:            mocks.NewMockStore(ctrl),
		json:             mocks.NewMockJSON(ctrl),
		clock:            mocks.NewMockClock(ctrl),
		httpClient:       mocks.NewMockHTTPClient(ctrl),
		io:               mocks.NewMockIO(ctrl),
		temporalActivity: mocks.NewMockActivity(ctrl),
	}

	var jsonAdapter adapter.JSON = adapter.NewJSON()
	if useMockJSON {
		jsonAdapter = tm.json
	}

	tm.executor = workflows.NewExecutor(
		tm.store,
		jsonAdapter,
		tm.clock,
		tm.httpClient,
		tm.io,
		tm.temporalActivity,
	)

	return tm
}

func tearDownTestExecutor(mocks *testExecutorMocks) {
	mocks.ctrl.Finish()
}

func testDeliveryClient() *schema.WebhookClient {
	return &schema.WebhookClient{
		ClientID:      "client-123",
		WebhookURL:    "https://example.com/webhook",
		WebhookSecret: "7365637265742d6b6579",
	}
}

// ====================================================================================
// Client lookup
// ====================================================================================

func TestGetActiveWebhookClientsByEventType_Success(t *testing.T) {
	mocks := setupTestExecutor(t, false)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	expectedClients := []*schema.WebhookClient{
		{
			ID:               1,
			ClientID:         "client-123",
			WebhookURL:       "https://example.com/webhook",
			WebhookSecret:    "736563726574",
			EventFilters:     []byte(`["property.registered"]`),
			IsActive:         true,
			RetryMaxAttempts: 5,
		},
	}

	mocks.store.EXPECT().
		GetActiveWebhookClientsByEventType(ctx, webhook.EventTypePropertyRegistered).
		Return(expectedClients, nil)

	result, err := mocks.executor.GetActiveWebhookClientsByEventType(ctx, webhook.EventTypePropertyRegistered)

	assert.NoError(t, err)
	assert.Equal(t, expectedClients, result)
}

func TestGetWebhookClientByID_NotFound(t *testing.T) {
	mocks := setupTestExecutor(t, false)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()

	mocks.store.EXPECT().
		GetWebhookClientByID(ctx, "non-existent").
		Return(nil, nil)

	result, err := mocks.executor.GetWebhookClientByID(ctx, "non-existent")

	assert.NoError(t, err)
	assert.Nil(t, result)
}

// ====================================================================================
// CreateWebhookDeliveryRecord
// ====================================================================================

func TestCreateWebhookDeliveryRecord_Success(t *testing.T) {
	mocks := setupTestExecutor(t, true)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	event := newTransferWebhookEvent()
	delivery := &schema.WebhookDelivery{
		ClientID:      "client-123",
		EventID:       event.EventID,
		EventType:     event.EventType,
		WorkflowID:    "workflow-789",
		WorkflowRunID: "run-012",
	}

	mocks.json.EXPECT().
		Marshal(event).
		Return([]byte(`{"event":"test"}`), nil)

	mocks.store.EXPECT().
		CreateWebhookDelivery(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, d *schema.WebhookDelivery) error {
			assert.Equal(t, `{"event":"test"}`, string(d.Payload))
			assert.Equal(t, uint64(4), d.RegistryEventID)
			assert.Equal(t, schema.WebhookDeliveryStatusPending, d.DeliveryStatus)
			d.ID = 123
			return nil
		})

	deliveryID, err := mocks.executor.CreateWebhookDeliveryRecord(ctx, delivery, event)

	assert.NoError(t, err)
	assert.Equal(t, uint64(123), deliveryID)
}

func TestCreateWebhookDeliveryRecord_MarshalError(t *testing.T) {
	mocks := setupTestExecutor(t, true)
	defer tearDownTestExecutor(mocks)

	mocks.json.EXPECT().
		Marshal(gomock.Any()).
		Return(nil, errors.New("marshal error"))

	deliveryID, err := mocks.executor.CreateWebhookDeliveryRecord(context.Background(), &schema.WebhookDelivery{}, newTransferWebhookEvent())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal webhook event")
	assert.Equal(t, uint64(0), deliveryID)
}

func TestCreateWebhookDeliveryRecord_StoreError(t *testing.T) {
	mocks := setupTestExecutor(t, false)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	expectedError := errors.New("database error")

	mocks.store.EXPECT().
		CreateWebhookDelivery(ctx, gomock.Any()).
		Return(expectedError)

	deliveryID, err := mocks.executor.CreateWebhookDeliveryRecord(ctx, &schema.WebhookDelivery{}, newTransferWebhookEvent())

	assert.Equal(t, expectedError, err)
	assert.Equal(t, uint64(0), deliveryID)
}

// ====================================================================================
// DeliverWebhookHTTP
// ====================================================================================

func TestDeliverWebhookHTTP_Success(t *testing.T) {
	mocks := setupTestExecutor(t, false)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	client := testDeliveryClient()
	event := newTransferWebhookEvent()
	deliveryID := uint64(789)

	mocks.temporalActivity.EXPECT().Attempt(ctx).Return(int32(1))
	mocks.clock.EXPECT().Now().Return(testDeliveryTime)

	statusCode := 200
	responseBody := io.NopCloser(bytes.NewBufferString(`{"status":"success"}`))
	mocks.httpClient.EXPECT().
		PostWithHeadersNoRetry(ctx, client.WebhookURL, gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, url string, headers map[string]string, body io.Reader) (*http.Response, error) {
			payload, err := io.ReadAll(body)
			require.NoError(t, err)

			assert.Equal(t, "application/json", headers["Content-Type"])
			assert.Equal(t, event.EventID, headers[webhook.HEADER_EVENT_ID])
			assert.Equal(t, event.EventType, headers[webhook.HEADER_EVENT_TYPE])
			assert.Equal(t, strconv.FormatInt(testDeliveryTime.Unix(), 10), headers[webhook.HEADER_TIMESTAMP])
			assert.Equal(t, workflows.WEBHOOK_USER_AGENT, headers["User-Agent"])

			secret, _ := hex.DecodeString(client.WebhookSecret)
			assert.True(t, webhook.Verify(secret, testDeliveryTime.Unix(), event.EventID, payload, headers[webhook.HEADER_SIGNATURE]))

			return &http.Response{StatusCode: statusCode, Body: responseBody}, nil
		})

	mocks.io.EXPECT().
		ReadLimited(responseBody, int64(workflows.MAX_RESPONSE_BODY_SIZE)).
		Return([]byte(`{"status":"success"}`), nil)

	mocks.store.EXPECT().
		UpdateWebhookDeliveryStatus(ctx, deliveryID, schema.WebhookDeliveryStatusSuccess, 1, &statusCode, `{"status":"success"}`, "").
		Return(nil)

	result, err := mocks.executor.DeliverWebhookHTTP(ctx, client, event, deliveryID)

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, statusCode, result.StatusCode)
	assert.Equal(t, `{"status":"success"}`, result.Body)
}

func TestDeliverWebhookHTTP_InvalidSecretIsNonRetryable(t *testing.T) {
	mocks := setupTestExecutor(t, false)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	client := testDeliveryClient()
	client.WebhookSecret = "not-hex" //nolint:gosec,G101

	mocks.temporalActivity.EXPECT().Attempt(ctx).Return(int32(1))
	mocks.clock.EXPECT().Now().Return(testDeliveryTime)
	mocks.store.EXPECT().
		UpdateWebhookDeliveryStatus(ctx, uint64(1), schema.WebhookDeliveryStatusFailed, 1, nil, "", gomock.Any()).
		Return(nil)

	result, err := mocks.executor.DeliverWebhookHTTP(ctx, client, newTransferWebhookEvent(), 1)

	require.Error(t, err)
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	assert.True(t, appErr.NonRetryable())
	assert.False(t, result.Success)
}

func TestDeliverWebhookHTTP_HTTPError(t *testing.T) {
	mocks := setupTestExecutor(t, false)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	client := testDeliveryClient()
	expectedError := errors.New("connection refused")

	mocks.temporalActivity.EXPECT().Attempt(ctx).Return(int32(2))
	mocks.clock.EXPECT().Now().Return(testDeliveryTime)
	mocks.httpClient.EXPECT().
		PostWithHeadersNoRetry(ctx, client.WebhookURL, gomock.Any(), gomock.Any()).
		Return(nil, expectedError)
	mocks.store.EXPECT().
		UpdateWebhookDeliveryStatus(ctx, uint64(789), schema.WebhookDeliveryStatusFailed, 2, nil, "", expectedError.Error()).
		Return(nil)

	result, err := mocks.executor.DeliverWebhookHTTP(ctx, client, newTransferWebhookEvent(), 789)

	assert.Equal(t, expectedError, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, expectedError.Error())
}

func TestDeliverWebhookHTTP_Non2xxStatusCode(t *testing.T) {
	mocks := setupTestExecutor(t, false)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	client := testDeliveryClient()

	statusCode := 500
	responseBody := io.NopCloser(bytes.NewBufferString(`{"error":"internal server error"}`))

	mocks.temporalActivity.EXPECT().Attempt(ctx).Return(int32(1))
	mocks.clock.EXPECT().Now().Return(testDeliveryTime)
	mocks.httpClient.EXPECT().
		PostWithHeadersNoRetry(ctx, client.WebhookURL, gomock.Any(), gomock.Any()).
		Return(&http.Response{StatusCode: statusCode, Body: responseBody}, nil)
	mocks.io.EXPECT().
		ReadLimited(responseBody, int64(workflows.MAX_RESPONSE_BODY_SIZE)).
		Return([]byte(`{"error":"internal server error"}`), nil)
	mocks.store.EXPECT().
		UpdateWebhookDeliveryStatus(ctx, uint64(789), schema.WebhookDeliveryStatusFailed, 1, &statusCode, `{"error":"internal server error"}`, "HTTP 500").
		Return(nil)

	result, err := mocks.executor.DeliverWebhookHTTP(ctx, client, newTransferWebhookEvent(), 789)

	assert.EqualError(t, err, "HTTP 500")
	assert.False(t, result.Success)
	assert.Equal(t, statusCode, result.StatusCode)
}

func TestDeliverWebhookHTTP_ReadBodyError(t *testing.T) {
	mocks := setupTestExecutor(t, false)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	client := testDeliveryClient()

	statusCode := 204
	responseBody := io.NopCloser(bytes.NewBufferString(""))

	mocks.temporalActivity.EXPECT().Attempt(ctx).Return(int32(1))
	mocks.clock.EXPECT().Now().Return(testDeliveryTime)
	mocks.httpClient.EXPECT().
		PostWithHeadersNoRetry(ctx, client.WebhookURL, gomock.Any(), gomock.Any()).
		Return(&http.Response{StatusCode: statusCode, Body: responseBody}, nil)
	mocks.io.EXPECT().
		ReadLimited(responseBody, int64(workflows.MAX_RESPONSE_BODY_SIZE)).
		Return(nil, errors.New("failed to read body"))

	// A body read failure does not fail an accepted delivery
	mocks.store.EXPECT().
		UpdateWebhookDeliveryStatus(ctx, uint64(789), schema.WebhookDeliveryStatusSuccess, 1, &statusCode, "", "").
		Return(nil)

	result, err := mocks.executor.DeliverWebhookHTTP(ctx, client, newTransferWebhookEvent(), 789)

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Empty(t, result.Body)
}

func TestDeliverWebhookHTTP_UpdateStatusError(t *testing.T) {
	mocks := setupTestExecutor(t, false)
	defer tearDownTestExecutor(mocks)

	ctx := context.Background()
	client := testDeliveryClient()
	responseBody := io.NopCloser(bytes.NewBufferString(`ok`))

	mocks.temporalActivity.EXPECT().Attempt(ctx).Return(int32(1))
	mocks.clock.EXPECT().Now().Return(testDeliveryTime)
	mocks.httpClient.EXPECT().
		PostWithHeadersNoRetry(ctx, client.WebhookURL, gomock.Any(), gomock.Any()).
		Return(&http.Response{StatusCode: 200, Body: responseBody}, nil)
	mocks.io.EXPECT().
		ReadLimited(responseBody, int64(workflows.MAX_RESPONSE_BODY_SIZE)).
		Return([]byte(`ok`), nil)
	mocks.store.EXPECT().
		UpdateWebhookDeliveryStatus(ctx, uint64(789), schema.WebhookDeliveryStatusSuccess, 1, gomock.Any(), `ok`, "").
		Return(errors.New("failed to update status"))

	// Status bookkeeping failures are logged, not returned
	result, err := mocks.executor.DeliverWebhookHTTP(ctx, client, newTransferWebhookEvent(), 789)

	assert.NoError(t, err)
	assert.True(t, result.Success)
}
