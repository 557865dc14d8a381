package relay

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/property-registry/internal/adapter"
	"github.com/feral-file/property-registry/internal/domain"
	"github.com/feral-file/property-registry/internal/logger"
	"github.com/feral-file/property-registry/internal/store"
)

const (
	DEFAULT_RETRY_INITIAL_INTERVAL = 500 * time.Millisecond
	DEFAULT_RETRY_MAX_INTERVAL     = 30 * time.Second
	DEFAULT_RETRY_MAX_ELAPSED_TIME = 2 * time.Minute
)

// ErrAlreadyStarted is returned by Start on a relay that has already run
var ErrAlreadyStarted = errors.New("relay already started")

// Relay tails the registry journal and hands every event to the configured sinks
//
//go:generate mockgen -source=relay.go -destination=../mocks/relay.go -package=mocks -mock_names=Relay=MockRelay,Sink=MockSink,EventSource=MockEventSource
type Relay interface {
	// Start runs the poll loop until the context is canceled or Stop is called.
	// A relay runs at most once; later calls return ErrAlreadyStarted.
	Start(ctx context.Context) error
	// Stop asks the poll loop to exit and waits for it
	Stop(ctx context.Context) error
	// ProcessBatch relays one batch of journal entries after the cursor and returns how many were delivered
	ProcessBatch(ctx context.Context) (int, error)
	// Name returns the relay's name; it also keys the persisted cursor
	Name() string
}

// Sink receives journal entries. Deliver must be idempotent per event ID
// since an entry is redelivered when any sink failed it.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, event domain.Event) error
}

// EventSource reads the registry journal
type EventSource interface {
	GetEvents(ctx context.Context, filter store.EventQueryFilter) ([]*domain.Event, error)
}

// Config holds the relay settings
type Config struct {
	Name           string
	PollInterval   time.Duration
	BatchSize      int
	WorkerPoolSize int
	WorkerQueue    int

	// Per sink retry budget for one event
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMaxElapsedTime  time.Duration
}

type relay struct {
	config  Config
	source  EventSource
	cursors store.CursorStore
	sinks   []Sink
	clock   adapter.Clock
	pool    pond.Pool

	started   atomic.Bool
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// New creates a relay
func New(config Config, source EventSource, cursors store.CursorStore, sinks []Sink, clock adapter.Clock) Relay {
	if config.WorkerPoolSize <= 0 {
		config.WorkerPoolSize = len(sinks)
	}
	if config.WorkerPoolSize <= 0 {
		config.WorkerPoolSize = 1
	}

	if config.RetryInitialInterval <= 0 {
		config.RetryInitialInterval = DEFAULT_RETRY_INITIAL_INTERVAL
	}
	if config.RetryMaxInterval <= 0 {
		config.RetryMaxInterval = DEFAULT_RETRY_MAX_INTERVAL
	}
	if config.RetryMaxElapsedTime <= 0 {
		config.RetryMaxElapsedTime = DEFAULT_RETRY_MAX_ELAPSED_TIME
	}

	opts := []pond.Option{}
	if config.WorkerQueue > 0 {
		opts = append(opts, pond.WithQueueSize(config.WorkerQueue))
	}

	return &relay{
		config:    config,
		source:    source,
		cursors:   cursors,
		sinks:     sinks,
		clock:     clock,
		pool:      pond.NewPool(config.WorkerPoolSize, opts...),
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (r *relay) Name() string {
	return r.config.Name
}

// Start may be called once; the worker pool and channels do not survive a run
func (r *relay) Start(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	r.running.Store(true)
	defer func() {
		r.running.Store(false)
		r.pool.StopAndWait()
		close(r.stoppedCh)
	}()

	sinkNames := make([]string, len(r.sinks))
	for i, s := range r.sinks {
		sinkNames[i] = s.Name()
	}
	logger.InfoCtx(ctx, "Starting event relay",
		zap.String("name", r.config.Name),
		zap.Strings("sinks", sinkNames),
		zap.Duration("poll_interval", r.config.PollInterval),
		zap.Int("batch_size", r.config.BatchSize))

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Event relay stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-r.stopChan:
			logger.InfoCtx(ctx, "Event relay stop requested")
			return nil
		default:
		}

		delivered, err := r.ProcessBatch(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, err, zap.String("relay", r.config.Name))
		}

		// Drain backlogs without waiting; wait only when caught up or failing
		if err == nil && delivered == r.config.BatchSize {
			continue
		}
		if !r.sleep(ctx, r.config.PollInterval) {
			return nil
		}
	}
}

func (r *relay) Stop(ctx context.Context) error {
	if !r.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping event relay", zap.String("name", r.config.Name))
	close(r.stopChan)

	select {
	case <-r.stoppedCh:
		logger.InfoCtx(ctx, "Event relay stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Event relay stop interrupted by context timeout")
		return ctx.Err()
	}
}

func (r *relay) ProcessBatch(ctx context.Context) (int, error) {
	cursor, err := r.cursors.GetRelayCursor(ctx, r.config.Name)
	if err != nil {
		return 0, err
	}

	events, err := r.source.GetEvents(ctx, store.EventQueryFilter{
		AfterID: cursor,
		Limit:   r.config.BatchSize,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to read journal: %w", err)
	}

	for i, event := range events {
		if err := r.deliver(ctx, *event); err != nil {
			return i, fmt.Errorf("failed to relay event %d: %w", event.ID, err)
		}

		if err := r.cursors.SetRelayCursor(ctx, r.config.Name, event.ID); err != nil {
			return i, err
		}
	}

	if len(events) > 0 {
		logger.DebugCtx(ctx, "Relayed journal batch",
			zap.Uint64("from", events[0].ID),
			zap.Uint64("to", events[len(events)-1].ID))
	}

	return len(events), nil
}

// deliver hands the event to every sink concurrently and waits for all of them
func (r *relay) deliver(ctx context.Context, event domain.Event) error {
	group := r.pool.NewGroupContext(ctx)
	for _, sink := range r.sinks {
		group.SubmitErr(func() error {
			return r.deliverWithRetry(ctx, sink, event)
		})
	}
	return group.Wait()
}

func (r *relay) deliverWithRetry(ctx context.Context, sink Sink, event domain.Event) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.config.RetryInitialInterval
	b.MaxInterval = r.config.RetryMaxInterval
	b.MaxElapsedTime = r.config.RetryMaxElapsedTime
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	operation := func() error {
		return sink.Deliver(ctx, event)
	}

	var attemptCount int
	notifyOnError := func(err error, next time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Sink delivery failed, retrying",
			zap.String("sink", sink.Name()),
			zap.Uint64("eventID", event.ID),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", next),
			zap.Error(err))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notifyOnError); err != nil {
		return fmt.Errorf("sink %s: %w", sink.Name(), err)
	}
	return nil
}

// sleep returns false if the wait was interrupted
func (r *relay) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-r.clock.After(d):
		return true
	case <-r.stopChan:
		return false
	case <-ctx.Done():
		return false
	}
}
