package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/feral-file/property-registry/internal/domain"
)

var (
	testDB      *gorm.DB
	testDSN     string
	pgContainer *postgres.PostgresContainer
)

// TestMain sets up the test database before running tests.
// When neither TEST_DB_HOST nor Docker is available the PostgreSQL tests are skipped
// and the in-memory tests still run.
func TestMain(m *testing.M) {
	ctx := context.Background()

	dsn, err := testDatabaseDSN(ctx)
	if err != nil {
		fmt.Printf("PostgreSQL unavailable, skipping PostgreSQL store tests: %v\n", err)
		os.Exit(m.Run())
	}

	testDB, err = gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		terminateContainer(ctx)
		os.Exit(1)
	}
	testDSN = dsn

	if err := initializeTestDatabase(testDB); err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		terminateContainer(ctx)
		os.Exit(1)
	}

	code := m.Run()
	terminateContainer(ctx)
	os.Exit(code)
}

// testDatabaseDSN returns the DSN of an external database (for CI or local development)
// or of a freshly started PostgreSQL container
func testDatabaseDSN(ctx context.Context) (dsn string, err error) {
	if dbHost := os.Getenv("TEST_DB_HOST"); dbHost != "" {
		dbPort := envOrDefault("TEST_DB_PORT", "5432")
		dbUser := envOrDefault("TEST_DB_USER", "postgres")
		dbPassword := envOrDefault("TEST_DB_PASSWORD", "postgres")
		dbName := envOrDefault("TEST_DB_NAME", "test_db")

		fmt.Printf("Using external database: %s:%s/%s\n", dbHost, dbPort, dbName)
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost, dbPort, dbUser, dbPassword, dbName), nil
	}

	if err := dockerAvailable(ctx); err != nil {
		return "", err
	}

	// testcontainers panics instead of returning an error on some Docker setups
	defer func() {
		if r := recover(); r != nil {
			terminateContainer(ctx)
			dsn, err = "", fmt.Errorf("failed to start PostgreSQL container: %v", r)
		}
	}()

	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return "", fmt.Errorf("failed to start PostgreSQL container: %w", err)
	}
	pgContainer = container

	dsn, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		terminateContainer(ctx)
		return "", fmt.Errorf("failed to get connection string: %w", err)
	}

	fmt.Printf("Started PostgreSQL container\n")
	return dsn, nil
}

// dockerAvailable reports whether a healthy Docker daemon can be reached
func dockerAvailable(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("docker not available: %v", r)
		}
	}()

	provider, err := testcontainers.NewDockerProvider()
	if err != nil {
		return fmt.Errorf("docker not available: %w", err)
	}
	defer provider.Close()

	if err := provider.Health(ctx); err != nil {
		return fmt.Errorf("docker not healthy: %w", err)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func terminateContainer(ctx context.Context) {
	if pgContainer == nil {
		return
	}
	if err := pgContainer.Terminate(ctx); err != nil {
		fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
	}
}

// initializeTestDatabase runs the schema initialization
func initializeTestDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	schemaPath := filepath.Join("..", "..", "db", "init_pg_db.sql")
	schemaSQL, err := os.ReadFile(schemaPath) //nolint:gosec,G304
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	if _, err = sqlDB.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

func requireTestDB(t *testing.T) {
	t.Helper()
	if testDB == nil {
		t.Skip("PostgreSQL not available")
	}
}

// truncateTestDB empties every table; used by tests that need real concurrent transactions
func truncateTestDB(t *testing.T) {
	t.Helper()
	err := testDB.Exec(`TRUNCATE webhook_deliveries, webhook_clients, registry_events,
		ownership_records, properties, key_value_store RESTART IDENTITY CASCADE`).Error
	require.NoError(t, err)
}

// initPGTestDB initializes a test database for each test
// Every test runs inside a transaction that is rolled back on cleanup
func initPGTestDB(t *testing.T) Store {
	tx := testDB.Begin()
	require.NotNil(t, tx)
	require.NoError(t, tx.Error)

	t.Cleanup(func() {
		tx.Rollback()
	})

	return NewPGStore(tx)
}

// cleanupPGTestDB is handled by the transaction rollback in initPGTestDB
func cleanupPGTestDB(t *testing.T) {}

// TestPostgreSQLStore runs all store tests against PostgreSQL
func TestPostgreSQLStore(t *testing.T) {
	requireTestDB(t)
	RunStoreTests(t, initPGTestDB, cleanupPGTestDB)
}

func TestPostgreSQLStore_ConcurrentTransfers(t *testing.T) {
	requireTestDB(t)
	truncateTestDB(t)
	t.Cleanup(func() { truncateTestDB(t) })

	ctx := context.Background()
	store := NewPGStore(testDB)
	initRegistrar(t, store)
	property := registerTestProperty(t, store, testAlice)

	recipients := []domain.Identity{testBob, testCarol, "dave", "erin"}
	errs := make([]error, len(recipients))

	var wg sync.WaitGroup
	for i, to := range recipients {
		wg.Add(1)
		go func(i int, to domain.Identity) {
			defer wg.Done()
			_, _, errs[i] = store.TransferProperty(ctx, TransferPropertyInput{
				TokenID:   property.TokenID,
				From:      testAlice,
				To:        to,
				Timestamp: testTime,
			})
		}(i, to)
	}
	wg.Wait()

	var winner domain.Identity
	succeeded := 0
	for i, err := range errs {
		if err == nil {
			succeeded++
			winner = recipients[i]
			continue
		}
		assert.ErrorIs(t, err, domain.ErrOwnerMismatch)
	}
	require.Equal(t, 1, succeeded)

	stored, err := store.GetProperty(ctx, property.TokenID)
	require.NoError(t, err)
	assert.Equal(t, winner, stored.CurrentOwner)
	assert.Equal(t, []domain.Identity{testAlice, winner}, stored.OwnershipHistory)
}

func TestPostgreSQLStore_ConcurrentRegistrations(t *testing.T) {
	requireTestDB(t)
	truncateTestDB(t)
	t.Cleanup(func() { truncateTestDB(t) })

	ctx := context.Background()
	store := NewPGStore(testDB)
	initRegistrar(t, store)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = store.CreateProperty(ctx, CreatePropertyInput{
				Registrar: testRegistrar,
				Recipient: testAlice,
				Info:      buildTestInfo(i),
				Timestamp: testTime,
			})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	count, err := store.CountProperties(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(workers), count)

	for id := 0; id < workers; id++ {
		_, err := store.GetProperty(ctx, domain.TokenID(id)) //nolint:gosec,G115
		assert.NoError(t, err, "token %d should exist", id)
	}

	events, err := store.GetEvents(ctx, EventQueryFilter{})
	require.NoError(t, err)
	require.Len(t, events, workers)
	for i, e := range events {
		assert.Equal(t, uint64(i+1), e.ID) //nolint:gosec,G115
	}
}

func TestPostgreSQLStore_ReadReplica(t *testing.T) {
	requireTestDB(t)
	truncateTestDB(t)
	t.Cleanup(func() { truncateTestDB(t) })

	db, err := gorm.Open(pgdriver.Open(testDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, ConfigureReadReplica(db, pgdriver.Open(testDSN)))
	assert.True(t, hasDBResolver(db))

	ctx := context.Background()
	store := NewPGStore(db)
	initRegistrar(t, store)
	property := registerTestProperty(t, store, testAlice)

	stored, err := store.GetProperty(ctx, property.TokenID)
	require.NoError(t, err)
	assert.Equal(t, testAlice, stored.CurrentOwner)

	_, err = store.GetProperty(ctx, property.TokenID+1)
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestNormalizeConnectionPoolSettings(t *testing.T) {
	open, idle, lifetime, idleTime := NormalizeConnectionPoolSettings(0, 0, 0, 0)
	assert.Equal(t, 20, open)
	assert.Equal(t, 5, idle)
	assert.Equal(t, 5*time.Minute, lifetime)
	assert.Equal(t, 10*time.Minute, idleTime)

	open, idle, _, _ = NormalizeConnectionPoolSettings(4, 10, time.Minute, time.Minute)
	assert.Equal(t, 4, open)
	assert.Equal(t, 4, idle)
}

func TestDockerAvailable_ReportsInsteadOfPanicking(t *testing.T) {
	t.Setenv("DOCKER_HOST", "unix:///nonexistent/docker.sock")

	assert.NotPanics(t, func() {
		_ = dockerAvailable(context.Background())
	})
}
