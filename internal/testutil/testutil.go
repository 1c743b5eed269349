// Package testutil provides shared helpers for integration tests. Database
// tests are opt-in: they skip unless RUN_DB_TESTS=1 is set, and each test runs
// in its own PostgreSQL schema so parallel tests cannot interfere.
package testutil

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/pitchscout/pitchscout/internal/database/postgres"
	platformconfig "github.com/pitchscout/pitchscout/internal/platform/config"
)

// Suite holds configuration shared by integration tests.
type Suite struct {
	t   *testing.T
	cfg *platformconfig.Config
}

// Setup loads environment-aware configuration for a test.
func Setup(t *testing.T) *Suite {
	t.Helper()

	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		t.Fatalf("failed to load test config: %v", err)
	}
	if db := os.Getenv("POSTGRES_TEST_DB"); db != "" {
		cfg.Database.Postgres.Database = db
	}
	return &Suite{t: t, cfg: cfg}
}

// Config returns the loaded configuration.
func (s *Suite) Config() *platformconfig.Config {
	return s.cfg
}

// IsolatedClient creates a postgres client bound to a unique schema for this
// test. The schema is created immediately and the client is closed on cleanup.
func IsolatedClient(t *testing.T, cfg *platformconfig.Config) *postgres.Client {
	t.Helper()

	if os.Getenv("RUN_DB_TESTS") != "1" {
		t.Skip("RUN_DB_TESTS not set, skipping database test")
	}

	uniqueSuffix := strings.ReplaceAll(uuid.Must(uuid.NewV4()).String(), "-", "")[:16]
	schema := fmt.Sprintf("test_%s_%s", SanitizeTestName(t.Name()), uniqueSuffix)

	pgCfg := cfg.Database.Postgres
	pgCfg.Schema = ""

	ctx := context.Background()
	admin, err := postgres.NewClient(ctx, &pgCfg)
	if err != nil {
		t.Skipf("PostgreSQL not available, skipping test: %v", err)
	}
	if _, err := admin.DB().ExecContext(ctx, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, schema)); err != nil {
		admin.Close()
		t.Fatalf("failed to create test schema %s: %v", schema, err)
	}
	admin.Close()

	pgCfg.Schema = schema
	client, err := postgres.NewClient(ctx, &pgCfg)
	if err != nil {
		t.Fatalf("failed to connect with test schema %s: %v", schema, err)
	}

	t.Cleanup(func() {
		_, _ = client.DB().ExecContext(context.Background(), fmt.Sprintf(`DROP SCHEMA IF EXISTS %s CASCADE`, schema))
		client.Close()
	})

	return client
}

var testNameSanitizer = regexp.MustCompile(`[^a-z0-9_]+`)

// SanitizeTestName converts a test name into a valid schema name fragment.
func SanitizeTestName(name string) string {
	sanitized := testNameSanitizer.ReplaceAllString(strings.ToLower(name), "_")
	if len(sanitized) > 24 {
		sanitized = sanitized[:24]
	}
	return strings.Trim(sanitized, "_")
}
