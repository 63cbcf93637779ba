// Package testutil holds helpers for the Postgres integration tests.
// Every helper skips the calling test when TEST_DATABASE_URL is unset.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // "pgx" driver for database/sql
)

const envDSN = "TEST_DATABASE_URL"

// NewPool connects to the test database and closes the pool on cleanup.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := requireDSN(t)

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("testutil.NewPool: open pool: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// Truncate empties the given tables between tests.
func Truncate(t *testing.T, pool *pgxpool.Pool, tables ...string) {
	t.Helper()
	for _, tbl := range tables {
		if _, err := pool.Exec(context.Background(), "TRUNCATE TABLE "+tbl+" RESTART IDENTITY CASCADE"); err != nil {
			t.Fatalf("testutil.Truncate %s: %v", tbl, err)
		}
	}
}

// MustOpenSQLDB is for TestMain, where there is no *testing.T.
func MustOpenSQLDB(dsn string) *sql.DB {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		panic("testutil.MustOpenSQLDB: open: " + err.Error())
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		panic("testutil.MustOpenSQLDB: ping: " + err.Error())
	}
	return db
}

func DSN() string { return os.Getenv(envDSN) }

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := DSN()
	if dsn == "" {
		t.Skip(envDSN + " not set; skipping integration test")
	}
	return dsn
}
