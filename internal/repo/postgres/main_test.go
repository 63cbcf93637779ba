package postgres_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pressly/goose/v3"

	"github.com/diagnosis/sophies-tours/migrations"
	"github.com/diagnosis/sophies-tours/testutil"
)

func TestMain(m *testing.M) {
	if testutil.DSN() == "" {
		os.Exit(m.Run())
	}

	db := testutil.MustOpenSQLDB(testutil.DSN())
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		log.Fatalf("TestMain: goose provider: %v", err)
	}
	if _, err := provider.Up(context.Background()); err != nil {
		log.Fatalf("TestMain: migrate: %v", err)
	}
	db.Close()

	os.Exit(m.Run())
}
