package db

import (
	"context"
	"embed"
	"fmt"
	"runtime"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pocketbase/dbx"
	"github.com/pressly/goose/v3"

	"github.com/melisma/melisma/conf"
	_ "github.com/melisma/melisma/db/migrations"
	"github.com/melisma/melisma/log"
	"github.com/melisma/melisma/model"
)

//go:embed migrations/*.go
var embedMigrations embed.FS

const migrationsFolder = "migrations"

// Open creates the connection pool over the single database file. WAL admits
// many readers concurrent with the one writer; foreign keys drive the
// declared cascades; the busy timeout covers the window between a reader
// upgrading and the writer finishing a checkpoint.
func Open(path string) (*dbx.DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=on&_synchronous=NORMAL&_busy_timeout=%d",
		path, int(conf.Server.DbPoolTimeout.Milliseconds()))
	log.Info("Opening database", "path", path, "poolSize", conf.Server.DbPoolSize)

	d, err := dbx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database %q: %w", path, err)
	}
	d.DB().SetMaxOpenConns(conf.Server.DbPoolSize)
	d.DB().SetMaxIdleConns(conf.Server.DbPoolSize)
	d.DB().SetConnMaxLifetime(0)
	if conf.Server.DevLogSQL {
		d.LogFunc = func(format string, a ...any) { log.Debug(fmt.Sprintf(format, a...)) }
	}
	return d, nil
}

// OpenInMemory is used by tests. Shared cache keeps every pooled connection
// on the same in-memory database.
func OpenInMemory() (*dbx.DB, error) {
	d, err := dbx.Open("sqlite3", "file::memory:?cache=shared&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// A closed last connection drops the whole in-memory database.
	d.DB().SetMaxIdleConns(runtime.NumCPU())
	return d, nil
}

// Init applies pending schema migrations. A failing step leaves the database
// at the previous version and aborts startup.
func Init(ctx context.Context, d *dbx.DB) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(gooseLogAdapter{})
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("%w: %v", model.ErrSchemaMigrationFailed, err)
	}
	before, _ := goose.GetDBVersionContext(ctx, d.DB())
	if err := goose.UpContext(ctx, d.DB(), migrationsFolder); err != nil {
		return fmt.Errorf("%w: %v", model.ErrSchemaMigrationFailed, err)
	}
	after, _ := goose.GetDBVersionContext(ctx, d.DB())
	if after != before {
		log.Info("Upgraded database schema", "from", before, "to", after)
	}
	return nil
}

// Version reports the currently applied schema version.
func Version(ctx context.Context, d *dbx.DB) (int64, error) {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, d.DB())
}

type gooseLogAdapter struct{}

func (gooseLogAdapter) Fatalf(format string, v ...any) { log.Fatal(fmt.Sprintf(format, v...)) }
func (gooseLogAdapter) Printf(format string, v ...any) { log.Debug(fmt.Sprintf(format, v...)) }
