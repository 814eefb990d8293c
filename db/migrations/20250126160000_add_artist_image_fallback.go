package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upAddArtistImageFallback, downAddArtistImageFallback)
}

func upAddArtistImageFallback(_ context.Context, tx *sql.Tx) error {
	_, err := tx.Exec(`
alter table scan_settings add column artist_image_fallback_to_release bool default false not null;
`)
	return err
}

func downAddArtistImageFallback(_ context.Context, tx *sql.Tx) error {
	_, err := tx.Exec(`
alter table scan_settings drop column artist_image_fallback_to_release;
`)
	return err
}
