package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateScanSettings, downCreateScanSettings)
}

func upCreateScanSettings(_ context.Context, tx *sql.Tx) error {
	_, err := tx.Exec(`
create table if not exists scan_settings
(
    id                            integer primary key autoincrement,
    audio_scan_version            integer default 0 not null,
    artist_info_scan_version      integer default 0 not null,
    start_time                    integer default 0 not null,
    update_period                 integer default 0 not null,
    similarity_engine_type        integer default 0 not null,
    extra_tags_to_scan            varchar default '' not null,
    artist_tag_delimiters         varchar default '' not null,
    default_tag_delimiters        varchar default '' not null,
    artists_to_not_split          varchar default '' not null,
    skip_single_release_playlists bool default false not null,
    allow_mbid_artist_merge       bool default false not null
);
`)
	return err
}

func downCreateScanSettings(_ context.Context, tx *sql.Tx) error {
	_, err := tx.Exec(`drop table if exists scan_settings;`)
	return err
}
