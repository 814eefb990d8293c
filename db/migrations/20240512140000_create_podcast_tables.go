package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreatePodcastTables, downCreatePodcastTables)
}

func upCreatePodcastTables(_ context.Context, tx *sql.Tx) error {
	_, err := tx.Exec(`
create table if not exists podcast
(
    id               integer primary key autoincrement,
    url              varchar not null unique,
    title            varchar default '' not null,
    link             varchar default '' not null,
    description      varchar default '' not null,
    language         varchar default '' not null,
    copyright        varchar default '' not null,
    last_build_date  datetime,
    author           varchar default '' not null,
    category         varchar default '' not null,
    explicit         bool default false not null,
    image_url        varchar default '' not null,
    owner_email      varchar default '' not null,
    owner_name       varchar default '' not null,
    subtitle         varchar default '' not null,
    summary          varchar default '' not null,
    artwork_id       integer references artwork(id) on delete set null,
    delete_requested bool default false not null
);

create table if not exists podcast_episode
(
    id                       integer primary key autoincrement,
    podcast_id               integer not null references podcast(id) on delete cascade,
    title                    varchar default '' not null,
    link                     varchar default '' not null,
    description              varchar default '' not null,
    author                   varchar default '' not null,
    category                 varchar default '' not null,
    explicit                 bool default false not null,
    image_url                varchar default '' not null,
    subtitle                 varchar default '' not null,
    summary                  varchar default '' not null,
    enclosure_url            varchar default '' not null,
    enclosure_content_type   varchar default '' not null,
    enclosure_size           integer default 0 not null,
    pub_date                 datetime,
    duration                 float default 0 not null,
    audio_relative_file_path varchar default '' not null,
    manual_download_state    integer default 0 not null,
    artwork_id               integer references artwork(id) on delete set null
);
create index if not exists podcast_episode_podcast_idx on podcast_episode(podcast_id);
create index if not exists podcast_episode_pub_date_idx on podcast_episode(pub_date);
create index if not exists podcast_episode_download_state_idx on podcast_episode(manual_download_state);
`)
	return err
}

func downCreatePodcastTables(_ context.Context, tx *sql.Tx) error {
	_, err := tx.Exec(`
drop table if exists podcast_episode;
drop table if exists podcast;
`)
	return err
}
