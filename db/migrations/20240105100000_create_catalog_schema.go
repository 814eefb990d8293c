package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateCatalogSchema, downCreateCatalogSchema)
}

func upCreateCatalogSchema(_ context.Context, tx *sql.Tx) error {
	_, err := tx.Exec(`
create table if not exists media_library
(
    id   integer primary key autoincrement,
    path varchar not null unique,
    name varchar default '' not null
);

create table if not exists directory
(
    id                  integer primary key autoincrement,
    absolute_path       varchar not null,
    name                varchar default '' not null,
    parent_directory_id integer references directory(id) on delete cascade,
    media_library_id    integer references media_library(id) on delete set null
);
create unique index if not exists directory_absolute_path_idx on directory(absolute_path);
create index if not exists directory_parent_idx on directory(parent_directory_id);
create index if not exists directory_library_idx on directory(media_library_id);

create table if not exists image
(
    id              integer primary key autoincrement,
    absolute_path   varchar not null,
    file_size       integer default 0 not null,
    file_last_write datetime,
    width           integer default 0 not null,
    height          integer default 0 not null,
    directory_id    integer references directory(id) on delete cascade
);
create unique index if not exists image_absolute_path_idx on image(absolute_path);
create index if not exists image_directory_idx on image(directory_id);

create table if not exists track_embedded_image
(
    id        integer primary key autoincrement,
    hash      varchar default '' not null,
    file_size integer default 0 not null,
    mime_type varchar default '' not null,
    width     integer default 0 not null,
    height    integer default 0 not null
);
create index if not exists track_embedded_image_hash_idx on track_embedded_image(hash, file_size);

create table if not exists artwork
(
    id                      integer primary key autoincrement,
    image_id                integer references image(id) on delete cascade,
    track_embedded_image_id integer references track_embedded_image(id) on delete cascade
);
create index if not exists artwork_image_idx on artwork(image_id);
create index if not exists artwork_track_embedded_image_idx on artwork(track_embedded_image_id);

create table if not exists artist
(
    id                   integer primary key autoincrement,
    name                 varchar(512) not null,
    sort_name            varchar(512) default '' not null,
    mbid                 varchar(36) default '' not null,
    preferred_artwork_id integer references artwork(id) on delete set null
);
create index if not exists artist_name_idx on artist(name);
create index if not exists artist_sort_name_idx on artist(sort_name);
create index if not exists artist_mbid_idx on artist(mbid);

create table if not exists release
(
    id                   integer primary key autoincrement,
    name                 varchar(512) not null,
    sort_name            varchar(512) default '' not null,
    mbid                 varchar(36) default '' not null,
    group_mbid           varchar(36) default '' not null,
    total_disc           integer default 0 not null,
    compilation          bool default false not null,
    artist_display_name  varchar default '' not null,
    barcode              varchar default '' not null,
    comment              varchar default '' not null,
    preferred_artwork_id integer references artwork(id) on delete set null
);
create index if not exists release_name_idx on release(name);
create index if not exists release_mbid_idx on release(mbid);

create table if not exists medium
(
    id                 integer primary key autoincrement,
    release_id         integer not null references release(id) on delete cascade,
    position           integer default 0 not null,
    name               varchar default '' not null,
    track_mbid_matched bool default false not null
);
create index if not exists medium_release_idx on medium(release_id);

create table if not exists track
(
    id                         integer primary key autoincrement,
    scan_version               integer default 0 not null,
    absolute_file_path         varchar not null,
    file_size                  integer default 0 not null,
    file_last_write            datetime,
    file_added                 datetime,
    name                       varchar(512) default '' not null,
    duration                   float default 0 not null,
    bitrate                    integer default 0 not null,
    bits_per_sample            integer default 0 not null,
    sample_rate                integer default 0 not null,
    channel_count              integer default 0 not null,
    track_number               integer default 0 not null,
    date                       varchar(10) default '' not null,
    original_date              varchar(10) default '' not null,
    track_mbid                 varchar(36) default '' not null,
    recording_mbid             varchar(36) default '' not null,
    copyright                  varchar default '' not null,
    copyright_url              varchar default '' not null,
    advisory                   integer default 0 not null,
    replay_gain                real,
    artist_display_name        varchar default '' not null,
    comment                    varchar default '' not null,
    release_id                 integer references release(id) on delete cascade,
    medium_id                  integer references medium(id) on delete cascade,
    media_library_id           integer references media_library(id) on delete set null,
    directory_id               integer references directory(id) on delete cascade,
    preferred_artwork_id       integer references artwork(id) on delete set null,
    preferred_media_artwork_id integer references artwork(id) on delete set null
);
create unique index if not exists track_absolute_file_path_idx on track(absolute_file_path);
create index if not exists track_release_idx on track(release_id);
create index if not exists track_medium_idx on track(medium_id);
create index if not exists track_directory_idx on track(directory_id);
create index if not exists track_library_idx on track(media_library_id);
create index if not exists track_mbid_idx on track(track_mbid);
create index if not exists track_recording_mbid_idx on track(recording_mbid);
create index if not exists track_name_idx on track(name);
create index if not exists track_file_last_write_idx on track(file_last_write);

create table if not exists track_artist_link
(
    id               integer primary key autoincrement,
    track_id         integer not null references track(id) on delete cascade,
    artist_id        integer not null references artist(id) on delete cascade,
    type             integer default 0 not null,
    subtype          varchar default '' not null,
    artist_name      varchar(512) default '' not null,
    artist_sort_name varchar(512) default '' not null,
    mbid_matched     bool default false not null
);
create index if not exists track_artist_link_track_idx on track_artist_link(track_id);
create index if not exists track_artist_link_artist_idx on track_artist_link(artist_id);
create index if not exists track_artist_link_artist_type_idx on track_artist_link(artist_id, type);

create table if not exists cluster_type
(
    id   integer primary key autoincrement,
    name varchar not null unique
);

create table if not exists cluster
(
    id              integer primary key autoincrement,
    cluster_type_id integer not null references cluster_type(id) on delete cascade,
    name            varchar not null,
    unique (cluster_type_id, name)
);

create table if not exists track_cluster
(
    track_id   integer not null references track(id) on delete cascade,
    cluster_id integer not null references cluster(id) on delete cascade,
    primary key (track_id, cluster_id)
);
create index if not exists track_cluster_cluster_idx on track_cluster(cluster_id);

create table if not exists track_embedded_image_link
(
    id                      integer primary key autoincrement,
    track_id                integer not null references track(id) on delete cascade,
    track_embedded_image_id integer not null references track_embedded_image(id) on delete cascade,
    idx                     integer default 0 not null,
    type                    varchar default '' not null,
    description             varchar default '' not null
);
create index if not exists track_embedded_image_link_track_idx on track_embedded_image_link(track_id);
create index if not exists track_embedded_image_link_image_idx on track_embedded_image_link(track_embedded_image_id);

create table if not exists track_lyrics
(
    id            integer primary key autoincrement,
    track_id      integer not null references track(id) on delete cascade,
    language      varchar default '' not null,
    synchronized  bool default false not null,
    lines         text default '' not null,
    external      bool default false not null,
    absolute_path varchar default '' not null
);
create index if not exists track_lyrics_track_idx on track_lyrics(track_id);

create table if not exists label
(
    id   integer primary key autoincrement,
    name varchar not null unique
);
create table if not exists release_label
(
    release_id integer not null references release(id) on delete cascade,
    label_id   integer not null references label(id) on delete cascade,
    primary key (release_id, label_id)
);

create table if not exists country
(
    id   integer primary key autoincrement,
    name varchar not null unique
);
create table if not exists release_country
(
    release_id integer not null references release(id) on delete cascade,
    country_id integer not null references country(id) on delete cascade,
    primary key (release_id, country_id)
);

create table if not exists release_type
(
    id   integer primary key autoincrement,
    name varchar not null unique
);
create table if not exists release_release_type
(
    release_id      integer not null references release(id) on delete cascade,
    release_type_id integer not null references release_type(id) on delete cascade,
    primary key (release_id, release_type_id)
);
`)
	return err
}

func downCreateCatalogSchema(_ context.Context, tx *sql.Tx) error {
	_, err := tx.Exec(`
drop table if exists release_release_type;
drop table if exists release_type;
drop table if exists release_country;
drop table if exists country;
drop table if exists release_label;
drop table if exists label;
drop table if exists track_lyrics;
drop table if exists track_embedded_image_link;
drop table if exists track_cluster;
drop table if exists cluster;
drop table if exists cluster_type;
drop table if exists track_artist_link;
drop table if exists track;
drop table if exists medium;
drop table if exists release;
drop table if exists artist;
drop table if exists artwork;
drop table if exists track_embedded_image;
drop table if exists image;
drop table if exists directory;
drop table if exists media_library;
`)
	return err
}
