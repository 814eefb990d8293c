package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateUserTables, downCreateUserTables)
}

func upCreateUserTables(_ context.Context, tx *sql.Tx) error {
	_, err := tx.Exec(`
create table if not exists user
(
    id                    integer primary key autoincrement,
    login_name            varchar not null unique,
    password_salt         varchar default '' not null,
    password_hash         varchar default '' not null,
    last_login            datetime,
    type                  integer default 0 not null,
    transcode_enabled     bool default false not null,
    transcode_format      integer default 0 not null,
    transcode_bitrate     integer default 0 not null,
    scrobbling_backend    integer default 0 not null,
    feedback_backend      integer default 0 not null,
    listenbrainz_token    varchar default '' not null,
    cur_playing_track_pos integer default 0 not null
);

create table if not exists auth_token
(
    id      integer primary key autoincrement,
    value   varchar not null unique,
    expiry  datetime not null,
    user_id integer not null references user(id) on delete cascade
);
create index if not exists auth_token_user_idx on auth_token(user_id);
create index if not exists auth_token_expiry_idx on auth_token(expiry);

create table if not exists tracklist
(
    id            integer primary key autoincrement,
    name          varchar not null,
    type          integer default 0 not null,
    public        bool default false not null,
    user_id       integer not null references user(id) on delete cascade,
    last_modified datetime
);
create index if not exists tracklist_user_idx on tracklist(user_id);
create index if not exists tracklist_user_type_idx on tracklist(user_id, type);

create table if not exists tracklist_entry
(
    id           integer primary key autoincrement,
    tracklist_id integer not null references tracklist(id) on delete cascade,
    track_id     integer not null references track(id) on delete cascade,
    date_time    datetime
);
create index if not exists tracklist_entry_tracklist_idx on tracklist_entry(tracklist_id);
create index if not exists tracklist_entry_track_idx on tracklist_entry(track_id);

create table if not exists starred_artist
(
    id         integer primary key autoincrement,
    user_id    integer not null references user(id) on delete cascade,
    artist_id  integer not null references artist(id) on delete cascade,
    backend    integer default 0 not null,
    date_time  datetime,
    sync_state integer default 0 not null,
    unique (user_id, artist_id, backend)
);

create table if not exists starred_release
(
    id         integer primary key autoincrement,
    user_id    integer not null references user(id) on delete cascade,
    release_id integer not null references release(id) on delete cascade,
    backend    integer default 0 not null,
    date_time  datetime,
    sync_state integer default 0 not null,
    unique (user_id, release_id, backend)
);

create table if not exists starred_track
(
    id         integer primary key autoincrement,
    user_id    integer not null references user(id) on delete cascade,
    track_id   integer not null references track(id) on delete cascade,
    backend    integer default 0 not null,
    date_time  datetime,
    sync_state integer default 0 not null,
    unique (user_id, track_id, backend)
);

create table if not exists track_bookmark
(
    id        integer primary key autoincrement,
    user_id   integer not null references user(id) on delete cascade,
    track_id  integer not null references track(id) on delete cascade,
    offset_ms integer default 0 not null,
    comment   varchar default '' not null,
    unique (user_id, track_id)
);

create table if not exists listen
(
    id         integer primary key autoincrement,
    user_id    integer not null references user(id) on delete cascade,
    track_id   integer not null references track(id) on delete cascade,
    backend    integer default 0 not null,
    date_time  datetime not null,
    sync_state integer default 0 not null,
    unique (user_id, track_id, backend, date_time)
);
create index if not exists listen_user_backend_idx on listen(user_id, backend, sync_state);
`)
	return err
}

func downCreateUserTables(_ context.Context, tx *sql.Tx) error {
	_, err := tx.Exec(`
drop table if exists listen;
drop table if exists track_bookmark;
drop table if exists starred_track;
drop table if exists starred_release;
drop table if exists starred_artist;
drop table if exists tracklist_entry;
drop table if exists tracklist;
drop table if exists auth_token;
drop table if exists user;
`)
	return err
}
