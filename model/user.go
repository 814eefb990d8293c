package model

import "time"

type UserType int

const (
	UserTypeRegular UserType = iota
	UserTypeAdmin
	UserTypeDemo
)

type TranscodeFormat int

const (
	TranscodeFormatMP3 TranscodeFormat = iota
	TranscodeFormatOggOpus
	TranscodeFormatMatroskaOpus
	TranscodeFormatOggVorbis
	TranscodeFormatWebmVorbis
)

// User owns auth tokens, tracklists, stars and bookmarks; all of them
// cascade when the user is deleted.
type User struct {
	ID           UserID    `structs:"id" db:"id"`
	LoginName    string    `structs:"login_name" db:"login_name"` // unique
	PasswordSalt string    `structs:"password_salt" db:"password_salt"`
	PasswordHash string    `structs:"password_hash" db:"password_hash"`
	LastLogin    time.Time `structs:"last_login" db:"last_login"`
	Type         UserType  `structs:"type" db:"type"`

	TranscodeEnabled bool            `structs:"transcode_enabled" db:"transcode_enabled"`
	TranscodeFormat  TranscodeFormat `structs:"transcode_format" db:"transcode_format"`
	TranscodeBitrate int             `structs:"transcode_bitrate" db:"transcode_bitrate"`

	ScrobblingBackend FeedbackBackend `structs:"scrobbling_backend" db:"scrobbling_backend"`
	FeedbackBackend   FeedbackBackend `structs:"feedback_backend" db:"feedback_backend"`
	ListenBrainzToken string          `structs:"listenbrainz_token" db:"listenbrainz_token"`

	CurPlayingTrackPos int `structs:"cur_playing_track_pos" db:"cur_playing_track_pos"`
}

type Users []User

type UserRepository interface {
	CountAll() (int64, error)
	Get(id UserID) (*User, error)
	GetByLoginName(loginName string) (*User, error)
	GetAll(r *Range) (RangeResults[User], error)
	GetDemoUser() (*User, error)
	Put(u *User) error
	Delete(id UserID) error
}
