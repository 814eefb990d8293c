package model

import "time"

// Stars follow a small per-backend state machine: created as PendingAdd,
// moved to Synchronized once the backend acknowledged them, to PendingRemove
// on unstar, and deleted by the synchronizer after the removal is pushed.

type StarredArtist struct {
	ID       StarredArtistID `structs:"id" db:"id"`
	UserID   UserID          `structs:"user_id" db:"user_id"`
	ArtistID ArtistID        `structs:"artist_id" db:"artist_id"`
	Backend  FeedbackBackend `structs:"backend" db:"backend"`
	DateTime time.Time       `structs:"date_time" db:"date_time"`
	State    SyncState       `structs:"sync_state" db:"sync_state"`
}

type StarredRelease struct {
	ID        StarredReleaseID `structs:"id" db:"id"`
	UserID    UserID           `structs:"user_id" db:"user_id"`
	ReleaseID ReleaseID        `structs:"release_id" db:"release_id"`
	Backend   FeedbackBackend  `structs:"backend" db:"backend"`
	DateTime  time.Time        `structs:"date_time" db:"date_time"`
	State     SyncState        `structs:"sync_state" db:"sync_state"`
}

type StarredTrack struct {
	ID       StarredTrackID  `structs:"id" db:"id"`
	UserID   UserID          `structs:"user_id" db:"user_id"`
	TrackID  TrackID         `structs:"track_id" db:"track_id"`
	Backend  FeedbackBackend `structs:"backend" db:"backend"`
	DateTime time.Time       `structs:"date_time" db:"date_time"`
	State    SyncState       `structs:"sync_state" db:"sync_state"`
}

type StarredArtists []StarredArtist
type StarredReleases []StarredRelease
type StarredTracks []StarredTrack

type StarredFindParameters struct {
	User    UserID
	Backend *FeedbackBackend
	State   *SyncState
	Range   *Range
}

type StarredArtistRepository interface {
	Get(id StarredArtistID) (*StarredArtist, error)
	GetStar(userID UserID, artistID ArtistID, backend FeedbackBackend) (*StarredArtist, error)
	Put(s *StarredArtist) error
	Delete(id StarredArtistID) error
	SetState(id StarredArtistID, state SyncState) error
	FindIDs(params StarredFindParameters) (RangeResults[StarredArtistID], error)
}

type StarredReleaseRepository interface {
	Get(id StarredReleaseID) (*StarredRelease, error)
	GetStar(userID UserID, releaseID ReleaseID, backend FeedbackBackend) (*StarredRelease, error)
	Put(s *StarredRelease) error
	Delete(id StarredReleaseID) error
	SetState(id StarredReleaseID, state SyncState) error
	FindIDs(params StarredFindParameters) (RangeResults[StarredReleaseID], error)
}

type StarredTrackRepository interface {
	Get(id StarredTrackID) (*StarredTrack, error)
	GetStar(userID UserID, trackID TrackID, backend FeedbackBackend) (*StarredTrack, error)
	Put(s *StarredTrack) error
	Delete(id StarredTrackID) error
	SetState(id StarredTrackID, state SyncState) error
	FindIDs(params StarredFindParameters) (RangeResults[StarredTrackID], error)
}
