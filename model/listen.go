package model

import "time"

// Listen is one scrobble. Like stars, listens carry a per-backend sync state
// so the synchronizer can push them and mark them Synchronized.
type Listen struct {
	ID       ListenID        `structs:"id" db:"id"`
	UserID   UserID          `structs:"user_id" db:"user_id"`
	TrackID  TrackID         `structs:"track_id" db:"track_id"`
	Backend  FeedbackBackend `structs:"backend" db:"backend"`
	DateTime time.Time       `structs:"date_time" db:"date_time"`
	State    SyncState       `structs:"sync_state" db:"sync_state"`
}

type Listens []Listen

type ListenFindParameters struct {
	User    UserID
	Backend *FeedbackBackend
	State   *SyncState
	Range   *Range
}

type ListenRepository interface {
	CountAll() (int64, error)
	Get(id ListenID) (*Listen, error)
	// GetListen finds the unique (user, track, backend, dateTime) row.
	GetListen(userID UserID, trackID TrackID, backend FeedbackBackend, dateTime time.Time) (*Listen, error)
	// GetMostRecent returns the user's latest listen for a backend,
	// regardless of state; ErrNotFound when there is none.
	GetMostRecent(userID UserID, backend FeedbackBackend) (*Listen, error)
	Put(l *Listen) error
	Delete(id ListenID) error
	SetState(id ListenID, state SyncState) error
	FindIDs(params ListenFindParameters) (RangeResults[ListenID], error)
	CountByState(userID UserID, backend FeedbackBackend, state SyncState) (int64, error)
}
