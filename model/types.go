package model

// Shared closed enums, persisted as integers. Values are part of the schema:
// append only, never renumber.

// FeedbackBackend identifies the external service that receives stars and
// listens for a user.
type FeedbackBackend int

const (
	FeedbackBackendInternal FeedbackBackend = iota
	FeedbackBackendListenBrainz
)

// SyncState tracks the reconciliation of a star or listen against its
// feedback backend.
type SyncState int

const (
	SyncStatePendingAdd SyncState = iota
	SyncStateSynchronized
	SyncStatePendingRemove
)

// Advisory is the content advisory carried in track tags.
type Advisory int

const (
	AdvisoryUnSet Advisory = iota
	AdvisoryUnknown
	AdvisoryExplicit
	AdvisoryClean
)
