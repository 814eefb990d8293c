package model

import "time"

// Release is an album-level grouping. It owns its Tracks: deleting a release
// cascades to them. Aggregate accessors (duration, date range, track count)
// are computed over the owned tracks at query time.
type Release struct {
	ID                 ReleaseID `structs:"id" db:"id"`
	Name               string    `structs:"name" db:"name"`
	SortName           string    `structs:"sort_name" db:"sort_name"`
	MBID               string    `structs:"mbid" db:"mbid"`
	GroupMBID          string    `structs:"group_mbid" db:"group_mbid"`
	TotalDisc          int       `structs:"total_disc" db:"total_disc"`
	Compilation        bool      `structs:"compilation" db:"compilation"`
	ArtistDisplayName  string    `structs:"artist_display_name" db:"artist_display_name"`
	Barcode            string    `structs:"barcode" db:"barcode"`
	Comment            string    `structs:"comment" db:"comment"`
	PreferredArtworkID ArtworkID `structs:"preferred_artwork_id" db:"preferred_artwork_id"`
}

type Releases []Release

// Medium is one disc of a release. Tracks belong to a medium; deleting the
// release cascades through its media to the tracks.
type Medium struct {
	ID               MediumID  `structs:"id" db:"id"`
	ReleaseID        ReleaseID `structs:"release_id" db:"release_id"`
	Position         int       `structs:"position" db:"position"`
	Name             string    `structs:"name" db:"name"`
	TrackMBIDMatched bool      `structs:"track_mbid_matched" db:"track_mbid_matched"`
}

type Mediums []Medium

// ReleaseAggregates are the derived values a release exposes over its tracks.
type ReleaseAggregates struct {
	TrackCount   int64
	DiscCount    int64
	Duration     float32 // seconds
	Date         string  // earliest track date
	Year         int
	OriginalYear int
}

type ReleaseSortMethod int

const (
	ReleaseSortMethodNone ReleaseSortMethod = iota
	ReleaseSortMethodByName
	ReleaseSortMethodRandom
	ReleaseSortMethodAddedDesc
	ReleaseSortMethodDateAsc
	ReleaseSortMethodDateDesc
	ReleaseSortMethodOriginalDateAsc
	ReleaseSortMethodOriginalDateDesc
)

type ReleaseFindParameters struct {
	Clusters        []ClusterID
	Keywords        []string
	Name            string
	SortMethod      ReleaseSortMethod
	Range           *Range
	WrittenAfter    time.Time
	DateFrom        string // inclusive partial date bound on track dates
	DateTo          string
	StarringUser    UserID
	FeedbackBackend *FeedbackBackend
	Artist          ArtistID
	LinkTypes       []TrackArtistLinkType
	ReleaseType     string
	Label           string
	Library         MediaLibraryID
	ParentDirectory DirectoryID
}

type ReleaseRepository interface {
	CountAll() (int64, error)
	Get(id ReleaseID) (*Release, error)
	Exists(id ReleaseID) (bool, error)
	GetByMBID(mbid string) (Releases, error)
	GetByName(name string) (Releases, error)
	Put(r *Release) error
	Delete(id ReleaseID) error
	UpdatePreferredArtwork(id ReleaseID, artworkID ArtworkID) error

	// Labels, countries and release types are free-form many-to-many tags on
	// the release; Set replaces the full set.
	SetLabels(id ReleaseID, labels []string) error
	GetLabels(id ReleaseID) ([]string, error)
	SetCountries(id ReleaseID, countries []string) error
	GetCountries(id ReleaseID) ([]string, error)
	SetReleaseTypes(id ReleaseID, types []string) error
	GetReleaseTypes(id ReleaseID) ([]string, error)

	PutMedium(m *Medium) error
	GetMediums(id ReleaseID) (Mediums, error)

	GetAggregates(id ReleaseID) (*ReleaseAggregates, error)

	Find(params ReleaseFindParameters) (RangeResults[Release], error)
	FindIDs(params ReleaseFindParameters) (RangeResults[ReleaseID], error)
	FindEach(params ReleaseFindParameters, fn func(*Release) error) error

	FindNextIDRange(lastRetrievedID ReleaseID, count int) (IDRange[ReleaseID], error)
	FindInIDRange(r IDRange[ReleaseID], fn func(*Release) error) error

	// FindOrphanIDs lists releases with zero tracks.
	FindOrphanIDs(r *Range) (RangeResults[ReleaseID], error)
	PurgeOrphans() (int64, error)
}
