package model

import "time"

// Artist is created by the scanner the first time a tag references it and is
// only ever removed by orphan collection, once no TrackArtistLink points at
// it anymore.
type Artist struct {
	ID                 ArtistID  `structs:"id" db:"id"`
	Name               string    `structs:"name" db:"name"`
	SortName           string    `structs:"sort_name" db:"sort_name"`
	MBID               string    `structs:"mbid" db:"mbid"`
	PreferredArtworkID ArtworkID `structs:"preferred_artwork_id" db:"preferred_artwork_id"`
}

// MaxNameLength bounds Name and SortName; longer tag values are truncated by
// the scanner before they reach this layer.
const MaxNameLength = 512

type Artists []Artist

type ArtistSortMethod int

const (
	ArtistSortMethodNone ArtistSortMethod = iota
	ArtistSortMethodByName
	ArtistSortMethodBySortName
	ArtistSortMethodRandom
	ArtistSortMethodLastWrittenDesc
)

// ArtistFindParameters enumerates every filter the artist listing supports.
// Unset fields (zero values, nil pointers) do not constrain the query.
type ArtistFindParameters struct {
	Clusters        []ClusterID // tracks of the artist must be in all of these
	Keywords        []string    // each must substring-match name or sort name
	Name            string      // exact name
	SortMethod      ArtistSortMethod
	Range           *Range
	WrittenAfter    time.Time        // only artists with a track written after this
	StarringUser    UserID           // only artists starred by this user...
	FeedbackBackend *FeedbackBackend //   ...for this backend
	LinkTypes       []TrackArtistLinkType
	TrackList       TrackListID // only artists appearing in this tracklist
	Library         MediaLibraryID
	MBIDExists      *bool
}

type ArtistRepository interface {
	// CountAll is advisory: it may disagree with pagination results under
	// concurrent writes.
	CountAll() (int64, error)
	Get(id ArtistID) (*Artist, error)
	Exists(id ArtistID) (bool, error)
	GetByMBID(mbid string) (Artists, error)
	GetByName(name string) (Artists, error)
	Put(a *Artist) error
	Delete(id ArtistID) error
	UpdatePreferredArtwork(id ArtistID, artworkID ArtworkID) error

	Find(params ArtistFindParameters) (RangeResults[Artist], error)
	FindIDs(params ArtistFindParameters) (RangeResults[ArtistID], error)
	FindEach(params ArtistFindParameters, fn func(*Artist) error) error

	// GetReleaseCount counts distinct releases the artist appears on through
	// any of the given link types (all types when empty).
	GetReleaseCount(id ArtistID, linkTypes ...TrackArtistLinkType) (int64, error)

	// FindOrphanIDs lists artists no TrackArtistLink references anymore.
	FindOrphanIDs(r *Range) (RangeResults[ArtistID], error)
	PurgeOrphans() (int64, error)
}
