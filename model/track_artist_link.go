package model

// TrackArtistLinkType is the closed set of roles an artist can have on a
// track.
type TrackArtistLinkType int

const (
	TrackArtistLinkTypeArtist TrackArtistLinkType = iota
	TrackArtistLinkTypeReleaseArtist
	TrackArtistLinkTypeComposer
	TrackArtistLinkTypeConductor
	TrackArtistLinkTypeLyricist
	TrackArtistLinkTypeMixer
	TrackArtistLinkTypePerformer
	TrackArtistLinkTypeProducer
	TrackArtistLinkTypeRemixer
	TrackArtistLinkTypeWriter
)

// TrackArtistLink ties a track to an artist with a typed role. Subtype holds
// the free-form part of the role (e.g. a performer's instrument). Deleting
// either the track or the artist cascades the link.
type TrackArtistLink struct {
	ID             TrackArtistLinkID   `structs:"id" db:"id"`
	TrackID        TrackID             `structs:"track_id" db:"track_id"`
	ArtistID       ArtistID            `structs:"artist_id" db:"artist_id"`
	Type           TrackArtistLinkType `structs:"type" db:"type"`
	Subtype        string              `structs:"subtype" db:"subtype"`
	ArtistName     string              `structs:"artist_name" db:"artist_name"`           // raw name as tagged
	ArtistSortName string              `structs:"artist_sort_name" db:"artist_sort_name"` // raw sort name as tagged
	MBIDMatched    bool                `structs:"mbid_matched" db:"mbid_matched"`
}

type TrackArtistLinks []TrackArtistLink

type TrackArtistLinkRepository interface {
	Get(id TrackArtistLinkID) (*TrackArtistLink, error)
	Put(l *TrackArtistLink) error
	Delete(id TrackArtistLinkID) error
	GetForTrack(trackID TrackID, linkTypes ...TrackArtistLinkType) (TrackArtistLinks, error)
	DeleteForTrack(trackID TrackID) error
}
