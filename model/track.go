package model

import (
	"strconv"
	"time"
)

// Track is one audio file of the library. Ownership: the release, medium and
// directory cascade their deletion to the track; the media library detaches
// (set-null) instead, so a track survives a library reconfiguration.
type Track struct {
	ID                TrackID   `structs:"id" db:"id"`
	ScanVersion       int       `structs:"scan_version" db:"scan_version"`
	AbsoluteFilePath  string    `structs:"absolute_file_path" db:"absolute_file_path"`
	FileSize          int64     `structs:"file_size" db:"file_size"`
	FileLastWrite     time.Time `structs:"file_last_write" db:"file_last_write"`
	FileAdded         time.Time `structs:"file_added" db:"file_added"`
	Name              string    `structs:"name" db:"name"`
	Duration          float32   `structs:"duration" db:"duration"` // seconds
	Bitrate           int       `structs:"bitrate" db:"bitrate"`
	BitsPerSample     int       `structs:"bits_per_sample" db:"bits_per_sample"`
	SampleRate        int       `structs:"sample_rate" db:"sample_rate"`
	ChannelCount      int       `structs:"channel_count" db:"channel_count"`
	TrackNumber       int       `structs:"track_number" db:"track_number"`
	Date              string    `structs:"date" db:"date"`                   // partial date, "2006", "2006-01" or "2006-01-02"
	OriginalDate      string    `structs:"original_date" db:"original_date"` // same encoding
	TrackMBID         string    `structs:"track_mbid" db:"track_mbid"`
	RecordingMBID     string    `structs:"recording_mbid" db:"recording_mbid"`
	Copyright         string    `structs:"copyright" db:"copyright"`
	CopyrightURL      string    `structs:"copyright_url" db:"copyright_url"`
	Advisory          Advisory  `structs:"advisory" db:"advisory"`
	ReplayGain        *float64  `structs:"replay_gain" db:"replay_gain"`
	ArtistDisplayName string    `structs:"artist_display_name" db:"artist_display_name"`
	Comment           string    `structs:"comment" db:"comment"`

	ReleaseID   ReleaseID      `structs:"release_id" db:"release_id"`
	MediumID    MediumID       `structs:"medium_id" db:"medium_id"`
	LibraryID   MediaLibraryID `structs:"media_library_id" db:"media_library_id"`
	DirectoryID DirectoryID    `structs:"directory_id" db:"directory_id"`

	PreferredArtworkID      ArtworkID `structs:"preferred_artwork_id" db:"preferred_artwork_id"`
	PreferredMediaArtworkID ArtworkID `structs:"preferred_media_artwork_id" db:"preferred_media_artwork_id"`
}

// Year parses the leading year of the partial date; 0 when unset. Coercing a
// missing year from the original date is the tag parser's job, not ours.
func (t *Track) Year() int         { return partialDateYear(t.Date) }
func (t *Track) OriginalYear() int { return partialDateYear(t.OriginalDate) }

func partialDateYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return y
}

type Tracks []Track

// FileInfo is the subset the scanner checks to decide whether a file needs
// rescanning.
type FileInfo struct {
	ID            TrackID   `db:"id"`
	FileSize      int64     `db:"file_size"`
	FileLastWrite time.Time `db:"file_last_write"`
	ScanVersion   int       `db:"scan_version"`
}

type TrackSortMethod int

const (
	TrackSortMethodNone TrackSortMethod = iota
	TrackSortMethodByName
	TrackSortMethodAddedDesc
	TrackSortMethodLastWrittenDesc
	TrackSortMethodRandom
	TrackSortMethodTrackList // by tracklist insertion order
	TrackSortMethodRelease   // by disc then track number
	TrackSortMethodDateDescAndRelease
	TrackSortMethodAbsoluteFilePath
)

// TrackFindParameters is the canonical FindParameters record: one optional
// branch per filter dimension, all combinable.
type TrackFindParameters struct {
	Clusters        []ClusterID // must be in all of these
	Keywords        []string    // each must substring-match the name
	Name            string      // exact title
	SortMethod      TrackSortMethod
	Range           *Range
	WrittenAfter    time.Time
	StarringUser    UserID
	FeedbackBackend *FeedbackBackend
	Artist          ArtistID
	ArtistName      string
	LinkTypes       []TrackArtistLinkType // restricts Artist/ArtistName matches
	NonRelease      bool                  // only tracks without a release
	Medium          MediumID
	Release         ReleaseID
	ReleaseName     string
	TrackList       TrackListID
	TrackNumber     *int
	Directory       DirectoryID
	FileSize        *int64
	EmbeddedImage   TrackEmbeddedImageID
	Library         MediaLibraryID
}

type TrackRepository interface {
	CountAll() (int64, error)
	Get(id TrackID) (*Track, error)
	Exists(id TrackID) (bool, error)
	GetByPath(absoluteFilePath string) (*Track, error)
	GetFileInfo(absoluteFilePath string) (*FileInfo, error)
	GetByMBID(mbid string) (Tracks, error)
	GetByRecordingMBID(mbid string) (Tracks, error)
	Put(t *Track) error
	Delete(id TrackID) error

	Find(params TrackFindParameters) (RangeResults[Track], error)
	FindIDs(params TrackFindParameters) (RangeResults[TrackID], error)
	FindEach(params TrackFindParameters, fn func(*Track) error) error

	// Search runs a free-form query supporting field:value operators
	// (artist:, year:, bitrate:...) with the remaining words matched as
	// keywords against the track name.
	Search(query string, rng *Range) (RangeResults[Track], error)

	// Keyset iteration for batch scans. FindFromID visits up to count tracks with
	// id > lastRetrievedID in ascending id order and returns the new cursor.
	FindFromID(lastRetrievedID TrackID, count int, fn func(*Track) error) (TrackID, error)
	FindNextIDRange(lastRetrievedID TrackID, count int) (IDRange[TrackID], error)
	FindInIDRange(r IDRange[TrackID], fn func(*Track) error) error

	// FindIDsWithMBIDDuplicates lists tracks whose track MBID is shared with
	// at least one other track, for the scanner's duplicate report.
	FindIDsWithMBIDDuplicates(r *Range) (RangeResults[TrackID], error)

	// SetClusters replaces the track's tag set.
	SetClusters(id TrackID, clusterIDs []ClusterID) error
	GetClusters(id TrackID) (Clusters, error)

	UpdatePreferredArtwork(id TrackID, artworkID ArtworkID) error
	UpdatePreferredMediaArtwork(id TrackID, artworkID ArtworkID) error
}
