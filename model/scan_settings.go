package model

import (
	"strings"
	"time"
)

type UpdatePeriod int

const (
	UpdatePeriodNever UpdatePeriod = iota
	UpdatePeriodHourly
	UpdatePeriodDaily
	UpdatePeriodWeekly
	UpdatePeriodMonthly
)

type SimilarityEngineType int

const (
	SimilarityEngineTypeClusters SimilarityEngineType = iota
	SimilarityEngineTypeFeatures
	SimilarityEngineTypeNone
)

// tagListSeparator joins the list-valued settings columns. Inside a value a
// backslash is stored as `\\` and the separator as `\s`, so values may
// themselves contain ";".
const tagListSeparator = ";"

// ScanSettings is a singleton row. Get creates it with defaults on first
// access inside a write transaction.
type ScanSettings struct {
	ID                    ScanSettingsID       `structs:"id" db:"id"`
	AudioScanVersion      int                  `structs:"audio_scan_version" db:"audio_scan_version"`
	ArtistInfoScanVersion int                  `structs:"artist_info_scan_version" db:"artist_info_scan_version"`
	StartTime             time.Duration        `structs:"start_time" db:"start_time"` // offset from midnight
	UpdatePeriod          UpdatePeriod         `structs:"update_period" db:"update_period"`
	SimilarityEngineType  SimilarityEngineType `structs:"similarity_engine_type" db:"similarity_engine_type"`
	ExtraTagsToScan       string               `structs:"extra_tags_to_scan" db:"extra_tags_to_scan"`
	ArtistTagDelimiters   string               `structs:"artist_tag_delimiters" db:"artist_tag_delimiters"`
	DefaultTagDelimiters  string               `structs:"default_tag_delimiters" db:"default_tag_delimiters"`
	ArtistsToNotSplit     string               `structs:"artists_to_not_split" db:"artists_to_not_split"`

	SkipSingleReleasePlayLists   bool `structs:"skip_single_release_playlists" db:"skip_single_release_playlists"`
	AllowMBIDArtistMerge         bool `structs:"allow_mbid_artist_merge" db:"allow_mbid_artist_merge"`
	ArtistImageFallbackToRelease bool `structs:"artist_image_fallback_to_release" db:"artist_image_fallback_to_release"`
}

func splitTagList(s string) []string {
	if s == "" {
		return nil
	}
	values := strings.Split(s, tagListSeparator)
	for i, v := range values {
		values[i] = tagListUnescaper.Replace(v)
	}
	return values
}

var (
	tagListEscaper   = strings.NewReplacer(`\`, `\\`, tagListSeparator, `\s`)
	tagListUnescaper = strings.NewReplacer(`\\`, `\`, `\s`, tagListSeparator)
)

func joinTagList(values []string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = tagListEscaper.Replace(v)
	}
	return strings.Join(escaped, tagListSeparator)
}

func (s *ScanSettings) GetExtraTagsToScan() []string     { return splitTagList(s.ExtraTagsToScan) }
func (s *ScanSettings) GetArtistTagDelimiters() []string { return splitTagList(s.ArtistTagDelimiters) }
func (s *ScanSettings) GetDefaultTagDelimiters() []string {
	return splitTagList(s.DefaultTagDelimiters)
}
func (s *ScanSettings) GetArtistsToNotSplit() []string { return splitTagList(s.ArtistsToNotSplit) }

func (s *ScanSettings) SetExtraTagsToScan(v []string)      { s.ExtraTagsToScan = joinTagList(v) }
func (s *ScanSettings) SetArtistTagDelimiters(v []string)  { s.ArtistTagDelimiters = joinTagList(v) }
func (s *ScanSettings) SetDefaultTagDelimiters(v []string) { s.DefaultTagDelimiters = joinTagList(v) }
func (s *ScanSettings) SetArtistsToNotSplit(v []string)    { s.ArtistsToNotSplit = joinTagList(v) }

type ScanSettingsRepository interface {
	// Get returns the singleton settings row, creating it when missing
	// inside a write transaction; under a read transaction a missing row is
	// ErrNotFound.
	Get() (*ScanSettings, error)
	Put(s *ScanSettings) error
	// IncAudioScanVersion bumps the version that forces a full rescan.
	IncAudioScanVersion() error
}
