package model

import (
	"database/sql/driver"
	"fmt"
)

// Ids bind as NULL when invalid and scan NULL back to the invalid zero, so
// nullable foreign-key columns round-trip without sql.Null* wrappers. Code
// that compares ids in SQL (keyset cursors) casts to int64 explicitly
// instead, as the invalid id must stay 0 there, not become NULL.

func idValue(id int64) (driver.Value, error) {
	if id <= 0 {
		return nil, nil
	}
	return id, nil
}

func scanID(dest *int64, value any) error {
	switch v := value.(type) {
	case nil:
		*dest = 0
	case int64:
		*dest = v
	case int:
		*dest = int64(v)
	default:
		return fmt.Errorf("scanning id: unsupported type %T", value)
	}
	return nil
}

func (id ArtistID) Value() (driver.Value, error)                 { return idValue(int64(id)) }
func (id *ArtistID) Scan(v any) error                            { return scanID((*int64)(id), v) }
func (id ReleaseID) Value() (driver.Value, error)                { return idValue(int64(id)) }
func (id *ReleaseID) Scan(v any) error                           { return scanID((*int64)(id), v) }
func (id MediumID) Value() (driver.Value, error)                 { return idValue(int64(id)) }
func (id *MediumID) Scan(v any) error                            { return scanID((*int64)(id), v) }
func (id TrackID) Value() (driver.Value, error)                  { return idValue(int64(id)) }
func (id *TrackID) Scan(v any) error                             { return scanID((*int64)(id), v) }
func (id TrackArtistLinkID) Value() (driver.Value, error)        { return idValue(int64(id)) }
func (id *TrackArtistLinkID) Scan(v any) error                   { return scanID((*int64)(id), v) }
func (id ClusterID) Value() (driver.Value, error)                { return idValue(int64(id)) }
func (id *ClusterID) Scan(v any) error                           { return scanID((*int64)(id), v) }
func (id ClusterTypeID) Value() (driver.Value, error)            { return idValue(int64(id)) }
func (id *ClusterTypeID) Scan(v any) error                       { return scanID((*int64)(id), v) }
func (id TrackListID) Value() (driver.Value, error)              { return idValue(int64(id)) }
func (id *TrackListID) Scan(v any) error                         { return scanID((*int64)(id), v) }
func (id TrackListEntryID) Value() (driver.Value, error)         { return idValue(int64(id)) }
func (id *TrackListEntryID) Scan(v any) error                    { return scanID((*int64)(id), v) }
func (id UserID) Value() (driver.Value, error)                   { return idValue(int64(id)) }
func (id *UserID) Scan(v any) error                              { return scanID((*int64)(id), v) }
func (id AuthTokenID) Value() (driver.Value, error)              { return idValue(int64(id)) }
func (id *AuthTokenID) Scan(v any) error                         { return scanID((*int64)(id), v) }
func (id StarredArtistID) Value() (driver.Value, error)          { return idValue(int64(id)) }
func (id *StarredArtistID) Scan(v any) error                     { return scanID((*int64)(id), v) }
func (id StarredReleaseID) Value() (driver.Value, error)         { return idValue(int64(id)) }
func (id *StarredReleaseID) Scan(v any) error                    { return scanID((*int64)(id), v) }
func (id StarredTrackID) Value() (driver.Value, error)           { return idValue(int64(id)) }
func (id *StarredTrackID) Scan(v any) error                      { return scanID((*int64)(id), v) }
func (id TrackBookmarkID) Value() (driver.Value, error)          { return idValue(int64(id)) }
func (id *TrackBookmarkID) Scan(v any) error                     { return scanID((*int64)(id), v) }
func (id MediaLibraryID) Value() (driver.Value, error)           { return idValue(int64(id)) }
func (id *MediaLibraryID) Scan(v any) error                      { return scanID((*int64)(id), v) }
func (id DirectoryID) Value() (driver.Value, error)              { return idValue(int64(id)) }
func (id *DirectoryID) Scan(v any) error                         { return scanID((*int64)(id), v) }
func (id ArtworkID) Value() (driver.Value, error)                { return idValue(int64(id)) }
func (id *ArtworkID) Scan(v any) error                           { return scanID((*int64)(id), v) }
func (id ImageID) Value() (driver.Value, error)                  { return idValue(int64(id)) }
func (id *ImageID) Scan(v any) error                             { return scanID((*int64)(id), v) }
func (id TrackEmbeddedImageID) Value() (driver.Value, error)     { return idValue(int64(id)) }
func (id *TrackEmbeddedImageID) Scan(v any) error                { return scanID((*int64)(id), v) }
func (id TrackEmbeddedImageLinkID) Value() (driver.Value, error) { return idValue(int64(id)) }
func (id *TrackEmbeddedImageLinkID) Scan(v any) error            { return scanID((*int64)(id), v) }
func (id TrackLyricsID) Value() (driver.Value, error)            { return idValue(int64(id)) }
func (id *TrackLyricsID) Scan(v any) error                       { return scanID((*int64)(id), v) }
func (id PodcastID) Value() (driver.Value, error)                { return idValue(int64(id)) }
func (id *PodcastID) Scan(v any) error                           { return scanID((*int64)(id), v) }
func (id PodcastEpisodeID) Value() (driver.Value, error)         { return idValue(int64(id)) }
func (id *PodcastEpisodeID) Scan(v any) error                    { return scanID((*int64)(id), v) }
func (id ListenID) Value() (driver.Value, error)                 { return idValue(int64(id)) }
func (id *ListenID) Scan(v any) error                            { return scanID((*int64)(id), v) }
func (id ScanSettingsID) Value() (driver.Value, error)           { return idValue(int64(id)) }
func (id *ScanSettingsID) Scan(v any) error                      { return scanID((*int64)(id), v) }
