package model

// Every entity carries a typed 64-bit identifier assigned by the database on
// first insert. The zero value is invalid and matches nothing; ids are never
// reused for the lifetime of a database file.

type ArtistID int64
type ReleaseID int64
type MediumID int64
type TrackID int64
type TrackArtistLinkID int64
type ClusterID int64
type ClusterTypeID int64
type TrackListID int64
type TrackListEntryID int64
type UserID int64
type AuthTokenID int64
type StarredArtistID int64
type StarredReleaseID int64
type StarredTrackID int64
type TrackBookmarkID int64
type MediaLibraryID int64
type DirectoryID int64
type ArtworkID int64
type ImageID int64
type TrackEmbeddedImageID int64
type TrackEmbeddedImageLinkID int64
type TrackLyricsID int64
type PodcastID int64
type PodcastEpisodeID int64
type ListenID int64
type ScanSettingsID int64

func (id ArtistID) IsValid() bool                 { return id > 0 }
func (id ReleaseID) IsValid() bool                { return id > 0 }
func (id MediumID) IsValid() bool                 { return id > 0 }
func (id TrackID) IsValid() bool                  { return id > 0 }
func (id TrackArtistLinkID) IsValid() bool        { return id > 0 }
func (id ClusterID) IsValid() bool                { return id > 0 }
func (id ClusterTypeID) IsValid() bool            { return id > 0 }
func (id TrackListID) IsValid() bool              { return id > 0 }
func (id TrackListEntryID) IsValid() bool         { return id > 0 }
func (id UserID) IsValid() bool                   { return id > 0 }
func (id AuthTokenID) IsValid() bool              { return id > 0 }
func (id StarredArtistID) IsValid() bool          { return id > 0 }
func (id StarredReleaseID) IsValid() bool         { return id > 0 }
func (id StarredTrackID) IsValid() bool           { return id > 0 }
func (id TrackBookmarkID) IsValid() bool          { return id > 0 }
func (id MediaLibraryID) IsValid() bool           { return id > 0 }
func (id DirectoryID) IsValid() bool              { return id > 0 }
func (id ArtworkID) IsValid() bool                { return id > 0 }
func (id ImageID) IsValid() bool                  { return id > 0 }
func (id TrackEmbeddedImageID) IsValid() bool     { return id > 0 }
func (id TrackEmbeddedImageLinkID) IsValid() bool { return id > 0 }
func (id TrackLyricsID) IsValid() bool            { return id > 0 }
func (id PodcastID) IsValid() bool                { return id > 0 }
func (id PodcastEpisodeID) IsValid() bool         { return id > 0 }
func (id ListenID) IsValid() bool                 { return id > 0 }
func (id ScanSettingsID) IsValid() bool           { return id > 0 }
