package model

import "time"

// Artwork points at exactly one of an on-disk Image or a TrackEmbeddedImage;
// the other foreign key is null. Deleting the backing row cascades the
// artwork, and every "preferred artwork" holder is set-null by schema.
type Artwork struct {
	ID                   ArtworkID            `structs:"id" db:"id"`
	ImageID              ImageID              `structs:"image_id" db:"image_id"`
	TrackEmbeddedImageID TrackEmbeddedImageID `structs:"track_embedded_image_id" db:"track_embedded_image_id"`
}

type ArtworkKind int

const (
	ArtworkKindImage ArtworkKind = iota
	ArtworkKindEmbedded
)

// Kind reports which side of the artwork is set. Exactly one is, by
// construction.
func (a *Artwork) Kind() ArtworkKind {
	if a.ImageID.IsValid() {
		return ArtworkKindImage
	}
	return ArtworkKindEmbedded
}

// Image is a standalone artwork file found during the scan.
type Image struct {
	ID            ImageID     `structs:"id" db:"id"`
	AbsolutePath  string      `structs:"absolute_path" db:"absolute_path"`
	FileSize      int64       `structs:"file_size" db:"file_size"`
	FileLastWrite time.Time   `structs:"file_last_write" db:"file_last_write"`
	Width         int         `structs:"width" db:"width"`
	Height        int         `structs:"height" db:"height"`
	DirectoryID   DirectoryID `structs:"directory_id" db:"directory_id"`
}

type Images []Image

// TrackEmbeddedImage is an image extracted from an audio container. It is
// deduplicated by content hash across tracks; TrackEmbeddedImageLink records
// which tracks embed it and at which index.
type TrackEmbeddedImage struct {
	ID       TrackEmbeddedImageID `structs:"id" db:"id"`
	Hash     string               `structs:"hash" db:"hash"`
	FileSize int64                `structs:"file_size" db:"file_size"`
	MimeType string               `structs:"mime_type" db:"mime_type"`
	Width    int                  `structs:"width" db:"width"`
	Height   int                  `structs:"height" db:"height"`
}

type TrackEmbeddedImages []TrackEmbeddedImage

type TrackEmbeddedImageLink struct {
	ID          TrackEmbeddedImageLinkID `structs:"id" db:"id"`
	TrackID     TrackID                  `structs:"track_id" db:"track_id"`
	ImageID     TrackEmbeddedImageID     `structs:"track_embedded_image_id" db:"track_embedded_image_id"`
	Index       int                      `structs:"idx" db:"idx"`
	Type        string                   `structs:"type" db:"type"` // front, back, ...
	Description string                   `structs:"description" db:"description"`
}

type TrackEmbeddedImageLinks []TrackEmbeddedImageLink

type ArtworkRepository interface {
	CountAll() (int64, error)
	Get(id ArtworkID) (*Artwork, error)
	GetByImage(id ImageID) (*Artwork, error)
	GetByEmbeddedImage(id TrackEmbeddedImageID) (*Artwork, error)
	// PutForImage / PutForEmbeddedImage create the artwork row for its
	// single backing reference.
	PutForImage(id ImageID) (*Artwork, error)
	PutForEmbeddedImage(id TrackEmbeddedImageID) (*Artwork, error)
	Delete(id ArtworkID) error
}

type ImageRepository interface {
	CountAll() (int64, error)
	Get(id ImageID) (*Image, error)
	GetByPath(absolutePath string) (*Image, error)
	GetForDirectory(directoryID DirectoryID) (Images, error)
	Put(i *Image) error
	Delete(id ImageID) error
}

type TrackEmbeddedImageRepository interface {
	CountAll() (int64, error)
	Get(id TrackEmbeddedImageID) (*TrackEmbeddedImage, error)
	GetByHash(hash string, fileSize int64) (*TrackEmbeddedImage, error)
	Put(i *TrackEmbeddedImage) error
	Delete(id TrackEmbeddedImageID) error

	PutLink(l *TrackEmbeddedImageLink) error
	GetLinksForTrack(trackID TrackID) (TrackEmbeddedImageLinks, error)
	DeleteLinksForTrack(trackID TrackID) error

	// FindOrphanIDs lists embedded images no link references anymore.
	FindOrphanIDs(r *Range) (RangeResults[TrackEmbeddedImageID], error)
	PurgeOrphans() (int64, error)
}
