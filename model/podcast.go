package model

import "time"

// Podcast is a subscribed RSS feed. The storage layer only persists what the
// podcast service fetched; it knows nothing about HTTP.
type Podcast struct {
	ID            PodcastID `structs:"id" db:"id"`
	URL           string    `structs:"url" db:"url"`
	Title         string    `structs:"title" db:"title"`
	Link          string    `structs:"link" db:"link"`
	Description   string    `structs:"description" db:"description"`
	Language      string    `structs:"language" db:"language"`
	Copyright     string    `structs:"copyright" db:"copyright"`
	LastBuildDate time.Time `structs:"last_build_date" db:"last_build_date"`

	// iTunes extension fields.
	Author     string `structs:"author" db:"author"`
	Category   string `structs:"category" db:"category"`
	Explicit   bool   `structs:"explicit" db:"explicit"`
	ImageURL   string `structs:"image_url" db:"image_url"`
	OwnerEmail string `structs:"owner_email" db:"owner_email"`
	OwnerName  string `structs:"owner_name" db:"owner_name"`
	Subtitle   string `structs:"subtitle" db:"subtitle"`
	Summary    string `structs:"summary" db:"summary"`

	ArtworkID ArtworkID `structs:"artwork_id" db:"artwork_id"`
	// DeleteRequested marks the podcast for removal by the next service
	// pass; actual deletion happens there so on-disk episodes go first.
	DeleteRequested bool `structs:"delete_requested" db:"delete_requested"`
}

type Podcasts []Podcast

type ManualDownloadState int

const (
	ManualDownloadStateNone ManualDownloadState = iota
	ManualDownloadStateDownloadRequested
	ManualDownloadStateDeleteRequested
)

// PodcastEpisode belongs to its podcast (cascade). AudioRelativeFilePath
// stays empty until the episode is downloaded.
type PodcastEpisode struct {
	ID        PodcastEpisodeID `structs:"id" db:"id"`
	PodcastID PodcastID        `structs:"podcast_id" db:"podcast_id"`

	Title       string `structs:"title" db:"title"`
	Link        string `structs:"link" db:"link"`
	Description string `structs:"description" db:"description"`
	Author      string `structs:"author" db:"author"`
	Category    string `structs:"category" db:"category"`
	Explicit    bool   `structs:"explicit" db:"explicit"`
	ImageURL    string `structs:"image_url" db:"image_url"`
	Subtitle    string `structs:"subtitle" db:"subtitle"`
	Summary     string `structs:"summary" db:"summary"`

	EnclosureURL         string `structs:"enclosure_url" db:"enclosure_url"`
	EnclosureContentType string `structs:"enclosure_content_type" db:"enclosure_content_type"`
	EnclosureSize        int64  `structs:"enclosure_size" db:"enclosure_size"`

	PubDate  time.Time `structs:"pub_date" db:"pub_date"`
	Duration float32   `structs:"duration" db:"duration"` // seconds

	AudioRelativeFilePath string              `structs:"audio_relative_file_path" db:"audio_relative_file_path"`
	ManualDownloadState   ManualDownloadState `structs:"manual_download_state" db:"manual_download_state"`

	ArtworkID ArtworkID `structs:"artwork_id" db:"artwork_id"`
}

type PodcastEpisodes []PodcastEpisode

type PodcastEpisodeFindParameters struct {
	Podcast             PodcastID
	ManualDownloadState *ManualDownloadState
	Downloaded          *bool // filter on AudioRelativeFilePath presence
	Range               *Range
	SortDescending      bool // by pub date
}

type PodcastRepository interface {
	CountAll() (int64, error)
	Get(id PodcastID) (*Podcast, error)
	GetByURL(url string) (*Podcast, error)
	GetAll(r *Range) (RangeResults[Podcast], error)
	Put(p *Podcast) error
	Delete(id PodcastID) error
	SetDeleteRequested(id PodcastID, requested bool) error
}

type PodcastEpisodeRepository interface {
	CountAll() (int64, error)
	Get(id PodcastEpisodeID) (*PodcastEpisode, error)
	GetByEnclosureURL(podcastID PodcastID, url string) (*PodcastEpisode, error)
	Put(e *PodcastEpisode) error
	Delete(id PodcastEpisodeID) error

	Find(params PodcastEpisodeFindParameters) (RangeResults[PodcastEpisode], error)
	SetManualDownloadState(id PodcastEpisodeID, state ManualDownloadState) error
	SetAudioRelativeFilePath(id PodcastEpisodeID, path string) error
}
