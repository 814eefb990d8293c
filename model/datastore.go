package model

import "context"

// DataStore aggregates the repositories over one database handle, or, inside
// WithReadTx/WithWriteTx, over one transaction. Repositories obtained from a
// transactional DataStore are only valid until the callback returns; records
// they produced remain usable (they are plain values), but ids must be
// re-fetched to observe later changes.
type DataStore interface {
	Artist(ctx context.Context) ArtistRepository
	Release(ctx context.Context) ReleaseRepository
	Track(ctx context.Context) TrackRepository
	TrackArtistLink(ctx context.Context) TrackArtistLinkRepository
	Cluster(ctx context.Context) ClusterRepository
	ClusterType(ctx context.Context) ClusterTypeRepository
	TrackList(ctx context.Context) TrackListRepository
	User(ctx context.Context) UserRepository
	AuthToken(ctx context.Context) AuthTokenRepository
	StarredArtist(ctx context.Context) StarredArtistRepository
	StarredRelease(ctx context.Context) StarredReleaseRepository
	StarredTrack(ctx context.Context) StarredTrackRepository
	TrackBookmark(ctx context.Context) TrackBookmarkRepository
	MediaLibrary(ctx context.Context) MediaLibraryRepository
	Directory(ctx context.Context) DirectoryRepository
	Artwork(ctx context.Context) ArtworkRepository
	Image(ctx context.Context) ImageRepository
	TrackEmbeddedImage(ctx context.Context) TrackEmbeddedImageRepository
	TrackLyrics(ctx context.Context) TrackLyricsRepository
	Podcast(ctx context.Context) PodcastRepository
	PodcastEpisode(ctx context.Context) PodcastEpisodeRepository
	Listen(ctx context.Context) ListenRepository
	ScanSettings(ctx context.Context) ScanSettingsRepository

	// WithReadTx runs fn inside a read transaction: a consistent snapshot,
	// concurrent with other readers and with the single writer.
	WithReadTx(ctx context.Context, fn func(tx DataStore) error) error

	// WithWriteTx serializes on the process-wide write gate (acquisition is
	// bounded by the pool timeout, failing with ErrPoolExhausted), then runs
	// fn inside a write transaction. Any error rolls back.
	WithWriteTx(ctx context.Context, fn func(tx DataStore) error) error

	// GC removes orphaned aggregate roots in dependency order, inside one
	// write transaction. Idempotent; the scanner calls it at end-of-scan.
	GC(ctx context.Context) error
}
