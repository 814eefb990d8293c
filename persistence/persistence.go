package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pocketbase/dbx"

	"github.com/melisma/melisma/conf"
	"github.com/melisma/melisma/log"
	"github.com/melisma/melisma/model"
)

type txMode int

const (
	txNone txMode = iota
	txRead
	txWrite
)

// SQLStore implements model.DataStore over a dbx connection pool. Inside
// WithReadTx/WithWriteTx the callback receives a child store bound to the
// transaction; repositories created from it run their statements there.
type SQLStore struct {
	db   dbx.Builder
	conn *dbx.DB // nil on transactional children
	mode txMode
	gate *writeGate
}

func New(conn *dbx.DB) model.DataStore {
	return &SQLStore{db: conn, conn: conn, mode: txNone, gate: newWriteGate()}
}

// writeGate serializes writers process-wide. SQLite only admits one writer
// at a time even under WAL; queueing in the application keeps the backend
// from churning on busy errors and gives us a precise starvation timeout.
type writeGate struct {
	ch chan struct{}
}

func newWriteGate() *writeGate {
	g := &writeGate{ch: make(chan struct{}, 1)}
	g.ch <- struct{}{}
	return g
}

func (g *writeGate) acquire(ctx context.Context, timeout time.Duration) error {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-g.ch:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", model.ErrPoolExhausted, ctx.Err())
	case <-t.C:
		return fmt.Errorf("%w: write transaction not acquired within %s", model.ErrPoolExhausted, timeout)
	}
}

func (g *writeGate) release() {
	g.ch <- struct{}{}
}

func (s *SQLStore) WithReadTx(ctx context.Context, fn func(tx model.DataStore) error) error {
	return s.withTx(ctx, txRead, fn)
}

func (s *SQLStore) WithWriteTx(ctx context.Context, fn func(tx model.DataStore) error) error {
	if s.mode != txNone {
		return errors.New("nested transaction on the same session")
	}
	start := time.Now()
	if err := s.gate.acquire(ctx, conf.Server.DbPoolTimeout); err != nil {
		return err
	}
	defer s.gate.release()
	if waited := time.Since(start); waited > time.Second {
		log.Warn(ctx, "Write transaction queued behind the write gate", "waited", waited)
	}
	return s.withTx(ctx, txWrite, fn)
}

func (s *SQLStore) withTx(ctx context.Context, mode txMode, fn func(tx model.DataStore) error) error {
	if s.mode != txNone {
		return errors.New("nested transaction on the same session")
	}
	err := s.conn.TransactionalContext(ctx, nil, func(tx *dbx.Tx) error {
		child := &SQLStore{db: tx, mode: mode, gate: s.gate}
		return fn(child)
	})
	return translateError(err)
}

// GC removes orphaned aggregate roots: artists losing their last link,
// clusters losing their last track, cluster types losing their last cluster,
// empty releases, empty directories (bottom-up, repeated) and unreferenced
// embedded images. Runs in one write transaction, so an aborted sweep
// deletes nothing and the next scan retries.
func (s *SQLStore) GC(ctx context.Context) error {
	return s.WithWriteTx(ctx, func(tx model.DataStore) error {
		var res *multierror.Error
		sweep := func(name string, fn func() (int64, error)) {
			c, err := fn()
			if err != nil {
				res = multierror.Append(res, fmt.Errorf("collecting orphan %s: %w", name, err))
				return
			}
			if c > 0 {
				log.Debug(ctx, "Purged orphaned rows", "entity", name, "totalDeleted", c)
			}
		}
		sweep("artists", tx.Artist(ctx).PurgeOrphans)
		sweep("clusters", tx.Cluster(ctx).PurgeOrphans)
		sweep("cluster types", tx.ClusterType(ctx).PurgeOrphans)
		sweep("releases", tx.Release(ctx).PurgeOrphans)
		sweep("directories", tx.Directory(ctx).PurgeOrphans)
		sweep("embedded images", tx.TrackEmbeddedImage(ctx).PurgeOrphans)
		return res.ErrorOrNil()
	})
}

// RetryOnConflict reruns fn while it fails with ErrTransactionConflict,
// backing off linearly between attempts. fn is expected to open its own
// transaction; this is the only place the layer catches that error.
func RetryOnConflict(ctx context.Context, attempts int, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if !errors.Is(err, model.ErrTransactionConflict) {
			return err
		}
		log.Debug(ctx, "Retrying conflicting transaction", "attempt", i+1)
		select {
		case <-ctx.Done():
			return err
		case <-time.After(time.Duration(i+1) * 10 * time.Millisecond):
		}
	}
	return err
}

func (s *SQLStore) baseRepo(ctx context.Context, tableName string) sqlRepository {
	return sqlRepository{ctx: ctx, db: s.db, tableName: tableName, mode: s.mode}
}

func (s *SQLStore) Artist(ctx context.Context) model.ArtistRepository {
	return newArtistRepository(ctx, s)
}

func (s *SQLStore) Release(ctx context.Context) model.ReleaseRepository {
	return newReleaseRepository(ctx, s)
}

func (s *SQLStore) Track(ctx context.Context) model.TrackRepository {
	return newTrackRepository(ctx, s)
}

func (s *SQLStore) TrackArtistLink(ctx context.Context) model.TrackArtistLinkRepository {
	return newTrackArtistLinkRepository(ctx, s)
}

func (s *SQLStore) Cluster(ctx context.Context) model.ClusterRepository {
	return newClusterRepository(ctx, s)
}

func (s *SQLStore) ClusterType(ctx context.Context) model.ClusterTypeRepository {
	return newClusterTypeRepository(ctx, s)
}

func (s *SQLStore) TrackList(ctx context.Context) model.TrackListRepository {
	return newTrackListRepository(ctx, s)
}

func (s *SQLStore) User(ctx context.Context) model.UserRepository {
	return newUserRepository(ctx, s)
}

func (s *SQLStore) AuthToken(ctx context.Context) model.AuthTokenRepository {
	return newAuthTokenRepository(ctx, s)
}

func (s *SQLStore) StarredArtist(ctx context.Context) model.StarredArtistRepository {
	return newStarredArtistRepository(ctx, s)
}

func (s *SQLStore) StarredRelease(ctx context.Context) model.StarredReleaseRepository {
	return newStarredReleaseRepository(ctx, s)
}

func (s *SQLStore) StarredTrack(ctx context.Context) model.StarredTrackRepository {
	return newStarredTrackRepository(ctx, s)
}

func (s *SQLStore) TrackBookmark(ctx context.Context) model.TrackBookmarkRepository {
	return newTrackBookmarkRepository(ctx, s)
}

func (s *SQLStore) MediaLibrary(ctx context.Context) model.MediaLibraryRepository {
	return newMediaLibraryRepository(ctx, s)
}

func (s *SQLStore) Directory(ctx context.Context) model.DirectoryRepository {
	return newDirectoryRepository(ctx, s)
}

func (s *SQLStore) Artwork(ctx context.Context) model.ArtworkRepository {
	return newArtworkRepository(ctx, s)
}

func (s *SQLStore) Image(ctx context.Context) model.ImageRepository {
	return newImageRepository(ctx, s)
}

func (s *SQLStore) TrackEmbeddedImage(ctx context.Context) model.TrackEmbeddedImageRepository {
	return newTrackEmbeddedImageRepository(ctx, s)
}

func (s *SQLStore) TrackLyrics(ctx context.Context) model.TrackLyricsRepository {
	return newTrackLyricsRepository(ctx, s)
}

func (s *SQLStore) Podcast(ctx context.Context) model.PodcastRepository {
	return newPodcastRepository(ctx, s)
}

func (s *SQLStore) PodcastEpisode(ctx context.Context) model.PodcastEpisodeRepository {
	return newPodcastEpisodeRepository(ctx, s)
}

func (s *SQLStore) Listen(ctx context.Context) model.ListenRepository {
	return newListenRepository(ctx, s)
}

func (s *SQLStore) ScanSettings(ctx context.Context) model.ScanSettingsRepository {
	return newScanSettingsRepository(ctx, s)
}

var _ model.DataStore = (*SQLStore)(nil)
