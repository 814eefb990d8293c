package persistence

import (
	"context"

	. "github.com/Masterminds/squirrel"

	"github.com/melisma/melisma/model"
)

type artworkRepository struct {
	sqlRepository
}

func newArtworkRepository(ctx context.Context, s *SQLStore) model.ArtworkRepository {
	return &artworkRepository{s.baseRepo(ctx, "artwork")}
}

func (r *artworkRepository) CountAll() (int64, error) {
	return r.count(r.newSelect())
}

func (r *artworkRepository) Get(id model.ArtworkID) (*model.Artwork, error) {
	var res model.Artwork
	err := r.queryOne(r.newSelect().Where(Eq{"id": int64(id)}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *artworkRepository) GetByImage(id model.ImageID) (*model.Artwork, error) {
	var res model.Artwork
	err := r.queryOne(r.newSelect().Where(Eq{"image_id": int64(id)}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *artworkRepository) GetByEmbeddedImage(id model.TrackEmbeddedImageID) (*model.Artwork, error) {
	var res model.Artwork
	err := r.queryOne(r.newSelect().Where(Eq{"track_embedded_image_id": int64(id)}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *artworkRepository) PutForImage(id model.ImageID) (*model.Artwork, error) {
	a := &model.Artwork{ImageID: id}
	newID, err := r.put(0, a)
	if err != nil {
		return nil, err
	}
	a.ID = model.ArtworkID(newID)
	return a, nil
}

func (r *artworkRepository) PutForEmbeddedImage(id model.TrackEmbeddedImageID) (*model.Artwork, error) {
	a := &model.Artwork{TrackEmbeddedImageID: id}
	newID, err := r.put(0, a)
	if err != nil {
		return nil, err
	}
	a.ID = model.ArtworkID(newID)
	return a, nil
}

func (r *artworkRepository) Delete(id model.ArtworkID) error {
	return r.delete(Eq{"id": int64(id)})
}

type imageRepository struct {
	sqlRepository
}

func newImageRepository(ctx context.Context, s *SQLStore) model.ImageRepository {
	return &imageRepository{s.baseRepo(ctx, "image")}
}

func (r *imageRepository) CountAll() (int64, error) {
	return r.count(r.newSelect())
}

func (r *imageRepository) Get(id model.ImageID) (*model.Image, error) {
	var res model.Image
	err := r.queryOne(r.newSelect().Where(Eq{"id": int64(id)}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *imageRepository) GetByPath(absolutePath string) (*model.Image, error) {
	var res model.Image
	err := r.queryOne(r.newSelect().Where(Eq{"absolute_path": absolutePath}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *imageRepository) GetForDirectory(directoryID model.DirectoryID) (model.Images, error) {
	var res model.Images
	err := r.queryAll(r.newSelect().Where(Eq{"directory_id": int64(directoryID)}).OrderBy("id"), &res)
	return res, err
}

func (r *imageRepository) Put(i *model.Image) error {
	id, err := r.put(int64(i.ID), i)
	if err != nil {
		return err
	}
	i.ID = model.ImageID(id)
	return nil
}

func (r *imageRepository) Delete(id model.ImageID) error {
	return r.delete(Eq{"id": int64(id)})
}

type trackEmbeddedImageRepository struct {
	sqlRepository
}

func newTrackEmbeddedImageRepository(ctx context.Context, s *SQLStore) model.TrackEmbeddedImageRepository {
	return &trackEmbeddedImageRepository{s.baseRepo(ctx, "track_embedded_image")}
}

func (r *trackEmbeddedImageRepository) CountAll() (int64, error) {
	return r.count(r.newSelect())
}

func (r *trackEmbeddedImageRepository) Get(id model.TrackEmbeddedImageID) (*model.TrackEmbeddedImage, error) {
	var res model.TrackEmbeddedImage
	err := r.queryOne(r.newSelect().Where(Eq{"id": int64(id)}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *trackEmbeddedImageRepository) GetByHash(hash string, fileSize int64) (*model.TrackEmbeddedImage, error) {
	var res model.TrackEmbeddedImage
	err := r.queryOne(r.newSelect().Where(Eq{"hash": hash, "file_size": fileSize}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *trackEmbeddedImageRepository) Put(i *model.TrackEmbeddedImage) error {
	id, err := r.put(int64(i.ID), i)
	if err != nil {
		return err
	}
	i.ID = model.TrackEmbeddedImageID(id)
	return nil
}

func (r *trackEmbeddedImageRepository) Delete(id model.TrackEmbeddedImageID) error {
	return r.delete(Eq{"id": int64(id)})
}

func (r *trackEmbeddedImageRepository) PutLink(l *model.TrackEmbeddedImageLink) error {
	rl := sqlRepository{ctx: r.ctx, db: r.db, tableName: "track_embedded_image_link", mode: r.mode}
	id, err := rl.put(int64(l.ID), l)
	if err != nil {
		return err
	}
	l.ID = model.TrackEmbeddedImageLinkID(id)
	return nil
}

func (r *trackEmbeddedImageRepository) GetLinksForTrack(trackID model.TrackID) (model.TrackEmbeddedImageLinks, error) {
	var res model.TrackEmbeddedImageLinks
	sq := Select("track_embedded_image_link.*").From("track_embedded_image_link").
		Where(Eq{"track_id": int64(trackID)}).
		OrderBy("idx")
	err := r.queryAll(sq, &res)
	return res, err
}

func (r *trackEmbeddedImageRepository) DeleteLinksForTrack(trackID model.TrackID) error {
	_, err := r.executeSQL(Delete("track_embedded_image_link").Where(Eq{"track_id": int64(trackID)}))
	return err
}

func (r *trackEmbeddedImageRepository) FindOrphanIDs(rng *model.Range) (model.RangeResults[model.TrackEmbeddedImageID], error) {
	sq := r.newSelect("track_embedded_image.id").
		Where(Expr("NOT EXISTS (SELECT 1 FROM track_embedded_image_link l WHERE l.track_embedded_image_id = track_embedded_image.id)")).
		OrderBy("track_embedded_image.id")
	return queryIDPage[model.TrackEmbeddedImageID](r.sqlRepository, sq, rng)
}

func (r *trackEmbeddedImageRepository) PurgeOrphans() (int64, error) {
	return r.deleteCount(Expr("NOT EXISTS (SELECT 1 FROM track_embedded_image_link l WHERE l.track_embedded_image_id = track_embedded_image.id)"))
}

var _ model.ArtworkRepository = (*artworkRepository)(nil)
var _ model.ImageRepository = (*imageRepository)(nil)
var _ model.TrackEmbeddedImageRepository = (*trackEmbeddedImageRepository)(nil)
