package persistence

import (
	"context"

	. "github.com/Masterminds/squirrel"

	"github.com/melisma/melisma/model"
)

type mediaLibraryRepository struct {
	sqlRepository
}

func newMediaLibraryRepository(ctx context.Context, s *SQLStore) model.MediaLibraryRepository {
	return &mediaLibraryRepository{s.baseRepo(ctx, "media_library")}
}

func (r *mediaLibraryRepository) GetAll() (model.MediaLibraries, error) {
	var res model.MediaLibraries
	err := r.queryAll(r.newSelect().OrderBy("id"), &res)
	return res, err
}

func (r *mediaLibraryRepository) Get(id model.MediaLibraryID) (*model.MediaLibrary, error) {
	var res model.MediaLibrary
	err := r.queryOne(r.newSelect().Where(Eq{"id": int64(id)}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *mediaLibraryRepository) GetByPath(path string) (*model.MediaLibrary, error) {
	var res model.MediaLibrary
	err := r.queryOne(r.newSelect().Where(Eq{"path": path}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *mediaLibraryRepository) Put(l *model.MediaLibrary) error {
	id, err := r.put(int64(l.ID), l)
	if err != nil {
		return err
	}
	l.ID = model.MediaLibraryID(id)
	return nil
}

func (r *mediaLibraryRepository) Delete(id model.MediaLibraryID) error {
	return r.delete(Eq{"id": int64(id)})
}

type directoryRepository struct {
	sqlRepository
}

func newDirectoryRepository(ctx context.Context, s *SQLStore) model.DirectoryRepository {
	return &directoryRepository{s.baseRepo(ctx, "directory")}
}

func (r *directoryRepository) CountAll() (int64, error) {
	return r.count(r.newSelect())
}

func (r *directoryRepository) Get(id model.DirectoryID) (*model.Directory, error) {
	var res model.Directory
	err := r.queryOne(r.newSelect().Where(Eq{"directory.id": int64(id)}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *directoryRepository) GetByPath(absolutePath string) (*model.Directory, error) {
	var res model.Directory
	err := r.queryOne(r.newSelect().Where(Eq{"absolute_path": absolutePath}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *directoryRepository) Put(d *model.Directory) error {
	id, err := r.put(int64(d.ID), d)
	if err != nil {
		return err
	}
	d.ID = model.DirectoryID(id)
	return nil
}

func (r *directoryRepository) Delete(id model.DirectoryID) error {
	return r.delete(Eq{"id": int64(id)})
}

func (r *directoryRepository) Find(p model.DirectoryFindParameters) (model.RangeResults[model.Directory], error) {
	sq := r.newSelect()
	if p.Library.IsValid() {
		sq = sq.Where(Eq{"directory.media_library_id": int64(p.Library)})
	}
	if p.Parent.IsValid() {
		sq = sq.Where(Eq{"directory.parent_directory_id": int64(p.Parent)})
	}
	if len(p.Keywords) > 0 {
		sq = sq.Where(keywordFilter([]string{"directory.name"}, p.Keywords))
	}
	sq = sq.OrderBy("directory.name collate nocase", "directory.id")
	return queryPage[model.Directory](r.sqlRepository, sq, p.Range)
}

const directoryOrphanCond = `NOT EXISTS (SELECT 1 FROM track WHERE track.directory_id = directory.id)
	AND NOT EXISTS (SELECT 1 FROM directory child WHERE child.parent_directory_id = directory.id)
	AND NOT EXISTS (SELECT 1 FROM image WHERE image.directory_id = directory.id)`

func (r *directoryRepository) FindOrphanIDs(rng *model.Range) (model.RangeResults[model.DirectoryID], error) {
	sq := r.newSelect("directory.id").Where(Expr(directoryOrphanCond)).OrderBy("directory.id")
	return queryIDPage[model.DirectoryID](r.sqlRepository, sq, rng)
}

// PurgeOrphans repeats the sweep until it converges, since removing a leaf
// can orphan its parent.
func (r *directoryRepository) PurgeOrphans() (int64, error) {
	var total int64
	for {
		c, err := r.deleteCount(Expr(directoryOrphanCond))
		if err != nil {
			return total, err
		}
		total += c
		if c == 0 {
			return total, nil
		}
	}
}

var _ model.MediaLibraryRepository = (*mediaLibraryRepository)(nil)
var _ model.DirectoryRepository = (*directoryRepository)(nil)
