package persistence

import (
	"context"

	. "github.com/Masterminds/squirrel"

	"github.com/melisma/melisma/model"
)

type clusterRepository struct {
	sqlRepository
}

func newClusterRepository(ctx context.Context, s *SQLStore) model.ClusterRepository {
	return &clusterRepository{s.baseRepo(ctx, "cluster")}
}

func (r *clusterRepository) CountAll() (int64, error) {
	return r.count(r.newSelect())
}

func (r *clusterRepository) Get(id model.ClusterID) (*model.Cluster, error) {
	var res model.Cluster
	err := r.queryOne(r.newSelect().Where(Eq{"cluster.id": int64(id)}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *clusterRepository) GetByName(typeID model.ClusterTypeID, name string) (*model.Cluster, error) {
	var res model.Cluster
	err := r.queryOne(r.newSelect().Where(Eq{"cluster_type_id": int64(typeID), "name": name}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *clusterRepository) Put(c *model.Cluster) error {
	id, err := r.put(int64(c.ID), c)
	if err != nil {
		return err
	}
	c.ID = model.ClusterID(id)
	return nil
}

func (r *clusterRepository) Delete(id model.ClusterID) error {
	return r.delete(Eq{"id": int64(id)})
}

func (r *clusterRepository) Find(p model.ClusterFindParameters) (model.RangeResults[model.Cluster], error) {
	sq := r.newSelect()
	if p.Type.IsValid() {
		sq = sq.Where(Eq{"cluster.cluster_type_id": int64(p.Type)})
	}
	if p.TypeName != "" {
		sq = sq.Where(Expr("cluster.cluster_type_id IN (SELECT id FROM cluster_type WHERE name = ?)", p.TypeName))
	}
	if p.Track.IsValid() {
		sq = sq.Where(Expr("cluster.id IN (SELECT cluster_id FROM track_cluster WHERE track_id = ?)", int64(p.Track)))
	}
	if p.Release.IsValid() {
		sq = sq.Where(Expr(
			"cluster.id IN (SELECT tc.cluster_id FROM track_cluster tc JOIN track t ON t.id = tc.track_id WHERE t.release_id = ?)",
			int64(p.Release)))
	}
	sq = sq.OrderBy("cluster.cluster_type_id", "cluster.name")
	return queryPage[model.Cluster](r.sqlRepository, sq, p.Range)
}

func (r *clusterRepository) GetTrackCount(id model.ClusterID) (int64, error) {
	var res countRow
	err := r.queryOne(Select("count(*) as c").From("track_cluster").Where(Eq{"cluster_id": int64(id)}), &res)
	return res.C, err
}

func (r *clusterRepository) FindOrphanIDs(rng *model.Range) (model.RangeResults[model.ClusterID], error) {
	sq := r.newSelect("cluster.id").
		Where(Expr("NOT EXISTS (SELECT 1 FROM track_cluster WHERE track_cluster.cluster_id = cluster.id)")).
		OrderBy("cluster.id")
	return queryIDPage[model.ClusterID](r.sqlRepository, sq, rng)
}

func (r *clusterRepository) PurgeOrphans() (int64, error) {
	return r.deleteCount(Expr("NOT EXISTS (SELECT 1 FROM track_cluster WHERE track_cluster.cluster_id = cluster.id)"))
}

type clusterTypeRepository struct {
	sqlRepository
}

func newClusterTypeRepository(ctx context.Context, s *SQLStore) model.ClusterTypeRepository {
	return &clusterTypeRepository{s.baseRepo(ctx, "cluster_type")}
}

func (r *clusterTypeRepository) CountAll() (int64, error) {
	return r.count(r.newSelect())
}

func (r *clusterTypeRepository) Get(id model.ClusterTypeID) (*model.ClusterType, error) {
	var res model.ClusterType
	err := r.queryOne(r.newSelect().Where(Eq{"cluster_type.id": int64(id)}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *clusterTypeRepository) GetByName(name string) (*model.ClusterType, error) {
	var res model.ClusterType
	err := r.queryOne(r.newSelect().Where(Eq{"name": name}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *clusterTypeRepository) GetAll(rng *model.Range) (model.RangeResults[model.ClusterType], error) {
	return queryPage[model.ClusterType](r.sqlRepository, r.newSelect().OrderBy("name"), rng)
}

func (r *clusterTypeRepository) Put(t *model.ClusterType) error {
	id, err := r.put(int64(t.ID), t)
	if err != nil {
		return err
	}
	t.ID = model.ClusterTypeID(id)
	return nil
}

func (r *clusterTypeRepository) Delete(id model.ClusterTypeID) error {
	return r.delete(Eq{"id": int64(id)})
}

func (r *clusterTypeRepository) FindOrphanIDs(rng *model.Range) (model.RangeResults[model.ClusterTypeID], error) {
	sq := r.newSelect("cluster_type.id").
		Where(Expr("NOT EXISTS (SELECT 1 FROM cluster WHERE cluster.cluster_type_id = cluster_type.id)")).
		OrderBy("cluster_type.id")
	return queryIDPage[model.ClusterTypeID](r.sqlRepository, sq, rng)
}

func (r *clusterTypeRepository) PurgeOrphans() (int64, error) {
	return r.deleteCount(Expr("NOT EXISTS (SELECT 1 FROM cluster WHERE cluster.cluster_type_id = cluster_type.id)"))
}

var _ model.ClusterRepository = (*clusterRepository)(nil)
var _ model.ClusterTypeRepository = (*clusterTypeRepository)(nil)
