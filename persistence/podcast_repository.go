package persistence

import (
	"context"

	. "github.com/Masterminds/squirrel"

	"github.com/melisma/melisma/model"
)

type podcastRepository struct {
	sqlRepository
}

func newPodcastRepository(ctx context.Context, s *SQLStore) model.PodcastRepository {
	return &podcastRepository{s.baseRepo(ctx, "podcast")}
}

func (r *podcastRepository) CountAll() (int64, error) {
	return r.count(r.newSelect())
}

func (r *podcastRepository) Get(id model.PodcastID) (*model.Podcast, error) {
	var res model.Podcast
	err := r.queryOne(r.newSelect().Where(Eq{"id": int64(id)}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *podcastRepository) GetByURL(url string) (*model.Podcast, error) {
	var res model.Podcast
	err := r.queryOne(r.newSelect().Where(Eq{"url": url}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *podcastRepository) GetAll(rng *model.Range) (model.RangeResults[model.Podcast], error) {
	return queryPage[model.Podcast](r.sqlRepository, r.newSelect().OrderBy("title collate nocase", "id"), rng)
}

func (r *podcastRepository) Put(p *model.Podcast) error {
	id, err := r.put(int64(p.ID), p)
	if err != nil {
		return err
	}
	p.ID = model.PodcastID(id)
	return nil
}

func (r *podcastRepository) Delete(id model.PodcastID) error {
	return r.delete(Eq{"id": int64(id)})
}

func (r *podcastRepository) SetDeleteRequested(id model.PodcastID, requested bool) error {
	_, err := r.executeSQL(Update(r.tableName).Set("delete_requested", requested).Where(Eq{"id": int64(id)}))
	return err
}

type podcastEpisodeRepository struct {
	sqlRepository
}

func newPodcastEpisodeRepository(ctx context.Context, s *SQLStore) model.PodcastEpisodeRepository {
	return &podcastEpisodeRepository{s.baseRepo(ctx, "podcast_episode")}
}

func (r *podcastEpisodeRepository) CountAll() (int64, error) {
	return r.count(r.newSelect())
}

func (r *podcastEpisodeRepository) Get(id model.PodcastEpisodeID) (*model.PodcastEpisode, error) {
	var res model.PodcastEpisode
	err := r.queryOne(r.newSelect().Where(Eq{"id": int64(id)}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *podcastEpisodeRepository) GetByEnclosureURL(podcastID model.PodcastID, url string) (*model.PodcastEpisode, error) {
	var res model.PodcastEpisode
	err := r.queryOne(r.newSelect().Where(Eq{
		"podcast_id":    int64(podcastID),
		"enclosure_url": url,
	}), &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *podcastEpisodeRepository) Put(e *model.PodcastEpisode) error {
	id, err := r.put(int64(e.ID), e)
	if err != nil {
		return err
	}
	e.ID = model.PodcastEpisodeID(id)
	return nil
}

func (r *podcastEpisodeRepository) Delete(id model.PodcastEpisodeID) error {
	return r.delete(Eq{"id": int64(id)})
}

func (r *podcastEpisodeRepository) Find(p model.PodcastEpisodeFindParameters) (model.RangeResults[model.PodcastEpisode], error) {
	sq := r.newSelect()
	if p.Podcast.IsValid() {
		sq = sq.Where(Eq{"podcast_id": int64(p.Podcast)})
	}
	if p.ManualDownloadState != nil {
		sq = sq.Where(Eq{"manual_download_state": int(*p.ManualDownloadState)})
	}
	if p.Downloaded != nil {
		if *p.Downloaded {
			sq = sq.Where(NotEq{"audio_relative_file_path": ""})
		} else {
			sq = sq.Where(Eq{"audio_relative_file_path": ""})
		}
	}
	if p.SortDescending {
		sq = sq.OrderBy("pub_date desc", "id desc")
	} else {
		sq = sq.OrderBy("pub_date", "id")
	}
	return queryPage[model.PodcastEpisode](r.sqlRepository, sq, p.Range)
}

func (r *podcastEpisodeRepository) SetManualDownloadState(id model.PodcastEpisodeID, state model.ManualDownloadState) error {
	_, err := r.executeSQL(Update(r.tableName).Set("manual_download_state", int(state)).Where(Eq{"id": int64(id)}))
	return err
}

func (r *podcastEpisodeRepository) SetAudioRelativeFilePath(id model.PodcastEpisodeID, path string) error {
	_, err := r.executeSQL(Update(r.tableName).Set("audio_relative_file_path", path).Where(Eq{"id": int64(id)}))
	return err
}

var _ model.PodcastRepository = (*podcastRepository)(nil)
var _ model.PodcastEpisodeRepository = (*podcastEpisodeRepository)(nil)
