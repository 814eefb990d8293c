package persistence

import (
	"context"
	"errors"

	. "github.com/Masterminds/squirrel"

	"github.com/melisma/melisma/model"
)

type scanSettingsRepository struct {
	sqlRepository
}

func newScanSettingsRepository(ctx context.Context, s *SQLStore) model.ScanSettingsRepository {
	return &scanSettingsRepository{s.baseRepo(ctx, "scan_settings")}
}

// Get returns the singleton row, creating it with defaults on first access.
// Creation requires a write transaction; under a read transaction a missing
// row surfaces as ErrNotFound instead.
func (r *scanSettingsRepository) Get() (*model.ScanSettings, error) {
	var res model.ScanSettings
	err := r.queryOne(r.newSelect().OrderBy("id").Limit(1), &res)
	if errors.Is(err, model.ErrNotFound) && r.mode == txWrite {
		res = model.ScanSettings{}
		id, err := r.put(0, &res)
		if err != nil {
			return nil, err
		}
		res.ID = model.ScanSettingsID(id)
		return &res, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *scanSettingsRepository) Put(s *model.ScanSettings) error {
	id, err := r.put(int64(s.ID), s)
	if err != nil {
		return err
	}
	s.ID = model.ScanSettingsID(id)
	return nil
}

func (r *scanSettingsRepository) IncAudioScanVersion() error {
	s, err := r.Get()
	if err != nil {
		return err
	}
	_, err = r.executeSQL(Update(r.tableName).
		Set("audio_scan_version", s.AudioScanVersion+1).
		Where(Eq{"id": int64(s.ID)}))
	return err
}

var _ model.ScanSettingsRepository = (*scanSettingsRepository)(nil)
