package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-backend/internal/domains/settings/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Get(ctx context.Context, settingID string) (*model.SiteSetting, error) {
	query := `SELECT setting_id, data, updated_at, updated_by FROM site_settings WHERE setting_id = $1`

	var (
		s    model.SiteSetting
		data []byte
	)
	err := r.pool.QueryRow(ctx, query, settingID).Scan(&s.SettingID, &data, &s.UpdatedAt, &s.UpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSettingNotFound
		}
		return nil, fmt.Errorf("get setting %s: %w", settingID, err)
	}
	if err := json.Unmarshal(data, &s.Data); err != nil {
		return nil, fmt.Errorf("decode setting %s: %w", settingID, err)
	}
	return &s, nil
}

func (r *postgresRepository) Put(ctx context.Context, setting *model.SiteSetting) error {
	data, err := json.Marshal(setting.Data)
	if err != nil {
		return fmt.Errorf("encode setting %s: %w", setting.SettingID, err)
	}

	query := `
		INSERT INTO site_settings (setting_id, data, updated_at, updated_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (setting_id) DO UPDATE
		SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at, updated_by = EXCLUDED.updated_by`

	if _, err := r.pool.Exec(ctx, query, setting.SettingID, data, setting.UpdatedAt, setting.UpdatedBy); err != nil {
		return fmt.Errorf("put setting %s: %w", setting.SettingID, err)
	}
	return nil
}
