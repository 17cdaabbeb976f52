package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-backend/internal/domains/photo/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const photoColumns = `id, title, description, alt, copyright, gallery, uploaded_by,
	object_key, file_size, mime_type, status, created_at, updated_at, published_at, archived_at`

func (r *postgresRepository) Create(ctx context.Context, p *model.Photo) error {
	query := `
		INSERT INTO photos (` + photoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Title, p.Description, p.Alt, p.Copyright, p.Gallery, p.UploadedBy,
		p.ObjectKey, p.FileSize, p.MimeType, p.Status,
		p.CreatedAt, p.UpdatedAt, p.PublishedAt, p.ArchivedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrPhotoExists
		}
		return fmt.Errorf("insert photo: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*model.Photo, error) {
	query := `SELECT ` + photoColumns + ` FROM photos WHERE id = $1`

	p, err := scanPhoto(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("get photo %s: %w", id, err)
	}
	return p, nil
}

func (r *postgresRepository) ListByStatus(ctx context.Context, status string, limit int) ([]*model.Photo, error) {
	query := `
		SELECT ` + photoColumns + `
		FROM photos
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, status, limit)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	photos := make([]*model.Photo, 0)
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, p *model.Photo, prevUpdatedAt time.Time) error {
	query := `
		UPDATE photos
		SET title = $2, description = $3, alt = $4, copyright = $5, gallery = $6,
			object_key = $7, status = $8, updated_at = $9, published_at = $10, archived_at = $11
		WHERE id = $1 AND updated_at = $12`

	tag, err := r.pool.Exec(ctx, query,
		p.ID, p.Title, p.Description, p.Alt, p.Copyright, p.Gallery,
		p.ObjectKey, p.Status, p.UpdatedAt, p.PublishedAt, p.ArchivedAt,
		prevUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update photo %s: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the row is gone or another writer committed first.
		var exists bool
		if err := r.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM photos WHERE id = $1)`, p.ID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("check photo %s after stale update: %w", p.ID, err)
		}
		if exists {
			return model.ErrUpdateConflict
		}
		return model.ErrPhotoNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete photo %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPhotoNotFound
	}
	return nil
}

func scanPhoto(row pgx.Row) (*model.Photo, error) {
	var p model.Photo
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Alt, &p.Copyright, &p.Gallery, &p.UploadedBy,
		&p.ObjectKey, &p.FileSize, &p.MimeType, &p.Status,
		&p.CreatedAt, &p.UpdatedAt, &p.PublishedAt, &p.ArchivedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
