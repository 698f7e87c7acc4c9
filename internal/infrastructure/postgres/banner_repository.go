package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aaryaethnics/storefront-api/internal/domain/entity"
	"github.com/aaryaethnics/storefront-api/internal/domain/repository"
)

var _ repository.BannerRepository = (*BannerRepo)(nil)

// BannerRepo implements the BannerRepository port over PostgreSQL.
type BannerRepo struct {
	q Querier
}

func NewBannerRepository(q Querier) *BannerRepo {
	return &BannerRepo{q: q}
}

const bannerColumns = `id, title, subtitle, image_url, link_url, position, is_active, created_at, updated_at`

func (r *BannerRepo) Create(b *entity.Banner) error {
	query := `
		INSERT INTO banners (id, title, subtitle, image_url, link_url, position, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.Title, b.Subtitle, b.ImageURL, b.LinkURL, b.Position, b.IsActive, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert banner: %w", err)
	}
	return nil
}

func (r *BannerRepo) GetByID(id string) (*entity.Banner, error) {
	var b entity.Banner
	err := r.q.QueryRow(context.Background(),
		`SELECT `+bannerColumns+` FROM banners WHERE id = $1`, id,
	).Scan(&b.ID, &b.Title, &b.Subtitle, &b.ImageURL, &b.LinkURL, &b.Position, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get banner: %w", err)
	}
	return &b, nil
}

func (r *BannerRepo) Update(b *entity.Banner) error {
	query := `
		UPDATE banners SET title = $2, subtitle = $3, image_url = $4, link_url = $5, position = $6, is_active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.Title, b.Subtitle, b.ImageURL, b.LinkURL, b.Position, b.IsActive, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update banner: %w", err)
	}
	return nil
}

func (r *BannerRepo) List() ([]*entity.Banner, error) {
	return r.list(`SELECT ` + bannerColumns + ` FROM banners ORDER BY position, created_at`)
}

func (r *BannerRepo) ListActive() ([]*entity.Banner, error) {
	return r.list(`SELECT ` + bannerColumns + ` FROM banners WHERE is_active ORDER BY position, created_at`)
}

func (r *BannerRepo) list(query string) ([]*entity.Banner, error) {
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	defer rows.Close()
	var list []*entity.Banner
	for rows.Next() {
		var b entity.Banner
		if err := rows.Scan(&b.ID, &b.Title, &b.Subtitle, &b.ImageURL, &b.LinkURL, &b.Position, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan banner: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

func (r *BannerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}
	return nil
}
