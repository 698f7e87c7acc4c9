package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aaryaethnics/storefront-api/internal/domain/entity"
	"github.com/aaryaethnics/storefront-api/internal/domain/repository"
)

var _ repository.MenuRepository = (*MenuRepo)(nil)

// MenuRepo implements the MenuRepository port over PostgreSQL.
type MenuRepo struct {
	q Querier
}

func NewMenuRepository(q Querier) *MenuRepo {
	return &MenuRepo{q: q}
}

const menuColumns = `id, label, url, COALESCE(category_slug, ''), COALESCE(parent_id, ''), position, is_active, created_at, updated_at`

func (r *MenuRepo) Create(m *entity.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, label, url, category_slug, parent_id, position, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Label, m.URL, m.CategorySlug, m.ParentID, m.Position, m.IsActive, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert menu item: %w", err)
	}
	return nil
}

func (r *MenuRepo) GetByID(id string) (*entity.MenuItem, error) {
	var m entity.MenuItem
	err := r.q.QueryRow(context.Background(),
		`SELECT `+menuColumns+` FROM menu_items WHERE id = $1`, id,
	).Scan(&m.ID, &m.Label, &m.URL, &m.CategorySlug, &m.ParentID, &m.Position, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return &m, nil
}

func (r *MenuRepo) Update(m *entity.MenuItem) error {
	query := `
		UPDATE menu_items SET label = $2, url = $3, category_slug = NULLIF($4, ''), parent_id = NULLIF($5, ''), position = $6, is_active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Label, m.URL, m.CategorySlug, m.ParentID, m.Position, m.IsActive, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	return nil
}

func (r *MenuRepo) UpdatePosition(id string, position int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE menu_items SET position = $2, updated_at = now() WHERE id = $1`,
		id, position,
	)
	if err != nil {
		return fmt.Errorf("update menu item position: %w", err)
	}
	return nil
}

func (r *MenuRepo) List() ([]entity.MenuItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+menuColumns+` FROM menu_items ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()
	var list []entity.MenuItem
	for rows.Next() {
		var m entity.MenuItem
		if err := rows.Scan(&m.ID, &m.Label, &m.URL, &m.CategorySlug, &m.ParentID, &m.Position, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *MenuRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	return nil
}
