package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aaryaethnics/storefront-api/internal/domain"
	"github.com/aaryaethnics/storefront-api/internal/domain/entity"
	"github.com/aaryaethnics/storefront-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implements the CategoryRepository port over PostgreSQL.
// ParentID is stored as a nullable column; the empty string maps to NULL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository builds the category persistence adapter. Pass pool or tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categoryColumns = `id, name, slug, COALESCE(parent_id, ''), position, is_active, created_at, updated_at`

func (r *CategoryRepo) Create(c *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, parent_id, position, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Slug, c.ParentID, c.Position, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Slug, &c.ParentID, &c.Position, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) GetBySlug(slug string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE slug = $1`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, slug).Scan(
		&c.ID, &c.Name, &c.Slug, &c.ParentID, &c.Position, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by slug: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) Update(c *entity.Category) error {
	query := `
		UPDATE categories SET name = $2, slug = $3, parent_id = NULLIF($4, ''), position = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Slug, c.ParentID, c.Position, c.IsActive, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// UpdatePosition rewrites a single row's position; Reorder calls it once
// per sibling.
func (r *CategoryRepo) UpdatePosition(id string, position int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE categories SET position = $2, updated_at = now() WHERE id = $1`,
		id, position,
	)
	if err != nil {
		return fmt.Errorf("update category position: %w", err)
	}
	return nil
}

// List returns the whole flat table in insertion order; the tree builder
// handles ordering and nesting.
func (r *CategoryRepo) List() ([]entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID, &c.Position, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Delete removes a category. Children are re-parented to root by the
// ON DELETE SET NULL constraint.
func (r *CategoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
