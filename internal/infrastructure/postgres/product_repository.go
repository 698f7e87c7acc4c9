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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implements the ProductRepository port over PostgreSQL.
// Variants live in their own table and are loaded with the product.
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the product persistence adapter. Pass pool or tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, category_id, name, slug, description, price, compare_price, currency, images, is_active, is_featured, created_at, updated_at`

// Create persists the product together with its variants.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, category_id, name, slug, description, price, compare_price, currency, images, is_active, is_featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CategoryID, p.Name, p.Slug, p.Description, p.Price, p.ComparePrice,
		p.Currency, p.Images, p.IsActive, p.IsFeatured, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	for i := range p.Variants {
		if err := r.insertVariant(&p.Variants[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *ProductRepo) insertVariant(v *entity.ProductVariant) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO product_variants (id, product_id, sku, options, price_delta, in_stock)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		v.ID, v.ProductID, v.SKU, v.Options, v.PriceDelta, v.InStock,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert variant: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (r *ProductRepo) GetBySlug(slug string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
}

func (r *ProductRepo) getOne(query, arg string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.ComparePrice,
		&p.Currency, &p.Images, &p.IsActive, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	variants, err := r.variantsFor(p.ID)
	if err != nil {
		return nil, err
	}
	p.Variants = variants
	return &p, nil
}

func (r *ProductRepo) GetVariant(variantID string) (*entity.ProductVariant, error) {
	var v entity.ProductVariant
	err := r.q.QueryRow(context.Background(),
		`SELECT id, product_id, sku, options, price_delta, in_stock FROM product_variants WHERE id = $1`,
		variantID,
	).Scan(&v.ID, &v.ProductID, &v.SKU, &v.Options, &v.PriceDelta, &v.InStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return &v, nil
}

// Update rewrites the product row and replaces its variants.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products SET category_id = $2, name = $3, slug = $4, description = $5, price = $6, compare_price = $7, currency = $8, images = $9, is_active = $10, is_featured = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CategoryID, p.Name, p.Slug, p.Description, p.Price, p.ComparePrice,
		p.Currency, p.Images, p.IsActive, p.IsFeatured, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM product_variants WHERE product_id = $1`, p.ID); err != nil {
		return fmt.Errorf("clear variants: %w", err)
	}
	for i := range p.Variants {
		if err := r.insertVariant(&p.Variants[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *ProductRepo) ListByCategory(categoryID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, categoryID, limit, offset)
}

func (r *ProductRepo) ListFeatured(limit int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_featured AND is_active ORDER BY updated_at DESC LIMIT $1`
	return r.list(query, limit)
}

func (r *ProductRepo) list(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.ComparePrice,
			&p.Currency, &p.Images, &p.IsActive, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range list {
		variants, err := r.variantsFor(p.ID)
		if err != nil {
			return nil, err
		}
		p.Variants = variants
	}
	return list, nil
}

func (r *ProductRepo) variantsFor(productID string) ([]entity.ProductVariant, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, product_id, sku, options, price_delta, in_stock FROM product_variants WHERE product_id = $1 ORDER BY sku`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()
	var variants []entity.ProductVariant
	for rows.Next() {
		var v entity.ProductVariant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Options, &v.PriceDelta, &v.InStock); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

// Delete removes a product; variants go with it via ON DELETE CASCADE.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
