package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/aaryaethnics/storefront-api/internal/application/dto"
	"github.com/aaryaethnics/storefront-api/internal/domain"
	"github.com/aaryaethnics/storefront-api/internal/domain/entity"
	"github.com/aaryaethnics/storefront-api/internal/domain/repository"
	"github.com/aaryaethnics/storefront-api/pkg/slug"
)

// ProductUseCase CRUD for catalog products and their variants.
type ProductUseCase struct {
	repo     repository.ProductRepository
	currency string // catalog currency applied when a request omits one
}

// NewProductUseCase builds the use case.
func NewProductUseCase(repo repository.ProductRepository, currency string) *ProductUseCase {
	return &ProductUseCase{repo: repo, currency: currency}
}

// Create adds a product with its variants. The slug comes from the name;
// a duplicate slug is rejected.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	s := slug.Make(in.Name)
	if s == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetBySlug(s)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Price.IsNegative() || in.ComparePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	currency := in.Currency
	if currency == "" {
		currency = uc.currency
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		CategoryID:   in.CategoryID,
		Name:         in.Name,
		Slug:         s,
		Description:  in.Description,
		Price:        in.Price,
		ComparePrice: in.ComparePrice,
		Currency:     currency,
		Images:       in.Images,
		IsActive:     active,
		IsFeatured:   in.IsFeatured,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, v := range in.Variants {
		inStock := true
		if v.InStock != nil {
			inStock = *v.InStock
		}
		product.Variants = append(product.Variants, entity.ProductVariant{
			ID:         uuid.New().String(),
			ProductID:  product.ID,
			SKU:        v.SKU,
			Options:    v.Options,
			PriceDelta: v.PriceDelta,
			InStock:    inStock,
		})
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID fetches one product.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// GetBySlug fetches one product by storefront slug.
func (uc *ProductUseCase) GetBySlug(s string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetBySlug(s)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update edits a product. Variants are managed on creation only for now.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		product.Name = *in.Name
		product.Slug = slug.Make(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.ComparePrice != nil {
		if in.ComparePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.ComparePrice = *in.ComparePrice
	}
	if len(in.Images) > 0 {
		product.Images = in.Images
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if in.IsFeatured != nil {
		product.IsFeatured = *in.IsFeatured
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List pages through products, optionally filtered by category.
func (uc *ProductUseCase) List(categoryID string, limit, offset int) (*dto.ProductListResponse, error) {
	var list []*entity.Product
	var err error
	if categoryID != "" {
		list, err = uc.repo.ListByCategory(categoryID, limit, offset)
	} else {
		list, err = uc.repo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListFeatured returns the homepage featured strip.
func (uc *ProductUseCase) ListFeatured(limit int) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListFeatured(limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Delete removes a product by id.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	variants := make([]dto.VariantResponse, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, dto.VariantResponse{
			ID:         v.ID,
			SKU:        v.SKU,
			Options:    v.Options,
			PriceDelta: v.PriceDelta,
			InStock:    v.InStock,
		})
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		CategoryID:   p.CategoryID,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Price:        p.Price,
		ComparePrice: p.ComparePrice,
		Currency:     p.Currency,
		Images:       p.Images,
		IsActive:     p.IsActive,
		IsFeatured:   p.IsFeatured,
		Variants:     variants,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
