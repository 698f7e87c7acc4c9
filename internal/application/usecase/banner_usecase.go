package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/aaryaethnics/storefront-api/internal/application/dto"
	"github.com/aaryaethnics/storefront-api/internal/domain/entity"
	"github.com/aaryaethnics/storefront-api/internal/domain/repository"
)

// BannerUseCase CRUD for hero-carousel banners.
type BannerUseCase struct {
	repo repository.BannerRepository
}

// NewBannerUseCase builds the use case.
func NewBannerUseCase(repo repository.BannerRepository) *BannerUseCase {
	return &BannerUseCase{repo: repo}
}

// Create adds a banner.
func (uc *BannerUseCase) Create(in dto.CreateBannerRequest) (*dto.BannerResponse, error) {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now()
	banner := &entity.Banner{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Subtitle:  in.Subtitle,
		ImageURL:  in.ImageURL,
		LinkURL:   in.LinkURL,
		Position:  in.Position,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(banner); err != nil {
		return nil, err
	}
	return toBannerResponse(banner), nil
}

// Update edits a banner.
func (uc *BannerUseCase) Update(id string, in dto.UpdateBannerRequest) (*dto.BannerResponse, error) {
	banner, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if banner == nil {
		return nil, nil
	}
	if in.Title != nil {
		banner.Title = *in.Title
	}
	if in.Subtitle != nil {
		banner.Subtitle = *in.Subtitle
	}
	if in.ImageURL != nil {
		banner.ImageURL = *in.ImageURL
	}
	if in.LinkURL != nil {
		banner.LinkURL = *in.LinkURL
	}
	if in.Position != nil {
		banner.Position = *in.Position
	}
	if in.IsActive != nil {
		banner.IsActive = *in.IsActive
	}
	banner.UpdatedAt = time.Now()
	if err := uc.repo.Update(banner); err != nil {
		return nil, err
	}
	return toBannerResponse(banner), nil
}

// List returns every banner (admin grid).
func (uc *BannerUseCase) List() ([]dto.BannerResponse, error) {
	return uc.toList(uc.repo.List())
}

// ListActive returns the slides served to the storefront carousel,
// position order.
func (uc *BannerUseCase) ListActive() ([]dto.BannerResponse, error) {
	return uc.toList(uc.repo.ListActive())
}

// Delete removes a banner by id.
func (uc *BannerUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func (uc *BannerUseCase) toList(list []*entity.Banner, err error) ([]dto.BannerResponse, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.BannerResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBannerResponse(b))
	}
	return out, nil
}

func toBannerResponse(b *entity.Banner) *dto.BannerResponse {
	if b == nil {
		return nil
	}
	return &dto.BannerResponse{
		ID:        b.ID,
		Title:     b.Title,
		Subtitle:  b.Subtitle,
		ImageURL:  b.ImageURL,
		LinkURL:   b.LinkURL,
		Position:  b.Position,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
