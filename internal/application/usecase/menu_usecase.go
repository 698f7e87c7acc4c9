package usecase

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/aaryaethnics/storefront-api/internal/application/dto"
	"github.com/aaryaethnics/storefront-api/internal/domain"
	"github.com/aaryaethnics/storefront-api/internal/domain/entity"
	"github.com/aaryaethnics/storefront-api/internal/domain/repository"
)

// MenuUseCase CRUD for the storefront navigation menu. The nested view
// follows the same parent/position conventions as the category tree:
// dangling parents fall back to the top level, siblings sort by position
// with input order as the tie-break.
type MenuUseCase struct {
	repo repository.MenuRepository
}

// NewMenuUseCase builds the use case.
func NewMenuUseCase(repo repository.MenuRepository) *MenuUseCase {
	return &MenuUseCase{repo: repo}
}

// Create adds a menu item. A category slug or a free URL is required.
func (uc *MenuUseCase) Create(in dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error) {
	if in.URL == "" && in.CategorySlug == "" {
		return nil, domain.ErrInvalidInput
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	url := in.URL
	if url == "" {
		url = "/category/" + in.CategorySlug
	}
	now := time.Now()
	item := &entity.MenuItem{
		ID:           uuid.New().String(),
		Label:        in.Label,
		URL:          url,
		CategorySlug: in.CategorySlug,
		ParentID:     in.ParentID,
		Position:     in.Position,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toMenuItemResponse(item), nil
}

// Update edits a menu item.
func (uc *MenuUseCase) Update(id string, in dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.Label != nil {
		item.Label = *in.Label
	}
	if in.URL != nil {
		item.URL = *in.URL
	}
	if in.CategorySlug != nil {
		item.CategorySlug = *in.CategorySlug
		if item.URL == "" {
			item.URL = "/category/" + *in.CategorySlug
		}
	}
	if in.ParentID != nil {
		item.ParentID = *in.ParentID
	}
	if in.Position != nil {
		item.Position = *in.Position
	}
	if in.IsActive != nil {
		item.IsActive = *in.IsActive
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toMenuItemResponse(item), nil
}

// List returns the flat item table (admin grid).
func (uc *MenuUseCase) List() ([]dto.MenuItemResponse, error) {
	items, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.MenuItemResponse, 0, len(items))
	for i := range items {
		out = append(out, *toMenuItemResponse(&items[i]))
	}
	return out, nil
}

// Tree returns the nested active menu served to the storefront.
func (uc *MenuUseCase) Tree() ([]dto.MenuTreeNode, error) {
	items, err := uc.repo.List()
	if err != nil {
		return nil, err
	}

	type node struct {
		item     entity.MenuItem
		children []*node
	}
	byID := make(map[string]*node, len(items))
	all := make([]*node, 0, len(items))
	for i := range items {
		if !items[i].IsActive {
			continue
		}
		n := &node{item: items[i]}
		byID[items[i].ID] = n
		all = append(all, n)
	}
	var roots []*node
	for _, n := range all {
		parent, ok := byID[n.item.ParentID]
		if n.item.ParentID == "" || !ok || parent == n {
			roots = append(roots, n)
			continue
		}
		parent.children = append(parent.children, n)
	}

	var shape func(nodes []*node) []dto.MenuTreeNode
	shape = func(nodes []*node) []dto.MenuTreeNode {
		sort.SliceStable(nodes, func(i, j int) bool {
			return nodes[i].item.Position < nodes[j].item.Position
		})
		out := make([]dto.MenuTreeNode, 0, len(nodes))
		for _, n := range nodes {
			out = append(out, dto.MenuTreeNode{
				ID:           n.item.ID,
				Label:        n.item.Label,
				URL:          n.item.URL,
				CategorySlug: n.item.CategorySlug,
				Position:     n.item.Position,
				Children:     shape(n.children),
			})
		}
		return out
	}
	return shape(roots), nil
}

// Reorder persists a drag-reorder of menu siblings, same contract as the
// category reorder: matching ids get positions 0..k-1, writes stop at the
// first error.
func (uc *MenuUseCase) Reorder(parentID string, orderedIDs []string) error {
	items, err := uc.repo.List()
	if err != nil {
		return err
	}
	siblings := make(map[string]bool, len(items))
	for i := range items {
		if items[i].ParentID == parentID {
			siblings[items[i].ID] = true
		}
	}
	pos := 0
	for _, id := range orderedIDs {
		if !siblings[id] {
			continue
		}
		if err := uc.repo.UpdatePosition(id, pos); err != nil {
			return err
		}
		pos++
	}
	return nil
}

// Delete removes a menu item by id.
func (uc *MenuUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toMenuItemResponse(m *entity.MenuItem) *dto.MenuItemResponse {
	if m == nil {
		return nil
	}
	return &dto.MenuItemResponse{
		ID:           m.ID,
		Label:        m.Label,
		URL:          m.URL,
		CategorySlug: m.CategorySlug,
		ParentID:     m.ParentID,
		Position:     m.Position,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
