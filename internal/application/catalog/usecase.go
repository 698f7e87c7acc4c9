// Package catalog holds the category use cases: CRUD, the cached
// navigation tree rebuilt on change notifications, and the drag-reorder
// position writer.
package catalog

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/aaryaethnics/storefront-api/internal/application/dto"
	"github.com/aaryaethnics/storefront-api/internal/domain"
	domcatalog "github.com/aaryaethnics/storefront-api/internal/domain/catalog"
	"github.com/aaryaethnics/storefront-api/internal/domain/entity"
	"github.com/aaryaethnics/storefront-api/internal/domain/repository"
	"github.com/aaryaethnics/storefront-api/pkg/logger"
	"github.com/aaryaethnics/storefront-api/pkg/slug"
)

// UseCase owns category CRUD and the cached tree. The tree is rebuilt
// from scratch on every change notification; consumers must not hold on
// to nodes across rebuilds.
type UseCase struct {
	repo repository.CategoryRepository
	log  *logger.Logger

	mu      sync.RWMutex
	tree    []*domcatalog.Node
	loading bool

	// monotonic rebuild counter: a stale fetch that resolves after a
	// newer rebuild has been applied is discarded
	issued  atomic.Uint64
	applied uint64

	cancelFeed func()
}

// NewUseCase builds the use case. Call Start to load the tree and attach
// the change feed.
func NewUseCase(repo repository.CategoryRepository, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, log: log, loading: true}
}

// Start runs the initial rebuild and subscribes to the change feed. A nil
// feed is allowed (tests, one-shot tools); mutations through this use
// case still rebuild directly.
func (uc *UseCase) Start(feed ChangeFeed) error {
	if err := uc.Rebuild(); err != nil {
		return err
	}
	if feed == nil {
		return nil
	}
	cancel, err := feed.Subscribe(func() {
		if err := uc.Rebuild(); err != nil {
			uc.log.Error().Err(err).Msg("category tree rebuild failed")
		}
	})
	if err != nil {
		return err
	}
	uc.cancelFeed = cancel
	return nil
}

// Stop detaches from the change feed.
func (uc *UseCase) Stop() {
	if uc.cancelFeed != nil {
		uc.cancelFeed()
		uc.cancelFeed = nil
	}
}

// Rebuild fetches the flat list and swaps in a fresh tree. Last-write-wins
// by request sequence, not completion order.
func (uc *UseCase) Rebuild() error {
	seq := uc.issued.Add(1)

	uc.mu.Lock()
	uc.loading = true
	uc.mu.Unlock()

	records, err := uc.repo.List()

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if seq < uc.applied {
		// a newer rebuild already landed; drop this result either way
		return nil
	}
	uc.applied = seq
	uc.loading = false
	if err != nil {
		// keep serving the previous tree on fetch failure
		return err
	}
	uc.tree = domcatalog.BuildTree(records)
	return nil
}

// rebuildAfterWrite refreshes the cached tree after a mutation through
// this use case. The write itself already succeeded, so a rebuild
// failure is logged and the previous tree keeps serving until the NOTIFY
// feed or the next mutation retries.
func (uc *UseCase) rebuildAfterWrite() {
	if err := uc.Rebuild(); err != nil {
		uc.log.Error().Err(err).Msg("category tree rebuild failed")
	}
}

// Tree returns the cached forest and the loading flag.
func (uc *UseCase) Tree() ([]*domcatalog.Node, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.tree, uc.loading
}

// TreeResponse shapes the cached forest for the API.
func (uc *UseCase) TreeResponse() *dto.CategoryTreeResponse {
	roots, loading := uc.Tree()
	return &dto.CategoryTreeResponse{Tree: toTreeNodes(roots), Loading: loading}
}

// Create adds a category. The slug comes from the name; a duplicate slug
// is rejected.
func (uc *UseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	s := slug.Make(in.Name)
	if s == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetBySlug(s)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now()
	category := &entity.Category{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Slug:      s,
		ParentID:  in.ParentID,
		Position:  in.Position,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	uc.rebuildAfterWrite()
	return toCategoryResponse(category), nil
}

// GetByID fetches one category.
func (uc *UseCase) GetByID(id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	return toCategoryResponse(category), nil
}

// Update edits a category. The slug follows a name change.
func (uc *UseCase) Update(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	if in.Name != nil {
		category.Name = *in.Name
		category.Slug = slug.Make(*in.Name)
	}
	if in.ParentID != nil {
		category.ParentID = *in.ParentID
	}
	if in.Position != nil {
		category.Position = *in.Position
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	uc.rebuildAfterWrite()
	return toCategoryResponse(category), nil
}

// List returns the flat table (admin grid view).
func (uc *UseCase) List() ([]dto.CategoryResponse, error) {
	records, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(records))
	for i := range records {
		out = append(out, *toCategoryResponse(&records[i]))
	}
	return out, nil
}

// Delete removes a category by id.
func (uc *UseCase) Delete(id string) error {
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.rebuildAfterWrite()
	return nil
}

// Reorder persists a drag-reorder: ids in orderedIDs that are currently
// children of parentID ("" = roots) get positions 0..k-1 in that order.
// Ids under a different parent, or unknown, are skipped. Writes stop at
// the first repository error; positions already written stay (an
// intermediate but still sortable state).
func (uc *UseCase) Reorder(parentID string, orderedIDs []string) error {
	records, err := uc.repo.List()
	if err != nil {
		return err
	}
	siblings := make(map[string]bool, len(records))
	for i := range records {
		if records[i].ParentID == parentID {
			siblings[records[i].ID] = true
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
	return uc.Rebuild()
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		ParentID:  c.ParentID,
		Position:  c.Position,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toTreeNodes(nodes []*domcatalog.Node) []dto.CategoryTreeNode {
	out := make([]dto.CategoryTreeNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, dto.CategoryTreeNode{
			ID:       n.ID,
			Name:     n.Name,
			Slug:     n.Slug,
			Position: n.Position,
			IsActive: n.IsActive,
			Children: toTreeNodes(n.Children),
		})
	}
	return out
}
