package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaryaethnics/storefront-api/internal/domain/catalog"
	"github.com/aaryaethnics/storefront-api/internal/domain/entity"
)

func cat(id, parent string, pos int, name string) entity.Category {
	return entity.Category{ID: id, ParentID: parent, Position: pos, Name: name, Slug: name, IsActive: true}
}

// ──────────────────────────────────────────────────────────────────────────────
// BuildTree — structure
// ──────────────────────────────────────────────────────────────────────────────

// One root "A" with children ordered by position: "C" (0) before "B" (1).
func TestBuildTree_NestsAndOrdersChildren(t *testing.T) {
	records := []entity.Category{
		cat("1", "", 0, "A"),
		cat("2", "1", 1, "B"),
		cat("3", "1", 0, "C"),
	}

	roots := catalog.BuildTree(records)

	require.Len(t, roots, 1)
	assert.Equal(t, "A", roots[0].Name)
	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "C", roots[0].Children[0].Name)
	assert.Equal(t, "B", roots[0].Children[1].Name)
}

// Every record appears exactly once across all levels, whatever the nesting.
func TestBuildTree_NoRecordDroppedOrDuplicated(t *testing.T) {
	records := []entity.Category{
		cat("sarees", "", 1, "Sarees"),
		cat("silk", "sarees", 0, "Silk"),
		cat("cotton", "sarees", 1, "Cotton"),
		cat("lehengas", "", 0, "Lehengas"),
		cat("bridal", "lehengas", 0, "Bridal"),
		cat("kurtas", "", 2, "Kurtas"),
	}

	roots := catalog.BuildTree(records)

	assert.Equal(t, len(records), catalog.Count(roots))
	// roots sorted by position: Lehengas(0), Sarees(1), Kurtas(2)
	require.Len(t, roots, 3)
	assert.Equal(t, "Lehengas", roots[0].Name)
	assert.Equal(t, "Sarees", roots[1].Name)
	assert.Equal(t, "Kurtas", roots[2].Name)
}

// A ParentID that matches no id in the input defaults the record to root.
func TestBuildTree_DanglingParentBecomesRoot(t *testing.T) {
	records := []entity.Category{
		cat("1", "", 0, "A"),
		cat("2", "missing", 1, "Orphan"),
	}

	roots := catalog.BuildTree(records)

	require.Len(t, roots, 2)
	assert.Equal(t, "A", roots[0].Name)
	assert.Equal(t, "Orphan", roots[1].Name)
}

// Equal positions keep input order (stable sort).
func TestBuildTree_EqualPositionsKeepInputOrder(t *testing.T) {
	records := []entity.Category{
		cat("1", "", 0, "First"),
		cat("2", "", 0, "Second"),
		cat("3", "", 0, "Third"),
	}

	roots := catalog.BuildTree(records)

	require.Len(t, roots, 3)
	assert.Equal(t, "First", roots[0].Name)
	assert.Equal(t, "Second", roots[1].Name)
	assert.Equal(t, "Third", roots[2].Name)
}

func TestBuildTree_EmptyInput(t *testing.T) {
	assert.Empty(t, catalog.BuildTree(nil))
	assert.Empty(t, catalog.BuildTree([]entity.Category{}))
}

// ──────────────────────────────────────────────────────────────────────────────
// BuildTree — defensive cases
// ──────────────────────────────────────────────────────────────────────────────

// A two-node cycle must not loop or drop records: the node where the loop
// closes is promoted to root and the other attaches beneath it.
func TestBuildTree_CycleIsBrokenNotDropped(t *testing.T) {
	records := []entity.Category{
		cat("a", "b", 0, "A"),
		cat("b", "a", 1, "B"),
	}

	roots := catalog.BuildTree(records)

	assert.Equal(t, 2, catalog.Count(roots))
	require.Len(t, roots, 1, "exactly one cycle member becomes a root")
	require.Len(t, roots[0].Children, 1)
}

// A self-referencing record becomes a root.
func TestBuildTree_SelfParentBecomesRoot(t *testing.T) {
	records := []entity.Category{cat("x", "x", 0, "X")}

	roots := catalog.BuildTree(records)

	require.Len(t, roots, 1)
	assert.Empty(t, roots[0].Children)
}

// A cycle deeper in the tree leaves the clean part of the forest intact.
func TestBuildTree_CycleBelowValidRoot(t *testing.T) {
	records := []entity.Category{
		cat("root", "", 0, "Root"),
		cat("ok", "root", 0, "OK"),
		cat("c1", "c2", 0, "C1"),
		cat("c2", "c1", 0, "C2"),
	}

	roots := catalog.BuildTree(records)

	assert.Equal(t, 4, catalog.Count(roots))
	require.Len(t, roots, 2)
	assert.Equal(t, "Root", roots[0].Name)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, "OK", roots[0].Children[0].Name)
}

// Duplicate ids: last-write-wins on the id map, but both records appear.
func TestBuildTree_DuplicateIDsKeepBothRecords(t *testing.T) {
	records := []entity.Category{
		cat("dup", "", 0, "First"),
		cat("dup", "", 1, "Second"),
		cat("child", "dup", 0, "Child"),
	}

	roots := catalog.BuildTree(records)

	assert.Equal(t, 3, catalog.Count(roots))
	require.Len(t, roots, 2)
	// the child hangs off the last-seen "dup" node
	assert.Equal(t, "Second", roots[1].Name)
	require.Len(t, roots[1].Children, 1)
	assert.Equal(t, "Child", roots[1].Children[0].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Find
// ──────────────────────────────────────────────────────────────────────────────

func TestFind_LocatesNestedSlug(t *testing.T) {
	roots := catalog.BuildTree([]entity.Category{
		cat("1", "", 0, "sarees"),
		cat("2", "1", 0, "silk"),
	})

	require.NotNil(t, catalog.Find(roots, "silk"))
	assert.Nil(t, catalog.Find(roots, "absent"))
}
