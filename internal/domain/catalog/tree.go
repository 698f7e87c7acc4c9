// Package catalog builds the navigation category tree from the flat
// category table. Pure, no I/O; rebuilt from scratch on every change
// notification, so node identity never survives a rebuild.
package catalog

import (
	"sort"

	"github.com/aaryaethnics/storefront-api/internal/domain/entity"
)

// Node is one category with its ordered children nested inside.
type Node struct {
	entity.Category
	Children []*Node
}

// BuildTree converts a flat category list into an ordered forest.
//
// Two passes: first wrap every record in a fresh node, then attach each
// node to its parent, or to the roots when ParentID is empty, points at a
// missing id, or would close a cycle. Sibling groups (and the roots) come
// out ascending by Position; equal positions keep input order.
//
// Malformed input never errors. A duplicate id is a known limitation:
// the id map is last-write-wins, so children attach to the last record
// seen, but every record still yields exactly one node in the forest.
func BuildTree(records []entity.Category) []*Node {
	all := make([]*Node, len(records))
	byID := make(map[string]*Node, len(records))
	for i := range records {
		n := &Node{Category: records[i]}
		all[i] = n
		byID[records[i].ID] = n
	}

	breakers := cycleBreakers(byID)

	var roots []*Node
	for _, n := range all {
		parent, ok := byID[n.ParentID]
		if n.ParentID == "" || !ok || breakers[n.ID] {
			roots = append(roots, n)
			continue
		}
		parent.Children = append(parent.Children, n)
	}

	sortForest(roots)
	return roots
}

// Count returns the total number of nodes in the forest.
func Count(roots []*Node) int {
	total := 0
	for _, r := range roots {
		total += 1 + Count(r.Children)
	}
	return total
}

// Find walks the forest for the node with the given slug.
func Find(roots []*Node, slug string) *Node {
	for _, r := range roots {
		if r.Slug == slug {
			return r
		}
		if n := Find(r.Children, slug); n != nil {
			return n
		}
	}
	return nil
}

const (
	stateUnseen = iota
	stateInPath
	stateDone
)

// cycleBreakers returns the ids that must be forced to root so the
// structure stays a forest. Walking a parent chain that loops back into
// itself marks the node where the loop closes; everything below it then
// attaches normally.
func cycleBreakers(byID map[string]*Node) map[string]bool {
	state := make(map[string]int, len(byID))
	breakers := make(map[string]bool)

	for id := range byID {
		if state[id] != stateUnseen {
			continue
		}
		var path []string
		cur := id
		for {
			if state[cur] == stateDone {
				break
			}
			if state[cur] == stateInPath {
				breakers[cur] = true
				break
			}
			state[cur] = stateInPath
			path = append(path, cur)
			parentID := byID[cur].ParentID
			if _, ok := byID[parentID]; parentID == "" || !ok {
				break
			}
			cur = parentID
		}
		for _, p := range path {
			state[p] = stateDone
		}
	}
	return breakers
}

// sortForest orders a sibling group ascending by Position, ties kept in
// input order, and recurses into children.
func sortForest(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Position < nodes[j].Position
	})
	for _, n := range nodes {
		sortForest(n.Children)
	}
}
