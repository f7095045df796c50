package service

import (
	"github.com/unohub/unohub/internal/model"
	appErr "github.com/unohub/unohub/internal/pkg/errors"
)

// PageNode wraps a page with its resolved children for tree rendering.
type PageNode struct {
	model.Page
	Children []*PageNode `json:"children"`
}

// BuildPageTree folds a flat page list into a forest in one pass. A page
// whose parent is missing from the input (archived or deleted) is promoted to
// a root instead of being dropped, so every input page appears in the output
// exactly once. Sibling order follows input order, which PageRepo.List keeps
// at ctime ascending.
func BuildPageTree(pages []model.Page) []*PageNode {
	nodes := make(map[string]*PageNode, len(pages))
	for i := range pages {
		nodes[pages[i].ID] = &PageNode{Page: pages[i], Children: []*PageNode{}}
	}
	roots := make([]*PageNode, 0)
	for i := range pages {
		node := nodes[pages[i].ID]
		if pages[i].ParentID != nil {
			if parent, ok := nodes[*pages[i].ParentID]; ok && parent != node {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

// ResolveSelection implements leaf-only selection: picking a page that has
// children opens its first child instead, descending until a childless page
// is reached. The returned chain holds every intermediate page visited, which
// the client marks expanded. A visited set bounds the descent in case the
// stored parent links ever form a cycle.
func ResolveSelection(pages []model.Page, pageID string) (string, []string, error) {
	children := make(map[string][]string, len(pages))
	present := make(map[string]struct{}, len(pages))
	for i := range pages {
		present[pages[i].ID] = struct{}{}
		if pages[i].ParentID != nil {
			children[*pages[i].ParentID] = append(children[*pages[i].ParentID], pages[i].ID)
		}
	}
	if _, ok := present[pageID]; !ok {
		return "", nil, appErr.ErrNotFound
	}

	visited := make(map[string]struct{})
	chain := make([]string, 0)
	current := pageID
	for {
		if _, seen := visited[current]; seen {
			return "", nil, appErr.ErrInvalid
		}
		visited[current] = struct{}{}
		kids := children[current]
		if len(kids) == 0 {
			return current, chain, nil
		}
		chain = append(chain, current)
		current = kids[0]
	}
}

// subtreeIDs collects id and every descendant reachable through parent links,
// the set a cascade delete removes. Cycle-safe via the seen set.
func subtreeIDs(pages []model.Page, id string) []string {
	children := make(map[string][]string, len(pages))
	for i := range pages {
		if pages[i].ParentID != nil {
			children[*pages[i].ParentID] = append(children[*pages[i].ParentID], pages[i].ID)
		}
	}
	seen := map[string]struct{}{id: {}}
	ids := []string{id}
	queue := []string{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range children[current] {
			if _, ok := seen[child]; ok {
				continue
			}
			seen[child] = struct{}{}
			ids = append(ids, child)
			queue = append(queue, child)
		}
	}
	return ids
}
