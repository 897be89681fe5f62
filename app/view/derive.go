// Package view holds the UI state container and the pure derivations that
// turn cached snapshots into render-ready view models.
package view

import (
	"strings"

	"lumina/app/models"
)

// Filters narrows the home listing. Both filters apply locally to the
// cached snapshot.
type Filters struct {
	Query    string
	Category string
}

// Active reports whether any filter is set.
func (f Filters) Active() bool {
	return strings.TrimSpace(f.Query) != "" || f.Category != ""
}

// Match reports whether post passes both filters. The query is a
// case-insensitive substring match against title, content or excerpt.
func (f Filters) Match(post *models.Post) bool {
	if f.Category != "" && post.Category != f.Category {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(post.Title), q) ||
		strings.Contains(strings.ToLower(post.Content), q) ||
		strings.Contains(strings.ToLower(post.Excerpt), q)
}

// ViewModel is everything the home listing renders.
type ViewModel struct {
	Filters    Filters
	Categories []string

	// Loading is set until the first snapshot arrives. It never coexists
	// with Empty or NoPosts.
	Loading bool
	// Empty means filters are active and nothing matched.
	Empty bool
	// NoPosts means the store holds no posts at all.
	NoPosts bool
	// Failed means the first snapshot could not be fetched. It replaces
	// Loading once the fetch has ended.
	Failed bool

	Featured *models.Post
	Grid     []*models.Post
	Count    int
}

// DeriveVisibleState computes the home listing for filters over posts. A
// nil posts slice means the snapshot has not been fetched yet.
func DeriveVisibleState(filters Filters, posts []*models.Post) ViewModel {
	vm := ViewModel{Filters: filters, Categories: models.Categories}
	if posts == nil {
		vm.Loading = true
		return vm
	}

	visible := make([]*models.Post, 0, len(posts))
	for _, p := range posts {
		if filters.Match(p) {
			visible = append(visible, p)
		}
	}

	vm.Count = len(visible)
	switch {
	case len(visible) == 0 && filters.Active():
		vm.Empty = true
	case len(visible) == 0:
		vm.NoPosts = true
	default:
		vm.Featured = visible[0]
		vm.Grid = visible[1:]
	}
	return vm
}
