package state

import (
	"strings"

	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter updates the filter query and reapplies it to the tree. It reports
// whether the visible items changed.
func (l *Level) SetFilter(query string) bool {
	if query == l.Filter {
		return false
	}
	l.Filter = query
	l.applyFilter()
	return true
}

func (l *Level) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter)
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
}

// FilterItems returns the subtree of items matching query. A matching item
// keeps all of its children; a submenu that does not match itself survives
// with only its matching descendants.
func FilterItems(items []menu.Item, query string) []menu.Item {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return CloneItems(items)
	}
	return filterTree(items, trimmed)
}

func filterTree(items []menu.Item, query string) []menu.Item {
	out := make([]menu.Item, 0, len(items))
	for _, item := range items {
		if itemMatches(item, query) {
			dup := item
			dup.Children = CloneItems(item.Children)
			out = append(out, dup)
			continue
		}
		if !item.IsSubMenu() {
			continue
		}
		if kids := filterTree(item.Children, query); len(kids) > 0 {
			dup := item
			dup.Children = kids
			out = append(out, dup)
		}
	}
	return out
}

func itemMatches(item menu.Item, query string) bool {
	if fuzzy.MatchNormalizedFold(query, item.Label) {
		return true
	}
	return strings.Contains(strings.ToLower(item.Key), strings.ToLower(query))
}

// BestMatchIndex returns the best index for the query among the provided items.
func BestMatchIndex(items []menu.Item, query string) int {
	trimmed := strings.TrimSpace(query)
	if len(items) == 0 {
		return -1
	}
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	checks := []func(menu.Item) bool{
		func(it menu.Item) bool { return strings.EqualFold(it.Label, trimmed) || strings.EqualFold(it.Key, trimmed) },
		func(it menu.Item) bool { return strings.HasPrefix(strings.ToLower(it.Label), lower) },
		func(it menu.Item) bool { return strings.HasPrefix(strings.ToLower(it.Key), lower) },
		func(it menu.Item) bool { return strings.Contains(strings.ToLower(it.Label), lower) },
	}
	for _, check := range checks {
		for i, item := range items {
			if !item.Disabled && check(item) {
				return i
			}
		}
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	best := -1
	bestDistance := 0
	for _, rank := range ranks {
		if items[rank.OriginalIndex].Disabled {
			continue
		}
		if best == -1 || rank.Distance < bestDistance || (rank.Distance == bestDistance && rank.OriginalIndex < best) {
			best = rank.OriginalIndex
			bestDistance = rank.Distance
		}
	}
	if best == -1 {
		return 0
	}
	return best
}
