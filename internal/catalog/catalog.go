// Package catalog holds the resource catalog: the data-access boundary the
// site reads videos and documents through, and the pure search, lookup and
// category functions applied to them.
package catalog

import (
	"errors"
	"strconv"
	"strings"

	"barrierfree/internal/models"
)

// AllCategories is the category filter value meaning "no restriction".
const AllCategories = "All"

// ErrNotFound is returned when a lookup matches no record, including when
// the requested identifier could not be parsed.
var ErrNotFound = errors.New("resource not found")

// Filter returns the records whose title or description contains query
// (case-insensitively) and whose category equals category. An empty query
// matches every record; an empty category or AllCategories matches every
// category. Source order is preserved and items is never modified.
func Filter[T models.Record](items []T, query, category string) []T {
	needle := strings.ToLower(query)
	anyCategory := category == "" || category == AllCategories

	out := make([]T, 0, len(items))
	for _, item := range items {
		r := item.Common()
		if !anyCategory && r.Category != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(r.Title), needle) &&
			!strings.Contains(strings.ToLower(r.Description), needle) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// ParseID parses a raw identifier taken from a URL segment. Only positive
// integers in canonical decimal form are accepted, so "+1" and "01" miss.
func ParseID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 || strconv.Itoa(id) != raw {
		return 0, false
	}
	return id, true
}

// FindByID returns the record with the given id.
func FindByID[T models.Record](items []T, id int) (T, bool) {
	for _, item := range items {
		if item.Common().ID == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Lookup resolves a raw identifier against items. Malformed input is
// reported the same way as a missing record: ErrNotFound.
func Lookup[T models.Record](items []T, raw string) (T, error) {
	var zero T
	id, ok := ParseID(raw)
	if !ok {
		return zero, ErrNotFound
	}
	item, ok := FindByID(items, id)
	if !ok {
		return zero, ErrNotFound
	}
	return item, nil
}

// Labels returns the category label of every record, in order.
func Labels[T models.Record](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Common().Category
	}
	return out
}

// Categories returns AllCategories followed by the distinct labels across
// all groups, in first-seen order. A label equal to AllCategories collapses
// into the leading entry.
func Categories(groups ...[]string) []string {
	out := []string{AllCategories}
	seen := map[string]bool{AllCategories: true}
	for _, labels := range groups {
		for _, label := range labels {
			if seen[label] {
				continue
			}
			seen[label] = true
			out = append(out, label)
		}
	}
	return out
}
