// Package gallery filters gallery items by category and steps through the
// filtered list in the lightbox modal.
package gallery

import (
	"errors"
	"strings"

	"crownwellness.az/crown-web/internal/catalog"
)

// All is the category sentinel that matches every item.
const All = "all"

// ErrUnknownDirection is returned by ParseDirection for anything but prev/next.
var ErrUnknownDirection = errors.New("gallery: unknown direction")

// Direction is a modal navigation step.
type Direction int

const (
	Prev Direction = iota
	Next
)

func (d Direction) String() string {
	if d == Prev {
		return "prev"
	}
	return "next"
}

// ParseDirection maps "prev"/"next" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prev", "previous":
		return Prev, nil
	case "next":
		return Next, nil
	default:
		return Next, ErrUnknownDirection
	}
}

// NormalizeCategory trims surrounding space and maps an empty category to
// All. Case is kept: categories match exactly.
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return All
	}
	return category
}

// Filter returns the items whose category equals category exactly, or every
// item for All. Catalog order is preserved.
func Filter(items []catalog.GalleryItem, category string) []catalog.GalleryItem {
	category = NormalizeCategory(category)
	if category == All {
		out := make([]catalog.GalleryItem, len(items))
		copy(out, items)
		return out
	}
	out := make([]catalog.GalleryItem, 0, len(items))
	for _, it := range items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// Featured returns the featured items in catalog order.
func Featured(items []catalog.GalleryItem) []catalog.GalleryItem {
	var out []catalog.GalleryItem
	for _, it := range items {
		if it.Featured {
			out = append(out, it)
		}
	}
	return out
}

// IndexOf returns the position of id in items, or -1.
func IndexOf(items []catalog.GalleryItem, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Navigate returns the neighbour of currentID in items, wrapping at both ends.
// An id that is not in items counts as position -1, so next lands on the first
// item and prev on the last. It returns false only for an empty list.
func Navigate(items []catalog.GalleryItem, currentID string, dir Direction) (catalog.GalleryItem, bool) {
	n := len(items)
	if n == 0 {
		return catalog.GalleryItem{}, false
	}
	i := IndexOf(items, currentID)
	var next int
	if dir == Prev {
		if i > 0 {
			next = i - 1
		} else {
			next = n - 1
		}
	} else {
		if i < n-1 {
			next = i + 1
		} else {
			next = 0
		}
	}
	return items[next], true
}

// CategoryCount is a filter button with the number of items it shows.
type CategoryCount struct {
	ID          string
	Name        string
	Description string
	Count       int
	Active      bool
}

// Categories prepends the All sentinel to cats and counts items per category.
func Categories(cats []catalog.GalleryCategory, items []catalog.GalleryItem, active, allName, allDescription string) []CategoryCount {
	active = NormalizeCategory(active)
	counts := map[string]int{}
	for _, it := range items {
		counts[it.Category]++
	}
	out := make([]CategoryCount, 0, len(cats)+1)
	out = append(out, CategoryCount{
		ID:          All,
		Name:        allName,
		Description: allDescription,
		Count:       len(items),
		Active:      active == All,
	})
	for _, c := range cats {
		out = append(out, CategoryCount{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Count:       counts[c.ID],
			Active:      active == c.ID,
		})
	}
	return out
}
