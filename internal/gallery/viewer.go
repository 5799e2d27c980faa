package gallery

import "crownwellness.az/crown-web/internal/catalog"

// Viewer is the per-session gallery state: the active filter and the item
// open in the modal, if any. It is stored in the session cookie.
type Viewer struct {
	Category string `json:"cat,omitempty"`
	OpenID   string `json:"open,omitempty"`
}

// ActiveCategory returns the filter, defaulting to All.
func (v Viewer) ActiveCategory() string { return NormalizeCategory(v.Category) }

// Select changes the filter and closes the modal.
func (v *Viewer) Select(category string) {
	v.Category = NormalizeCategory(category)
	v.OpenID = ""
}

// Open shows id in the modal.
func (v *Viewer) Open(id string) { v.OpenID = id }

// Close hides the modal.
func (v *Viewer) Close() { v.OpenID = "" }

// IsOpen reports whether the modal shows an item.
func (v Viewer) IsOpen() bool { return v.OpenID != "" }

// Visible returns the items the current filter shows.
func (v Viewer) Visible(items []catalog.GalleryItem) []catalog.GalleryItem {
	return Filter(items, v.ActiveCategory())
}

// Navigate moves the modal to the neighbouring visible item.
func (v *Viewer) Navigate(items []catalog.GalleryItem, dir Direction) (catalog.GalleryItem, bool) {
	it, ok := Navigate(v.Visible(items), v.OpenID, dir)
	if ok {
		v.OpenID = it.ID
	}
	return it, ok
}
