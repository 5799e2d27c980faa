package handlers

import (
	"crownwellness.az/crown-web/internal/catalog"
	"crownwellness.az/crown-web/internal/gallery"
)

// GalleryView is the filter bar, the grid and the modal, if open.
type GalleryView struct {
	Active     string
	Categories []gallery.CategoryCount
	Items      []catalog.GalleryItem
	Modal      *ModalView
}

// Empty reports whether the active filter shows nothing.
func (g GalleryView) Empty() bool { return len(g.Items) == 0 }

// ModalView is the lightbox for one item within the active filter.
type ModalView struct {
	Item     catalog.GalleryItem
	Position int
	Total    int
	PrevID   string
	NextID   string
}

// IsVideo reports whether the item should render as a video player.
func (m ModalView) IsVideo() bool { return m.Item.Type == "video" }

// BuildGallery renders the viewer state against the catalog. allName and
// allDescription label the All filter in the visitor's language.
func BuildGallery(c *catalog.Catalog, v gallery.Viewer, allName, allDescription string) GalleryView {
	visible := v.Visible(c.Gallery)
	gv := GalleryView{
		Active:     v.ActiveCategory(),
		Categories: gallery.Categories(c.GalleryCategories, c.Gallery, v.ActiveCategory(), allName, allDescription),
		Items:      visible,
	}
	if v.IsOpen() {
		gv.Modal = BuildModal(visible, v.OpenID)
	}
	return gv
}

// BuildModal locates id within visible. It returns nil when id is not
// visible under the current filter.
func BuildModal(visible []catalog.GalleryItem, id string) *ModalView {
	idx := gallery.IndexOf(visible, id)
	if idx < 0 {
		return nil
	}
	m := &ModalView{
		Item:     visible[idx],
		Position: idx + 1,
		Total:    len(visible),
	}
	if prev, ok := gallery.Navigate(visible, id, gallery.Prev); ok {
		m.PrevID = prev.ID
	}
	if next, ok := gallery.Navigate(visible, id, gallery.Next); ok {
		m.NextID = next.ID
	}
	return m
}
