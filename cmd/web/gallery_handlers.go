package main

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"crownwellness.az/crown-web/internal/gallery"
	handlersPkg "crownwellness.az/crown-web/internal/handlers"
	mw "crownwellness.az/crown-web/internal/middleware"
)

// GalleryItemsFrag filters the grid and pushes the filtered URL.
func GalleryItemsFrag(w http.ResponseWriter, r *http.Request) {
	cat := catalogs.Get()
	category, ok := galleryCategory(cat, r.URL.Query().Get("category"))
	if !ok {
		mw.WriteError(w, r, http.StatusNotFound, "unknown gallery category")
		return
	}
	s := mw.GetSession(r)
	v := s.Gallery
	v.Select(category)
	s.SetGallery(v)

	push := "/gallery"
	if category != gallery.All {
		push += "?category=" + url.QueryEscape(category)
	}
	mw.PushURL(w, push)

	vm := newPage(r, "gallery.title", "")
	vm.Gallery = buildGallery(cat, v, vm.Lang)
	renderTemplate(w, r, "frag_gallery_grid", vm)
}

// GalleryModalFrag opens one item of the active filter in the lightbox.
func GalleryModalFrag(w http.ResponseWriter, r *http.Request) {
	s := mw.GetSession(r)
	v := s.Gallery
	v.Open(chi.URLParam(r, "itemID"))
	renderModal(w, r, v)
}

// GalleryNavigateFrag moves the lightbox to the previous or next item,
// wrapping at both ends.
func GalleryNavigateFrag(w http.ResponseWriter, r *http.Request) {
	dir, err := gallery.ParseDirection(chi.URLParam(r, "direction"))
	if err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "direction must be prev or next")
		return
	}
	cat := catalogs.Get()
	s := mw.GetSession(r)
	v := s.Gallery
	v.Open(chi.URLParam(r, "itemID"))
	if _, ok := v.Navigate(cat.Gallery, dir); !ok {
		mw.WriteError(w, r, http.StatusNotFound, "gallery is empty")
		return
	}
	renderModal(w, r, v)
}

// GalleryModalClose closes the lightbox; the empty body swaps it away.
func GalleryModalClose(w http.ResponseWriter, r *http.Request) {
	s := mw.GetSession(r)
	v := s.Gallery
	v.Close()
	s.SetGallery(v)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
}

func renderModal(w http.ResponseWriter, r *http.Request, v gallery.Viewer) {
	cat := catalogs.Get()
	modal := handlersPkg.BuildModal(v.Visible(cat.Gallery), v.OpenID)
	if modal == nil {
		mw.WriteError(w, r, http.StatusNotFound, "gallery item not found")
		return
	}
	mw.GetSession(r).SetGallery(v)

	vm := newPage(r, "gallery.title", "")
	vm.Gallery = &handlersPkg.GalleryView{Active: v.ActiveCategory(), Modal: modal}
	renderTemplate(w, r, "frag_gallery_modal", vm)
}
