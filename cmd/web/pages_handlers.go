package main

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"crownwellness.az/crown-web/internal/catalog"
	"crownwellness.az/crown-web/internal/content"
	"crownwellness.az/crown-web/internal/gallery"
	handlersPkg "crownwellness.az/crown-web/internal/handlers"
	"crownwellness.az/crown-web/internal/leads"
	mw "crownwellness.az/crown-web/internal/middleware"
	"crownwellness.az/crown-web/internal/observability"
)

// HomeHandler renders the landing page with the membership configurator.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	cat := catalogs.Get()
	s := mw.GetSession(r)
	vm := newPage(r, "home.title", "home.description")

	mv := handlersPkg.BuildMembership(cat, s.Selection(), vm.Lang)
	vm.Membership = &mv
	vm.Contact = handlersPkg.NewContactView(cat, leads.KindContact)
	vm.Featured = gallery.Featured(cat.Gallery)
	vm.ShowSplash = !s.SplashSeen

	renderPage(w, r, "home", vm)
}

// AboutHandler renders the markdown about page.
func AboutHandler(w http.ResponseWriter, r *http.Request) {
	vm := newPage(r, "about.title", "about.description")
	page, err := contentStore.Get("pages", "about", vm.Lang)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			mw.WriteError(w, r, http.StatusNotFound, "page not found")
			return
		}
		observability.FromContext(r.Context()).Error("load about page", zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	vm.Content = &page
	retitle(&vm, page.Title, page.Summary)
	renderPage(w, r, "about", vm)
}

// TrainersHandler renders the coaching staff.
func TrainersHandler(w http.ResponseWriter, r *http.Request) {
	vm := newPage(r, "trainers.title", "trainers.description")
	tv := handlersPkg.BuildTrainers(catalogs.Get())
	vm.Trainers = &tv
	renderPage(w, r, "trainers", vm)
}

// GalleryHandler renders the gallery page. A valid ?category= preselects the
// filter; anything else shows everything.
func GalleryHandler(w http.ResponseWriter, r *http.Request) {
	cat := catalogs.Get()
	s := mw.GetSession(r)
	v := s.Gallery
	if q := r.URL.Query().Get("category"); q != "" {
		if category, ok := galleryCategory(cat, q); ok {
			v.Select(category)
		}
	}
	// a full page load never starts with the modal open
	v.Close()
	s.SetGallery(v)

	vm := newPage(r, "gallery.title", "gallery.description")
	vm.Gallery = buildGallery(cat, v, vm.Lang)
	renderPage(w, r, "gallery", vm)
}

// ContactHandler renders the contact page. ?plan= preselects the interest.
func ContactHandler(w http.ResponseWriter, r *http.Request) {
	vm := newPage(r, "contact.title", "contact.description")
	cat := catalogs.Get()
	view := handlersPkg.NewContactView(cat, leads.KindContact)
	if plan := r.URL.Query().Get("plan"); cat.HasInterest(plan) {
		view.Form.InterestedIn = plan
	}
	vm.Contact = view
	renderPage(w, r, "contact", vm)
}

// SplashDismissHandler records that the visitor has seen the splash and
// swaps the overlay out.
func SplashDismissHandler(w http.ResponseWriter, r *http.Request) {
	mw.GetSession(r).DismissSplash()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
}

func buildGallery(cat *catalog.Catalog, v gallery.Viewer, lang string) *handlersPkg.GalleryView {
	gv := handlersPkg.BuildGallery(cat, v,
		i18nOrDefault(lang, "gallery.all", "All"),
		i18nOrDefault(lang, "gallery.all_description", "Complete collection"),
	)
	return &gv
}

// galleryCategory normalizes raw and reports whether the catalog knows it.
func galleryCategory(cat *catalog.Catalog, raw string) (string, bool) {
	category := gallery.NormalizeCategory(raw)
	if category == gallery.All || cat.HasGalleryCategory(category) {
		return category, true
	}
	return "", false
}
