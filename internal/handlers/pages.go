package handlers

import (
	"crownwellness.az/crown-web/internal/catalog"
	"crownwellness.az/crown-web/internal/content"
	"crownwellness.az/crown-web/internal/nav"
)

// Meta is the document title and description.
type Meta struct {
	Title       string
	Description string
	Canonical   string
}

// LangOption is an entry of the language switcher.
type LangOption struct {
	Code   string
	Href   string
	Active bool
}

// PageData is the view model every full page renders through the shared layout.
type PageData struct {
	Lang      string
	Languages []LangOption
	Meta      Meta
	Analytics Analytics
	CSRFToken string

	Path        string
	Nav         []nav.RenderedItem
	Sections    []nav.RenderedItem
	Breadcrumbs []nav.Crumb

	// ShowSplash renders the one-time splash overlay.
	ShowSplash bool

	// Optional per-page view model payloads
	Membership *MembershipView
	Gallery    *GalleryView
	Trainers   *TrainersView
	Contact    *ContactView
	Content    *content.Page
	Featured   []catalog.GalleryItem
}

// NewPageData fills the layout fields shared by every page.
func NewPageData(lang, path string, languages []string) PageData {
	opts := make([]LangOption, 0, len(languages))
	for _, l := range languages {
		opts = append(opts, LangOption{Code: l, Href: path + "?hl=" + l, Active: l == lang})
	}
	return PageData{
		Lang:        lang,
		Languages:   opts,
		Path:        path,
		Nav:         nav.Build(path),
		Sections:    nav.BuildSections(),
		Breadcrumbs: nav.Breadcrumbs(path),
	}
}
