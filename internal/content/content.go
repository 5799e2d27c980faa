// Package content serves localized markdown pages with YAML front matter from
// a local directory.
package content

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no language variant of a page exists.
var ErrNotFound = errors.New("content: page not found")

const (
	defaultKind     = "pages"
	defaultCacheTTL = 5 * time.Minute
)

// Page is a rendered markdown page.
type Page struct {
	Kind       string
	Slug       string
	Lang       string
	Title      string
	Summary    string
	Eyebrow    string
	Hero       string
	Body       template.HTML
	Highlights []Highlight
	UpdatedAt  time.Time
}

// Highlight is a headline figure shown beside the page body.
type Highlight struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

type frontMatter struct {
	Title      string      `yaml:"title"`
	Summary    string      `yaml:"summary"`
	Lang       string      `yaml:"lang"`
	Eyebrow    string      `yaml:"eyebrow"`
	Hero       string      `yaml:"hero"`
	UpdatedAt  string      `yaml:"updated_at"`
	Highlights []Highlight `yaml:"highlights"`
}

// Store reads pages from <dir>/<kind>/<lang>/<slug>.md.
type Store struct {
	dir      string
	fallback string
	ttl      time.Duration
	now      func() time.Time

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// NewStore reads from dir and falls back to the fallback language. A ttl of
// zero disables caching, which dev mode uses.
func NewStore(dir, fallback string, ttl time.Duration) *Store {
	if strings.TrimSpace(dir) == "" {
		dir = "content"
	}
	if ttl < 0 {
		ttl = defaultCacheTTL
	}
	return &Store{
		dir:      dir,
		fallback: fallback,
		ttl:      ttl,
		now:      time.Now,
		cache:    map[string]cacheEntry{},
	}
}

// Get returns the page for slug in lang, falling back to the store's
// fallback language.
func (s *Store) Get(kind, slug, lang string) (Page, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		kind = defaultKind
	}
	slug = sanitizeSlug(slug)
	if slug == "" || sanitizeSlug(kind) == "" {
		return Page{}, ErrNotFound
	}
	lang = strings.ToLower(strings.TrimSpace(lang))

	key := kind + "|" + lang + "|" + slug
	if page, ok := s.cached(key); ok {
		return page, nil
	}

	priority := []string{lang}
	if lang != s.fallback {
		priority = append(priority, s.fallback)
	}
	for _, candidate := range priority {
		if candidate == "" {
			continue
		}
		page, err := s.read(kind, slug, candidate)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return Page{}, err
		}
		s.store(key, page)
		return page, nil
	}
	return Page{}, ErrNotFound
}

func (s *Store) read(kind, slug, lang string) (Page, error) {
	file := filepath.Join(s.dir, kind, lang, slug+".md")
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, ErrNotFound
		}
		return Page{}, err
	}
	fm, body := splitFrontMatter(string(data))
	var front frontMatter
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter %s: %w", file, err)
		}
	}
	html, err := RenderMarkdown(body)
	if err != nil {
		return Page{}, fmt.Errorf("content: render %s: %w", file, err)
	}
	page := Page{
		Kind:       kind,
		Slug:       slug,
		Lang:       firstNonEmpty(strings.TrimSpace(front.Lang), lang),
		Title:      strings.TrimSpace(front.Title),
		Summary:    strings.TrimSpace(front.Summary),
		Eyebrow:    strings.TrimSpace(front.Eyebrow),
		Hero:       strings.TrimSpace(front.Hero),
		Body:       html,
		Highlights: front.Highlights,
		UpdatedAt:  parseDate(front.UpdatedAt),
	}
	if page.UpdatedAt.IsZero() {
		if info, err := os.Stat(file); err == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	return page, nil
}

func (s *Store) cached(key string) (Page, bool) {
	if s.ttl == 0 {
		return Page{}, false
	}
	s.mu.RLock()
	entry, ok := s.cache[key]
	s.mu.RUnlock()
	if !ok || s.now().After(entry.expires) {
		return Page{}, false
	}
	return clonePage(entry.page), true
}

func (s *Store) store(key string, page Page) {
	if s.ttl == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = cacheEntry{page: clonePage(page), expires: s.now().Add(s.ttl)}
}

func clonePage(p Page) Page {
	cp := p
	cp.Highlights = append([]Highlight(nil), p.Highlights...)
	return cp
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.Trim(strings.ToLower(strings.TrimSpace(slug)), "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
