package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, dir, lang, slug, body string) {
	t.Helper()
	p := filepath.Join(dir, "pages", lang)
	require.NoError(t, os.MkdirAll(p, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(p, slug+".md"), []byte(body), 0o600))
}

func TestGetRendersFrontMatterAndMarkdown(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePage(t, dir, "en", "about", strings.Join([]string{
		"---",
		"title: Our Story",
		"summary: Baku's first interactive club",
		"updated_at: 2026-02-01",
		"highlights:",
		"  - value: \"5000\"",
		"    label: square meters",
		"---",
		"",
		"## Heritage",
		"",
		"We **care**. <script>alert(1)</script>",
	}, "\n"))

	store := NewStore(dir, "en", 0)
	page, err := store.Get("", "about", "en")
	require.NoError(t, err)
	require.Equal(t, "Our Story", page.Title)
	require.Equal(t, "en", page.Lang)
	require.Equal(t, 2026, page.UpdatedAt.Year())
	require.Len(t, page.Highlights, 1)
	require.Contains(t, string(page.Body), `<h2 id="heritage">Heritage</h2>`)
	require.Contains(t, string(page.Body), "<strong>care</strong>")
	require.NotContains(t, string(page.Body), "<script>")
}

func TestGetFallsBackToDefaultLanguage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePage(t, dir, "en", "about", "---\ntitle: About\n---\nHello")
	writePage(t, dir, "az", "about", "---\ntitle: Haqqımızda\n---\nSalam")

	store := NewStore(dir, "en", time.Minute)
	ru, err := store.Get("pages", "about", "ru")
	require.NoError(t, err)
	require.Equal(t, "About", ru.Title)

	az, err := store.Get("pages", "about", "az")
	require.NoError(t, err)
	require.Equal(t, "Haqqımızda", az.Title)
}

func TestGetRejectsTraversalAndMissing(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir(), "en", 0)
	_, err := store.Get("pages", "../secrets", "en")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get("pages", "nope", "en")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCacheServesUntilExpiry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePage(t, dir, "en", "about", "---\ntitle: First\n---\n")
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewStore(dir, "en", time.Minute)
	store.now = func() time.Time { return now }

	p, err := store.Get("pages", "about", "en")
	require.NoError(t, err)
	require.Equal(t, "First", p.Title)

	writePage(t, dir, "en", "about", "---\ntitle: Second\n---\n")
	p, _ = store.Get("pages", "about", "en")
	require.Equal(t, "First", p.Title)

	now = now.Add(2 * time.Minute)
	p, _ = store.Get("pages", "about", "en")
	require.Equal(t, "Second", p.Title)
}
