package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	t.Parallel()

	c := Default()
	require.NoError(t, c.Validate())
	require.Len(t, c.Plans, 3)
	require.Len(t, c.AddOns, 5)
	require.Len(t, c.Gallery, 17)

	a, ok := c.AddOn("fitness-zone")
	require.True(t, ok)
	require.EqualValues(t, 149, a.MonthlyPrice)
	require.EqualValues(t, 1490, a.YearlyPrice)

	_, ok = c.AddOn("sauna-only")
	require.False(t, ok)

	p, ok := c.Plan("Premium")
	require.True(t, ok)
	require.True(t, p.Popular)
}

func TestDefaultReturnsFreshCopy(t *testing.T) {
	t.Parallel()

	a := Default()
	a.AddOns[0].MonthlyPrice = 1
	b := Default()
	require.EqualValues(t, 149, b.AddOns[0].MonthlyPrice)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	t.Parallel()

	c := Default()
	c.AddOns = append(c.AddOns, AddOnFeature{ID: "fitness-zone", MonthlyPrice: -1, Category: "sauna"})
	err := c.Validate()

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields(), 3)
}

func TestParseFillsMissingSections(t *testing.T) {
	t.Parallel()

	doc := []byte(`
currency: AZN
add_ons:
  - id: a
    name: A
    monthly_price: 149
    yearly_price: 1490
    category: fitness
  - id: b
    name: B
    monthly_price: 199
    yearly_price: 1990
    category: spa
`)
	c, err := Parse(doc, "inline")
	require.NoError(t, err)
	require.Equal(t, "AZN", c.Currency)
	require.Len(t, c.AddOns, 2)
	require.Len(t, c.Plans, 3, "plans fall back to built-in")
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestHolderReloadKeepsPreviousOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("currency: USD\n"), 0o600))

	h, err := NewHolder(path, nil)
	require.NoError(t, err)
	require.Len(t, h.Get().AddOns, 5)

	var calls int
	var lastErr error
	h.OnChange(func(_ *Catalog, err error) {
		calls++
		lastErr = err
	})

	require.NoError(t, os.WriteFile(path, []byte("add_ons: [{id: x, name: X, monthly_price: 10, yearly_price: 100, category: spa}]\n"), 0o600))
	require.NoError(t, h.Reload())
	require.Len(t, h.Get().AddOns, 1)

	require.NoError(t, os.WriteFile(path, []byte("add_ons: [{id: x, category: nope}]\n"), 0o600))
	require.Error(t, h.Reload())
	require.Len(t, h.Get().AddOns, 1)
	_, ok := h.Get().AddOn("x")
	require.True(t, ok)

	require.Equal(t, 2, calls)
	require.Error(t, lastErr)
}

// replaceFile swaps body into path with a rename, the way editors save.
func replaceFile(path, body string) {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(body), 0o600); err != nil {
		return
	}
	_ = os.Rename(tmp, path)
}

func TestHolderWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("currency: USD\n"), 0o600))

	h, err := NewHolder(path, nil)
	require.NoError(t, err)
	require.Len(t, h.Get().AddOns, 5)

	var mu sync.Mutex
	var failures int
	h.OnChange(func(_ *Catalog, err error) {
		if err != nil {
			mu.Lock()
			failures++
			mu.Unlock()
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Watch(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	valid := "add_ons: [{id: x, name: X, monthly_price: 10, yearly_price: 100, category: spa}]\n"
	// rewrite until the watcher, which starts asynchronously, picks it up
	require.Eventually(t, func() bool {
		replaceFile(path, valid)
		return len(h.Get().AddOns) == 1
	}, 5*time.Second, 50*time.Millisecond)

	require.Eventually(t, func() bool {
		replaceFile(path, "add_ons: [{id: x, category: nope}]\n")
		mu.Lock()
		defer mu.Unlock()
		return failures > 0
	}, 5*time.Second, 50*time.Millisecond)

	require.Len(t, h.Get().AddOns, 1)
	_, ok := h.Get().AddOn("x")
	require.True(t, ok)
}

func TestHolderWatchWithoutFileWaitsForCancel(t *testing.T) {
	t.Parallel()

	h := NewStaticHolder(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.NoError(t, h.Watch(ctx))
}

func TestHolderMissingFileServesDefault(t *testing.T) {
	t.Parallel()

	h, err := NewHolder(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.NoError(t, err)
	require.Len(t, h.Get().AddOns, 5)
}

func TestShippedCatalogMatchesDefault(t *testing.T) {
	t.Parallel()

	shipped, err := Load("../../data/catalog.yaml")
	require.NoError(t, err)
	want := Default()

	require.Equal(t, want.Currency, shipped.Currency)
	require.Len(t, shipped.Plans, len(want.Plans))
	for i, p := range want.Plans {
		require.Equal(t, p.Slug, shipped.Plans[i].Slug)
		require.Equal(t, p.MonthlyPrice, shipped.Plans[i].MonthlyPrice)
		require.Equal(t, p.YearlyPrice, shipped.Plans[i].YearlyPrice)
	}
	require.Len(t, shipped.AddOns, len(want.AddOns))
	for i, a := range want.AddOns {
		require.Equal(t, a.ID, shipped.AddOns[i].ID)
		require.Equal(t, a.MonthlyPrice, shipped.AddOns[i].MonthlyPrice)
		require.Equal(t, a.YearlyPrice, shipped.AddOns[i].YearlyPrice)
	}
	require.Len(t, shipped.Gallery, len(want.Gallery))
	require.Len(t, shipped.Trainers, len(want.Trainers))
}
