package i18n

import "testing"

func loadBundle(t *testing.T) *Bundle {
	t.Helper()
	b, err := Load("../../locales", "en", []string{"en", "az", "ru"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return b
}

func TestResolveHonorsQValues(t *testing.T) {
	b := loadBundle(t)
	if got := b.Resolve("az;q=0.8, ru;q=0.9"); got != "ru" {
		t.Fatalf("expected ru, got %s", got)
	}
}

func TestResolveRegionalAndUnknown(t *testing.T) {
	b := loadBundle(t)
	if got := b.Resolve("az-AZ,az;q=0.9"); got != "az" {
		t.Fatalf("expected az, got %s", got)
	}
	if got := b.Resolve("de-DE"); got != "en" {
		t.Fatalf("expected fallback en, got %s", got)
	}
	if got := b.Resolve(""); got != "en" {
		t.Fatalf("expected fallback en for empty header, got %s", got)
	}
}

func TestTFallsBack(t *testing.T) {
	b := loadBundle(t)
	if got := b.T("ru", "nav.home"); got == "nav.home" || got == "" {
		t.Fatalf("expected ru nav.home translation, got %q", got)
	}
	if got := b.T("xx", "nav.home"); got != b.T("en", "nav.home") {
		t.Fatalf("expected en fallback for unknown lang, got %q", got)
	}
	if got := b.T("en", "missing.key"); got != "missing.key" {
		t.Fatalf("expected key echo, got %q", got)
	}
}

func TestTfSubstitutes(t *testing.T) {
	b := loadBundle(t)
	got := b.Tf("en", "membership.addons_selected", "count", "2")
	if got != "2 add-ons selected" {
		t.Fatalf("unexpected substitution: %q", got)
	}
}

func TestNormalize(t *testing.T) {
	b := loadBundle(t)
	if l, ok := b.Normalize("RU-ru"); !ok || l != "ru" {
		t.Fatalf("expected ru, got %q %v", l, ok)
	}
	if _, ok := b.Normalize("ja"); ok {
		t.Fatalf("ja should not be supported")
	}
}
