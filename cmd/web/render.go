package main

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"crownwellness.az/crown-web/internal/format"
	handlersPkg "crownwellness.az/crown-web/internal/handlers"
	mw "crownwellness.az/crown-web/internal/middleware"
	"crownwellness.az/crown-web/internal/observability"
)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"now": time.Now,
		"t": func(lang, key string) string {
			if i18nBundle == nil {
				return key
			}
			return i18nBundle.T(lang, key)
		},
		"tf": func(lang, key string, pairs ...any) string {
			if i18nBundle == nil {
				return key
			}
			strs := make([]string, len(pairs))
			for i, p := range pairs {
				strs[i] = fmt.Sprint(p)
			}
			return i18nBundle.Tf(lang, key, strs...)
		},
		"currency": format.FmtCurrency,
		"date":     format.FmtDate,
		"join":     strings.Join,
		"add":      func(a, b int) int { return a + b },
		"dict": func(pairs ...any) (map[string]any, error) {
			if len(pairs)%2 != 0 {
				return nil, errors.New("dict: odd number of arguments")
			}
			m := make(map[string]any, len(pairs)/2)
			for i := 0; i < len(pairs); i += 2 {
				k, ok := pairs[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
				}
				m[k] = pairs[i+1]
			}
			return m, nil
		},
		"csv": func(ids []string) string { return strings.Join(ids, ",") },
	}
}

func parseTemplates() (*template.Template, error) {
	// Recursively discover and parse all .tmpl files. Note: ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	return template.New("_root").Funcs(templateFuncs()).ParseFiles(files...)
}

// templates returns the cached set, reparsing on each call in dev mode.
func templates() (*template.Template, error) {
	if devMode {
		return parseTemplates()
	}
	if tmplCache == nil {
		return nil, errors.New("template not initialized")
	}
	return tmplCache, nil
}

// renderPage executes page_<name>, which wraps itself in the layout_head and
// layout_foot templates.
func renderPage(w http.ResponseWriter, r *http.Request, name string, data handlersPkg.PageData) {
	renderPageStatus(w, r, http.StatusOK, name, data)
}

func renderPageStatus(w http.ResponseWriter, r *http.Request, status int, name string, data handlersPkg.PageData) {
	renderTemplateStatus(w, r, status, "page_"+name, data)
}

// renderTemplate executes a single named template, typically an htmx fragment.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	renderTemplateStatus(w, r, http.StatusOK, name, data)
}

func renderTemplateStatus(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	t, err := templates()
	if err != nil {
		templateError(w, r, "template parse error", err)
		return
	}
	execute(w, r, t, name, status, data)
}

// execute buffers the output so a failing template never leaves a half
// written 200 behind.
func execute(w http.ResponseWriter, r *http.Request, t *template.Template, name string, status int, data any) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		templateError(w, r, "template exec error", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func templateError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	observability.FromContext(r.Context()).Error(msg, zap.Error(err))
	if devMode {
		http.Error(w, fmt.Sprintf("%s: %v", msg, err), http.StatusInternalServerError)
		return
	}
	mw.WriteError(w, r, http.StatusInternalServerError, "internal error")
}

// i18nOrDefault returns the translation or def when the key is missing.
func i18nOrDefault(lang, key, def string) string {
	if i18nBundle == nil {
		return def
	}
	if v := i18nBundle.T(lang, key); v != "" && v != key {
		return v
	}
	return def
}

func absoluteURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.Path
}

// newPage fills the shared layout fields for the current request.
func newPage(r *http.Request, titleKey, descKey string) handlersPkg.PageData {
	lang := mw.Lang(r)
	var languages []string
	if i18nBundle != nil {
		languages = i18nBundle.Supported()
	}
	vm := handlersPkg.NewPageData(lang, r.URL.Path, languages)
	vm.CSRFToken = mw.CSRFToken(r)
	vm.Analytics = siteAnalytics

	brand := i18nOrDefault(lang, "brand.name", "Crown Wellness Club")
	vm.Meta.Title = brand
	if t := i18nOrDefault(lang, titleKey, ""); t != "" {
		vm.Meta.Title = t + " | " + brand
	}
	vm.Meta.Description = i18nOrDefault(lang, descKey, "")
	vm.Meta.Canonical = absoluteURL(r)
	return vm
}

// retitle replaces the page title and description, keeping the brand suffix.
func retitle(vm *handlersPkg.PageData, title, desc string) {
	brand := i18nOrDefault(vm.Lang, "brand.name", "Crown Wellness Club")
	if title != "" {
		vm.Meta.Title = title + " | " + brand
	}
	if desc != "" {
		vm.Meta.Description = desc
	}
}
