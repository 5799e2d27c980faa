package middleware

import (
	"context"
	"net/http"

	"crownwellness.az/crown-web/internal/i18n"
)

const localeCookieName = "hl"

// Locale resolves the visitor's language and stores it in the session and the
// `hl` cookie. Precedence: ?hl= query, session, cookie, Accept-Language.
// Unsupported codes are ignored.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), ctxKeyLocaleFB, bundle.Fallback())
			r = r.WithContext(ctx)
			s := GetSession(r)

			if q, ok := bundle.Normalize(r.URL.Query().Get("hl")); ok {
				if s.Locale != q {
					s.Locale = q
					s.MarkDirty()
				}
				http.SetCookie(w, &http.Cookie{
					Name:     localeCookieName,
					Value:    q,
					Path:     "/",
					SameSite: http.SameSiteLaxMode,
					Secure:   s.secure,
				})
			} else if _, ok := bundle.Normalize(s.Locale); !ok {
				if c, err := r.Cookie(localeCookieName); err == nil {
					if l, ok := bundle.Normalize(c.Value); ok {
						s.Locale = l
					}
				}
				if _, ok := bundle.Normalize(s.Locale); !ok {
					s.Locale = bundle.Resolve(r.Header.Get("Accept-Language"))
				}
				s.MarkDirty()
			}
			w.Header().Set("Content-Language", s.Locale)
			next.ServeHTTP(w, r)
		})
	}
}

// VaryLocale sets Vary header for Accept-Language on dynamic responses
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r)
	})
}

// Lang returns current lang from session or the bundle fallback.
func Lang(r *http.Request) string {
	if s := GetSession(r); s != nil && s.Locale != "" {
		return s.Locale
	}
	if fb, ok := r.Context().Value(ctxKeyLocaleFB).(string); ok && fb != "" {
		return fb
	}
	return "en"
}
