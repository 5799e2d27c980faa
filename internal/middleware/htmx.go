package middleware

import (
	"encoding/json"
	"net/http"
)

// HTMX marks requests coming from htmx so handlers/middlewares can adapt responses
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is := r.Header.Get("HX-Request") == "true"
		ctx := WithHTMX(r.Context(), is)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// HXTarget returns the id of the element htmx will swap into.
func HXTarget(r *http.Request) string { return r.Header.Get("HX-Target") }

// PushURL asks htmx to push url onto the browser history.
func PushURL(w http.ResponseWriter, url string) { w.Header().Set("HX-Push-Url", url) }

// Trigger fires a client-side event once the swap settles. detail may be nil.
func Trigger(w http.ResponseWriter, event string, detail any) {
	if detail == nil {
		w.Header().Set("HX-Trigger-After-Settle", event)
		return
	}
	b, err := json.Marshal(map[string]any{event: detail})
	if err != nil {
		w.Header().Set("HX-Trigger-After-Settle", event)
		return
	}
	w.Header().Set("HX-Trigger-After-Settle", string(b))
}

// Retarget overrides the swap target for this response.
func Retarget(w http.ResponseWriter, selector string) { w.Header().Set("HX-Retarget", selector) }
