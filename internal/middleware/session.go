package middleware

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"go.uber.org/zap"

	"crownwellness.az/crown-web/internal/gallery"
	"crownwellness.az/crown-web/internal/selection"
)

const (
	sessionCookieName = "CROWN_WEB_SESSION"
	defaultSessionAge = 30 * 24 * time.Hour
)

// SessionData is everything the site remembers about a visitor. It lives
// entirely in the signed cookie.
type SessionData struct {
	ID         string             `json:"id"`
	Locale     string             `json:"locale,omitempty"`
	CSRFToken  string             `json:"csrf,omitempty"`
	SplashSeen bool               `json:"splash,omitempty"`
	Membership selection.Snapshot `json:"membership"`
	Gallery    gallery.Viewer     `json:"gallery"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`

	dirty  bool
	secure bool
}

// SessionOptions configures the cookie codec.
type SessionOptions struct {
	HashKey  []byte
	BlockKey []byte
	Secure   bool
	MaxAge   time.Duration
	Logger   *zap.Logger
}

// SessionStore encodes sessions into signed (optionally encrypted) cookies.
type SessionStore struct {
	codec  *securecookie.SecureCookie
	secure bool
	maxAge time.Duration
	now    func() time.Time
}

// NewSessionStore builds a store. Without a hash key it generates a
// process-ephemeral one, so sessions do not survive restarts.
func NewSessionStore(opts SessionOptions) *SessionStore {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	hashKey := opts.HashKey
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(32)
		logger.Warn("session: using ephemeral hash key; set CROWN_WEB_SESSION_HASH_KEY for production")
	}
	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = defaultSessionAge
	}
	codec := securecookie.New(hashKey, opts.BlockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(maxAge.Seconds()))
	return &SessionStore{
		codec:  codec,
		secure: opts.Secure,
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Middleware loads or initializes a session and stores it in request context.
// The cookie is written just before the first header write when the session
// is new or was modified.
func (s *SessionStore) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sd, fromCookie := s.read(r)
		sd.secure = s.secure
		if sd.ID == "" {
			sd.ID = randID()
			sd.CreatedAt = s.now().UTC()
			sd.UpdatedAt = sd.CreatedAt
			sd.CSRFToken = newCSRFToken()
			sd.dirty = true
		}
		ctx := context.WithValue(r.Context(), ctxKeySession, sd)
		rw := NewResponseRecorder(w)
		rw.SetBeforeWrite(func(w http.ResponseWriter) {
			if sd.dirty || !fromCookie {
				s.write(w, sd)
			}
		})
		next.ServeHTTP(rw, r.WithContext(ctx))
		// nothing written (e.g. HEAD or empty 200): persist now
		if !rw.Wrote() && (sd.dirty || !fromCookie) {
			s.write(w, sd)
		}
	})
}

func (s *SessionStore) read(r *http.Request) (*SessionData, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return &SessionData{}, false
	}
	var sd SessionData
	if err := s.codec.Decode(sessionCookieName, c.Value, &sd); err != nil {
		return &SessionData{}, false
	}
	return &sd, true
}

func (s *SessionStore) write(w http.ResponseWriter, sd *SessionData) {
	encoded, err := s.codec.Encode(sessionCookieName, sd)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  s.now().Add(s.maxAge),
		MaxAge:   int(s.maxAge.Seconds()),
	})
}

// GetSession returns session data from context
func GetSession(r *http.Request) *SessionData {
	if v := r.Context().Value(ctxKeySession); v != nil {
		if sd, ok := v.(*SessionData); ok {
			return sd
		}
	}
	return &SessionData{}
}

// MarkDirty flags the session for writing at end of request
func (s *SessionData) MarkDirty() { s.dirty = true; s.UpdatedAt = time.Now().UTC() }

// Selection returns the membership configurator state.
func (s *SessionData) Selection() *selection.State {
	return selection.FromSnapshot(s.Membership)
}

// SetSelection stores the configurator state. An unchanged state leaves the
// cookie alone.
func (s *SessionData) SetSelection(st *selection.State) {
	if st == nil || s.Selection().Equal(st) {
		return
	}
	s.Membership = st.Snapshot()
	s.MarkDirty()
}

// SetGallery stores the gallery viewer state.
func (s *SessionData) SetGallery(v gallery.Viewer) {
	if s.Gallery == v {
		return
	}
	s.Gallery = v
	s.MarkDirty()
}

// DismissSplash records that the visitor has seen the splash screen.
func (s *SessionData) DismissSplash() {
	if s.SplashSeen {
		return
	}
	s.SplashSeen = true
	s.MarkDirty()
}

func randID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
