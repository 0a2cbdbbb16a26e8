package session

import (
	"context"
	"net/http"
	"strings"

	authrepo "postboard/internal/auth/repository"
	commonhttp "postboard/internal/common/http"
	"postboard/internal/common/logger"
	userdomain "postboard/internal/user/domain"
	userrepo "postboard/internal/user/repository"
)

type contextKey string

const userKey contextKey = "session_user"

// Manager resolves the session cookie to a user. A token whose jti is in
// the revoked set counts as no session at all.
type Manager struct {
	codec       *Codec
	revokedRepo authrepo.RevokedSessionRepository
	userRepo    userrepo.Repository
	log         *logger.Logger
}

func NewManager(
	codec *Codec,
	revokedRepo authrepo.RevokedSessionRepository,
	userRepo userrepo.Repository,
	log *logger.Logger,
) *Manager {
	return &Manager{
		codec:       codec,
		revokedRepo: revokedRepo,
		userRepo:    userRepo,
		log:         log,
	}
}

// Claims parses a raw session token without touching the revocation set
// or the user store.
func (m *Manager) Claims(token string) (Claims, error) {
	return m.codec.Parse(token)
}

// Resolve returns the authenticated user for the request, or false when
// the request carries no valid session.
func (m *Manager) Resolve(r *http.Request) (userdomain.User, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return userdomain.User{}, false
	}

	claims, err := m.codec.Parse(cookie.Value)
	if err != nil {
		m.log.Warnf("session parse failed path=%s: %v", r.URL.Path, err)
		return userdomain.User{}, false
	}

	revoked, err := m.revokedRepo.IsRevoked(r.Context(), claims.JTI)
	if err != nil {
		m.log.Errorf("session revocation check failed path=%s: %v", r.URL.Path, err)
		return userdomain.User{}, false
	}
	if revoked {
		return userdomain.User{}, false
	}

	user, err := m.userRepo.FindByID(r.Context(), userdomain.ID(claims.UserID))
	if err != nil {
		m.log.Warnf("session user lookup failed path=%s: %v", r.URL.Path, err)
		return userdomain.User{}, false
	}

	return user, true
}

// RequireAuth redirects anonymous browser requests to the login page;
// JSON clients get a 401 instead.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := m.Resolve(r)
		if !ok {
			if strings.Contains(r.Header.Get("Accept"), "application/json") {
				commonhttp.WriteError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RedirectIfAuthenticated sends already-signed-in users to the feed
// instead of showing login or registration again.
func (m *Manager) RedirectIfAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := m.Resolve(r); ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Attach resolves the session without requiring one; handlers that serve
// both anonymous and signed-in users read the result via CurrentUser.
func (m *Manager) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, ok := m.Resolve(r); ok {
			ctx := context.WithValue(r.Context(), userKey, user)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func CurrentUser(ctx context.Context) (userdomain.User, bool) {
	val := ctx.Value(userKey)
	user, ok := val.(userdomain.User)
	return user, ok
}
