package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rbaskam/goblog/internal/auth"
	"github.com/rbaskam/goblog/internal/session"
	"github.com/rbaskam/goblog/internal/utils"
)

type ctxKey string

const (
	userIDKey       ctxKey = "user_id"
	sessionTokenKey ctxKey = "session_token"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "goblog_session"

// LoginPath is where unauthenticated requests get redirected.
const LoginPath = "/login"

// SessionReader resolves raw session tokens to their server-side records.
type SessionReader interface {
	Get(ctx context.Context, token string) (*session.Session, error)
}

// Auth guards routes that require an authenticated caller. It accepts either
// a Bearer access token (API clients) or a session cookie (browser flows);
// requests with neither are redirected to the login page.
type Auth struct {
	sessions SessionReader
	secret   string
}

func NewAuth(sessions SessionReader, secret string) *Auth {
	return &Auth{sessions: sessions, secret: secret}
}

func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		if authz := r.Header.Get("Authorization"); authz != "" {
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				redirectToLogin(w, r)
				return
			}

			claims, err := auth.ParseAccessToken(strings.TrimSpace(parts[1]), a.secret)
			if err != nil {
				redirectToLogin(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.UserID())))
			return
		}

		cookie, err := r.Cookie(SessionCookie)
		if err != nil || cookie.Value == "" {
			redirectToLogin(w, r)
			return
		}

		sess, err := a.sessions.Get(r.Context(), cookie.Value)
		if errors.Is(err, session.ErrNotFound) {
			redirectToLogin(w, r)
			return
		}
		if err != nil {
			utils.JSONError(w, http.StatusInternalServerError, "internal error")
			return
		}

		ctx := WithUserID(r.Context(), sess.UserID)
		ctx = WithSessionToken(ctx, cookie.Value)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithUserID records the authenticated caller's id on the context.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// WithSessionToken records the raw cookie token on the context so logout can
// destroy the matching session.
func WithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, sessionTokenKey, token)
}

// UserID returns the authenticated caller's id from the request context.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// SessionToken returns the raw session token when the caller authenticated
// with a cookie rather than a Bearer token.
func SessionToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(sessionTokenKey).(string)
	return token, ok
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, LoginPath, http.StatusFound)
}
