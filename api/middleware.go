package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.uber.org/zap"

	"github.com/barangaycms/barangay-cms-api/models"
)

// SessionCookieName is the cookie carrying the opaque session token for
// browser clients. API clients send the same token (or a signed API token)
// as an Authorization bearer header instead.
const SessionCookieName = "bcms_session"

// sessionTTL is the fixed idle session expiry.
const sessionTTL = 30 * time.Minute

// apiTokenTTL is the lifetime of signed API tokens issued by /auth/token.
const apiTokenTTL = 24 * time.Hour

var authenticator auth.Authenticator
var cache store.Cache
var jwtSecret []byte

type contextKey int

const sessionContextKey contextKey = iota

// SetupGoGuardian sets up the go-guardian middleware. Session tokens live in
// a FIFO cache with the session TTL; signed API tokens are verified on cache
// miss and then cached like any other session.
func SetupGoGuardian(secret string) {
	jwtSecret = []byte(secret)
	authenticator = auth.New()
	cache = store.NewFIFO(context.Background(), sessionTTL)
	tokenStrategy := bearer.New(verifyAPIToken, cache)
	authenticator.EnableStrategy(bearer.CachedStrategyKey, tokenStrategy)
}

// Middleware authenticates the request from the session cookie or the
// Authorization header and injects the session identity into the request
// context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") == "" {
			if c, err := r.Cookie(SessionCookieName); err == nil {
				r.Header.Set("Authorization", "Bearer "+c.Value)
			}
		}
		info, err := authenticator.Authenticate(r)
		if err != nil {
			zap.S().Errorw("unauthorized",
				"url", r.URL)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}
		sess := sessionFromInfo(info)
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

// RequireOfficial gates a handler to official sessions (admins included).
func RequireOfficial(next http.Handler) http.Handler {
	return Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())
		if !sess.IsOfficial() {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error": "Access denied. This page is only for officials"}`))
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// RequireAdmin gates a handler to admin sessions.
func RequireAdmin(next http.Handler) http.Handler {
	return Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())
		if sess.Role != models.RoleOfficial || !sess.IsAdmin {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error": "Admin privileges required"}`))
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// IssueSession stores a new session token for the identity and returns it.
func IssueSession(sess models.Session, r *http.Request) string {
	token := uuid.New().String()
	tokenStrategy := authenticator.Strategy(bearer.CachedStrategyKey)
	auth.Append(tokenStrategy, token, infoFromSession(sess), r)
	return token
}

// RevokeSession drops the session token from the cache.
func RevokeSession(token string, r *http.Request) {
	tokenStrategy := authenticator.Strategy(bearer.CachedStrategyKey)
	auth.Revoke(tokenStrategy, token, r)
}

// IssueAPIToken signs a JWT carrying the session identity for non-browser
// clients.
func IssueAPIToken(sess models.Session) (string, error) {
	claims := jwt.MapClaims{
		"sub":      sess.UID,
		"email":    sess.Email,
		"role":     sess.Role,
		"name":     sess.Name,
		"is_admin": sess.IsAdmin,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(apiTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// verifyAPIToken validates a signed API token on session cache miss.
func verifyAPIToken(ctx context.Context, r *http.Request, token string) (auth.Info, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token, %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	sess := models.Session{
		UID:     stringClaim(claims, "sub"),
		Email:   stringClaim(claims, "email"),
		Role:    stringClaim(claims, "role"),
		Name:    stringClaim(claims, "name"),
		IsAdmin: claims["is_admin"] == true,
	}
	return infoFromSession(sess), nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

func infoFromSession(sess models.Session) auth.Info {
	return auth.NewDefaultUser(sess.Email, sess.UID, nil, map[string][]string{
		"role":     {sess.Role},
		"name":     {sess.Name},
		"is_admin": {strconv.FormatBool(sess.IsAdmin)},
	})
}

func sessionFromInfo(info auth.Info) models.Session {
	sess := models.Session{
		Email: info.UserName(),
		UID:   info.ID(),
	}
	ext := info.Extensions()
	if v, ok := ext["role"]; ok && len(v) > 0 {
		sess.Role = v[0]
	}
	if v, ok := ext["name"]; ok && len(v) > 0 {
		sess.Name = v[0]
	}
	if v, ok := ext["is_admin"]; ok && len(v) > 0 {
		sess.IsAdmin = v[0] == "true"
	}
	return sess
}

// WithSession returns a context carrying the session identity.
func WithSession(ctx context.Context, sess models.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// SessionFromContext returns the session identity stored by the middleware.
func SessionFromContext(ctx context.Context) (models.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(models.Session)
	return sess, ok
}
