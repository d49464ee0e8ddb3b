package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/barangaycms/barangay-cms-api/models"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddlewareRejectsMissingSession(t *testing.T) {
	SetupGoGuardian("test-secret")

	req := httptest.NewRequest("GET", "/complaint/recent", nil)
	w := httptest.NewRecorder()

	Middleware(okHandler()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error": "unauthorized"}`, w.Body.String())
}

func TestMiddlewareAcceptsSessionCookie(t *testing.T) {
	SetupGoGuardian("test-secret")

	sess := models.Session{Email: "juan@example.com", UID: "resident-1", Role: models.RoleResident, Name: "Juan"}
	token := IssueSession(sess, httptest.NewRequest("POST", "/auth/login", nil))

	var got models.Session
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/complaint/recent", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	w := httptest.NewRecorder()

	Middleware(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, sess, got)
}

func TestMiddlewareAcceptsAPIToken(t *testing.T) {
	SetupGoGuardian("test-secret")

	sess := models.Session{Email: "kap@example.com", UID: "official-1", Role: models.RoleOfficial, Name: "Kap", IsAdmin: true}
	token, err := IssueAPIToken(sess)
	assert.NoError(t, err)

	var got models.Session
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/officials/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	Middleware(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, sess, got)
}

func TestRequireOfficialRejectsResident(t *testing.T) {
	SetupGoGuardian("test-secret")

	sess := models.Session{Email: "juan@example.com", UID: "resident-1", Role: models.RoleResident}
	token := IssueSession(sess, httptest.NewRequest("POST", "/auth/login", nil))

	req := httptest.NewRequest("GET", "/residents/list", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	w := httptest.NewRecorder()

	RequireOfficial(okHandler()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "only for officials")
}

func TestRequireAdminRejectsPlainOfficial(t *testing.T) {
	SetupGoGuardian("test-secret")

	sess := models.Session{Email: "kap@example.com", UID: "official-1", Role: models.RoleOfficial}
	token := IssueSession(sess, httptest.NewRequest("POST", "/auth/login", nil))

	req := httptest.NewRequest("GET", "/admin/stats", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	w := httptest.NewRecorder()

	RequireAdmin(okHandler()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Admin privileges required")
}

func TestRevokeSession(t *testing.T) {
	SetupGoGuardian("test-secret")

	sess := models.Session{Email: "juan@example.com", UID: "resident-1", Role: models.RoleResident}
	token := IssueSession(sess, httptest.NewRequest("POST", "/auth/login", nil))
	RevokeSession(token, httptest.NewRequest("GET", "/auth/logout", nil))

	req := httptest.NewRequest("GET", "/complaint/recent", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	w := httptest.NewRecorder()

	Middleware(okHandler()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
