package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/barangaycms/barangay-cms-api/config"
)

var a App

func executeRequest(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)
	return rr
}

func checkResponseCode(t *testing.T, expected, actual int) {
	if expected != actual {
		t.Errorf("Expected response code %d. Got %d\n", expected, actual)
	}
}

func TestUnknownRoute(t *testing.T) {
	a.Config = config.Config{JWTSecret: "test-secret"}
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/asdf", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusNotFound, response.Code)
}

func TestHealthCheckRoute(t *testing.T) {
	a.Config = config.Config{JWTSecret: "test-secret"}
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/health", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)

	if !strings.Contains(response.Body.String(), "alive") {
		t.Errorf("Expected 'alive' in the reponse. Got '%s'", response.Body.String())
	}
}

func TestComplaintRoutesRequireSession(t *testing.T) {
	a.Config = config.Config{JWTSecret: "test-secret"}
	a.Router = a.New()

	for _, path := range []string{"/complaint/recent", "/complaint/all", "/messages", "/notifications"} {
		req, _ := http.NewRequest("GET", path, nil)
		response := executeRequest(req)

		checkResponseCode(t, http.StatusUnauthorized, response.Code)
	}
}

func TestComplaintRouteRejectsGarbageToken(t *testing.T) {
	a.Config = config.Config{JWTSecret: "test-secret"}
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/complaint/recent", nil)
	req.Header.Add("Authorization", "Bearer asdfasdf")
	response := executeRequest(req)

	checkResponseCode(t, http.StatusUnauthorized, response.Code)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	a.Config = config.Config{JWTSecret: "test-secret"}
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/admin/stats", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusUnauthorized, response.Code)
}
