package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/barangaycms/barangay-cms-api/api"
	"github.com/barangaycms/barangay-cms-api/databases/mocks"
	"github.com/barangaycms/barangay-cms-api/identity"
	idmocks "github.com/barangaycms/barangay-cms-api/identity/mocks"
	"github.com/barangaycms/barangay-cms-api/models"
)

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestSignupHandlerValidation(t *testing.T) {
	tests := []struct {
		name     string
		form     url.Values
		expected string
	}{
		{
			name: "password mismatch",
			form: url.Values{
				"fullName":        {"Juan Dela Cruz"},
				"email":           {"juan@example.com"},
				"password":        {"password123"},
				"confirmPassword": {"password456"},
			},
			expected: "Passwords do not match",
		},
		{
			name: "short password",
			form: url.Values{
				"fullName":        {"Juan Dela Cruz"},
				"email":           {"juan@example.com"},
				"password":        {"short"},
				"confirmPassword": {"short"},
			},
			expected: "Password must be at least 8 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Auth{DB: mocks.NewUserDatabase(t), Identity: idmocks.NewProvider(t)}
			w := httptest.NewRecorder()

			handler.SignupHandler(w, postForm("/auth/signup", tt.form))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.expected)
		})
	}
}

func TestSignupHandlerDuplicateEmail(t *testing.T) {
	provider := idmocks.NewProvider(t)
	provider.On("CreateUser", mock.Anything, "juan@example.com", "password123", "Juan Dela Cruz").
		Return(nil, identity.ErrEmailExists)

	handler := Auth{DB: mocks.NewUserDatabase(t), Identity: provider}
	form := url.Values{
		"fullName":        {"Juan Dela Cruz"},
		"email":           {"juan@example.com"},
		"password":        {"password123"},
		"confirmPassword": {"password123"},
	}
	w := httptest.NewRecorder()

	handler.SignupHandler(w, postForm("/auth/signup", form))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email already exists")
}

func TestSignupHandlerOfficialStartsPending(t *testing.T) {
	provider := idmocks.NewProvider(t)
	provider.On("CreateUser", mock.Anything, "kap@example.com", "password123", "Kap Santos").
		Return(&identity.Record{UID: "official-1", Email: "kap@example.com"}, nil)

	var stored models.User
	mockDB := mocks.NewUserDatabase(t)
	mockDB.On("InsertOne", mock.Anything, mock.AnythingOfType("models.User")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(models.User)
		}).Return(nil)

	handler := Auth{DB: mockDB, Identity: provider}
	form := url.Values{
		"fullName":        {"Kap Santos"},
		"email":           {"kap@example.com"},
		"password":        {"password123"},
		"confirmPassword": {"password123"},
		"role":            {models.RoleOfficial},
	}
	w := httptest.NewRecorder()

	handler.SignupHandler(w, postForm("/auth/signup", form))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wait for admin approval")
	assert.Equal(t, models.StatusPendingApproval, stored.Status)
	assert.Equal(t, "official-1", stored.UID)
}

func TestLoginHandlerRejections(t *testing.T) {
	tests := []struct {
		name     string
		user     *models.User
		role     string
		expected string
	}{
		{
			name:     "pending official",
			user:     &models.User{UID: "u1", Role: models.RoleOfficial, Status: models.StatusPendingApproval},
			role:     models.RoleOfficial,
			expected: "pending admin approval",
		},
		{
			name:     "rejected user",
			user:     &models.User{UID: "u1", Role: models.RoleOfficial, Status: models.StatusRejected},
			role:     models.RoleOfficial,
			expected: "was not approved",
		},
		{
			name:     "blocked user",
			user:     &models.User{UID: "u1", Role: models.RoleResident, Status: models.StatusBlocked},
			role:     models.RoleResident,
			expected: "has been blocked",
		},
		{
			name:     "role mismatch",
			user:     &models.User{UID: "u1", Role: models.RoleResident, Status: models.StatusApproved},
			role:     models.RoleOfficial,
			expected: "Please login as resident",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := idmocks.NewProvider(t)
			provider.On("GetUserByEmail", mock.Anything, "user@example.com").
				Return(&identity.Record{UID: "u1", Email: "user@example.com"}, nil)

			mockDB := mocks.NewUserDatabase(t)
			mockDB.On("FindOne", mock.Anything, bson.M{"_id": "u1"}).Return(tt.user, nil)

			handler := Auth{DB: mockDB, Identity: provider}
			form := url.Values{
				"email":    {"user@example.com"},
				"password": {"password123"},
				"role":     {tt.role},
			}
			w := httptest.NewRecorder()

			handler.LoginHandler(w, postForm("/auth/login", form))

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.expected)
		})
	}
}

func TestLoginHandlerUnknownEmail(t *testing.T) {
	provider := idmocks.NewProvider(t)
	provider.On("GetUserByEmail", mock.Anything, "ghost@example.com").
		Return(nil, identity.ErrUserNotFound)

	handler := Auth{DB: mocks.NewUserDatabase(t), Identity: provider}
	form := url.Values{"email": {"ghost@example.com"}, "password": {"whatever"}}
	w := httptest.NewRecorder()

	handler.LoginHandler(w, postForm("/auth/login", form))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestLoginHandlerIssuesSessionAndCookie(t *testing.T) {
	api.SetupGoGuardian("test-secret")

	provider := idmocks.NewProvider(t)
	provider.On("GetUserByEmail", mock.Anything, "admin01-barangay@gmail.com").
		Return(&identity.Record{UID: "admin-1", Email: "admin01-barangay@gmail.com"}, nil)

	mockDB := mocks.NewUserDatabase(t)
	mockDB.On("FindOne", mock.Anything, bson.M{"_id": "admin-1"}).Return(&models.User{
		UID:      "admin-1",
		FullName: "Barangay Admin",
		Role:     models.RoleOfficial,
		IsAdmin:  true,
		Status:   models.StatusApproved,
	}, nil)

	handler := Auth{DB: mockDB, Identity: provider}
	form := url.Values{
		"email":    {"admin01-barangay@gmail.com"},
		"password": {"admin123"},
		"role":     {models.RoleResident},
	}
	w := httptest.NewRecorder()

	handler.LoginHandler(w, postForm("/auth/login", form))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect":"/admin/dashboard"`)

	cookies := w.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == api.SessionCookieName && c.Value != "" {
			found = true
		}
	}
	assert.True(t, found, "expected a session cookie to be set")
}
