package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/barangaycms/barangay-cms-api/api"
	"github.com/barangaycms/barangay-cms-api/databases/mocks"
	idmocks "github.com/barangaycms/barangay-cms-api/identity/mocks"
	"github.com/barangaycms/barangay-cms-api/models"
)

func adminSession() models.Session {
	return models.Session{UID: "admin-1", Email: "admin01-barangay@gmail.com", Role: models.RoleOfficial, Name: "Barangay Admin", IsAdmin: true}
}

func TestAdminStatsHandler(t *testing.T) {
	mockUDB := mocks.NewUserDatabase(t)
	mockUDB.On("CountDocuments", mock.Anything, bson.M{"role": models.RoleResident}).Return(int64(12), nil)
	mockUDB.On("CountDocuments", mock.Anything, bson.M{"role": models.RoleOfficial}).Return(int64(3), nil)

	mockCDB := mocks.NewComplaintDatabase(t)
	mockCDB.On("Find", mock.Anything, mock.Anything).Return([]models.Complaint{{}, {}}, nil)

	handler := Admin{UDB: mockUDB, CDB: mockCDB}
	req := httptest.NewRequest("GET", "/admin/stats", nil)
	req = req.WithContext(api.WithSession(req.Context(), adminSession()))
	w := httptest.NewRecorder()

	handler.StatsHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var stats models.AdminStatsResponse
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
	assert.Equal(t, 12, stats.TotalResidents)
	assert.Equal(t, 3, stats.TotalOfficials)
	assert.Equal(t, 2, stats.PendingRequests)
	assert.Equal(t, 8, stats.UpcomingEvents)
}

func TestApproveRegistrationHandler(t *testing.T) {
	pending := &models.User{
		UID:      "official-2",
		FullName: "Kap Reyes",
		Email:    "reyes@example.com",
		Role:     models.RoleOfficial,
		Status:   models.StatusPendingApproval,
	}

	var statusSet bson.M
	mockUDB := mocks.NewUserDatabase(t)
	mockUDB.On("FindOne", mock.Anything, bson.M{"_id": "official-2"}).Return(pending, nil)
	mockUDB.On("UpdateOne", mock.Anything, bson.M{"_id": "official-2"}, mock.Anything).
		Run(func(args mock.Arguments) {
			set := args.Get(2).(bson.M)["$set"].(bson.M)
			if _, ok := set["status"]; ok {
				statusSet = set
			}
		}).Return(nil)

	handler := Admin{UDB: mockUDB}
	req := httptest.NewRequest("POST", "/admin/approve-registration/official-2", nil)
	req = mux.SetURLVars(req, map[string]string{"uid": "official-2"})
	req = req.WithContext(api.WithSession(req.Context(), adminSession()))
	w := httptest.NewRecorder()

	handler.ApproveRegistrationHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusApproved, statusSet["status"])
	assert.Equal(t, "Barangay Admin", statusSet["approved_by"])
	assert.NotEmpty(t, statusSet["approved_at"])
}

func TestDeleteUserHandlerRefusesSelfDelete(t *testing.T) {
	handler := Admin{UDB: mocks.NewUserDatabase(t), Identity: idmocks.NewProvider(t)}

	body := bytes.NewBufferString(`{"uid": "admin-1"}`)
	req := httptest.NewRequest("POST", "/admin/user/delete", body)
	req = req.WithContext(api.WithSession(req.Context(), adminSession()))
	w := httptest.NewRecorder()

	handler.DeleteUserHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cannot delete your own account")
}

func TestDeleteUserHandlerRemovesIdentityAndProfile(t *testing.T) {
	provider := idmocks.NewProvider(t)
	provider.On("DeleteUser", mock.Anything, "resident-9").Return(nil)

	mockUDB := mocks.NewUserDatabase(t)
	mockUDB.On("DeleteOne", mock.Anything, bson.M{"_id": "resident-9"}).Return(nil)

	handler := Admin{UDB: mockUDB, Identity: provider}
	body := bytes.NewBufferString(`{"uid": "resident-9"}`)
	req := httptest.NewRequest("POST", "/admin/user/delete", body)
	req = req.WithContext(api.WithSession(req.Context(), adminSession()))
	w := httptest.NewRecorder()

	handler.DeleteUserHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestToggleBlockUserHandler(t *testing.T) {
	tests := []struct {
		name          string
		currentStatus string
		wantStatus    string
		wantMessage   string
	}{
		{"blocks an approved user", models.StatusApproved, models.StatusBlocked, "User blocked"},
		{"unblocks a blocked user", models.StatusBlocked, models.StatusApproved, "User unblocked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &models.User{UID: "resident-9", Status: tt.currentStatus}

			var set bson.M
			mockUDB := mocks.NewUserDatabase(t)
			mockUDB.On("FindOne", mock.Anything, bson.M{"_id": "resident-9"}).Return(user, nil)
			mockUDB.On("UpdateOne", mock.Anything, bson.M{"_id": "resident-9"}, mock.Anything).
				Run(func(args mock.Arguments) {
					set = args.Get(2).(bson.M)["$set"].(bson.M)
				}).Return(nil)

			handler := Admin{UDB: mockUDB}
			body := bytes.NewBufferString(`{"uid": "resident-9"}`)
			req := httptest.NewRequest("POST", "/admin/user/toggle-block", body)
			req = req.WithContext(api.WithSession(req.Context(), adminSession()))
			w := httptest.NewRecorder()

			handler.ToggleBlockUserHandler(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantStatus, set["status"])
			assert.Contains(t, w.Body.String(), tt.wantMessage)
		})
	}
}

func TestDeleteComplaintHandlerUnknownID(t *testing.T) {
	mockCDB := mocks.NewComplaintDatabase(t)
	mockCDB.On("DeleteOne", mock.Anything, bson.M{"_id": "BCMS-2026-00000000"}).Return(int64(0), nil)

	handler := Admin{CDB: mockCDB}
	body := bytes.NewBufferString(`{"id": "BCMS-2026-00000000"}`)
	req := httptest.NewRequest("POST", "/admin/complaint/delete", body)
	req = req.WithContext(api.WithSession(req.Context(), adminSession()))
	w := httptest.NewRecorder()

	handler.DeleteComplaintHandler(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
