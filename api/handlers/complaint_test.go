package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/barangaycms/barangay-cms-api/api"
	"github.com/barangaycms/barangay-cms-api/databases/mocks"
	"github.com/barangaycms/barangay-cms-api/models"
)

func TestCalculateUrgency(t *testing.T) {
	tests := []struct {
		category string
		expected string
	}{
		{"security", models.UrgencyHigh},
		{"emergency", models.UrgencyHigh},
		{"SECURITY", models.UrgencyHigh},
		{"Emergency", models.UrgencyHigh},
		{"waste", models.UrgencyMedium},
		{"road", models.UrgencyMedium},
		{"Water", models.UrgencyMedium},
		{"noise", models.UrgencyLow},
		{"other", models.UrgencyLow},
		{"", models.UrgencyLow},
		{"unheard-of-category", models.UrgencyLow},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateUrgency(tt.category))
		})
	}
}

func TestEstimateResolution(t *testing.T) {
	assert.Equal(t, "24 hours", EstimateResolution(models.UrgencyHigh))
	assert.Equal(t, "3 days", EstimateResolution(models.UrgencyMedium))
	assert.Equal(t, "7 days", EstimateResolution(models.UrgencyLow))
	assert.Equal(t, "7 days", EstimateResolution("whatever"))
}

func TestNewComplaintID(t *testing.T) {
	pattern := regexp.MustCompile(`^BCMS-\d{4}-[0-9a-f]{8}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := newComplaintID()
		assert.Regexp(t, pattern, id)
		assert.False(t, seen[id], "generated a duplicate id: %s", id)
		seen[id] = true
	}
}

func TestComplaintDetailsHandler(t *testing.T) {
	complaint := &models.Complaint{
		ID:      "BCMS-2026-deadbeef",
		Title:   "Broken streetlight",
		UserUID: "resident-1",
		Status:  models.ComplaintStatusNew,
	}

	tests := []struct {
		name           string
		id             string
		session        models.Session
		found          bool
		expectedStatus int
	}{
		{
			name:           "missing id",
			session:        models.Session{UID: "resident-1", Role: models.RoleResident},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown complaint",
			id:             "BCMS-2026-00000000",
			session:        models.Session{UID: "resident-1", Role: models.RoleResident},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "owner can read",
			id:             complaint.ID,
			session:        models.Session{UID: "resident-1", Role: models.RoleResident},
			found:          true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "other resident is denied",
			id:             complaint.ID,
			session:        models.Session{UID: "resident-2", Role: models.RoleResident},
			found:          true,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "official sees everything",
			id:             complaint.ID,
			session:        models.Session{UID: "official-1", Role: models.RoleOfficial},
			found:          true,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB := mocks.NewComplaintDatabase(t)
			if tt.id != "" {
				if tt.found {
					mockDB.On("FindOne", mock.Anything, bson.M{"_id": tt.id}).Return(complaint, nil)
				} else {
					mockDB.On("FindOne", mock.Anything, bson.M{"_id": tt.id}).Return(nil, fmt.Errorf("mongo: no documents in result"))
				}
			}

			handler := Complaint{DB: mockDB}
			req := httptest.NewRequest("GET", "/complaint/details?id="+tt.id, nil)
			req = req.WithContext(api.WithSession(req.Context(), tt.session))
			w := httptest.NewRecorder()

			handler.ComplaintDetailsHandler(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var got models.Complaint
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&got))
				assert.Equal(t, complaint.ID, got.ID)
			}
		})
	}
}

func TestUpdateComplaintHandlerRequiresOfficial(t *testing.T) {
	handler := Complaint{}
	body := bytes.NewBufferString(`{"complaint_id": "BCMS-2026-deadbeef", "status": "Resolved"}`)
	req := httptest.NewRequest("POST", "/complaint/update", body)
	req = req.WithContext(api.WithSession(req.Context(), models.Session{UID: "resident-1", Role: models.RoleResident}))
	w := httptest.NewRecorder()

	handler.UpdateComplaintHandler(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateComplaintHandlerAppendsOneNotification(t *testing.T) {
	complaint := &models.Complaint{
		ID:      "BCMS-2026-deadbeef",
		Status:  models.ComplaintStatusNew,
		UserUID: "resident-1",
	}
	owner := &models.User{UID: "resident-1", FullName: "Juan Dela Cruz"}

	mockCDB := mocks.NewComplaintDatabase(t)
	mockCDB.On("FindOne", mock.Anything, bson.M{"_id": complaint.ID}).Return(complaint, nil)
	mockCDB.On("UpdateOne", mock.Anything, bson.M{"_id": complaint.ID}, mock.Anything).Return(nil)

	var appended []models.Notification
	mockUDB := mocks.NewUserDatabase(t)
	mockUDB.On("FindOne", mock.Anything, bson.M{"_id": "resident-1"}).Return(owner, nil)
	mockUDB.On("UpdateOne", mock.Anything, bson.M{"_id": "resident-1"}, mock.Anything).
		Run(func(args mock.Arguments) {
			update := args.Get(2).(bson.M)
			appended = update["$set"].(bson.M)["notifications"].([]models.Notification)
		}).Return(nil)

	handler := Complaint{DB: mockCDB, UDB: mockUDB}
	body := bytes.NewBufferString(`{"complaint_id": "BCMS-2026-deadbeef", "status": "In Progress", "notes": "crew dispatched"}`)
	req := httptest.NewRequest("POST", "/complaint/update", body)
	req = req.WithContext(api.WithSession(req.Context(), models.Session{UID: "official-1", Role: models.RoleOfficial, Name: "Kap Santos"}))
	w := httptest.NewRecorder()

	handler.UpdateComplaintHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, appended, 1)
	assert.Equal(t, "Complaint Status Updated: BCMS-2026-deadbeef", appended[0].Title)
	assert.Equal(t, `Your complaint status has been updated from "New" to "In Progress". Note: crew dispatched`, appended[0].Message)
	assert.Equal(t, complaint.ID, appended[0].ComplaintID)
	assert.False(t, appended[0].Read)
}

func TestUpdateComplaintHandlerConcurrentUpdates(t *testing.T) {
	complaint := &models.Complaint{
		ID:      "BCMS-2026-deadbeef",
		Status:  models.ComplaintStatusNew,
		UserUID: "resident-1",
	}
	owner := &models.User{UID: "resident-1"}

	var mu sync.Mutex
	var stored string

	mockCDB := mocks.NewComplaintDatabase(t)
	mockCDB.On("FindOne", mock.Anything, bson.M{"_id": complaint.ID}).Return(complaint, nil)
	mockCDB.On("UpdateOne", mock.Anything, bson.M{"_id": complaint.ID}, mock.Anything).
		Run(func(args mock.Arguments) {
			set := args.Get(2).(bson.M)["$set"].(bson.M)
			mu.Lock()
			stored = set["status"].(string)
			mu.Unlock()
		}).Return(nil)

	mockUDB := mocks.NewUserDatabase(t)
	mockUDB.On("FindOne", mock.Anything, bson.M{"_id": "resident-1"}).Return(owner, nil)
	mockUDB.On("UpdateOne", mock.Anything, bson.M{"_id": "resident-1"}, mock.Anything).Return(nil)

	handler := Complaint{DB: mockCDB, UDB: mockUDB}
	statuses := []string{models.ComplaintStatusInProgress, models.ComplaintStatusEscalated}

	var wg sync.WaitGroup
	for _, status := range statuses {
		wg.Add(1)
		go func(status string) {
			defer wg.Done()
			body, _ := json.Marshal(updateComplaintRequest{ComplaintID: complaint.ID, Status: status})
			req := httptest.NewRequest("POST", "/complaint/update", bytes.NewReader(body))
			req = req.WithContext(api.WithSession(req.Context(), models.Session{UID: "official-1", Role: models.RoleOfficial, Name: "Kap Santos"}))
			w := httptest.NewRecorder()
			handler.UpdateComplaintHandler(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}(status)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, statuses, stored)
}

func TestComplaintsByStatusHandlerSlugMapping(t *testing.T) {
	tests := []struct {
		slug   string
		filter bson.M
	}{
		{"all", bson.M{}},
		{"new", bson.M{"status": models.ComplaintStatusNew}},
		{"pending", bson.M{"status": models.ComplaintStatusPending}},
		{"pending-review", bson.M{"status": models.ComplaintStatusPendingReview}},
		{"in-progress", bson.M{"status": models.ComplaintStatusInProgress}},
		{"escalated", bson.M{"status": models.ComplaintStatusEscalated}},
		{"resolved", bson.M{"status": models.ComplaintStatusResolved}},
		{"oddball", bson.M{"status": "oddball"}},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			mockDB := mocks.NewComplaintDatabase(t)
			mockDB.On("Find", mock.Anything, tt.filter, mock.Anything).Return([]models.Complaint{}, nil)

			handler := Complaint{DB: mockDB}
			req := httptest.NewRequest("GET", "/officials/complaints/"+tt.slug, nil)
			req = mux.SetURLVars(req, map[string]string{"status": tt.slug})
			req = req.WithContext(api.WithSession(req.Context(), models.Session{UID: "official-1", Role: models.RoleOfficial}))
			w := httptest.NewRecorder()

			handler.ComplaintsByStatusHandler(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestRecentComplaintsHandlerDegradesToEmptyList(t *testing.T) {
	mockDB := mocks.NewComplaintDatabase(t)
	mockDB.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(nil, fmt.Errorf("connection reset"))

	handler := Complaint{DB: mockDB}
	req := httptest.NewRequest("GET", "/complaint/recent", nil)
	req = req.WithContext(api.WithSession(req.Context(), models.Session{UID: "resident-1", Role: models.RoleResident}))
	w := httptest.NewRecorder()

	handler.RecentComplaintsHandler(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
