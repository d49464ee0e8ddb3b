package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/barangaycms/barangay-cms-api/api"
	"github.com/barangaycms/barangay-cms-api/databases"
	"github.com/barangaycms/barangay-cms-api/models"
)

// Notification handles the embedded per-user notification list
type Notification struct {
	DB databases.UserDatabase
}

// GetNotificationsHandler returns the caller's notifications, newest first.
func (h Notification) GetNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := api.SessionFromContext(r.Context())

	user, err := h.DB.FindOne(r.Context(), bson.M{"_id": sess.UID})
	if err != nil {
		zap.S().Warnw("failed to load notifications", "uid", sess.UID, "error", err)
		writeJSON(w, http.StatusOK, []models.Notification{})
		return
	}

	notifications := user.Notifications
	if notifications == nil {
		notifications = []models.Notification{}
	}
	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].Timestamp > notifications[j].Timestamp
	})
	writeJSON(w, http.StatusOK, notifications)
}

type markReadRequest struct {
	ID string `json:"id"`
}

// MarkNotificationReadHandler flags one notification as read and rewrites
// the whole array.
func (h Notification) MarkNotificationReadHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := api.SessionFromContext(r.Context())

	var req markReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeJSON(w, http.StatusBadRequest, models.SuccessErrorResponse{Success: false, Error: "Notification ID is required"})
		return
	}

	user, err := h.DB.FindOne(r.Context(), bson.M{"_id": sess.UID})
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.SuccessErrorResponse{Success: false, Error: "User not found"})
		return
	}

	found := false
	for i := range user.Notifications {
		if user.Notifications[i].ID == req.ID {
			user.Notifications[i].Read = true
			found = true
			break
		}
	}
	if !found {
		writeJSON(w, http.StatusNotFound, models.SuccessErrorResponse{Success: false, Error: "Notification not found"})
		return
	}

	update := bson.M{"$set": bson.M{"notifications": user.Notifications}}
	if err := h.DB.UpdateOne(r.Context(), bson.M{"_id": sess.UID}, update); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.SuccessErrorResponse{Success: false, Error: "Failed to update notification"})
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
}
