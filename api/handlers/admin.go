package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/barangaycms/barangay-cms-api/api"
	"github.com/barangaycms/barangay-cms-api/databases"
	"github.com/barangaycms/barangay-cms-api/identity"
	"github.com/barangaycms/barangay-cms-api/models"
	templates "github.com/barangaycms/barangay-cms-api/templates/html"
	"github.com/gorilla/mux"
)

// Admin handles the admin console: dashboard aggregates, registration
// review and user management
type Admin struct {
	UDB      databases.UserDatabase
	CDB      databases.ComplaintDatabase
	Identity identity.Provider
}

// StatsHandler returns the admin dashboard headline counters.
func (h Admin) StatsHandler(w http.ResponseWriter, r *http.Request) {
	residents, err := h.UDB.CountDocuments(r.Context(), bson.M{"role": models.RoleResident})
	if err != nil {
		zap.S().Warnw("failed to count residents", "error", err)
	}
	officials, err := h.UDB.CountDocuments(r.Context(), bson.M{"role": models.RoleOfficial})
	if err != nil {
		zap.S().Warnw("failed to count officials", "error", err)
	}

	open, err := h.CDB.Find(r.Context(), bson.M{"status": bson.M{"$in": []string{
		models.ComplaintStatusNew,
		models.ComplaintStatusPending,
		models.ComplaintStatusPendingReview,
		models.ComplaintStatusInProgress,
	}}})
	if err != nil {
		zap.S().Warnw("failed to count open complaints", "error", err)
	}

	writeJSON(w, http.StatusOK, models.AdminStatsResponse{
		TotalResidents:  int(residents),
		TotalOfficials:  int(officials),
		PendingRequests: len(open),
		// the events module is not built yet, the dashboard shows a placeholder
		UpcomingEvents: 8,
	})
}

// RecentActivityHandler returns a humanized activity feed: the three newest
// registrations and the two newest complaints, capped at five entries.
// Errors degrade to an empty list.
func (h Admin) RecentActivityHandler(w http.ResponseWriter, r *http.Request) {
	entries := []models.ActivityEntry{}

	users, err := h.UDB.Find(r.Context(), bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(3))
	if err != nil {
		zap.S().Warnw("failed to load recent registrations", "error", err)
	}
	for _, u := range users {
		entries = append(entries, models.ActivityEntry{
			Type:      "registration",
			Icon:      "user-plus",
			Message:   fmt.Sprintf("%s registered as %s", u.FullName, u.Role),
			Timestamp: timeAgo(u.CreatedAt),
		})
	}

	complaints, err := h.CDB.Find(r.Context(), bson.M{},
		options.Find().SetSort(bson.D{{Key: "submitted_date", Value: -1}}).SetLimit(2))
	if err != nil {
		zap.S().Warnw("failed to load recent complaints", "error", err)
	}
	for _, c := range complaints {
		entries = append(entries, models.ActivityEntry{
			Type:      "complaint",
			Icon:      "file-text",
			Message:   fmt.Sprintf("New complaint: %s", c.Title),
			Timestamp: timeAgo(c.SubmittedDate),
		})
	}

	if len(entries) > 5 {
		entries = entries[:5]
	}
	writeJSON(w, http.StatusOK, entries)
}

// ComplaintsHandler returns the ten newest complaints with the resident
// display name resolved from the users collection.
func (h Admin) ComplaintsHandler(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.CDB.Find(r.Context(), bson.M{},
		options.Find().SetSort(bson.D{{Key: "submitted_date", Value: -1}}).SetLimit(10))
	if err != nil {
		zap.S().Warnw("failed to load admin complaints", "error", err)
	}

	rows := []models.AdminComplaintRow{}
	for _, c := range complaints {
		resident := c.UserName
		if user, err := h.UDB.FindOne(r.Context(), bson.M{"_id": c.UserUID}); err == nil {
			resident = user.FullName
		}
		rows = append(rows, models.AdminComplaintRow{
			ID:       c.ID,
			Title:    c.Title,
			Resident: resident,
			Date:     c.SubmittedDate,
			Status:   c.Status,
		})
	}
	writeJSON(w, http.StatusOK, rows)
}

// UsersHandler returns the first ten users sorted by name.
func (h Admin) UsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.UDB.Find(r.Context(), bson.M{})
	if err != nil {
		zap.S().Warnw("failed to load users", "error", err)
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].FullName < users[j].FullName
	})
	if len(users) > 10 {
		users = users[:10]
	}

	rows := []models.AdminUserRow{}
	for _, u := range users {
		rows = append(rows, models.AdminUserRow{
			UID:     u.UID,
			Name:    u.FullName,
			Email:   u.Email,
			Role:    u.Role,
			IsAdmin: u.IsAdmin,
			Status:  u.Status,
		})
	}
	writeJSON(w, http.StatusOK, rows)
}

// PendingRegistrationsHandler lists officials awaiting approval.
func (h Admin) PendingRegistrationsHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.UDB.Find(r.Context(), bson.M{
		"role":   models.RoleOfficial,
		"status": models.StatusPendingApproval,
	})
	if err != nil {
		zap.S().Warnw("failed to load pending registrations", "error", err)
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// ApproveRegistrationHandler approves a pending official. The decision email
// and the welcome notification are best-effort.
func (h Admin) ApproveRegistrationHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := api.SessionFromContext(r.Context())
	uid := mux.Vars(r)["uid"]

	user, err := h.UDB.FindOne(r.Context(), bson.M{"_id": uid})
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.SuccessErrorResponse{Success: false, Error: "User not found"})
		return
	}

	update := bson.M{"$set": bson.M{
		"status":      models.StatusApproved,
		"approved_at": nowISO(),
		"approved_by": sess.Name,
	}}
	if err := h.UDB.UpdateOne(r.Context(), bson.M{"_id": uid}, update); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.SuccessErrorResponse{Success: false, Error: "Failed to approve registration"})
		return
	}

	welcome := models.Notification{
		ID:        uuid.New().String()[:8],
		Timestamp: nowISO(),
		Title:     "Registration Approved",
		Message:   "Your official account has been approved. Welcome aboard!",
	}
	notifications := append(user.Notifications, welcome)
	if err := h.UDB.UpdateOne(r.Context(), bson.M{"_id": uid}, bson.M{"$set": bson.M{"notifications": notifications}}); err != nil {
		zap.S().Warnw("failed to append welcome notification", "uid", uid, "error", err)
	}

	go sendDecisionEmail(user.Email, user.FullName, true)

	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: "Registration approved"})
}

// RejectRegistrationHandler rejects a pending official.
func (h Admin) RejectRegistrationHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := api.SessionFromContext(r.Context())
	uid := mux.Vars(r)["uid"]

	user, err := h.UDB.FindOne(r.Context(), bson.M{"_id": uid})
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.SuccessErrorResponse{Success: false, Error: "User not found"})
		return
	}

	update := bson.M{"$set": bson.M{
		"status":      models.StatusRejected,
		"rejected_at": nowISO(),
		"rejected_by": sess.Name,
	}}
	if err := h.UDB.UpdateOne(r.Context(), bson.M{"_id": uid}, update); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.SuccessErrorResponse{Success: false, Error: "Failed to reject registration"})
		return
	}

	go sendDecisionEmail(user.Email, user.FullName, false)

	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: "Registration rejected"})
}

type adminUserRequest struct {
	UID string `json:"uid"`
}

// DeleteUserHandler removes a user from the identity provider and drops the
// profile document. Admins cannot delete themselves.
func (h Admin) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := api.SessionFromContext(r.Context())

	var req adminUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UID == "" {
		writeJSON(w, http.StatusBadRequest, models.SuccessErrorResponse{Success: false, Error: "User ID is required"})
		return
	}
	if req.UID == sess.UID {
		writeJSON(w, http.StatusBadRequest, models.SuccessErrorResponse{Success: false, Error: "You cannot delete your own account"})
		return
	}

	if err := h.Identity.DeleteUser(r.Context(), req.UID); err != nil && err != identity.ErrUserNotFound {
		zap.S().Warnw("failed to delete identity account", "uid", req.UID, "error", err)
	}
	if err := h.UDB.DeleteOne(r.Context(), bson.M{"_id": req.UID}); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.SuccessErrorResponse{Success: false, Error: "Failed to delete user"})
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: "User deleted"})
}

// ToggleBlockUserHandler flips a user between blocked and approved.
func (h Admin) ToggleBlockUserHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := api.SessionFromContext(r.Context())

	var req adminUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UID == "" {
		writeJSON(w, http.StatusBadRequest, models.SuccessErrorResponse{Success: false, Error: "User ID is required"})
		return
	}
	if req.UID == sess.UID {
		writeJSON(w, http.StatusBadRequest, models.SuccessErrorResponse{Success: false, Error: "You cannot block your own account"})
		return
	}

	user, err := h.UDB.FindOne(r.Context(), bson.M{"_id": req.UID})
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.SuccessErrorResponse{Success: false, Error: "User not found"})
		return
	}

	var update bson.M
	var message string
	if user.Status == models.StatusBlocked {
		update = bson.M{"$set": bson.M{"status": models.StatusApproved}}
		message = "User unblocked"
	} else {
		update = bson.M{"$set": bson.M{
			"status":     models.StatusBlocked,
			"blocked_at": nowISO(),
			"blocked_by": sess.Name,
		}}
		message = "User blocked"
	}

	if err := h.UDB.UpdateOne(r.Context(), bson.M{"_id": req.UID}, update); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.SuccessErrorResponse{Success: false, Error: "Failed to update user"})
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: message})
}

type adminComplaintRequest struct {
	ID string `json:"id"`
}

// DeleteComplaintHandler removes a complaint document.
func (h Admin) DeleteComplaintHandler(w http.ResponseWriter, r *http.Request) {
	var req adminComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeJSON(w, http.StatusBadRequest, models.SuccessErrorResponse{Success: false, Error: "Complaint ID is required"})
		return
	}

	deleted, err := h.CDB.DeleteOne(r.Context(), bson.M{"_id": req.ID})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.SuccessErrorResponse{Success: false, Error: "Failed to delete complaint"})
		return
	}
	if deleted == 0 {
		writeJSON(w, http.StatusNotFound, models.SuccessErrorResponse{Success: false, Error: "Complaint not found"})
		return
	}
	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: "Complaint deleted"})
}

// sendDecisionEmail notifies an official of the registration decision.
// Failures are logged only.
func sendDecisionEmail(toEmail, name string, approved bool) {
	subject := "Your Barangay Official Registration"
	body := fmt.Sprintf("Hello %s,\n\nYour official registration has been approved. You can now log in to the barangay portal.", name)
	if !approved {
		body = fmt.Sprintf("Hello %s,\n\nYour official registration was not approved. Please contact the barangay office for more information.", name)
	}

	from := mail.NewEmail("Barangay CMS", "no-reply@barangaycms.ph")
	to := mail.NewEmail(name, toEmail)
	html := templates.RenderGenericEmail(subject, body)
	msg := mail.NewSingleEmail(from, subject, to, body, html)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	if _, err := client.Send(msg); err != nil {
		zap.S().Warnw("failed to send decision email", "email", toEmail, "error", err)
	}
}
