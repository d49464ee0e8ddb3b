package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/barangaycms/barangay-cms-api/api"
	"github.com/barangaycms/barangay-cms-api/config"
	"github.com/barangaycms/barangay-cms-api/databases"
	"github.com/barangaycms/barangay-cms-api/models"
)

const maxComplaintFormMemory = 32 << 20

// Complaint handles complaint submission, listing and triage
type Complaint struct {
	DB  databases.ComplaintDatabase
	UDB databases.UserDatabase
	NDB databases.NotificationDatabase
}

// CalculateUrgency maps a complaint category to an urgency tier. Matching is
// case-insensitive and unknown categories land on Low.
func CalculateUrgency(category string) string {
	switch strings.ToLower(category) {
	case "security", "emergency":
		return models.UrgencyHigh
	case "waste", "road", "water":
		return models.UrgencyMedium
	default:
		return models.UrgencyLow
	}
}

// EstimateResolution returns the resolution window promised for an urgency
// tier. The window is assigned once at submission and never recomputed.
func EstimateResolution(urgency string) string {
	switch urgency {
	case models.UrgencyHigh:
		return "24 hours"
	case models.UrgencyMedium:
		return "3 days"
	default:
		return "7 days"
	}
}

// newComplaintID generates a complaint id of the form BCMS-<year>-<8 hex>.
// There is no collision check, same as the original system.
func newComplaintID() string {
	return fmt.Sprintf("BCMS-%d-%s", time.Now().Year(), uuid.New().String()[:8])
}

// SubmitComplaintHandler files a new complaint for the logged-in resident.
// Attachments are read fully and stored inline as base64.
func (h Complaint) SubmitComplaintHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := api.SessionFromContext(r.Context())

	if err := r.ParseMultipartForm(maxComplaintFormMemory); err != nil {
		config.ErrorStatus("failed to parse complaint form", http.StatusBadRequest, w, err)
		return
	}

	title := r.FormValue("title")
	category := r.FormValue("category")
	description := r.FormValue("description")
	location := r.FormValue("location")
	incidentDate := r.FormValue("incident-date")
	if title == "" || category == "" || description == "" {
		writeJSON(w, http.StatusBadRequest, models.SuccessErrorResponse{Success: false, Error: "Please fill in all required fields"})
		return
	}

	urgency := CalculateUrgency(category)
	complaint := models.Complaint{
		ID:                  newComplaintID(),
		Title:               title,
		Category:            category,
		Description:         description,
		Location:            location,
		IncidentDate:        incidentDate,
		SubmittedDate:       nowISO(),
		UserUID:             sess.UID,
		UserEmail:           sess.Email,
		UserName:            sess.Name,
		Status:              models.ComplaintStatusNew,
		Urgency:             urgency,
		EstimatedResolution: EstimateResolution(urgency),
	}

	if r.FormValue("contact-preference") == "yes" {
		complaint.ContactInfo = &models.ContactInfo{
			Name:  r.FormValue("full-name"),
			Phone: r.FormValue("contact-number"),
			Email: r.FormValue("email"),
		}
	}

	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["attachment"] {
			file, err := header.Open()
			if err != nil {
				zap.S().Warnw("skipping unreadable attachment", "filename", header.Filename, "error", err)
				continue
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				zap.S().Warnw("skipping unreadable attachment", "filename", header.Filename, "error", err)
				continue
			}
			complaint.Attachments = append(complaint.Attachments, models.Attachment{
				Filename: header.Filename,
				Data:     base64.StdEncoding.EncodeToString(data),
				MimeType: header.Header.Get("Content-Type"),
			})
		}
	}

	if err := h.DB.InsertOne(r.Context(), complaint); err != nil {
		config.ErrorStatus("failed to store complaint", http.StatusInternalServerError, w, err)
		return
	}

	// officials feed entry, best-effort
	if err := h.NDB.InsertOne(r.Context(), models.OfficialNotification{
		ComplaintID: complaint.ID,
		Title:       "New complaint submitted",
		Message:     fmt.Sprintf("A new %s urgency complaint has been submitted", urgency),
		CreatedAt:   nowISO(),
	}); err != nil {
		zap.S().Warnw("failed to append officials notification", "complaint_id", complaint.ID, "error", err)
	}

	writeJSON(w, http.StatusOK, models.SubmitComplaintResponse{
		Success:     true,
		ComplaintID: complaint.ID,
		Message:     "Complaint submitted successfully",
	})
}

// RecentComplaintsHandler returns the caller's five most recent complaints.
// Officials see the whole barangay. Read errors degrade to an empty list.
func (h Complaint) RecentComplaintsHandler(w http.ResponseWriter, r *http.Request) {
	h.listComplaints(w, r, 5)
}

// AllComplaintsHandler returns all of the caller's complaints, newest first.
func (h Complaint) AllComplaintsHandler(w http.ResponseWriter, r *http.Request) {
	h.listComplaints(w, r, 0)
}

func (h Complaint) listComplaints(w http.ResponseWriter, r *http.Request, limit int64) {
	sess, _ := api.SessionFromContext(r.Context())

	filter := bson.M{}
	if !sess.IsOfficial() {
		filter = bson.M{"user_uid": sess.UID}
	}
	opts := options.Find().SetSort(bson.D{{Key: "submitted_date", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	complaints, err := h.DB.Find(r.Context(), filter, opts)
	if err != nil {
		zap.S().Warnw("failed to list complaints", "uid", sess.UID, "error", err)
		complaints = nil
	}
	if complaints == nil {
		complaints = []models.Complaint{}
	}
	writeJSON(w, http.StatusOK, complaints)
}

// ComplaintDetailsHandler returns one complaint by id. Residents may only
// read their own; officials and admins see everything.
func (h Complaint) ComplaintDetailsHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := api.SessionFromContext(r.Context())

	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, models.SuccessErrorResponse{Success: false, Error: "Complaint ID is required"})
		return
	}

	complaint, err := h.DB.FindOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.SuccessErrorResponse{Success: false, Error: "Complaint not found"})
		return
	}

	if !sess.IsOfficial() && complaint.UserUID != sess.UID {
		writeJSON(w, http.StatusForbidden, models.SuccessErrorResponse{Success: false, Error: "You do not have permission to view this complaint"})
		return
	}

	writeJSON(w, http.StatusOK, complaint)
}

// statusSlugs maps the URL slugs used by the officials dashboard to stored
// status values. Unmapped slugs filter by the raw value.
var statusSlugs = map[string]string{
	"new":            models.ComplaintStatusNew,
	"pending":        models.ComplaintStatusPending,
	"pending-review": models.ComplaintStatusPendingReview,
	"in-progress":    models.ComplaintStatusInProgress,
	"escalated":      models.ComplaintStatusEscalated,
	"resolved":       models.ComplaintStatusResolved,
}

// ComplaintsByStatusHandler lists complaints filtered by the status slug in
// the path, or everything for "all". Newest first.
func (h Complaint) ComplaintsByStatusHandler(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["status"]

	filter := bson.M{}
	if slug != "all" {
		status, ok := statusSlugs[slug]
		if !ok {
			status = slug
		}
		filter = bson.M{"status": status}
	}

	opts := options.Find().SetSort(bson.D{{Key: "submitted_date", Value: -1}})
	complaints, err := h.DB.Find(r.Context(), filter, opts)
	if err != nil {
		zap.S().Warnw("failed to list complaints by status", "status", slug, "error", err)
		complaints = nil
	}
	if complaints == nil {
		complaints = []models.Complaint{}
	}
	writeJSON(w, http.StatusOK, complaints)
}

type updateComplaintRequest struct {
	ComplaintID string `json:"complaint_id"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

// UpdateComplaintHandler overwrites a complaint's status. Any transition is
// accepted. The owning resident gets a notification and a websocket push,
// both best-effort.
func (h Complaint) UpdateComplaintHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := api.SessionFromContext(r.Context())
	if !sess.IsOfficial() {
		writeJSON(w, http.StatusForbidden, models.SuccessErrorResponse{Success: false, Error: "Only officials can update complaints"})
		return
	}

	var req updateComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode update request", http.StatusBadRequest, w, err)
		return
	}
	if req.ComplaintID == "" || req.Status == "" {
		writeJSON(w, http.StatusBadRequest, models.SuccessErrorResponse{Success: false, Error: "complaint_id and status are required"})
		return
	}

	complaint, err := h.DB.FindOne(r.Context(), bson.M{"_id": req.ComplaintID})
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.SuccessErrorResponse{Success: false, Error: "Complaint not found"})
		return
	}
	oldStatus := complaint.Status

	set := bson.M{
		"status":     req.Status,
		"updated_at": nowISO(),
		"updated_by": sess.Name,
	}
	if req.Notes != "" {
		set["status_notes"] = req.Notes
	}
	if err := h.DB.UpdateOne(r.Context(), bson.M{"_id": req.ComplaintID}, bson.M{"$set": set}); err != nil {
		config.ErrorStatus("failed to update complaint", http.StatusInternalServerError, w, err)
		return
	}

	h.notifyStatusChange(r, complaint, oldStatus, req.Status, req.Notes)

	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: "Complaint status updated"})
}

// notifyStatusChange appends a status-change notification to the owning
// resident and pushes it over the websocket hub. Failures are logged only.
func (h Complaint) notifyStatusChange(r *http.Request, complaint *models.Complaint, oldStatus, newStatus, notes string) {
	owner, err := h.UDB.FindOne(r.Context(), bson.M{"_id": complaint.UserUID})
	if err != nil {
		zap.S().Warnw("failed to load complaint owner for notification", "complaint_id", complaint.ID, "error", err)
		return
	}

	message := fmt.Sprintf("Your complaint status has been updated from %q to %q.", oldStatus, newStatus)
	if notes != "" {
		message += " Note: " + notes
	}
	notification := models.Notification{
		ID:          uuid.New().String()[:8],
		Timestamp:   nowISO(),
		Title:       "Complaint Status Updated: " + complaint.ID,
		Message:     message,
		ComplaintID: complaint.ID,
	}

	notifications := append(owner.Notifications, notification)
	update := bson.M{"$set": bson.M{"notifications": notifications}}
	if err := h.UDB.UpdateOne(r.Context(), bson.M{"_id": owner.UID}, update); err != nil {
		zap.S().Warnw("failed to append status notification", "complaint_id", complaint.ID, "error", err)
		return
	}

	PushToUser(owner.UID, "notification", notification)
}
