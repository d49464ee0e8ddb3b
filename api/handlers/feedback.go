package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/barangaycms/barangay-cms-api/api"
	"github.com/barangaycms/barangay-cms-api/databases"
	"github.com/barangaycms/barangay-cms-api/models"
)

// Feedback handles service feedback submission and official replies
type Feedback struct {
	DB databases.FeedbackDatabase
}

// SubmitFeedbackHandler stores a new feedback entry for the caller.
func (h Feedback) SubmitFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := api.SessionFromContext(r.Context())

	feedbackType := r.FormValue("feedback-type")
	ratingValue := r.FormValue("rating")
	message := r.FormValue("feedback-message")
	contactMe := r.FormValue("contact-me") == "on" || r.FormValue("contact-me") == "yes"

	if feedbackType == "" || ratingValue == "" || message == "" {
		writeJSON(w, http.StatusBadRequest, models.SuccessErrorResponse{Success: false, Error: "Please fill in all required fields"})
		return
	}
	rating, err := strconv.Atoi(ratingValue)
	if err != nil || rating < 1 || rating > 5 {
		writeJSON(w, http.StatusBadRequest, models.SuccessErrorResponse{Success: false, Error: "Rating must be between 1 and 5"})
		return
	}

	feedback := models.Feedback{
		ID:            strings.ReplaceAll(uuid.New().String(), "-", ""),
		UserID:        sess.UID,
		UserName:      sess.Name,
		FeedbackType:  feedbackType,
		Rating:        rating,
		Message:       message,
		ContactMe:     contactMe,
		ComplaintID:   r.FormValue("complaint_id"),
		SubmittedDate: nowISO(),
		Status:        models.FeedbackStatusNew,
	}
	if contactMe {
		feedback.UserEmail = sess.Email
	}

	if err := h.DB.InsertOne(r.Context(), feedback); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.SuccessErrorResponse{Success: false, Error: "Failed to store feedback"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"feedback_id": feedback.ID,
		"message":     "Thank you for your feedback!",
	})
}

// RecentFeedbackHandler returns the latest feedback for officials.
func (h Feedback) RecentFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := api.SessionFromContext(r.Context())
	if !sess.IsOfficial() {
		writeJSON(w, http.StatusForbidden, models.SuccessErrorResponse{Success: false, Error: "Access denied. This page is only for officials"})
		return
	}
	h.list(w, r, bson.M{})
}

// MyFeedbackHandler returns the caller's own feedback entries.
func (h Feedback) MyFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := api.SessionFromContext(r.Context())
	h.list(w, r, bson.M{"user_id": sess.UID})
}

// FilterFeedbackHandler filters feedback by sentiment bucket for officials.
// positive is rating 4-5, neutral is 3, negative is 1-2; recent and all pass
// everything through.
func (h Feedback) FilterFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := api.SessionFromContext(r.Context())
	if !sess.IsOfficial() {
		writeJSON(w, http.StatusForbidden, models.SuccessErrorResponse{Success: false, Error: "Access denied. This page is only for officials"})
		return
	}

	filter := bson.M{}
	switch r.URL.Query().Get("type") {
	case "positive":
		filter = bson.M{"rating": bson.M{"$gte": 4}}
	case "neutral":
		filter = bson.M{"rating": 3}
	case "negative":
		filter = bson.M{"rating": bson.M{"$lte": 2}}
	}
	h.list(w, r, filter)
}

func (h Feedback) list(w http.ResponseWriter, r *http.Request, filter bson.M) {
	opts := options.Find().SetSort(bson.D{{Key: "submitted_date", Value: -1}})
	feedback, err := h.DB.Find(r.Context(), filter, opts)
	if err != nil {
		zap.S().Warnw("failed to list feedback", "error", err)
		feedback = nil
	}
	if feedback == nil {
		feedback = []models.Feedback{}
	}
	writeJSON(w, http.StatusOK, feedback)
}

type replyFeedbackRequest struct {
	FeedbackID   string `json:"feedback_id"`
	ReplyMessage string `json:"reply_message"`
}

// ReplyFeedbackHandler records an official's reply on a feedback entry.
func (h Feedback) ReplyFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := api.SessionFromContext(r.Context())
	if !sess.IsOfficial() {
		writeJSON(w, http.StatusForbidden, models.SuccessErrorResponse{Success: false, Error: "Access denied. This page is only for officials"})
		return
	}

	var req replyFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FeedbackID == "" || req.ReplyMessage == "" {
		writeJSON(w, http.StatusBadRequest, models.SuccessErrorResponse{Success: false, Error: "feedback_id and reply_message are required"})
		return
	}

	if _, err := h.DB.FindOne(r.Context(), bson.M{"_id": req.FeedbackID}); err != nil {
		writeJSON(w, http.StatusNotFound, models.SuccessErrorResponse{Success: false, Error: "Feedback not found"})
		return
	}

	update := bson.M{"$set": bson.M{
		"reply":        req.ReplyMessage,
		"replied_by":   sess.Name,
		"replied_date": nowISO(),
		"status":       models.FeedbackStatusReplied,
	}}
	if err := h.DB.UpdateOne(r.Context(), bson.M{"_id": req.FeedbackID}, update); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.SuccessErrorResponse{Success: false, Error: "Failed to store reply"})
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: "Reply sent"})
}
