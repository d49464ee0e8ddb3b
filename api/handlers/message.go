package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/barangaycms/barangay-cms-api/api"
	"github.com/barangaycms/barangay-cms-api/databases"
	"github.com/barangaycms/barangay-cms-api/models"
)

// Message handles the embedded per-user inbox
type Message struct {
	DB databases.UserDatabase
}

type sendMessageRequest struct {
	To          string `json:"to"`
	ToEmail     string `json:"to_email"`
	Subject     string `json:"subject"`
	Content     string `json:"content"`
	ComplaintID string `json:"complaint_id"`
}

// SendMessageHandler delivers a message to another user's inbox and keeps a
// sent copy for the caller. The two array rewrites are independent, so a
// failure after the first write leaves only the recipient copy.
func (h Message) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := api.SessionFromContext(r.Context())

	var req sendMessageRequest
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.SuccessErrorResponse{Success: false, Error: "Invalid request body"})
			return
		}
	} else {
		req.To = r.FormValue("to")
		req.ToEmail = r.FormValue("to_email")
		req.Subject = r.FormValue("subject")
		req.Content = r.FormValue("content")
		req.ComplaintID = r.FormValue("complaint_id")
	}

	toEmail := req.To
	if toEmail == "" {
		toEmail = req.ToEmail
	}
	if toEmail == "" || req.Content == "" {
		writeJSON(w, http.StatusBadRequest, models.SuccessErrorResponse{Success: false, Error: "Recipient and message content are required"})
		return
	}

	recipient, err := h.DB.FindOne(r.Context(), bson.M{"email": toEmail})
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.SuccessErrorResponse{Success: false, Error: "Recipient not found"})
		return
	}

	message := models.Message{
		ID:          uuid.New().String()[:8],
		FromEmail:   sess.Email,
		FromName:    sess.Name,
		ToEmail:     recipient.Email,
		ToName:      recipient.FullName,
		Subject:     req.Subject,
		Content:     req.Content,
		ComplaintID: req.ComplaintID,
		Timestamp:   nowISO(),
	}

	inbox := append(recipient.Messages, message)
	if err := h.DB.UpdateOne(r.Context(), bson.M{"_id": recipient.UID}, bson.M{"$set": bson.M{"messages": inbox}}); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.SuccessErrorResponse{Success: false, Error: "Failed to deliver message"})
		return
	}

	// sender's sent copy, best-effort
	if sender, err := h.DB.FindOne(r.Context(), bson.M{"_id": sess.UID}); err == nil {
		sent := message
		sent.IsSent = true
		outbox := append(sender.Messages, sent)
		if err := h.DB.UpdateOne(r.Context(), bson.M{"_id": sender.UID}, bson.M{"$set": bson.M{"messages": outbox}}); err != nil {
			zap.S().Warnw("failed to store sent copy", "uid", sess.UID, "error", err)
		}
	} else {
		zap.S().Warnw("failed to load sender for sent copy", "uid", sess.UID, "error", err)
	}

	h.notifyNewMessage(r, recipient, message)

	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: "Message sent"})
}

// notifyNewMessage appends a truncated preview notification to the recipient
// and pushes it over the websocket hub, best-effort.
func (h Message) notifyNewMessage(r *http.Request, recipient *models.User, message models.Message) {
	notification := models.Notification{
		ID:          uuid.New().String()[:8],
		Timestamp:   nowISO(),
		Title:       "New message: " + truncate(message.Subject, 40),
		Message:     truncate(message.Content, 140),
		ComplaintID: message.ComplaintID,
	}
	notifications := append(recipient.Notifications, notification)
	update := bson.M{"$set": bson.M{"notifications": notifications}}
	if err := h.DB.UpdateOne(r.Context(), bson.M{"_id": recipient.UID}, update); err != nil {
		zap.S().Warnw("failed to append message notification", "uid", recipient.UID, "error", err)
		return
	}
	PushToUser(recipient.UID, "notification", notification)
}

// GetMessagesHandler returns the caller's messages, newest first.
func (h Message) GetMessagesHandler(w http.ResponseWriter, r *http.Request) {
	sess, _ := api.SessionFromContext(r.Context())

	user, err := h.DB.FindOne(r.Context(), bson.M{"_id": sess.UID})
	if err != nil {
		zap.S().Warnw("failed to load messages", "uid", sess.UID, "error", err)
		writeJSON(w, http.StatusOK, []models.Message{})
		return
	}

	messages := user.Messages
	if messages == nil {
		messages = []models.Message{}
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp > messages[j].Timestamp
	})
	writeJSON(w, http.StatusOK, messages)
}

// truncate caps s at n characters.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
