package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Notification is a per-user notification embedded in the user document. The
// whole array is rewritten on every mutation, matching the original system.
type Notification struct {
	ID          string `json:"id" bson:"id"`
	Timestamp   string `json:"timestamp" bson:"timestamp"`
	Title       string `json:"title" bson:"title"`
	Message     string `json:"message" bson:"message"`
	ComplaintID string `json:"complaint_id,omitempty" bson:"complaint_id,omitempty"`
	Read        bool   `json:"read" bson:"read"`
}

// OfficialNotification is an entry in the shared officials feed collection,
// written best-effort when complaints are submitted or become overdue.
type OfficialNotification struct {
	ID          primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	ComplaintID string             `json:"complaint_id" bson:"complaint_id"`
	Title       string             `json:"title" bson:"title"`
	Message     string             `json:"message" bson:"message"`
	CreatedAt   string             `json:"created_at" bson:"created_at"`
	Read        bool               `json:"read" bson:"read"`
}
