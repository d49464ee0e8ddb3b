package models

// Message is a point-to-point inbox message embedded in the user document.
// The same object is stored twice: once in the recipient's inbox and once in
// the sender's, with IsSent set on the sender's copy only.
type Message struct {
	ID          string `json:"id" bson:"id"`
	FromEmail   string `json:"from_email" bson:"from_email"`
	FromName    string `json:"from_name" bson:"from_name"`
	ToEmail     string `json:"to_email" bson:"to_email"`
	ToName      string `json:"to_name" bson:"to_name"`
	Subject     string `json:"subject" bson:"subject"`
	Content     string `json:"content" bson:"content"`
	ComplaintID string `json:"complaint_id,omitempty" bson:"complaint_id,omitempty"`
	Timestamp   string `json:"timestamp" bson:"timestamp"`
	Read        bool   `json:"read" bson:"read"`
	IsSent      bool   `json:"isSent,omitempty" bson:"isSent,omitempty"`
}
