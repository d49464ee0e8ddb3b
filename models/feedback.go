package models

// Feedback holds the structure for the feedback collection in mongo.
type Feedback struct {
	ID            string `json:"id" bson:"_id"`
	UserID        string `json:"user_id" bson:"user_id"`
	UserName      string `json:"user_name" bson:"user_name"`
	UserEmail     string `json:"user_email" bson:"user_email"`
	FeedbackType  string `json:"feedback_type" bson:"feedback_type"`
	Rating        int    `json:"rating" bson:"rating"`
	Message       string `json:"message" bson:"message"`
	ContactMe     bool   `json:"contact_me" bson:"contact_me"`
	ComplaintID   string `json:"complaint_id,omitempty" bson:"complaint_id,omitempty"`
	SubmittedDate string `json:"submitted_date" bson:"submitted_date"`
	Status        string `json:"status" bson:"status"`
	Reply         string `json:"reply,omitempty" bson:"reply,omitempty"`
	RepliedBy     string `json:"replied_by,omitempty" bson:"replied_by,omitempty"`
	RepliedDate   string `json:"replied_date,omitempty" bson:"replied_date,omitempty"`
}

// Feedback statuses
const (
	FeedbackStatusNew     = "new"
	FeedbackStatusReplied = "replied"
)
