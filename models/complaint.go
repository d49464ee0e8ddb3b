package models

// Complaint holds the structure for the complaints collection in mongo. The
// document id is the generated complaint id (BCMS-<year>-<8 hex chars>).
type Complaint struct {
	ID                  string       `json:"id" bson:"_id"`
	Title               string       `json:"title" bson:"title"`
	Category            string       `json:"category" bson:"category"`
	Description         string       `json:"description" bson:"description"`
	Location            string       `json:"location" bson:"location"`
	IncidentDate        string       `json:"incident_date" bson:"incident_date"`
	SubmittedDate       string       `json:"submitted_date" bson:"submitted_date"`
	UserUID             string       `json:"user_uid" bson:"user_uid"`
	UserEmail           string       `json:"user_email" bson:"user_email"`
	UserName            string       `json:"user_name" bson:"user_name"`
	Status              string       `json:"status" bson:"status"`
	Urgency             string       `json:"urgency" bson:"urgency"`
	EstimatedResolution string       `json:"estimated_resolution" bson:"estimated_resolution"`
	Escalated           bool         `json:"escalated" bson:"escalated"`
	AssignedTo          string       `json:"assigned_to,omitempty" bson:"assigned_to,omitempty"`
	ContactInfo         *ContactInfo `json:"contact_info,omitempty" bson:"contact_info,omitempty"`
	Attachments         []Attachment `json:"attachments,omitempty" bson:"attachments,omitempty"`
	UpdatedAt           string       `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
	UpdatedBy           string       `json:"updated_by,omitempty" bson:"updated_by,omitempty"`
	StatusNotes         string       `json:"status_notes,omitempty" bson:"status_notes,omitempty"`
}

// ContactInfo is the optional follow-up contact block saved with a complaint
// when the resident opts in.
type ContactInfo struct {
	Name  string `json:"name" bson:"name"`
	Phone string `json:"phone" bson:"phone"`
	Email string `json:"email" bson:"email"`
}

// Attachment is a file uploaded with a complaint, stored inline as base64.
type Attachment struct {
	Filename string `json:"filename" bson:"filename"`
	Data     string `json:"data" bson:"data"`
	MimeType string `json:"mime_type" bson:"mime_type"`
}

// Complaint statuses
const (
	ComplaintStatusNew           = "New"
	ComplaintStatusPending       = "Pending"
	ComplaintStatusPendingReview = "Pending Review"
	ComplaintStatusInProgress    = "In Progress"
	ComplaintStatusEscalated     = "Escalated"
	ComplaintStatusResolved      = "Resolved"
)

// Urgency tiers
const (
	UrgencyHigh   = "High"
	UrgencyMedium = "Medium"
	UrgencyLow    = "Low"
)
