package models

// User holds the structure for the users collection in mongo. The document id
// is the identity provider uid, so lookups by uid are point reads.
type User struct {
	UID           string         `json:"uid" bson:"_id"`
	FullName      string         `json:"full_name" bson:"full_name"`
	Email         string         `json:"email" bson:"email"`
	Phone         string         `json:"phone" bson:"phone"`
	Role          string         `json:"role" bson:"role"`
	IsAdmin       bool           `json:"is_admin" bson:"is_admin"`
	Status        string         `json:"status" bson:"status"`
	CreatedAt     string         `json:"created_at" bson:"created_at"`
	ApprovedAt    string         `json:"approved_at,omitempty" bson:"approved_at,omitempty"`
	ApprovedBy    string         `json:"approved_by,omitempty" bson:"approved_by,omitempty"`
	RejectedAt    string         `json:"rejected_at,omitempty" bson:"rejected_at,omitempty"`
	RejectedBy    string         `json:"rejected_by,omitempty" bson:"rejected_by,omitempty"`
	BlockedAt     string         `json:"blocked_at,omitempty" bson:"blocked_at,omitempty"`
	BlockedBy     string         `json:"blocked_by,omitempty" bson:"blocked_by,omitempty"`
	Messages      []Message      `json:"messages,omitempty" bson:"messages,omitempty"`
	Notifications []Notification `json:"notifications,omitempty" bson:"notifications,omitempty"`
}

// User roles
const (
	RoleResident = "resident"
	RoleOfficial = "official"
)

// User account statuses
const (
	StatusApproved        = "approved"
	StatusPendingApproval = "pending_approval"
	StatusRejected        = "rejected"
	StatusBlocked         = "blocked"
)

// DirectoryEntry is the reduced user shape returned by the officials/residents
// directory endpoints used by the messaging UI.
type DirectoryEntry struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
