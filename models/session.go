package models

// Session is the authenticated identity carried by every request past the
// auth middleware. It mirrors the fields stored at login: email, uid, role,
// display name and the admin flag.
type Session struct {
	Email   string `json:"user_email"`
	UID     string `json:"user_uid"`
	Role    string `json:"user_role"`
	Name    string `json:"user_name"`
	IsAdmin bool   `json:"is_admin"`
}

// IsOfficial reports whether the session belongs to a barangay official.
// Admins are officials with the admin flag set, so this covers them too.
func (s Session) IsOfficial() bool {
	return s.Role == RoleOfficial
}
