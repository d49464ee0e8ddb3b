package models

// HealthCheckResponse returns the health check response "alive: true" if all
// is well
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}

// SuccessResponse is the common {success, message} envelope returned by
// mutating endpoints.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// SuccessErrorResponse is the envelope used by endpoints that report failures
// under an "error" key instead of "message".
type SuccessErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SubmitComplaintResponse is returned by the complaint submission endpoint.
type SubmitComplaintResponse struct {
	Success     bool   `json:"success"`
	ComplaintID string `json:"complaint_id"`
	Message     string `json:"message"`
}

// AdminStatsResponse is the admin dashboard headline counters.
type AdminStatsResponse struct {
	TotalResidents  int `json:"total_residents"`
	TotalOfficials  int `json:"total_officials"`
	PendingRequests int `json:"pending_requests"`
	UpcomingEvents  int `json:"upcoming_events"`
}

// ActivityEntry is a humanized recent-activity line for the admin dashboard.
type ActivityEntry struct {
	Type      string `json:"type"`
	Icon      string `json:"icon"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// AdminComplaintRow is the reduced complaint shape listed on the admin
// dashboard, with the resident display name resolved.
type AdminComplaintRow struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Resident string `json:"resident"`
	Date     string `json:"date"`
	Status   string `json:"status"`
}

// AdminUserRow is the reduced user shape listed on the admin dashboard.
type AdminUserRow struct {
	UID     string `json:"uid"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"is_admin"`
	Status  string `json:"status"`
}

// ComplaintAnalytics is the stateless aggregation computed over the full
// complaints collection.
type ComplaintAnalytics struct {
	Total                int     `json:"total"`
	Resolved             int     `json:"resolved"`
	InProgress           int     `json:"in_progress"`
	Escalated            int     `json:"escalated"`
	Pending              int     `json:"pending"`
	ResolvedPercentage   int     `json:"resolved_percentage"`
	InProgressPercentage int     `json:"in_progress_percentage"`
	EscalatedPercentage  int     `json:"escalated_percentage"`
	AvgResolutionTime    float64 `json:"avg_resolution_time"`
	FastestResolution    float64 `json:"fastest_resolution"`
	SLACompliance        int     `json:"sla_compliance"`
}

// MonthlyComparison is the month-over-month complaint volume comparison.
type MonthlyComparison struct {
	CurrentTotal     int `json:"current_total"`
	PreviousTotal    int `json:"previous_total"`
	CurrentResolved  int `json:"current_resolved"`
	PreviousResolved int `json:"previous_resolved"`
	VolumeChange     int `json:"volume_change"`
	ResolvedChange   int `json:"resolved_change"`
}

// OfficialStatsResponse is returned by the officials stats endpoint.
type OfficialStatsResponse struct {
	ComplaintAnalytics
	MonthOverMonth MonthlyComparison `json:"month_over_month"`
}
