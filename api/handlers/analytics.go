package handlers

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/barangaycms/barangay-cms-api/databases"
	"github.com/barangaycms/barangay-cms-api/models"
)

// slaWindow is the resolution window counted as compliant, in hours.
const slaWindow = 168.0

// Stats serves the aggregated complaint analytics
type Stats struct {
	DB databases.ComplaintDatabase
}

// ComputeAnalytics aggregates status counts, percentages and resolution
// times over the full complaints list. Pending folds New, Pending and
// Pending Review together.
func ComputeAnalytics(complaints []models.Complaint) models.ComplaintAnalytics {
	a := models.ComplaintAnalytics{Total: len(complaints)}

	var resolutionHours []float64
	for _, c := range complaints {
		switch c.Status {
		case models.ComplaintStatusResolved:
			a.Resolved++
		case models.ComplaintStatusInProgress:
			a.InProgress++
		case models.ComplaintStatusEscalated:
			a.Escalated++
		case models.ComplaintStatusNew, models.ComplaintStatusPending, models.ComplaintStatusPendingReview:
			a.Pending++
		}

		if c.Status == models.ComplaintStatusResolved {
			submitted, err1 := parseTimestamp(c.SubmittedDate)
			updated, err2 := parseTimestamp(c.UpdatedAt)
			if err1 == nil && err2 == nil {
				resolutionHours = append(resolutionHours, updated.Sub(submitted).Hours())
			}
		}
	}

	if a.Total > 0 {
		a.ResolvedPercentage = roundPercent(a.Resolved, a.Total)
		a.InProgressPercentage = roundPercent(a.InProgress, a.Total)
		a.EscalatedPercentage = roundPercent(a.Escalated, a.Total)
	}

	if len(resolutionHours) > 0 {
		var sum float64
		fastest := resolutionHours[0]
		within := 0
		for _, h := range resolutionHours {
			sum += h
			if h < fastest {
				fastest = h
			}
			if h <= slaWindow {
				within++
			}
		}
		a.AvgResolutionTime = round1(sum / float64(len(resolutionHours)) / 24)
		a.FastestResolution = round1(fastest)
		a.SLACompliance = roundPercent(within, len(resolutionHours))
	}

	return a
}

// ComputeMonthlyComparison partitions complaints into the current and
// previous calendar month by submitted_date and reports percentage change.
// The previous-month divisor is floored at 1, which overstates change when
// last month was empty; kept for continuity with the existing dashboards.
func ComputeMonthlyComparison(complaints []models.Complaint, now time.Time) models.MonthlyComparison {
	m := models.MonthlyComparison{}
	currentYear, currentMonth, _ := now.Date()
	prev := now.AddDate(0, -1, 0)
	prevYear, prevMonth, _ := prev.Date()

	for _, c := range complaints {
		submitted, err := parseTimestamp(c.SubmittedDate)
		if err != nil {
			continue
		}
		y, mo, _ := submitted.Date()
		switch {
		case y == currentYear && mo == currentMonth:
			m.CurrentTotal++
			if c.Status == models.ComplaintStatusResolved {
				m.CurrentResolved++
			}
		case y == prevYear && mo == prevMonth:
			m.PreviousTotal++
			if c.Status == models.ComplaintStatusResolved {
				m.PreviousResolved++
			}
		}
	}

	m.VolumeChange = percentChange(m.CurrentTotal, m.PreviousTotal)
	m.ResolvedChange = percentChange(m.CurrentResolved, m.PreviousResolved)
	return m
}

// OfficialStatsHandler returns the analytics block plus the month-over-month
// comparison for the officials dashboard.
func (h Stats) OfficialStatsHandler(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.DB.Find(r.Context(), bson.M{})
	if err != nil {
		zap.S().Warnw("failed to load complaints for stats", "error", err)
		complaints = nil
	}
	writeJSON(w, http.StatusOK, models.OfficialStatsResponse{
		ComplaintAnalytics: ComputeAnalytics(complaints),
		MonthOverMonth:     ComputeMonthlyComparison(complaints, time.Now().UTC()),
	})
}

// AdminAnalyticsHandler returns the analytics block for the admin console.
func (h Stats) AdminAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.DB.Find(r.Context(), bson.M{})
	if err != nil {
		zap.S().Warnw("failed to load complaints for analytics", "error", err)
		complaints = nil
	}
	writeJSON(w, http.StatusOK, ComputeAnalytics(complaints))
}

func roundPercent(count, total int) int {
	return int(math.Round(float64(count) / float64(total) * 100))
}

func percentChange(current, previous int) int {
	divisor := previous
	if divisor < 1 {
		divisor = 1
	}
	return int(math.Round(float64(current-previous) / float64(divisor) * 100))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// timestampLayouts are the formats accepted by parseTimestamp. Documents are
// written with RFC3339 but older imports may lack the offset.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseTimestamp(value string) (time.Time, error) {
	var err error
	for _, layout := range timestampLayouts {
		var t time.Time
		t, err = time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// nowISO returns the current UTC time as an RFC3339 string. Timestamps are
// stored as strings so lexicographic sort matches chronological order.
func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// timeAgo humanizes a timestamp for the activity feed.
func timeAgo(value string) string {
	t, err := parseTimestamp(value)
	if err != nil {
		return "recently"
	}
	elapsed := time.Since(t)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(elapsed.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(elapsed.Hours()/24))
	}
}
