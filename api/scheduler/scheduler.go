package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/barangaycms/barangay-cms-api/databases"
	"github.com/barangaycms/barangay-cms-api/models"
)

// Scheduler handles periodic background jobs for the complaint desk
type Scheduler struct {
	cron *cron.Cron
	CDB  databases.ComplaintDatabase
	NDB  databases.NotificationDatabase
}

// New creates a new scheduler instance
func New(cDB databases.ComplaintDatabase, nDB databases.NotificationDatabase) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		CDB:  cDB,
		NDB:  nDB,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Remind officials about overdue complaints daily at 1 AM UTC
	_, err := s.cron.AddFunc("0 1 * * *", s.remindOverdueComplaints)
	if err != nil {
		zap.S().Errorw("failed to register overdue reminder job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("complaint scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("complaint scheduler stopped")
}

// remindOverdueComplaints scans unresolved complaints past their estimated
// resolution window and appends reminders to the officials feed. Every write
// is best-effort; a failed append is retried implicitly on the next run.
func (s *Scheduler) remindOverdueComplaints() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	complaints, err := s.CDB.Find(ctx, bson.M{
		"status": bson.M{"$ne": models.ComplaintStatusResolved},
	})
	if err != nil {
		zap.S().Errorw("failed to scan for overdue complaints", "error", err)
		return
	}

	now := time.Now().UTC()
	overdue := 0
	for _, c := range complaints {
		submitted, err := time.Parse(time.RFC3339, c.SubmittedDate)
		if err != nil {
			continue
		}
		if now.Before(submitted.Add(resolutionWindow(c.EstimatedResolution))) {
			continue
		}

		overdue++
		err = s.NDB.InsertOne(ctx, models.OfficialNotification{
			ComplaintID: c.ID,
			Title:       "Complaint overdue",
			Message:     fmt.Sprintf("Complaint %s (%s urgency) has passed its estimated resolution of %s", c.ID, c.Urgency, c.EstimatedResolution),
			CreatedAt:   now.Format(time.RFC3339),
		})
		if err != nil {
			zap.S().Warnw("failed to append overdue reminder", "complaint_id", c.ID, "error", err)
		}
	}

	zap.S().Infow("overdue complaint scan finished", "scanned", len(complaints), "overdue", overdue)
}

// resolutionWindow converts the stored estimate into a duration. Unknown
// estimates fall back to the Low tier window.
func resolutionWindow(estimate string) time.Duration {
	switch estimate {
	case "24 hours":
		return 24 * time.Hour
	case "3 days":
		return 72 * time.Hour
	default:
		return 168 * time.Hour
	}
}
