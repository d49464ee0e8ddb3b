package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/barangaycms/barangay-cms-api/api"
	"github.com/barangaycms/barangay-cms-api/api/scheduler"
	"github.com/barangaycms/barangay-cms-api/config"
	"github.com/barangaycms/barangay-cms-api/databases"
	"github.com/barangaycms/barangay-cms-api/identity"
	"github.com/barangaycms/barangay-cms-api/models"
)

// App stores the router, db connection and identity provider, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	Identity identity.Provider
	dbHelper databases.DatabaseHelper
	sched    *scheduler.Scheduler
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	api.SetupGoGuardian(a.Config.JWTSecret)

	r := mux.NewRouter()

	auth := Auth{DB: databases.NewUserDatabase(a.dbHelper), Identity: a.Identity}
	c := Complaint{DB: databases.NewComplaintDatabase(a.dbHelper), UDB: databases.NewUserDatabase(a.dbHelper), NDB: databases.NewNotificationDatabase(a.dbHelper)}
	m := Message{DB: databases.NewUserDatabase(a.dbHelper)}
	n := Notification{DB: databases.NewUserDatabase(a.dbHelper)}
	d := Directory{DB: databases.NewUserDatabase(a.dbHelper)}
	adm := Admin{UDB: databases.NewUserDatabase(a.dbHelper), CDB: databases.NewComplaintDatabase(a.dbHelper), Identity: a.Identity}
	f := Feedback{DB: databases.NewFeedbackDatabase(a.dbHelper)}
	st := Stats{DB: databases.NewComplaintDatabase(a.dbHelper)}
	stream := Stream{DB: databases.NewComplaintDatabase(a.dbHelper)}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	r.Handle("/auth/signup", http.HandlerFunc(auth.SignupHandler)).Methods("POST")
	r.Handle("/auth/login", http.HandlerFunc(auth.LoginHandler)).Methods("POST")
	r.Handle("/auth/logout", api.Middleware(http.HandlerFunc(auth.LogoutHandler))).Methods("GET")
	r.Handle("/auth/token", api.Middleware(http.HandlerFunc(auth.CreateTokenHandler))).Methods("POST")

	r.Handle("/complaint/submit", api.Middleware(http.HandlerFunc(c.SubmitComplaintHandler))).Methods("POST")
	r.Handle("/complaint/recent", api.Middleware(http.HandlerFunc(c.RecentComplaintsHandler))).Methods("GET")
	r.Handle("/complaint/all", api.Middleware(http.HandlerFunc(c.AllComplaintsHandler))).Methods("GET")
	r.Handle("/complaint/details", api.Middleware(http.HandlerFunc(c.ComplaintDetailsHandler))).Methods("GET")
	r.Handle("/complaint/update", api.Middleware(http.HandlerFunc(c.UpdateComplaintHandler))).Methods("POST")
	r.Handle("/officials/complaints/{status}", api.RequireOfficial(http.HandlerFunc(c.ComplaintsByStatusHandler))).Methods("GET")
	r.Handle("/officials/stats", api.RequireOfficial(http.HandlerFunc(st.OfficialStatsHandler))).Methods("GET")
	r.Handle("/officials/list", api.Middleware(http.HandlerFunc(d.OfficialsListHandler))).Methods("GET")
	r.Handle("/residents/list", api.RequireOfficial(http.HandlerFunc(d.ResidentsListHandler))).Methods("GET")

	// real-time complaint feed, no session required (matches the original)
	r.Handle("/stream", http.HandlerFunc(stream.ComplaintStreamHandler)).Methods("GET")
	r.Handle("/ws/notifications", http.HandlerFunc(HandleNotificationsWebSocket)).Methods("GET")

	r.Handle("/message/send", api.Middleware(http.HandlerFunc(m.SendMessageHandler))).Methods("POST")
	r.Handle("/messages", api.Middleware(http.HandlerFunc(m.GetMessagesHandler))).Methods("GET")
	r.Handle("/notifications", api.Middleware(http.HandlerFunc(n.GetNotificationsHandler))).Methods("GET")
	r.Handle("/notifications/mark_read", api.Middleware(http.HandlerFunc(n.MarkNotificationReadHandler))).Methods("POST")

	r.Handle("/admin/stats", api.RequireAdmin(http.HandlerFunc(adm.StatsHandler))).Methods("GET")
	r.Handle("/admin/recent-activity", api.RequireAdmin(http.HandlerFunc(adm.RecentActivityHandler))).Methods("GET")
	r.Handle("/admin/complaints", api.RequireAdmin(http.HandlerFunc(adm.ComplaintsHandler))).Methods("GET")
	r.Handle("/admin/users", api.RequireAdmin(http.HandlerFunc(adm.UsersHandler))).Methods("GET")
	r.Handle("/admin/analytics", api.RequireAdmin(http.HandlerFunc(st.AdminAnalyticsHandler))).Methods("GET")
	r.Handle("/admin/pending-registrations", api.RequireAdmin(http.HandlerFunc(adm.PendingRegistrationsHandler))).Methods("GET")
	r.Handle("/admin/approve-registration/{uid}", api.RequireAdmin(http.HandlerFunc(adm.ApproveRegistrationHandler))).Methods("POST")
	r.Handle("/admin/reject-registration/{uid}", api.RequireAdmin(http.HandlerFunc(adm.RejectRegistrationHandler))).Methods("POST")
	r.Handle("/admin/user/delete", api.RequireAdmin(http.HandlerFunc(adm.DeleteUserHandler))).Methods("POST")
	r.Handle("/admin/user/toggle-block", api.RequireAdmin(http.HandlerFunc(adm.ToggleBlockUserHandler))).Methods("POST")
	r.Handle("/admin/complaint/delete", api.RequireAdmin(http.HandlerFunc(adm.DeleteComplaintHandler))).Methods("POST")

	r.Handle("/feedback/submit", api.Middleware(http.HandlerFunc(f.SubmitFeedbackHandler))).Methods("POST")
	r.Handle("/feedback/recent", api.Middleware(http.HandlerFunc(f.RecentFeedbackHandler))).Methods("GET")
	r.Handle("/feedback/my-feedback", api.Middleware(http.HandlerFunc(f.MyFeedbackHandler))).Methods("GET")
	r.Handle("/feedback/filter", api.Middleware(http.HandlerFunc(f.FilterFeedbackHandler))).Methods("GET")
	r.Handle("/feedback/reply", api.Middleware(http.HandlerFunc(f.ReplyFeedbackHandler))).Methods("POST")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("barangay-cms-api has connected to the database")

	// initialize identity provider
	if a.Identity == nil {
		if a.Config.FirebaseCredentials != "" {
			provider, err := identity.NewFirebaseProvider(context.Background(), a.Config.FirebaseCredentials)
			if err != nil {
				zap.S().With(err).Error("failed to initialize firebase identity provider")
				return err
			}
			a.Identity = provider
		} else {
			zap.S().Info("no firebase credentials configured, using local identity accounts")
			a.Identity = identity.NewLocalProvider(a.dbHelper)
		}
	}

	// initialize api router
	a.initializeRoutes()

	// default admin account, best-effort
	bootstrapDefaultAdmin(a.Identity, databases.NewUserDatabase(a.dbHelper))

	// background jobs
	a.sched = scheduler.New(
		databases.NewComplaintDatabase(a.dbHelper),
		databases.NewNotificationDatabase(a.dbHelper),
	)
	a.sched.Start()

	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
