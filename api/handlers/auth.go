package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/barangaycms/barangay-cms-api/api"
	"github.com/barangaycms/barangay-cms-api/config"
	"github.com/barangaycms/barangay-cms-api/databases"
	"github.com/barangaycms/barangay-cms-api/identity"
	"github.com/barangaycms/barangay-cms-api/models"
)

// Default admin account bootstrapped at startup.
const (
	defaultAdminEmail    = "admin01-barangay@gmail.com"
	defaultAdminPassword = "admin123"
	defaultAdminName     = "Barangay Admin"
)

// Auth handles signup, login, logout and API token issuance
type Auth struct {
	DB       databases.UserDatabase
	Identity identity.Provider
}

type loginResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token"`
	Role     string `json:"role"`
	IsAdmin  bool   `json:"is_admin"`
	Redirect string `json:"redirect"`
}

// SignupHandler registers a new resident or official. Officials start in
// pending_approval and cannot log in until an admin approves them.
func (h Auth) SignupHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	fullName := r.FormValue("fullName")
	email := r.FormValue("email")
	phone := r.FormValue("phone")
	password := r.FormValue("password")
	confirmPassword := r.FormValue("confirmPassword")
	role := r.FormValue("role")
	if role == "" {
		role = models.RoleResident
	}

	if password != confirmPassword {
		writeJSON(w, http.StatusBadRequest, models.SuccessResponse{Success: false, Message: "Passwords do not match"})
		return
	}
	if len(password) < 8 {
		writeJSON(w, http.StatusBadRequest, models.SuccessResponse{Success: false, Message: "Password must be at least 8 characters"})
		return
	}

	record, err := h.Identity.CreateUser(r.Context(), email, password, fullName)
	if err != nil {
		if errors.Is(err, identity.ErrEmailExists) {
			writeJSON(w, http.StatusBadRequest, models.SuccessResponse{Success: false, Message: "Email already exists"})
			return
		}
		config.ErrorStatus("failed to create user", http.StatusInternalServerError, w, err)
		return
	}

	user := models.User{
		UID:       record.UID,
		FullName:  fullName,
		Email:     email,
		Phone:     phone,
		Role:      role,
		CreatedAt: nowISO(),
	}
	message := "Account created successfully! Please login."
	if role == models.RoleOfficial {
		user.Status = models.StatusPendingApproval
		message = "Registration submitted! Please wait for admin approval before you can login."
	} else {
		user.Status = models.StatusApproved
	}

	if err := h.DB.InsertOne(r.Context(), user); err != nil {
		config.ErrorStatus("failed to store user profile", http.StatusInternalServerError, w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: message})
}

// LoginHandler authenticates against the identity provider and issues a
// session. The hosted provider cannot verify passwords server-side, so the
// lookup is by email only; the local provider additionally checks its hash.
func (h Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	email := r.FormValue("email")
	password := r.FormValue("password")
	role := r.FormValue("role")
	if role == "" {
		role = models.RoleResident
	}

	record, err := h.Identity.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			writeJSON(w, http.StatusUnauthorized, models.SuccessResponse{Success: false, Message: "Invalid email or password"})
			return
		}
		config.ErrorStatus("login failed", http.StatusInternalServerError, w, err)
		return
	}

	if verifier, ok := h.Identity.(identity.PasswordVerifier); ok {
		if err := verifier.VerifyPassword(r.Context(), email, password); err != nil {
			writeJSON(w, http.StatusUnauthorized, models.SuccessResponse{Success: false, Message: "Invalid email or password"})
			return
		}
	}

	user, err := h.DB.FindOne(r.Context(), bson.M{"_id": record.UID})
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, models.SuccessResponse{Success: false, Message: "User profile not found"})
		return
	}

	if user.Role == models.RoleOfficial && user.Status == models.StatusPendingApproval {
		writeJSON(w, http.StatusUnauthorized, models.SuccessResponse{Success: false, Message: "Your account is pending admin approval. Please wait for confirmation."})
		return
	}
	if user.Status == models.StatusRejected {
		writeJSON(w, http.StatusUnauthorized, models.SuccessResponse{Success: false, Message: "Your registration was not approved. Please contact the admin for more information."})
		return
	}
	if user.Status == models.StatusBlocked {
		writeJSON(w, http.StatusUnauthorized, models.SuccessResponse{Success: false, Message: "Your account has been blocked. Please contact the admin."})
		return
	}
	if user.Role != role && !user.IsAdmin {
		writeJSON(w, http.StatusUnauthorized, models.SuccessResponse{Success: false, Message: "Please login as " + user.Role})
		return
	}

	sess := models.Session{
		Email:   email,
		UID:     record.UID,
		Role:    user.Role,
		Name:    user.FullName,
		IsAdmin: user.IsAdmin,
	}
	token := api.IssueSession(sess, r)
	http.SetCookie(w, &http.Cookie{
		Name:     api.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})

	redirect := "/resident/dashboard"
	if user.IsAdmin {
		redirect = "/admin/dashboard"
	} else if user.Role == models.RoleOfficial {
		redirect = "/official/dashboard"
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success:  true,
		Token:    token,
		Role:     user.Role,
		IsAdmin:  user.IsAdmin,
		Redirect: redirect,
	})
}

// LogoutHandler revokes the session token and clears the cookie.
func (h Auth) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(api.SessionCookieName); err == nil {
		api.RevokeSession(c.Value, r)
	}
	http.SetCookie(w, &http.Cookie{
		Name:    api.SessionCookieName,
		Value:   "",
		Path:    "/",
		MaxAge:  -1,
		Expires: time.Unix(0, 0),
	})
	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: "You have been logged out"})
}

// CreateTokenHandler exchanges a live session for a signed API token.
func (h Auth) CreateTokenHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := api.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.SuccessResponse{Success: false, Message: "User not logged in"})
		return
	}
	token, err := api.IssueAPIToken(sess)
	if err != nil {
		config.ErrorStatus("failed to sign token", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token, "uid": sess.UID})
}

// bootstrapDefaultAdmin makes sure the default admin account exists in both
// the identity provider and the users collection. Failures are logged only.
func bootstrapDefaultAdmin(provider identity.Provider, users databases.UserDatabase) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	record, err := provider.GetUserByEmail(ctx, defaultAdminEmail)
	if errors.Is(err, identity.ErrUserNotFound) {
		record, err = provider.CreateUser(ctx, defaultAdminEmail, defaultAdminPassword, defaultAdminName)
	}
	if err != nil {
		zap.S().Warnw("admin setup note", "error", err)
		return
	}

	update := bson.M{"$set": bson.M{
		"full_name":  defaultAdminName,
		"email":      defaultAdminEmail,
		"phone":      "09123456789",
		"role":       models.RoleOfficial,
		"is_admin":   true,
		"status":     models.StatusApproved,
		"created_at": nowISO(),
	}}
	opts := options.Update().SetUpsert(true)
	if err := users.UpdateOne(ctx, bson.M{"_id": record.UID}, update, opts); err != nil {
		zap.S().Warnw("admin setup note", "error", err)
		return
	}
	zap.S().Info("default admin account ready")
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
