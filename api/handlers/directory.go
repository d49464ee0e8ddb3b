package handlers

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/barangaycms/barangay-cms-api/databases"
	"github.com/barangaycms/barangay-cms-api/models"
)

// Directory exposes the reduced user listings used by the messaging UI
type Directory struct {
	DB databases.UserDatabase
}

// OfficialsListHandler returns the officials directory. Any session may read
// it so residents can address messages.
func (h Directory) OfficialsListHandler(w http.ResponseWriter, r *http.Request) {
	h.listByRole(w, r, models.RoleOfficial)
}

// ResidentsListHandler returns the residents directory for officials.
func (h Directory) ResidentsListHandler(w http.ResponseWriter, r *http.Request) {
	h.listByRole(w, r, models.RoleResident)
}

func (h Directory) listByRole(w http.ResponseWriter, r *http.Request, role string) {
	users, err := h.DB.Find(r.Context(), bson.M{"role": role})
	if err != nil {
		zap.S().Warnw("failed to list directory", "role", role, "error", err)
		users = nil
	}

	entries := []models.DirectoryEntry{}
	for _, u := range users {
		entries = append(entries, models.DirectoryEntry{
			Email: u.Email,
			Name:  u.FullName,
			Role:  u.Role,
		})
	}
	writeJSON(w, http.StatusOK, entries)
}
