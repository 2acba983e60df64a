package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/arnav/career-copilot/internal/db"
	"github.com/arnav/career-copilot/internal/server/middleware"
)

// CreateApplicationRequest is the body of POST /api/applications.
type CreateApplicationRequest struct {
	JobDescriptionID   uuid.UUID         `json:"job_description_id"`
	CustomizedResumeID *uuid.UUID        `json:"customized_resume_id,omitempty"`
	Answers            map[string]string `json:"answers,omitempty"`
}

// handleCreateApplication records an application against an analyzed
// job description.
func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeErrorMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}

	jd, ok := s.loadOwnedJob(w, r, userID, req.JobDescriptionID)
	if !ok {
		return
	}

	app, err := s.db.CreateApplication(r.Context(), userID, jd.ID, req.CustomizedResumeID, jd.CompanyName, jd.Role, req.Answers)
	if err != nil {
		s.logger.Error("create application failed", zap.Error(err))
		writeErrorMsg(w, http.StatusInternalServerError, "failed to create application")
		return
	}

	writeJSON(w, http.StatusCreated, app)
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeErrorMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	apps, err := s.db.ListApplications(r.Context(), userID)
	if err != nil {
		s.logger.Error("list applications failed", zap.Error(err))
		writeErrorMsg(w, http.StatusInternalServerError, "failed to list applications")
		return
	}
	if apps == nil {
		apps = []db.Application{}
	}
	writeJSON(w, http.StatusOK, apps)
}

// UpdateStatusRequest is the body of PUT /api/applications/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

var validStatuses = map[string]bool{
	db.StatusApplied:     true,
	db.StatusUnderReview: true,
	db.StatusInterview:   true,
	db.StatusRejected:    true,
	db.StatusAccepted:    true,
}

func (s *Server) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeErrorMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid application id")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validStatuses[req.Status] {
		writeError(w, &ErrValidation{Field: "status", Message: "unknown status: " + req.Status})
		return
	}

	if err := s.db.UpdateApplicationStatus(r.Context(), id, userID, req.Status, req.Notes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, &ErrNotFound{Resource: "application", ID: id})
			return
		}
		s.logger.Error("update application status failed", zap.Error(err))
		writeErrorMsg(w, http.StatusInternalServerError, "failed to update application")
		return
	}

	app, err := s.db.GetApplication(r.Context(), id)
	if err != nil || app == nil {
		writeErrorMsg(w, http.StatusInternalServerError, "failed to load application")
		return
	}
	writeJSON(w, http.StatusOK, app)
}
