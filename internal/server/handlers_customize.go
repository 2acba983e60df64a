package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arnav/career-copilot/internal/db"
	"github.com/arnav/career-copilot/internal/render"
	"github.com/arnav/career-copilot/internal/schemas"
	"github.com/arnav/career-copilot/internal/server/middleware"
)

// CustomizeRequest is the body of POST /api/customize.
type CustomizeRequest struct {
	ResumeID         uuid.UUID `json:"resume_id"`
	JobDescriptionID uuid.UUID `json:"job_description_id"`
	Format           string    `json:"format,omitempty"` // pdf (default) or docx
}

// handleCustomize tailors a stored resume toward a stored job
// description, renders the result, and persists both.
func (s *Server) handleCustomize(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeErrorMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CustomizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	format := render.Format(req.Format)
	if req.Format == "" {
		format = render.FormatPDF
	}

	resume, ok := s.loadOwnedResume(w, r, userID, req.ResumeID)
	if !ok {
		return
	}
	jd, ok := s.loadOwnedJob(w, r, userID, req.JobDescriptionID)
	if !ok {
		return
	}

	result := s.engine.Customize(r.Context(), resume.ParsedData, jd.Analysis())

	if err := validateArtifact(schemas.CustomizationResult, result); err != nil {
		s.logger.Error("customization failed schema validation", zap.Error(err))
		writeErrorMsg(w, http.StatusUnprocessableEntity, "customization failed validation")
		return
	}

	stem := fmt.Sprintf("resume_%s_%d", req.ResumeID, time.Now().Unix())
	filePath, err := s.renderer.Render(&result.CustomizedData, format, stem)
	if err != nil {
		var unsupported *render.UnsupportedFormatError
		if errors.As(err, &unsupported) {
			writeErrorMsg(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("render failed", zap.Error(err))
		writeErrorMsg(w, http.StatusInternalServerError, "failed to render resume")
		return
	}

	stored, err := s.db.SaveCustomizedResume(r.Context(), req.ResumeID, req.JobDescriptionID, result, filePath)
	if err != nil {
		s.logger.Error("save customized resume failed", zap.Error(err))
		writeErrorMsg(w, http.StatusInternalServerError, "failed to save customization")
		return
	}

	writeJSON(w, http.StatusCreated, stored)
}

// handleListCustomizations lists the customizations generated from one
// resume, most recent first.
func (s *Server) handleListCustomizations(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeErrorMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	resumeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid resume id")
		return
	}
	if _, ok := s.loadOwnedResume(w, r, userID, resumeID); !ok {
		return
	}

	customizations, err := s.db.ListCustomizedResumes(r.Context(), resumeID)
	if err != nil {
		s.logger.Error("list customized resumes failed", zap.Error(err))
		writeErrorMsg(w, http.StatusInternalServerError, "failed to list customizations")
		return
	}
	if customizations == nil {
		customizations = []db.CustomizedResume{}
	}
	writeJSON(w, http.StatusOK, customizations)
}

func (s *Server) handleGetCustomization(w http.ResponseWriter, r *http.Request) {
	cr, ok := s.loadOwnedCustomization(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, cr)
}

// handleDownload streams the rendered document for a customization.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	cr, ok := s.loadOwnedCustomization(w, r)
	if !ok {
		return
	}
	if cr.GeneratedFilePath == "" {
		writeErrorMsg(w, http.StatusNotFound, "no generated file for this customization")
		return
	}
	if _, err := os.Stat(cr.GeneratedFilePath); err != nil {
		writeErrorMsg(w, http.StatusNotFound, "generated file is missing")
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(cr.GeneratedFilePath)))
	http.ServeFile(w, r, cr.GeneratedFilePath)
}

// loadOwnedCustomization fetches the customization in the path and
// verifies the caller owns the underlying resume.
func (s *Server) loadOwnedCustomization(w http.ResponseWriter, r *http.Request) (*db.CustomizedResume, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeErrorMsg(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid customization id")
		return nil, false
	}

	cr, err := s.db.GetCustomizedResume(r.Context(), id)
	if err != nil {
		s.logger.Error("get customized resume failed", zap.Error(err))
		writeErrorMsg(w, http.StatusInternalServerError, "failed to load customization")
		return nil, false
	}
	if cr == nil {
		writeError(w, &ErrNotFound{Resource: "customization", ID: id})
		return nil, false
	}

	resume, err := s.db.GetResume(r.Context(), cr.OriginalResumeID)
	if err != nil || resume == nil {
		writeErrorMsg(w, http.StatusInternalServerError, "failed to verify ownership")
		return nil, false
	}
	if resume.UserID != userID {
		writeError(w, &ErrForbidden{Resource: "customization"})
		return nil, false
	}
	return cr, true
}
