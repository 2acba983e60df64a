package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/arnav/career-copilot/internal/db"
	"github.com/arnav/career-copilot/internal/extraction"
	"github.com/arnav/career-copilot/internal/schemas"
	"github.com/arnav/career-copilot/internal/server/middleware"
)

// maxUploadSize bounds resume uploads.
const maxUploadSize = 10 << 20 // 10 MiB

// isSupportedUpload reports whether the extraction layer can handle a
// resume file with the given lowercase extension.
func isSupportedUpload(ext string) bool {
	switch ext {
	case ".pdf", ".docx", ".doc":
		return true
	}
	return false
}

// handleUploadResume accepts a multipart resume file, extracts and
// parses it, and stores the structured result.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeErrorMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer func() { _ = file.Close() }()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !isSupportedUpload(ext) {
		writeErrorMsg(w, http.StatusUnsupportedMediaType, fmt.Sprintf("unsupported file format: %s", ext))
		return
	}

	dest := filepath.Join(s.uploadDir, uuid.NewString()+ext)
	out, err := os.Create(dest)
	if err != nil {
		s.logger.Error("create upload file failed", zap.Error(err))
		writeErrorMsg(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	if _, err := io.Copy(out, file); err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		writeErrorMsg(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	_ = out.Close()

	parsed, err := s.parser.ParseFile(dest)
	if err != nil {
		_ = os.Remove(dest)
		var unsupported *extraction.UnsupportedFormatError
		if errors.As(err, &unsupported) {
			writeErrorMsg(w, http.StatusUnsupportedMediaType, err.Error())
			return
		}
		writeErrorMsg(w, http.StatusUnprocessableEntity, fmt.Sprintf("failed to parse resume: %v", err))
		return
	}

	if err := validateArtifact(schemas.StructuredResume, parsed); err != nil {
		_ = os.Remove(dest)
		s.logger.Error("parsed resume failed schema validation", zap.Error(err))
		writeErrorMsg(w, http.StatusUnprocessableEntity, fmt.Sprintf("parsed resume failed validation: %v", err))
		return
	}

	category := r.FormValue("category")
	if category == "" {
		category = "General"
	}

	resume, err := s.db.SaveResume(r.Context(), userID, header.Filename, dest, category, parsed)
	if err != nil {
		s.logger.Error("save resume failed", zap.Error(err))
		writeErrorMsg(w, http.StatusInternalServerError, "failed to save resume")
		return
	}

	writeJSON(w, http.StatusCreated, resume)
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeErrorMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	resumes, err := s.db.ListResumes(r.Context(), userID)
	if err != nil {
		s.logger.Error("list resumes failed", zap.Error(err))
		writeErrorMsg(w, http.StatusInternalServerError, "failed to list resumes")
		return
	}
	if resumes == nil {
		resumes = []db.Resume{}
	}
	writeJSON(w, http.StatusOK, resumes)
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeErrorMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid resume id")
		return
	}

	resume, err := s.db.GetResume(r.Context(), id)
	if err != nil {
		s.logger.Error("get resume failed", zap.Error(err))
		writeErrorMsg(w, http.StatusInternalServerError, "failed to load resume")
		return
	}
	if resume == nil {
		writeError(w, &ErrNotFound{Resource: "resume", ID: id})
		return
	}
	if resume.UserID != userID {
		writeError(w, &ErrForbidden{Resource: "resume"})
		return
	}
	writeJSON(w, http.StatusOK, resume)
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeErrorMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid resume id")
		return
	}

	if err := s.db.DeleteResume(r.Context(), id, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, &ErrNotFound{Resource: "resume", ID: id})
			return
		}
		s.logger.Error("delete resume failed", zap.Error(err))
		writeErrorMsg(w, http.StatusInternalServerError, "failed to delete resume")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
