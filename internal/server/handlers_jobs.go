package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arnav/career-copilot/internal/db"
	"github.com/arnav/career-copilot/internal/schemas"
	"github.com/arnav/career-copilot/internal/scrape"
	"github.com/arnav/career-copilot/internal/server/middleware"
)

// AnalyzeJobRequest is the body of POST /api/jobs/analyze. Exactly one
// of Text or URL must be set.
type AnalyzeJobRequest struct {
	Text        string `json:"text,omitempty"`
	URL         string `json:"url,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	Role        string `json:"role,omitempty"`
}

// handleAnalyzeJob analyzes a job description, fetching it first when a
// URL is given, and stores the result.
func (s *Server) handleAnalyzeJob(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeErrorMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req AnalyzeJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if (req.Text == "") == (req.URL == "") {
		writeError(w, &ErrValidation{Field: "text", Message: "exactly one of text or url is required"})
		return
	}

	text := req.Text
	role := req.Role
	if req.URL != "" {
		posting, err := scrape.URL(r.Context(), req.URL)
		if s.useBrowser && (err != nil || scrape.NeedsBrowser(posting)) {
			if rendered, berr := scrape.URLWithBrowser(r.Context(), req.URL); berr == nil {
				posting, err = rendered, nil
			}
		}
		if err != nil {
			writeErrorMsg(w, http.StatusBadGateway, err.Error())
			return
		}
		text = posting.Description
		if role == "" {
			role = posting.Title
		}
	}

	analysis := s.analyzer.Analyze(text)
	analysis.CompanyName = req.CompanyName
	analysis.Role = role

	if err := validateArtifact(schemas.JobAnalysis, analysis); err != nil {
		s.logger.Error("job analysis failed schema validation", zap.Error(err))
		writeErrorMsg(w, http.StatusUnprocessableEntity, "job analysis failed validation")
		return
	}

	jd, err := s.db.SaveJobDescription(r.Context(), userID, analysis)
	if err != nil {
		s.logger.Error("save job description failed", zap.Error(err))
		writeErrorMsg(w, http.StatusInternalServerError, "failed to save job description")
		return
	}

	writeJSON(w, http.StatusCreated, jd)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeErrorMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	jds, err := s.db.ListJobDescriptions(r.Context(), userID)
	if err != nil {
		s.logger.Error("list job descriptions failed", zap.Error(err))
		writeErrorMsg(w, http.StatusInternalServerError, "failed to list job descriptions")
		return
	}
	if jds == nil {
		jds = []db.JobDescription{}
	}
	writeJSON(w, http.StatusOK, jds)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeErrorMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid job description id")
		return
	}

	jd, err := s.db.GetJobDescription(r.Context(), id)
	if err != nil {
		s.logger.Error("get job description failed", zap.Error(err))
		writeErrorMsg(w, http.StatusInternalServerError, "failed to load job description")
		return
	}
	if jd == nil {
		writeError(w, &ErrNotFound{Resource: "job description", ID: id})
		return
	}
	if jd.UserID != userID {
		writeError(w, &ErrForbidden{Resource: "job description"})
		return
	}
	writeJSON(w, http.StatusOK, jd)
}
