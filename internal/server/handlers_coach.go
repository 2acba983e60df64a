package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arnav/career-copilot/internal/db"
	"github.com/arnav/career-copilot/internal/server/middleware"
	"github.com/arnav/career-copilot/internal/types"
)

// SkillGapsRequest is the body of POST /api/coach/skill-gaps.
type SkillGapsRequest struct {
	ResumeID uuid.UUID `json:"resume_id"`
}

// handleSkillGaps compares the resume's skills against every job
// description the user has analyzed and stores the recommendation.
func (s *Server) handleSkillGaps(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeErrorMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req SkillGapsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resume, ok := s.loadOwnedResume(w, r, userID, req.ResumeID)
	if !ok {
		return
	}

	jdRecords, err := s.db.ListJobDescriptions(r.Context(), userID)
	if err != nil {
		s.logger.Error("list job descriptions failed", zap.Error(err))
		writeErrorMsg(w, http.StatusInternalServerError, "failed to load job descriptions")
		return
	}
	if len(jdRecords) == 0 {
		writeError(w, &ErrValidation{Field: "job_descriptions", Message: "analyze at least one job description first"})
		return
	}

	// List results omit heavy fields; load each record in full.
	jds := make([]*types.JobAnalysis, 0, len(jdRecords))
	for _, rec := range jdRecords {
		full, err := s.db.GetJobDescription(r.Context(), rec.ID)
		if err != nil || full == nil {
			continue
		}
		jds = append(jds, full.Analysis())
	}

	report := s.coach.AnalyzeSkillGaps(r.Context(), resume.ParsedData.Skills, jds)

	stored, err := s.db.SaveSkillRecommendation(r.Context(), userID, report, len(jds))
	if err != nil {
		s.logger.Error("save skill recommendation failed", zap.Error(err))
		writeErrorMsg(w, http.StatusInternalServerError, "failed to save recommendation")
		return
	}

	writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleLatestSkillGaps(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeErrorMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rec, err := s.db.LatestSkillRecommendation(r.Context(), userID)
	if err != nil {
		s.logger.Error("get latest recommendation failed", zap.Error(err))
		writeErrorMsg(w, http.StatusInternalServerError, "failed to load recommendation")
		return
	}
	if rec == nil {
		writeErrorMsg(w, http.StatusNotFound, "no skill recommendation yet")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// InterviewQuestionsRequest is the body of POST /api/coach/interview-questions.
type InterviewQuestionsRequest struct {
	ResumeID         uuid.UUID `json:"resume_id"`
	JobDescriptionID uuid.UUID `json:"job_description_id"`
	Count            int       `json:"count,omitempty"`
}

func (s *Server) handleInterviewQuestions(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeErrorMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req InterviewQuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Count <= 0 {
		req.Count = 10
	}

	resume, ok := s.loadOwnedResume(w, r, userID, req.ResumeID)
	if !ok {
		return
	}
	jd, ok := s.loadOwnedJob(w, r, userID, req.JobDescriptionID)
	if !ok {
		return
	}

	questions := s.coach.GenerateInterviewQuestions(r.Context(), resume.ParsedData, jd.Analysis(), req.Count)
	writeJSON(w, http.StatusOK, map[string][]string{"questions": questions})
}

// EvaluateAnswerRequest is the body of POST /api/coach/evaluate-answer.
type EvaluateAnswerRequest struct {
	Question         string    `json:"question"`
	Answer           string    `json:"answer"`
	JobDescriptionID uuid.UUID `json:"job_description_id"`
}

func (s *Server) handleEvaluateAnswer(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeErrorMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req EvaluateAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" || req.Answer == "" {
		writeError(w, &ErrValidation{Field: "question", Message: "question and answer are required"})
		return
	}

	jd, ok := s.loadOwnedJob(w, r, userID, req.JobDescriptionID)
	if !ok {
		return
	}

	evaluation := s.coach.EvaluateAnswer(r.Context(), req.Question, req.Answer, jd.Analysis())
	writeJSON(w, http.StatusOK, evaluation)
}

// ApplicationAnswerRequest is the body of POST /api/coach/application-answer.
type ApplicationAnswerRequest struct {
	Question         string    `json:"question"`
	ResumeID         uuid.UUID `json:"resume_id"`
	JobDescriptionID uuid.UUID `json:"job_description_id"`
	WordLimit        int       `json:"word_limit,omitempty"`
}

func (s *Server) handleApplicationAnswer(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeErrorMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ApplicationAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		writeError(w, &ErrValidation{Field: "question", Message: "question is required"})
		return
	}
	if req.WordLimit <= 0 {
		req.WordLimit = 150
	}

	resume, ok := s.loadOwnedResume(w, r, userID, req.ResumeID)
	if !ok {
		return
	}
	jd, ok := s.loadOwnedJob(w, r, userID, req.JobDescriptionID)
	if !ok {
		return
	}

	answer := s.coach.GenerateApplicationAnswer(r.Context(), req.Question, resume.ParsedData, jd.Analysis(), req.WordLimit)
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// loadOwnedResume fetches a parsed resume and checks ownership.
func (s *Server) loadOwnedResume(w http.ResponseWriter, r *http.Request, userID, id uuid.UUID) (*db.Resume, bool) {
	if id == uuid.Nil {
		writeError(w, &ErrValidation{Field: "resume_id", Message: "resume_id is required"})
		return nil, false
	}
	resume, err := s.db.GetResume(r.Context(), id)
	if err != nil {
		s.logger.Error("get resume failed", zap.Error(err))
		writeErrorMsg(w, http.StatusInternalServerError, "failed to load resume")
		return nil, false
	}
	if resume == nil || resume.ParsedData == nil {
		writeError(w, &ErrNotFound{Resource: "resume", ID: id})
		return nil, false
	}
	if resume.UserID != userID {
		writeError(w, &ErrForbidden{Resource: "resume"})
		return nil, false
	}
	return resume, true
}

// loadOwnedJob fetches a job description and checks ownership.
func (s *Server) loadOwnedJob(w http.ResponseWriter, r *http.Request, userID, id uuid.UUID) (*db.JobDescription, bool) {
	if id == uuid.Nil {
		writeError(w, &ErrValidation{Field: "job_description_id", Message: "job_description_id is required"})
		return nil, false
	}
	jd, err := s.db.GetJobDescription(r.Context(), id)
	if err != nil {
		s.logger.Error("get job description failed", zap.Error(err))
		writeErrorMsg(w, http.StatusInternalServerError, "failed to load job description")
		return nil, false
	}
	if jd == nil {
		writeError(w, &ErrNotFound{Resource: "job description", ID: id})
		return nil, false
	}
	if jd.UserID != userID {
		writeError(w, &ErrForbidden{Resource: "job description"})
		return nil, false
	}
	return jd, true
}
