package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/arnav/career-copilot/internal/db"
	"github.com/arnav/career-copilot/internal/server/middleware"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	server    *Server
	validator *validator.Validate
}

// NewAuthHandler creates an AuthHandler bound to the server.
func NewAuthHandler(s *Server) *AuthHandler {
	return &AuthHandler{server: s, validator: validator.New()}
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by both auth endpoints.
type AuthResponse struct {
	User  *db.User `json:"user"`
	Token string   `json:"token"`
}

// Register creates an account and returns a token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	hash, err := h.server.passwordConfig.HashPassword(req.Password)
	if err != nil {
		writeErrorMsg(w, http.StatusInternalServerError, "failed to process password")
		return
	}

	user, err := h.server.db.CreateUser(r.Context(), req.Email, hash, req.Name)
	if err != nil {
		if err == db.ErrEmailTaken {
			writeError(w, &ErrEmailAlreadyExists{Email: req.Email})
			return
		}
		h.server.logger.Error("create user failed", zap.Error(err))
		writeErrorMsg(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	token, err := h.server.jwtService.GenerateToken(user.ID)
	if err != nil {
		writeErrorMsg(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{User: user, Token: token})
}

// Login authenticates a user and returns a token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	user, err := h.server.db.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		h.server.logger.Error("login lookup failed", zap.Error(err))
		writeErrorMsg(w, http.StatusInternalServerError, "login failed")
		return
	}
	if user == nil || !h.server.passwordConfig.VerifyPassword(req.Password, user.PasswordHash) {
		writeError(w, &ErrInvalidCredentials{})
		return
	}

	token, err := h.server.jwtService.GenerateToken(user.ID)
	if err != nil {
		writeErrorMsg(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{User: user, Token: token})
}

// handleMe returns the authenticated user's record.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeErrorMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil {
		s.logger.Error("get user failed", zap.Error(err))
		writeErrorMsg(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	if user == nil {
		writeError(w, &ErrNotFound{Resource: "user", ID: userID})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateProfileRequest is the body of PUT /api/me/profile.
type UpdateProfileRequest struct {
	College        string `json:"college" validate:"max=300"`
	EducationLevel string `json:"education_level" validate:"max=100"`
	TargetRole     string `json:"target_role" validate:"max=200"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeErrorMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.db.UpdateUserProfile(r.Context(), userID, req.College, req.EducationLevel, req.TargetRole); err != nil {
		s.logger.Error("update profile failed", zap.Error(err))
		writeErrorMsg(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil || user == nil {
		writeErrorMsg(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// validationMessage flattens validator errors into a readable message.
func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return "invalid request"
	}
	var parts []string
	for _, fe := range verrs {
		parts = append(parts, strings.ToLower(fe.Field())+" failed "+fe.Tag()+" validation")
	}
	return strings.Join(parts, "; ")
}
