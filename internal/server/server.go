package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/arnav/career-copilot/internal/analysis"
	"github.com/arnav/career-copilot/internal/coach"
	"github.com/arnav/career-copilot/internal/config"
	"github.com/arnav/career-copilot/internal/customize"
	"github.com/arnav/career-copilot/internal/db"
	"github.com/arnav/career-copilot/internal/llm"
	"github.com/arnav/career-copilot/internal/parsing"
	"github.com/arnav/career-copilot/internal/render"
	"github.com/arnav/career-copilot/internal/server/middleware"
)

// Server hosts the REST API.
type Server struct {
	httpServer *http.Server
	db         *db.DB
	logger     *zap.Logger

	parser   *parsing.Parser
	analyzer *analysis.Analyzer
	engine   *customize.Engine
	coach    *coach.Coach
	renderer *render.Renderer

	jwtService     *JWTService
	passwordConfig *config.PasswordConfig
	authHandler    *AuthHandler

	uploadDir  string
	useBrowser bool
}

// Config holds server configuration.
type Config struct {
	Addr        string
	DatabaseURL string
	OutputDir   string
	UploadDir   string
	LLM         llm.Config
	UseBrowser  bool
}

// New wires the server and its dependencies.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}

	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = "generated_resumes"
	}
	renderer, err := render.NewRenderer(outputDir)
	if err != nil {
		database.Close()
		return nil, err
	}

	uploadDir := cfg.UploadDir
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	gateway := llm.New(ctx, cfg.LLM, logger)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}

	s := &Server{
		db:             database,
		logger:         logger,
		parser:         parsing.DefaultParser(),
		analyzer:       analysis.DefaultAnalyzer(),
		engine:         customize.NewEngine(gateway),
		coach:          coach.New(gateway),
		renderer:       renderer,
		jwtService:     NewJWTService(jwtConfig),
		passwordConfig: passwordConfig,
		uploadDir:      uploadDir,
		useBrowser:     cfg.UseBrowser,
	}
	s.authHandler = NewAuthHandler(s)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router. Endpoints below /api require a bearer token.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	api := http.NewServeMux()
	api.HandleFunc("GET /api/me", s.handleMe)
	api.HandleFunc("PUT /api/me/profile", s.handleUpdateProfile)

	api.HandleFunc("POST /api/resumes", s.handleUploadResume)
	api.HandleFunc("GET /api/resumes", s.handleListResumes)
	api.HandleFunc("GET /api/resumes/{id}", s.handleGetResume)
	api.HandleFunc("DELETE /api/resumes/{id}", s.handleDeleteResume)
	api.HandleFunc("GET /api/resumes/{id}/customizations", s.handleListCustomizations)

	api.HandleFunc("POST /api/jobs/analyze", s.handleAnalyzeJob)
	api.HandleFunc("GET /api/jobs", s.handleListJobs)
	api.HandleFunc("GET /api/jobs/{id}", s.handleGetJob)

	api.HandleFunc("POST /api/customize", s.handleCustomize)
	api.HandleFunc("GET /api/customize/{id}", s.handleGetCustomization)
	api.HandleFunc("GET /api/customize/{id}/download", s.handleDownload)

	api.HandleFunc("POST /api/coach/skill-gaps", s.handleSkillGaps)
	api.HandleFunc("GET /api/coach/skill-gaps/latest", s.handleLatestSkillGaps)
	api.HandleFunc("POST /api/coach/interview-questions", s.handleInterviewQuestions)
	api.HandleFunc("POST /api/coach/evaluate-answer", s.handleEvaluateAnswer)
	api.HandleFunc("POST /api/coach/application-answer", s.handleApplicationAnswer)

	api.HandleFunc("POST /api/applications", s.handleCreateApplication)
	api.HandleFunc("GET /api/applications", s.handleListApplications)
	api.HandleFunc("PUT /api/applications/{id}/status", s.handleUpdateApplicationStatus)

	authed := middleware.Auth(s.jwtService)(api)
	mux.Handle("/api/", authed)

	return s.withLogging(s.withCORS(mux))
}

// Start listens for requests until interrupted, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.db.Close()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	s.logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.db.Close()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}