package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/signdeck/internal/api/middleware"
	"github.com/phrazzld/signdeck/internal/catalog"
	"github.com/phrazzld/signdeck/internal/service/auth"
	"github.com/phrazzld/signdeck/internal/service/memory"
)

// RouterConfig holds the dependencies of the HTTP API.
type RouterConfig struct {
	Engine  *memory.Service
	Catalog *catalog.Catalog
	// JWTService enables bearer authentication on /api when set.
	JWTService          auth.JWTService
	DefaultSessionCount int
	Logger              *slog.Logger
}

// NewRouter builds the HTTP handler for the API.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	memoryHandler := NewMemoryHandler(cfg.Engine, cfg.Catalog, cfg.DefaultSessionCount, cfg.Logger)
	quizHandler := NewQuizHandler(cfg.Engine, cfg.Catalog, cfg.Logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.TraceMiddleware(cfg.Logger))

	r.Route("/api", func(r chi.Router) {
		if cfg.JWTService != nil {
			r.Use(middleware.NewAuthMiddleware(cfg.JWTService).Authenticate)
		}

		r.Get("/items/{itemID}", memoryHandler.GetItem)
		r.Post("/items/{itemID}/exposure", memoryHandler.RecordExposure)
		r.Post("/items/{itemID}/ratings", memoryHandler.RateItem)
		r.Post("/lessons/complete", memoryHandler.CompleteLesson)
		r.Post("/sessions", memoryHandler.SelectSession)

		r.Post("/quizzes", quizHandler.CreateQuiz)
		r.Post("/quizzes/{quizID}/answers", quizHandler.SubmitAnswer)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			cfg.Logger.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})

	return r
}
