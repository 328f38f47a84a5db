package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/signdeck/internal/api/shared"
	"github.com/phrazzld/signdeck/internal/catalog"
	"github.com/phrazzld/signdeck/internal/domain/quiz"
	"github.com/phrazzld/signdeck/internal/platform/logger"
	"github.com/phrazzld/signdeck/internal/service/memory"
)

// QuizHandler serves quiz creation and answer checking.
type QuizHandler struct {
	engine  *memory.Service
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(engine *memory.Service, cat *catalog.Catalog, logger *slog.Logger) *QuizHandler {
	if engine == nil {
		panic("engine cannot be nil for QuizHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for QuizHandler")
	}
	return &QuizHandler{
		engine:  engine,
		catalog: cat,
		logger:  logger.With(slog.String("component", "quiz_handler")),
	}
}

// CreateQuiz handles POST /api/quizzes. Too few candidates answers 422
// with "not enough items".
func (h *QuizHandler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req QuizRequest
	if err := shared.DecodeJSON(r, &req); err != nil && !errors.Is(err, shared.ErrEmptyBody) {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	candidates := resolveCandidates(h.catalog, req.ItemIDs, log)
	q, err := engineFor(r, h.engine).StartQuiz(r.Context(), candidates)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("quiz created", slog.String("quiz_id", q.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, q)
}

// SubmitAnswer handles POST /api/quizzes/{quizID}/answers. A quiz started
// by another learner answers 404.
func (h *QuizHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	q, ok := engineFor(r, h.engine).Quiz(chi.URLParam(r, "quizID"))
	if !ok {
		HandleAPIError(w, r, ErrQuizNotFound, "")
		return
	}

	var req AnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	challenge, err := q.Challenge(req.Challenge)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var correct bool
	if challenge.Type == quiz.ChallengeMatching {
		correct, err = challenge.CheckPairs(req.Pairs)
	} else {
		correct, err = challenge.Check(req.Answer)
	}
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AnswerResponse{
		Correct:       correct,
		CorrectAnswer: challenge.CorrectAnswer(),
	})
}
