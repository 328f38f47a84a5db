package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/signdeck/internal/api/shared"
	"github.com/phrazzld/signdeck/internal/catalog"
	"github.com/phrazzld/signdeck/internal/domain"
	"github.com/phrazzld/signdeck/internal/platform/logger"
	"github.com/phrazzld/signdeck/internal/service/memory"
)

const maxLessonBytes = 1 << 20

// MemoryHandler serves item exposure, rating, lesson and session requests.
type MemoryHandler struct {
	engine       *memory.Service
	catalog      *catalog.Catalog
	defaultCount int
	logger       *slog.Logger
}

// NewMemoryHandler creates a new MemoryHandler. A nil catalog behaves as an
// empty one.
func NewMemoryHandler(
	engine *memory.Service,
	cat *catalog.Catalog,
	defaultCount int,
	logger *slog.Logger,
) *MemoryHandler {
	if engine == nil {
		panic("engine cannot be nil for MemoryHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for MemoryHandler")
	}
	return &MemoryHandler{
		engine:       engine,
		catalog:      cat,
		defaultCount: defaultCount,
		logger:       logger.With(slog.String("component", "memory_handler")),
	}
}

// engineFor returns the engine scoped to the authenticated learner, if any.
func engineFor(r *http.Request, engine *memory.Service) *memory.Service {
	if learnerID, ok := shared.GetLearnerID(r.Context()); ok {
		return engine.ForLearner(learnerID)
	}
	return engine
}

// resolveCandidates resolves requested item IDs against the catalog. Omitted IDs
// select the whole catalog; unknown IDs become bare items.
func resolveCandidates(cat *catalog.Catalog, itemIDs []string, log *slog.Logger) []domain.VocabularyItem {
	if itemIDs == nil {
		return cat.Items()
	}
	items, missing := cat.Resolve(itemIDs)
	if len(missing) > 0 {
		log.Debug("requested items not in catalog", slog.Int("missing", len(missing)))
	}
	return items
}

// RecordExposure handles POST /api/items/{itemID}/exposure.
// It always answers 204; invalid items are logged and ignored.
func (h *MemoryHandler) RecordExposure(w http.ResponseWriter, r *http.Request) {
	engineFor(r, h.engine).InitializeItem(r.Context(), chi.URLParam(r, "itemID"))
	w.WriteHeader(http.StatusNoContent)
}

// RateItem handles POST /api/items/{itemID}/ratings.
func (h *MemoryHandler) RateItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RatingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("invalid rating request", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}
	if !req.Rating.IsValid() {
		HandleAPIError(w, r, domain.ErrInvalidRating, "")
		return
	}

	engineFor(r, h.engine).RateItem(r.Context(), chi.URLParam(r, "itemID"), req.Rating)
	w.WriteHeader(http.StatusNoContent)
}

// GetItem handles GET /api/items/{itemID}.
func (h *MemoryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := domain.NormalizeItemID(chi.URLParam(r, "itemID"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	rec := engineFor(r, h.engine).Record(r.Context(), itemID)
	shared.RespondWithJSON(w, r, http.StatusOK, ItemRecordResponse{
		ItemID:   itemID,
		Score:    rec.Score,
		LastSeen: rec.LastSeen,
	})
}

// CompleteLesson handles POST /api/lessons/complete.
func (h *MemoryHandler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxLessonBytes))
	if err != nil {
		HandleAPIError(w, r, shared.ErrInvalidBody, "")
		return
	}
	if len(body) == 0 {
		HandleAPIError(w, r, shared.ErrEmptyBody, "")
		return
	}

	content, err := domain.DecodeLessonContent(body)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	ids, err := engineFor(r, h.engine).CompleteLesson(r.Context(), content)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, LessonCompletedResponse{ItemIDs: ids})
}

// SelectSession handles POST /api/sessions.
func (h *MemoryHandler) SelectSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	count := h.defaultCount
	if req.Count != nil {
		count = *req.Count
	}

	candidates := resolveCandidates(h.catalog, req.ItemIDs, log)
	selected := engineFor(r, h.engine).SelectSession(r.Context(), candidates, count)
	if selected == nil {
		selected = []domain.VocabularyItem{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{Items: selected})
}
