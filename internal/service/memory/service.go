package memory

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/phrazzld/signdeck/internal/domain"
	"github.com/phrazzld/signdeck/internal/domain/quiz"
	"github.com/phrazzld/signdeck/internal/domain/session"
	"github.com/phrazzld/signdeck/internal/domain/srs"
	"github.com/phrazzld/signdeck/internal/events"
	"github.com/phrazzld/signdeck/internal/platform/logger"
	"github.com/phrazzld/signdeck/internal/redact"
	"github.com/phrazzld/signdeck/internal/store"
)

// Service tracks memory scores for one score key and builds practice
// sessions and quizzes from them. Services derived with ForLearner share
// locks, quiz registry and event emitter with their parent.
type Service struct {
	repo    *store.ScoreRepository
	srs     srs.Service
	emitter events.EventEmitter
	quizzes *quiz.Registry
	locks   *keyedMutex
	rng     *lockedRand
	now     func() time.Time
	baseKey string
	key     string
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithEmitter publishes score events to e after every successful write.
func WithEmitter(e events.EventEmitter) Option {
	return func(s *Service) { s.emitter = e }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRand sets the source used to shuffle quiz options.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) { s.rng = &lockedRand{r: r} }
}

// WithQuizRegistry replaces the default quiz registry.
func WithQuizRegistry(r *quiz.Registry) Option {
	return func(s *Service) { s.quizzes = r }
}

// WithScoreKey sets the base storage key. Learner-scoped services append
// ":<learnerID>" to it.
func WithScoreKey(key string) Option {
	return func(s *Service) { s.baseKey = key }
}

// NewService creates a Service. A nil repo, or a repo without a backend,
// makes every operation fall back to "no data available".
func NewService(repo *store.ScoreRepository, srsService srs.Service, log *slog.Logger, opts ...Option) *Service {
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	if repo == nil {
		repo = store.NewScoreRepository(nil, log)
	}

	s := &Service{
		repo:    repo,
		srs:     srsService,
		quizzes: quiz.NewRegistry(0),
		locks:   newKeyedMutex(),
		now:     time.Now,
		baseKey: store.DefaultScoreKey,
		logger:  log.With(slog.String("component", "memory_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = &lockedRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
	}
	s.key = store.ScoreKey(s.baseKey, "")
	return s
}

// ForLearner returns a Service bound to learnerID's score mapping. An empty
// learnerID returns the default mapping.
func (s *Service) ForLearner(learnerID string) *Service {
	scoped := *s
	scoped.key = store.ScoreKey(s.baseKey, learnerID)
	return &scoped
}

// ScoreKey returns the storage key this Service reads and writes.
func (s *Service) ScoreKey() string {
	return s.key
}

// InitializeItem records the first exposure of an item with a score of 0.
// Items that already have a record are left untouched.
func (s *Service) InitializeItem(ctx context.Context, itemID string) {
	log := s.log(ctx)

	id, err := domain.NormalizeItemID(itemID)
	if err != nil {
		log.Warn("ignoring exposure of invalid item", slog.String("item_id", itemID))
		return
	}
	s.initialize(ctx, []string{id})
}

// RateItem applies a rating to an item's memory record, creating it first
// if needed.
func (s *Service) RateItem(ctx context.Context, itemID string, rating domain.Rating) {
	log := s.log(ctx)

	id, err := domain.NormalizeItemID(itemID)
	if err != nil {
		log.Warn("ignoring rating of invalid item",
			slog.String("item_id", itemID),
			slog.String("rating", rating.String()))
		return
	}
	if !rating.IsValid() {
		log.Warn("ignoring invalid rating",
			slog.String("item_id", id),
			slog.Int("rating", int(rating)))
		return
	}

	unlock := s.locks.Lock(s.key)
	defer unlock()

	var updated domain.MemoryRecord
	err = s.repo.Update(ctx, s.key, func(scores domain.ScoreMap) (bool, error) {
		current := srs.EffectiveRecord(scores, id)
		next, err := s.srs.CalculateNext(&current, rating, s.now())
		if err != nil {
			return false, err
		}
		scores.Put(*next)
		updated = *next
		return true, nil
	})
	if err != nil {
		log.Error("failed to record rating",
			slog.String("item_id", id),
			slog.String("rating", rating.String()),
			slog.String("error", redact.Error(err)))
		return
	}

	log.Debug("recorded rating",
		slog.String("item_id", id),
		slog.String("rating", rating.String()),
		slog.Int("score", updated.Score))
	s.emit(ctx, events.NewItemRatedEvent(s.key, updated, rating))
}

// Record returns the effective memory record of an item: the stored one, or
// score 0 and lastSeen 0 when there is none or the store cannot be read.
func (s *Service) Record(ctx context.Context, itemID string) domain.MemoryRecord {
	id, err := domain.NormalizeItemID(itemID)
	if err != nil {
		return domain.MemoryRecord{ItemID: itemID}
	}
	return srs.EffectiveRecord(s.loadScores(ctx), id)
}

// SelectSession picks up to count candidates for practice, least-known and
// longest-unseen first. The store is only read when ranking is needed.
func (s *Service) SelectSession(ctx context.Context, candidates []domain.VocabularyItem, count int) []domain.VocabularyItem {
	if !session.NeedsRanking(len(candidates), count) {
		return session.Select(candidates, count, nil)
	}
	return session.Select(candidates, count, s.loadScores(ctx))
}

// GenerateQuiz builds a quiz from the first quiz.Size items of pool without
// consulting scores.
func (s *Service) GenerateQuiz(pool []domain.VocabularyItem) (*quiz.Quiz, error) {
	var q *quiz.Quiz
	var err error
	s.rng.with(func(r *rand.Rand) {
		q, err = quiz.Generate(pool, r)
	})
	return q, err
}

// StartQuiz selects quiz.Size candidates by memory score, builds a quiz
// from them and keeps it for answer checking. Repeated identifiers count
// once; fewer than quiz.Size distinct candidates yields
// domain.ErrNotEnoughItems.
func (s *Service) StartQuiz(ctx context.Context, candidates []domain.VocabularyItem) (*quiz.Quiz, error) {
	distinct := domain.UniqueItems(candidates)
	if len(distinct) < quiz.Size {
		s.log(ctx).Info("not enough items for a quiz",
			slog.Int("candidates", len(distinct)),
			slog.Int("required", quiz.Size))
		return nil, domain.ErrNotEnoughItems
	}

	q, err := s.GenerateQuiz(s.SelectSession(ctx, distinct, quiz.Size))
	if err != nil {
		return nil, err
	}
	s.quizzes.Put(s.key, q)
	return q, nil
}

// Quiz returns a quiz this Service's learner created with StartQuiz, if
// still held. Quizzes of other learners are not visible.
func (s *Service) Quiz(id string) (*quiz.Quiz, bool) {
	return s.quizzes.Get(s.key, id)
}

// CompleteLesson records exposure of every item the lesson teaches and
// returns their identifiers.
func (s *Service) CompleteLesson(ctx context.Context, content domain.LessonContent) ([]string, error) {
	ids, err := domain.ExtractItemIDs(content)
	if err != nil {
		s.log(ctx).Warn("cannot extract items from lesson", slog.String("error", err.Error()))
		return nil, err
	}
	if len(ids) > 0 {
		s.initialize(ctx, ids)
	}
	return ids, nil
}

// initialize creates records for the ids that have none, in a single
// read-modify-write.
func (s *Service) initialize(ctx context.Context, ids []string) {
	log := s.log(ctx)

	unlock := s.locks.Lock(s.key)
	defer unlock()

	var created []domain.MemoryRecord
	err := s.repo.Update(ctx, s.key, func(scores domain.ScoreMap) (bool, error) {
		created = created[:0]
		now := s.now()
		for _, id := range ids {
			if _, exists := scores.Get(id); exists {
				continue
			}
			rec, err := s.srs.NewRecord(id, now)
			if err != nil {
				return false, err
			}
			scores.Put(*rec)
			created = append(created, *rec)
		}
		return len(created) > 0, nil
	})
	if err != nil {
		log.Error("failed to record exposure",
			slog.Any("item_ids", ids),
			slog.String("error", redact.Error(err)))
		return
	}

	for _, rec := range created {
		log.Debug("initialized item", slog.String("item_id", rec.ItemID))
		s.emit(ctx, events.NewItemInitializedEvent(s.key, rec))
	}
}

func (s *Service) loadScores(ctx context.Context) domain.ScoreMap {
	scores, err := s.repo.Load(ctx, s.key)
	if err != nil {
		s.log(ctx).Error("failed to load memory scores, using defaults",
			slog.String("score_key", s.key),
			slog.String("error", redact.Error(err)))
		return domain.ScoreMap{}
	}
	return scores
}

func (s *Service) emit(ctx context.Context, ev *events.ScoreEvent) {
	if s.emitter == nil {
		return
	}
	if err := s.emitter.EmitEvent(ctx, ev); err != nil {
		s.log(ctx).Warn("failed to emit score event",
			slog.String("event_type", ev.Type),
			slog.String("item_id", ev.ItemID),
			slog.String("error", redact.Error(err)))
	}
}

func (s *Service) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// lockedRand serializes access to a *rand.Rand, which is not safe for
// concurrent use.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) with(fn func(r *rand.Rand)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.r)
}
