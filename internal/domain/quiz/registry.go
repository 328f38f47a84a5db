package quiz

import "sync"

// Registry keeps recently generated quizzes so answers can be checked
// against them later. Each quiz is held for the owner that created it. It
// holds at most capacity quizzes and evicts the oldest first.
type Registry struct {
	mu       sync.Mutex
	capacity int
	quizzes  map[string]heldQuiz
	order    []string
}

type heldQuiz struct {
	owner string
	quiz  *Quiz
}

// NewRegistry creates a Registry. A non-positive capacity defaults to 128.
func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		capacity = 128
	}
	return &Registry{
		capacity: capacity,
		quizzes:  make(map[string]heldQuiz, capacity),
	}
}

// Put stores q on behalf of owner, evicting the oldest quiz when full.
func (r *Registry) Put(owner string, q *Quiz) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.quizzes[q.ID]; exists {
		r.quizzes[q.ID] = heldQuiz{owner: owner, quiz: q}
		return
	}
	if len(r.order) >= r.capacity {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.quizzes, oldest)
	}
	r.quizzes[q.ID] = heldQuiz{owner: owner, quiz: q}
	r.order = append(r.order, q.ID)
}

// Get returns the quiz with id if it is still held and belongs to owner.
// A quiz held for another owner is reported as absent.
func (r *Registry) Get(owner, id string) (*Quiz, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	held, ok := r.quizzes[id]
	if !ok || held.owner != owner {
		return nil, false
	}
	return held.quiz, true
}

// Len returns the number of quizzes held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.quizzes)
}
