package api

import (
	"github.com/phrazzld/signdeck/internal/domain"
)

// RatingRequest is the body of POST /api/items/{itemID}/ratings.
type RatingRequest struct {
	Rating domain.Rating `json:"rating"`
}

// ItemRecordResponse describes an item's effective memory record.
type ItemRecordResponse struct {
	ItemID   string `json:"item_id"`
	Score    int    `json:"score"`
	LastSeen int64  `json:"last_seen"`
}

// LessonCompletedResponse lists the items a completed lesson exposed.
type LessonCompletedResponse struct {
	ItemIDs []string `json:"item_ids"`
}

// SessionRequest is the body of POST /api/sessions. Omitted ItemIDs means
// the whole catalog; omitted Count means the configured default.
type SessionRequest struct {
	ItemIDs []string `json:"item_ids" validate:"omitempty,dive,required"`
	Count   *int     `json:"count"`
}

// SessionResponse is the ordered list of items chosen for practice.
type SessionResponse struct {
	Items []domain.VocabularyItem `json:"items"`
}

// QuizRequest is the body of POST /api/quizzes. Omitted ItemIDs means the
// whole catalog.
type QuizRequest struct {
	ItemIDs []string `json:"item_ids" validate:"omitempty,dive,required"`
}

// AnswerRequest is the body of POST /api/quizzes/{quizID}/answers. Answer
// applies to translation challenges and Pairs to matching challenges.
type AnswerRequest struct {
	Challenge int               `json:"challenge" validate:"gte=0"`
	Answer    string            `json:"answer,omitempty"`
	Pairs     map[string]string `json:"pairs,omitempty"`
}

// AnswerResponse reports whether an answer was right.
type AnswerResponse struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer,omitempty"`
}
