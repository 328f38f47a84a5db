package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// LessonType identifies the shape of a lesson's content.
type LessonType string

// Supported lesson types.
const (
	LessonTypeWord     LessonType = "word"
	LessonTypePhrase   LessonType = "phrase"
	LessonTypeAlphabet LessonType = "alphabet"
	LessonTypeSentence LessonType = "sentence"
	LessonTypeMatching LessonType = "matching"
)

// LessonContent is the payload of a completed lesson. Each lesson type has
// its own rule for which vocabulary items the learner was exposed to.
type LessonContent interface {
	Type() LessonType
	itemIDs() []string
}

// WordLesson teaches a single sign.
type WordLesson struct {
	Word string `json:"word"`
}

// PhraseLesson teaches a phrase as one unit. The component words are shown
// for reference but are not remembered separately.
type PhraseLesson struct {
	Phrase string   `json:"phrase"`
	Words  []string `json:"words,omitempty"`
}

// AlphabetLesson teaches fingerspelled letters.
type AlphabetLesson struct {
	Letters []string `json:"letters"`
}

// SentenceLesson signs a full sentence; only its key words are tracked.
type SentenceLesson struct {
	Sentence string   `json:"sentence"`
	KeyWords []string `json:"keyWords"`
}

// MatchingPair links a sign to its meaning in a matching lesson.
type MatchingPair struct {
	Sign    string `json:"sign"`
	Meaning string `json:"meaning"`
}

// MatchingLesson asks the learner to match signs to meanings.
type MatchingLesson struct {
	Pairs []MatchingPair `json:"pairs"`
}

func (WordLesson) Type() LessonType     { return LessonTypeWord }
func (PhraseLesson) Type() LessonType   { return LessonTypePhrase }
func (AlphabetLesson) Type() LessonType { return LessonTypeAlphabet }
func (SentenceLesson) Type() LessonType { return LessonTypeSentence }
func (MatchingLesson) Type() LessonType { return LessonTypeMatching }

func (l WordLesson) itemIDs() []string     { return []string{l.Word} }
func (l PhraseLesson) itemIDs() []string   { return []string{l.Phrase} }
func (l AlphabetLesson) itemIDs() []string { return l.Letters }
func (l SentenceLesson) itemIDs() []string { return l.KeyWords }

func (l MatchingLesson) itemIDs() []string {
	ids := make([]string, 0, len(l.Pairs))
	for _, p := range l.Pairs {
		ids = append(ids, p.Sign)
	}
	return ids
}

// ExtractItemIDs returns the canonical identifiers a lesson exposes, trimmed,
// without empties and without duplicates. Order of first appearance is kept.
func ExtractItemIDs(content LessonContent) ([]string, error) {
	if content == nil {
		return nil, ErrUnknownLessonType
	}

	raw := content.itemIDs()
	seen := make(map[string]struct{}, len(raw))
	ids := make([]string, 0, len(raw))
	for _, r := range raw {
		id := strings.TrimSpace(r)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// DecodeLessonContent decodes a JSON lesson payload of the form
// {"type": "...", ...fields}.
func DecodeLessonContent(data []byte) (LessonContent, error) {
	var envelope struct {
		Type LessonType `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: lesson content: %v", ErrValidation, err)
	}

	var content LessonContent
	var err error
	switch envelope.Type {
	case LessonTypeWord:
		var l WordLesson
		err = json.Unmarshal(data, &l)
		content = l
	case LessonTypePhrase:
		var l PhraseLesson
		err = json.Unmarshal(data, &l)
		content = l
	case LessonTypeAlphabet:
		var l AlphabetLesson
		err = json.Unmarshal(data, &l)
		content = l
	case LessonTypeSentence:
		var l SentenceLesson
		err = json.Unmarshal(data, &l)
		content = l
	case LessonTypeMatching:
		var l MatchingLesson
		err = json.Unmarshal(data, &l)
		content = l
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLessonType, envelope.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s lesson: %v", ErrValidation, envelope.Type, err)
	}

	return content, nil
}
