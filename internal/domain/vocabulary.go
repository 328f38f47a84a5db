package domain

// VocabularyItem is a catalog entry the learner can study. The scoring
// engine only looks at ItemID; the remaining fields are display metadata
// owned by the catalog.
type VocabularyItem struct {
	ItemID string            `json:"itemId"`
	Lesson string            `json:"lesson,omitempty"`
	Media  map[string]string `json:"media,omitempty"` // e.g. "video" -> asset reference
}

// ItemIDs returns the identifiers of items in order.
func ItemIDs(items []VocabularyItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ItemID
	}
	return ids
}

// UniqueItems returns items without repeated identifiers, keeping the
// first occurrence of each. The input is not modified.
func UniqueItems(items []VocabularyItem) []VocabularyItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]VocabularyItem, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item.ItemID]; dup {
			continue
		}
		seen[item.ItemID] = struct{}{}
		out = append(out, item)
	}
	return out
}
