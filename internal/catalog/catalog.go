// Package catalog loads the vocabulary items a learner can study from JSON,
// CSV or Excel files.
package catalog

import (
	"strings"

	"github.com/phrazzld/signdeck/internal/domain"
)

// Catalog is an ordered, duplicate-free set of vocabulary items.
// It is immutable once built and safe for concurrent use.
type Catalog struct {
	items []domain.VocabularyItem
	byID  map[string]int
}

// New builds a Catalog from items. Identifiers are trimmed, items with an
// empty identifier are skipped and the first occurrence of a duplicate wins.
func New(items []domain.VocabularyItem) *Catalog {
	c := &Catalog{
		items: make([]domain.VocabularyItem, 0, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	for _, item := range items {
		id, err := domain.NormalizeItemID(item.ItemID)
		if err != nil {
			continue
		}
		if _, dup := c.byID[id]; dup {
			continue
		}
		item.ItemID = id
		item.Lesson = strings.TrimSpace(item.Lesson)
		c.byID[id] = len(c.items)
		c.items = append(c.items, item)
	}
	return c
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Items returns a copy of the items in catalog order.
func (c *Catalog) Items() []domain.VocabularyItem {
	if c == nil {
		return nil
	}
	out := make([]domain.VocabularyItem, len(c.items))
	copy(out, c.items)
	return out
}

// Lookup returns the item with the given identifier.
func (c *Catalog) Lookup(itemID string) (domain.VocabularyItem, bool) {
	if c == nil {
		return domain.VocabularyItem{}, false
	}
	i, ok := c.byID[strings.TrimSpace(itemID)]
	if !ok {
		return domain.VocabularyItem{}, false
	}
	return c.items[i], true
}

// Resolve maps identifiers to items, keeping the requested order. Unknown
// identifiers still produce a bare item carrying only the identifier and
// are also reported in missing. Blank and repeated identifiers are dropped.
func (c *Catalog) Resolve(itemIDs []string) (items []domain.VocabularyItem, missing []string) {
	items = make([]domain.VocabularyItem, 0, len(itemIDs))
	seen := make(map[string]struct{}, len(itemIDs))
	for _, raw := range itemIDs {
		id, err := domain.NormalizeItemID(raw)
		if err != nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		item, ok := c.Lookup(id)
		if !ok {
			item = domain.VocabularyItem{ItemID: id}
			missing = append(missing, id)
		}
		items = append(items, item)
	}
	return items, missing
}
