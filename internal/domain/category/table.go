package category

import (
	"fmt"
	"strings"

	"github.com/yazarlar/articlekit/internal/domain"
)

// DefaultFallback is the label returned when no keyword matches.
const DefaultFallback = "Diğer"

// Entry is a category label with its trigger keywords, in declaration order.
type Entry struct {
	Label    string
	Keywords []string
}

// Table is the immutable keyword table. Entry order decides ties.
type Table struct {
	entries  []Entry
	fallback string
}

// NewTable validates entries and builds a Table. Keywords are passed through
// Fold so they match folded text; duplicate keywords within an entry are
// collapsed because each keyword counts at most once.
func NewTable(entries []Entry, fallback string) (Table, error) {
	if len(entries) == 0 {
		return Table{}, fmt.Errorf("%w: at least one category is required", domain.ErrInvalidCategoryTable)
	}
	if fallback == "" {
		fallback = DefaultFallback
	}

	seen := make(map[string]struct{}, len(entries))
	out := make([]Entry, 0, len(entries))
	for i, e := range entries {
		label := strings.TrimSpace(e.Label)
		if label == "" {
			return Table{}, fmt.Errorf("%w: entry %d has an empty label", domain.ErrInvalidCategoryTable, i)
		}
		if _, dup := seen[label]; dup {
			return Table{}, fmt.Errorf("%w: duplicate label %q", domain.ErrInvalidCategoryTable, label)
		}
		seen[label] = struct{}{}

		kwSeen := make(map[string]struct{}, len(e.Keywords))
		keywords := make([]string, 0, len(e.Keywords))
		for _, kw := range e.Keywords {
			kw = Fold(strings.TrimSpace(kw))
			if kw == "" {
				return Table{}, fmt.Errorf("%w: category %q has an empty keyword", domain.ErrInvalidCategoryTable, label)
			}
			if _, dup := kwSeen[kw]; dup {
				continue
			}
			kwSeen[kw] = struct{}{}
			keywords = append(keywords, kw)
		}
		if len(keywords) == 0 {
			return Table{}, fmt.Errorf("%w: category %q has no keywords", domain.ErrInvalidCategoryTable, label)
		}
		out = append(out, Entry{Label: label, Keywords: keywords})
	}

	return Table{entries: out, fallback: fallback}, nil
}

// DefaultTable returns the built-in table for Turkish literature categories.
func DefaultTable() Table {
	t, err := NewTable(DefaultEntries(), DefaultFallback)
	if err != nil {
		panic("category: invalid default table: " + err.Error())
	}
	return t
}

// DefaultEntries returns a fresh copy of the built-in entries.
func DefaultEntries() []Entry {
	return []Entry{
		{Label: "roman", Keywords: []string{"roman", "hikaye", "kurgu", "kahraman"}},
		{Label: "şiir", Keywords: []string{"şiir", "dize", "kafiye", "nazım"}},
		{Label: "bilim kurgu", Keywords: []string{"uzay", "gelecek", "teknoloji", "robot", "alien"}},
		{Label: "tarih", Keywords: []string{"tarih", "geçmiş", "savaş", "osmanlı", "cumhuriyet"}},
		{Label: "kişisel gelişim", Keywords: []string{"gelişim", "başarı", "motivasyon", "hedef"}},
	}
}

// Len returns the number of categories.
func (t *Table) Len() int { return len(t.entries) }

// Entry returns the i-th category in declaration order.
func (t *Table) Entry(i int) Entry {
	e := t.entries[i]
	return Entry{Label: e.Label, Keywords: append([]string(nil), e.Keywords...)}
}

// Fallback returns the label used when nothing matches.
func (t *Table) Fallback() string { return t.fallback }

// Scores counts distinct keyword hits per category in text already passed
// through Fold. Categories with zero hits are omitted.
func (t *Table) Scores(folded string) Scores {
	scores := make(Scores)
	for _, e := range t.entries {
		n := 0
		for _, kw := range e.Keywords {
			if strings.Contains(folded, kw) {
				n++
			}
		}
		if n > 0 {
			scores[e.Label] = n
		}
	}
	return scores
}

// Best returns the highest-scoring label, preferring the earliest declared
// category on ties, or the fallback label when scores is empty.
func (t *Table) Best(scores Scores) string {
	best, bestScore := t.fallback, 0
	for _, e := range t.entries {
		if s := scores[e.Label]; s > bestScore {
			best, bestScore = e.Label, s
		}
	}
	return best
}

// Scores maps a category label to its keyword hit count.
type Scores map[string]int
