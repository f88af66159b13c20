package store

import (
	"sort"
	"strings"

	"github.com/rcliao/convo-memory/internal/model"
)

// SortBy selects the ordering of List results.
type SortBy string

const (
	SortImportance SortBy = "importance"
	SortRecency    SortBy = "recency"
	SortAccess     SortBy = "access"
)

// ListParams holds parameters for listing memories.
type ListParams struct {
	Speaker string
	Type    model.Type
	SortBy  SortBy
	Limit   int // 0 means no limit
}

// List returns a filtered, sorted copy of the collection. It does not touch
// access bookkeeping.
func (s *Store) List(p ListParams) []model.Memory {
	s.mu.Lock()
	var out []model.Memory
	for _, m := range s.memories {
		if p.Speaker != "" && m.Speaker != p.Speaker {
			continue
		}
		if p.Type != "" && m.Type != p.Type {
			continue
		}
		out = append(out, m)
	}
	s.mu.Unlock()

	switch p.SortBy {
	case SortRecency:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Timestamp.After(out[j].Timestamp)
		})
	case SortAccess:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].AccessCount != out[j].AccessCount {
				return out[i].AccessCount > out[j].AccessCount
			}
			return out[i].LastAccessed.After(out[j].LastAccessed)
		})
	default:
		sortByImportance(out)
	}

	if p.Limit > 0 && len(out) > p.Limit {
		out = out[:p.Limit]
	}
	return out
}

// SearchParams holds parameters for searching memories.
type SearchParams struct {
	Query string
	Type  model.Type
	Limit int
}

// Search finds memories whose content or speaker contains the query,
// case-insensitively, in rank order.
func (s *Store) Search(p SearchParams) []model.Memory {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}
	q := strings.ToLower(strings.TrimSpace(p.Query))

	s.mu.Lock()
	defer s.mu.Unlock()

	var results []model.Memory
	for _, m := range s.memories {
		if p.Type != "" && m.Type != p.Type {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(m.Content), q) &&
			!strings.Contains(strings.ToLower(m.Speaker), q) {
			continue
		}
		results = append(results, m)
		if len(results) == limit {
			break
		}
	}
	return results
}
