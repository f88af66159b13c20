package store

import (
	"sort"

	"github.com/rcliao/convo-memory/internal/model"
)

// Stats holds collection statistics.
type Stats struct {
	Key               string         `json:"key"`
	Capacity          int            `json:"capacity"`
	TotalMemories     int            `json:"total_memories"`
	ExtractedMemories int            `json:"extracted_memories"`
	AvgImportance     float64        `json:"avg_importance"`
	Types             []TypeStats    `json:"types"`
	Speakers          []SpeakerStats `json:"speakers"`
}

// TypeStats holds per-type counts.
type TypeStats struct {
	Type  model.Type `json:"type"`
	Count int        `json:"count"`
}

// SpeakerStats holds per-speaker counts.
type SpeakerStats struct {
	Speaker string `json:"speaker"`
	Count   int    `json:"count"`
}

// Stats returns collection statistics.
func (s *Store) Stats() *Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &Stats{Key: s.key, Capacity: s.capacity, TotalMemories: len(s.memories)}
	types := map[model.Type]int{}
	speakers := map[string]int{}
	total := 0
	for _, m := range s.memories {
		if m.Extracted {
			st.ExtractedMemories++
		}
		total += m.Importance
		types[m.Type]++
		if m.Speaker != "" {
			speakers[m.Speaker]++
		}
	}
	if len(s.memories) > 0 {
		st.AvgImportance = float64(total) / float64(len(s.memories))
	}

	for t, n := range types {
		st.Types = append(st.Types, TypeStats{Type: t, Count: n})
	}
	sort.Slice(st.Types, func(i, j int) bool {
		if st.Types[i].Count != st.Types[j].Count {
			return st.Types[i].Count > st.Types[j].Count
		}
		return st.Types[i].Type < st.Types[j].Type
	})

	for sp, n := range speakers {
		st.Speakers = append(st.Speakers, SpeakerStats{Speaker: sp, Count: n})
	}
	sort.Slice(st.Speakers, func(i, j int) bool {
		if st.Speakers[i].Count != st.Speakers[j].Count {
			return st.Speakers[i].Count > st.Speakers[j].Count
		}
		return st.Speakers[i].Speaker < st.Speakers[j].Speaker
	})

	return st
}
