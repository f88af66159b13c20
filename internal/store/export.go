package store

import (
	"bytes"
	"encoding/json"

	"github.com/rcliao/convo-memory/internal/model"
)

// ExportAll serializes every record in the persistence schema.
func (s *Store) ExportAll() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	memories := s.memories
	if memories == nil {
		memories = []model.Memory{}
	}
	b, err := json.MarshalIndent(memories, "", "  ")
	if err != nil {
		return []byte("[]")
	}
	return b
}

// ImportAll replaces the collection with the records in blob. It returns
// false and leaves the store untouched unless blob decodes to a JSON array
// of records.
func (s *Store) ImportAll(blob []byte) bool {
	trimmed := bytes.TrimSpace(blob)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return false
	}
	var memories []model.Memory
	if err := json.Unmarshal(trimmed, &memories); err != nil {
		s.logger.Warn("import rejected", "error", err)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.memories = s.normalize(memories)
	s.rerank()
	return true
}
