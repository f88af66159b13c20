// Package store provides the bounded, deduplicated memory collection and its
// blob persistence.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"

	"github.com/rcliao/convo-memory/internal/clock"
	"github.com/rcliao/convo-memory/internal/logging"
	"github.com/rcliao/convo-memory/internal/model"
)

const (
	DefaultCapacity = 100
	DefaultKey      = "default"

	// Contents longer than this count as duplicates when contained in another.
	substringDupMinLen = 10
)

// Store is an importance-ranked, capacity-bounded set of memories backed by
// a KV blob. Records are kept sorted by importance, then timestamp, both
// descending; the tail is evicted when capacity is exceeded.
type Store struct {
	mu       sync.Mutex
	kv       KV
	key      string
	capacity int
	clock    clock.Clock
	logger   logging.Logger
	entropy  *ulid.MonotonicEntropy
	memories []model.Memory
}

// Option configures a Store.
type Option func(*Store)

// WithKey sets the persistence key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithCapacity sets the maximum number of records retained.
func WithCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithClock sets the time source.
func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New returns an empty Store persisting through kv. Call Load to restore state.
func New(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		key:      DefaultKey,
		capacity: DefaultCapacity,
		clock:    clock.System{},
		logger:   logging.NoOp{},
		entropy:  ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the persistence key.
func (s *Store) Key() string { return s.key }

// Capacity returns the maximum number of records retained.
func (s *Store) Capacity() int { return s.capacity }

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.memories)
}

// newID returns a ULID stamped with the current clock time. Callers hold s.mu.
func (s *Store) newID() string {
	return ulid.MustNew(ulid.Timestamp(s.clock.Now()), s.entropy).String()
}

// isDuplicate reports exact equality, or containment of a content longer
// than substringDupMinLen characters in the other. A long shared fragment is enough to
// reject the newcomer, even when the two memories say different things.
func isDuplicate(a, b string) bool {
	if a == b {
		return true
	}
	if utf8.RuneCountInString(a) > substringDupMinLen && strings.Contains(b, a) {
		return true
	}
	return utf8.RuneCountInString(b) > substringDupMinLen && strings.Contains(a, b)
}

// Add inserts m unless its content is empty or duplicates a stored record.
// It fills in the ID and timestamp when missing, clamps importance, resets
// access bookkeeping, and evicts the lowest-ranked records beyond capacity.
// The returned record is the stored copy. Add reports false when the new
// record is itself the one evicted.
func (s *Store) Add(m model.Memory) (model.Memory, bool) {
	m.Content = strings.TrimSpace(m.Content)
	if m.Content == "" {
		return model.Memory{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.memories {
		if isDuplicate(existing.Content, m.Content) {
			s.logger.Debug("duplicate memory rejected", "content", m.Content, "existing_id", existing.ID)
			return model.Memory{}, false
		}
	}

	now := s.clock.Now()
	if m.Timestamp.IsZero() {
		m.Timestamp = now
	}
	if m.ID == "" {
		m.ID = s.newID()
	}
	if !model.ValidTypes[m.Type] {
		m.Type = model.TypeManual
	}
	m.Importance = model.ClampImportance(m.Importance)
	m.LastAccessed = now
	m.AccessCount = 0

	s.memories = append(s.memories, m)
	s.rerank()
	if s.indexOf(m.ID) < 0 {
		s.logger.Debug("memory below retention threshold", "id", m.ID, "importance", m.Importance)
		return model.Memory{}, false
	}
	return m, true
}

// rerank sorts by importance then timestamp, descending, and truncates to
// capacity. Callers hold s.mu.
func (s *Store) rerank() {
	sortByImportance(s.memories)
	if len(s.memories) > s.capacity {
		for _, evicted := range s.memories[s.capacity:] {
			s.logger.Debug("memory evicted", "id", evicted.ID, "importance", evicted.Importance)
		}
		s.memories = s.memories[:s.capacity]
	}
}

func sortByImportance(ms []model.Memory) {
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].Importance != ms[j].Importance {
			return ms[i].Importance > ms[j].Importance
		}
		return ms[i].Timestamp.After(ms[j].Timestamp)
	})
}

func (s *Store) indexOf(id string) int {
	for i, m := range s.memories {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (model.Memory, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.memories[i], true
	}
	return model.Memory{}, false
}

// Delete removes the record with the given id and reports whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.memories = append(s.memories[:i], s.memories[i+1:]...)
	return true
}

// UpdateImportance sets the importance of a record, clamped to [1,10].
func (s *Store) UpdateImportance(id string, value int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.memories[i].Importance = model.ClampImportance(value)
	s.rerank()
	return true
}

// Touch refreshes LastAccessed and increments AccessCount of the given records.
func (s *Store) Touch(ids []string) {
	if len(ids) == 0 {
		return
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	for i := range s.memories {
		if want[s.memories[i].ID] {
			s.memories[i].LastAccessed = now
			s.memories[i].AccessCount++
		}
	}
}

// All returns a copy of every record in rank order.
func (s *Store) All() []model.Memory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Memory(nil), s.memories...)
}

// Persist writes the whole collection to the KV.
func (s *Store) Persist(ctx context.Context) error {
	s.mu.Lock()
	blob, err := s.encode()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, blob); err != nil {
		return fmt.Errorf("persist %s: %w", s.key, err)
	}
	return nil
}

// Load replaces the collection with the persisted one. A missing or
// unreadable blob leaves the store empty; the error is returned only so the
// caller can log it.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memories = nil

	blob, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", s.key, err)
	}

	var memories []model.Memory
	if err := json.Unmarshal(blob, &memories); err != nil {
		return fmt.Errorf("decode %s: %w", s.key, err)
	}
	s.memories = s.normalize(memories)
	s.rerank()
	return nil
}

// Clear removes every record and persists the empty collection.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.memories = nil
	s.mu.Unlock()
	return s.Persist(ctx)
}

// normalize repairs decoded records: drops empty content, assigns missing
// ids and timestamps, and clamps importance.
func (s *Store) normalize(in []model.Memory) []model.Memory {
	now := s.clock.Now()
	out := make([]model.Memory, 0, len(in))
	for _, m := range in {
		m.Content = strings.TrimSpace(m.Content)
		if m.Content == "" {
			continue
		}
		if m.Timestamp.IsZero() {
			m.Timestamp = now
		}
		if m.ID == "" {
			m.ID = s.newID()
		}
		if !model.ValidTypes[m.Type] {
			m.Type = model.TypeManual
		}
		if m.LastAccessed.IsZero() {
			m.LastAccessed = m.Timestamp
		}
		if m.AccessCount < 0 {
			m.AccessCount = 0
		}
		m.Importance = model.ClampImportance(m.Importance)
		out = append(out, m)
	}
	return out
}

func (s *Store) encode() ([]byte, error) {
	memories := s.memories
	if memories == nil {
		memories = []model.Memory{}
	}
	return json.Marshal(memories)
}
