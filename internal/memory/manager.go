// Package memory is the conversational memory manager: it feeds messages
// through the extractor, periodically summarizes the recent window, and
// exposes retrieval and CRUD over the bounded store.
//
// Every Manager method is total. Persistence failures are logged and
// absorbed; the in-memory store stays authoritative for the session.
package memory

import (
	"context"

	"github.com/rcliao/convo-memory/internal/clock"
	"github.com/rcliao/convo-memory/internal/extract"
	"github.com/rcliao/convo-memory/internal/logging"
	"github.com/rcliao/convo-memory/internal/model"
	"github.com/rcliao/convo-memory/internal/rank"
	"github.com/rcliao/convo-memory/internal/store"
	"github.com/rcliao/convo-memory/internal/summarize"
)

// DefaultSummaryInterval is the number of messages per summary window.
const DefaultSummaryInterval = 20

// Manager orchestrates extraction, summarization, storage and retrieval for
// one conversation. Callers serialize ProcessMessage calls in message order.
type Manager struct {
	store      *store.Store
	extractor  *extract.Extractor
	summarizer *summarize.Summarizer
	ranker     *rank.Ranker
	clock      clock.Clock
	logger     logging.Logger

	summaryInterval  int
	lastSummaryIndex int
}

// Option configures a Manager.
type Option func(*Manager)

// WithSummaryInterval sets how many new messages trigger a summary.
func WithSummaryInterval(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.summaryInterval = n
		}
	}
}

// WithClock sets the time source for the default extractor and summarizer.
func WithClock(c clock.Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithExtractor replaces the default extractor.
func WithExtractor(e *extract.Extractor) Option {
	return func(m *Manager) { m.extractor = e }
}

// WithRanker replaces the default ranker.
func WithRanker(r *rank.Ranker) Option {
	return func(m *Manager) { m.ranker = r }
}

// New returns a Manager over s, restoring s from its persisted state.
func New(ctx context.Context, s *store.Store, opts ...Option) *Manager {
	m := &Manager{
		store:           s,
		clock:           clock.System{},
		logger:          logging.NoOp{},
		summaryInterval: DefaultSummaryInterval,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.extractor == nil {
		m.extractor = extract.New(extract.WithClock(m.clock))
	}
	if m.summarizer == nil {
		m.summarizer = summarize.New(m.clock)
	}
	if m.ranker == nil {
		m.ranker = rank.New()
	}

	if err := s.Load(ctx); err != nil {
		m.logger.Warn("load failed, starting empty", "key", s.Key(), "error", err)
	}
	return m
}

func (m *Manager) persist(ctx context.Context, op string) {
	if err := m.store.Persist(ctx); err != nil {
		m.logger.Warn("persist failed", "op", op, "key", m.store.Key(), "error", err)
	}
}

// ProcessMessage extracts memories from msg and stores them. recent is the
// conversation so far, msg included; when at least SummaryInterval messages
// have arrived since the last summary, the latest window is summarized too.
// Only the extracted records still held by the store are returned.
func (m *Manager) ProcessMessage(ctx context.Context, msg model.Message, recent []model.Message) []model.Memory {
	var added []model.Memory
	for _, candidate := range m.extractor.Extract(msg, msg.Speaker) {
		if stored, ok := m.store.Add(candidate); ok {
			added = append(added, stored)
		}
	}

	n := len(recent)
	if n >= m.summaryInterval && n-m.lastSummaryIndex >= m.summaryInterval {
		if summary, ok := m.summarizer.Summarize(recent[n-m.summaryInterval:]); ok {
			if stored, ok := m.store.Add(summary); ok {
				m.logger.Debug("summary stored", "id", stored.ID, "window", m.summaryInterval)
			}
		}
		m.lastSummaryIndex = n
	}

	m.persist(ctx, "process_message")
	m.logger.Debug("message processed", "speaker", msg.Speaker, "extracted", len(added))
	return added
}

// IngestTranscript feeds messages in order, growing the recent window one
// message at a time, and returns every extracted record accepted.
func (m *Manager) IngestTranscript(ctx context.Context, messages []model.Message) []model.Memory {
	var added []model.Memory
	for i, msg := range messages {
		added = append(added, m.ProcessMessage(ctx, msg, messages[:i+1])...)
	}
	return added
}

// Retrieve returns the memories most relevant to query. Returned records
// have their access bookkeeping refreshed and the store is persisted.
func (m *Manager) Retrieve(ctx context.Context, query string, opts rank.Options) []rank.Scored {
	ranked := m.ranker.Rank(m.store.All(), query, opts, m.clock.Now())
	if len(ranked) == 0 {
		return ranked
	}

	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.ID
	}
	m.store.Touch(ids)
	for i := range ranked {
		if fresh, ok := m.store.Get(ranked[i].ID); ok {
			ranked[i].Memory = fresh
		}
	}

	m.persist(ctx, "retrieve")
	return ranked
}

// CreateMemory stores a caller-authored memory. An empty type becomes
// manual; importance is clamped. It returns false for empty or duplicate
// content, and when the store is full of higher-ranked records.
func (m *Manager) CreateMemory(ctx context.Context, content, speaker string, t model.Type, importance int) (model.Memory, bool) {
	if t == "" {
		t = model.TypeManual
	}
	stored, ok := m.store.Add(model.Memory{
		Type:       t,
		Content:    content,
		Speaker:    speaker,
		Timestamp:  m.clock.Now(),
		Importance: importance,
	})
	if !ok {
		return model.Memory{}, false
	}
	m.persist(ctx, "create")
	return stored, true
}

// DeleteMemory removes a memory by id.
func (m *Manager) DeleteMemory(ctx context.Context, id string) bool {
	if !m.store.Delete(id) {
		return false
	}
	m.persist(ctx, "delete")
	return true
}

// UpdateImportance sets a memory's importance, clamped to [1,10].
func (m *Manager) UpdateImportance(ctx context.Context, id string, value int) bool {
	if !m.store.UpdateImportance(id, value) {
		return false
	}
	m.persist(ctx, "update_importance")
	return true
}

// Get returns a memory by id without touching access bookkeeping.
func (m *Manager) Get(id string) (model.Memory, bool) {
	return m.store.Get(id)
}

// ListAll lists memories without touching access bookkeeping.
func (m *Manager) ListAll(p store.ListParams) []model.Memory {
	return m.store.List(p)
}

// Search finds memories by substring.
func (m *Manager) Search(p store.SearchParams) []model.Memory {
	return m.store.Search(p)
}

// Stats summarizes the collection.
func (m *Manager) Stats() *store.Stats {
	return m.store.Stats()
}

// ClearAll removes every memory and persists the empty state.
func (m *Manager) ClearAll(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn("persist failed", "op", "clear", "key", m.store.Key(), "error", err)
	}
}

// ExportAll serializes every memory.
func (m *Manager) ExportAll() []byte {
	return m.store.ExportAll()
}

// ImportAll replaces the collection with blob, which must be a JSON array
// of memories. It returns false and changes nothing otherwise.
func (m *Manager) ImportAll(ctx context.Context, blob []byte) bool {
	if !m.store.ImportAll(blob) {
		m.logger.Warn("import rejected: not an array of memories")
		return false
	}
	m.persist(ctx, "import")
	return true
}
