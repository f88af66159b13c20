// Package rank scores memories against a query context: lexical overlap,
// linear recency decay and importance, combined into one composite score.
package rank

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rcliao/convo-memory/internal/model"
	"github.com/rcliao/convo-memory/internal/textutil"
)

const (
	DefaultLimit            = 5
	DefaultRecencyWeight    = 0.3
	DefaultImportanceWeight = 0.7
	DefaultRelevanceWeight  = 0.5
	DefaultPhraseMatchScore = 0.8
	DefaultRecencyWindow    = 30 * 24 * time.Hour

	// Tokens must be longer than this to count toward overlap.
	minTokenLength = 3
	// Context sentences must be longer than this to count as a phrase match.
	minPhraseLength = 10
)

// Options filters and weights a retrieval. Unset fields take their
// defaults: Limit when <= 0, the weights when nil. Use Weight(0) to drop a
// term from the score.
type Options struct {
	Limit            int
	MinImportance    int
	Speaker          string
	Type             model.Type
	RecencyWeight    *float64
	ImportanceWeight *float64
}

// Weight returns a pointer to w for use in Options.
func Weight(w float64) *float64 { return &w }

// DefaultOptions returns the standard retrieval options.
func DefaultOptions() Options {
	return Options{
		Limit:            DefaultLimit,
		RecencyWeight:    Weight(DefaultRecencyWeight),
		ImportanceWeight: Weight(DefaultImportanceWeight),
	}
}

func (o Options) limit() int {
	if o.Limit <= 0 {
		return DefaultLimit
	}
	return o.Limit
}

func (o Options) recencyWeight() float64 {
	if o.RecencyWeight == nil {
		return DefaultRecencyWeight
	}
	return *o.RecencyWeight
}

func (o Options) importanceWeight() float64 {
	if o.ImportanceWeight == nil {
		return DefaultImportanceWeight
	}
	return *o.ImportanceWeight
}

// Scored is a memory with its composite score and components.
type Scored struct {
	model.Memory
	Score     float64 `json:"score"`
	Relevance float64 `json:"relevance"`
	Recency   float64 `json:"recency"`
}

// Ranker computes composite relevance scores.
type Ranker struct {
	RelevanceWeight  float64
	PhraseMatchScore float64
	RecencyWindow    time.Duration
}

// New returns a Ranker with the default constants.
func New() *Ranker {
	return &Ranker{
		RelevanceWeight:  DefaultRelevanceWeight,
		PhraseMatchScore: DefaultPhraseMatchScore,
		RecencyWindow:    DefaultRecencyWindow,
	}
}

// Rank scores every memory passing the filters in opts against query and
// returns the top opts.Limit, highest score first.
func (r *Ranker) Rank(memories []model.Memory, query string, opts Options, now time.Time) []Scored {
	limit := opts.limit()
	recencyWeight, importanceWeight := opts.recencyWeight(), opts.importanceWeight()

	q := newQuery(query)
	var scored []Scored
	for _, m := range memories {
		if m.Importance < opts.MinImportance {
			continue
		}
		if opts.Speaker != "" && m.Speaker != opts.Speaker {
			continue
		}
		if opts.Type != "" && m.Type != opts.Type {
			continue
		}

		rel := r.relevance(m.Content, q)
		rec := r.Recency(m.Timestamp, now)
		score := r.RelevanceWeight*rel +
			recencyWeight*rec +
			importanceWeight*float64(m.Importance)/float64(model.MaxImportance)

		scored = append(scored, Scored{Memory: m, Score: score, Relevance: rel, Recency: rec})
	}

	// Stable: equal scores keep store rank order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

type query struct {
	tokens  map[string]struct{}
	phrases []string
}

func newQuery(text string) query {
	q := query{tokens: textutil.TokenSet(text, minTokenLength)}
	for _, s := range textutil.Sentences(text) {
		if p := textutil.TrimTerminal(s); len(p) > minPhraseLength {
			q.phrases = append(q.phrases, p)
		}
	}
	return q
}

// Relevance is the larger of the token Jaccard similarity between content
// and query and the phrase-match score when a query sentence appears in content.
func (r *Ranker) Relevance(content, queryText string) float64 {
	return r.relevance(content, newQuery(queryText))
}

func (r *Ranker) relevance(content string, q query) float64 {
	score := Jaccard(textutil.TokenSet(content, minTokenLength), q.tokens)
	for _, p := range q.phrases {
		if strings.Contains(content, p) {
			score = math.Max(score, r.PhraseMatchScore)
			break
		}
	}
	return score
}

// Recency decays linearly from 1 at creation to 0 at RecencyWindow.
func (r *Ranker) Recency(created, now time.Time) float64 {
	age := now.Sub(created)
	if age <= 0 {
		return 1
	}
	return math.Max(0, 1-float64(age)/float64(r.RecencyWindow))
}

// Jaccard returns |a ∩ b| / |a ∪ b|, or 0 when both are empty.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
