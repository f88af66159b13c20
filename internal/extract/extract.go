// Package extract turns a single conversation message into candidate memories
// using a table of tagged text rules and an importance-vocabulary scan.
package extract

import (
	"regexp"
	"strings"

	"github.com/rcliao/convo-memory/internal/clock"
	"github.com/rcliao/convo-memory/internal/model"
	"github.com/rcliao/convo-memory/internal/textutil"
)

// DefaultVocabulary lists the terms that mark a sentence as worth remembering.
var DefaultVocabulary = []string{
	"remember",
	"important",
	"importantly",
	"critical",
	"secret",
	"urgent",
	"crucial",
	"essential",
	"vital",
	"promise",
	"never forget",
	"don't forget",
}

const (
	baseImportance     = 5
	importantTypeBonus = 2
	personalTypeBonus  = 1
	maxVocabularyBonus = 3
)

var shouting = regexp.MustCompile(`[A-Z]{2,}`)

// Extractor applies rules and the vocabulary scan to messages.
type Extractor struct {
	rules      []Rule
	vocabulary []*regexp.Regexp
	clock      clock.Clock
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRules replaces the rule table.
func WithRules(rules []Rule) Option {
	return func(e *Extractor) { e.rules = rules }
}

// WithVocabulary replaces the importance vocabulary.
func WithVocabulary(terms []string) Option {
	return func(e *Extractor) { e.vocabulary = compileVocabulary(terms) }
}

// WithClock sets the time source for record timestamps.
func WithClock(c clock.Clock) Option {
	return func(e *Extractor) { e.clock = c }
}

// New returns an Extractor using DefaultRules and DefaultVocabulary.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		rules:      DefaultRules,
		vocabulary: compileVocabulary(DefaultVocabulary),
		clock:      clock.System{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func compileVocabulary(terms []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(t)+`\b`))
	}
	return out
}

// Extract returns candidate memories found in msg, attributed to speakerName
// (or msg.Speaker when speakerName is empty). Candidates carry no ID; the
// store assigns one on insert.
func (e *Extractor) Extract(msg model.Message, speakerName string) []model.Memory {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}
	if speakerName == "" {
		speakerName = msg.Speaker
	}

	now := e.clock.Now()
	var out []model.Memory
	add := func(t model.Type, content string) {
		out = append(out, model.Memory{
			Type:       t,
			Content:    content,
			Speaker:    speakerName,
			Timestamp:  now,
			Importance: e.Score(t, content),
			Extracted:  true,
		})
	}

	for _, r := range e.rules {
		if span, ok := r.Recognize(text); ok {
			add(r.Category, strings.TrimSpace(span))
		}
	}

	for _, sentence := range textutil.Sentences(text) {
		if e.vocabularyHits(sentence) > 0 {
			add(model.TypeImportant, sentence)
		}
	}

	return out
}

// Score computes the importance of a candidate of type t with the given content.
func (e *Extractor) Score(t model.Type, content string) int {
	score := baseImportance
	switch t {
	case model.TypeImportant:
		score += importantTypeBonus
	case model.TypePersonal, model.TypeRelationships:
		score += personalTypeBonus
	}

	hits := e.vocabularyHits(content)
	if hits > maxVocabularyBonus {
		hits = maxVocabularyBonus
	}
	score += hits

	if shouting.MatchString(content) {
		score++
	}
	if strings.Contains(content, "!") {
		score++
	}
	return model.ClampImportance(score)
}

func (e *Extractor) vocabularyHits(s string) int {
	n := 0
	for _, re := range e.vocabulary {
		if re.MatchString(s) {
			n++
		}
	}
	return n
}
