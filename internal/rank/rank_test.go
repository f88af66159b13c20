package rank

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/convo-memory/internal/model"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func mem(id, content string, importance int, age time.Duration) model.Memory {
	return model.Memory{
		ID:         id,
		Type:       model.TypePersonal,
		Speaker:    "User",
		Content:    content,
		Importance: importance,
		Timestamp:  now.Add(-age),
	}
}

func TestJaccard(t *testing.T) {
	set := func(ws ...string) map[string]struct{} {
		m := map[string]struct{}{}
		for _, w := range ws {
			m[w] = struct{}{}
		}
		return m
	}
	assert.Equal(t, 0.0, Jaccard(set(), set()))
	assert.Equal(t, 0.0, Jaccard(set("live"), set()))
	assert.Equal(t, 1.0, Jaccard(set("live", "prague"), set("prague", "live")))
	assert.InDelta(t, 0.25, Jaccard(set("live", "prague"), set("prague", "trip", "plans")), 1e-9)
}

func TestRelevance_PhraseMatch(t *testing.T) {
	r := New()
	// Query sentence "favourite band is Muse" (22 chars) appears verbatim.
	got := r.Relevance("My favourite band is Muse", "Tell me. favourite band is Muse!")
	assert.Equal(t, DefaultPhraseMatchScore, got)

	// Short sentences never count as phrases.
	got = r.Relevance("Prague", "Prague")
	assert.Equal(t, 1.0, got)

	r.PhraseMatchScore = 0.3
	got = r.Relevance("My favourite band is Muse", "favourite band is Muse")
	// jaccard {favourite, band, muse} vs same = 1.0 beats 0.3
	assert.Equal(t, 1.0, got)
}

func TestRecency(t *testing.T) {
	r := New()
	assert.Equal(t, 1.0, r.Recency(now, now))
	assert.Equal(t, 1.0, r.Recency(now.Add(time.Hour), now))
	assert.InDelta(t, 0.5, r.Recency(now.Add(-15*24*time.Hour), now), 1e-9)
	assert.Equal(t, 0.0, r.Recency(now.Add(-30*24*time.Hour), now))
	assert.Equal(t, 0.0, r.Recency(now.Add(-45*24*time.Hour), now))
}

func TestRank_ImportanceBreaksEvenOverlap(t *testing.T) {
	a := mem("a", "alpha beta gamma", 8, time.Hour)
	b := mem("b", "delta epsilon zeta", 3, time.Hour)

	got := New().Rank([]model.Memory{b, a}, "unrelated query words", DefaultOptions(), now)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.GreaterOrEqual(t, got[0].Score, got[1].Score)
	assert.Equal(t, 0.0, got[0].Relevance)
}

func TestRank_CompositeScore(t *testing.T) {
	m := mem("p", "I live in Prague", 6, 15*24*time.Hour)
	got := New().Rank([]model.Memory{m}, "Prague trip plans", DefaultOptions(), now)
	require.Len(t, got, 1)

	// 0.5*0.25 + 0.3*0.5 + 0.7*0.6
	assert.InDelta(t, 0.125+0.15+0.42, got[0].Score, 1e-9)
}

func TestRank_PragueInTopThree(t *testing.T) {
	memories := []model.Memory{mem("prague", "I live in Prague", 5, 2*time.Hour)}
	for i := 0; i < 9; i++ {
		memories = append(memories, mem(fmt.Sprintf("m%d", i), fmt.Sprintf("I enjoy cooking pasta number %d", i), 5, 2*time.Hour))
	}

	opts := DefaultOptions()
	opts.Limit = 3
	got := New().Rank(memories, "Prague trip plans", opts, now)
	require.Len(t, got, 3)
	assert.Equal(t, "prague", got[0].ID)
}

func TestRank_Filters(t *testing.T) {
	memories := []model.Memory{
		mem("low", "low importance memory", 2, time.Hour),
		mem("high", "high importance memory", 9, time.Hour),
	}
	aria := mem("aria", "aria feels happy", 6, time.Hour)
	aria.Speaker = "Aria"
	aria.Type = model.TypeFeelings
	memories = append(memories, aria)

	opts := DefaultOptions()
	opts.MinImportance = 5
	got := New().Rank(memories, "memory", opts, now)
	require.Len(t, got, 2)
	for _, s := range got {
		assert.NotEqual(t, "low", s.ID)
	}

	opts = DefaultOptions()
	opts.Speaker = "Aria"
	got = New().Rank(memories, "", opts, now)
	require.Len(t, got, 1)
	assert.Equal(t, "aria", got[0].ID)

	opts = DefaultOptions()
	opts.Type = model.TypePersonal
	got = New().Rank(memories, "", opts, now)
	assert.Len(t, got, 2)
}

func TestRank_LimitDefaultsAndReproducible(t *testing.T) {
	var memories []model.Memory
	for i := 0; i < 12; i++ {
		memories = append(memories, mem(fmt.Sprintf("m%02d", i), fmt.Sprintf("note about topic %02d", i), 1+i%10, time.Duration(i)*time.Hour))
	}
	var opts Options

	first := New().Rank(memories, "topic notes", opts, now)
	second := New().Rank(memories, "topic notes", opts, now)
	require.Len(t, first, DefaultLimit)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestRank_PartialOptionsKeepDefaultWeights(t *testing.T) {
	var memories []model.Memory
	for i := 0; i < 5; i++ {
		memories = append(memories, mem(fmt.Sprintf("n%d", i), fmt.Sprintf("unrelated note %d", i), 9, 0))
	}
	memories = append(memories, mem("prague", "I live in Prague", 1, 0))

	partial := New().Rank(memories, "Prague", Options{Limit: 3}, now)
	full := DefaultOptions()
	full.Limit = 3
	want := New().Rank(memories, "Prague", full, now)

	require.Len(t, partial, 3)
	require.Len(t, want, 3)
	for i := range want {
		assert.Equal(t, want[i].ID, partial[i].ID)
		assert.InDelta(t, want[i].Score, partial[i].Score, 1e-9)
	}
	assert.NotEqual(t, "prague", partial[0].ID)
}

func TestRank_ZeroWeightDropsTerm(t *testing.T) {
	memories := []model.Memory{
		mem("hi", "unrelated note", 9, 0),
		mem("prague", "I live in Prague", 1, 0),
	}
	opts := Options{RecencyWeight: Weight(0), ImportanceWeight: Weight(0)}
	got := New().Rank(memories, "Prague", opts, now)
	require.Len(t, got, 2)
	assert.Equal(t, "prague", got[0].ID)
	assert.InDelta(t, 0, got[1].Score, 1e-9)
}
