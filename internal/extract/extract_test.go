package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/convo-memory/internal/clock"
	"github.com/rcliao/convo-memory/internal/model"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestExtractor() *Extractor {
	return New(WithClock(clock.NewFixed(epoch)))
}

func msg(text string) model.Message {
	return model.Message{Speaker: "User", Text: text, Timestamp: epoch}
}

func TestExtract_NameAndCity(t *testing.T) {
	got := newTestExtractor().Extract(msg("My name is Elena and I live in Prague."), "User")
	require.Len(t, got, 2)

	assert.Equal(t, model.TypePersonal, got[0].Type)
	assert.Equal(t, "My name is Elena", got[0].Content)
	assert.Equal(t, model.TypePersonal, got[1].Type)
	assert.Equal(t, "I live in Prague", got[1].Content)

	for _, m := range got {
		assert.Equal(t, "User", m.Speaker)
		assert.True(t, m.Extracted)
		assert.Equal(t, epoch, m.Timestamp)
		assert.Empty(t, m.ID)
		// base 5 plus the personal bonus
		assert.Equal(t, 6, m.Importance)
	}
}

func TestExtract_NoMatch(t *testing.T) {
	e := newTestExtractor()
	for _, text := range []string{
		"",
		"   ",
		"ok",
		"The weather was fine and the train ran on time.",
		"What time is it?",
	} {
		assert.Empty(t, e.Extract(msg(text), "User"), "text %q", text)
	}
}

func TestExtract_SpeakerFallsBackToMessage(t *testing.T) {
	m := model.Message{Speaker: "Aria", Text: "I live in Lisbon"}
	got := newTestExtractor().Extract(m, "")
	require.Len(t, got, 1)
	assert.Equal(t, "Aria", got[0].Speaker)
}

func TestExtract_ImportantSentence(t *testing.T) {
	got := newTestExtractor().Extract(msg("Nice day. Please remember the meeting at noon. Bye"), "User")
	require.Len(t, got, 1)
	assert.Equal(t, model.TypeImportant, got[0].Type)
	assert.Equal(t, "Please remember the meeting at noon.", got[0].Content)
	// 5 + 2 (important) + 1 (remember)
	assert.Equal(t, 8, got[0].Importance)
}

func TestExtract_MultipleCategories(t *testing.T) {
	got := newTestExtractor().Extract(msg("I love hiking, my sister's name is Mia. I feel so anxious today"), "User")

	types := map[model.Type]string{}
	for _, m := range got {
		types[m.Type] = m.Content
	}
	assert.Equal(t, "I love hiking", types[model.TypePreferences])
	assert.Equal(t, "my sister's name is Mia", types[model.TypeRelationships])
	assert.Equal(t, "I feel so anxious today", types[model.TypeFeelings])
}

func TestScore_Clamped(t *testing.T) {
	e := newTestExtractor()
	// 5 + 2 + 3 (capped vocabulary) + 1 (caps) + 1 (!) = 12, clamped to 10
	got := e.Score(model.TypeImportant, "REMEMBER: this is urgent, critical and a secret!")
	assert.Equal(t, model.MaxImportance, got)

	assert.Equal(t, 5, e.Score(model.TypeEvents, "we went hiking"))
	assert.Equal(t, 6, e.Score(model.TypeRelationships, "my wife is Ana"))
	assert.Equal(t, 7, e.Score(model.TypePreferences, "I LOVE jazz!"))
}

func TestRules_EachRecognizes(t *testing.T) {
	cases := map[string]struct {
		text string
		want string
	}{
		"name":          {"Hi, my name is Jan Novak.", "my name is Jan Novak"},
		"call-me":       {"Just call me Max", "call me Max"},
		"age":           {"I'm 34 years old", "I'm 34 years old"},
		"lives-in":      {"I live in New York now", "I live in New York"},
		"from":          {"I am from Brno", "I am from Brno"},
		"works":         {"I work as a nurse", "I work as a nurse"},
		"job":           {"My job is plumber", "My job is plumber"},
		"birthday":      {"my birthday is on May 4", "my birthday is on May 4"},
		"likes":         {"I really like green tea, honestly", "I really like green tea"},
		"dislikes":      {"I hate mornings.", "I hate mornings"},
		"favorite":      {"My favourite band is Muse!", "My favourite band is Muse"},
		"family-member": {"My best friend is Tom", "My best friend is Tom"},
		"status":        {"I'm married to Eva.", "I'm married to Eva"},
		"has-family":    {"I have two cats", "I have two cats"},
		"when":          {"Yesterday I fixed the roof.", "Yesterday I fixed the roof"},
		"did":           {"I visited Rome in June.", "I visited Rome in June"},
		"we-did":        {"We met at university", "We met at university"},
		"feels":         {"I am really tired of it", "I am really tired of it"},
		"believes":      {"I believe in second chances.", "I believe in second chances"},
		"opinion":       {"In my opinion, cats rule.", "In my opinion, cats rule"},
		"disbelief":     {"I don't think so", "I don't think so"},
	}

	byName := map[string]Rule{}
	for _, r := range DefaultRules {
		byName[r.Name] = r
	}
	require.Len(t, byName, len(cases))

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, ok := byName[name]
			require.True(t, ok)
			got, ok := r.Recognize(tc.text)
			require.True(t, ok, "rule %s did not match %q", name, tc.text)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWithRules_CustomTable(t *testing.T) {
	e := New(WithRules([]Rule{NewRule("pet", model.TypePersonal, `(?i)\bmy dog \w+`)}), WithVocabulary(nil))
	got := e.Extract(msg("my dog Rex is important"), "User")
	require.Len(t, got, 1)
	assert.Equal(t, "my dog Rex", got[0].Content)
}

func TestRules_NameRulesRequireCapitalizedName(t *testing.T) {
	byName := map[string]Rule{}
	for _, r := range DefaultRules {
		byName[r.Name] = r
	}
	for name, text := range map[string]string{
		"name":     "my name is elena",
		"call-me":  "just call me max",
		"lives-in": "i live in prague",
		"from":     "i am from brno",
	} {
		_, ok := byName[name].Recognize(text)
		assert.False(t, ok, "rule %s matched lowercase name in %q", name, text)
	}

	got, ok := byName["lives-in"].Recognize("i live in Prague")
	require.True(t, ok)
	assert.Equal(t, "i live in Prague", got)
}
