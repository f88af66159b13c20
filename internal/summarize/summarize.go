// Package summarize condenses a window of conversation into one coarse memory.
package summarize

import (
	"fmt"
	"math"
	"strings"

	"github.com/rcliao/convo-memory/internal/clock"
	"github.com/rcliao/convo-memory/internal/model"
	"github.com/rcliao/convo-memory/internal/textutil"
)

const (
	MinMessages       = 3
	TopicCount        = 5
	SummaryImportance = 4
	minTopicLength    = 3
)

// StopWords are excluded from topic detection.
var StopWords = map[string]bool{
	"about": true, "above": true, "after": true, "again": true, "also": true,
	"been": true, "before": true, "being": true, "could": true, "does": true,
	"doing": true, "down": true, "during": true, "each": true, "even": true,
	"from": true, "further": true, "have": true, "having": true, "here": true,
	"into": true, "just": true, "know": true, "like": true, "more": true,
	"most": true, "much": true, "only": true, "other": true, "over": true,
	"really": true, "same": true, "should": true, "some": true, "such": true,
	"than": true, "that": true, "their": true, "them": true, "then": true,
	"there": true, "these": true, "they": true, "think": true, "this": true,
	"those": true, "through": true, "very": true, "want": true, "were": true,
	"what": true, "when": true, "where": true, "which": true, "while": true,
	"with": true, "would": true, "your": true, "yours": true, "yeah": true,
	"will": true, "well": true, "okay": true, "because": true, "going": true,
}

// Summarizer builds summary memories.
type Summarizer struct {
	clock clock.Clock
}

// New returns a Summarizer stamping records with c (the system clock if nil).
func New(c clock.Clock) *Summarizer {
	if c == nil {
		c = clock.System{}
	}
	return &Summarizer{clock: c}
}

// Summarize returns a summary of messages, or false when the window holds
// fewer than MinMessages messages.
func (s *Summarizer) Summarize(messages []model.Message) (model.Memory, bool) {
	if len(messages) < MinMessages {
		return model.Memory{}, false
	}

	var speakers []string
	seen := map[string]bool{}
	texts := make([]string, 0, len(messages))
	for _, m := range messages {
		if m.Speaker != "" && !seen[m.Speaker] {
			seen[m.Speaker] = true
			speakers = append(speakers, m.Speaker)
		}
		texts = append(texts, m.Text)
	}

	top := textutil.TopWords(texts, TopicCount, func(w string) bool {
		return len([]rune(w)) <= minTopicLength || StopWords[w]
	})
	topics := make([]string, 0, len(top))
	for _, wc := range top {
		topics = append(topics, wc.Word)
	}

	elapsed := messages[len(messages)-1].Timestamp.Sub(messages[0].Timestamp)
	minutes := int(math.Round(elapsed.Minutes()))

	return model.Memory{
		Type:       model.TypeSummary,
		Content:    Describe(speakers, topics, minutes),
		Timestamp:  s.clock.Now(),
		Importance: SummaryImportance,
		Extracted:  true,
	}, true
}

// UnknownSpeakers stands in for the speaker list when no message names one.
const UnknownSpeakers = "unknown speakers"

// Describe renders the summary sentence.
func Describe(speakers, topics []string, minutes int) string {
	var b strings.Builder
	b.WriteString("Conversation between ")
	if len(speakers) == 0 {
		b.WriteString(UnknownSpeakers)
	} else {
		b.WriteString(strings.Join(speakers, ", "))
	}
	if len(topics) > 0 {
		b.WriteString(" about ")
		b.WriteString(strings.Join(topics, ", "))
	}
	b.WriteString(".")
	if minutes != 0 {
		unit := "minutes"
		if minutes == 1 || minutes == -1 {
			unit = "minute"
		}
		fmt.Fprintf(&b, " Lasted about %d %s.", minutes, unit)
	}
	return b.String()
}
