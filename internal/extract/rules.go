package extract

import (
	"regexp"

	"github.com/rcliao/convo-memory/internal/model"
)

// Rule is a stateless recognizer tagged with the category it produces.
type Rule struct {
	Name     string
	Category model.Type
	pattern  *regexp.Regexp
}

// NewRule compiles expr into a rule. It panics on an invalid expression,
// like regexp.MustCompile, since rule tables are package-level data.
func NewRule(name string, category model.Type, expr string) Rule {
	return Rule{Name: name, Category: category, pattern: regexp.MustCompile(expr)}
}

// Recognize returns the first span of text matched by the rule.
func (r Rule) Recognize(text string) (string, bool) {
	loc := r.pattern.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	return text[loc[0]:loc[1]], true
}

// Capitalized place or proper-name run: "Prague", "New York".
const properName = `[A-Z][a-zA-Z'-]+(?: [A-Z][a-zA-Z'-]+)*`

// Up to the next clause boundary.
const clause = `[^.!?,;]+`

// DefaultRules is the built-in rule table, grouped by category.
var DefaultRules = []Rule{
	// personal
	NewRule("name", model.TypePersonal, `(?i:\bmy name is) `+properName),
	NewRule("call-me", model.TypePersonal, `(?i:\bcall me) `+properName),
	NewRule("age", model.TypePersonal, `(?i)\bI(?:'m| am) \d{1,3} years? old`),
	NewRule("lives-in", model.TypePersonal, `(?i:\bI live in) `+properName),
	NewRule("from", model.TypePersonal, `(?i:\bI(?:'m| am) from) `+properName),
	NewRule("works", model.TypePersonal, `(?i)\bI work (?:as|at|for|in) (?:an? |the )?\w+`),
	NewRule("job", model.TypePersonal, `(?i)\bmy (?:job|occupation|profession) is (?:an? )?\w+`),
	NewRule("birthday", model.TypePersonal, `(?i)\bmy birthday is (?:on )?\w+(?: \d{1,2})?`),

	// preferences
	NewRule("likes", model.TypePreferences, `(?i)\bI (?:really |absolutely )?(?:love|like|enjoy|adore|prefer) `+clause),
	NewRule("dislikes", model.TypePreferences, `(?i)\bI (?:really )?(?:hate|dislike|can't stand|cannot stand|don't like|do not like) `+clause),
	NewRule("favorite", model.TypePreferences, `(?i)\bmy favou?rite \w+ (?:is|are) `+clause),

	// relationships
	NewRule("family-member", model.TypeRelationships, `(?i)\bmy (?:wife|husband|partner|girlfriend|boyfriend|fiancée?|mother|mom|father|dad|sister|brother|son|daughter|best friend|friend|boss|grandmother|grandfather)(?:'s name)? is `+clause),
	NewRule("status", model.TypeRelationships, `(?i)\bI(?:'m| am) (?:married|engaged|divorced|single|dating|seeing someone)(?: to `+clause+`)?`),
	NewRule("has-family", model.TypeRelationships, `(?i)\bI have (?:a|an|one|two|three|four|five|\d+) (?:kids?|children|sons?|daughters?|brothers?|sisters?|siblings?|cats?|dogs?|pets?)`),

	// events
	NewRule("when", model.TypeEvents, `(?i)\b(?:yesterday|tomorrow|last (?:week|month|year|night|weekend)|next (?:week|month|year|weekend)),? `+clause),
	NewRule("did", model.TypeEvents, `(?i)\bI (?:went|visited|traveled|travelled|moved|started|finished|graduated|got married|got promoted|lost|won) `+clause),
	NewRule("we-did", model.TypeEvents, `(?i)\bwe (?:met|went|visited|celebrated|traveled|travelled) `+clause),

	// feelings
	NewRule("feels", model.TypeFeelings, `(?i)\bI(?:'m| am| feel| felt| was) (?:so |very |really |a bit |kind of )?(?:happy|sad|angry|excited|nervous|anxious|scared|afraid|lonely|tired|stressed|worried|upset|glad|proud|depressed|frustrated|overwhelmed)[^.!?,;]*`),

	// beliefs
	NewRule("believes", model.TypeBeliefs, `(?i)\bI (?:believe|think|am convinced|feel that) `+clause),
	NewRule("opinion", model.TypeBeliefs, `(?i)\bin my (?:opinion|view),? `+clause),
	NewRule("disbelief", model.TypeBeliefs, `(?i)\bI (?:don't|do not) (?:believe|think) `+clause),
}
