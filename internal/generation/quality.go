package generation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ReasonNoContent is the rejection reason used when the candidate text is
// empty or whitespace-only. It is distinct from the too-short reason so that
// callers can tell "the generator produced nothing" apart from "the generator
// produced a stub".
const ReasonNoContent = "no content generated"

// DefaultMinBriefLength is the minimum trimmed length, in characters, a
// research brief must reach before it is considered complete. Tuned to the
// target brief word count; override via config for other content profiles.
const DefaultMinBriefLength = 1000

// Default detection lists. These are observed failure modes of the upstream
// agent framework: boilerplate it emits instead of a brief, and sentences
// describing the brief rather than containing it.
var (
	defaultPlaceholderPhrases = []string{
		"The detailed research brief provided above",
		"is ready, fully adapted",
		"align with the brand's tone",
	}

	defaultMetaDescriptionPhrases = []string{
		"The comprehensive research brief contains",
		"The above is a complete research brief",
		"contains competitive analysis, a detailed content outline",
		"research insights with citations, and SEO strategy",
		"tailored for the article",
		"The research brief includes",
	}

	defaultRequiredSections = []string{
		"## COMPETITIVE ANALYSIS",
		"## CONTENT OUTLINE",
		"## RESEARCH INSIGHTS",
		"## SEO STRATEGY",
	}
)

// Verdict is the structured result of classifying one candidate text.
// Reasons is ordered by rule application order and empty when Accepted.
type Verdict struct {
	Accepted bool     `json:"accepted"`
	Reasons  []string `json:"reasons,omitempty"`
}

// Rule inspects a candidate text and reports zero or more rejection reasons.
// Rules must be pure: no side effects, no I/O.
type Rule interface {
	// Name identifies the rule in logs and diagnostics.
	Name() string

	// Check returns one reason per violation found, or nil when satisfied.
	Check(content string) []string
}

// RuleSet is a versioned, injectable collection of quality rules. New
// degenerate-output patterns are added by extending the rule set, not by
// touching orchestration logic.
type RuleSet struct {
	Version string
	Rules   []Rule
}

// DefaultRuleSet returns the built-in rule set with the given minimum length.
// Passing minLength <= 0 uses DefaultMinBriefLength.
func DefaultRuleSet(minLength int) RuleSet {
	if minLength <= 0 {
		minLength = DefaultMinBriefLength
	}

	return RuleSet{
		Version: "builtin/1",
		Rules: []Rule{
			PhraseRule{
				RuleName: "placeholder",
				Label:    "placeholder phrase",
				Phrases:  defaultPlaceholderPhrases,
			},
			PhraseRule{
				RuleName: "meta_description",
				Label:    "meta-description phrase",
				Phrases:  defaultMetaDescriptionPhrases,
			},
			MinLengthRule{Min: minLength},
			RequiredSectionsRule{Sections: defaultRequiredSections},
		},
	}
}

// PhraseRule rejects content containing any of a fixed list of substrings.
// Matching is case-sensitive.
type PhraseRule struct {
	RuleName string
	Label    string
	Phrases  []string
}

// Name implements Rule.
func (r PhraseRule) Name() string { return r.RuleName }

// Check implements Rule.
func (r PhraseRule) Check(content string) []string {
	var reasons []string
	for _, phrase := range r.Phrases {
		if strings.Contains(content, phrase) {
			reasons = append(reasons, fmt.Sprintf("%s detected: %q", r.Label, phrase))
		}
	}
	return reasons
}

// MinLengthRule rejects content whose trimmed length is below Min characters.
type MinLengthRule struct {
	Min int
}

// Name implements Rule.
func (r MinLengthRule) Name() string { return "min_length" }

// Check implements Rule. Length is counted in characters, not bytes, so
// multibyte scripts are not over-counted.
func (r MinLengthRule) Check(content string) []string {
	if n := utf8.RuneCountInString(content); n < r.Min {
		return []string{fmt.Sprintf("content too short (%d < %d)", n, r.Min)}
	}
	return nil
}

// RequiredSectionsRule rejects content missing any of the listed section
// markers, matched as literal substrings. Each missing marker is reported
// individually.
type RequiredSectionsRule struct {
	Sections []string
}

// Name implements Rule.
func (r RequiredSectionsRule) Name() string { return "required_sections" }

// Check implements Rule.
func (r RequiredSectionsRule) Check(content string) []string {
	var reasons []string
	for _, section := range r.Sections {
		if !strings.Contains(content, section) {
			reasons = append(reasons, fmt.Sprintf("missing section %q", section))
		}
	}
	return reasons
}

// Classifier decides whether a candidate text qualifies as a genuine,
// complete research brief. Classify is a pure function; a Classifier is safe
// for concurrent use.
type Classifier struct {
	ruleSet RuleSet
}

// NewClassifier creates a Classifier over the given rule set.
func NewClassifier(ruleSet RuleSet) *Classifier {
	return &Classifier{ruleSet: ruleSet}
}

// RuleSetVersion reports the version of the rule set in use, for logging.
func (c *Classifier) RuleSetVersion() string {
	return c.ruleSet.Version
}

// Classify evaluates the candidate text against every rule and returns the
// combined verdict. Empty or whitespace-only input is rejected with the
// no-content reason without consulting the rules.
func (c *Classifier) Classify(text string) Verdict {
	content := strings.TrimSpace(text)
	if content == "" {
		return Verdict{Accepted: false, Reasons: []string{ReasonNoContent}}
	}

	var reasons []string
	for _, rule := range c.ruleSet.Rules {
		reasons = append(reasons, rule.Check(content)...)
	}

	return Verdict{Accepted: len(reasons) == 0, Reasons: reasons}
}
