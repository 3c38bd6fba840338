// Package classifier infers business intent and salient phrases from free text with
// fixed pattern rules. Nothing here returns an error: text that matches nothing is
// unknown, and text with no phrases yields an empty list.
package classifier

import (
	"regexp"
	"strings"

	"github.com/akolanti/DocRouter/internal/domain/documentModel"
)

type intentRule struct {
	intent   documentModel.Intent
	patterns []*regexp.Regexp
}

// Evaluated in order, first match wins. Reordering changes results.
var intentRules = []intentRule{
	{documentModel.IntentInvoice, compileAll(`\binvoice\b`, `\bpayment\b`, `due\s+date`)},
	{documentModel.IntentRFQ, compileAll(`\brfq\b`, `request\s+for\s+quote`, `\bquotation\b`)},
	{documentModel.IntentComplaint, compileAll(`\bcomplaint\b`, `\bdissatisfied\b`, `\bissue\b`)},
	{documentModel.IntentRegulation, compileAll(`\bregulation\b`, `\bcompliance\b`, `\bstandard\b`)},
	{documentModel.IntentSyllabus, compileAll(`\bsyllabus\b`, `\bcurriculum\b`, `course\s+outline`)},
}

var syllabusVocabulary = map[string]bool{
	"learn":  true,
	"study":  true,
	"course": true,
}

var wordToken = regexp.MustCompile(`\w+`)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(`(?i)`+p))
	}
	return out
}

// DetectIntent returns the first intent group with a pattern hit in text. When no
// group matches, a bare "learn", "study" or "course" token still means syllabus.
func DetectIntent(text string) documentModel.Intent {
	lowered := strings.ToLower(text)
	for _, rule := range intentRules {
		for _, p := range rule.patterns {
			if p.MatchString(lowered) {
				return rule.intent
			}
		}
	}

	for _, token := range wordToken.FindAllString(lowered, -1) {
		if syllabusVocabulary[token] {
			return documentModel.IntentSyllabus
		}
	}
	return documentModel.IntentUnknown
}
