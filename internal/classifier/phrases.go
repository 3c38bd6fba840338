package classifier

import (
	"regexp"
	"sort"
	"strings"
)

type entityKind string

const (
	entityOrganization entityKind = "organization"
	entityProduct      entityKind = "product"
	entityEvent        entityKind = "event"
	entityLegal        entityKind = "legal"
)

type entityPattern struct {
	kind entityKind
	re   *regexp.Regexp
}

// Only these categories count as key-phrase entities. People and places are left out.
var entityPatterns = []entityPattern{
	{entityOrganization, regexp.MustCompile(`\b(?:[A-Z][A-Za-z0-9&'-]*\s+){1,4}(?:Inc|Ltd|LLC|LLP|Corp|Corporation|GmbH|Company|Group|Holdings|University|Institute|College|Bank|Agency)\b\.?`)},
	{entityOrganization, regexp.MustCompile(`\b(?:University|Institute|College|Ministry|Department|Bank)\s+of\s+[A-Z][A-Za-z'-]*(?:\s+[A-Z][A-Za-z'-]*){0,2}`)},
	{entityEvent, regexp.MustCompile(`\b(?:[A-Z][A-Za-z0-9'-]*\s+){1,4}(?:Conference|Summit|Expo|Forum|Symposium|Workshop|Congress|Webinar)(?:\s+\d{4})?\b`)},
	{entityProduct, regexp.MustCompile(`\b[A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+)?\s+v?\d+(?:\.\d+)*\b`)},
	{entityLegal, regexp.MustCompile(`\b(?:(?i:GDPR|HIPAA|SOX|CCPA|FERPA|PCI[- ]DSS)|ISO(?:/IEC)?\s?\d{3,5}(?:[-:]\d+)*|(?:Article|Section|Directive)\s+\d+[A-Za-z]?)\b`)},
}

var calendarWords = map[string]bool{
	"january": true, "february": true, "march": true, "april": true, "may": true, "june": true,
	"july": true, "august": true, "september": true, "october": true, "november": true, "december": true,
	"jan": true, "feb": true, "mar": true, "apr": true, "jun": true, "jul": true, "aug": true,
	"sep": true, "sept": true, "oct": true, "nov": true, "dec": true,
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true, "friday": true,
	"saturday": true, "sunday": true,
}

var stopwords = toSet(`a about above after again against all also am an and any are as at be because been
before being below between both but by can could dear did do does doing down during each else ever
few for from further get got had has have having he her here hers him his how however i if in into is
it its itself just let me more most much must my no nor not now of off on once only or other our ours
out over own please regards same she should sincerely so some such than thank thanks that the their
theirs them then there these they this those through to too under until up upon us very via was we
were what when where whether which while who whom why will with within without would yes yet you your
yours hi hello best kind kindly shall may might need needs want wants like`)

var (
	clauseBreak = regexp.MustCompile(`[^\w\s'&-]+`)
	letter      = regexp.MustCompile(`[A-Za-z]`)
)

const maxPhraseWords = 4

type span struct {
	start int
	text  string
}

// ExtractKeyPhrases returns at most limit distinct phrases from text. Named entities
// come first in reading order, then multi-word noun phrases. Duplicates are collapsed
// case-insensitively and the first spelling seen is kept.
func ExtractKeyPhrases(text string, limit int) []string {
	if limit <= 0 || strings.TrimSpace(text) == "" {
		return []string{}
	}

	candidates := append(namedEntities(text), nounPhrases(text)...)
	seen := make(map[string]bool, len(candidates))
	phrases := make([]string, 0, limit)
	for _, c := range candidates {
		key := strings.ToLower(c)
		if c == "" || seen[key] {
			continue
		}
		seen[key] = true
		phrases = append(phrases, c)
		if len(phrases) == limit {
			break
		}
	}
	return phrases
}

func namedEntities(text string) []string {
	var spans []span
	for _, p := range entityPatterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			value := trimLeadingStopwords(normalizeSpace(text[loc[0]:loc[1]]))
			if value == "" {
				continue
			}
			if p.kind == entityProduct && calendarWords[strings.ToLower(strings.Fields(value)[0])] {
				continue
			}
			spans = append(spans, span{start: loc[0], text: value})
		}
	}

	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	out := make([]string, 0, len(spans))
	for _, s := range spans {
		out = append(out, s.text)
	}
	return out
}

// nounPhrases approximates noun chunks as runs of two or more content words inside a
// clause. Long runs are cut into chunks of at most maxPhraseWords.
func nounPhrases(text string) []string {
	var phrases []string
	for _, clause := range clauseBreak.Split(text, -1) {
		var run []string
		flush := func() {
			for len(run) >= 2 {
				n := min(len(run), maxPhraseWords)
				phrases = append(phrases, strings.Join(run[:n], " "))
				run = run[n:]
			}
			run = run[:0]
		}
		for _, word := range strings.Fields(clause) {
			word = strings.Trim(word, "'-&")
			if !isContentWord(word) {
				flush()
				continue
			}
			run = append(run, word)
		}
		flush()
	}
	return phrases
}

func isContentWord(word string) bool {
	if len(word) < 2 || !letter.MatchString(word) {
		return false
	}
	return !stopwords[strings.ToLower(word)]
}

func trimLeadingStopwords(value string) string {
	words := strings.Fields(value)
	for len(words) > 1 && stopwords[strings.ToLower(words[0])] {
		words = words[1:]
	}
	if len(words) == 1 && stopwords[strings.ToLower(words[0])] {
		return ""
	}
	return strings.Join(words, " ")
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func toSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}
