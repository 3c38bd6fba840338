package agent

import (
	"regexp"
	"strings"

	"github.com/akolanti/DocRouter/internal/config"
	"github.com/akolanti/DocRouter/internal/domain/documentModel"
)

var (
	emailAddress    = regexp.MustCompile(`[\w.-]+@[\w.-]+`)
	messageDate     = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}|\d{1,2}\s+[A-Za-z]+\s+\d{4}`)
	urgencyKeyword  = regexp.MustCompile(`(?i)urgent|asap|immediately|important`)
	questionPhrases = regexp.MustCompile(`(?i)\b(?:how|what|when|where|why|who|can|could|would|will)\b[\w\s,]*\?`)
)

// ExtractEntities pulls the sender, recipient, date, urgency and question fragments out
// of free text. The first address found is taken as the sender and the second as the
// recipient.
func ExtractEntities(text string) documentModel.EmailEntities {
	entities := documentModel.EmailEntities{
		Urgency:    documentModel.UrgencyNormal,
		KeyPhrases: []string{},
	}

	addresses := emailAddress.FindAllString(text, 2)
	if len(addresses) > 0 {
		entities.Sender = strings.TrimRight(addresses[0], ".")
	}
	if len(addresses) > 1 {
		entities.Recipient = strings.TrimRight(addresses[1], ".")
	}

	if date := messageDate.FindString(text); date != "" {
		entities.Date = date
	}

	if urgencyKeyword.MatchString(text) {
		entities.Urgency = documentModel.UrgencyHigh
	}

	for _, q := range questionPhrases.FindAllString(text, config.QuestionPhraseLimit) {
		entities.KeyPhrases = append(entities.KeyPhrases, strings.TrimSpace(q))
	}
	return entities
}
