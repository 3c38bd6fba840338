package agent

import (
	"strings"

	"github.com/akolanti/DocRouter/internal/domain/documentModel"
)

var actionByIntent = map[documentModel.Intent]documentModel.Action{
	documentModel.IntentInvoice:    documentModel.ActionCreateBillingRecord,
	documentModel.IntentRFQ:        documentModel.ActionCreateOpportunity,
	documentModel.IntentComplaint:  documentModel.ActionCreateSupportCase,
	documentModel.IntentRegulation: documentModel.ActionStoreKnowledgeBase,
	documentModel.IntentSyllabus:   documentModel.ActionStoreLearningMaterial,
}

var legalTerms = map[string]bool{
	"gdpr":  true,
	"hipaa": true,
	"sox":   true,
}

// DecideAction maps an intent to its downstream action. Regulation documents with a key
// phrase that is exactly a legal regime name (any case) raise a compliance alert instead
// of going to the knowledge base.
func DecideAction(intent documentModel.Intent, phrases []string) documentModel.Action {
	if intent == documentModel.IntentRegulation {
		for _, phrase := range phrases {
			if legalTerms[strings.ToLower(strings.TrimSpace(phrase))] {
				return documentModel.ActionCreateComplianceAlert
			}
		}
	}
	if action, ok := actionByIntent[intent]; ok {
		return action
	}
	return documentModel.ActionCreateTicket
}
