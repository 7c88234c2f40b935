package providers

import (
	"context"

	"github.com/farishtaa/carefinder/internal/domain/entities"
)

// TriagePatient is the patient context handed to the model for personalization.
type TriagePatient struct {
	Name   string
	Age    int
	Gender string
}

// TriageModelProvider generates the assistant reply for one triage turn given
// the conversation so far. Prompt construction is the implementation's
// concern; callers only see this contract.
type TriageModelProvider interface {
	GenerateReply(ctx context.Context, language, prompt string, history []*entities.TriageMessage, patient *TriagePatient) (string, error)
}
