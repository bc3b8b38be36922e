package providers

import "context"

// ReportModelProvider is the external LLM used to turn a prediction into a
// patient-friendly narrative. Implementations must return the narrative in
// the requested language.
type ReportModelProvider interface {
	// Complete sends the user prompt to the model and returns the raw
	// narrative text.
	Complete(ctx context.Context, language, userPrompt string) (string, error)
}
