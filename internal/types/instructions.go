package types

// Instructions is the cooking guidance synthesized for a single recipe.
// Produced fresh per run and never persisted.
type Instructions struct {
	PreparationSteps []string          `json:"preparation_steps"`
	CookingTips      []string          `json:"cooking_tips"`
	Timing           map[string]string `json:"timing"`
	Techniques       []string          `json:"techniques"`
	Storage          string            `json:"storage"`
	Serving          string            `json:"serving"`
}
