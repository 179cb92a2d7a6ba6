package intake

import (
	"fmt"

	"github.com/starford/raido/internal/models"
)

// maxQuestions caps a generated question set.
const maxQuestions = 10

// questionSpec is one question template.
type questionSpec struct {
	category string
	prompt   string
	required bool
}

// universalQuestions are asked for every project type, in this order.
var universalQuestions = []questionSpec{
	{"Outcome", "What outcome makes this project a success?", true},
	{"Users", "Who uses it day to day, and who is the decision maker?", true},
	{"Workflow", "Walk through the main workflow from start to finish.", true},
	{"Scope", "What is explicitly in scope for the first version, and what is not?", true},
	{"Constraints", "What constraints exist (budget, deadline, tools already in use)?", true},
	{"Risks", "What could go wrong, and what must never happen?", true},
}

// softwareQuestions and opsQuestions are type-specific follow-ups.
// Hybrid projects take the first two of each.
var (
	softwareQuestions = []questionSpec{
		{"Platform", "Which platforms matter first (web, mobile, desktop)?", false},
		{"Data", "What data is stored, and where does it live?", false},
		{"Integrations", "Which external services must it talk to?", false},
		{"Permissions", "Who can see or change what?", false},
	}
	opsQuestions = []questionSpec{
		{"SOP", "Is there an existing procedure to follow, or does one need writing?", false},
		{"Assets", "What equipment, supplies, or locations are involved?", false},
		{"Schedule", "How often does this run, and who staffs it?", false},
		{"Safety", "Any safety, compliance, or access requirements?", false},
	}
)

// GenerateQuestions returns the ordered clarifying-question shells for a
// project type: six universal categories first, then type-specific ones,
// truncated to ten. Deterministic given the same type; answers are nil.
func GenerateQuestions(typ ProjectType) []models.Question {
	specs := make([]questionSpec, 0, maxQuestions)
	specs = append(specs, universalQuestions...)

	switch typ {
	case TypeSoftware:
		specs = append(specs, softwareQuestions...)
	case TypeOps:
		specs = append(specs, opsQuestions...)
	default:
		specs = append(specs, softwareQuestions[:2]...)
		specs = append(specs, opsQuestions[:2]...)
	}

	if len(specs) > maxQuestions {
		specs = specs[:maxQuestions]
	}

	out := make([]models.Question, len(specs))
	for i, s := range specs {
		out[i] = models.Question{
			ID:       fmt.Sprintf("q-%d", i+1),
			Category: s.category,
			Prompt:   s.prompt,
			Required: s.required,
		}
	}
	return out
}
