package intake

import (
	"github.com/starford/raido/internal/ident"
	"github.com/starford/raido/internal/models"
)

// seedSpec describes one root of the seed forest and its children.
type seedSpec struct {
	title    string
	desc     string
	children []string
}

var (
	softwareSeed = []seedSpec{
		{"Foundation", "Project setup, environments, and the data model.",
			[]string{"Project scaffolding", "Data model", "Accounts & auth"}},
		{"Backend", "Server-side capabilities behind the product.",
			[]string{"Core API", "Integrations"}},
		{"App Sections", "User-facing surfaces, one per section.",
			[]string{"Home", "Primary workflow", "Settings"}},
	}
	opsSeed = []seedSpec{
		{"Foundation", "Outcomes, roles, and responsibilities.",
			[]string{"Define outcomes", "Roles & responsibilities"}},
		{"Process & SOP", "The written procedure and its review loop.",
			[]string{"Draft SOP", "Review & sign-off"}},
		{"Scheduling", "Cadence, staffing, and coverage.",
			[]string{"Cadence", "Staffing"}},
	}
	hybridSeed = []seedSpec{
		{"Foundation", "Project setup and shared vocabulary.",
			[]string{"Project scaffolding", "Data model"}},
		{"Backend & Automation", "Automated parts of the workflow.",
			[]string{"Core API", "Automation hooks"}},
		{"App Sections", "User-facing surfaces.",
			[]string{"Home", "Primary workflow"}},
		{"Ops & SOP", "The human side of the process.",
			[]string{"Draft SOP", "Scheduling"}},
	}
)

// SynthesizeTree builds the initial seed forest for a classified idea.
// Every produced node carries the given provenance citations (the idea
// id at minimum); the synthesizer only reads ids, it never writes to
// the intake ledger. The caller persists the returned creates in order.
func SynthesizeTree(typ ProjectType, citations []models.Citation) []models.NodeCreate {
	var seed []seedSpec
	switch typ {
	case TypeSoftware:
		seed = softwareSeed
	case TypeOps:
		seed = opsSeed
	default:
		seed = hybridSeed
	}

	sources := make([]models.Citation, len(citations))
	copy(sources, citations)

	var out []models.NodeCreate
	for _, root := range seed {
		rootID := ident.New("node")
		out = append(out, models.NodeCreate{
			ID:          rootID,
			Title:       root.title,
			Description: root.desc,
			Status:      models.NodeDraft,
			Priority:    models.P1,
			Sources:     sources,
		})
		for _, child := range root.children {
			out = append(out, models.NodeCreate{
				ID:       ident.New("node"),
				ParentID: rootID,
				Title:    child,
				Status:   models.NodeDraft,
				Priority: models.P2,
				Sources:  sources,
			})
		}
	}
	return out
}
