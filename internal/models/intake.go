package models

import "time"

// IdeaVersion is one append-only version of the originating idea text.
// Immutable once created.
type IdeaVersion struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Analysis is one generated analysis of the idea. All versions are
// retained; the latest is authoritative for display.
type Analysis struct {
	ID        string    `json:"id"`
	Summary   string    `json:"summary"`
	KeyPoints []string  `json:"key_points"`
	CreatedAt time.Time `json:"created_at"`
}

// Question is a clarifying question in the intake ledger. Identity is
// stable across regeneration only by id; regenerating replaces the set.
type Question struct {
	ID         string     `json:"id"`
	Category   string     `json:"category"`
	Prompt     string     `json:"prompt"`
	Required   bool       `json:"required"`
	Answer     *string    `json:"answer,omitempty"`
	AnsweredAt *time.Time `json:"answered_at,omitempty"`
}

// Answered reports whether the question has a non-empty answer.
func (q Question) Answered() bool {
	return q.Answer != nil && *q.Answer != ""
}

// CitationKind identifies which intake collection a citation points into.
type CitationKind string

// Citation kinds.
const (
	CiteIdea     CitationKind = "idea"
	CiteQuestion CitationKind = "question"
)

// Citation is a provenance reference from a derived artifact back to the
// idea or question that justified it. Citations are never required to
// resolve: a reference to a deleted entity is a dangling reference, not
// an error.
type Citation struct {
	Kind CitationKind `json:"kind"`
	ID   string       `json:"id"`
}

// RequirementSource distinguishes human-authored requirements from
// agent-derived ones.
type RequirementSource string

// Requirement sources.
const (
	SourceHuman RequirementSource = "human"
	SourceAI    RequirementSource = "ai"
)

// RequirementKind classifies a requirement.
type RequirementKind string

// Requirement kinds.
const (
	KindGoal       RequirementKind = "goal"
	KindConstraint RequirementKind = "constraint"
	KindNonGoal    RequirementKind = "non_goal"
)

// Requirement is a derived requirement with provenance citations.
type Requirement struct {
	ID        string            `json:"id"`
	Source    RequirementSource `json:"source"`
	Kind      RequirementKind   `json:"kind"`
	Text      string            `json:"text"`
	Citations []Citation        `json:"citations"`
}

// IntakeSnapshot is the full intake ledger for one project: idea
// versions, analyses, clarifying questions, and derived requirements.
type IntakeSnapshot struct {
	Ideas        []IdeaVersion `json:"ideas"`
	Analyses     []Analysis    `json:"analyses"`
	Questions    []Question    `json:"questions"`
	Requirements []Requirement `json:"requirements"`
}

// LatestIdea returns the most recently appended idea version, or nil.
func (s IntakeSnapshot) LatestIdea() *IdeaVersion {
	if len(s.Ideas) == 0 {
		return nil
	}
	return &s.Ideas[len(s.Ideas)-1]
}

// LatestAnalysis returns the most recently appended analysis, or nil.
func (s IntakeSnapshot) LatestAnalysis() *Analysis {
	if len(s.Analyses) == 0 {
		return nil
	}
	return &s.Analyses[len(s.Analyses)-1]
}
