package api

import "github.com/starford/raido/internal/models"

// IdeaRequest is the body for appending an idea version.
type IdeaRequest struct {
	Text string `json:"text" example:"A mobile app for planning trips" validate:"required"`
}

// AnalysisRequest is the body for appending an analysis.
type AnalysisRequest struct {
	Summary   string   `json:"summary" example:"Classified as software project" validate:"required"`
	KeyPoints []string `json:"key_points,omitempty" example:"mobile,api"`
}

// AnswerRequest is the body for answering a clarifying question.
type AnswerRequest struct {
	Answer string `json:"answer" example:"Solo travellers planning multi-stop trips" validate:"required"`
}

// ActivityRequest is the body for an explicit audit entry.
type ActivityRequest struct {
	Actor string `json:"actor,omitempty" example:"agent:planner"`
	Text  string `json:"text" example:"proposed three cards for review" validate:"required"`
}

// ProjectListResponse wraps the project listing.
type ProjectListResponse struct {
	Projects []models.Project `json:"projects" validate:"required"`
	Total    int              `json:"total" example:"3" validate:"required"`
}

// TreeResponse wraps a project's flat node collection.
type TreeResponse struct {
	Nodes []models.FeatureNode `json:"nodes" validate:"required"`
}

// CardListResponse wraps a project's cards.
type CardListResponse struct {
	Cards []models.KanbanCard `json:"cards" validate:"required"`
}

// TaskListResponse wraps the flat operator board.
type TaskListResponse struct {
	Tasks []models.Task `json:"tasks" validate:"required"`
}

// ActivityResponse wraps an activity listing.
type ActivityResponse struct {
	Entries []models.ActivityEntry `json:"entries" validate:"required"`
}
