package intake

import (
	"fmt"

	"github.com/starford/raido/internal/models"
)

// DeriveStatus computes the completion state of a feature intake from
// its answered/total ratio: 0 answered → not_started, all answered
// (with at least one question) → complete, anything between →
// in_progress.
func DeriveStatus(questions []models.Question) models.IntakeStatus {
	total := len(questions)
	answered := 0
	for _, q := range questions {
		if q.Answered() {
			answered++
		}
	}
	switch {
	case answered == 0:
		return models.IntakeNotStarted
	case answered == total:
		return models.IntakeComplete
	default:
		return models.IntakeInProgress
	}
}

// ProgressLabel renders the "{answered}/{total} answered" display string
// for an in-progress intake.
func ProgressLabel(questions []models.Question) string {
	answered := 0
	for _, q := range questions {
		if q.Answered() {
			answered++
		}
	}
	return fmt.Sprintf("%d/%d answered", answered, len(questions))
}
