package intake

import (
	"testing"
	"time"

	"github.com/starford/raido/internal/models"
)

func answered(id, text string) models.Question {
	now := time.Now().UTC()
	return models.Question{ID: id, Prompt: "p", Answer: &text, AnsweredAt: &now}
}

func unanswered(id string) models.Question {
	return models.Question{ID: id, Prompt: "p"}
}

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name      string
		questions []models.Question
		want      models.IntakeStatus
	}{
		{"no questions", nil, models.IntakeNotStarted},
		{"none answered", []models.Question{unanswered("q-1"), unanswered("q-2")}, models.IntakeNotStarted},
		{"some answered", []models.Question{answered("q-1", "yes"), unanswered("q-2")}, models.IntakeInProgress},
		{"all answered", []models.Question{answered("q-1", "yes"), answered("q-2", "no")}, models.IntakeComplete},
		{"empty answer does not count", []models.Question{answered("q-1", "")}, models.IntakeNotStarted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveStatus(tc.questions); got != tc.want {
				t.Errorf("DeriveStatus = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestProgressLabel(t *testing.T) {
	qs := []models.Question{answered("q-1", "yes"), unanswered("q-2"), unanswered("q-3")}
	if got := ProgressLabel(qs); got != "1/3 answered" {
		t.Errorf("label = %q, want %q", got, "1/3 answered")
	}
}
