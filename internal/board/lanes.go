// Package board holds the lane vocabulary and history rules shared by
// the per-project Kanban board and the flat operator task board.
package board

import (
	"time"

	"github.com/starford/raido/internal/models"
)

// Lanes lists every lane in nominal pipeline order.
var Lanes = []models.Lane{
	models.LaneProposed,
	models.LaneQueued,
	models.LaneDevelopment,
	models.LaneReview,
	models.LaneBlocked,
	models.LaneDone,
}

// ValidLane reports whether l is a known lane.
func ValidLane(l models.Lane) bool {
	for _, known := range Lanes {
		if l == known {
			return true
		}
	}
	return false
}

// NormalizeLane maps display vocabulary onto canonical lanes: "todo"
// → proposed and "in_progress" → development. Unknown values pass
// through unchanged so ValidLane can reject them.
func NormalizeLane(l models.Lane) models.Lane {
	switch l {
	case "todo":
		return models.LaneProposed
	case "in_progress":
		return models.LaneDevelopment
	default:
		return l
	}
}

// ApplyLaneChange returns history with one appended record when to
// differs from from. Lane history is append-only: records are never
// rewritten, and a non-lane-changing update leaves history untouched.
func ApplyLaneChange(history []models.LaneChange, from, to models.Lane, note string) []models.LaneChange {
	if from == to {
		return history
	}
	return append(history, models.LaneChange{
		At:   time.Now().UTC(),
		From: from,
		To:   to,
		Note: note,
	})
}
