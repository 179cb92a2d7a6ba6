// Package export renders project aggregates for exchange: verbatim JSON
// and a human-readable Markdown projection.
package export

import (
	"fmt"
	"strings"

	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/tree"
)

// statusMark maps node status to a task-list marker.
func statusMark(s models.NodeStatus) string {
	switch s {
	case models.NodeDone:
		return "x"
	case models.NodeInProgress:
		return "~"
	case models.NodeBlocked:
		return "!"
	default:
		return " "
	}
}

// Markdown renders the readable projection of an export aggregate:
// project header, intake summary, feature tree outline, board table,
// and the card list. Not lossless.
func Markdown(agg models.ProjectExport) string {
	var b strings.Builder

	p := agg.Project
	fmt.Fprintf(&b, "# %s\n\n", p.Name)
	if p.Summary != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Summary)
	}
	fmt.Fprintf(&b, "- Status: %s\n", p.Status)
	if p.Owner != "" {
		fmt.Fprintf(&b, "- Owner: %s\n", p.Owner)
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(&b, "- Tags: %s\n", strings.Join(p.Tags, ", "))
	}
	for _, l := range p.Links {
		fmt.Fprintf(&b, "- [%s](%s)\n", l.Label, l.URL)
	}
	b.WriteString("\n")

	writeIntake(&b, agg.Intake)
	writeTree(&b, agg.Tree)
	writeBoard(&b, agg.Cards, agg.Tree)

	return b.String()
}

func writeIntake(b *strings.Builder, snap models.IntakeSnapshot) {
	if len(snap.Ideas) == 0 && len(snap.Questions) == 0 {
		return
	}
	b.WriteString("## Intake\n\n")
	if idea := snap.LatestIdea(); idea != nil {
		fmt.Fprintf(b, "**Idea (v%d):** %s\n\n", len(snap.Ideas), idea.Text)
	}
	if an := snap.LatestAnalysis(); an != nil {
		fmt.Fprintf(b, "**Analysis:** %s\n\n", an.Summary)
		for _, kp := range an.KeyPoints {
			fmt.Fprintf(b, "- %s\n", kp)
		}
		b.WriteString("\n")
	}
	if len(snap.Questions) > 0 {
		b.WriteString("### Questions\n\n")
		for _, q := range snap.Questions {
			if q.Answered() {
				fmt.Fprintf(b, "- **%s** — %s\n  - %s\n", q.Category, q.Prompt, *q.Answer)
			} else {
				fmt.Fprintf(b, "- **%s** — %s *(unanswered)*\n", q.Category, q.Prompt)
			}
		}
		b.WriteString("\n")
	}
	if len(snap.Requirements) > 0 {
		b.WriteString("### Requirements\n\n")
		for _, r := range snap.Requirements {
			fmt.Fprintf(b, "- [%s/%s] %s\n", r.Source, r.Kind, r.Text)
		}
		b.WriteString("\n")
	}
}

func writeTree(b *strings.Builder, flat []models.FeatureNode) {
	if len(flat) == 0 {
		return
	}
	b.WriteString("## Feature Tree\n\n")
	var walk func(nodes []*tree.Node, depth int)
	walk = func(nodes []*tree.Node, depth int) {
		for _, n := range nodes {
			indent := strings.Repeat("  ", depth)
			fmt.Fprintf(b, "%s- [%s] %s (%s)\n", indent, statusMark(n.Status), n.Title, n.Priority)
			walk(n.Children, depth+1)
		}
	}
	walk(tree.Build(flat), 0)
	b.WriteString("\n")
}

func writeBoard(b *strings.Builder, cards []models.KanbanCard, flat []models.FeatureNode) {
	if len(cards) == 0 {
		return
	}
	titles := make(map[string]string, len(flat))
	for _, n := range flat {
		titles[n.ID] = n.Title
	}
	b.WriteString("## Board\n\n")
	b.WriteString("| Card | Lane | Priority | Feature |\n")
	b.WriteString("|------|------|----------|--------|\n")
	for _, c := range cards {
		feature := titles[c.FeatureID]
		if feature == "" {
			feature = "—"
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n", c.Title, c.Lane, c.Priority, feature)
	}
	b.WriteString("\n")
}
