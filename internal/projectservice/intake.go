package projectservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/ident"
	"github.com/starford/raido/internal/intake"
	"github.com/starford/raido/internal/models"
)

func normalizeIntake(s *models.IntakeSnapshot) {
	s.Ideas = nonNil(s.Ideas)
	s.Analyses = nonNil(s.Analyses)
	s.Questions = nonNil(s.Questions)
	s.Requirements = nonNil(s.Requirements)
}

// GetIntake returns the project's intake ledger.
func (s *Service) GetIntake(ctx context.Context, projectID string) (*models.IntakeSnapshot, error) {
	snap, err := s.store.GetIntake(ctx, projectID)
	if err != nil {
		return nil, err
	}
	normalizeIntake(snap)
	return snap, nil
}

// SetIntake replaces the whole ledger. Used by import and by callers
// that edit requirements in place.
func (s *Service) SetIntake(ctx context.Context, projectID string, snap models.IntakeSnapshot) (*models.IntakeSnapshot, error) {
	normalizeIntake(&snap)
	if err := s.store.PutIntake(ctx, projectID, snap); err != nil {
		return nil, err
	}
	s.touchProject(ctx, projectID)
	s.emit("intake", projectID)
	return &snap, nil
}

// AddIdeaVersion appends a new immutable idea version. Idea text is
// required; versioning is append-only.
func (s *Service) AddIdeaVersion(ctx context.Context, projectID, text string) (*models.IntakeSnapshot, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: idea text must not be empty", apperr.ErrValidation)
	}
	snap, err := s.store.GetIntake(ctx, projectID)
	if err != nil {
		return nil, err
	}
	snap.Ideas = append(snap.Ideas, models.IdeaVersion{
		ID:        ident.New("idea"),
		Text:      text,
		CreatedAt: time.Now().UTC(),
	})
	normalizeIntake(snap)
	if err := s.store.PutIntake(ctx, projectID, *snap); err != nil {
		return nil, err
	}
	s.log(ctx, projectID, "", fmt.Sprintf("added idea version %d", len(snap.Ideas)))
	s.touchProject(ctx, projectID)
	s.emit("intake", projectID)
	return snap, nil
}

// AddAnalysis appends an analysis. All versions are retained; the
// latest is authoritative for display.
func (s *Service) AddAnalysis(ctx context.Context, projectID, summary string, keyPoints []string) (*models.IntakeSnapshot, error) {
	if strings.TrimSpace(summary) == "" {
		return nil, fmt.Errorf("%w: analysis summary must not be empty", apperr.ErrValidation)
	}
	snap, err := s.store.GetIntake(ctx, projectID)
	if err != nil {
		return nil, err
	}
	snap.Analyses = append(snap.Analyses, models.Analysis{
		ID:        ident.New("an"),
		Summary:   summary,
		KeyPoints: nonNil(keyPoints),
		CreatedAt: time.Now().UTC(),
	})
	normalizeIntake(snap)
	if err := s.store.PutIntake(ctx, projectID, *snap); err != nil {
		return nil, err
	}
	s.touchProject(ctx, projectID)
	s.emit("intake", projectID)
	return snap, nil
}

// GenerateQuestions classifies the latest idea, records the
// classification as an analysis, and replaces the question set with
// freshly generated shells. Regeneration supersedes the prior set;
// question identity survives only by id.
func (s *Service) GenerateQuestions(ctx context.Context, projectID string) (*models.IntakeSnapshot, error) {
	snap, err := s.store.GetIntake(ctx, projectID)
	if err != nil {
		return nil, err
	}
	idea := snap.LatestIdea()
	if idea == nil {
		return nil, fmt.Errorf("%w: no idea to classify", apperr.ErrValidation)
	}

	cls := intake.Classify(idea.Text)
	points := append([]string{}, cls.Tags...)
	for _, r := range cls.Risks {
		points = append(points, "risk: "+r)
	}
	snap.Analyses = append(snap.Analyses, models.Analysis{
		ID:        ident.New("an"),
		Summary:   fmt.Sprintf("Classified as %s project", cls.Type),
		KeyPoints: points,
		CreatedAt: time.Now().UTC(),
	})
	snap.Questions = intake.GenerateQuestions(cls.Type)

	normalizeIntake(snap)
	if err := s.store.PutIntake(ctx, projectID, *snap); err != nil {
		return nil, err
	}
	s.log(ctx, projectID, "", fmt.Sprintf("generated %d clarifying questions (%s)", len(snap.Questions), cls.Type))
	s.touchProject(ctx, projectID)
	s.emit("intake", projectID)
	return snap, nil
}

// AnswerQuestion records an answer and its timestamp. Concurrent
// submissions for the same id are last-write-wins.
func (s *Service) AnswerQuestion(ctx context.Context, projectID, questionID, answer string) (*models.IntakeSnapshot, error) {
	snap, err := s.store.GetIntake(ctx, projectID)
	if err != nil {
		return nil, err
	}
	found := false
	now := time.Now().UTC()
	for i := range snap.Questions {
		if snap.Questions[i].ID == questionID {
			snap.Questions[i].Answer = &answer
			snap.Questions[i].AnsweredAt = &now
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: question %s", apperr.ErrNotFound, questionID)
	}
	normalizeIntake(snap)
	if err := s.store.PutIntake(ctx, projectID, *snap); err != nil {
		return nil, err
	}
	s.touchProject(ctx, projectID)
	s.emit("intake", projectID)
	return snap, nil
}

// SynthesizeTree builds the seed feature forest from the latest idea's
// classification and persists it. Every node cites the idea version and
// each answered question. The intake ledger itself is only read.
func (s *Service) SynthesizeTree(ctx context.Context, projectID string) ([]models.FeatureNode, error) {
	snap, err := s.store.GetIntake(ctx, projectID)
	if err != nil {
		return nil, err
	}
	idea := snap.LatestIdea()
	if idea == nil {
		return nil, fmt.Errorf("%w: no idea to synthesize from", apperr.ErrValidation)
	}
	cls := intake.Classify(idea.Text)

	citations := []models.Citation{{Kind: models.CiteIdea, ID: idea.ID}}
	for _, q := range snap.Questions {
		if q.Answered() {
			citations = append(citations, models.Citation{Kind: models.CiteQuestion, ID: q.ID})
		}
	}

	creates := intake.SynthesizeTree(cls.Type, citations)
	out := make([]models.FeatureNode, 0, len(creates))
	for _, c := range creates {
		n, err := s.CreateTreeNode(ctx, projectID, c)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	s.log(ctx, projectID, "", fmt.Sprintf("synthesized seed tree with %d nodes", len(out)))
	return out, nil
}
