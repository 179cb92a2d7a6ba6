// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Raido project tools for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/projectservice"
	"github.com/starford/raido/internal/view"
)

// Server wraps the MCP server with Raido tools.
type Server struct {
	mcp     *server.MCPServer
	svc     projectservice.Adapter
	viewCfg view.Config
}

// New creates a new MCP server with all Raido tools registered.
func New(svc projectservice.Adapter, viewCfg view.Config) *Server {
	s := &Server{svc: svc, viewCfg: viewCfg}

	s.mcp = server.NewMCPServer(
		"Raido",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_projects",
		mcp.WithDescription("List all projects with id, name, status, and tags."),
	), s.listProjects)

	s.mcp.AddTool(mcp.NewTool("get_project_view",
		mcp.WithDescription("Get the display-ready aggregate for one project: "+
			"intake summary, feature tree, kanban columns, and recent activity."),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Project id")),
	), s.getProjectView)

	s.mcp.AddTool(mcp.NewTool("add_idea",
		mcp.WithDescription("Append a new idea version to a project's intake ledger. "+
			"Versioning is append-only; earlier versions stay readable."),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Project id")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Full idea text")),
	), s.addIdea)

	s.mcp.AddTool(mcp.NewTool("generate_questions",
		mcp.WithDescription("Classify the latest idea (software, ops, or hybrid) and "+
			"generate clarifying intake questions. Replaces the current question set."),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Project id")),
	), s.generateQuestions)

	s.mcp.AddTool(mcp.NewTool("answer_question",
		mcp.WithDescription("Record an answer to an intake question. "+
			"Repeated answers to the same question overwrite (last write wins)."),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Project id")),
		mcp.WithString("question_id", mcp.Required(), mcp.Description("Question id, e.g. q-3")),
		mcp.WithString("answer", mcp.Required(), mcp.Description("Answer text")),
	), s.answerQuestion)

	s.mcp.AddTool(mcp.NewTool("synthesize_tree",
		mcp.WithDescription("Synthesize a seed feature tree from the project's intake "+
			"(idea plus answered questions). Every generated node cites its sources."),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Project id")),
	), s.synthesizeTree)

	s.mcp.AddTool(mcp.NewTool("propose_card",
		mcp.WithDescription("Propose a new kanban card. The card JSON MUST follow the "+
			"canonical proposal format; read it first via the get_proposal_contract "+
			"tool or the raido://proposal-format resource."),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Project id")),
		mcp.WithString("card", mcp.Required(), mcp.Description("Card proposal as JSON, per the proposal format contract")),
	), s.proposeCard)

	s.mcp.AddTool(mcp.NewTool("move_card",
		mcp.WithDescription("Move a kanban card to another lane. The transition is "+
			"appended to the card's history."),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Project id")),
		mcp.WithString("card_id", mcp.Required(), mcp.Description("Card id")),
		mcp.WithString("lane", mcp.Required(), mcp.Description("Target lane: proposed, queued, development, review, blocked, done")),
		mcp.WithString("note", mcp.Description("Optional transition note")),
	), s.moveCard)

	s.mcp.AddTool(mcp.NewTool("get_proposal_contract",
		mcp.WithDescription("Returns the canonical Raido card proposal contract. "+
			"Call this before proposing cards to ensure correct structure."),
	), s.getProposalContract)

	// Resource: card proposal contract.
	s.mcp.AddResource(
		mcp.NewResource("raido://proposal-format", "Card Proposal Contract",
			mcp.WithResourceDescription("Canonical card proposal format that all proposed cards must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readProposalFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) *mcp.CallToolResult {
	out, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(out))
}

func (s *Server) listProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := s.svc.ListProjects(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(projects), nil
}

func (s *Server) getProjectView(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	projects, err := s.svc.ListProjects(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var project *models.Project
	for i := range projects {
		if projects[i].ID == projectID {
			project = &projects[i]
			break
		}
	}
	if project == nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", projectID)), nil
	}

	nodes, err := s.svc.GetTree(ctx, projectID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cards, err := s.svc.ListCards(ctx, projectID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	snap, err := s.svc.GetIntake(ctx, projectID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	activity, err := s.svc.ListActivity(ctx, projectID, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(view.Build(*project, nodes, cards, *snap, activity, s.viewCfg)), nil
}

func (s *Server) addIdea(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	snap, err := s.svc.AddIdeaVersion(ctx, projectID, text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("idea recorded: version %d", len(snap.Ideas))), nil
}

func (s *Server) generateQuestions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	snap, err := s.svc.GenerateQuestions(ctx, projectID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(snap.Questions), nil
}

func (s *Server) answerQuestion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	questionID, err := req.RequireString("question_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	answer, err := req.RequireString("answer")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, err := s.svc.AnswerQuestion(ctx, projectID, questionID, answer); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("answered: %s", questionID)), nil
}

func (s *Server) synthesizeTree(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	nodes, err := s.svc.SynthesizeTree(ctx, projectID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(nodes), nil
}

func (s *Server) proposeCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	raw, err := req.RequireString("card")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var create models.CardCreate
	if jsonErr := json.Unmarshal([]byte(raw), &create); jsonErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("card is not valid JSON: %v", jsonErr)), nil
	}
	card, err := s.svc.CreateCard(ctx, projectID, create)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s in lane %s", card.ID, card.Lane)), nil
}

func (s *Server) moveCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cardID, err := req.RequireString("card_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	laneStr, err := req.RequireString("lane")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lane := models.Lane(laneStr)

	patch := models.CardPatch{Lane: &lane}
	if note, noteErr := req.RequireString("note"); noteErr == nil && note != "" {
		patch.Note = &note
	}
	card, err := s.svc.UpdateCard(ctx, projectID, cardID, patch)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("moved: %s to %s", card.ID, card.Lane)), nil
}

func (s *Server) getProposalContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(ProposalFormatContract), nil
}

func (s *Server) readProposalFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "raido://proposal-format",
			MIMEType: "text/markdown",
			Text:     ProposalFormatContract,
		},
	}, nil
}
