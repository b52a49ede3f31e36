// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the note collection for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Archis03007/linked-notes-app/internal/auth"
	"github.com/Archis03007/linked-notes-app/internal/models"
	"github.com/Archis03007/linked-notes-app/internal/noteservice"
)

// Server wraps the MCP server with note tools.
type Server struct {
	mcp   *server.MCPServer
	svc   *noteservice.Service
	authp auth.Provider
}

// New creates a new MCP server with all note tools registered.
func New(svc *noteservice.Service, authp auth.Provider) *Server {
	s := &Server{svc: svc, authp: authp}

	s.mcp = server.NewMCPServer(
		"LinkedNotes",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Full-text search through note titles, subtitles, and content."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchNotes)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read a note's full record, including its serialized content."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a note of type text, task, or checklist. The body is "+
			"seeded per type; reference other notes from rich content with "+
			"<span data-backlink>Title</span> markup. Read the contract first via the "+
			"get_content_contract tool or the notes://content-format resource."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Note title, the backlink target")),
		mcp.WithString("type", mcp.Required(), mcp.Description("One of: text, task, checklist")),
		mcp.WithString("subtitle", mcp.Description("Optional subtitle")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("get_content_contract",
		mcp.WithDescription("Returns the canonical note content contract. "+
			"Call this before creating or updating notes to ensure correct structure."),
	), s.getContentContract)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List all notes, newest first, as 'id<TAB>type<TAB>title' lines."),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("get_backlinks",
		mcp.WithDescription("Find all notes whose content references the given title."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title of the note to find backlinks for")),
	), s.getBacklinks)

	// Resource: content format contract.
	s.mcp.AddResource(
		mcp.NewResource("notes://content-format", "Note Content Contract",
			mcp.WithResourceDescription("Canonical content format that all notes must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readContentFormatResource,
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

func (s *Server) searchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, s.authp.OwnerID(), query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n, err := s.svc.GetNote(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(n, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	typRaw, err := req.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	typ := models.NoteType(typRaw)
	if !typ.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("unknown note type: %s", typRaw)), nil
	}
	subtitle := req.GetString("subtitle", "")

	n, err := s.svc.CreateNote(ctx, s.authp.OwnerID(), title, subtitle, typ, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", n.ID)), nil
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notes, err := s.svc.ListNotes(ctx, s.authp.OwnerID())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var lines []string
	for _, n := range notes {
		lines = append(lines, fmt.Sprintf("%s\t%s\t%s", n.ID, n.Type, n.Title))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) getContentContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(ContentFormatContract), nil
}

func (s *Server) readContentFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "notes://content-format",
			MIMEType: "text/markdown",
			Text:     ContentFormatContract,
		},
	}, nil
}

func (s *Server) getBacklinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	refs, err := s.svc.Backlinks(ctx, title)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(refs) == 0 {
		return mcp.NewToolResultText("no backlinks found"), nil
	}
	var lines []string
	for _, n := range refs {
		lines = append(lines, fmt.Sprintf("%s\t%s", n.ID, n.Title))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}
