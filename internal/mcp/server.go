// ABOUTME: MCP server setup for the clinic record store.
// ABOUTME: Wraps MCP server with storage Repository connection.
package mcp

import (
	"context"

	"github.com/harperreed/vetclinic/internal/clinic"
	"github.com/harperreed/vetclinic/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	log       zerolog.Logger
}

// NewServer creates a new MCP server with the given storage.
func NewServer(repo storage.Repository, logger zerolog.Logger, version string) (*Server, error) {
	if version == "" {
		version = "dev"
	}
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "vetclinic",
			Version: version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		log:       logger.With().Str("component", "mcp").Logger(),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Info().Msg("mcp server starting on stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// service builds a record service whose prompts are answered by p.
func (s *Server) service(p clinic.Prompter) *clinic.Service {
	return clinic.NewService(s.repo, p, s.log)
}

// presetPrompter answers service prompts from values supplied with a tool call.
// Tools cannot ask follow-up questions, so every answer is fixed up front.
type presetPrompter struct {
	answers   []string
	confirm   bool
	confirmed bool
	notices   []string
}

func (p *presetPrompter) Ask(string) (string, error) {
	if len(p.answers) == 0 {
		return "", nil
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func (p *presetPrompter) Confirm(string) (bool, error) {
	p.confirmed = p.confirm
	return p.confirm, nil
}

func (p *presetPrompter) Notify(msg string) {
	p.notices = append(p.notices, msg)
}
