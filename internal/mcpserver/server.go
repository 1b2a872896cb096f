// Package mcpserver exposes the matching engine as read-only MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/taxonomy"
)

// Version is the MCP server version.
const Version = "1.0.0"

const uriScheme = "ats://"

// Server is the MCP server for the resume matcher.
type Server struct {
	analyzer *pipeline.Analyzer
	taxonomy *taxonomy.Taxonomy
	logger   *zap.Logger
	server   *mcp.Server
}

// NewServer creates an MCP server around analyzer. tax backs the taxonomy resource.
func NewServer(analyzer *pipeline.Analyzer, tax *taxonomy.Taxonomy, log *zap.Logger) (*Server, error) {
	if analyzer == nil {
		return nil, fmt.Errorf("analyzer is required")
	}
	if tax == nil {
		return nil, fmt.Errorf("taxonomy is required")
	}

	s := &Server{
		analyzer: analyzer,
		taxonomy: tax,
		logger:   logger.OrNop(log),
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "resume-matcher",
			Version: Version,
		}, nil),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves over stdio until the context is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server starting", zap.Bool("semantic", s.analyzer.Semantic()))
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
