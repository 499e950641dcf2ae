package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/pkgpilot/pkgpilot-mcp/internal/analyzer"
	"github.com/pkgpilot/pkgpilot-mcp/internal/llm"
	"github.com/pkgpilot/pkgpilot-mcp/internal/recommender"
	"github.com/pkgpilot/pkgpilot-mcp/internal/registry"
)

const (
	// ServerName is the MCP server name
	ServerName = "pkgpilot-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp      *server.MCPServer
	analyzer *analyzer.Analyzer
	engine   *recommender.Engine
	nuget    *registry.NuGetClient
	market   *registry.MarketplaceClient
	llm      llm.Completer
	log      *zap.SugaredLogger
}

// NewServer creates a new MCP server instance. The language-model
// capability is resolved once here: if no provider is configured or the
// privacy opt-out is set, the engine gets the no-op rescorer.
func NewServer(ctx context.Context, log *zap.SugaredLogger) (*Server, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	nuget := registry.NewNuGetClient()
	market := registry.NewMarketplaceClient()
	sources := []registry.Source{nuget, market}

	completer, err := llm.NewFromEnv(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize language model: %w", err)
	}

	var rescorer recommender.Rescorer = recommender.NullRescorer{}
	if completer != nil {
		rescorer = recommender.NewLLMRescorer(completer, log)
		log.Infow("language model rescoring enabled", "provider", completer.Provider())
	} else {
		log.Info("language model rescoring disabled, using rule-based scores")
	}

	engine := recommender.New(sources, rescorer, log)

	s := &Server{
		mcp:      server.NewMCPServer(ServerName, ServerVersion),
		analyzer: analyzer.New(),
		engine:   engine,
		nuget:    nuget,
		market:   market,
		llm:      completer,
		log:      log,
	}

	s.registerTools()
	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() {
		if s.llm != nil {
			_ = s.llm.Close()
		}
	}()
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(analyzeProjectTool(), s.handleAnalyzeProject)
	s.mcp.AddTool(recommendPackagesTool(), s.handleRecommendPackages)
	s.mcp.AddTool(packageVersionsTool(), s.handlePackageVersions)
}
