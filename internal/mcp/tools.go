package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pkgpilot/pkgpilot-mcp/internal/analyzer"
	"github.com/pkgpilot/pkgpilot-mcp/internal/llm"
	"github.com/pkgpilot/pkgpilot-mcp/internal/recommender"
	"github.com/pkgpilot/pkgpilot-mcp/internal/registry"
	"github.com/pkgpilot/pkgpilot-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams  = -32602 // Invalid method parameters
	ErrorCodeInternalError  = -32603 // Internal JSON-RPC error
	ErrorCodeNotCMSProject  = -32001 // Specified path does not contain a CMS project
	ErrorCodeEmptyPackageID = -32002 // package_id parameter is empty
)

// handleAnalyzeProject handles the analyze_project tool invocation
func (s *Server) handleAnalyzeProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	signals, err := s.analyzeProject(ctx, path)
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(formatJSON(signals)), nil
}

// handleRecommendPackages handles the recommend_packages tool invocation
func (s *Server) handleRecommendPackages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	maxResults := getIntDefault(args, "max_results", 20)
	if maxResults < 1 || maxResults > 50 {
		return nil, newMCPError(ErrorCodeInvalidParams, "max_results must be between 1 and 50", map[string]interface{}{
			"param": "max_results",
			"value": maxResults,
		})
	}
	disableAI := getBoolDefault(args, "disable_ai", false)

	signals, err := s.analyzeProject(ctx, path)
	if err != nil {
		return nil, err
	}

	engine := s.engine
	if disableAI {
		// Per-call opt-out: rebuild the pipeline with the no-op rescorer.
		engine = recommender.New([]registry.Source{s.nuget, s.market}, recommender.NullRescorer{}, s.log)
	}

	candidates := engine.Recommend(ctx, signals)
	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}

	response := map[string]interface{}{
		"project": map[string]interface{}{
			"framework":        signals.FrameworkID,
			"platform_version": signals.PlatformVersion,
			"features":         signals.Features,
		},
		"ai_rescoring":    !disableAI && s.llm != nil && !llm.Disabled(),
		"recommendations": candidates,
		"count":           len(candidates),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handlePackageVersions handles the package_versions tool invocation
func (s *Server) handlePackageVersions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	packageID, ok := args["package_id"].(string)
	if !ok || packageID == "" {
		return nil, newMCPError(ErrorCodeEmptyPackageID, "package_id parameter is required and cannot be empty", map[string]interface{}{
			"param":  "package_id",
			"reason": "missing or empty",
		})
	}

	sourceName := getStringDefault(args, "source", "nuget")
	var source registry.Source
	switch types.SourceKind(sourceName) {
	case types.SourceNuGet:
		source = s.nuget
	case types.SourceMarketplace:
		source = s.market
	default:
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid source", map[string]interface{}{
			"param":   "source",
			"value":   sourceName,
			"allowed": []string{"nuget", "marketplace"},
		})
	}

	versions, err := source.Versions(ctx, packageID)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "version lookup failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"package_id": packageID,
		"source":     sourceName,
		"versions":   versions,
		"count":      len(versions),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// analyzeProject validates the path and runs the analyzer, mapping
// validation failures onto MCP error codes.
func (s *Server) analyzeProject(ctx context.Context, path string) (*types.ProjectSignals, error) {
	signals, err := s.analyzer.Analyze(ctx, path)
	if err == analyzer.ErrNoProjectFiles {
		return nil, newMCPError(ErrorCodeNotCMSProject, "path does not contain a CMS project", map[string]interface{}{
			"param":  "path",
			"reason": err.Error(),
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid path", map[string]interface{}{
			"param":  "path",
			"reason": err.Error(),
		})
	}
	return signals, nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a value as indented JSON
func formatJSON(data interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
