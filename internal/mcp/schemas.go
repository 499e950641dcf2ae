package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// analyzeProjectTool returns the tool definition for analyze_project
func analyzeProjectTool() mcp.Tool {
	return mcp.Tool{
		Name:        "analyze_project",
		Description: "Inspect a local Umbraco project and report its detected signals: framework version, installed packages, capabilities, and architecture patterns",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the project root (must contain a .csproj or packages.config)",
				},
			},
			Required: []string{"path"},
		},
	}
}

// recommendPackagesTool returns the tool definition for recommend_packages
func recommendPackagesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "recommend_packages",
		Description: "Analyze a local Umbraco project and recommend third-party packages ranked by relevance, merging NuGet and Umbraco Marketplace results",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the project root",
				},
				"max_results": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of recommendations to return (1-50)",
					"default":     20,
					"minimum":     1,
					"maximum":     50,
				},
				"disable_ai": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, skip language-model rescoring and return rule-based scores only (no project context leaves the machine)",
					"default":     false,
				},
			},
			Required: []string{"path"},
		},
	}
}

// packageVersionsTool returns the tool definition for package_versions
func packageVersionsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "package_versions",
		Description: "List published versions of a package, newest first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"package_id": map[string]interface{}{
					"type":        "string",
					"description": "Package id to look up (e.g. 'Umbraco.Forms')",
				},
				"source": map[string]interface{}{
					"type":        "string",
					"description": "Which registry to query: nuget (release history) or marketplace (declared platform compatibility)",
					"enum":        []string{"nuget", "marketplace"},
					"default":     "nuget",
				},
			},
			Required: []string{"package_id"},
		},
	}
}
