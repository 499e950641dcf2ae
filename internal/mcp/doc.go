// Package mcp implements the Model Context Protocol (MCP) server for
// pkgpilot.
//
// The server exposes three tools to AI coding assistants over JSON-RPC 2.0
// on stdio:
//   - analyze_project: Inspect a local Umbraco project and report detected
//     signals (framework version, installed packages, capabilities)
//   - recommend_packages: Rank third-party packages for the project by
//     merging NuGet and Umbraco Marketplace search results
//   - package_versions: List published versions of a package
//
// # Tool: recommend_packages
//
//	Request:
//	{
//	  "name": "recommend_packages",
//	  "arguments": {
//	    "path": "/path/to/project",
//	    "max_results": 20,
//	    "disable_ai": false
//	  }
//	}
//
//	Response:
//	{
//	  "project": {"framework": "umbraco", "platform_version": "13"},
//	  "ai_rescoring": true,
//	  "recommendations": [
//	    {
//	      "id": "Umbraco.Forms",
//	      "relevanceScore": 0.85,
//	      "communityScore": 0.62,
//	      "hiddenGem": false,
//	      "reason": "highly popular; relevant for: forms",
//	      ...
//	    }
//	  ],
//	  "count": 20
//	}
//
// # Error Handling
//
// Malformed input is the only caller-visible failure: registry outages and
// language-model failures degrade the result instead of erroring. Error
// codes:
//   - -32602: Invalid params (missing/invalid arguments)
//   - -32603: Internal error
//   - -32001: Path does not contain a CMS project
//   - -32002: Empty package id
//
// # Logging
//
// The server logs to stderr; stdout is reserved for the MCP protocol.
package mcp
