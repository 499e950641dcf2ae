package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkgpilot/pkgpilot-mcp/internal/llm"
	"github.com/pkgpilot/pkgpilot-mcp/internal/registry"
)

const testProjectFile = `<Project Sdk="Microsoft.NET.Sdk.Web">
  <ItemGroup>
    <PackageReference Include="Umbraco.Cms" Version="13.2.1" />
  </ItemGroup>
</Project>`

// newTestServer builds a Server wired against fake registries, with the
// language-model capability absent.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	nugetSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"totalHits": 1,
			"data": [{
				"id": "Umbraco.Forms",
				"version": "13.1.0",
				"title": "Umbraco Forms",
				"description": "Form builder, works with Umbraco 13",
				"totalDownloads": 1200000,
				"tags": ["umbraco", "forms"],
				"versions": [{"version": "12.0.0"}, {"version": "13.1.0"}]
			}]
		}`)
	}))
	t.Cleanup(nugetSrv.Close)

	marketSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"totalResults": 1,
			"results": [{
				"packageId": "Diplo.GodMode",
				"title": "Diplo God Mode",
				"description": "Developer diagnostics dashboard",
				"numberOfNuGetDownloads": 9000,
				"tags": ["diagnostics"],
				"latestVersion": "13.0.0",
				"umbracoVersions": ["13"]
			}]
		}`)
	}))
	t.Cleanup(marketSrv.Close)

	t.Setenv(registry.EnvNuGetSearchURL, nugetSrv.URL)
	t.Setenv(registry.EnvMarketplaceSearchURL, marketSrv.URL)
	t.Setenv(llm.EnvDisableAI, "1")

	server, err := NewServer(context.Background(), nil)
	require.NoError(t, err)
	return server
}

func newTestProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "site.csproj"), []byte(testProjectFile), 0o644))
	return root
}

func toolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

// resultText extracts the single text payload from a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func requireMCPError(t *testing.T, err error, code int) *MCPError {
	t.Helper()
	require.Error(t, err)
	var mcpErr *MCPError
	require.True(t, errors.As(err, &mcpErr), "expected *MCPError, got %T", err)
	assert.Equal(t, code, mcpErr.Code)
	return mcpErr
}

func TestHandleAnalyzeProject(t *testing.T) {
	server := newTestServer(t)
	root := newTestProject(t)

	result, err := server.handleAnalyzeProject(context.Background(),
		toolRequest("analyze_project", map[string]interface{}{"path": root}))
	require.NoError(t, err)

	var signals struct {
		FrameworkID       string   `json:"frameworkId"`
		PlatformVersion   string   `json:"platformVersion"`
		InstalledPackages []string `json:"installedPackages"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &signals))

	assert.Equal(t, "umbraco", signals.FrameworkID)
	assert.Equal(t, "13", signals.PlatformVersion)
	assert.Equal(t, []string{"Umbraco.Cms"}, signals.InstalledPackages)
}

func TestHandleAnalyzeProject_MissingPath(t *testing.T) {
	server := newTestServer(t)

	_, err := server.handleAnalyzeProject(context.Background(),
		toolRequest("analyze_project", map[string]interface{}{}))
	requireMCPError(t, err, ErrorCodeInvalidParams)
}

func TestHandleAnalyzeProject_NotAProject(t *testing.T) {
	server := newTestServer(t)

	_, err := server.handleAnalyzeProject(context.Background(),
		toolRequest("analyze_project", map[string]interface{}{"path": t.TempDir()}))
	requireMCPError(t, err, ErrorCodeNotCMSProject)
}

func TestHandleRecommendPackages(t *testing.T) {
	server := newTestServer(t)
	root := newTestProject(t)

	result, err := server.handleRecommendPackages(context.Background(),
		toolRequest("recommend_packages", map[string]interface{}{"path": root}))
	require.NoError(t, err)

	var response struct {
		Project struct {
			Framework       string `json:"framework"`
			PlatformVersion string `json:"platform_version"`
		} `json:"project"`
		AIRescoring     bool `json:"ai_rescoring"`
		Recommendations []struct {
			ID             string  `json:"id"`
			RelevanceScore float64 `json:"relevanceScore"`
			Reason         string  `json:"reason"`
		} `json:"recommendations"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &response))

	assert.Equal(t, "umbraco", response.Project.Framework)
	assert.Equal(t, "13", response.Project.PlatformVersion)
	assert.False(t, response.AIRescoring)
	require.Equal(t, 2, response.Count)

	// Both fake registries contribute; the NuGet package scores higher.
	assert.Equal(t, "Umbraco.Forms", response.Recommendations[0].ID)
	assert.Equal(t, "Diplo.GodMode", response.Recommendations[1].ID)
	for _, rec := range response.Recommendations {
		assert.GreaterOrEqual(t, rec.RelevanceScore, 0.0)
		assert.LessOrEqual(t, rec.RelevanceScore, 1.0)
		assert.NotEmpty(t, rec.Reason)
	}
}

func TestHandleRecommendPackages_MaxResults(t *testing.T) {
	server := newTestServer(t)
	root := newTestProject(t)

	result, err := server.handleRecommendPackages(context.Background(),
		toolRequest("recommend_packages", map[string]interface{}{
			"path":        root,
			"max_results": float64(1), // JSON numbers arrive as float64
		}))
	require.NoError(t, err)

	var response struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &response))
	assert.Equal(t, 1, response.Count)
}

func TestHandleRecommendPackages_MaxResultsOutOfRange(t *testing.T) {
	server := newTestServer(t)
	root := newTestProject(t)

	for _, value := range []float64{0, 51} {
		_, err := server.handleRecommendPackages(context.Background(),
			toolRequest("recommend_packages", map[string]interface{}{
				"path":        root,
				"max_results": value,
			}))
		requireMCPError(t, err, ErrorCodeInvalidParams)
	}
}

func TestHandlePackageVersions_NuGet(t *testing.T) {
	server := newTestServer(t)

	result, err := server.handlePackageVersions(context.Background(),
		toolRequest("package_versions", map[string]interface{}{"package_id": "Umbraco.Forms"}))
	require.NoError(t, err)

	var response struct {
		PackageID string   `json:"package_id"`
		Source    string   `json:"source"`
		Versions  []string `json:"versions"`
		Count     int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &response))

	assert.Equal(t, "Umbraco.Forms", response.PackageID)
	assert.Equal(t, "nuget", response.Source)
	assert.Equal(t, []string{"13.1.0", "12.0.0"}, response.Versions)
	assert.Equal(t, 2, response.Count)
}

func TestHandlePackageVersions_Marketplace(t *testing.T) {
	server := newTestServer(t)

	result, err := server.handlePackageVersions(context.Background(),
		toolRequest("package_versions", map[string]interface{}{
			"package_id": "Diplo.GodMode",
			"source":     "marketplace",
		}))
	require.NoError(t, err)

	var response struct {
		Versions []string `json:"versions"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &response))
	assert.Equal(t, []string{"13"}, response.Versions)
}

func TestHandlePackageVersions_EmptyID(t *testing.T) {
	server := newTestServer(t)

	_, err := server.handlePackageVersions(context.Background(),
		toolRequest("package_versions", map[string]interface{}{"package_id": ""}))
	requireMCPError(t, err, ErrorCodeEmptyPackageID)
}

func TestHandlePackageVersions_InvalidSource(t *testing.T) {
	server := newTestServer(t)

	_, err := server.handlePackageVersions(context.Background(),
		toolRequest("package_versions", map[string]interface{}{
			"package_id": "Umbraco.Forms",
			"source":     "github",
		}))
	requireMCPError(t, err, ErrorCodeInvalidParams)
}

func TestMCPErrorFormat(t *testing.T) {
	err := newMCPError(ErrorCodeInvalidParams, "path parameter is required", nil)
	assert.Equal(t, "MCP error -32602: path parameter is required", err.Error())
}

func TestParamHelpers(t *testing.T) {
	args := map[string]interface{}{
		"flag":   true,
		"number": float64(7),
		"name":   "value",
	}

	assert.True(t, getBoolDefault(args, "flag", false))
	assert.False(t, getBoolDefault(args, "missing", false))
	assert.Equal(t, 7, getIntDefault(args, "number", 20))
	assert.Equal(t, 20, getIntDefault(args, "missing", 20))
	assert.Equal(t, "value", getStringDefault(args, "name", "fallback"))
	assert.Equal(t, "fallback", getStringDefault(args, "missing", "fallback"))
}
