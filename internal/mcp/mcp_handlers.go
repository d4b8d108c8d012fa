package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/huangsam/codeinsights/core"
	"github.com/huangsam/codeinsights/internal/contract"
	"github.com/huangsam/codeinsights/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// fileSummary is one file of an analyze_complexity response.
type fileSummary struct {
	Path            string          `json:"path"`
	Maintainability float64         `json:"maintainability"`
	Severity        schema.Severity `json:"severity"`
	Cyclomatic      float64         `json:"cyclomatic"`
	Effort          float64         `json:"effort"`
	Dependencies    []string        `json:"dependencies"`
}

// complexitySummary leaves out the per-function Halstead detail of a run.
type complexitySummary struct {
	Files              []fileSummary        `json:"files"`
	Project            schema.ProjectReport `json:"project"`
	Total              int                  `json:"total"`
	LowestFile         string               `json:"lowest_file,omitempty"`
	LowMaintainability []string             `json:"low_maintainability"`
	MetricsReference   string               `json:"metrics_reference"`
}

// scanConfig clones the base config and applies the arguments shared by every tool.
func (h *toolHandler) scanConfig(request mcp.CallToolRequest, defaultGlob string) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("root", ""); p != "" {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("invalid root '%s': %w", p, err)
		}
		cfg.Root = abs
	}
	cfg.Glob = request.GetString("glob", defaultGlob)
	if !doublestar.ValidatePattern(cfg.Glob) {
		return nil, fmt.Errorf("invalid glob pattern '%s'", cfg.Glob)
	}
	cfg.JSOnly = request.GetBool("js_only", cfg.JSOnly)
	return cfg, nil
}

func (h *toolHandler) handleAnalyzeComplexity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.scanConfig(request, contract.DefaultJSGlob)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if g := request.GetString("grep", ""); g != "" {
		if cfg.Grep, err = regexp.Compile(g); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: invalid grep pattern: %v", err)), nil
		}
	}
	cfg.Invert = request.GetBool("invert", false)
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = min(l, contract.MaxResultLimit)
	}

	result, err := core.RunComplexity(ctx, cfg, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	if err := result.CheckMeasured(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(summarizeComplexity(result))
}

func (h *toolHandler) handleCountLOC(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.scanConfig(request, contract.DefaultScanGlob)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	result, err := core.RunLOC(ctx, cfg, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("line count failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleFindDuplicateNames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.scanConfig(request, contract.DefaultScanGlob)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	result, err := core.RunDuplicateNames(ctx, cfg, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("duplicate scan failed: %v", err)), nil
	}
	return jsonResult(result)
}

func summarizeComplexity(result *schema.ComplexityResult) complexitySummary {
	summary := complexitySummary{
		Files:              make([]fileSummary, 0, len(result.Files)),
		Project:            result.Project,
		Total:              result.Totals.Total,
		LowMaintainability: make([]string, 0, len(result.Totals.LowMaintainability)),
		MetricsReference:   schema.MetricsReference,
	}
	for _, f := range result.Files {
		mi, _ := f.Maintainability()
		fs := fileSummary{
			Path:            f.RelativePath,
			Maintainability: mi,
			Severity:        schema.SeverityOf(mi),
			Dependencies:    []string{},
		}
		if f.Report != nil {
			fs.Cyclomatic = f.Report.Cyclomatic
			fs.Effort = f.Report.Effort
			fs.Dependencies = f.Report.DependentModules()
		}
		summary.Files = append(summary.Files, fs)
	}
	if result.Totals.LowestFile != nil {
		summary.LowestFile = result.Totals.LowestFile.RelativePath
	}
	for _, f := range result.Totals.LowMaintainability {
		summary.LowMaintainability = append(summary.LowMaintainability, f.RelativePath)
	}
	return summary
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
