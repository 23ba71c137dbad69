package observability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/mcp"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/script"
)

func (t *Toolset) handleDashboardURL(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	region := t.resolveRegion(req)

	code := fmt.Sprintf(dashboardURLScript, script.PyStr(region))
	result := script.Script{
		Code:         code,
		Filename:     "get_dashboard_url.py",
		Instructions: "Run this script to get the observability dashboard URL",
	}
	return mcp.ToolResult{
		Data: t.ctx.Renderer.Render(result),
	}, nil
}

func (t *Toolset) handleLogsInfo(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	// The script reads the ARN from runtime_config.json so the command
	// lines it prints always match the deployed agent.
	if toString(req.Arguments["agent_arn"]) == "" {
		err := errors.New("agent_arn is required")
		return errorResult(err), err
	}
	region := t.resolveRegion(req)

	code := fmt.Sprintf(logsInfoScript, script.PyStr(region))
	result := script.Script{
		Code:         code,
		Filename:     "get_logs_info.py",
		Instructions: "Run this script to get log group information and CLI commands",
	}
	return mcp.ToolResult{
		Data:     t.ctx.Renderer.Render(result),
		Metadata: mcp.ToolMetadata{Resources: []string{"runtime_config.json"}},
	}, nil
}

func (t *Toolset) handleRecentLogs(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	if toString(req.Arguments["agent_arn"]) == "" {
		err := errors.New("agent_arn is required")
		return errorResult(err), err
	}
	hoursBack := toInt(req.Arguments["hours_back"], 1)
	limit := toInt(req.Arguments["limit"], 50)
	region := t.resolveRegion(req)

	code := fmt.Sprintf(recentLogsScript,
		script.PyStr(region),
		hoursBack,
		limit,
		hoursBack,
	)
	result := script.Script{
		Code:         code,
		Filename:     "get_recent_logs.py",
		Instructions: "Run this script to retrieve recent agent logs",
	}
	return mcp.ToolResult{
		Data:     t.ctx.Renderer.Render(result),
		Metadata: mcp.ToolMetadata{Resources: []string{"runtime_config.json"}},
	}, nil
}

func (t *Toolset) resolveRegion(req mcp.ToolRequest) string {
	if region := strings.TrimSpace(toString(req.Arguments["region"])); region != "" {
		return region
	}
	if t.ctx.Config != nil && strings.TrimSpace(t.ctx.Config.Region) != "" {
		return t.ctx.Config.Region
	}
	return "us-west-2"
}

func errorResult(err error) mcp.ToolResult {
	return mcp.ToolResult{Data: map[string]any{"error": err.Error()}}
}

func toString(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

func toInt(value any, fallback int) int {
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if parsed, err := v.Int64(); err == nil {
			return int(parsed)
		}
	}
	return fallback
}
