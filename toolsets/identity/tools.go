package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/mcp"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/script"
)

func (t *Toolset) handleRuntimeExecutionRole(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	region := t.resolveRegion(req)

	code := fmt.Sprintf(runtimeExecutionRoleScript, script.PyStr(region))
	result := script.Script{
		Code:         code,
		Filename:     "create_runtime_execution_role.py",
		Instructions: "Run this script to create the IAM execution role with minimal required permissions",
	}
	return mcp.ToolResult{
		Data:     t.ctx.Renderer.Render(result),
		Metadata: mcp.ToolMetadata{Resources: []string{"runtime_execution_role_config.json"}},
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

func toString(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
