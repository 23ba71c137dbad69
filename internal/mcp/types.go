package mcp

import (
	"context"

	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/audit"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/cache"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/config"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/configfile"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/policy"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/redact"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/script"
)

type ToolSafety string

const (
	SafetyReadOnly    ToolSafety = "read_only"
	SafetyWrite       ToolSafety = "write"
	SafetyRiskyWrite  ToolSafety = "risky_write"
	SafetyDestructive ToolSafety = "destructive"
)

type ToolHandler func(ctx context.Context, req ToolRequest) (ToolResult, error)

type ToolSpec struct {
	Name        string
	Description string
	ToolsetID   string
	InputSchema map[string]any
	Safety      ToolSafety
	Handler     ToolHandler
}

type ToolInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

type ToolRequest struct {
	Arguments map[string]any
	User      policy.User
	Context   ToolContext
}

type ToolResult struct {
	Data     any
	Metadata ToolMetadata
}

type ToolMetadata struct {
	Resources []string `json:"resources,omitempty"`
}

type ToolContext struct {
	Config   *config.Config
	Files    *configfile.Store
	Policy   *policy.Authorizer
	Renderer script.Renderer
	Redactor *redact.Redactor
	Audit    *audit.Logger
	Services *ServiceRegistry
	Cache    *cache.Store
	Invoker  *ToolInvoker
	Registry Registry
}

type ToolsetContext = ToolContext
