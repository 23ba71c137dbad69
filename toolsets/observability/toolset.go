package observability

import (
	"errors"
	"fmt"

	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/mcp"
)

type Toolset struct {
	ctx mcp.ToolsetContext
}

func New() *Toolset {
	return &Toolset{}
}

func init() {
	mcp.MustRegisterToolset("observability", func() mcp.Toolset {
		return New()
	})
}

func (t *Toolset) ID() string {
	return "observability"
}

func (t *Toolset) Version() string {
	return "0.1.0"
}

func (t *Toolset) Init(ctx mcp.ToolsetContext) error {
	if ctx.Renderer == nil {
		return errors.New("missing script renderer")
	}
	t.ctx = ctx
	return nil
}

func (t *Toolset) Register(reg mcp.Registry) error {
	tools := []mcp.ToolSpec{
		{
			Name:        "agentcore_observability_get_dashboard_url",
			Description: "Generate a script that prints the CloudWatch GenAI Observability dashboard URL.",
			ToolsetID:   t.ID(),
			InputSchema: schemaDashboardURL(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleDashboardURL,
		},
		{
			Name:        "agentcore_observability_get_logs_info",
			Description: "Generate a script that prints the agent log group and CLI commands for tailing logs.",
			ToolsetID:   t.ID(),
			InputSchema: schemaLogsInfo(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleLogsInfo,
		},
		{
			Name:        "agentcore_observability_get_recent_logs",
			Description: "Generate a script that fetches recent log events from the agent log group.",
			ToolsetID:   t.ID(),
			InputSchema: schemaRecentLogs(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleRecentLogs,
		},
	}
	for _, tool := range tools {
		if err := reg.Add(tool); err != nil {
			return fmt.Errorf("register %s: %w", tool.Name, err)
		}
	}
	return nil
}
