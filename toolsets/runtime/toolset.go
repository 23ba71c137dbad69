package runtime

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
	mcp.MustRegisterToolset("runtime", func() mcp.Toolset {
		return New()
	})
}

func (t *Toolset) ID() string {
	return "runtime"
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
			Name:        "agentcore_runtime_configure",
			Description: "Generate a script that configures AgentCore Runtime deployment settings.",
			ToolsetID:   t.ID(),
			InputSchema: schemaRuntimeConfigure(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleRuntimeConfigure,
		},
		{
			Name:        "agentcore_runtime_launch",
			Description: "Generate a script that builds and deploys the agent container to AgentCore Runtime.",
			ToolsetID:   t.ID(),
			InputSchema: schemaRuntimeLaunch(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleRuntimeLaunch,
		},
		{
			Name:        "agentcore_runtime_status",
			Description: "Generate a script that checks AgentCore Runtime deployment status.",
			ToolsetID:   t.ID(),
			InputSchema: schemaRuntimeStatus(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleRuntimeStatus,
		},
		{
			Name:        "agentcore_runtime_invoke",
			Description: "Generate a script that invokes the deployed agent with an OAuth bearer token.",
			ToolsetID:   t.ID(),
			InputSchema: schemaRuntimeInvoke(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleRuntimeInvoke,
		},
		{
			Name:        "agentcore_runtime_delete",
			Description: "Generate a rerunnable script that deletes the AgentCore Runtime deployment.",
			ToolsetID:   t.ID(),
			InputSchema: schemaRuntimeDelete(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleRuntimeDelete,
		},
	}
	for _, tool := range tools {
		if err := reg.Add(tool); err != nil {
			return fmt.Errorf("register %s: %w", tool.Name, err)
		}
	}
	return nil
}
