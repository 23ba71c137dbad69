package identity

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
	mcp.MustRegisterToolset("identity", func() mcp.Toolset {
		return New()
	})
}

func (t *Toolset) ID() string {
	return "identity"
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
			Name:        "agentcore_create_runtime_execution_role_script",
			Description: "Generate a script that creates the IAM execution role AgentCore Runtime needs, with minimal permissions.",
			ToolsetID:   t.ID(),
			InputSchema: schemaRuntimeExecutionRole(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleRuntimeExecutionRole,
		},
	}
	for _, tool := range tools {
		if err := reg.Add(tool); err != nil {
			return fmt.Errorf("register %s: %w", tool.Name, err)
		}
	}
	return nil
}
