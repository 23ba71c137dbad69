package gateway

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
	mcp.MustRegisterToolset("gateway", func() mcp.Toolset {
		return New()
	})
}

func (t *Toolset) ID() string {
	return "gateway"
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
			Name:        "agentcore_gateway_create",
			Description: "Generate a script that creates an AgentCore Gateway with Cognito OAuth authorization.",
			ToolsetID:   t.ID(),
			InputSchema: schemaGatewayCreate(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleGatewayCreate,
		},
		{
			Name:        "agentcore_gateway_add_lambda_target",
			Description: "Generate a script that adds a Lambda function as a gateway target with an MCP tool schema.",
			ToolsetID:   t.ID(),
			InputSchema: schemaGatewayAddLambdaTarget(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleGatewayAddLambdaTarget,
		},
		{
			Name:        "agentcore_gateway_list_targets",
			Description: "Generate a script that lists all targets attached to a gateway.",
			ToolsetID:   t.ID(),
			InputSchema: schemaGatewayListTargets(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleGatewayListTargets,
		},
		{
			Name:        "agentcore_gateway_delete_target",
			Description: "Generate a rerunnable script that deletes a target from a gateway.",
			ToolsetID:   t.ID(),
			InputSchema: schemaGatewayDeleteTarget(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleGatewayDeleteTarget,
		},
		{
			Name:        "agentcore_gateway_delete",
			Description: "Generate a rerunnable script that deletes an AgentCore Gateway and all its targets.",
			ToolsetID:   t.ID(),
			InputSchema: schemaGatewayDelete(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleGatewayDelete,
		},
	}
	for _, tool := range tools {
		if err := reg.Add(tool); err != nil {
			return fmt.Errorf("register %s: %w", tool.Name, err)
		}
	}
	return nil
}
