package codegen

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
	mcp.MustRegisterToolset("codegen", func() mcp.Toolset {
		return New()
	})
}

func (t *Toolset) ID() string {
	return "codegen"
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
			Name:        "generate_strands_agent",
			Description: "Generate standalone Strands agent code with built-in and custom tools, plus optional Memory, Knowledge Base, and Gateway integrations.",
			ToolsetID:   t.ID(),
			InputSchema: schemaGenerateStrandsAgent(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleGenerateStrandsAgent,
		},
		{
			Name:        "generate_agentcore_runtime_agent",
			Description: "Generate a Strands agent ready for AgentCore Runtime, with a BedrockAgentCoreApp entrypoint and env-var wiring for its integrations.",
			ToolsetID:   t.ID(),
			InputSchema: schemaGenerateRuntimeAgent(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleGenerateRuntimeAgent,
		},
	}
	for _, tool := range tools {
		if err := reg.Add(tool); err != nil {
			return fmt.Errorf("register %s: %w", tool.Name, err)
		}
	}
	return nil
}
