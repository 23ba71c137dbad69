package memory

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
	mcp.MustRegisterToolset("memory", func() mcp.Toolset {
		return New()
	})
}

func (t *Toolset) ID() string {
	return "memory"
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
			Name:        "agentcore_memory_create",
			Description: "Generate a script that creates an AgentCore Memory resource with memory strategies.",
			ToolsetID:   t.ID(),
			InputSchema: schemaMemoryCreate(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleMemoryCreate,
		},
		{
			Name:        "agentcore_memory_create_event",
			Description: "Generate a script that stores conversation messages in AgentCore Memory.",
			ToolsetID:   t.ID(),
			InputSchema: schemaMemoryCreateEvent(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleMemoryCreateEvent,
		},
		{
			Name:        "agentcore_memory_retrieve",
			Description: "Generate a script that retrieves memories using semantic search.",
			ToolsetID:   t.ID(),
			InputSchema: schemaMemoryRetrieve(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleMemoryRetrieve,
		},
		{
			Name:        "agentcore_memory_delete",
			Description: "Generate a rerunnable script that deletes an AgentCore Memory resource.",
			ToolsetID:   t.ID(),
			InputSchema: schemaMemoryDelete(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     t.handleMemoryDelete,
		},
	}
	for _, tool := range tools {
		if err := reg.Add(tool); err != nil {
			return fmt.Errorf("register %s: %w", tool.Name, err)
		}
	}
	return nil
}
