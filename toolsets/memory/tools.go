package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/mcp"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/script"
)

// transformStrategies rewrites plain strategy entries into the tagged
// union wrappers the control-plane API expects. Unknown strategy names
// pass through unchanged.
func transformStrategies(strategies []map[string]any) []map[string]any {
	transformed := make([]map[string]any, 0, len(strategies))
	for _, strategy := range strategies {
		name, _ := strategy["name"].(string)
		switch strings.ToLower(name) {
		case "summary":
			transformed = append(transformed, map[string]any{"summaryMemoryStrategy": strategy})
		case "preferences":
			transformed = append(transformed, map[string]any{"userPreferenceMemoryStrategy": strategy})
		case "semantic":
			transformed = append(transformed, map[string]any{"semanticMemoryStrategy": strategy})
		default:
			transformed = append(transformed, strategy)
		}
	}
	return transformed
}

func (t *Toolset) handleMemoryCreate(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	name := strings.TrimSpace(toString(req.Arguments["name"]))
	if name == "" {
		err := errors.New("name is required")
		return errorResult(err), err
	}
	strategies := toMapSlice(req.Arguments["strategies"])
	if len(strategies) == 0 {
		err := errors.New("strategies is required")
		return errorResult(err), err
	}
	description := toString(req.Arguments["description"])
	region := t.resolveRegion(req)

	code := fmt.Sprintf(createScript,
		script.PyIndented(transformStrategies(strategies)),
		script.PyStr(region),
		script.PyStr(name),
		script.PyStr(description),
		script.PyStr(name),
		script.PyStr(region),
	)
	result := script.Script{
		Code:         code,
		Filename:     script.SafeFile(name) + "_create.py",
		Instructions: fmt.Sprintf("Run this script to create the AgentCore Memory resource '%s'", name),
	}
	return mcp.ToolResult{
		Data:     t.ctx.Renderer.Render(result),
		Metadata: mcp.ToolMetadata{Resources: []string{"memory_config.json"}},
	}, nil
}

func (t *Toolset) handleMemoryCreateEvent(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	if toString(req.Arguments["memory_id"]) == "" {
		err := errors.New("memory_id is required")
		return errorResult(err), err
	}
	actorID := strings.TrimSpace(toString(req.Arguments["actor_id"]))
	sessionID := strings.TrimSpace(toString(req.Arguments["session_id"]))
	if actorID == "" || sessionID == "" {
		err := errors.New("actor_id and session_id are required")
		return errorResult(err), err
	}
	messages := req.Arguments["messages"]
	if messages == nil {
		err := errors.New("messages is required")
		return errorResult(err), err
	}
	region := t.resolveRegion(req)

	code := fmt.Sprintf(createEventScript,
		script.PyStr(region),
		script.PyIndented(messages),
		script.PyStr(actorID),
		script.PyStr(sessionID),
	)
	result := script.Script{
		Code:         code,
		Filename:     fmt.Sprintf("store_memory_event_%s.py", script.SafeFile(actorID)),
		Instructions: fmt.Sprintf("Run this script to store conversation messages for %s", actorID),
	}
	return mcp.ToolResult{
		Data:     t.ctx.Renderer.Render(result),
		Metadata: mcp.ToolMetadata{Resources: []string{"memory_config.json"}},
	}, nil
}

func (t *Toolset) handleMemoryRetrieve(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	if toString(req.Arguments["memory_id"]) == "" {
		err := errors.New("memory_id is required")
		return errorResult(err), err
	}
	namespace := strings.TrimSpace(toString(req.Arguments["namespace"]))
	query := strings.TrimSpace(toString(req.Arguments["query"]))
	if namespace == "" || query == "" {
		err := errors.New("namespace and query are required")
		return errorResult(err), err
	}
	topK := toInt(req.Arguments["top_k"], 3)
	region := t.resolveRegion(req)

	code := fmt.Sprintf(retrieveScript,
		script.PyStr(region),
		script.PyStr(namespace),
		script.PyStr(query),
		topK,
	)
	result := script.Script{
		Code:         code,
		Filename:     "retrieve_memories.py",
		Instructions: fmt.Sprintf("Run this script to retrieve memories from namespace '%s'", namespace),
	}
	return mcp.ToolResult{
		Data:     t.ctx.Renderer.Render(result),
		Metadata: mcp.ToolMetadata{Resources: []string{"memory_config.json"}},
	}, nil
}

func (t *Toolset) handleMemoryDelete(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	if toString(req.Arguments["memory_id"]) == "" {
		err := errors.New("memory_id is required")
		return errorResult(err), err
	}
	region := t.resolveRegion(req)

	code := fmt.Sprintf(deleteScript, script.PyStr(region))
	result := script.Script{
		Code:         code,
		Filename:     "delete_memory.py",
		Instructions: "Run this script to delete the AgentCore Memory resource",
	}
	return mcp.ToolResult{
		Data:     t.ctx.Renderer.Render(result),
		Metadata: mcp.ToolMetadata{Resources: []string{"memory_config.json"}},
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

func toMapSlice(value any) []map[string]any {
	switch v := value.(type) {
	case []map[string]any:
		return v
	case []any:
		var out []map[string]any
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}
