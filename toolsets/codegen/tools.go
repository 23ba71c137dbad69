package codegen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/mcp"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/script"
)

const defaultModelID = "us.anthropic.claude-sonnet-4-5-20250929-v1:0"

var defaultNamespaces = []string{"semantic", "preferences", "summary"}

type customTool struct {
	ident       string
	description string
	params      string
	code        string
}

type agentParams struct {
	name           string
	systemPrompt   string
	stockTools     []string
	customTools    []customTool
	includeMemory  bool
	includeKB      bool
	includeGateway bool
	namespaces     []string
	modelID        string
	temperature    float64
	region         string
	runtime        bool
}

func (t *Toolset) handleGenerateStrandsAgent(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	name := script.SafeName(strings.TrimSpace(toString(req.Arguments["agent_name"])))
	if name == "" {
		err := errors.New("agent_name is required")
		return errorResult(err), err
	}
	systemPrompt := strings.TrimSpace(toString(req.Arguments["system_prompt"]))
	if systemPrompt == "" {
		err := errors.New("system_prompt is required")
		return errorResult(err), err
	}
	customTools, err := parseCustomTools(toMapSlice(req.Arguments["custom_tools"]))
	if err != nil {
		return errorResult(err), err
	}
	includeKB := toBool(req.Arguments["include_kb"], false)

	p := agentParams{
		name:           name,
		systemPrompt:   systemPrompt,
		stockTools:     stockToolIdents(toStringSlice(req.Arguments["tools"]), includeKB),
		customTools:    customTools,
		includeMemory:  toBool(req.Arguments["include_memory"], false),
		includeKB:      includeKB,
		includeGateway: toBool(req.Arguments["include_gateway"], false),
		namespaces:     namespacesOrDefault(toStringSlice(req.Arguments["memory_namespaces"])),
		modelID:        modelOrDefault(toString(req.Arguments["model_id"])),
		temperature:    toFloat(req.Arguments["temperature"], 0.3),
		region:         t.resolveRegion(req),
	}
	filename := p.name + ".py"
	result := script.Script{
		Code:     buildAgentCode(p),
		Filename: filename,
		Instructions: fmt.Sprintf("Save as %s and run with python %s. Install dependencies first: pip install %s",
			filename, filename, strings.Join(pipPackages(p), " ")),
	}
	return mcp.ToolResult{
		Data:     t.ctx.Renderer.Render(result),
		Metadata: mcp.ToolMetadata{Resources: agentResources(p)},
	}, nil
}

func (t *Toolset) handleGenerateRuntimeAgent(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	name := script.SafeName(strings.TrimSpace(toString(req.Arguments["agent_name"])))
	if name == "" {
		err := errors.New("agent_name is required")
		return errorResult(err), err
	}
	systemPrompt := strings.TrimSpace(toString(req.Arguments["system_prompt"]))
	if systemPrompt == "" {
		err := errors.New("system_prompt is required")
		return errorResult(err), err
	}
	includeKB := toBool(req.Arguments["include_kb"], false)

	p := agentParams{
		name:           name,
		systemPrompt:   systemPrompt,
		stockTools:     stockToolIdents(toStringSlice(req.Arguments["additional_tools"]), includeKB),
		includeMemory:  toBool(req.Arguments["include_memory"], true),
		includeKB:      includeKB,
		includeGateway: toBool(req.Arguments["include_gateway"], false),
		namespaces:     namespacesOrDefault(toStringSlice(req.Arguments["memory_namespaces"])),
		modelID:        modelOrDefault(toString(req.Arguments["model_id"])),
		temperature:    toFloat(req.Arguments["temperature"], 0.3),
		region:         t.resolveRegion(req),
		runtime:        true,
	}
	filename := p.name + "_runtime.py"
	result := script.Script{
		Code:     buildAgentCode(p),
		Filename: filename,
		Instructions: fmt.Sprintf("Save as %s, add %s to requirements.txt, then deploy with agentcore_runtime_configure and agentcore_runtime_launch using entrypoint %s",
			filename, strings.Join(pipPackages(p), " "), filename),
	}
	return mcp.ToolResult{
		Data: t.ctx.Renderer.Render(result),
	}, nil
}

// buildAgentCode assembles a complete agent program from the fragments
// in scripts.go, keeping only the sections the requested integrations
// need so the generated file has no dead code.
func buildAgentCode(p agentParams) string {
	var b strings.Builder
	if p.runtime {
		fmt.Fprintf(&b, runtimeHeader, p.name)
	} else {
		fmt.Fprintf(&b, standaloneHeader, p.name)
	}
	b.WriteString(buildImports(p))
	b.WriteString("\n")
	fmt.Fprintf(&b, agentConfigBlock,
		script.PyStr(p.region),
		script.PyStr(p.modelID),
		script.PyValue(p.temperature),
		script.PyMultiline(p.systemPrompt),
	)
	if !p.runtime && (p.includeMemory || p.includeKB || p.includeGateway) {
		b.WriteString(configLoaderBlock)
	}
	if p.includeMemory {
		if p.runtime {
			b.WriteString(memoryConfigRuntime)
		} else {
			b.WriteString(memoryConfigStandalone)
		}
		fmt.Fprintf(&b, memoryNamespacesLine, script.PyValue(p.namespaces))
		b.WriteString(memoryHelpers)
	}
	if p.includeKB {
		if p.runtime {
			b.WriteString(kbBlockRuntime)
		} else {
			b.WriteString(kbBlockStandalone)
		}
	}
	if p.includeGateway {
		if p.runtime {
			b.WriteString(gatewayConfigRuntime)
		} else {
			b.WriteString(gatewayConfigStandalone)
		}
		b.WriteString(gatewayHelpers)
	}
	if len(p.customTools) > 0 {
		b.WriteString(buildCustomTools(p.customTools))
	}
	b.WriteString(modelBlock)
	fmt.Fprintf(&b, baseToolsLine, strings.Join(toolIdents(p), ", "))
	if p.runtime {
		b.WriteString(runtimeAppLine)
		b.WriteString(entrypointHeader)
		b.WriteString(turnBody(p))
		b.WriteString("    return {\"result\": answer}\n")
		b.WriteString(runtimeMain)
	} else {
		b.WriteString(runAgentHeader)
		b.WriteString(turnBody(p))
		b.WriteString("    return answer\n")
		fmt.Fprintf(&b, standaloneMain, script.PyStr(p.name+" ready (type quit to exit)"))
	}
	return b.String()
}

func buildImports(p agentParams) string {
	var lines []string
	if !p.runtime && (p.includeMemory || p.includeKB || p.includeGateway) {
		lines = append(lines, "import json")
	}
	if p.includeMemory || p.includeKB || p.includeGateway {
		lines = append(lines, "import os")
	}
	if len(lines) > 0 {
		lines = append(lines, "")
	}
	if p.includeGateway {
		lines = append(lines, "import requests")
	}
	if len(p.customTools) > 0 {
		lines = append(lines, "from strands import Agent, tool")
	} else {
		lines = append(lines, "from strands import Agent")
	}
	lines = append(lines, "from strands.models import BedrockModel")
	if p.includeGateway {
		lines = append(lines, "from strands.tools.mcp import MCPClient")
	}
	if len(p.stockTools) > 0 {
		lines = append(lines, "from strands_tools import "+strings.Join(p.stockTools, ", "))
	}
	if p.includeMemory {
		lines = append(lines, "from bedrock_agentcore.memory import MemoryClient")
	}
	if p.runtime {
		lines = append(lines, "from bedrock_agentcore.runtime import BedrockAgentCoreApp")
	}
	if p.includeGateway {
		lines = append(lines, "from mcp.client.streamable_http import streamablehttp_client")
	}
	return strings.Join(lines, "\n") + "\n"
}

func buildCustomTools(tools []customTool) string {
	var b strings.Builder
	b.WriteString("\n# Custom tools\n")
	for _, ct := range tools {
		b.WriteString("\n@tool\n")
		fmt.Fprintf(&b, "def %s(%s) -> str:\n", ct.ident, ct.params)
		fmt.Fprintf(&b, "    %s\n", script.PyMultiline(ct.description))
		for _, line := range strings.Split(strings.TrimRight(ct.code, "\n"), "\n") {
			if strings.TrimSpace(line) == "" {
				b.WriteString("\n")
				continue
			}
			b.WriteString("    " + line + "\n")
		}
	}
	return b.String()
}

func turnBody(p agentParams) string {
	var b strings.Builder
	if p.includeMemory {
		b.WriteString(turnMemoryPrelude)
	} else {
		b.WriteString(turnPlainPrelude)
	}
	if p.includeGateway {
		b.WriteString(turnGatewayAnswer)
	} else {
		b.WriteString(turnPlainAnswer)
	}
	if p.includeMemory {
		b.WriteString(turnMemorySave)
	}
	return b.String()
}

func toolIdents(p agentParams) []string {
	idents := make([]string, 0, len(p.stockTools)+len(p.customTools))
	idents = append(idents, p.stockTools...)
	for _, ct := range p.customTools {
		idents = append(idents, ct.ident)
	}
	return idents
}

func parseCustomTools(entries []map[string]any) ([]customTool, error) {
	tools := make([]customTool, 0, len(entries))
	for _, entry := range entries {
		name := strings.TrimSpace(toString(entry["name"]))
		code := strings.TrimSpace(toString(entry["code"]))
		if name == "" || code == "" {
			return nil, errors.New("each custom tool needs a name and code")
		}
		description := strings.TrimSpace(toString(entry["description"]))
		if description == "" {
			description = strings.ReplaceAll(name, "_", " ")
		}
		params := strings.TrimSpace(toString(entry["parameters"]))
		if params == "" {
			params = "query: str"
		}
		tools = append(tools, customTool{
			ident:       pyIdent(name),
			description: description,
			params:      params,
			code:        code,
		})
	}
	return tools, nil
}

func stockToolIdents(names []string, includeKB bool) []string {
	seen := make(map[string]bool)
	idents := make([]string, 0, len(names)+1)
	for _, name := range names {
		ident := pyIdent(name)
		if ident == "" || seen[ident] {
			continue
		}
		seen[ident] = true
		idents = append(idents, ident)
	}
	if includeKB && !seen["retrieve"] {
		idents = append(idents, "retrieve")
	}
	return idents
}

func namespacesOrDefault(namespaces []string) []string {
	if len(namespaces) == 0 {
		return defaultNamespaces
	}
	return namespaces
}

func modelOrDefault(modelID string) string {
	if strings.TrimSpace(modelID) == "" {
		return defaultModelID
	}
	return strings.TrimSpace(modelID)
}

func pipPackages(p agentParams) []string {
	pkgs := []string{"strands-agents"}
	if len(p.stockTools) > 0 || p.includeKB {
		pkgs = append(pkgs, "strands-agents-tools")
	}
	if p.includeMemory || p.runtime {
		pkgs = append(pkgs, "bedrock-agentcore")
	}
	if p.includeGateway {
		pkgs = append(pkgs, "mcp", "requests")
	}
	return pkgs
}

// agentResources lists the config files the standalone agent falls back
// to when env vars are not set. The runtime variant reads env only.
func agentResources(p agentParams) []string {
	var resources []string
	if p.includeMemory {
		resources = append(resources, "memory_config.json")
	}
	if p.includeKB {
		resources = append(resources, "kb_config.json")
	}
	if p.includeGateway {
		resources = append(resources, "gateway_config.json", "cognito_config.json")
	}
	return resources
}

// pyIdent maps a tool name onto a usable Python identifier.
func pyIdent(s string) string {
	if s == "" {
		return ""
	}
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	ident := sb.String()
	if ident[0] >= '0' && ident[0] <= '9' {
		ident = "_" + ident
	}
	return ident
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

func toBool(value any, fallback bool) bool {
	if b, ok := value.(bool); ok {
		return b
	}
	return fallback
}

func toFloat(value any, fallback float64) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	}
	return fallback
}

func toStringSlice(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

func toMapSlice(value any) []map[string]any {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
