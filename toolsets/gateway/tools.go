package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/mcp"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/script"
)

func (t *Toolset) handleGatewayCreate(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	name := strings.TrimSpace(toString(req.Arguments["name"]))
	if name == "" {
		err := errors.New("name is required")
		return errorResult(err), err
	}
	// The generated script reads the role ARN and Cognito details from
	// the config files written during provisioning, but the caller must
	// still supply them so the tool surface matches the setup flow.
	if toString(req.Arguments["role_arn"]) == "" {
		err := errors.New("role_arn is required")
		return errorResult(err), err
	}
	if toString(req.Arguments["cognito_client_id"]) == "" {
		err := errors.New("cognito_client_id is required")
		return errorResult(err), err
	}
	if toString(req.Arguments["cognito_discovery_url"]) == "" {
		err := errors.New("cognito_discovery_url is required")
		return errorResult(err), err
	}
	protocolType := toString(req.Arguments["protocol_type"])
	if protocolType == "" {
		protocolType = "MCP"
	}
	if protocolType != "MCP" {
		err := errors.New("Only MCP protocol is supported in this handler")
		return errorResult(err), err
	}
	authorizerType := toString(req.Arguments["authorizer_type"])
	if authorizerType == "" {
		authorizerType = "CUSTOM_JWT"
	}
	description := toString(req.Arguments["description"])
	region := t.resolveRegion(req)

	code := fmt.Sprintf(createScript,
		script.PyStr(region),
		script.PyStr(name),
		script.PyStr(protocolType),
		script.PyStr(authorizerType),
		script.PyStr(description),
		script.PyStr(name),
		script.PyStr(region),
	)
	result := script.Script{
		Code:         code,
		Filename:     script.SafeName(name) + "_gateway_create.py",
		Instructions: fmt.Sprintf("Ensure cognito_config.json and gateway_role_config.json exist, then run this script to create the AgentCore Gateway '%s'", name),
	}
	return mcp.ToolResult{
		Data:     t.ctx.Renderer.Render(result),
		Metadata: mcp.ToolMetadata{Resources: []string{"cognito_config.json", "gateway_role_config.json", "gateway_config.json"}},
	}, nil
}

func (t *Toolset) handleGatewayAddLambdaTarget(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	if toString(req.Arguments["gateway_id"]) == "" {
		err := errors.New("gateway_id is required")
		return errorResult(err), err
	}
	targetName := strings.TrimSpace(toString(req.Arguments["target_name"]))
	if targetName == "" {
		err := errors.New("target_name is required")
		return errorResult(err), err
	}
	lambdaArn := strings.TrimSpace(toString(req.Arguments["lambda_arn"]))
	if lambdaArn == "" {
		err := errors.New("lambda_arn is required")
		return errorResult(err), err
	}
	toolSchema := req.Arguments["tool_schema"]
	if toolSchema == nil {
		err := errors.New("tool_schema is required")
		return errorResult(err), err
	}
	targetDescription := toString(req.Arguments["target_description"])
	region := t.resolveRegion(req)

	code := fmt.Sprintf(addTargetScript,
		script.PyStr(region),
		script.PyStr(lambdaArn),
		script.PyStr(targetName),
		script.PyStr(targetDescription),
		script.PyIndented(toolSchema),
	)
	result := script.Script{
		Code:         code,
		Filename:     fmt.Sprintf("add_%s_target.py", script.SafeName(targetName)),
		Instructions: fmt.Sprintf("Ensure gateway_config.json exists, then run this script to add Lambda target '%s' to the gateway", targetName),
	}
	return mcp.ToolResult{
		Data:     t.ctx.Renderer.Render(result),
		Metadata: mcp.ToolMetadata{Resources: []string{"gateway_config.json"}},
	}, nil
}

func (t *Toolset) handleGatewayListTargets(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	if toString(req.Arguments["gateway_id"]) == "" {
		err := errors.New("gateway_id is required")
		return errorResult(err), err
	}
	region := t.resolveRegion(req)

	code := fmt.Sprintf(listTargetsScript, script.PyStr(region))
	result := script.Script{
		Code:         code,
		Filename:     "list_gateway_targets.py",
		Instructions: "Ensure gateway_config.json exists, then run this script to list all gateway targets",
	}
	return mcp.ToolResult{
		Data:     t.ctx.Renderer.Render(result),
		Metadata: mcp.ToolMetadata{Resources: []string{"gateway_config.json"}},
	}, nil
}

func (t *Toolset) handleGatewayDeleteTarget(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	if toString(req.Arguments["gateway_id"]) == "" {
		err := errors.New("gateway_id is required")
		return errorResult(err), err
	}
	targetID := strings.TrimSpace(toString(req.Arguments["target_id"]))
	if targetID == "" {
		err := errors.New("target_id is required")
		return errorResult(err), err
	}
	region := t.resolveRegion(req)

	code := fmt.Sprintf(deleteTargetScript,
		script.PyStr(region),
		script.PyStr(targetID),
	)
	result := script.Script{
		Code:         code,
		Filename:     "delete_gateway_target.py",
		Instructions: fmt.Sprintf("Ensure gateway_config.json exists, then run this script to delete target '%s'", targetID),
	}
	return mcp.ToolResult{
		Data:     t.ctx.Renderer.Render(result),
		Metadata: mcp.ToolMetadata{Resources: []string{"gateway_config.json"}},
	}, nil
}

func (t *Toolset) handleGatewayDelete(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	if toString(req.Arguments["gateway_id"]) == "" {
		err := errors.New("gateway_id is required")
		return errorResult(err), err
	}
	region := t.resolveRegion(req)

	code := fmt.Sprintf(deleteGatewayScript, script.PyStr(region))
	result := script.Script{
		Code:         code,
		Filename:     "delete_gateway.py",
		Instructions: "Ensure gateway_config.json exists, then run this script to delete the AgentCore Gateway and all its targets",
	}
	return mcp.ToolResult{
		Data:     t.ctx.Renderer.Render(result),
		Metadata: mcp.ToolMetadata{Resources: []string{"gateway_config.json"}},
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
