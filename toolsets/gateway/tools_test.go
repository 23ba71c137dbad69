package gateway

import (
	"context"
	"strings"
	"testing"

	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/config"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/mcp"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/script"
)

func newTestToolset(t *testing.T) *Toolset {
	t.Helper()
	cfg := config.DefaultConfig()
	toolset := New()
	if err := toolset.Init(mcp.ToolsetContext{
		Config:   &cfg,
		Renderer: script.NewRenderer(),
	}); err != nil {
		t.Fatalf("init: %v", err)
	}
	return toolset
}

func renderedScript(t *testing.T, result mcp.ToolResult) (code, filename, instructions string) {
	t.Helper()
	data, ok := result.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected map result, got %#v", result.Data)
	}
	code, _ = data["code"].(string)
	filename, _ = data["filename"].(string)
	instructions, _ = data["instructions"].(string)
	if code == "" || filename == "" || instructions == "" {
		t.Fatalf("incomplete script payload: %#v", data)
	}
	return code, filename, instructions
}

func createArgs() map[string]any {
	return map[string]any{
		"name":                  "Customer Support Gateway",
		"role_arn":              "arn:aws:iam::123456789012:role/GatewayRole",
		"cognito_client_id":     "client-abc",
		"cognito_discovery_url": "https://cognito-idp.us-west-2.amazonaws.com/pool/.well-known/openid-configuration",
		"description":           "Support tools",
		"region":                "us-east-1",
	}
}

func TestHandleGatewayCreate(t *testing.T) {
	toolset := newTestToolset(t)
	result, err := toolset.handleGatewayCreate(context.Background(), mcp.ToolRequest{Arguments: createArgs()})
	if err != nil {
		t.Fatalf("handleGatewayCreate: %v", err)
	}
	code, filename, instructions := renderedScript(t, result)
	for _, want := range []string{
		"'Customer Support Gateway'",
		"customJWTAuthorizer",
		"cognito_config.json",
		"gateway_role_config.json",
		"protocolType='MCP'",
		"authorizerType='CUSTOM_JWT'",
		"roleArn=role_config[\"role_arn\"]",
		`"gateway_id": gateway_id`,
		"gateway_config.json",
		"region_name='us-east-1'",
	} {
		if !strings.Contains(code, want) {
			t.Fatalf("generated code missing %q:\n%s", want, code)
		}
	}
	// The script reads the role and Cognito settings from config files,
	// so the raw argument values must not leak into the code.
	if strings.Contains(code, "123456789012") || strings.Contains(code, "client-abc") {
		t.Fatalf("argument values unexpectedly inlined:\n%s", code)
	}
	if filename != "customer_support_gateway_gateway_create.py" {
		t.Fatalf("unexpected filename: %s", filename)
	}
	if !strings.Contains(instructions, "Customer Support Gateway") {
		t.Fatalf("unexpected instructions: %s", instructions)
	}
}

func TestHandleGatewayCreateRejectsNonMCP(t *testing.T) {
	toolset := newTestToolset(t)
	args := createArgs()
	args["protocol_type"] = "HTTP"
	_, err := toolset.handleGatewayCreate(context.Background(), mcp.ToolRequest{Arguments: args})
	if err == nil || !strings.Contains(err.Error(), "Only MCP protocol") {
		t.Fatalf("expected protocol error, got %v", err)
	}
}

func TestHandleGatewayCreateValidation(t *testing.T) {
	toolset := newTestToolset(t)
	for _, missing := range []string{"name", "role_arn", "cognito_client_id", "cognito_discovery_url"} {
		args := createArgs()
		delete(args, missing)
		_, err := toolset.handleGatewayCreate(context.Background(), mcp.ToolRequest{Arguments: args})
		if err == nil {
			t.Fatalf("expected error for missing %s", missing)
		}
	}
}

func TestHandleGatewayAddLambdaTarget(t *testing.T) {
	toolset := newTestToolset(t)
	result, err := toolset.handleGatewayAddLambdaTarget(context.Background(), mcp.ToolRequest{
		Arguments: map[string]any{
			"gateway_id":  "gw-123",
			"target_name": "CreateRefundRequest",
			"lambda_arn":  "arn:aws:lambda:us-west-2:123456789012:function:refunds",
			"tool_schema": []any{
				map[string]any{
					"name":        "create_refund_request",
					"description": "Create a refund request",
					"inputSchema": map[string]any{
						"type":       "object",
						"properties": map[string]any{"order_id": map[string]any{"type": "string"}},
					},
				},
			},
			"target_description": "Refund operations",
		},
	})
	if err != nil {
		t.Fatalf("handleGatewayAddLambdaTarget: %v", err)
	}
	code, filename, _ := renderedScript(t, result)
	for _, want := range []string{
		"lambda_arn = 'arn:aws:lambda:us-west-2:123456789012:function:refunds'",
		"target_name = 'CreateRefundRequest'",
		"target_description = 'Refund operations'",
		`"name": "create_refund_request"`,
		`"inlinePayload": tool_schema`,
		"GATEWAY_IAM_ROLE",
		"create_gateway_target",
		"gateway_config['gateway_id']",
	} {
		if !strings.Contains(code, want) {
			t.Fatalf("generated code missing %q:\n%s", want, code)
		}
	}
	if strings.Contains(code, "gw-123") {
		t.Fatalf("gateway_id should come from config file, not be inlined:\n%s", code)
	}
	if filename != "add_createrefundrequest_target.py" {
		t.Fatalf("unexpected filename: %s", filename)
	}
}

func TestHandleGatewayAddLambdaTargetValidation(t *testing.T) {
	toolset := newTestToolset(t)
	base := map[string]any{
		"gateway_id":  "gw-123",
		"target_name": "T",
		"lambda_arn":  "arn:aws:lambda:us-west-2:1:function:f",
		"tool_schema": []any{map[string]any{"name": "t"}},
	}
	for _, missing := range []string{"gateway_id", "target_name", "lambda_arn", "tool_schema"} {
		args := map[string]any{}
		for k, v := range base {
			args[k] = v
		}
		delete(args, missing)
		_, err := toolset.handleGatewayAddLambdaTarget(context.Background(), mcp.ToolRequest{Arguments: args})
		if err == nil {
			t.Fatalf("expected error for missing %s", missing)
		}
	}
}

func TestHandleGatewayListTargets(t *testing.T) {
	toolset := newTestToolset(t)
	result, err := toolset.handleGatewayListTargets(context.Background(), mcp.ToolRequest{
		Arguments: map[string]any{"gateway_id": "gw-123"},
	})
	if err != nil {
		t.Fatalf("handleGatewayListTargets: %v", err)
	}
	code, filename, _ := renderedScript(t, result)
	for _, want := range []string{
		"list_gateway_targets",
		"gateway_config['gateway_id']",
		"target.get('targetId', 'N/A')",
	} {
		if !strings.Contains(code, want) {
			t.Fatalf("generated code missing %q:\n%s", want, code)
		}
	}
	if strings.Contains(code, "gw-123") {
		t.Fatalf("gateway_id should come from config file, not be inlined:\n%s", code)
	}
	if filename != "list_gateway_targets.py" {
		t.Fatalf("unexpected filename: %s", filename)
	}
}

func TestHandleGatewayDeleteTarget(t *testing.T) {
	toolset := newTestToolset(t)
	result, err := toolset.handleGatewayDeleteTarget(context.Background(), mcp.ToolRequest{
		Arguments: map[string]any{"gateway_id": "gw-123", "target_id": "TGT123"},
	})
	if err != nil {
		t.Fatalf("handleGatewayDeleteTarget: %v", err)
	}
	code, filename, _ := renderedScript(t, result)
	for _, want := range []string{
		"if not os.path.exists('gateway_config.json'):",
		"exit(0)",
		"target_id = 'TGT123'",
		"delete_gateway_target",
		"resourcenotfound",
		"RERUNNABLE",
	} {
		if !strings.Contains(code, want) {
			t.Fatalf("generated code missing %q:\n%s", want, code)
		}
	}
	if filename != "delete_gateway_target.py" {
		t.Fatalf("unexpected filename: %s", filename)
	}
}

func TestHandleGatewayDelete(t *testing.T) {
	toolset := newTestToolset(t)
	result, err := toolset.handleGatewayDelete(context.Background(), mcp.ToolRequest{
		Arguments: map[string]any{"gateway_id": "gw-123", "region": "us-west-2"},
	})
	if err != nil {
		t.Fatalf("handleGatewayDelete: %v", err)
	}
	code, filename, _ := renderedScript(t, result)
	for _, want := range []string{
		`print("=" * 80)`,
		"Step 1: Deleting gateway targets...",
		"Step 1.5: Verifying targets are deleted...",
		"Step 2: Deleting gateway...",
		"time.sleep(5)",
		"delete_gateway(",
		"RERUNNABLE",
		"region_name='us-west-2'",
	} {
		if !strings.Contains(code, want) {
			t.Fatalf("generated code missing %q:\n%s", want, code)
		}
	}
	if filename != "delete_gateway.py" {
		t.Fatalf("unexpected filename: %s", filename)
	}
}

func TestGatewayScriptsSpecialCharacters(t *testing.T) {
	toolset := newTestToolset(t)
	args := createArgs()
	args["name"] = `Gateway "quoted' name`
	result, err := toolset.handleGatewayCreate(context.Background(), mcp.ToolRequest{Arguments: args})
	if err != nil {
		t.Fatalf("handleGatewayCreate: %v", err)
	}
	code, filename, _ := renderedScript(t, result)
	if !strings.Contains(code, `'Gateway "quoted\' name'`) {
		t.Fatalf("name not escaped as Python literal:\n%s", code)
	}
	if strings.ContainsAny(filename, ` "'`) {
		t.Fatalf("filename not sanitized: %s", filename)
	}
	if !strings.HasSuffix(filename, "_gateway_create.py") {
		t.Fatalf("unexpected filename: %s", filename)
	}
}

func TestRegisterTools(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := mcp.NewRegistry(&cfg)
	toolset := newTestToolset(t)
	if err := toolset.Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	for _, name := range []string{
		"agentcore_gateway_create",
		"agentcore_gateway_add_lambda_target",
		"agentcore_gateway_list_targets",
		"agentcore_gateway_delete_target",
		"agentcore_gateway_delete",
	} {
		if _, ok := reg.Get(name); !ok {
			t.Fatalf("tool %s not registered", name)
		}
	}
}

func TestInitRequiresRenderer(t *testing.T) {
	toolset := New()
	if err := toolset.Init(mcp.ToolsetContext{}); err == nil {
		t.Fatalf("expected error for missing renderer")
	}
}
