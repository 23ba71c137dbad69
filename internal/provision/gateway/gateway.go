// Package gateway provisions the AgentCore Gateway: create with JWT
// auth, attach the Lambda target, list targets, and the two-phase
// delete that drains targets before removing the gateway itself.
package gateway

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcorecontrol"
	controltypes "github.com/aws/aws-sdk-go-v2/service/bedrockagentcorecontrol/types"
	"sigs.k8s.io/yaml"

	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/configfile"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/provision"
)

const (
	GatewayName        = "ReturnsRefundsGateway"
	GatewayDescription = "Gateway for Returns and Refunds Agent with order lookup capabilities"
	TargetName         = "OrderLookup"
	TargetDescription  = "Lambda target for looking up order details and return eligibility"

	drainRecheckWait = 5 * time.Second
)

type API interface {
	CreateGateway(ctx context.Context, in *bedrockagentcorecontrol.CreateGatewayInput, opts ...func(*bedrockagentcorecontrol.Options)) (*bedrockagentcorecontrol.CreateGatewayOutput, error)
	CreateGatewayTarget(ctx context.Context, in *bedrockagentcorecontrol.CreateGatewayTargetInput, opts ...func(*bedrockagentcorecontrol.Options)) (*bedrockagentcorecontrol.CreateGatewayTargetOutput, error)
	ListGatewayTargets(ctx context.Context, in *bedrockagentcorecontrol.ListGatewayTargetsInput, opts ...func(*bedrockagentcorecontrol.Options)) (*bedrockagentcorecontrol.ListGatewayTargetsOutput, error)
	DeleteGatewayTarget(ctx context.Context, in *bedrockagentcorecontrol.DeleteGatewayTargetInput, opts ...func(*bedrockagentcorecontrol.Options)) (*bedrockagentcorecontrol.DeleteGatewayTargetOutput, error)
	DeleteGateway(ctx context.Context, in *bedrockagentcorecontrol.DeleteGatewayInput, opts ...func(*bedrockagentcorecontrol.Options)) (*bedrockagentcorecontrol.DeleteGatewayOutput, error)
}

type Service struct {
	Control API
	Files   *configfile.Store
	Region  string
	Out     io.Writer
	Sleep   func(time.Duration)
}

func (s *Service) sleep(d time.Duration) {
	if s.Sleep != nil {
		s.Sleep(d)
		return
	}
	time.Sleep(d)
}

// Create provisions the gateway using the cognito and gateway-role
// configs and writes gateway_config.json. The cognito client details
// are copied in so the invoke flow only needs one file.
func (s *Service) Create(ctx context.Context) (*configfile.Gateway, error) {
	provision.Banner(s.Out, "AGENTCORE GATEWAY SETUP")

	var cognito configfile.Cognito
	if err := s.Files.Load(configfile.CognitoFile, &cognito); err != nil {
		if configfile.IsNotFound(err) {
			return nil, fmt.Errorf("%s not found: run create-cognito first", configfile.CognitoFile)
		}
		return nil, err
	}
	provision.Step(s.Out, "Loaded Cognito config (client %s)", cognito.ClientID)

	var role configfile.GatewayRole
	if err := s.Files.Load(configfile.GatewayRoleFile, &role); err != nil {
		if configfile.IsNotFound(err) {
			return nil, fmt.Errorf("%s not found: run create-gateway-role first", configfile.GatewayRoleFile)
		}
		return nil, err
	}
	provision.Step(s.Out, "Loaded gateway role config (%s)", role.RoleArn)

	provision.Step(s.Out, "Creating AgentCore Gateway '%s'...", GatewayName)
	out, err := s.Control.CreateGateway(ctx, &bedrockagentcorecontrol.CreateGatewayInput{
		Name:           aws.String(GatewayName),
		RoleArn:        aws.String(role.RoleArn),
		ProtocolType:   controltypes.GatewayProtocolTypeMcp,
		AuthorizerType: controltypes.AuthorizerTypeCustomJwt,
		AuthorizerConfiguration: &controltypes.AuthorizerConfigurationMemberCustomJWTAuthorizer{
			Value: controltypes.CustomJWTAuthorizerConfiguration{
				AllowedClients: []string{cognito.ClientID},
				DiscoveryUrl:   aws.String(cognito.DiscoveryURL),
			},
		},
		Description: aws.String(GatewayDescription),
	})
	if err != nil {
		return nil, fmt.Errorf("create gateway: %w", err)
	}

	cfg := configfile.Gateway{
		ID:                  aws.ToString(out.GatewayId),
		GatewayID:           aws.ToString(out.GatewayId),
		GatewayURL:          aws.ToString(out.GatewayUrl),
		GatewayArn:          aws.ToString(out.GatewayArn),
		Name:                GatewayName,
		Region:              s.Region,
		CognitoClientID:     cognito.ClientID,
		CognitoClientSecret: cognito.ClientSecret,
		TokenEndpoint:       cognito.TokenEndpoint,
	}
	if err := s.Files.Save(configfile.GatewayFile, cfg); err != nil {
		return nil, err
	}
	provision.Step(s.Out, "Gateway created: %s", cfg.GatewayID)
	provision.Step(s.Out, "Gateway URL: %s", cfg.GatewayURL)
	provision.Step(s.Out, "Configuration saved to %s", configfile.GatewayFile)
	return &cfg, nil
}

// AddLambdaTarget attaches the order-lookup Lambda as a gateway target.
// schemaFile optionally overrides the tool schema from lambda_config;
// it accepts YAML or JSON.
func (s *Service) AddLambdaTarget(ctx context.Context, schemaFile string) (string, error) {
	provision.Banner(s.Out, "ADD LAMBDA TARGET TO GATEWAY")

	var gateway configfile.Gateway
	if err := s.Files.Load(configfile.GatewayFile, &gateway); err != nil {
		if configfile.IsNotFound(err) {
			return "", fmt.Errorf("%s not found: run create-gateway first", configfile.GatewayFile)
		}
		return "", err
	}
	var lambdaCfg configfile.Lambda
	if err := s.Files.Load(configfile.LambdaFile, &lambdaCfg); err != nil {
		if configfile.IsNotFound(err) {
			return "", fmt.Errorf("%s not found: run create-lambda first", configfile.LambdaFile)
		}
		return "", err
	}

	toolSchema := lambdaCfg.ToolSchema
	if schemaFile != "" {
		loaded, err := LoadToolSchemaFile(schemaFile)
		if err != nil {
			return "", err
		}
		toolSchema = loaded
		provision.Step(s.Out, "Tool schema loaded from %s (%d tool(s))", schemaFile, len(toolSchema))
	}
	if len(toolSchema) == 0 {
		return "", fmt.Errorf("tool schema is empty")
	}

	definitions, err := toolDefinitions(toolSchema)
	if err != nil {
		return "", err
	}

	provision.Step(s.Out, "Adding Lambda target '%s' to gateway %s...", TargetName, gateway.GatewayID)
	provision.Step(s.Out, "Lambda ARN: %s", lambdaCfg.FunctionArn)
	out, err := s.Control.CreateGatewayTarget(ctx, &bedrockagentcorecontrol.CreateGatewayTargetInput{
		GatewayIdentifier: aws.String(gateway.GatewayID),
		Name:              aws.String(TargetName),
		Description:       aws.String(TargetDescription),
		TargetConfiguration: &controltypes.TargetConfigurationMemberMcp{
			Value: &controltypes.McpTargetConfigurationMemberLambda{
				Value: controltypes.McpLambdaTargetConfiguration{
					LambdaArn: aws.String(lambdaCfg.FunctionArn),
					ToolSchema: &controltypes.ToolSchemaMemberInlinePayload{
						Value: definitions,
					},
				},
			},
		},
		CredentialProviderConfigurations: []controltypes.CredentialProviderConfiguration{
			{CredentialProviderType: controltypes.CredentialProviderTypeGatewayIamRole},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create gateway target: %w", err)
	}

	targetID := aws.ToString(out.TargetId)
	gateway.TargetID = targetID
	gateway.TargetName = TargetName
	gateway.LambdaArn = lambdaCfg.FunctionArn
	if err := s.Files.Save(configfile.GatewayFile, gateway); err != nil {
		return "", err
	}
	provision.Step(s.Out, "Lambda target added: %s", targetID)
	provision.Step(s.Out, "Configuration updated")
	return targetID, nil
}

// ListTargets prints every target attached to the gateway along with
// its tools.
func (s *Service) ListTargets(ctx context.Context) error {
	var gateway configfile.Gateway
	if err := s.Files.Load(configfile.GatewayFile, &gateway); err != nil {
		if configfile.IsNotFound(err) {
			return fmt.Errorf("%s not found: run create-gateway first", configfile.GatewayFile)
		}
		return err
	}

	provision.Banner(s.Out, "LIST GATEWAY TARGETS")
	provision.Step(s.Out, "Gateway ID: %s", gateway.GatewayID)

	targets, err := s.listAll(ctx, gateway.GatewayID)
	if err != nil {
		return err
	}
	provision.Step(s.Out, "Found %d target(s)", len(targets))
	var lambdaCfg configfile.Lambda
	haveLambdaCfg := s.Files.Load(configfile.LambdaFile, &lambdaCfg) == nil
	toolCount := 0
	for i, target := range targets {
		provision.Step(s.Out, "%d. %s", i+1, aws.ToString(target.Name))
		provision.Step(s.Out, "   Target ID:   %s", aws.ToString(target.TargetId))
		provision.Step(s.Out, "   Status:      %s", target.Status)
		provision.Step(s.Out, "   Description: %s", aws.ToString(target.Description))
		// The list API does not return the target configuration, so
		// the drill-down comes from the saved config files.
		if aws.ToString(target.TargetId) == gateway.TargetID && gateway.LambdaArn != "" {
			provision.Step(s.Out, "   Type:        Lambda")
			provision.Step(s.Out, "   Lambda ARN:  %s", gateway.LambdaArn)
			if haveLambdaCfg {
				provision.Step(s.Out, "   Tools:       %d tool(s)", len(lambdaCfg.ToolSchema))
				for _, tool := range lambdaCfg.ToolSchema {
					name, _ := tool["name"].(string)
					description, _ := tool["description"].(string)
					provision.Step(s.Out, "                - %s: %s", name, description)
					toolCount++
				}
			}
		}
	}
	provision.Step(s.Out, "Total targets: %d, active tools: %d", len(targets), toolCount)
	return nil
}

func (s *Service) listAll(ctx context.Context, gatewayID string) ([]controltypes.TargetSummary, error) {
	var targets []controltypes.TargetSummary
	var nextToken *string
	for {
		out, err := s.Control.ListGatewayTargets(ctx, &bedrockagentcorecontrol.ListGatewayTargetsInput{
			GatewayIdentifier: aws.String(gatewayID),
			NextToken:         nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("list gateway targets: %w", err)
		}
		targets = append(targets, out.Items...)
		if out.NextToken == nil {
			return targets, nil
		}
		nextToken = out.NextToken
	}
}

// Delete drains every target, verifies none remain (with one bounded
// wait-and-recheck), deletes the gateway, and removes
// gateway_config.json. Missing config or a gone gateway is success.
func (s *Service) Delete(ctx context.Context) (provision.Outcome, error) {
	var gateway configfile.Gateway
	if err := s.Files.Load(configfile.GatewayFile, &gateway); err != nil {
		if configfile.IsNotFound(err) {
			provision.Step(s.Out, "%s not found - nothing to delete", configfile.GatewayFile)
			return provision.AlreadyAbsent, nil
		}
		return "", err
	}

	provision.Banner(s.Out, "DELETE AGENTCORE GATEWAY")
	provision.Step(s.Out, "Gateway ID: %s", gateway.GatewayID)

	targets, err := s.listAll(ctx, gateway.GatewayID)
	if err != nil {
		if provision.IsNotFound(err) {
			provision.Step(s.Out, "Gateway already deleted")
			if err := s.Files.Remove(configfile.GatewayFile); err != nil {
				return "", err
			}
			return provision.AlreadyAbsent, nil
		}
		return "", err
	}

	for _, target := range targets {
		targetID := aws.ToString(target.TargetId)
		provision.Step(s.Out, "Deleting target %s (%s)...", targetID, aws.ToString(target.Name))
		_, err := s.Control.DeleteGatewayTarget(ctx, &bedrockagentcorecontrol.DeleteGatewayTargetInput{
			GatewayIdentifier: aws.String(gateway.GatewayID),
			TargetId:          aws.String(targetID),
		})
		if err != nil && !provision.IsNotFound(err) {
			return "", fmt.Errorf("delete target %s: %w", targetID, err)
		}
	}

	remaining, err := s.listAll(ctx, gateway.GatewayID)
	if err != nil && !provision.IsNotFound(err) {
		return "", err
	}
	if len(remaining) > 0 {
		provision.Step(s.Out, "%d target(s) still attached, waiting %s and rechecking...", len(remaining), drainRecheckWait)
		s.sleep(drainRecheckWait)
		remaining, err = s.listAll(ctx, gateway.GatewayID)
		if err != nil && !provision.IsNotFound(err) {
			return "", err
		}
		if len(remaining) > 0 {
			return "", fmt.Errorf("%d target(s) still attached to gateway %s, retry later", len(remaining), gateway.GatewayID)
		}
	}

	provision.Step(s.Out, "Deleting gateway %s...", gateway.GatewayID)
	_, err = s.Control.DeleteGateway(ctx, &bedrockagentcorecontrol.DeleteGatewayInput{
		GatewayIdentifier: aws.String(gateway.GatewayID),
	})
	if err != nil && !provision.IsNotFound(err) {
		return "", fmt.Errorf("delete gateway: %w", err)
	}
	if err := s.Files.Remove(configfile.GatewayFile); err != nil {
		return "", err
	}
	provision.Step(s.Out, "Gateway deleted and %s removed", configfile.GatewayFile)
	return provision.Deleted, nil
}

// LoadToolSchemaFile reads a tool schema from a YAML or JSON file.
func LoadToolSchemaFile(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	var schema []map[string]any
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parse schema file %s: %w", path, err)
	}
	return schema, nil
}

// toolDefinitions converts the JSON-shaped tool schema persisted in
// lambda_config.json into the typed inline payload the control plane
// expects.
func toolDefinitions(schema []map[string]any) ([]controltypes.ToolDefinition, error) {
	definitions := make([]controltypes.ToolDefinition, 0, len(schema))
	for _, tool := range schema {
		name, _ := tool["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("tool schema entry missing name")
		}
		def := controltypes.ToolDefinition{Name: aws.String(name)}
		if description, ok := tool["description"].(string); ok {
			def.Description = aws.String(description)
		}
		if input, ok := tool["inputSchema"].(map[string]any); ok {
			converted, err := schemaDefinition(input)
			if err != nil {
				return nil, fmt.Errorf("tool %s: %w", name, err)
			}
			def.InputSchema = converted
		}
		definitions = append(definitions, def)
	}
	return definitions, nil
}

func schemaDefinition(schema map[string]any) (*controltypes.SchemaDefinition, error) {
	def := &controltypes.SchemaDefinition{}
	typeName, _ := schema["type"].(string)
	switch typeName {
	case "string":
		def.Type = controltypes.SchemaTypeString
	case "object":
		def.Type = controltypes.SchemaTypeObject
	case "number":
		def.Type = controltypes.SchemaTypeNumber
	case "integer":
		def.Type = controltypes.SchemaTypeInteger
	case "boolean":
		def.Type = controltypes.SchemaTypeBoolean
	case "array":
		def.Type = controltypes.SchemaTypeArray
	default:
		return nil, fmt.Errorf("unsupported schema type %q", typeName)
	}
	if description, ok := schema["description"].(string); ok {
		def.Description = aws.String(description)
	}
	if properties, ok := schema["properties"].(map[string]any); ok {
		def.Properties = make(map[string]controltypes.SchemaDefinition, len(properties))
		for key, value := range properties {
			prop, ok := value.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("property %s is not an object", key)
			}
			converted, err := schemaDefinition(prop)
			if err != nil {
				return nil, fmt.Errorf("property %s: %w", key, err)
			}
			def.Properties[key] = *converted
		}
	}
	if required, ok := schema["required"].([]any); ok {
		for _, item := range required {
			if field, ok := item.(string); ok {
				def.Required = append(def.Required, field)
			}
		}
	}
	if items, ok := schema["items"].(map[string]any); ok {
		converted, err := schemaDefinition(items)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		def.Items = converted
	}
	return def, nil
}
