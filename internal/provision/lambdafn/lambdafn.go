// Package lambdafn creates the order-lookup Lambda function the
// gateway exposes as a tool, including its execution role and the
// permission that lets the gateway invoke it.
package lambdafn

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/configfile"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/provision"
)

const (
	FunctionName = "OrderLookupFunction"
	RoleName     = "OrderLookupLambdaRole"

	basicExecutionPolicyArn = "arn:aws:iam::aws:policy/service-role/AWSLambdaBasicExecutionRole"
	propagationWait         = 10 * time.Second
)

type LambdaAPI interface {
	CreateFunction(ctx context.Context, in *lambda.CreateFunctionInput, opts ...func(*lambda.Options)) (*lambda.CreateFunctionOutput, error)
	UpdateFunctionCode(ctx context.Context, in *lambda.UpdateFunctionCodeInput, opts ...func(*lambda.Options)) (*lambda.UpdateFunctionCodeOutput, error)
	GetFunction(ctx context.Context, in *lambda.GetFunctionInput, opts ...func(*lambda.Options)) (*lambda.GetFunctionOutput, error)
	AddPermission(ctx context.Context, in *lambda.AddPermissionInput, opts ...func(*lambda.Options)) (*lambda.AddPermissionOutput, error)
}

type IAMAPI interface {
	CreateRole(ctx context.Context, in *iam.CreateRoleInput, opts ...func(*iam.Options)) (*iam.CreateRoleOutput, error)
	GetRole(ctx context.Context, in *iam.GetRoleInput, opts ...func(*iam.Options)) (*iam.GetRoleOutput, error)
	AttachRolePolicy(ctx context.Context, in *iam.AttachRolePolicyInput, opts ...func(*iam.Options)) (*iam.AttachRolePolicyOutput, error)
}

type STSAPI interface {
	GetCallerIdentity(ctx context.Context, in *sts.GetCallerIdentityInput, opts ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type Service struct {
	Lambda LambdaAPI
	IAM    IAMAPI
	STS    STSAPI
	Files  *configfile.Store
	Region string
	Out    io.Writer
	Sleep  func(time.Duration)
}

func (s *Service) sleep(d time.Duration) {
	if s.Sleep != nil {
		s.Sleep(d)
		return
	}
	time.Sleep(d)
}

type Result struct {
	FunctionArn string
	Outcome     provision.Outcome
}

// Create provisions the function and writes lambda_config.json with the
// tool schema the gateway target step inlines.
func (s *Service) Create(ctx context.Context) (*Result, error) {
	provision.Banner(s.Out, "LAMBDA FUNCTION SETUP FOR ORDER LOOKUP")
	provision.Step(s.Out, "Region: %s", s.Region)
	provision.Step(s.Out, "Function Name: %s", FunctionName)

	identity, err := s.STS.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("get caller identity: %w", err)
	}
	accountID := aws.ToString(identity.Account)

	roleArn, err := s.ensureRole(ctx)
	if err != nil {
		return nil, err
	}

	pkg, err := zipHandler()
	if err != nil {
		return nil, err
	}
	provision.Step(s.Out, "Lambda code packaged (%d bytes)", len(pkg))

	functionArn, outcome, err := s.ensureFunction(ctx, roleArn, pkg)
	if err != nil {
		return nil, err
	}

	s.addGatewayPermission(ctx, accountID)

	cfg := configfile.Lambda{
		FunctionName:  FunctionName,
		FunctionArn:   functionArn,
		LambdaRoleArn: roleArn,
		Region:        s.Region,
		ToolSchema:    ToolSchema(),
		SampleOrders:  []string{"ORD-001", "ORD-002", "ORD-003"},
	}
	if err := s.Files.Save(configfile.LambdaFile, cfg); err != nil {
		return nil, err
	}
	provision.Step(s.Out, "Configuration saved to %s", configfile.LambdaFile)
	provision.Step(s.Out, "Function ARN: %s", functionArn)
	return &Result{FunctionArn: functionArn, Outcome: outcome}, nil
}

func (s *Service) ensureRole(ctx context.Context) (string, error) {
	trust := `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"Service":"lambda.amazonaws.com"},"Action":"sts:AssumeRole"}]}`
	provision.Step(s.Out, "Creating Lambda execution role...")
	out, err := s.IAM.CreateRole(ctx, &iam.CreateRoleInput{
		RoleName:                 aws.String(RoleName),
		AssumeRolePolicyDocument: aws.String(trust),
		Description:              aws.String("Execution role for OrderLookupFunction Lambda"),
	})
	if err == nil {
		roleArn := aws.ToString(out.Role.Arn)
		provision.Step(s.Out, "Role created: %s", roleArn)
		if _, err := s.IAM.AttachRolePolicy(ctx, &iam.AttachRolePolicyInput{
			RoleName:  aws.String(RoleName),
			PolicyArn: aws.String(basicExecutionPolicyArn),
		}); err != nil {
			return "", fmt.Errorf("attach basic execution policy: %w", err)
		}
		provision.Step(s.Out, "Waiting %s for IAM propagation...", propagationWait)
		s.sleep(propagationWait)
		return roleArn, nil
	}
	var exists *iamtypes.EntityAlreadyExistsException
	if !errors.As(err, &exists) {
		return "", fmt.Errorf("create lambda role: %w", err)
	}
	provision.Step(s.Out, "Role already exists, retrieving ARN...")
	got, err := s.IAM.GetRole(ctx, &iam.GetRoleInput{RoleName: aws.String(RoleName)})
	if err != nil {
		return "", fmt.Errorf("get lambda role: %w", err)
	}
	return aws.ToString(got.Role.Arn), nil
}

func (s *Service) ensureFunction(ctx context.Context, roleArn string, pkg []byte) (string, provision.Outcome, error) {
	provision.Step(s.Out, "Creating Lambda function '%s'...", FunctionName)
	created, err := s.Lambda.CreateFunction(ctx, &lambda.CreateFunctionInput{
		FunctionName: aws.String(FunctionName),
		Runtime:      lambdatypes.RuntimePython312,
		Role:         aws.String(roleArn),
		Handler:      aws.String("lambda_function.lambda_handler"),
		Code:         &lambdatypes.FunctionCode{ZipFile: pkg},
		Description:  aws.String("Order lookup function for returns agent"),
		Timeout:      aws.Int32(30),
		MemorySize:   aws.Int32(128),
	})
	if err == nil {
		arn := aws.ToString(created.FunctionArn)
		provision.Step(s.Out, "Lambda function created: %s", arn)
		return arn, provision.Created, nil
	}
	var conflict *lambdatypes.ResourceConflictException
	if !errors.As(err, &conflict) {
		return "", "", fmt.Errorf("create function: %w", err)
	}
	provision.Step(s.Out, "Function already exists, updating code...")
	if _, err := s.Lambda.UpdateFunctionCode(ctx, &lambda.UpdateFunctionCodeInput{
		FunctionName: aws.String(FunctionName),
		ZipFile:      pkg,
	}); err != nil {
		return "", "", fmt.Errorf("update function code: %w", err)
	}
	got, err := s.Lambda.GetFunction(ctx, &lambda.GetFunctionInput{FunctionName: aws.String(FunctionName)})
	if err != nil {
		return "", "", fmt.Errorf("get function: %w", err)
	}
	arn := aws.ToString(got.Configuration.FunctionArn)
	provision.Step(s.Out, "Lambda function updated: %s", arn)
	return arn, provision.AlreadyExisted, nil
}

// addGatewayPermission grants the gateway service principal invoke
// rights. Missing gateway_role_config.json only means the gateway step
// has not run yet, so it is a notice, not an error.
func (s *Service) addGatewayPermission(ctx context.Context, accountID string) {
	var role configfile.GatewayRole
	if err := s.Files.Load(configfile.GatewayRoleFile, &role); err != nil {
		provision.Step(s.Out, "%s not found - skipping permission setup", configfile.GatewayRoleFile)
		return
	}
	_, err := s.Lambda.AddPermission(ctx, &lambda.AddPermissionInput{
		FunctionName: aws.String(FunctionName),
		StatementId:  aws.String("AllowGatewayInvoke"),
		Action:       aws.String("lambda:InvokeFunction"),
		Principal:    aws.String("bedrock-agentcore.amazonaws.com"),
		SourceArn:    aws.String(fmt.Sprintf("arn:aws:bedrock-agentcore:%s:%s:gateway/*", s.Region, accountID)),
	})
	if err != nil {
		var conflict *lambdatypes.ResourceConflictException
		if errors.As(err, &conflict) {
			provision.Step(s.Out, "Permission already exists")
			return
		}
		provision.Step(s.Out, "Warning: add permission failed: %v", err)
		return
	}
	provision.Step(s.Out, "Gateway invoke permission added")
}

// ToolSchema is the MCP tool definition attached to the gateway target.
func ToolSchema() []map[string]any {
	return []map[string]any{
		{
			"name":        "lookup_order",
			"description": "Look up order details by order ID. Returns order information including product name, purchase date, amount, and return eligibility status.",
			"inputSchema": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"order_id": map[string]any{
						"type":        "string",
						"description": "The order ID to look up (e.g., ORD-001, ORD-002, ORD-003)",
					},
				},
				"required": []any{"order_id"},
			},
		},
	}
}

func zipHandler() ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("lambda_function.py")
	if err != nil {
		return nil, fmt.Errorf("zip entry: %w", err)
	}
	if _, err := f.Write([]byte(handlerSource)); err != nil {
		return nil, fmt.Errorf("zip write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zip close: %w", err)
	}
	return buf.Bytes(), nil
}
