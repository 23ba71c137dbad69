// Package iamrole creates the IAM roles the gateway and the runtime
// assume, with the get-or-create fallback on EntityAlreadyExists.
package iamrole

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/configfile"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/provision"
)

const (
	GatewayRoleName   = "ReturnsAgentGatewayRole"
	GatewayPolicyName = "ReturnsAgentGatewayPolicy"
	RuntimeRoleName   = "ReturnsAgentRuntimeExecutionRole"
	RuntimePolicyName = "ReturnsAgentRuntimePolicy"

	propagationWait = 10 * time.Second
)

type IAMAPI interface {
	CreateRole(ctx context.Context, in *iam.CreateRoleInput, opts ...func(*iam.Options)) (*iam.CreateRoleOutput, error)
	GetRole(ctx context.Context, in *iam.GetRoleInput, opts ...func(*iam.Options)) (*iam.GetRoleOutput, error)
	CreatePolicy(ctx context.Context, in *iam.CreatePolicyInput, opts ...func(*iam.Options)) (*iam.CreatePolicyOutput, error)
	AttachRolePolicy(ctx context.Context, in *iam.AttachRolePolicyInput, opts ...func(*iam.Options)) (*iam.AttachRolePolicyOutput, error)
}

type STSAPI interface {
	GetCallerIdentity(ctx context.Context, in *sts.GetCallerIdentityInput, opts ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type Service struct {
	IAM    IAMAPI
	STS    STSAPI
	Files  *configfile.Store
	Region string
	Out    io.Writer
	// Sleep is the IAM propagation wait, replaced in tests.
	Sleep func(time.Duration)
}

func (s *Service) sleep(d time.Duration) {
	if s.Sleep != nil {
		s.Sleep(d)
		return
	}
	time.Sleep(d)
}

type Result struct {
	RoleArn   string
	PolicyArn string
	AccountID string
	Outcome   provision.Outcome
}

// CreateGatewayRole provisions the role the gateway assumes to invoke
// Lambda targets and writes gateway_role_config.json.
func (s *Service) CreateGatewayRole(ctx context.Context) (*Result, error) {
	provision.Banner(s.Out, "IAM ROLE SETUP FOR AGENTCORE GATEWAY")
	provision.Step(s.Out, "Region: %s", s.Region)
	provision.Step(s.Out, "Role Name: %s", GatewayRoleName)

	accountID, err := s.accountID(ctx)
	if err != nil {
		return nil, err
	}

	roleArn, outcome, err := s.ensureRole(ctx, GatewayRoleName,
		"IAM role for AgentCore Gateway to invoke Lambda functions and access AWS services", 3600)
	if err != nil {
		return nil, err
	}

	policyDoc := policyDocument(
		statement("InvokeLambdaFunctions",
			[]string{"lambda:InvokeFunction"},
			[]string{fmt.Sprintf("arn:aws:lambda:%s:%s:function:*", s.Region, accountID)}),
		statement("CloudWatchLogs",
			[]string{"logs:CreateLogGroup", "logs:CreateLogStream", "logs:PutLogEvents"},
			[]string{fmt.Sprintf("arn:aws:logs:%s:%s:log-group:/aws/bedrock-agentcore/gateways/*", s.Region, accountID)}),
	)
	policyArn, err := s.ensurePolicy(ctx, GatewayPolicyName, accountID, policyDoc,
		"Policy for AgentCore Gateway to invoke Lambda functions")
	if err != nil {
		return nil, err
	}

	if err := s.attach(ctx, GatewayRoleName, policyArn); err != nil {
		return nil, err
	}

	provision.Step(s.Out, "Waiting %s for IAM propagation...", propagationWait)
	s.sleep(propagationWait)

	role := configfile.GatewayRole{
		RoleArn:    roleArn,
		RoleName:   GatewayRoleName,
		PolicyArn:  policyArn,
		PolicyName: GatewayPolicyName,
		Region:     s.Region,
		AccountID:  accountID,
	}
	if err := s.Files.Save(configfile.GatewayRoleFile, role); err != nil {
		return nil, err
	}
	provision.Step(s.Out, "Configuration saved to %s", configfile.GatewayRoleFile)
	provision.Step(s.Out, "Role ARN: %s", roleArn)
	return &Result{RoleArn: roleArn, PolicyArn: policyArn, AccountID: accountID, Outcome: outcome}, nil
}

// CreateRuntimeRole provisions the runtime execution role with the full
// memory/gateway/KB permission set and writes
// runtime_execution_role_config.json.
func (s *Service) CreateRuntimeRole(ctx context.Context) (*Result, error) {
	provision.Banner(s.Out, "IAM RUNTIME EXECUTION ROLE SETUP")
	provision.Step(s.Out, "Region: %s", s.Region)
	provision.Step(s.Out, "Role Name: %s", RuntimeRoleName)

	accountID, err := s.accountID(ctx)
	if err != nil {
		return nil, err
	}

	roleArn, outcome, err := s.ensureRole(ctx, RuntimeRoleName,
		"Execution role for Returns Agent Runtime with Memory, Gateway, and KB access", 0)
	if err != nil {
		return nil, err
	}

	policyArn, err := s.ensurePolicy(ctx, RuntimePolicyName, accountID,
		runtimePolicyDocument(s.Region, accountID),
		"Permissions for Returns Agent Runtime with Memory, Gateway, and KB")
	if err != nil {
		return nil, err
	}

	if err := s.attach(ctx, RuntimeRoleName, policyArn); err != nil {
		return nil, err
	}

	provision.Step(s.Out, "Waiting %s for IAM propagation...", propagationWait)
	s.sleep(propagationWait)

	role := configfile.RuntimeRole{
		RoleName:   RuntimeRoleName,
		RoleArn:    roleArn,
		PolicyName: RuntimePolicyName,
		PolicyArn:  policyArn,
		Region:     s.Region,
		AccountID:  accountID,
	}
	if err := s.Files.Save(configfile.RuntimeRoleFile, role); err != nil {
		return nil, err
	}
	provision.Step(s.Out, "Configuration saved to %s", configfile.RuntimeRoleFile)
	provision.Step(s.Out, "Role ARN: %s", roleArn)
	return &Result{RoleArn: roleArn, PolicyArn: policyArn, AccountID: accountID, Outcome: outcome}, nil
}

func (s *Service) accountID(ctx context.Context) (string, error) {
	identity, err := s.STS.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("get caller identity: %w", err)
	}
	accountID := aws.ToString(identity.Account)
	provision.Step(s.Out, "Account ID: %s", accountID)
	return accountID, nil
}

func (s *Service) ensureRole(ctx context.Context, name, description string, maxSession int32) (string, provision.Outcome, error) {
	trust := policyDocument(map[string]any{
		"Effect":    "Allow",
		"Principal": map[string]any{"Service": "bedrock-agentcore.amazonaws.com"},
		"Action":    "sts:AssumeRole",
	})
	input := &iam.CreateRoleInput{
		RoleName:                 aws.String(name),
		AssumeRolePolicyDocument: aws.String(trust),
		Description:              aws.String(description),
	}
	if maxSession > 0 {
		input.MaxSessionDuration = aws.Int32(maxSession)
	}
	out, err := s.IAM.CreateRole(ctx, input)
	if err == nil {
		arn := aws.ToString(out.Role.Arn)
		provision.Step(s.Out, "Role created: %s", arn)
		return arn, provision.Created, nil
	}
	var exists *iamtypes.EntityAlreadyExistsException
	if !errors.As(err, &exists) {
		return "", "", fmt.Errorf("create role %s: %w", name, err)
	}
	provision.Step(s.Out, "Role already exists, retrieving ARN...")
	got, err := s.IAM.GetRole(ctx, &iam.GetRoleInput{RoleName: aws.String(name)})
	if err != nil {
		return "", "", fmt.Errorf("get role %s: %w", name, err)
	}
	arn := aws.ToString(got.Role.Arn)
	provision.Step(s.Out, "Role ARN: %s", arn)
	return arn, provision.AlreadyExisted, nil
}

func (s *Service) ensurePolicy(ctx context.Context, name, accountID, document, description string) (string, error) {
	out, err := s.IAM.CreatePolicy(ctx, &iam.CreatePolicyInput{
		PolicyName:     aws.String(name),
		PolicyDocument: aws.String(document),
		Description:    aws.String(description),
	})
	if err == nil {
		arn := aws.ToString(out.Policy.Arn)
		provision.Step(s.Out, "Policy created: %s", arn)
		return arn, nil
	}
	var exists *iamtypes.EntityAlreadyExistsException
	if !errors.As(err, &exists) {
		return "", fmt.Errorf("create policy %s: %w", name, err)
	}
	arn := fmt.Sprintf("arn:aws:iam::%s:policy/%s", accountID, name)
	provision.Step(s.Out, "Policy already exists: %s", arn)
	return arn, nil
}

func (s *Service) attach(ctx context.Context, roleName, policyArn string) error {
	_, err := s.IAM.AttachRolePolicy(ctx, &iam.AttachRolePolicyInput{
		RoleName:  aws.String(roleName),
		PolicyArn: aws.String(policyArn),
	})
	if err != nil {
		var limit *iamtypes.LimitExceededException
		if errors.As(err, &limit) {
			provision.Step(s.Out, "Policy already attached to role")
			return nil
		}
		return fmt.Errorf("attach policy to %s: %w", roleName, err)
	}
	provision.Step(s.Out, "Policy attached to role")
	return nil
}

func policyDocument(statements ...map[string]any) string {
	doc := map[string]any{
		"Version":   "2012-10-17",
		"Statement": statements,
	}
	data, _ := json.Marshal(doc)
	return string(data)
}

func statement(sid string, actions, resources []string) map[string]any {
	return map[string]any{
		"Sid":      sid,
		"Effect":   "Allow",
		"Action":   actions,
		"Resource": resources,
	}
}

func runtimePolicyDocument(region, accountID string) string {
	return policyDocument(
		statement("BedrockModelAccess",
			[]string{"bedrock:InvokeModel", "bedrock:InvokeModelWithResponseStream"},
			[]string{"*"}),
		statement("AgentCoreMemoryAccess",
			[]string{
				"bedrock-agentcore:GetMemory",
				"bedrock-agentcore:CreateEvent",
				"bedrock-agentcore:GetLastKTurns",
				"bedrock-agentcore:RetrieveMemory",
				"bedrock-agentcore:ListEvents",
				"bedrock-agentcore:GetMemoryRecord",
				"bedrock-agentcore:RetrieveMemoryRecords",
				"bedrock-agentcore:ListMemoryRecords",
			},
			[]string{fmt.Sprintf("arn:aws:bedrock-agentcore:%s:%s:memory/*", region, accountID)}),
		statement("KnowledgeBaseAccess",
			[]string{"bedrock-agent:Retrieve"},
			[]string{fmt.Sprintf("arn:aws:bedrock:%s:%s:knowledge-base/*", region, accountID)}),
		statement("CloudWatchLogsAccess",
			[]string{
				"logs:CreateLogGroup",
				"logs:CreateLogStream",
				"logs:PutLogEvents",
				"logs:DescribeLogStreams",
				"logs:DescribeLogGroups",
			},
			[]string{
				fmt.Sprintf("arn:aws:logs:%s:%s:log-group:/aws/bedrock-agentcore/*", region, accountID),
				fmt.Sprintf("arn:aws:logs:%s:%s:log-group:*", region, accountID),
			}),
		statement("XRayAccess",
			[]string{
				"xray:PutTraceSegments",
				"xray:PutTelemetryRecords",
				"xray:GetSamplingRules",
				"xray:GetSamplingTargets",
			},
			[]string{"*"}),
		statement("GatewayAccess",
			[]string{
				"bedrock-agentcore:InvokeGateway",
				"bedrock-agentcore:GetGateway",
				"bedrock-agentcore:ListGatewayTargets",
			},
			[]string{fmt.Sprintf("arn:aws:bedrock-agentcore:%s:%s:gateway/*", region, accountID)}),
		statement("ECRAccess",
			[]string{
				"ecr:GetAuthorizationToken",
				"ecr:BatchCheckLayerAvailability",
				"ecr:GetDownloadUrlForLayer",
				"ecr:BatchGetImage",
			},
			[]string{"*"}),
		map[string]any{
			"Sid":      "CloudWatchMetrics",
			"Effect":   "Allow",
			"Action":   "cloudwatch:PutMetricData",
			"Resource": "*",
			"Condition": map[string]any{
				"StringEquals": map[string]any{
					"cloudwatch:namespace": "bedrock-agentcore",
				},
			},
		},
		statement("WorkloadIdentityAccess",
			[]string{
				"bedrock-agentcore:GetWorkloadAccessToken",
				"bedrock-agentcore:GetWorkloadAccessTokenForJWT",
				"bedrock-agentcore:GetWorkloadAccessTokenForUserId",
			},
			[]string{
				fmt.Sprintf("arn:aws:bedrock-agentcore:%s:%s:workload-identity-directory/default", region, accountID),
				fmt.Sprintf("arn:aws:bedrock-agentcore:%s:%s:workload-identity-directory/default/workload-identity/*", region, accountID),
			}),
	)
}
