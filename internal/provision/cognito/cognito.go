// Package cognito sets up the OAuth user pool the gateway and the
// runtime authenticate against: pool, hosted domain, resource server
// with read/write scopes, and a client-credentials app client.
package cognito

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	cognitotypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/configfile"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/provision"
)

const (
	PoolName                 = "ReturnsAgentGatewayPool"
	ClientName               = "ReturnsAgentGatewayClient"
	ResourceServerIdentifier = "returns-agent-api"
	ResourceServerName       = "Returns Agent API"

	domainWait = 5 * time.Second
)

type API interface {
	CreateUserPool(ctx context.Context, in *cognitoidentityprovider.CreateUserPoolInput, opts ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.CreateUserPoolOutput, error)
	CreateUserPoolDomain(ctx context.Context, in *cognitoidentityprovider.CreateUserPoolDomainInput, opts ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.CreateUserPoolDomainOutput, error)
	CreateResourceServer(ctx context.Context, in *cognitoidentityprovider.CreateResourceServerInput, opts ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.CreateResourceServerOutput, error)
	CreateUserPoolClient(ctx context.Context, in *cognitoidentityprovider.CreateUserPoolClientInput, opts ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.CreateUserPoolClientOutput, error)
	DescribeUserPoolClient(ctx context.Context, in *cognitoidentityprovider.DescribeUserPoolClientInput, opts ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.DescribeUserPoolClientOutput, error)
}

type Service struct {
	Cognito API
	Files   *configfile.Store
	Region  string
	Out     io.Writer
	// Sleep is the domain propagation wait, replaced in tests.
	Sleep func(time.Duration)
	// RandHex supplies the domain prefix suffix, replaced in tests.
	RandHex func() string
}

func (s *Service) sleep(d time.Duration) {
	if s.Sleep != nil {
		s.Sleep(d)
		return
	}
	time.Sleep(d)
}

func (s *Service) randHex() string {
	if s.RandHex != nil {
		return s.RandHex()
	}
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

// Create provisions the user pool stack and writes cognito_config.json.
func (s *Service) Create(ctx context.Context) (*configfile.Cognito, error) {
	domainPrefix := "returns-agent-" + s.randHex()

	provision.Banner(s.Out, "COGNITO USER POOL SETUP FOR AGENTCORE GATEWAY")
	provision.Step(s.Out, "Region: %s", s.Region)
	provision.Step(s.Out, "User Pool Name: %s", PoolName)
	provision.Step(s.Out, "Domain Prefix: %s", domainPrefix)

	provision.Step(s.Out, "Creating Cognito User Pool...")
	pool, err := s.Cognito.CreateUserPool(ctx, &cognitoidentityprovider.CreateUserPoolInput{
		PoolName: aws.String(PoolName),
		Policies: &cognitotypes.UserPoolPolicyType{
			PasswordPolicy: &cognitotypes.PasswordPolicyType{
				MinimumLength: aws.Int32(8),
			},
		},
		Schema: []cognitotypes.SchemaAttributeType{
			{
				Name:              aws.String("email"),
				AttributeDataType: cognitotypes.AttributeDataTypeString,
				Required:          aws.Bool(false),
				Mutable:           aws.Bool(true),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create user pool: %w", err)
	}
	poolID := aws.ToString(pool.UserPool.Id)
	provision.Step(s.Out, "User Pool created: %s", poolID)

	provision.Step(s.Out, "Creating User Pool Domain '%s'...", domainPrefix)
	_, err = s.Cognito.CreateUserPoolDomain(ctx, &cognitoidentityprovider.CreateUserPoolDomainInput{
		Domain:     aws.String(domainPrefix),
		UserPoolId: aws.String(poolID),
	})
	if err != nil {
		var invalid *cognitotypes.InvalidParameterException
		if errors.As(err, &invalid) && strings.Contains(aws.ToString(invalid.Message), "Domain already exists") {
			provision.Step(s.Out, "Domain prefix already exists, using: %s", domainPrefix)
		} else {
			return nil, fmt.Errorf("create user pool domain: %w", err)
		}
	}
	provision.Step(s.Out, "Waiting %s for domain propagation...", domainWait)
	s.sleep(domainWait)

	provision.Step(s.Out, "Creating Resource Server with OAuth scopes...")
	_, err = s.Cognito.CreateResourceServer(ctx, &cognitoidentityprovider.CreateResourceServerInput{
		UserPoolId: aws.String(poolID),
		Identifier: aws.String(ResourceServerIdentifier),
		Name:       aws.String(ResourceServerName),
		Scopes: []cognitotypes.ResourceServerScopeType{
			{ScopeName: aws.String("read"), ScopeDescription: aws.String("Read access to returns agent")},
			{ScopeName: aws.String("write"), ScopeDescription: aws.String("Write access to returns agent")},
		},
	})
	if err != nil {
		var invalid *cognitotypes.InvalidParameterException
		if errors.As(err, &invalid) && strings.Contains(aws.ToString(invalid.Message), "already exists") {
			provision.Step(s.Out, "Resource Server already exists: %s", ResourceServerIdentifier)
		} else {
			return nil, fmt.Errorf("create resource server: %w", err)
		}
	}

	scopes := []string{
		ResourceServerIdentifier + "/read",
		ResourceServerIdentifier + "/write",
	}
	provision.Step(s.Out, "Creating App Client with client credentials flow...")
	client, err := s.Cognito.CreateUserPoolClient(ctx, &cognitoidentityprovider.CreateUserPoolClientInput{
		UserPoolId:                      aws.String(poolID),
		ClientName:                      aws.String(ClientName),
		GenerateSecret:                  true,
		AllowedOAuthFlows:               []cognitotypes.OAuthFlowType{cognitotypes.OAuthFlowTypeClientCredentials},
		AllowedOAuthScopes:              scopes,
		AllowedOAuthFlowsUserPoolClient: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create user pool client: %w", err)
	}
	clientID := aws.ToString(client.UserPoolClient.ClientId)
	provision.Step(s.Out, "App Client created: %s", clientID)

	described, err := s.Cognito.DescribeUserPoolClient(ctx, &cognitoidentityprovider.DescribeUserPoolClientInput{
		UserPoolId: aws.String(poolID),
		ClientId:   aws.String(clientID),
	})
	if err != nil {
		return nil, fmt.Errorf("describe user pool client: %w", err)
	}
	clientSecret := aws.ToString(described.UserPoolClient.ClientSecret)

	cfg := configfile.Cognito{
		UserPoolID:               poolID,
		DomainPrefix:             domainPrefix,
		ClientID:                 clientID,
		ClientSecret:             clientSecret,
		TokenEndpoint:            fmt.Sprintf("https://%s.auth.%s.amazoncognito.com/oauth2/token", domainPrefix, s.Region),
		DiscoveryURL:             fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s/.well-known/openid-configuration", s.Region, poolID),
		Region:                   s.Region,
		ResourceServerIdentifier: ResourceServerIdentifier,
		Scopes:                   scopes,
	}
	if err := s.Files.Save(configfile.CognitoFile, cfg); err != nil {
		return nil, err
	}
	provision.Step(s.Out, "Configuration saved to %s", configfile.CognitoFile)
	provision.Step(s.Out, "Token Endpoint: %s", cfg.TokenEndpoint)
	provision.Step(s.Out, "Client Secret: %s", truncateSecret(clientSecret))
	return &cfg, nil
}

// truncateSecret keeps the first 20 characters so the full credential
// never lands in terminal scrollback.
func truncateSecret(secret string) string {
	if len(secret) <= 20 {
		return secret
	}
	return secret[:20] + "..."
}
