// Package runtime inspects, invokes, and deletes the deployed
// AgentCore Runtime. Deploys happen through the generated starter
// toolkit scripts, so this package only deals with an already-launched
// agent recorded in runtime_config.json.
package runtime

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcorecontrol"
	controltypes "github.com/aws/aws-sdk-go-v2/service/bedrockagentcorecontrol/types"

	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/configfile"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/provision"
)

const (
	DefaultPrompt = "Can you look up my order ORD-001 and help me with a return?"
	ActorID       = "user_001"
)

type ControlAPI interface {
	GetAgentRuntime(ctx context.Context, in *bedrockagentcorecontrol.GetAgentRuntimeInput, opts ...func(*bedrockagentcorecontrol.Options)) (*bedrockagentcorecontrol.GetAgentRuntimeOutput, error)
	DeleteAgentRuntime(ctx context.Context, in *bedrockagentcorecontrol.DeleteAgentRuntimeInput, opts ...func(*bedrockagentcorecontrol.Options)) (*bedrockagentcorecontrol.DeleteAgentRuntimeOutput, error)
}

type Service struct {
	Control ControlAPI
	Files   *configfile.Store
	Region  string
	Out     io.Writer

	// HTTP carries the OAuth token request and the data-plane
	// invocation. Defaults to http.DefaultClient.
	HTTP *http.Client

	// Endpoint overrides the data-plane base URL, for tests.
	Endpoint string
}

func (s *Service) httpClient() *http.Client {
	if s.HTTP != nil {
		return s.HTTP
	}
	return http.DefaultClient
}

func (s *Service) endpoint() string {
	if s.Endpoint != "" {
		return s.Endpoint
	}
	return fmt.Sprintf("https://bedrock-agentcore.%s.amazonaws.com", s.Region)
}

// runtimeID extracts the agent runtime id, the last segment of the ARN.
func runtimeID(agentArn string) string {
	parts := strings.Split(agentArn, "/")
	return parts[len(parts)-1]
}

// Status reports the runtime deployment state with guidance on what to
// do next.
func (s *Service) Status(ctx context.Context) (string, error) {
	var cfg configfile.Runtime
	if err := s.Files.Load(configfile.RuntimeFile, &cfg); err != nil {
		if configfile.IsNotFound(err) {
			return "", fmt.Errorf("%s not found: deploy the agent first (run the generated launch script)", configfile.RuntimeFile)
		}
		return "", err
	}

	provision.Banner(s.Out, "AGENTCORE RUNTIME STATUS")
	provision.Step(s.Out, "Agent: %s", cfg.AgentName)
	provision.Step(s.Out, "ARN:   %s", cfg.AgentArn)

	out, err := s.Control.GetAgentRuntime(ctx, &bedrockagentcorecontrol.GetAgentRuntimeInput{
		AgentRuntimeId: aws.String(runtimeID(cfg.AgentArn)),
	})
	if err != nil {
		return "", fmt.Errorf("get agent runtime: %w", err)
	}

	status := string(out.Status)
	provision.Step(s.Out, "Status: %s", status)
	switch out.Status {
	case controltypes.AgentRuntimeStatusReady:
		provision.Step(s.Out, "Agent is READY to receive requests")
		provision.Step(s.Out, "Invoke it with: agentcore-setup invoke-agent")
	case controltypes.AgentRuntimeStatusCreating, controltypes.AgentRuntimeStatusUpdating:
		provision.Step(s.Out, "Deployment in progress, check again in 1-2 minutes")
	case controltypes.AgentRuntimeStatusCreateFailed, controltypes.AgentRuntimeStatusUpdateFailed:
		provision.Step(s.Out, "Deployment failed")
		provision.Step(s.Out, "Check CloudWatch logs: /aws/bedrock-agentcore/runtimes/%s-DEFAULT", runtimeID(cfg.AgentArn))
	default:
		provision.Step(s.Out, "Unknown status %s", status)
	}
	return status, nil
}

// FetchToken runs the OAuth client-credentials flow against the Cognito
// token endpoint and returns the bearer token.
func (s *Service) FetchToken(ctx context.Context, cognito configfile.Cognito) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	if len(cognito.Scopes) > 0 {
		form.Set("scope", strings.Join(cognito.Scopes, " "))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cognito.TokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	credentials := base64.StdEncoding.EncodeToString([]byte(cognito.ClientID + ":" + cognito.ClientSecret))
	req.Header.Set("Authorization", "Basic "+credentials)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("request token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("parse token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}
	return token.AccessToken, nil
}

// Invoke obtains a bearer token and posts the prompt to the runtime
// data plane. An empty prompt falls back to the sample order lookup.
func (s *Service) Invoke(ctx context.Context, prompt string) error {
	var cfg configfile.Runtime
	if err := s.Files.Load(configfile.RuntimeFile, &cfg); err != nil {
		if configfile.IsNotFound(err) {
			return fmt.Errorf("%s not found: deploy the agent first", configfile.RuntimeFile)
		}
		return err
	}
	var cognito configfile.Cognito
	if err := s.Files.Load(configfile.CognitoFile, &cognito); err != nil {
		if configfile.IsNotFound(err) {
			return fmt.Errorf("%s not found: run create-cognito first", configfile.CognitoFile)
		}
		return err
	}

	if prompt == "" {
		prompt = DefaultPrompt
	}

	provision.Banner(s.Out, "INVOKE AGENTCORE RUNTIME")
	provision.Step(s.Out, "Getting OAuth token from Cognito...")
	token, err := s.FetchToken(ctx, cognito)
	if err != nil {
		return err
	}
	provision.Step(s.Out, "OAuth token obtained")
	provision.Step(s.Out, "User:   %s", ActorID)
	provision.Step(s.Out, "Prompt: %s", prompt)

	payload, err := json.Marshal(map[string]string{
		"prompt":   prompt,
		"actor_id": ActorID,
	})
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	invokeURL := fmt.Sprintf("%s/runtimes/%s/invocations?qualifier=DEFAULT",
		s.endpoint(), url.PathEscape(cfg.AgentArn))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, invokeURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build invoke request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("invoke agent: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read invoke response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("runtime returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	provision.Banner(s.Out, "AGENT RESPONSE")
	fmt.Fprintln(s.Out, responseText(body))
	return nil
}

// responseText pulls the agent's reply out of the invocation response,
// falling back through the shapes the runtime is known to return.
func responseText(body []byte) string {
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return strings.TrimSpace(string(body))
	}
	if text, ok := parsed["response"].(string); ok {
		return text
	}
	if text, ok := parsed["output"].(string); ok {
		return text
	}
	pretty, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return strings.TrimSpace(string(body))
	}
	return string(pretty)
}

// Delete removes the agent runtime and runtime_config.json. Missing
// config or an already-deleted runtime is success.
func (s *Service) Delete(ctx context.Context) (provision.Outcome, error) {
	var cfg configfile.Runtime
	if err := s.Files.Load(configfile.RuntimeFile, &cfg); err != nil {
		if configfile.IsNotFound(err) {
			provision.Step(s.Out, "%s not found - nothing to delete", configfile.RuntimeFile)
			return provision.AlreadyAbsent, nil
		}
		return "", err
	}

	provision.Banner(s.Out, "DELETE AGENTCORE RUNTIME")
	provision.Step(s.Out, "Deleting runtime %s...", runtimeID(cfg.AgentArn))
	_, err := s.Control.DeleteAgentRuntime(ctx, &bedrockagentcorecontrol.DeleteAgentRuntimeInput{
		AgentRuntimeId: aws.String(runtimeID(cfg.AgentArn)),
	})
	if err != nil {
		if provision.IsNotFound(err) {
			provision.Step(s.Out, "Runtime already deleted")
			if err := s.Files.Remove(configfile.RuntimeFile); err != nil {
				return "", err
			}
			return provision.AlreadyAbsent, nil
		}
		return "", fmt.Errorf("delete agent runtime: %w", err)
	}
	if err := s.Files.Remove(configfile.RuntimeFile); err != nil {
		return "", err
	}
	provision.Step(s.Out, "Runtime deleted and %s removed", configfile.RuntimeFile)
	return provision.Deleted, nil
}
