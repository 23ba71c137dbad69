package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcorecontrol"
	controltypes "github.com/aws/aws-sdk-go-v2/service/bedrockagentcorecontrol/types"
	"github.com/aws/smithy-go"

	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/configfile"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/provision"
)

const agentArn = "arn:aws:bedrock-agentcore:us-west-2:123456789012:runtime/returns_refunds_agent-abc123"

type fakeControl struct {
	status    controltypes.AgentRuntimeStatus
	deleteErr error

	gotRuntimeID string
	deleteCalls  int
}

func (f *fakeControl) GetAgentRuntime(ctx context.Context, in *bedrockagentcorecontrol.GetAgentRuntimeInput, opts ...func(*bedrockagentcorecontrol.Options)) (*bedrockagentcorecontrol.GetAgentRuntimeOutput, error) {
	f.gotRuntimeID = aws.ToString(in.AgentRuntimeId)
	return &bedrockagentcorecontrol.GetAgentRuntimeOutput{Status: f.status}, nil
}

func (f *fakeControl) DeleteAgentRuntime(ctx context.Context, in *bedrockagentcorecontrol.DeleteAgentRuntimeInput, opts ...func(*bedrockagentcorecontrol.Options)) (*bedrockagentcorecontrol.DeleteAgentRuntimeOutput, error) {
	f.deleteCalls++
	f.gotRuntimeID = aws.ToString(in.AgentRuntimeId)
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &bedrockagentcorecontrol.DeleteAgentRuntimeOutput{}, nil
}

func newService(t *testing.T, control *fakeControl) (*Service, *configfile.Store, *bytes.Buffer) {
	t.Helper()
	store := configfile.NewStore(t.TempDir())
	out := &bytes.Buffer{}
	return &Service{
		Control: control,
		Files:   store,
		Region:  "us-west-2",
		Out:     out,
	}, store, out
}

func seedRuntime(t *testing.T, store *configfile.Store) {
	t.Helper()
	if err := store.Save(configfile.RuntimeFile, configfile.Runtime{
		AgentArn:  agentArn,
		AgentName: "returns_refunds_agent",
		Region:    "us-west-2",
	}); err != nil {
		t.Fatalf("seed runtime config: %v", err)
	}
}

func TestRuntimeID(t *testing.T) {
	if got := runtimeID(agentArn); got != "returns_refunds_agent-abc123" {
		t.Fatalf("unexpected runtime id %s", got)
	}
}

func TestStatusReady(t *testing.T) {
	control := &fakeControl{status: controltypes.AgentRuntimeStatusReady}
	svc, store, out := newService(t, control)
	seedRuntime(t, store)

	status, err := svc.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status != "READY" {
		t.Fatalf("unexpected status %s", status)
	}
	if control.gotRuntimeID != "returns_refunds_agent-abc123" {
		t.Fatalf("unexpected runtime id %s", control.gotRuntimeID)
	}
	if !strings.Contains(out.String(), "READY to receive requests") {
		t.Fatalf("ready guidance missing:\n%s", out.String())
	}
}

func TestStatusFailedPointsAtLogs(t *testing.T) {
	svc, store, out := newService(t, &fakeControl{status: controltypes.AgentRuntimeStatusCreateFailed})
	seedRuntime(t, store)

	if _, err := svc.Status(context.Background()); err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out.String(), "/aws/bedrock-agentcore/runtimes/returns_refunds_agent-abc123-DEFAULT") {
		t.Fatalf("log group hint missing:\n%s", out.String())
	}
}

func TestStatusWithoutConfigFails(t *testing.T) {
	svc, _, _ := newService(t, &fakeControl{})
	_, err := svc.Status(context.Background())
	if err == nil || !strings.Contains(err.Error(), "deploy the agent first") {
		t.Fatalf("expected deploy guidance, got %v", err)
	}
}

func TestInvoke(t *testing.T) {
	var tokenReq struct {
		auth  string
		grant string
		scope string
	}
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		tokenReq.auth = r.Header.Get("Authorization")
		tokenReq.grant = r.FormValue("grant_type")
		tokenReq.scope = r.FormValue("scope")
		json.NewEncoder(w).Encode(map[string]string{"access_token": "token-xyz"})
	}))
	defer tokenServer.Close()

	var invokeReq struct {
		path    string
		query   string
		auth    string
		payload map[string]string
	}
	dataServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		invokeReq.path = r.URL.EscapedPath()
		invokeReq.query = r.URL.RawQuery
		invokeReq.auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&invokeReq.payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "Your order ORD-001 is eligible for return."})
	}))
	defer dataServer.Close()

	svc, store, out := newService(t, &fakeControl{})
	svc.Endpoint = dataServer.URL
	seedRuntime(t, store)
	if err := store.Save(configfile.CognitoFile, configfile.Cognito{
		ClientID:      "client-123",
		ClientSecret:  "secret-456",
		TokenEndpoint: tokenServer.URL,
		Scopes:        []string{"returns-agent-api/read", "returns-agent-api/write"},
	}); err != nil {
		t.Fatalf("seed cognito config: %v", err)
	}

	if err := svc.Invoke(context.Background(), ""); err != nil {
		t.Fatalf("invoke: %v", err)
	}

	// Client credentials go over Basic auth, scopes space-joined.
	if !strings.HasPrefix(tokenReq.auth, "Basic ") {
		t.Fatalf("token request missing basic auth: %q", tokenReq.auth)
	}
	if tokenReq.grant != "client_credentials" {
		t.Fatalf("unexpected grant type %s", tokenReq.grant)
	}
	if tokenReq.scope != "returns-agent-api/read returns-agent-api/write" {
		t.Fatalf("unexpected scope %q", tokenReq.scope)
	}

	if invokeReq.auth != "Bearer token-xyz" {
		t.Fatalf("unexpected invoke auth %q", invokeReq.auth)
	}
	if !strings.Contains(invokeReq.path, "/runtimes/") || strings.Contains(invokeReq.path, ":runtime/") {
		t.Fatalf("agent arn not escaped in path: %s", invokeReq.path)
	}
	if invokeReq.query != "qualifier=DEFAULT" {
		t.Fatalf("unexpected query %s", invokeReq.query)
	}
	if invokeReq.payload["prompt"] != DefaultPrompt || invokeReq.payload["actor_id"] != ActorID {
		t.Fatalf("unexpected payload %v", invokeReq.payload)
	}
	if !strings.Contains(out.String(), "Your order ORD-001 is eligible for return.") {
		t.Fatalf("agent response missing from output:\n%s", out.String())
	}
}

func TestInvokeTokenFailure(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_client"}`, http.StatusBadRequest)
	}))
	defer tokenServer.Close()

	svc, store, _ := newService(t, &fakeControl{})
	seedRuntime(t, store)
	if err := store.Save(configfile.CognitoFile, configfile.Cognito{
		ClientID:      "client-123",
		ClientSecret:  "wrong",
		TokenEndpoint: tokenServer.URL,
	}); err != nil {
		t.Fatalf("seed cognito config: %v", err)
	}

	err := svc.Invoke(context.Background(), "")
	if err == nil || !strings.Contains(err.Error(), "token endpoint returned 400") {
		t.Fatalf("expected token failure, got %v", err)
	}
}

func TestResponseText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"response field", `{"response":"hello"}`, "hello"},
		{"output fallback", `{"output":"from output"}`, "from output"},
		{"other dict", `{"result":"x"}`, "\"result\": \"x\""},
		{"not json", "plain text", "plain text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := responseText([]byte(tt.body))
			if !strings.Contains(got, tt.want) {
				t.Fatalf("responseText(%q) = %q, want containing %q", tt.body, got, tt.want)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	control := &fakeControl{}
	svc, store, _ := newService(t, control)
	seedRuntime(t, store)

	outcome, err := svc.Delete(context.Background())
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if outcome != provision.Deleted {
		t.Fatalf("expected deleted, got %s", outcome)
	}
	if control.gotRuntimeID != "returns_refunds_agent-abc123" {
		t.Fatalf("unexpected runtime id %s", control.gotRuntimeID)
	}
	if store.Exists(configfile.RuntimeFile) {
		t.Fatalf("runtime config should be removed")
	}
}

func TestDeleteMissingConfigIsSuccess(t *testing.T) {
	control := &fakeControl{}
	svc, _, _ := newService(t, control)

	outcome, err := svc.Delete(context.Background())
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if outcome != provision.AlreadyAbsent {
		t.Fatalf("expected already_absent, got %s", outcome)
	}
	if control.deleteCalls != 0 {
		t.Fatalf("DeleteAgentRuntime should not be called without config")
	}
}

func TestDeleteRuntimeGoneIsSuccess(t *testing.T) {
	control := &fakeControl{
		deleteErr: &smithy.GenericAPIError{Code: "ResourceNotFoundException", Message: "gone"},
	}
	svc, store, _ := newService(t, control)
	seedRuntime(t, store)

	outcome, err := svc.Delete(context.Background())
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if outcome != provision.AlreadyAbsent {
		t.Fatalf("expected already_absent, got %s", outcome)
	}
	if store.Exists(configfile.RuntimeFile) {
		t.Fatalf("runtime config should be removed after not-found delete")
	}
}
