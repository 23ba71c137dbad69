package memory

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcore"
	datatypes "github.com/aws/aws-sdk-go-v2/service/bedrockagentcore/types"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcorecontrol"
	controltypes "github.com/aws/aws-sdk-go-v2/service/bedrockagentcorecontrol/types"
	"github.com/aws/smithy-go"

	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/configfile"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/provision"
)

type fakeControl struct {
	createErr error
	deleteErr error
	statuses  []controltypes.MemoryStatus

	getCalls    int
	deleteCalls int
	listCalls   int
}

func (f *fakeControl) CreateMemory(ctx context.Context, in *bedrockagentcorecontrol.CreateMemoryInput, opts ...func(*bedrockagentcorecontrol.Options)) (*bedrockagentcorecontrol.CreateMemoryOutput, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if len(in.MemoryStrategies) != 3 {
		return nil, &smithy.GenericAPIError{Code: "ValidationException", Message: "expected 3 strategies"}
	}
	return &bedrockagentcorecontrol.CreateMemoryOutput{
		Memory: &controltypes.Memory{
			Id:     aws.String("ReturnsAgentMemory-abc123"),
			Status: controltypes.MemoryStatusCreating,
		},
	}, nil
}

func (f *fakeControl) GetMemory(ctx context.Context, in *bedrockagentcorecontrol.GetMemoryInput, opts ...func(*bedrockagentcorecontrol.Options)) (*bedrockagentcorecontrol.GetMemoryOutput, error) {
	status := controltypes.MemoryStatusActive
	if f.getCalls < len(f.statuses) {
		status = f.statuses[f.getCalls]
	}
	f.getCalls++
	return &bedrockagentcorecontrol.GetMemoryOutput{
		Memory: &controltypes.Memory{Id: in.MemoryId, Status: status},
	}, nil
}

func (f *fakeControl) ListMemories(ctx context.Context, in *bedrockagentcorecontrol.ListMemoriesInput, opts ...func(*bedrockagentcorecontrol.Options)) (*bedrockagentcorecontrol.ListMemoriesOutput, error) {
	f.listCalls++
	return &bedrockagentcorecontrol.ListMemoriesOutput{
		Memories: []controltypes.MemorySummary{
			{Id: aws.String("OtherMemory-zzz")},
			{Id: aws.String("ReturnsAgentMemory-abc123")},
		},
	}, nil
}

func (f *fakeControl) DeleteMemory(ctx context.Context, in *bedrockagentcorecontrol.DeleteMemoryInput, opts ...func(*bedrockagentcorecontrol.Options)) (*bedrockagentcorecontrol.DeleteMemoryOutput, error) {
	f.deleteCalls++
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &bedrockagentcorecontrol.DeleteMemoryOutput{}, nil
}

type fakeData struct {
	events    []*bedrockagentcore.CreateEventInput
	retrieved []*bedrockagentcore.RetrieveMemoryRecordsInput
	records   []datatypes.MemoryRecordSummary
}

func (f *fakeData) CreateEvent(ctx context.Context, in *bedrockagentcore.CreateEventInput, opts ...func(*bedrockagentcore.Options)) (*bedrockagentcore.CreateEventOutput, error) {
	f.events = append(f.events, in)
	return &bedrockagentcore.CreateEventOutput{}, nil
}

func (f *fakeData) RetrieveMemoryRecords(ctx context.Context, in *bedrockagentcore.RetrieveMemoryRecordsInput, opts ...func(*bedrockagentcore.Options)) (*bedrockagentcore.RetrieveMemoryRecordsOutput, error) {
	f.retrieved = append(f.retrieved, in)
	return &bedrockagentcore.RetrieveMemoryRecordsOutput{MemoryRecordSummaries: f.records}, nil
}

func newService(t *testing.T, control *fakeControl, data *fakeData) (*Service, *configfile.Store, *bytes.Buffer) {
	t.Helper()
	store := configfile.NewStore(t.TempDir())
	out := &bytes.Buffer{}
	return &Service{
		Control: control,
		Data:    data,
		Files:   store,
		Region:  "us-west-2",
		Out:     out,
		Sleep:   func(time.Duration) {},
		Now:     func() time.Time { return time.Unix(1700000000, 0) },
	}, store, out
}

func TestCreate(t *testing.T) {
	control := &fakeControl{statuses: []controltypes.MemoryStatus{
		controltypes.MemoryStatusCreating,
		controltypes.MemoryStatusActive,
	}}
	svc, store, _ := newService(t, control, &fakeData{})

	result, err := svc.Create(context.Background())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if result.Outcome != provision.Created {
		t.Fatalf("expected created, got %s", result.Outcome)
	}
	if control.getCalls != 2 {
		t.Fatalf("expected poll until ACTIVE, got %d GetMemory calls", control.getCalls)
	}

	var saved configfile.Memory
	if err := store.Load(configfile.MemoryFile, &saved); err != nil {
		t.Fatalf("load config: %v", err)
	}
	if saved.MemoryID != "ReturnsAgentMemory-abc123" || saved.Name != MemoryName || saved.Region != "us-west-2" {
		t.Fatalf("unexpected config %+v", saved)
	}
}

func TestCreateConflictFallsBackToListing(t *testing.T) {
	control := &fakeControl{
		createErr: &smithy.GenericAPIError{Code: "ConflictException", Message: "exists"},
	}
	svc, _, _ := newService(t, control, &fakeData{})

	result, err := svc.Create(context.Background())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if result.Outcome != provision.AlreadyExisted {
		t.Fatalf("expected already_existed, got %s", result.Outcome)
	}
	if result.MemoryID != "ReturnsAgentMemory-abc123" {
		t.Fatalf("lookup found wrong memory %s", result.MemoryID)
	}
	if control.listCalls != 1 {
		t.Fatalf("expected one ListMemories call, got %d", control.listCalls)
	}
}

func TestSeed(t *testing.T) {
	data := &fakeData{}
	svc, store, _ := newService(t, &fakeControl{}, data)
	if err := store.Save(configfile.MemoryFile, configfile.Memory{MemoryID: "mem-1", Name: MemoryName, Region: "us-west-2"}); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(data.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(data.events))
	}
	first, second := data.events[0], data.events[1]
	if aws.ToString(first.SessionId) != "session_001" || aws.ToString(second.SessionId) != "session_002" {
		t.Fatalf("unexpected session ids %s/%s", aws.ToString(first.SessionId), aws.ToString(second.SessionId))
	}
	if len(first.Payload) != 4 || len(second.Payload) != 6 {
		t.Fatalf("unexpected message counts %d/%d", len(first.Payload), len(second.Payload))
	}
	conv, ok := first.Payload[0].(*datatypes.PayloadTypeMemberConversational)
	if !ok {
		t.Fatalf("payload is not conversational")
	}
	if conv.Value.Role != datatypes.RoleUser {
		t.Fatalf("first message should be from the user")
	}
	text, ok := conv.Value.Content.(*datatypes.ContentMemberText)
	if !ok || !strings.Contains(text.Value, "email") {
		t.Fatalf("unexpected first message content")
	}
}

func TestSeedWithoutConfigFails(t *testing.T) {
	svc, _, _ := newService(t, &fakeControl{}, &fakeData{})
	err := svc.Seed(context.Background())
	if err == nil || !strings.Contains(err.Error(), "run create-memory first") {
		t.Fatalf("expected missing-config guidance, got %v", err)
	}
}

func TestTestQueriesAllNamespaces(t *testing.T) {
	score := 0.812
	data := &fakeData{records: []datatypes.MemoryRecordSummary{
		{
			Content: &datatypes.MemoryContentMemberText{Value: "Customer prefers email notifications"},
			Score:   &score,
		},
	}}
	svc, store, out := newService(t, &fakeControl{}, data)
	if err := store.Save(configfile.MemoryFile, configfile.Memory{MemoryID: "mem-1"}); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	if err := svc.Test(context.Background()); err != nil {
		t.Fatalf("test: %v", err)
	}
	if len(data.retrieved) != 4 {
		t.Fatalf("expected 4 namespace probes, got %d", len(data.retrieved))
	}
	namespaces := make([]string, 0, 4)
	for _, in := range data.retrieved {
		namespaces = append(namespaces, aws.ToString(in.Namespace))
		if aws.ToInt32(in.SearchCriteria.TopK) != 3 {
			t.Fatalf("expected top_k 3")
		}
	}
	want := []string{
		"app/user_001/preferences",
		"app/user_001/semantic",
		"app/user_001/session_001/summary",
		"app/user_001/session_002/summary",
	}
	for i, ns := range want {
		if namespaces[i] != ns {
			t.Fatalf("probe %d namespace %q, want %q", i, namespaces[i], ns)
		}
	}
	if !strings.Contains(out.String(), "0.812") {
		t.Fatalf("relevance score missing from output")
	}
	if !strings.Contains(out.String(), "Customer prefers email notifications") {
		t.Fatalf("record content missing from output")
	}
}

func TestDelete(t *testing.T) {
	control := &fakeControl{}
	svc, store, _ := newService(t, control, &fakeData{})
	if err := store.Save(configfile.MemoryFile, configfile.Memory{MemoryID: "mem-1"}); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	outcome, err := svc.Delete(context.Background())
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if outcome != provision.Deleted {
		t.Fatalf("expected deleted, got %s", outcome)
	}
	if store.Exists(configfile.MemoryFile) {
		t.Fatalf("config file should be removed")
	}
}

func TestDeleteMissingConfigIsSuccess(t *testing.T) {
	control := &fakeControl{}
	svc, _, _ := newService(t, control, &fakeData{})

	outcome, err := svc.Delete(context.Background())
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if outcome != provision.AlreadyAbsent {
		t.Fatalf("expected already_absent, got %s", outcome)
	}
	if control.deleteCalls != 0 {
		t.Fatalf("DeleteMemory should not be called without config")
	}
}

func TestDeleteResourceGoneIsSuccess(t *testing.T) {
	control := &fakeControl{
		deleteErr: &controltypes.ResourceNotFoundException{Message: aws.String("gone")},
	}
	svc, store, _ := newService(t, control, &fakeData{})
	if err := store.Save(configfile.MemoryFile, configfile.Memory{MemoryID: "mem-1"}); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	outcome, err := svc.Delete(context.Background())
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if outcome != provision.AlreadyAbsent {
		t.Fatalf("expected already_absent, got %s", outcome)
	}
	if store.Exists(configfile.MemoryFile) {
		t.Fatalf("config file should be removed after not-found delete")
	}
}
