// Package memory provisions the AgentCore Memory store and exercises
// it: create with the three extraction strategies, seed sample
// conversations, retrieve from every namespace, delete.
package memory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcore"
	datatypes "github.com/aws/aws-sdk-go-v2/service/bedrockagentcore/types"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcorecontrol"
	controltypes "github.com/aws/aws-sdk-go-v2/service/bedrockagentcorecontrol/types"

	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/configfile"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/provision"
)

const (
	MemoryName = "ReturnsAgentMemory"
	ActorID    = "user_001"

	// eventExpiryDays is how long raw events are retained before the
	// extracted records are all that remains.
	eventExpiryDays = 30

	statusPollInterval = 10 * time.Second
	statusPollAttempts = 30
	extractionWait     = 30 * time.Second
)

type ControlAPI interface {
	CreateMemory(ctx context.Context, in *bedrockagentcorecontrol.CreateMemoryInput, opts ...func(*bedrockagentcorecontrol.Options)) (*bedrockagentcorecontrol.CreateMemoryOutput, error)
	GetMemory(ctx context.Context, in *bedrockagentcorecontrol.GetMemoryInput, opts ...func(*bedrockagentcorecontrol.Options)) (*bedrockagentcorecontrol.GetMemoryOutput, error)
	ListMemories(ctx context.Context, in *bedrockagentcorecontrol.ListMemoriesInput, opts ...func(*bedrockagentcorecontrol.Options)) (*bedrockagentcorecontrol.ListMemoriesOutput, error)
	DeleteMemory(ctx context.Context, in *bedrockagentcorecontrol.DeleteMemoryInput, opts ...func(*bedrockagentcorecontrol.Options)) (*bedrockagentcorecontrol.DeleteMemoryOutput, error)
}

type DataAPI interface {
	CreateEvent(ctx context.Context, in *bedrockagentcore.CreateEventInput, opts ...func(*bedrockagentcore.Options)) (*bedrockagentcore.CreateEventOutput, error)
	RetrieveMemoryRecords(ctx context.Context, in *bedrockagentcore.RetrieveMemoryRecordsInput, opts ...func(*bedrockagentcore.Options)) (*bedrockagentcore.RetrieveMemoryRecordsOutput, error)
}

type Service struct {
	Control ControlAPI
	Data    DataAPI
	Files   *configfile.Store
	Region  string
	Out     io.Writer
	Sleep   func(time.Duration)
	Now     func() time.Time
}

func (s *Service) sleep(d time.Duration) {
	if s.Sleep != nil {
		s.Sleep(d)
		return
	}
	time.Sleep(d)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type Result struct {
	MemoryID string
	Outcome  provision.Outcome
}

// Create provisions the memory store, waits for it to become ACTIVE,
// and writes memory_config.json.
func (s *Service) Create(ctx context.Context) (*Result, error) {
	provision.Banner(s.Out, "AGENTCORE MEMORY SETUP")
	provision.Step(s.Out, "Region: %s", s.Region)
	provision.Step(s.Out, "Memory Name: %s", MemoryName)

	memoryID, outcome, err := s.ensureMemory(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.waitActive(ctx, memoryID); err != nil {
		return nil, err
	}

	cfg := configfile.Memory{MemoryID: memoryID, Name: MemoryName, Region: s.Region}
	if err := s.Files.Save(configfile.MemoryFile, cfg); err != nil {
		return nil, err
	}
	provision.Step(s.Out, "Configuration saved to %s", configfile.MemoryFile)
	provision.Step(s.Out, "Memory ID: %s", memoryID)
	return &Result{MemoryID: memoryID, Outcome: outcome}, nil
}

func (s *Service) ensureMemory(ctx context.Context) (string, provision.Outcome, error) {
	provision.Step(s.Out, "Creating memory with summary, preferences, and semantic strategies...")
	created, err := s.Control.CreateMemory(ctx, &bedrockagentcorecontrol.CreateMemoryInput{
		Name:                aws.String(MemoryName),
		Description:         aws.String("Memory for Returns and Refunds Agent"),
		EventExpiryDuration: aws.Int32(eventExpiryDays),
		MemoryStrategies:    defaultStrategies(),
	})
	if err == nil {
		id := aws.ToString(created.Memory.Id)
		provision.Step(s.Out, "Memory created: %s", id)
		return id, provision.Created, nil
	}
	if !provision.IsConflict(err) {
		return "", "", fmt.Errorf("create memory: %w", err)
	}

	provision.Step(s.Out, "Memory already exists, looking it up...")
	id, err := s.findMemoryByName(ctx)
	if err != nil {
		return "", "", err
	}
	provision.Step(s.Out, "Memory ID: %s", id)
	return id, provision.AlreadyExisted, nil
}

// findMemoryByName scans the account's memories for the one whose id
// carries the fixed name prefix. Memory ids are {name}-{suffix}.
func (s *Service) findMemoryByName(ctx context.Context) (string, error) {
	var nextToken *string
	for {
		out, err := s.Control.ListMemories(ctx, &bedrockagentcorecontrol.ListMemoriesInput{
			MaxResults: aws.Int32(100),
			NextToken:  nextToken,
		})
		if err != nil {
			return "", fmt.Errorf("list memories: %w", err)
		}
		for _, summary := range out.Memories {
			id := aws.ToString(summary.Id)
			if strings.HasPrefix(id, MemoryName+"-") || id == MemoryName {
				return id, nil
			}
		}
		if out.NextToken == nil {
			return "", fmt.Errorf("memory %s exists but was not found in listing", MemoryName)
		}
		nextToken = out.NextToken
	}
}

func (s *Service) waitActive(ctx context.Context, memoryID string) error {
	for attempt := 0; attempt < statusPollAttempts; attempt++ {
		out, err := s.Control.GetMemory(ctx, &bedrockagentcorecontrol.GetMemoryInput{
			MemoryId: aws.String(memoryID),
		})
		if err != nil {
			return fmt.Errorf("get memory: %w", err)
		}
		switch out.Memory.Status {
		case controltypes.MemoryStatusActive:
			provision.Step(s.Out, "Memory is ACTIVE")
			return nil
		case controltypes.MemoryStatusFailed:
			return fmt.Errorf("memory %s entered FAILED state: %s", memoryID, aws.ToString(out.Memory.FailureReason))
		}
		provision.Step(s.Out, "Memory status: %s, waiting %s...", out.Memory.Status, statusPollInterval)
		s.sleep(statusPollInterval)
	}
	return fmt.Errorf("memory %s did not become ACTIVE", memoryID)
}

func defaultStrategies() []controltypes.MemoryStrategyInput {
	return []controltypes.MemoryStrategyInput{
		&controltypes.MemoryStrategyInputMemberSummaryMemoryStrategy{
			Value: controltypes.SummaryMemoryStrategyInput{
				Name:       aws.String("summary"),
				Namespaces: []string{"app/{actorId}/{sessionId}/summary"},
			},
		},
		&controltypes.MemoryStrategyInputMemberUserPreferenceMemoryStrategy{
			Value: controltypes.UserPreferenceMemoryStrategyInput{
				Name:       aws.String("preferences"),
				Namespaces: []string{"app/{actorId}/preferences"},
			},
		},
		&controltypes.MemoryStrategyInputMemberSemanticMemoryStrategy{
			Value: controltypes.SemanticMemoryStrategyInput{
				Name:       aws.String("semantic"),
				Namespaces: []string{"app/{actorId}/semantic"},
			},
		},
	}
}

// Seed stores two sample conversations for user_001 and waits for the
// asynchronous extraction pass.
func (s *Service) Seed(ctx context.Context) error {
	var cfg configfile.Memory
	if err := s.Files.Load(configfile.MemoryFile, &cfg); err != nil {
		if configfile.IsNotFound(err) {
			return fmt.Errorf("%s not found: run create-memory first", configfile.MemoryFile)
		}
		return err
	}

	provision.Banner(s.Out, "SEED AGENTCORE MEMORY")
	provision.Step(s.Out, "Memory ID: %s", cfg.MemoryID)
	provision.Step(s.Out, "Customer ID: %s", ActorID)

	provision.Step(s.Out, "Storing Conversation 1: Email preference and defective laptop history")
	if err := s.storeConversation(ctx, cfg.MemoryID, "session_001", conversationOne); err != nil {
		return err
	}
	provision.Step(s.Out, "Stored %d messages from conversation 1", len(conversationOne))

	s.sleep(2 * time.Second)

	provision.Step(s.Out, "Storing Conversation 2: Return windows for electronics inquiry")
	if err := s.storeConversation(ctx, cfg.MemoryID, "session_002", conversationTwo); err != nil {
		return err
	}
	provision.Step(s.Out, "Stored %d messages from conversation 2", len(conversationTwo))

	provision.Step(s.Out, "Waiting %s for memory extraction...", extractionWait)
	for remaining := extractionWait; remaining > 0; remaining -= 5 * time.Second {
		provision.Step(s.Out, "  %s remaining...", remaining)
		s.sleep(5 * time.Second)
	}
	provision.Step(s.Out, "Memory seeding complete")
	return nil
}

type message struct {
	text string
	role datatypes.Role
}

var conversationOne = []message{
	{"Hello, I need help with a return. I prefer to receive notifications via email.", datatypes.RoleUser},
	{"I'd be happy to help you with your return! I've noted your preference for email notifications. Could you please tell me more about the item you'd like to return?", datatypes.RoleAssistant},
	{"I previously returned a defective laptop last month and want to make sure the process is the same.", datatypes.RoleUser},
	{"Yes, the return process is the same. For defective items like your laptop, you're eligible for a full refund including shipping costs. The return window for electronics is 30 days from purchase. Is this a new return you'd like to process?", datatypes.RoleAssistant},
}

var conversationTwo = []message{
	{"Hi, I have a question about return policies. What's the return window for electronics?", datatypes.RoleUser},
	{"Great question! For most electronics, the return window is 30 days from the date of purchase. This includes items like laptops, tablets, smartphones, and other electronic devices. The item should be in its original condition with all accessories and packaging.", datatypes.RoleAssistant},
	{"And what if the item is defective? Is the window the same?", datatypes.RoleUser},
	{"Yes, the 30-day window applies to defective items as well. However, for defective items, you'll receive a full refund including any shipping costs you paid. We also waive any restocking fees for defective products.", datatypes.RoleAssistant},
	{"That's helpful, thank you!", datatypes.RoleUser},
	{"You're welcome! If you need to process a return, just let me know and I'll guide you through the process.", datatypes.RoleAssistant},
}

func (s *Service) storeConversation(ctx context.Context, memoryID, sessionID string, messages []message) error {
	payload := make([]datatypes.PayloadType, 0, len(messages))
	for _, msg := range messages {
		payload = append(payload, &datatypes.PayloadTypeMemberConversational{
			Value: datatypes.Conversational{
				Content: &datatypes.ContentMemberText{Value: msg.text},
				Role:    msg.role,
			},
		})
	}
	_, err := s.Data.CreateEvent(ctx, &bedrockagentcore.CreateEventInput{
		MemoryId:       aws.String(memoryID),
		ActorId:        aws.String(ActorID),
		SessionId:      aws.String(sessionID),
		EventTimestamp: aws.Time(s.now()),
		Payload:        payload,
	})
	if err != nil {
		return fmt.Errorf("create event for %s: %w", sessionID, err)
	}
	return nil
}

// Test retrieves memories from every namespace the strategies extract
// into and prints what the agent would remember about user_001.
func (s *Service) Test(ctx context.Context) error {
	var cfg configfile.Memory
	if err := s.Files.Load(configfile.MemoryFile, &cfg); err != nil {
		if configfile.IsNotFound(err) {
			return fmt.Errorf("%s not found: run create-memory first", configfile.MemoryFile)
		}
		return err
	}

	provision.Banner(s.Out, "AGENTCORE MEMORY RETRIEVAL TEST")
	provision.Step(s.Out, "Memory ID: %s", cfg.MemoryID)
	provision.Step(s.Out, "Customer: %s", ActorID)

	probes := []struct {
		description string
		namespace   string
		query       string
	}{
		{"PREFERENCES - What does the customer prefer?", "app/user_001/preferences", "customer preferences and communication"},
		{"SEMANTIC - What facts do we know about this customer?", "app/user_001/semantic", "previous returns and laptop"},
		{"SUMMARY (Session 1) - What was discussed?", "app/user_001/session_001/summary", "conversation summary"},
		{"SUMMARY (Session 2) - What was discussed?", "app/user_001/session_002/summary", "conversation summary"},
	}
	for _, probe := range probes {
		provision.Step(s.Out, "\n%s", probe.description)
		provision.Step(s.Out, "  Namespace: %s", probe.namespace)
		provision.Step(s.Out, "  Query: %q", probe.query)
		if err := s.retrieve(ctx, cfg.MemoryID, probe.namespace, probe.query); err != nil {
			provision.Step(s.Out, "  Error: %v", err)
		}
	}
	return nil
}

func (s *Service) retrieve(ctx context.Context, memoryID, namespace, query string) error {
	out, err := s.Data.RetrieveMemoryRecords(ctx, &bedrockagentcore.RetrieveMemoryRecordsInput{
		MemoryId:  aws.String(memoryID),
		Namespace: aws.String(namespace),
		SearchCriteria: &datatypes.SearchCriteria{
			SearchQuery: aws.String(query),
			TopK:        aws.Int32(3),
		},
	})
	if err != nil {
		return err
	}
	if len(out.MemoryRecordSummaries) == 0 {
		provision.Step(s.Out, "  No memories found (extraction may still be processing)")
		return nil
	}
	for i, record := range out.MemoryRecordSummaries {
		text := ""
		if content, ok := record.Content.(*datatypes.MemoryContentMemberText); ok {
			text = content.Value
		}
		provision.Step(s.Out, "  Memory %d: %s", i+1, text)
		if record.Score != nil {
			provision.Step(s.Out, "    Relevance Score: %.3f", *record.Score)
		}
	}
	return nil
}

// Delete removes the memory store. A missing config file or an already
// deleted resource both count as success so the command is rerunnable.
func (s *Service) Delete(ctx context.Context) (provision.Outcome, error) {
	var cfg configfile.Memory
	if err := s.Files.Load(configfile.MemoryFile, &cfg); err != nil {
		if configfile.IsNotFound(err) {
			provision.Step(s.Out, "%s not found - nothing to delete", configfile.MemoryFile)
			return provision.AlreadyAbsent, nil
		}
		return "", err
	}

	provision.Step(s.Out, "Deleting memory %s...", cfg.MemoryID)
	_, err := s.Control.DeleteMemory(ctx, &bedrockagentcorecontrol.DeleteMemoryInput{
		MemoryId: aws.String(cfg.MemoryID),
	})
	if err != nil {
		var notFound *controltypes.ResourceNotFoundException
		if errors.As(err, &notFound) || provision.IsNotFound(err) {
			provision.Step(s.Out, "Memory already deleted")
			if err := s.Files.Remove(configfile.MemoryFile); err != nil {
				return "", err
			}
			return provision.AlreadyAbsent, nil
		}
		return "", fmt.Errorf("delete memory: %w", err)
	}
	if err := s.Files.Remove(configfile.MemoryFile); err != nil {
		return "", err
	}
	provision.Step(s.Out, "Memory deleted and %s removed", configfile.MemoryFile)
	return provision.Deleted, nil
}
