// Package logs inspects the CloudWatch logs of the deployed AgentCore
// Runtime and prints observability pointers.
package logs

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"

	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/configfile"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/provision"
)

const logGroupPrefix = "/aws/bedrock-agentcore/runtimes/"

type API interface {
	FilterLogEvents(ctx context.Context, in *cloudwatchlogs.FilterLogEventsInput, opts ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.FilterLogEventsOutput, error)
}

type Service struct {
	Logs   API
	Files  *configfile.Store
	Region string
	Out    io.Writer
	Now    func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) agentID() (string, error) {
	var cfg configfile.Runtime
	if err := s.Files.Load(configfile.RuntimeFile, &cfg); err != nil {
		if configfile.IsNotFound(err) {
			return "", fmt.Errorf("%s not found: deploy the agent first", configfile.RuntimeFile)
		}
		return "", err
	}
	parts := strings.Split(cfg.AgentArn, "/")
	return parts[len(parts)-1], nil
}

// LogGroup returns the runtime log group for the deployed agent.
func (s *Service) LogGroup() (string, error) {
	agentID, err := s.agentID()
	if err != nil {
		return "", err
	}
	return logGroupPrefix + agentID + "-DEFAULT", nil
}

// Recent prints log events from the last hoursBack hours, newest
// window first as CloudWatch returns them. A missing log group is a
// notice, not an error.
func (s *Service) Recent(ctx context.Context, hoursBack int, limit int32) error {
	logGroup, err := s.LogGroup()
	if err != nil {
		return err
	}

	provision.Banner(s.Out, "RECENT RUNTIME LOGS")
	provision.Step(s.Out, "Retrieving logs from %s (last %dh, limit %d)...", logGroup, hoursBack, limit)

	startTime := s.now().Add(-time.Duration(hoursBack) * time.Hour).UnixMilli()
	out, err := s.Logs.FilterLogEvents(ctx, &cloudwatchlogs.FilterLogEventsInput{
		LogGroupName: aws.String(logGroup),
		StartTime:    aws.Int64(startTime),
		Limit:        aws.Int32(limit),
	})
	if err != nil {
		if provision.IsNotFound(err) {
			provision.Step(s.Out, "Log group not found: %s", logGroup)
			provision.Step(s.Out, "The agent may not have been invoked yet")
			return nil
		}
		return fmt.Errorf("filter log events: %w", err)
	}

	if len(out.Events) == 0 {
		provision.Step(s.Out, "No log events in the last %dh", hoursBack)
		return nil
	}
	provision.Step(s.Out, "Found %d event(s)", len(out.Events))
	for _, event := range out.Events {
		ts := time.UnixMilli(aws.ToInt64(event.Timestamp)).UTC().Format("2006-01-02 15:04:05")
		fmt.Fprintf(s.Out, "[%s] %s\n", ts, strings.TrimRight(aws.ToString(event.Message), "\n"))
	}
	return nil
}

// Info prints the log group, today's stream prefix, and ready-to-paste
// aws logs tail commands. No AWS call is made.
func (s *Service) Info() error {
	logGroup, err := s.LogGroup()
	if err != nil {
		return err
	}
	agentID, err := s.agentID()
	if err != nil {
		return err
	}

	streamPrefix := fmt.Sprintf("%s/[runtime-logs]", s.now().Format("2006/01/02"))
	provision.Banner(s.Out, "CLOUDWATCH LOGS INFORMATION")
	provision.Step(s.Out, "Agent ID:      %s", agentID)
	provision.Step(s.Out, "Log group:     %s", logGroup)
	provision.Step(s.Out, "Stream prefix: %s", streamPrefix)
	provision.Step(s.Out, "Region:        %s", s.Region)
	provision.Step(s.Out, "Tail logs (real-time):")
	provision.Step(s.Out, "  aws logs tail %s --log-stream-name-prefix \"%s\" --follow", logGroup, streamPrefix)
	provision.Step(s.Out, "Recent logs (last hour):")
	provision.Step(s.Out, "  aws logs tail %s --log-stream-name-prefix \"%s\" --since 1h", logGroup, streamPrefix)
	return nil
}

// DashboardURL returns the GenAI Observability console URL for the
// region.
func DashboardURL(region string) string {
	return fmt.Sprintf("https://console.aws.amazon.com/cloudwatch/home?region=%s#gen-ai-observability/agent-core", region)
}

// Dashboard prints the console URL. No AWS call is made.
func (s *Service) Dashboard() {
	provision.Banner(s.Out, "GENAI OBSERVABILITY DASHBOARD")
	provision.Step(s.Out, "Dashboard URL: %s", DashboardURL(s.Region))
	provision.Step(s.Out, "Open it in a browser to see traces, sessions, and token usage")
}
