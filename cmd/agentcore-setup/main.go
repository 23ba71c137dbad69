// Command agentcore-setup provisions the AWS side of the returns agent:
// IAM roles, Cognito OAuth, the order-lookup Lambda, AgentCore Memory,
// Gateway, and Runtime. Every subcommand is rerunnable; resources that
// already exist are reused and deletes of missing resources succeed.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcore"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcorecontrol"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/joho/godotenv"

	awsconfig "github.com/narendrakumarsharma-byte/aws-ai-class/internal/aws"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/configfile"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/provision/cognito"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/provision/gateway"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/provision/iamrole"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/provision/lambdafn"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/provision/logs"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/provision/memory"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/provision/runtime"
)

var exit = os.Exit
var runCommand = dispatch

func main() {
	// .env carries AWS_PROFILE / AWS_REGION for local runs; a missing
	// file is fine.
	_ = godotenv.Load()

	if err := runCommand(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		exit(1)
	}
}

type command struct {
	summary string
	run     func(ctx context.Context, args []string, stdout, stderr io.Writer) error
}

var commands = map[string]command{
	"create-gateway-role": {"create the IAM role the gateway assumes", runCreateGatewayRole},
	"create-runtime-role": {"create the runtime execution IAM role", runCreateRuntimeRole},
	"create-cognito":      {"create the Cognito OAuth user pool and client", runCreateCognito},
	"create-lambda":       {"deploy the order-lookup Lambda function", runCreateLambda},
	"create-memory":       {"create the AgentCore Memory with its strategies", runCreateMemory},
	"seed-memory":         {"store sample conversations in memory", runSeedMemory},
	"test-memory":         {"query every memory namespace", runTestMemory},
	"delete-memory":       {"delete the AgentCore Memory", runDeleteMemory},
	"create-gateway":      {"create the AgentCore Gateway with JWT auth", runCreateGateway},
	"add-lambda-target":   {"attach the Lambda as a gateway target", runAddLambdaTarget},
	"list-targets":        {"list gateway targets and their tools", runListTargets},
	"delete-gateway":      {"delete gateway targets then the gateway", runDeleteGateway},
	"runtime-status":      {"check the runtime deployment status", runRuntimeStatus},
	"deploy-status":       {"alias of runtime-status", runRuntimeStatus},
	"invoke-agent":        {"invoke the deployed agent over OAuth", runInvokeAgent},
	"delete-runtime":      {"delete the agent runtime", runDeleteRuntime},
	"recent-logs":         {"print recent runtime log events", runRecentLogs},
	"logs-info":           {"print log group and tail commands", runLogsInfo},
	"dashboard-url":       {"print the GenAI observability console URL", runDashboardURL},
}

func dispatch(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return fmt.Errorf("missing command")
	}
	name := args[0]
	switch name {
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	}
	cmd, ok := commands[name]
	if !ok {
		printUsage(stderr)
		return fmt.Errorf("unknown command %q", name)
	}
	return cmd.run(ctx, args[1:], stdout, stderr)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: agentcore-setup <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-21s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common flags: -region, -output-dir (config file directory)")
}

type commonFlags struct {
	region    string
	outputDir string
}

func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *commonFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	common := &commonFlags{}
	fs.StringVar(&common.region, "region", "", "AWS region")
	fs.StringVar(&common.outputDir, "output-dir", "", "directory for the JSON config files")
	return fs, common
}

func newEnv(ctx context.Context, common *commonFlags) (*clients, error) {
	cfg, err := awsconfig.LoadConfig(ctx, common.region)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &clients{
		iam:     iam.NewFromConfig(cfg),
		sts:     sts.NewFromConfig(cfg),
		cognito: cognitoidentityprovider.NewFromConfig(cfg),
		lambda:  lambda.NewFromConfig(cfg),
		control: bedrockagentcorecontrol.NewFromConfig(cfg),
		data:    bedrockagentcore.NewFromConfig(cfg),
		logs:    cloudwatchlogs.NewFromConfig(cfg),
		files:   configfile.NewStore(common.outputDir),
		region:  cfg.Region,
	}, nil
}

type clients struct {
	iam     *iam.Client
	sts     *sts.Client
	cognito *cognitoidentityprovider.Client
	lambda  *lambda.Client
	control *bedrockagentcorecontrol.Client
	data    *bedrockagentcore.Client
	logs    *cloudwatchlogs.Client
	files   *configfile.Store
	region  string
}

func (c *clients) iamRoles(out io.Writer) *iamrole.Service {
	return &iamrole.Service{IAM: c.iam, STS: c.sts, Files: c.files, Region: c.region, Out: out}
}

func runCreateGatewayRole(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, common := newFlagSet("create-gateway-role", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := newEnv(ctx, common)
	if err != nil {
		return err
	}
	_, err = c.iamRoles(stdout).CreateGatewayRole(ctx)
	return err
}

func runCreateRuntimeRole(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, common := newFlagSet("create-runtime-role", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := newEnv(ctx, common)
	if err != nil {
		return err
	}
	_, err = c.iamRoles(stdout).CreateRuntimeRole(ctx)
	return err
}

func runCreateCognito(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, common := newFlagSet("create-cognito", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := newEnv(ctx, common)
	if err != nil {
		return err
	}
	svc := &cognito.Service{
		Cognito: c.cognito,
		Files:   c.files,
		Region:  c.region,
		Out:     stdout,
	}
	_, err = svc.Create(ctx)
	return err
}

func runCreateLambda(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, common := newFlagSet("create-lambda", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := newEnv(ctx, common)
	if err != nil {
		return err
	}
	svc := &lambdafn.Service{
		Lambda: c.lambda,
		IAM:    c.iam,
		STS:    c.sts,
		Files:  c.files,
		Region: c.region,
		Out:    stdout,
	}
	_, err = svc.Create(ctx)
	return err
}

func (c *clients) memories(out io.Writer) *memory.Service {
	return &memory.Service{
		Control: c.control,
		Data:    c.data,
		Files:   c.files,
		Region:  c.region,
		Out:     out,
	}
}

func runCreateMemory(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, common := newFlagSet("create-memory", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := newEnv(ctx, common)
	if err != nil {
		return err
	}
	_, err = c.memories(stdout).Create(ctx)
	return err
}

func runSeedMemory(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, common := newFlagSet("seed-memory", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := newEnv(ctx, common)
	if err != nil {
		return err
	}
	return c.memories(stdout).Seed(ctx)
}

func runTestMemory(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, common := newFlagSet("test-memory", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := newEnv(ctx, common)
	if err != nil {
		return err
	}
	return c.memories(stdout).Test(ctx)
}

func runDeleteMemory(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, common := newFlagSet("delete-memory", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := newEnv(ctx, common)
	if err != nil {
		return err
	}
	_, err = c.memories(stdout).Delete(ctx)
	return err
}

func (c *clients) gateways(out io.Writer) *gateway.Service {
	return &gateway.Service{Control: c.control, Files: c.files, Region: c.region, Out: out}
}

func runCreateGateway(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, common := newFlagSet("create-gateway", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := newEnv(ctx, common)
	if err != nil {
		return err
	}
	_, err = c.gateways(stdout).Create(ctx)
	return err
}

func runAddLambdaTarget(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, common := newFlagSet("add-lambda-target", stderr)
	schemaFile := fs.String("schema-file", "", "YAML or JSON tool schema overriding lambda_config.json")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := newEnv(ctx, common)
	if err != nil {
		return err
	}
	_, err = c.gateways(stdout).AddLambdaTarget(ctx, *schemaFile)
	return err
}

func runListTargets(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, common := newFlagSet("list-targets", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := newEnv(ctx, common)
	if err != nil {
		return err
	}
	return c.gateways(stdout).ListTargets(ctx)
}

func runDeleteGateway(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, common := newFlagSet("delete-gateway", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := newEnv(ctx, common)
	if err != nil {
		return err
	}
	_, err = c.gateways(stdout).Delete(ctx)
	return err
}

func (c *clients) runtimes(out io.Writer) *runtime.Service {
	return &runtime.Service{Control: c.control, Files: c.files, Region: c.region, Out: out}
}

func runRuntimeStatus(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, common := newFlagSet("runtime-status", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := newEnv(ctx, common)
	if err != nil {
		return err
	}
	_, err = c.runtimes(stdout).Status(ctx)
	return err
}

func runInvokeAgent(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, common := newFlagSet("invoke-agent", stderr)
	prompt := fs.String("prompt", "", "prompt to send (defaults to the sample order lookup)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := newEnv(ctx, common)
	if err != nil {
		return err
	}
	return c.runtimes(stdout).Invoke(ctx, *prompt)
}

func runDeleteRuntime(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, common := newFlagSet("delete-runtime", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := newEnv(ctx, common)
	if err != nil {
		return err
	}
	_, err = c.runtimes(stdout).Delete(ctx)
	return err
}

func (c *clients) runtimeLogs(out io.Writer) *logs.Service {
	return &logs.Service{Logs: c.logs, Files: c.files, Region: c.region, Out: out}
}

func runRecentLogs(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, common := newFlagSet("recent-logs", stderr)
	hoursBack := fs.Int("hours-back", 1, "how many hours of logs to fetch")
	limit := fs.Int("limit", 50, "maximum number of log events")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := newEnv(ctx, common)
	if err != nil {
		return err
	}
	return c.runtimeLogs(stdout).Recent(ctx, *hoursBack, int32(*limit))
}

func runLogsInfo(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, common := newFlagSet("logs-info", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := newEnv(ctx, common)
	if err != nil {
		return err
	}
	return c.runtimeLogs(stdout).Info()
}

func runDashboardURL(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, common := newFlagSet("dashboard-url", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := newEnv(ctx, common)
	if err != nil {
		return err
	}
	c.runtimeLogs(stdout).Dashboard()
	return nil
}
