package server

import (
	"context"
	"fmt"
	"io"
	"os"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/audit"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/cache"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/config"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/configfile"
	acmcp "github.com/narendrakumarsharma-byte/aws-ai-class/internal/mcp"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/policy"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/redact"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/script"
)

type Options struct {
	ConfigPath         string
	Region             string
	Profile            string
	OutputDir          string
	Toolsets           []string
	ReadOnly           bool
	DisableDestructive bool
	LogLevel           string
	Version            string
	Stderr             io.Writer
	// Transport overrides the stdio transport, used by tests.
	Transport sdkmcp.Transport
}

func Run(ctx context.Context, opts Options) error {
	errOut := opts.Stderr
	if errOut == nil {
		errOut = os.Stderr
	}
	configPath := opts.ConfigPath
	if configPath == "" {
		if env := os.Getenv("AGENTCORE_CONFIG"); env != "" {
			configPath = env
		}
	}
	overrides := config.Overrides{}
	if opts.Region != "" {
		overrides.Region = &opts.Region
	}
	if opts.Profile != "" {
		overrides.Profile = &opts.Profile
	}
	if opts.OutputDir != "" {
		overrides.OutputDir = &opts.OutputDir
	}
	if len(opts.Toolsets) > 0 {
		overrides.Toolsets = &opts.Toolsets
	}
	if opts.ReadOnly {
		overrides.ReadOnly = &opts.ReadOnly
	}
	if opts.DisableDestructive {
		overrides.DisableDestructive = &opts.DisableDestructive
	}
	if opts.LogLevel != "" {
		overrides.LogLevel = &opts.LogLevel
	}

	cfg, err := config.Load(configPath, "", overrides)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	toolCtx, reg, err := buildRuntime(cfg, errOut)
	if err != nil {
		return fmt.Errorf("init failed: %w", err)
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "agentcore", Version: opts.Version}, nil)
	toolNames, err := acmcp.RegisterSDKTools(server, reg, toolCtx)
	if err != nil {
		return fmt.Errorf("tool registration failed: %w", err)
	}

	reloadCh := make(chan os.Signal, 1)
	notifyReload(reloadCh)
	go func() {
		for range reloadCh {
			cfg, err := config.Load(configPath, "", overrides)
			if err != nil {
				fmt.Fprintf(errOut, "config reload failed: %v\n", err)
				continue
			}
			toolCtx, reg, err := buildRuntime(cfg, errOut)
			if err != nil {
				fmt.Fprintf(errOut, "reload init failed: %v\n", err)
				continue
			}
			if len(toolNames) > 0 {
				server.RemoveTools(toolNames...)
			}
			toolNames, err = acmcp.RegisterSDKTools(server, reg, toolCtx)
			if err != nil {
				fmt.Fprintf(errOut, "tool registration failed: %v\n", err)
				continue
			}
		}
	}()

	transport := opts.Transport
	if transport == nil {
		transport = &sdkmcp.StdioTransport{}
	}
	if err := server.Run(ctx, transport); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func buildRuntime(cfg config.Config, errOut io.Writer) (acmcp.ToolContext, *acmcp.ToolRegistry, error) {
	authorizer := policy.NewAuthorizer()
	redactor := redact.New()
	renderer := script.NewRenderer()
	auditLogger := audit.NewLogger(errOut)
	serviceRegistry := acmcp.NewServiceRegistry()
	reg := acmcp.NewRegistry(&cfg)

	toolCtx := acmcp.ToolContext{
		Config:   &cfg,
		Files:    configfile.NewStore(cfg.OutputDir),
		Policy:   authorizer,
		Renderer: renderer,
		Redactor: redactor,
		Audit:    auditLogger,
		Services: serviceRegistry,
		Cache:    cache.NewStore(),
		Registry: reg,
	}
	toolCtx.Invoker = acmcp.NewToolInvoker(reg, toolCtx)
	toolsetCtx := acmcp.ToolsetContext(toolCtx)

	for _, id := range cfg.Toolsets {
		factory, ok := acmcp.ToolsetFactoryFor(id)
		if !ok {
			return acmcp.ToolContext{}, nil, fmt.Errorf("unknown toolset: %s", id)
		}
		toolset := factory()
		if err := toolset.Init(toolsetCtx); err != nil {
			return acmcp.ToolContext{}, nil, err
		}
		if err := toolset.Register(reg); err != nil {
			return acmcp.ToolContext{}, nil, err
		}
	}

	return toolCtx, reg, nil
}
