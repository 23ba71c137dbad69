package sdk

import (
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/configfile"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/mcp"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/policy"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/redact"
	"github.com/narendrakumarsharma-byte/aws-ai-class/internal/script"
)

// Core toolset interfaces and types.
type Toolset = mcp.Toolset

type ToolsetContext = mcp.ToolsetContext

type ToolSpec = mcp.ToolSpec

type ToolHandler = mcp.ToolHandler

type ToolSafety = mcp.ToolSafety

type ToolRequest = mcp.ToolRequest

type ToolResult = mcp.ToolResult

type ToolMetadata = mcp.ToolMetadata

type Registry = mcp.Registry

const (
	SafetyReadOnly    = mcp.SafetyReadOnly
	SafetyWrite       = mcp.SafetyWrite
	SafetyRiskyWrite  = mcp.SafetyRiskyWrite
	SafetyDestructive = mcp.SafetyDestructive
)

// Toolset registration for plugin discovery.
func RegisterToolset(id string, factory mcp.ToolsetFactory) error {
	return mcp.RegisterToolset(id, factory)
}

func MustRegisterToolset(id string, factory mcp.ToolsetFactory) {
	mcp.MustRegisterToolset(id, factory)
}

func RegisteredToolsets() []string {
	return mcp.RegisteredToolsets()
}

// Shared services and invoker.
type ServiceRegistry = mcp.ServiceRegistry

type ToolInvoker = mcp.ToolInvoker

// Script rendering helpers.
type Script = script.Script

type Renderer = script.Renderer

type Redactor = redact.Redactor

func NewRenderer() Renderer {
	return script.NewRenderer()
}

func PyStr(s string) string {
	return script.PyStr(s)
}

func PyMultiline(s string) string {
	return script.PyMultiline(s)
}

func PyBool(b bool) string {
	return script.PyBool(b)
}

func PyValue(v any) string {
	return script.PyValue(v)
}

func PyIndented(v any) string {
	return script.PyIndented(v)
}

func SafeName(s string) string {
	return script.SafeName(s)
}

func SafeFile(s string) string {
	return script.SafeFile(s)
}

// Provisioning config file helpers.
type FileStore = configfile.Store

func NewFileStore(dir string) *FileStore {
	return configfile.NewStore(dir)
}

// Policy helpers.
type User = policy.User

type Role = policy.Role

const (
	RoleAdmin      = policy.RoleAdmin
	RoleRestricted = policy.RoleRestricted
)
