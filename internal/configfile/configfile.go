// Package configfile reads and writes the flat JSON files the
// provisioning commands use to hand resource identifiers to each other.
// Every file lives in one directory (the working directory by default)
// and is overwritten whole on save.
package configfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	GatewayRoleFile = "gateway_role_config.json"
	RuntimeRoleFile = "runtime_execution_role_config.json"
	CognitoFile     = "cognito_config.json"
	GatewayFile     = "gateway_config.json"
	LambdaFile      = "lambda_config.json"
	MemoryFile      = "memory_config.json"
	RuntimeFile     = "runtime_config.json"
	KnowledgeFile   = "kb_config.json"
)

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Path(name string) string {
	if s == nil || s.dir == "" {
		return name
	}
	return filepath.Join(s.dir, name)
}

func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

func (s *Store) Load(name string, v any) error {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s not found: %w", name, err)
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func (s *Store) Save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(s.Path(name), data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Remove deletes a config file. A missing file is not an error so
// delete commands stay rerunnable.
func (s *Store) Remove(name string) error {
	err := os.Remove(s.Path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

// IsNotFound reports whether err came from loading a config file that
// does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

type GatewayRole struct {
	RoleArn    string `json:"role_arn"`
	RoleName   string `json:"role_name"`
	PolicyArn  string `json:"policy_arn"`
	PolicyName string `json:"policy_name"`
	Region     string `json:"region"`
	AccountID  string `json:"account_id"`
}

type RuntimeRole struct {
	RoleName   string `json:"role_name"`
	RoleArn    string `json:"role_arn"`
	PolicyName string `json:"policy_name"`
	PolicyArn  string `json:"policy_arn"`
	Region     string `json:"region"`
	AccountID  string `json:"account_id,omitempty"`
}

type Cognito struct {
	UserPoolID               string   `json:"user_pool_id"`
	DomainPrefix             string   `json:"domain_prefix"`
	ClientID                 string   `json:"client_id"`
	ClientSecret             string   `json:"client_secret"`
	TokenEndpoint            string   `json:"token_endpoint"`
	DiscoveryURL             string   `json:"discovery_url"`
	Region                   string   `json:"region"`
	ResourceServerIdentifier string   `json:"resource_server_identifier"`
	Scopes                   []string `json:"scopes"`
}

// Gateway keeps both "id" and "gateway_id" so older scripts that read
// either key keep working. Target fields are filled in when a Lambda
// target is attached.
type Gateway struct {
	ID                  string `json:"id"`
	GatewayID           string `json:"gateway_id"`
	GatewayURL          string `json:"gateway_url"`
	GatewayArn          string `json:"gateway_arn"`
	Name                string `json:"name"`
	Region              string `json:"region"`
	CognitoClientID     string `json:"cognito_client_id,omitempty"`
	CognitoClientSecret string `json:"cognito_client_secret,omitempty"`
	TokenEndpoint       string `json:"token_endpoint,omitempty"`
	TargetID            string `json:"target_id,omitempty"`
	TargetName          string `json:"target_name,omitempty"`
	LambdaArn           string `json:"lambda_arn,omitempty"`
}

type Lambda struct {
	FunctionName  string           `json:"function_name"`
	FunctionArn   string           `json:"function_arn"`
	LambdaRoleArn string           `json:"lambda_role_arn"`
	Region        string           `json:"region"`
	ToolSchema    []map[string]any `json:"tool_schema"`
	SampleOrders  []string         `json:"sample_orders,omitempty"`
}

type Memory struct {
	MemoryID string `json:"memory_id"`
	Name     string `json:"name"`
	Region   string `json:"region"`
}

type Runtime struct {
	AgentArn   string `json:"agent_arn"`
	AgentName  string `json:"agent_name"`
	Status     string `json:"status,omitempty"`
	Region     string `json:"region"`
	MemoryID   string `json:"memory_id,omitempty"`
	GatewayURL string `json:"gateway_url,omitempty"`
}

type KnowledgeBase struct {
	KnowledgeBaseID string `json:"knowledge_base_id"`
	Region          string `json:"region,omitempty"`
}
