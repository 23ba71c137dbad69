package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWithOverridesAndDropIns(t *testing.T) {
	dir := t.TempDir()
	mainCfg := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(mainCfg, []byte(`
toolsets = ["memory"]
read_only = true
log_level = "debug"
`), 0600); err != nil {
		t.Fatalf("write main config: %v", err)
	}

	dropInDir := filepath.Join(dir, "dropins")
	if err := os.MkdirAll(dropInDir, 0700); err != nil {
		t.Fatalf("mkdir dropins: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dropInDir, "10-base.toml"), []byte(`
disable_destructive = true
log_level = "info"
`), 0600); err != nil {
		t.Fatalf("write dropin: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dropInDir, "20-override.toml"), []byte(`
log_level = "warn"
toolsets = ["memory","gateway"]
`), 0600); err != nil {
		t.Fatalf("write dropin: %v", err)
	}

	overrideReadOnly := false
	overrideRegion := "eu-west-1"
	cfg, err := Load(mainCfg, dropInDir, Overrides{ReadOnly: &overrideReadOnly, Region: &overrideRegion})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ReadOnly {
		t.Fatalf("expected override read_only false")
	}
	if cfg.DisableDestructive != true {
		t.Fatalf("expected disable_destructive from drop-in")
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected drop-in override log_level, got %q", cfg.LogLevel)
	}
	if cfg.Region != "eu-west-1" {
		t.Fatalf("expected override region, got %q", cfg.Region)
	}
	if len(cfg.Toolsets) != 2 || cfg.Toolsets[0] != "memory" || cfg.Toolsets[1] != "gateway" {
		t.Fatalf("expected toolsets overridden from drop-in, got %#v", cfg.Toolsets)
	}
}

func TestLoadSafetyConfig(t *testing.T) {
	dir := t.TempDir()
	mainCfg := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(mainCfg, []byte(`
[safety]
allow_destructive_tools = ["agentcore_gateway_delete"]
`), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(mainCfg, "", Overrides{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Safety.AllowDestructiveTools) != 1 || cfg.Safety.AllowDestructiveTools[0] != "agentcore_gateway_delete" {
		t.Fatalf("unexpected safety config: %#v", cfg.Safety)
	}
}

func TestDropInFilesMissingDir(t *testing.T) {
	files, err := dropInFiles(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("dropInFiles: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no files, got %#v", files)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := readFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestReadFileInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("invalid = ["), 0600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	_, err := readFile(path)
	if err == nil {
		t.Fatalf("expected error for invalid toml")
	}
}

func TestMergeTimeoutsAndCache(t *testing.T) {
	dst := Config{}
	src := Config{
		ReadOnly: true,
		Timeouts: TimeoutConfig{
			DefaultSeconds: 10,
			MaxSeconds:     20,
			PerTool:        map[string]int{"agentcore_memory_create": 5},
		},
		Cache: CacheConfig{
			ResultTTLSeconds: 11,
		},
	}
	merge(&dst, src)
	if !dst.ReadOnly {
		t.Fatalf("expected read_only to be set")
	}
	if dst.Timeouts.DefaultSeconds != 10 || dst.Timeouts.MaxSeconds != 20 {
		t.Fatalf("unexpected timeouts: %#v", dst.Timeouts)
	}
	if dst.Timeouts.PerTool["agentcore_memory_create"] != 5 {
		t.Fatalf("expected per-tool timeout")
	}
	if dst.Cache.ResultTTLSeconds != 11 {
		t.Fatalf("unexpected cache config: %#v", dst.Cache)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()
	toolsets := []string{"memory"}
	readOnly := true
	disable := true
	logLevel := "warn"
	region := "us-east-1"
	profile := "dev"
	outputDir := "/tmp/agentcore"
	applyOverrides(&cfg, Overrides{
		Region:             &region,
		Profile:            &profile,
		OutputDir:          &outputDir,
		Toolsets:           &toolsets,
		ReadOnly:           &readOnly,
		DisableDestructive: &disable,
		LogLevel:           &logLevel,
	})
	if cfg.Region != region || cfg.Profile != profile || cfg.OutputDir != outputDir {
		t.Fatalf("unexpected overrides: %#v", cfg)
	}
	if len(cfg.Toolsets) != 1 || cfg.Toolsets[0] != "memory" {
		t.Fatalf("unexpected toolsets: %#v", cfg.Toolsets)
	}
	if !cfg.ReadOnly || !cfg.DisableDestructive || cfg.LogLevel != "warn" {
		t.Fatalf("unexpected overrides applied: %#v", cfg)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Region != "us-west-2" {
		t.Fatalf("unexpected default region: %q", cfg.Region)
	}
	if len(cfg.Toolsets) != 6 {
		t.Fatalf("unexpected default toolsets: %#v", cfg.Toolsets)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected default log level: %q", cfg.LogLevel)
	}
}
