package configfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	in := Memory{MemoryID: "mem-123", Name: "customer_support", Region: "us-west-2"}
	if err := store.Save(MemoryFile, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	var out Memory
	if err := store.Load(MemoryFile, &out); err != nil {
		t.Fatalf("load: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: %#v", out)
	}
}

func TestSaveWritesSnakeCaseKeys(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	if err := store.Save(GatewayFile, Gateway{ID: "gw-1", GatewayID: "gw-1", GatewayURL: "https://x", Name: "Demo", Region: "us-west-2"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, GatewayFile))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, key := range []string{`"id"`, `"gateway_id"`, `"gateway_url"`, `"gateway_arn"`} {
		if !strings.Contains(string(data), key) {
			t.Fatalf("expected key %s in output: %s", key, data)
		}
	}
}

func TestLoadMissingIsNotFound(t *testing.T) {
	store := NewStore(t.TempDir())
	var out Memory
	err := store.Load(MemoryFile, &out)
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestRemoveMissingIsNil(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Remove(MemoryFile); err != nil {
		t.Fatalf("remove missing: %v", err)
	}
}

func TestPathWithoutDir(t *testing.T) {
	store := NewStore("")
	if got := store.Path(MemoryFile); got != MemoryFile {
		t.Fatalf("expected bare name, got %q", got)
	}
}

func TestExists(t *testing.T) {
	store := NewStore(t.TempDir())
	if store.Exists(CognitoFile) {
		t.Fatalf("expected missing file")
	}
	if err := store.Save(CognitoFile, Cognito{UserPoolID: "pool"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !store.Exists(CognitoFile) {
		t.Fatalf("expected file to exist")
	}
}
