package sdk

import (
	"fmt"
	"testing"
	"time"
)

func TestRegisterAndListToolsets(t *testing.T) {
	id := fmt.Sprintf("sdk-test-%d", time.Now().UnixNano())
	err := RegisterToolset(id, func() Toolset { return nil })
	if err != nil {
		t.Fatalf("register toolset: %v", err)
	}
	toolsets := RegisteredToolsets()
	found := false
	for _, name := range toolsets {
		if name == id {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected toolset id %s in list", id)
	}
}

func TestMustRegisterToolset(t *testing.T) {
	id := fmt.Sprintf("sdk-must-%d", time.Now().UnixNano())
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	MustRegisterToolset(id, func() Toolset { return nil })
}

func TestScriptHelpers(t *testing.T) {
	if got := PyStr("it's"); got != `'it\'s'` {
		t.Fatalf("unexpected PyStr: %s", got)
	}
	if got := PyBool(true); got != "True" {
		t.Fatalf("unexpected PyBool: %s", got)
	}
	if got := SafeName("Customer Support"); got != "customer_support" {
		t.Fatalf("unexpected SafeName: %s", got)
	}
	if got := SafeFile("Agent_1"); got != "Agent_1" {
		t.Fatalf("unexpected SafeFile: %s", got)
	}
	if got := PyValue([]any{"a", true}); got != `["a", True]` {
		t.Fatalf("unexpected PyValue: %s", got)
	}
}

func TestRenderScript(t *testing.T) {
	r := NewRenderer()
	out := r.Render(Script{Code: "print('hi')", Filename: "hi.py", Instructions: "Run: python hi.py"})
	if out["filename"] != "hi.py" {
		t.Fatalf("unexpected render output: %v", out)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())
	if err := store.Save("memory_config.json", map[string]string{"memory_id": "mem-1"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	var got map[string]string
	if err := store.Load("memory_config.json", &got); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got["memory_id"] != "mem-1" {
		t.Fatalf("unexpected value: %v", got)
	}
}
