package provision

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/aws/smithy-go"
)

func apiError(code string) error {
	return &smithy.GenericAPIError{Code: code, Message: code}
}

func TestErrorCode(t *testing.T) {
	if got := ErrorCode(errors.New("plain")); got != "" {
		t.Fatalf("expected empty code, got %q", got)
	}
	wrapped := fmt.Errorf("call failed: %w", apiError("ResourceNotFoundException"))
	if got := ErrorCode(wrapped); got != "ResourceNotFoundException" {
		t.Fatalf("expected code through wrapping, got %q", got)
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"ResourceNotFoundException", true},
		{"NotFoundException", true},
		{"NoSuchEntity", true},
		{"ConflictException", false},
	}
	for _, tt := range tests {
		if got := IsNotFound(apiError(tt.code)); got != tt.want {
			t.Fatalf("IsNotFound(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
	if IsNotFound(errors.New("plain")) {
		t.Fatalf("plain error should not be not-found")
	}
}

func TestIsConflict(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"ConflictException", true},
		{"ResourceConflictException", true},
		{"EntityAlreadyExists", true},
		{"ResourceNotFoundException", false},
	}
	for _, tt := range tests {
		if got := IsConflict(apiError(tt.code)); got != tt.want {
			t.Fatalf("IsConflict(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestBannerAndStep(t *testing.T) {
	var buf bytes.Buffer
	Banner(&buf, "GATEWAY SETUP")
	Step(&buf, "Region: %s", "us-west-2")
	out := buf.String()
	if !strings.Contains(out, "GATEWAY SETUP") {
		t.Fatalf("banner title missing: %q", out)
	}
	if !strings.Contains(out, strings.Repeat("=", 80)) {
		t.Fatalf("banner rule missing")
	}
	if !strings.Contains(out, "Region: us-west-2") {
		t.Fatalf("step line missing: %q", out)
	}
}
