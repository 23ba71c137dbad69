// Package provision implements the real AWS setup operations behind
// the agentcore-setup CLI. Each subpackage covers one service family
// and mirrors the config-file contract of internal/configfile: load
// prerequisite files, call the control plane, persist identifiers for
// the next step.
package provision

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/smithy-go"
)

// Outcome reports how an idempotent operation resolved.
type Outcome string

const (
	Created        Outcome = "created"
	AlreadyExisted Outcome = "already_existed"
	Deleted        Outcome = "deleted"
	AlreadyAbsent  Outcome = "already_absent"
)

// ErrorCode extracts the provider error code, or "" for non-API errors.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// IsNotFound reports whether err is a provider not-found error. Delete
// operations treat these as success.
func IsNotFound(err error) bool {
	switch ErrorCode(err) {
	case "ResourceNotFoundException", "NotFoundException", "NoSuchEntity":
		return true
	}
	return false
}

// IsConflict reports whether err is a provider already-exists or
// conflict error. Create operations fall back to a lookup path.
func IsConflict(err error) bool {
	switch ErrorCode(err) {
	case "ConflictException", "ResourceConflictException", "EntityAlreadyExists":
		return true
	}
	return false
}

func Banner(w io.Writer, title string) {
	line := strings.Repeat("=", 80)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, line)
}

func Step(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}
