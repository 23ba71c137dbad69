package policy

import (
	"fmt"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleRestricted Role = "restricted"
)

type User struct {
	ID              string
	Role            Role
	AllowedToolsets []string
	AllowedTools    []string
}

type Authorizer struct {
}

func NewAuthorizer() *Authorizer {
	return &Authorizer{}
}

// Authenticate identifies the caller. The stdio transport runs on the
// caller's own machine, so everything maps to a local admin user; the
// apiKey hook stays so embedders can swap in a real authenticator.
func (a *Authorizer) Authenticate(apiKey string) (User, error) {
	_ = apiKey
	return User{ID: "local", Role: RoleAdmin}, nil
}

func (a *Authorizer) AuthorizeTool(user User, toolsetID, toolName string) error {
	if user.Role == RoleAdmin {
		return nil
	}
	if len(user.AllowedTools) > 0 {
		for _, allowed := range user.AllowedTools {
			if allowed == toolName {
				return nil
			}
		}
	}
	if len(user.AllowedToolsets) > 0 {
		for _, allowed := range user.AllowedToolsets {
			if allowed == toolsetID {
				return nil
			}
		}
	}
	return fmt.Errorf("tool %s not allowed for user %s", toolName, user.ID)
}
