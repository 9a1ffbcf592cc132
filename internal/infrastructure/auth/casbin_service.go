package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"

	"github.com/xoventechdev/Task-Manager-Project/domain"
)

// roleModel matches a claims role against a single required role through the
// seeded policy table.
const roleModel = `
[request_definition]
r = role, req

[policy_definition]
p = role, allowed

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.role == p.role && r.req == p.allowed
`

// roleTable is the closed mapping from a user's role to the role names that
// satisfy a check requiring them.
var roleTable = map[string][]string{
	domain.RoleAdmin:  {"admin"},
	domain.RoleEditor: {"manager"},
	domain.RoleUser:   {"user"},
}

// CasbinAuthorizer implements domain.RoleAuthorizer with an in-memory
// enforcer seeded from the static role table.
type CasbinAuthorizer struct {
	E *casbin.Enforcer
}

// NewCasbinAuthorizer builds the enforcer and seeds the role table.
func NewCasbinAuthorizer() (*CasbinAuthorizer, error) {
	m, err := casbinmodel.NewModelFromString(roleModel)
	if err != nil {
		return nil, fmt.Errorf("failed to build casbin model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	for role, allowed := range roleTable {
		for _, a := range allowed {
			if _, err := e.AddPolicy(role, a); err != nil {
				return nil, fmt.Errorf("failed to seed policy %s -> %s: %w", role, a, err)
			}
		}
	}

	return &CasbinAuthorizer{E: e}, nil
}

// Authorize implements domain.RoleAuthorizer. An empty required list always
// allows; an unknown role never matches any policy and is denied.
func (a *CasbinAuthorizer) Authorize(role string, required []string) (bool, error) {
	if len(required) == 0 {
		return true, nil
	}
	for _, req := range required {
		ok, err := a.E.Enforce(role, req)
		if err != nil {
			return false, fmt.Errorf("authorization check failed: %w", err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
