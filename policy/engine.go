// Package policy evaluates session access rules with OPA.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Engine is the OPA policy engine for session access decisions.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.session_policy.decision"),
		rego.Module("session_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}
	return &Engine{query: query}, nil
}

// Allow reports whether owner may access sessionID. An undefined decision
// denies.
func (e *Engine) Allow(ctx context.Context, owner, sessionID string) (bool, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(map[string]interface{}{
		"owner":      owner,
		"session_id": sessionID,
	}))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate policy: %w", err)
	}
	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return false, nil
	}
	decision, ok := results[0].Expressions[0].Value.(string)
	return ok && decision == "allow", nil
}

// DefaultPolicy grants access only to sessions in the caller's namespace:
// a session id must start with "{owner}_".
const DefaultPolicy = `
package session_policy

import rego.v1

default decision := "deny"

decision := "allow" if {
	input.owner != ""
	startswith(input.session_id, sprintf("%s_", [input.owner]))
}
`
