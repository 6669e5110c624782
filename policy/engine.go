// Package policy evaluates whether a command may be queued for a bot.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Engine is the OPA policy engine vetting commands before enqueue.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given rego content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.command_policy.decision"),
		rego.Module("command_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Input describes one command submission for the policy to judge.
type Input struct {
	BotID   string                 `json:"bot_id"`
	Command string                 `json:"command"`
	Params  map[string]interface{} `json:"params"`
}

// Evaluate checks the command policy.
// Returns the decision, "allow" or "block".
func (e *Engine) Evaluate(ctx context.Context, input Input) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(map[string]interface{}{
		"bot_id":  input.BotID,
		"command": input.Command,
		"params":  input.Params,
	}))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		// The policy is expected to define a default.
		return "allow", nil
	}

	if s, ok := results[0].Expressions[0].Value.(string); ok {
		return s, nil
	}
	return "allow", nil
}

// DefaultPolicy is the policy used when no rego file is configured.
// It blocks a small set of command names no operator should be able to
// queue remotely.
const DefaultPolicy = `
package command_policy

import rego.v1

default decision := "allow"

blocked_commands := {"self_destruct", "exec_shell"}

decision := "block" if input.command in blocked_commands
`
