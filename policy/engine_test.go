package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPolicyAllows(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, DefaultPolicy)
	assert.NoError(t, err)

	decision, err := engine.Evaluate(ctx, Input{
		BotID:   "bot_001",
		Command: "status_check",
		Params:  map[string]interface{}{"interval": 30},
	})
	assert.NoError(t, err)
	assert.Equal(t, "allow", decision)
}

func TestDefaultPolicyBlocks(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, DefaultPolicy)
	assert.NoError(t, err)

	for _, command := range []string{"self_destruct", "exec_shell"} {
		decision, err := engine.Evaluate(ctx, Input{Command: command})
		assert.NoError(t, err)
		assert.Equal(t, "block", decision, command)
	}
}

func TestCustomPolicyParamRule(t *testing.T) {
	const content = `
package command_policy

import rego.v1

default decision := "allow"

decision := "block" if {
	input.command == "start_monitoring"
	input.params.interval < 5
}
`
	ctx := context.Background()
	engine, err := NewEngine(ctx, content)
	assert.NoError(t, err)

	decision, err := engine.Evaluate(ctx, Input{
		Command: "start_monitoring",
		Params:  map[string]interface{}{"interval": 1},
	})
	assert.NoError(t, err)
	assert.Equal(t, "block", decision)

	decision, err = engine.Evaluate(ctx, Input{
		Command: "start_monitoring",
		Params:  map[string]interface{}{"interval": 30},
	})
	assert.NoError(t, err)
	assert.Equal(t, "allow", decision)
}

func TestInvalidPolicyFailsToPrepare(t *testing.T) {
	_, err := NewEngine(context.Background(), "not rego at all {")
	assert.Error(t, err)
}
