package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BaSui01/agentcanvas/types"
)

func TestIsStepComplete(t *testing.T) {
	tests := []struct {
		name     string
		step     Step
		complete bool
	}{
		{"agent with reference", Step{Type: StepTypeAgent, Agent: "a1"}, true},
		{"agent without reference", Step{Type: StepTypeAgent}, false},
		{"tool with reference", Step{Type: StepTypeTool, Tool: "t1"}, true},
		{"tool without reference", Step{Type: StepTypeTool}, false},
		{
			"condition fully set",
			Step{Type: StepTypeCondition, Condition: &ConditionConfig{
				Field: "f", Operator: "eq", Value: 1, ThenStep: "x", ElseStep: "y",
			}},
			true,
		},
		{
			"condition without else is still complete",
			Step{Type: StepTypeCondition, Condition: &ConditionConfig{
				Field: "f", Operator: "eq", Value: 1, ThenStep: "x",
			}},
			true,
		},
		{
			"condition without then",
			Step{Type: StepTypeCondition, Condition: &ConditionConfig{
				Field: "f", Operator: "eq", Value: 1, ElseStep: "y",
			}},
			false,
		},
		{
			"condition without value",
			Step{Type: StepTypeCondition, Condition: &ConditionConfig{
				Field: "f", Operator: "eq", ThenStep: "x",
			}},
			false,
		},
		{"condition without config", Step{Type: StepTypeCondition}, false},
		{"human with notification", Step{Type: StepTypeHuman, HumanConfig: &HumanConfig{Notification: "review"}}, true},
		{"human without notification", Step{Type: StepTypeHuman, HumanConfig: &HumanConfig{}}, false},
		{"parallel with sub-steps", Step{Type: StepTypeParallel, ParallelSteps: []Step{{ID: "p1"}}}, true},
		{"parallel empty", Step{Type: StepTypeParallel}, false},
		{"loop with items path", Step{Type: StepTypeLoop, LoopConfig: &LoopConfig{ItemsPath: "$.items"}}, true},
		{"loop without items path", Step{Type: StepTypeLoop, LoopConfig: &LoopConfig{}}, false},
		{"unknown type fails closed", Step{Type: "webhook"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.complete, IsStepComplete(tt.step))
		})
	}
}

func TestValidateSteps(t *testing.T) {
	t.Run("valid list", func(t *testing.T) {
		err := ValidateSteps([]Step{
			{ID: "a", Type: StepTypeAgent, Agent: "x", NextStep: "b"},
			{ID: "b", Type: StepTypeTool, Tool: "y"},
		})
		assert.NoError(t, err)
	})

	t.Run("missing id", func(t *testing.T) {
		err := ValidateSteps([]Step{{Type: StepTypeAgent, Agent: "x"}})
		assert.Equal(t, types.ErrInvalidDefinition, types.GetErrorCode(err))
	})

	t.Run("duplicate id", func(t *testing.T) {
		err := ValidateSteps([]Step{
			{ID: "a", Type: StepTypeAgent, Agent: "x"},
			{ID: "a", Type: StepTypeTool, Tool: "y"},
		})
		assert.Equal(t, types.ErrDuplicateStepID, types.GetErrorCode(err))
	})

	t.Run("unknown type", func(t *testing.T) {
		err := ValidateSteps([]Step{{ID: "a", Type: "webhook"}})
		assert.Equal(t, types.ErrUnknownStepType, types.GetErrorCode(err))
	})

	t.Run("dangling next_step", func(t *testing.T) {
		err := ValidateSteps([]Step{{ID: "a", Type: StepTypeAgent, Agent: "x", NextStep: "ghost"}})
		assert.Equal(t, types.ErrDanglingReference, types.GetErrorCode(err))
	})

	t.Run("dangling else_step", func(t *testing.T) {
		err := ValidateSteps([]Step{
			{ID: "a", Type: StepTypeCondition, Condition: &ConditionConfig{
				Field: "f", Operator: "eq", Value: 1, ThenStep: "a", ElseStep: "ghost",
			}},
		})
		assert.Equal(t, types.ErrDanglingReference, types.GetErrorCode(err))
	})
}

func TestUnreachableSteps(t *testing.T) {
	t.Run("linear chain fully reachable", func(t *testing.T) {
		assert.Empty(t, UnreachableSteps([]Step{
			{ID: "a", Type: StepTypeAgent, Agent: "x"},
			{ID: "b", Type: StepTypeTool, Tool: "y"},
		}))
	})

	t.Run("explicit skip leaves step unreachable", func(t *testing.T) {
		unreachable := UnreachableSteps([]Step{
			{ID: "a", Type: StepTypeAgent, Agent: "x", NextStep: "c"},
			{ID: "b", Type: StepTypeTool, Tool: "y"},
			{ID: "c", Type: StepTypeTool, Tool: "z"},
		})
		assert.Equal(t, []string{"b"}, unreachable)
	})

	t.Run("condition branches count as reachability", func(t *testing.T) {
		assert.Empty(t, UnreachableSteps([]Step{
			{ID: "a", Type: StepTypeCondition, Condition: &ConditionConfig{
				Field: "f", Operator: "eq", Value: 1, ThenStep: "b", ElseStep: "c",
			}},
			{ID: "b", Type: StepTypeTool, Tool: "y"},
			{ID: "c", Type: StepTypeTool, Tool: "z"},
		}))
	})

	t.Run("empty list", func(t *testing.T) {
		assert.Empty(t, UnreachableSteps(nil))
	})
}
