package workflow

import (
	"encoding/json"
	"fmt"

	"github.com/BaSui01/agentcanvas/internal/idgen"
)

// StepType discriminates the step tagged union.
type StepType string

const (
	// StepTypeAgent invokes an agent by opaque id
	StepTypeAgent StepType = "agent"
	// StepTypeTool invokes a tool by opaque id
	StepTypeTool StepType = "tool"
	// StepTypeCondition branches on a field comparison
	StepTypeCondition StepType = "condition"
	// StepTypeHuman waits for a human decision
	StepTypeHuman StepType = "human"
	// StepTypeParallel fans out over a sub-list of steps
	StepTypeParallel StepType = "parallel"
	// StepTypeLoop iterates over a collection
	StepTypeLoop StepType = "loop"
)

// KnownStepType reports whether t is a member of the closed step union.
// New step kinds must be added here and to the switches in IsStepComplete,
// stepFromNode, and stepRefs, which all fail closed on unknown types.
func KnownStepType(t StepType) bool {
	switch t {
	case StepTypeAgent, StepTypeTool, StepTypeCondition, StepTypeHuman, StepTypeParallel, StepTypeLoop:
		return true
	}
	return false
}

// ConditionConfig defines a condition step's comparison and branch targets.
type ConditionConfig struct {
	Field    string `json:"field" yaml:"field"`
	Operator string `json:"operator" yaml:"operator"`
	Value    any    `json:"value" yaml:"value"`
	ThenStep string `json:"then_step,omitempty" yaml:"then_step,omitempty"`
	ElseStep string `json:"else_step,omitempty" yaml:"else_step,omitempty"`
}

// HumanOption is one selectable choice presented to the approver.
type HumanOption struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// HumanConfig defines a human approval step.
type HumanConfig struct {
	Notification string        `json:"notification" yaml:"notification"`
	Options      []HumanOption `json:"options,omitempty" yaml:"options,omitempty"`
}

// LoopConfig defines a loop step's iteration source.
type LoopConfig struct {
	ItemsPath    string `json:"items_path" yaml:"items_path"`
	ItemVariable string `json:"item_variable" yaml:"item_variable"`
}

// Step is one unit of work in a workflow definition. It is a closed tagged
// union discriminated by Type; only the payload fields for that type are set,
// everything else stays zero and is omitted on the wire.
//
// NextStep chains to the step executed after this one. An absent NextStep on
// a non-condition, non-terminal step means "continue to the next list entry".
// Condition steps never carry NextStep; their flow is fully described by
// Condition.ThenStep / Condition.ElseStep.
type Step struct {
	ID       string   `json:"id" yaml:"id"`
	Type     StepType `json:"type" yaml:"type"`
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	NextStep string   `json:"next_step,omitempty" yaml:"next_step,omitempty"`

	// agent payload
	Agent       string `json:"agent,omitempty" yaml:"agent,omitempty"`
	AgentPrompt string `json:"agent_prompt,omitempty" yaml:"agent_prompt,omitempty"`

	// tool payload
	Tool     string         `json:"tool,omitempty" yaml:"tool,omitempty"`
	ToolArgs map[string]any `json:"tool_args,omitempty" yaml:"tool_args,omitempty"`

	// condition payload
	Condition *ConditionConfig `json:"condition,omitempty" yaml:"condition,omitempty"`

	// human payload
	HumanConfig *HumanConfig `json:"human_config,omitempty" yaml:"human_config,omitempty"`

	// parallel payload; sub-steps are not separately graphed
	ParallelSteps []Step `json:"parallel_steps,omitempty" yaml:"parallel_steps,omitempty"`

	// loop payload
	LoopConfig *LoopConfig `json:"loop_config,omitempty" yaml:"loop_config,omitempty"`
}

// NewStep creates a blank step of the given type with a fresh unique id,
// ready to be dropped on the canvas and configured.
func NewStep(t StepType) Step {
	return Step{ID: idgen.NewStepID(string(t)), Type: t}
}

// UnmarshalJSON accepts the legacy agent reference field name (agent_id) and
// normalizes it into Agent. Serialization always writes the canonical field.
func (s *Step) UnmarshalJSON(data []byte) error {
	type alias Step
	aux := struct {
		*alias
		LegacyAgent string `json:"agent_id"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("failed to unmarshal Step: %w", err)
	}
	if s.Agent == "" && aux.LegacyAgent != "" {
		s.Agent = aux.LegacyAgent
	}
	return nil
}

// Position is a node position on the editor canvas.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// WorkflowDefinition is the persisted form of a workflow: the step list plus
// optional saved canvas coordinates. A non-empty Layout means the workflow was
// already laid out by hand or by a previous auto-layout run; loaders must not
// re-run auto layout in that case.
type WorkflowDefinition struct {
	ID          string              `json:"id" yaml:"id"`
	Name        string              `json:"name" yaml:"name"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Steps       []Step              `json:"steps" yaml:"steps"`
	Trigger     map[string]any      `json:"trigger,omitempty" yaml:"trigger,omitempty"`
	Guardrails  map[string]any      `json:"guardrails,omitempty" yaml:"guardrails,omitempty"`
	Layout      map[string]Position `json:"layout,omitempty" yaml:"layout,omitempty"`
}
