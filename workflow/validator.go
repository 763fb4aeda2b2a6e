package workflow

import (
	"fmt"

	"github.com/BaSui01/agentcanvas/types"
)

// IsStepComplete reports whether a step is configured well enough to save and
// execute. It is a pure predicate consumed by the console to gate the save
// and run buttons; it does not resolve agent/tool ids against a catalog.
//
// Policy: a condition step is complete with only a then branch; the else
// handle is optional and an unconnected else simply ends that branch.
func IsStepComplete(step Step) bool {
	switch step.Type {
	case StepTypeAgent:
		return step.Agent != ""
	case StepTypeTool:
		return step.Tool != ""
	case StepTypeCondition:
		c := step.Condition
		return c != nil && c.Field != "" && c.Operator != "" && c.Value != nil && c.ThenStep != ""
	case StepTypeHuman:
		return step.HumanConfig != nil && step.HumanConfig.Notification != ""
	case StepTypeParallel:
		return len(step.ParallelSteps) > 0
	case StepTypeLoop:
		return step.LoopConfig != nil && step.LoopConfig.ItemsPath != ""
	}
	// Unknown step kinds fail closed.
	return false
}

// stepRefs returns every step id the step points at, labeled by the field the
// reference lives in.
func stepRefs(step Step) map[string]string {
	refs := make(map[string]string, 3)
	if step.NextStep != "" {
		refs["next_step"] = step.NextStep
	}
	if step.Type == StepTypeCondition && step.Condition != nil {
		if step.Condition.ThenStep != "" {
			refs["then_step"] = step.Condition.ThenStep
		}
		if step.Condition.ElseStep != "" {
			refs["else_step"] = step.Condition.ElseStep
		}
	}
	return refs
}

// ValidateSteps checks the structural invariants of a step list: ids must be
// present and unique, step types known, and every next_step/then_step/else_step
// must reference an existing step. A dangling reference is a named error, not
// something to silently build a broken edge from.
func ValidateSteps(steps []Step) error {
	ids := make(map[string]bool, len(steps))
	for _, step := range steps {
		if step.ID == "" {
			return types.NewError(types.ErrInvalidDefinition, "step id is required")
		}
		if ids[step.ID] {
			return types.NewError(types.ErrDuplicateStepID,
				fmt.Sprintf("duplicate step id %q", step.ID)).WithStep(step.ID)
		}
		ids[step.ID] = true

		if !KnownStepType(step.Type) {
			return types.NewError(types.ErrUnknownStepType,
				fmt.Sprintf("unknown step type %q", step.Type)).WithStep(step.ID)
		}
	}

	for _, step := range steps {
		for field, target := range stepRefs(step) {
			if !ids[target] {
				return types.NewError(types.ErrDanglingReference,
					fmt.Sprintf("%s references unknown step %q", field, target)).
					WithStep(step.ID).
					WithTarget(target)
			}
		}
	}

	return nil
}

// UnreachableSteps returns the ids of steps not reachable from the head of
// the list by following implicit chaining, next_step, and condition branches.
// Unreachable steps are reported, not rejected: the editor must still be able
// to load an imperfect workflow so the user can repair it.
func UnreachableSteps(steps []Step) []string {
	if len(steps) == 0 {
		return nil
	}

	index := make(map[string]int, len(steps))
	for i, step := range steps {
		index[step.ID] = i
	}

	reached := make(map[string]bool, len(steps))
	stack := []string{steps[0].ID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reached[id] {
			continue
		}
		reached[id] = true

		i, ok := index[id]
		if !ok {
			continue
		}
		step := steps[i]
		for _, target := range stepRefs(step) {
			stack = append(stack, target)
		}
		// Implicit chain to the next list entry.
		if step.NextStep == "" && step.Type != StepTypeCondition && i+1 < len(steps) {
			stack = append(stack, steps[i+1].ID)
		}
	}

	var unreachable []string
	for _, step := range steps {
		if !reached[step.ID] {
			unreachable = append(unreachable, step.ID)
		}
	}
	return unreachable
}
