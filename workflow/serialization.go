package workflow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/BaSui01/agentcanvas/types"
)

// ValidateDefinition validates a loaded workflow definition: the name must be
// set and the step list must satisfy ValidateSteps. Layout entries, when
// present, must reference nodes of the definition (steps or sentinels).
func ValidateDefinition(def *WorkflowDefinition) error {
	if def.Name == "" {
		return types.NewError(types.ErrInvalidDefinition, "workflow name is required")
	}

	if err := ValidateSteps(def.Steps); err != nil {
		return err
	}

	if len(def.Layout) > 0 {
		known := map[string]bool{StartNodeID: true, EndNodeID: true}
		for _, step := range def.Steps {
			known[step.ID] = true
		}
		for id := range def.Layout {
			if !known[id] {
				return types.NewError(types.ErrInvalidLayout,
					fmt.Sprintf("layout references unknown node %q", id)).WithTarget(id)
			}
		}
	}

	return nil
}

// ParseDefinition creates a WorkflowDefinition from JSON and validates it.
func ParseDefinition(data []byte) (*WorkflowDefinition, error) {
	var def WorkflowDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, types.NewError(types.ErrInvalidDefinition, "failed to unmarshal from JSON").WithCause(err)
	}
	if err := ValidateDefinition(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

// ParseDefinitionYAML creates a WorkflowDefinition from YAML and validates it.
func ParseDefinitionYAML(data []byte) (*WorkflowDefinition, error) {
	var def WorkflowDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, types.NewError(types.ErrInvalidDefinition, "failed to unmarshal from YAML").WithCause(err)
	}
	if err := ValidateDefinition(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

// ToJSON converts the definition to indented JSON.
func (def *WorkflowDefinition) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	return data, nil
}

// ToYAML converts the definition to YAML.
func (def *WorkflowDefinition) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal to YAML: %w", err)
	}
	return data, nil
}

// LoadDefinitionFile loads a definition from a .json, .yaml, or .yml file.
func LoadDefinitionFile(filename string) (*WorkflowDefinition, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if isYAMLFile(filename) {
		return ParseDefinitionYAML(data)
	}
	return ParseDefinition(data)
}

// SaveFile writes the definition to a file, choosing the format from the
// file extension (.yaml/.yml for YAML, anything else JSON).
func (def *WorkflowDefinition) SaveFile(filename string) error {
	var (
		data []byte
		err  error
	)
	if isYAMLFile(filename) {
		data, err = def.ToYAML()
	} else {
		data, err = def.ToJSON()
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func isYAMLFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
