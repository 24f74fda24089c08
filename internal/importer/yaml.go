package importer

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"focuscal/internal/model"
)

// Repository is the slice of the schedule store the importer needs.
type Repository interface {
	Add(draft model.EntryDraft) (model.ScheduleEntry, error)
}

// YAMLEntry represents a single schedule entry in the YAML input.
type YAMLEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	TaskID      *int   `yaml:"task_id,omitempty"`
	StartDate   string `yaml:"start_date"`
	StartTime   string `yaml:"start_time"`
	DueDate     string `yaml:"due_date"`
	DueTime     string `yaml:"due_time"`
}

// YAMLInput represents the root structure of the YAML input.
type YAMLInput struct {
	Schedules []YAMLEntry `yaml:"schedules"`
}

// Import parses a YAML string and creates schedule entries through the
// store, so id assignment and draft validation apply to every imported
// entry. Returns the number of entries created before the first failure.
func Import(repo Repository, yamlStr string) (int, error) {
	var input YAMLInput
	if err := yaml.Unmarshal([]byte(yamlStr), &input); err != nil {
		return 0, fmt.Errorf("YAML parse error: %w", err)
	}

	if len(input.Schedules) == 0 {
		return 0, fmt.Errorf("no schedules found in YAML")
	}

	count := 0
	for _, ye := range input.Schedules {
		if _, err := repo.Add(model.EntryDraft{
			Name:        ye.Name,
			Description: ye.Description,
			TaskID:      ye.TaskID,
			StartDate:   ye.StartDate,
			StartTime:   ye.StartTime,
			DueDate:     ye.DueDate,
			DueTime:     ye.DueTime,
		}); err != nil {
			return count, fmt.Errorf("add schedule %q: %w", ye.Name, err)
		}
		count++
	}
	return count, nil
}
