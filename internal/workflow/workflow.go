// Package workflow defines the closed set of task statuses and priorities
// the board accepts. The set is configurable through a yaml file so deployments
// can rename or extend their columns without a code change; services validate
// every incoming status/priority against it.
package workflow

import (
	"fmt"
	"os"

	"taskforge-backend/internal/database/models"

	"gopkg.in/yaml.v3"
)

// Config holds the workflow stages and priorities the service accepts
type Config struct {
	Statuses        []models.TaskStatus   `yaml:"statuses"`
	DefaultStatus   models.TaskStatus     `yaml:"default_status"`
	Priorities      []models.TaskPriority `yaml:"priorities"`
	DefaultPriority models.TaskPriority   `yaml:"default_priority"`
}

// Default returns the built-in workflow: the four board columns and three
// priorities the client ships with.
func Default() *Config {
	return &Config{
		Statuses: []models.TaskStatus{
			models.TaskStatusBacklog,
			models.TaskStatusTodo,
			models.TaskStatusInProgress,
			models.TaskStatusDone,
		},
		DefaultStatus: models.TaskStatusBacklog,
		Priorities: []models.TaskPriority{
			models.TaskPriorityLow,
			models.TaskPriorityMedium,
			models.TaskPriorityHigh,
		},
		DefaultPriority: models.TaskPriorityMedium,
	}
}

// Load reads a workflow configuration from a yaml file. An empty path
// returns the default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workflow config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse workflow config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration is internally consistent
func (c *Config) Validate() error {
	if len(c.Statuses) == 0 {
		return fmt.Errorf("workflow config: at least one status is required")
	}
	if len(c.Priorities) == 0 {
		return fmt.Errorf("workflow config: at least one priority is required")
	}
	if c.DefaultStatus == "" {
		c.DefaultStatus = c.Statuses[0]
	}
	if !c.ValidStatus(c.DefaultStatus) {
		return fmt.Errorf("workflow config: default status %q is not in the status set", c.DefaultStatus)
	}
	if c.DefaultPriority == "" {
		c.DefaultPriority = c.Priorities[0]
	}
	if !c.ValidPriority(c.DefaultPriority) {
		return fmt.Errorf("workflow config: default priority %q is not in the priority set", c.DefaultPriority)
	}
	return nil
}

// ValidStatus reports whether s is one of the configured workflow stages
func (c *Config) ValidStatus(s models.TaskStatus) bool {
	for _, known := range c.Statuses {
		if known == s {
			return true
		}
	}
	return false
}

// ValidPriority reports whether p is one of the configured priorities
func (c *Config) ValidPriority(p models.TaskPriority) bool {
	for _, known := range c.Priorities {
		if known == p {
			return true
		}
	}
	return false
}
