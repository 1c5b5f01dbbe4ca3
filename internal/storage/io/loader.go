package io

import (
	"context"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/opsdesk/opsdesk/internal/model"
)

// IntakeYAMLRepository loads order intake specs from YAML files, the format
// the front desk fills in when registering an order.
type IntakeYAMLRepository struct {
	fs fs.FS
}

// NewIntakeYAMLRepository creates a new YAML intake repository.
func NewIntakeYAMLRepository(filesystem fs.FS) *IntakeYAMLRepository {
	return &IntakeYAMLRepository{fs: filesystem}
}

// GetIntake loads an order intake spec from a YAML file and returns a
// validated domain config.
func (r *IntakeYAMLRepository) GetIntake(ctx context.Context, path string) (model.OrderConfig, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.OrderConfig{}, fmt.Errorf("reading intake file: %w", err)
	}

	if ctx.Err() != nil {
		return model.OrderConfig{}, ctx.Err()
	}

	var intake orderIntake
	if err := yaml.Unmarshal(data, &intake); err != nil {
		return model.OrderConfig{}, fmt.Errorf("parsing YAML: %w", err)
	}

	cfg := intake.toModel()
	if err := cfg.Validate(); err != nil {
		return model.OrderConfig{}, fmt.Errorf("invalid intake: %w", err)
	}

	return cfg, nil
}

// orderIntake represents the YAML structure of an order intake file.
type orderIntake struct {
	Customer string `yaml:"customer"`
	Kind     string `yaml:"kind"`
	Note     string `yaml:"note"`
}

func (i orderIntake) toModel() model.OrderConfig {
	return model.OrderConfig{
		Customer:    i.Customer,
		Kind:        i.Kind,
		InitialNote: i.Note,
	}
}
