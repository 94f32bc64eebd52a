// Package profile loads named remote targets from a YAML profiles file, so
// recovery workflows can refer to hosts by name instead of repeating
// connection details.
package profile

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mirrorops/drcmd/internal/model"
)

// YAMLRepository loads target profiles from YAML files.
type YAMLRepository struct {
	fs fs.FS
}

// NewYAMLRepository creates a new YAML profile repository.
func NewYAMLRepository(filesystem fs.FS) *YAMLRepository {
	return &YAMLRepository{fs: filesystem}
}

// ListTargets loads all targets from a YAML profiles file and returns them
// validated, in file order.
func (r *YAMLRepository) ListTargets(ctx context.Context, path string) ([]model.Target, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading profiles file: %w", err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	targets := make([]model.Target, 0, len(file.Targets))
	seen := map[string]bool{}
	for _, t := range file.Targets {
		if seen[t.Name] {
			return nil, fmt.Errorf("duplicated target %q: %w", t.Name, model.ErrNotValid)
		}
		seen[t.Name] = true

		target := t.toModel()
		if err := target.Validate(); err != nil {
			return nil, fmt.Errorf("invalid target %q: %w", t.Name, err)
		}
		targets = append(targets, target)
	}

	return targets, nil
}

// GetTarget loads a single target by name from a YAML profiles file.
func (r *YAMLRepository) GetTarget(ctx context.Context, path, name string) (*model.Target, error) {
	targets, err := r.ListTargets(ctx, path)
	if err != nil {
		return nil, err
	}

	for _, t := range targets {
		if t.Name == name {
			return &t, nil
		}
	}

	return nil, fmt.Errorf("target %q: %w", name, model.ErrNotFound)
}

// profilesFile represents the YAML structure of the profiles file.
type profilesFile struct {
	Targets []targetConfig `yaml:"targets"`
}

// targetConfig represents the YAML structure of a single target.
type targetConfig struct {
	Name              string `yaml:"name"`
	Host              string `yaml:"host"`
	User              string `yaml:"user"`
	PrivateKeyPath    string `yaml:"private_key_path"`
	ConnectTimeoutSec int    `yaml:"connect_timeout_seconds"`
}

func (c targetConfig) toModel() model.Target {
	return model.Target{
		Name:           c.Name,
		Host:           c.Host,
		User:           c.User,
		PrivateKeyPath: c.PrivateKeyPath,
		ConnectTimeout: time.Duration(c.ConnectTimeoutSec) * time.Second,
	}
}
