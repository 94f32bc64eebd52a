package model

import (
	"fmt"
	"time"
)

// Target represents a remote host reachable over SSH where commands can be
// tunneled for execution.
type Target struct {
	// Name is the profile name the target is registered under.
	Name string
	// Host is the IP address or hostname of the target.
	Host string
	// User is the SSH login user (e.g. "ec2-user").
	User string
	// PrivateKeyPath is the path to the PEM-encoded private key on disk.
	PrivateKeyPath string
	// ConnectTimeout bounds the SSH connection establishment.
	ConnectTimeout time.Duration
}

// Validate validates the target.
func (t *Target) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("name is required: %w", ErrNotValid)
	}
	if t.Host == "" {
		return fmt.Errorf("host is required: %w", ErrNotValid)
	}
	if t.User == "" {
		return fmt.Errorf("user is required: %w", ErrNotValid)
	}
	if t.PrivateKeyPath == "" {
		return fmt.Errorf("private_key_path is required: %w", ErrNotValid)
	}
	if t.ConnectTimeout < 0 {
		return fmt.Errorf("connect_timeout cannot be negative: %w", ErrNotValid)
	}
	return nil
}

// Address returns the user@host SSH login address of the target.
func (t *Target) Address() string {
	return t.User + "@" + t.Host
}

// Execution is a single recorded command execution, as stored in the
// history journal.
type Execution struct {
	ID        string
	Target    string // "local" or the user@host address.
	Command   string // Rendered command string.
	Code      int
	Output    string
	Error     string
	StartedAt time.Time
	Duration  time.Duration
}
