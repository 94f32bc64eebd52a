// Package command provides a declarative representation of shell commands:
// an ordered token list plus environment exports, built through chainable
// builders and rendered either as a process argv or as a single shell line.
package command

import (
	"sort"
	"strings"
)

// Command is the read-only view of a built command.
type Command interface {
	// AsList returns all tokens in insertion order, the literal argv of the
	// command.
	AsList() []string
	// AsString returns the shell-line form: `export K=V; ` prefixes (sorted
	// by key) followed by the tokens joined with single spaces.
	AsString() string
	// Exports returns the environment overrides of the command.
	Exports() map[string]string
}

// Builder accumulates tokens and exports for a command. All methods are pure
// appends and perform no validation: a malformed command surfaces only at
// execution time through a non-zero exit code.
//
// The catalog types embed a Builder so their option methods can chain on the
// concrete type while sharing this single accumulator.
type Builder struct {
	tokens  []string
	exports map[string]string
}

// New returns a builder seeded with the given tokens.
func New(tokens ...string) *Builder {
	b := &Builder{exports: map[string]string{}}
	return b.Add(tokens...)
}

// Add appends one or more tokens.
func (b *Builder) Add(tokens ...string) *Builder {
	b.tokens = append(b.tokens, tokens...)
	return b
}

// AddPair appends a key-value pair as two consecutive tokens.
func (b *Builder) AddPair(key, value string) *Builder {
	return b.Add(key, value)
}

// AddWithEqual appends a key-value pair as a single `key=value` token.
func (b *Builder) AddWithEqual(key, value string) *Builder {
	return b.Add(key + "=" + value)
}

// Export records an environment override, realized with the shell `export`
// keyword when the command is rendered as a string, or merged into the child
// process environment when executed directly.
func (b *Builder) Export(key, value string) *Builder {
	b.exports[key] = value
	return b
}

// Pipe appends a pipe operator followed by the rendered form of another
// command.
func (b *Builder) Pipe(other Command) *Builder {
	return b.Add("|", other.AsString())
}

// AsList returns a copy of the accumulated tokens.
func (b *Builder) AsList() []string {
	tokens := make([]string, len(b.tokens))
	copy(tokens, b.tokens)
	return tokens
}

// AsString renders the command as a single shell line. Export prefixes are
// emitted in sorted key order so the rendering is deterministic.
func (b *Builder) AsString() string {
	var sb strings.Builder

	keys := make([]string, 0, len(b.exports))
	for k := range b.exports {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString("export ")
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(b.exports[k])
		sb.WriteString("; ")
	}

	sb.WriteString(strings.Join(b.tokens, " "))
	return sb.String()
}

// Exports returns a copy of the recorded environment overrides.
func (b *Builder) Exports() map[string]string {
	exports := make(map[string]string, len(b.exports))
	for k, v := range b.exports {
		exports[k] = v
	}
	return exports
}

func (b *Builder) String() string {
	return b.AsString()
}
