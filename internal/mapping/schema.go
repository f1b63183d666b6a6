package mapping

import (
	"fmt"

	"accessor-generator/accessor"
)

// AccessorFile represents the root of a YAML accessor declaration file.
type AccessorFile struct {
	// Version of the schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Package is the name of the generated package.
	Package string `yaml:"package,omitempty"`

	// Accessors is the list of adapter declarations.
	Accessors []AccessorDef `yaml:"accessors"`
}

// AccessorDef declares one adapter: a (source, destination) pair with an
// optional delegator.
type AccessorDef struct {
	// Source type identifier (e.g., "store.Order" or full path).
	Source string `yaml:"source"`

	// Destination type identifier: an interface or a named struct.
	Destination string `yaml:"destination"`

	// Delegator type identifier. Empty declares a direct adapter.
	Delegator string `yaml:"delegator,omitempty"`

	// Constructor names the package-level function creating the delegator
	// from a source. Defaults to "New" + delegator name in the delegator's
	// package; a qualified name ("pkg.Func") selects another package.
	Constructor string `yaml:"constructor,omitempty"`

	// Initialize and Terminate name no-argument delegator methods.
	Initialize string `yaml:"initialize,omitempty"`
	Terminate  string `yaml:"terminate,omitempty"`

	// Key is an extra registration key.
	Key string `yaml:"key,omitempty"`

	// Priority orders installation; lower values install first.
	Priority Priority `yaml:"priority,omitempty"`

	// Transparent forwards to the delegator only, without source fallback.
	Transparent bool `yaml:"transparent,omitempty"`

	// Origin records where the declaration came from, for diagnostics.
	Origin string `yaml:"-"`
}

// Pair returns "source->destination" as written.
func (d *AccessorDef) Pair() string {
	return fmt.Sprintf("%s->%s", d.Source, d.Destination)
}

// Mode returns the construction mode the declaration asks for.
func (d *AccessorDef) Mode() accessor.Mode {
	switch {
	case d.Transparent:
		return accessor.ModeTransparent
	case d.Delegator != "":
		return accessor.ModeDelegated
	default:
		return accessor.ModeDirect
	}
}

// Priority is a declaration priority. Zero means unset, which installs last.
type Priority int

const (
	// PriorityHighest installs before every other declaration.
	PriorityHighest Priority = 1
	// PriorityLowest is the value of an unset priority.
	PriorityLowest Priority = accessor.LowestPriority
)

// Effective returns the priority used for ordering.
func (p Priority) Effective() int {
	return accessor.Spec{Priority: int(p)}.EffectivePriority()
}
