package mapping

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	priorityLowestStr  = "lowest"
	priorityHighestStr = "highest"
)

// ParsePriority parses an integer or one of "lowest" and "highest".
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return 0, nil
	case priorityLowestStr:
		return PriorityLowest, nil
	case priorityHighestStr:
		return PriorityHighest, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid priority %q: want an integer, %q or %q", s, priorityLowestStr, priorityHighestStr)
	}

	if n < 0 {
		return 0, fmt.Errorf("invalid priority %d: must not be negative", n)
	}

	return Priority(n), nil
}

// UnmarshalYAML implements custom YAML unmarshaling for Priority.
// Accepts an integer or the names "lowest" and "highest".
func (p *Priority) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected priority scalar, got %v", node.Line, node.Kind)
	}

	v, err := ParsePriority(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*p = v

	return nil
}

// MarshalYAML implements custom YAML marshaling for Priority.
// The named priorities are written by name.
func (p Priority) MarshalYAML() (any, error) {
	switch p {
	case PriorityLowest:
		return priorityLowestStr, nil
	case PriorityHighest:
		return priorityHighestStr, nil
	default:
		return int(p), nil
	}
}
