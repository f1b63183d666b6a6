package mapping

import (
	"fmt"
	"sort"

	"accessor-generator/internal/analyze"
	"accessor-generator/internal/diagnostic"
)

// directiveKeys are the arguments understood by type directives.
var directiveKeys = map[string]bool{
	"source":      true,
	"destination": true,
	"constructor": true,
	"initialize":  true,
	"terminate":   true,
	"key":         true,
	"priority":    true,
	"transparent": true,
}

// FromDirectives collects the declarations attached to types of the graph
// with //accessor:delegator and //accessor:adapter. The annotated type is
// the delegator, or the source for adapter directives. Types are visited in
// TypeID order.
func FromDirectives(graph *analyze.TypeGraph) ([]AccessorDef, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}
	if graph == nil {
		return nil, diags
	}

	var defs []AccessorDef

	for _, id := range sortedTypeIDs(graph) {
		info := graph.Types[id]

		for _, d := range info.Directives {
			def, err := fromDirective(id, d)
			if err != nil {
				diags.AddError(diagnostic.CodeUnsupportedDirective, fmt.Sprintf("%s: %v", d.Pos, err), id.String(), "")
				continue
			}

			defs = append(defs, def)
		}
	}

	return defs, diags
}

func fromDirective(id analyze.TypeID, d analyze.Directive) (AccessorDef, error) {
	for key := range d.Args {
		if !directiveKeys[key] {
			return AccessorDef{}, fmt.Errorf("unknown argument %q in //accessor:%s", key, d.Name)
		}
	}

	for _, flag := range d.Flags {
		if flag != "transparent" {
			return AccessorDef{}, fmt.Errorf("unknown flag %q in //accessor:%s", flag, d.Name)
		}
	}

	def := AccessorDef{
		Source:      d.Args["source"],
		Destination: d.Args["destination"],
		Constructor: d.Args["constructor"],
		Initialize:  d.Args["initialize"],
		Terminate:   d.Args["terminate"],
		Key:         d.Args["key"],
		Transparent: d.Has("transparent"),
		Origin:      d.Pos.String(),
	}

	p, err := ParsePriority(d.Args["priority"])
	if err != nil {
		return AccessorDef{}, err
	}

	def.Priority = p

	switch d.Name {
	case analyze.DirectiveDelegator:
		def.Delegator = id.String()
	case analyze.DirectiveAdapter:
		if def.Source != "" {
			return AccessorDef{}, fmt.Errorf("//accessor:%s takes no source, the annotated type is the source", d.Name)
		}

		def.Source = id.String()
	default:
		return AccessorDef{}, fmt.Errorf("unknown directive //accessor:%s on a type", d.Name)
	}

	if def.Source == "" || def.Destination == "" {
		return AccessorDef{}, fmt.Errorf("//accessor:%s needs source and destination", d.Name)
	}

	return def, nil
}

// Merge appends the directive declarations to the file's declarations,
// skipping those the file already declares with the same pair and key.
// The result is stably ordered by priority.
func Merge(af *AccessorFile, defs []AccessorDef, graph *analyze.TypeGraph) {
	seen := make(map[string]bool, len(af.Accessors))
	for i := range af.Accessors {
		seen[canonicalPair(&af.Accessors[i], graph)] = true
	}

	for i := range defs {
		key := canonicalPair(&defs[i], graph)
		if seen[key] {
			continue
		}

		seen[key] = true
		af.Accessors = append(af.Accessors, defs[i])
	}

	sort.SliceStable(af.Accessors, func(i, j int) bool {
		return af.Accessors[i].Priority.Effective() < af.Accessors[j].Priority.Effective()
	})
}

// canonicalPair names the pair and key by resolved type IDs when possible.
func canonicalPair(def *AccessorDef, graph *analyze.TypeGraph) string {
	src, dst := def.Source, def.Destination
	if t := ResolveTypeID(src, graph); t != nil {
		src = t.ID.String()
	}

	if t := ResolveTypeID(dst, graph); t != nil {
		dst = t.ID.String()
	}

	return src + "->" + dst + "#" + def.Key
}
