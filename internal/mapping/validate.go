package mapping

import (
	"fmt"

	"accessor-generator/internal/analyze"
	"accessor-generator/internal/diagnostic"
)

// Validate validates accessor declarations against the given type graph.
// It checks that every referenced type, constructor and lifecycle method
// exists with a usable shape; method forwarding is left to the resolver.
func Validate(af *AccessorFile, graph *analyze.TypeGraph) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if af == nil {
		res.AddError("file_is_nil", "accessor file is nil", "", "")
		return res
	}

	if graph == nil {
		res.AddError("graph_is_nil", "type graph is nil", "", "")
		return res
	}

	res.Merge(*ValidateKeys(af))

	for i := range af.Accessors {
		res.Merge(*ValidateDef(&af.Accessors[i], graph))
	}

	return res
}

// ValidateKeys reports explicit keys declared more than once.
func ValidateKeys(af *AccessorFile) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	keys := map[string]string{}

	for i := range af.Accessors {
		def := &af.Accessors[i]
		if def.Key == "" {
			continue
		}

		if prev, ok := keys[def.Key]; ok {
			res.AddError(diagnostic.CodeDuplicateKey,
				fmt.Sprintf("key %q is already declared by %s", def.Key, prev), def.Pair(), "")
			continue
		}

		keys[def.Key] = def.Pair()
	}

	return res
}

// ValidateDef validates a single declaration against the type graph.
func ValidateDef(def *AccessorDef, graph *analyze.TypeGraph) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	validateDef(res, def, graph)

	return res
}

func validateDef(res *diagnostic.Diagnostics, def *AccessorDef, graph *analyze.TypeGraph) {
	pair := def.Pair()

	if def.Source == "" || def.Destination == "" {
		res.AddError(diagnostic.CodeInvalidPair, "source and destination are required", pair, "")
		return
	}

	src := resolveOrReport(res, "source", def.Source, pair, graph)
	dst := resolveOrReport(res, "destination", def.Destination, pair, graph)

	if dst != nil && dst.Kind != analyze.TypeKindInterface && dst.Kind != analyze.TypeKindStruct {
		res.AddError(diagnostic.CodeUnsupportedDestination,
			fmt.Sprintf("destination %s is a %s, want an interface or a struct", dst.ID, dst.Kind), pair, "")
	}

	if def.Delegator == "" {
		if def.Transparent {
			res.AddError(diagnostic.CodeInvalidPair, "transparent adapter has no delegator", pair, "")
		}

		if def.Initialize != "" || def.Terminate != "" {
			res.AddError(diagnostic.CodeBadLifecycleMethod, "lifecycle methods require a delegator", pair, "")
		}

		if def.Constructor != "" {
			res.AddError(diagnostic.CodeBadConstructor, "constructor given without a delegator", pair, "")
		}

		return
	}

	dlg := resolveOrReport(res, "delegator", def.Delegator, pair, graph)
	if dlg == nil {
		return
	}

	if dlg.IsInterface() {
		res.AddError(diagnostic.CodeInvalidPair, fmt.Sprintf("delegator %s must be a concrete type", dlg.ID), pair, "")
		return
	}

	if src != nil {
		if _, err := ResolveConstructor(def, src, dlg, graph); err != nil {
			code := diagnostic.CodeBadConstructor
			if ResolveFunc(constructorRef(def, dlg), dlg.ID.PkgPath, graph) == nil {
				code = diagnostic.CodeMissingConstructor
			}

			res.AddError(code, err.Error(), pair, "")
		}
	}

	for _, name := range []string{def.Initialize, def.Terminate} {
		if err := CheckLifecycleMethod(dlg, name); err != nil {
			res.AddError(diagnostic.CodeBadLifecycleMethod, err.Error(), pair, name)
		}
	}
}

func constructorRef(def *AccessorDef, delegator *analyze.TypeInfo) string {
	if def.Constructor != "" {
		return def.Constructor
	}

	return "New" + delegator.ID.Name
}

func resolveOrReport(res *diagnostic.Diagnostics, role, ref, pair string, graph *analyze.TypeGraph) *analyze.TypeInfo {
	t := ResolveTypeID(ref, graph)
	if t == nil {
		res.AddError(diagnostic.CodeTypeNotFound, fmt.Sprintf("%s type %q not found", role, ref), pair, "")
	}

	return t
}
