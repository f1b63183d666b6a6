package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"accessor-generator/internal/analyze"
	"accessor-generator/internal/common"
)

type analyzeReport struct {
	Types []typeReport `json:"types"`
}

type typeReport struct {
	ID         string         `json:"id"`
	Kind       string         `json:"kind"`
	Methods    []methodReport `json:"methods,omitempty"`
	Directives []string       `json:"directives,omitempty"`
}

type methodReport struct {
	Method    string `json:"method"`
	Modifiers string `json:"modifiers,omitempty"`
	Via       string `json:"via,omitempty"`
}

func buildReport(graph *analyze.TypeGraph) analyzeReport {
	ids := make([]analyze.TypeID, 0, len(graph.Types))
	for id := range graph.Types {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})

	var report analyzeReport

	for _, id := range ids {
		info := graph.Types[id]
		tr := typeReport{ID: id.String(), Kind: info.Kind.String()}

		for _, m := range info.Methods {
			tr.Methods = append(tr.Methods, methodReport{
				Method:    common.ShortTypeName(m.Descriptor.String()),
				Modifiers: m.Descriptor.Modifiers.String(),
				Via:       m.Via,
			})
		}

		for _, d := range info.Directives {
			tr.Directives = append(tr.Directives, directiveString(d))
		}

		report.Types = append(report.Types, tr)
	}

	return report
}

func directiveString(d analyze.Directive) string {
	parts := []string{analyze.DirectivePrefix + d.Name}

	keys := make([]string, 0, len(d.Args))
	for k := range d.Args {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		parts = append(parts, k+"="+d.Args[k])
	}

	parts = append(parts, d.Flags...)

	return strings.Join(parts, " ")
}

func (r analyzeReport) write(w io.Writer) error {
	for _, t := range r.Types {
		if _, err := fmt.Fprintf(w, "%s (%s)\n", t.ID, t.Kind); err != nil {
			return err
		}

		for _, d := range t.Directives {
			fmt.Fprintf(w, "  %s\n", d)
		}

		for _, m := range t.Methods {
			line := "  " + m.Method
			if m.Modifiers != "" {
				line += " [" + m.Modifiers + "]"
			}

			if m.Via != "" {
				line += " via " + m.Via
			}

			fmt.Fprintln(w, line)
		}
	}

	return nil
}
