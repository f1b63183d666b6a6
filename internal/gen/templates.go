package gen

import "text/template"

var adapterTemplate = template.Must(template.New("adapter").Parse(`// Code generated by accessor-generator. DO NOT EDIT.

package {{.PackageName}}

import (
{{range $i, $group := .Imports}}{{if $i}}
{{end}}{{range $group}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}}{{end}})

{{if .Comments}}// {{.Name}} is the {{.Mode}} adapter for {{.Pair}}.
{{end -}}
type {{.Name}} struct {
	{{.Destination}}
{{- if not .Transparent}}
	source {{.Source}}
{{- end}}
{{- if .Delegator}}
	delegator {{.Delegator}}
{{- end}}
}

var (
{{- if .Interface}}
	_ {{.Destination}} = (*{{.Name}})(nil)
{{- end}}
	_ accessor.Accessor[{{.Source}}] = (*{{.Name}})(nil)
)

{{if .Comments}}// New{{.Name}} wraps {{if .Transparent}}a delegator{{else if .Delegator}}a source and its delegator{{else}}a source{{end}}.
{{end -}}
func New{{.Name}}({{if not .Transparent}}source {{.Source}}{{end}}{{if .Delegator}}{{if not .Transparent}}, {{end}}delegator {{.Delegator}}{{end}}) *{{.Name}} {
	return &{{.Name}}{ {{- if not .Transparent}}source: source{{end}}{{if .Delegator}}{{if not .Transparent}}, {{end}}delegator: delegator{{end -}} }
}

{{if .Comments}}// AccessorSource returns the adapted source{{if .Transparent}}; transparent adapters keep none{{end}}.
{{end -}}
func (a *{{.Name}}) AccessorSource() {{.Source}} {
	return {{if .Transparent}}nil{{else}}a.source{{end}}
}

func (a *{{.Name}}) AccessorInitialize() {
{{- if .InitCall}}
	{{.InitCall}}
{{- end}}
}

func (a *{{.Name}}) AccessorTerminate() {
{{- if .TermCall}}
	{{.TermCall}}
{{- end}}
}
{{range .Forwarders}}
func (a *{{$.Name}}) {{.Name}}({{.Params}}){{.Results}} {
	{{if .Return}}return {{end}}a.{{.Field}}.{{.Target}}({{.Args}})
}
{{end}}
{{- range .Stubs}}
{{if $.Comments}}// {{.Name}} is not forwarded: {{.Reason}}.
{{end -}}
func (*{{$.Name}}) {{.Name}}({{.Params}}){{.Results}} {
	panic(fmt.Errorf("%w: {{.Method}}", accessor.ErrNotForwarded))
}
{{end}}`))

var registryTemplate = template.Must(template.New("registry").Parse(`// Code generated by accessor-generator. DO NOT EDIT.

package {{.PackageName}}

import (
{{range $i, $group := .Imports}}{{if $i}}
{{end}}{{range $group}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}}{{end}})

// Declarations returns the declarations of every generated adapter, ready
// for accessor.Repository.Scan.
func Declarations() []accessor.Declaration {
	return []accessor.Declaration{
{{- range .Entries}}
		{
{{- if $.Comments}}
			// {{.Pair}}
{{- end}}
			Spec: accessor.Spec{
				Source:      reflect.TypeFor[{{.Source}}](),
				Destination: reflect.TypeFor[{{.Destination}}](),
{{- if .Delegator}}
				Delegator:    reflect.TypeFor[{{.Delegator}}](),
				NewDelegator: {{.NewDelegator}},
{{- end}}
{{- if .Initialize}}
				Initialize: {{printf "%q" .Initialize}},
{{- end}}
{{- if .Terminate}}
				Terminate: {{printf "%q" .Terminate}},
{{- end}}
{{- if .Key}}
				Key: {{printf "%q" .Key}},
{{- end}}
{{- if .Priority}}
				Priority: {{.Priority}},
{{- end}}
{{- if .Transparent}}
				Transparent: true,
{{- end}}
			},
			Build: func(spec accessor.Spec) (accessor.Factory, error) {
				return accessor.NewFactory(spec, {{.Chain}}), nil
			},
		},
{{- end}}
	}
}
`))
