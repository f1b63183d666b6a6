package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/types"
	"runtime"
	"strings"
	"text/template"
	"unicode"

	"golang.org/x/sync/errgroup"

	"accessor-generator/accessor"
	"accessor-generator/internal/common"
	"accessor-generator/internal/plan"
)

// RegistryFilename is the name of the file holding Declarations.
const RegistryFilename = "declarations.go"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// PackagePath is the import path of the generated package. Types declared
	// in it are referenced without a qualifier.
	PackagePath string
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// GenerateComments enables generation of explanatory comments.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName:      "accessors",
		OutputDir:        "./accessors",
		GenerateComments: true,
	}
}

// Generator generates Go code from a resolved plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "store_order_to_warehouse_order.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate renders one file per resolved pair plus the registry file.
// Pairs are rendered concurrently; the result order is the plan order.
func (g *Generator) Generate(p *plan.ResolvedPlan) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, len(p.Pairs)+1)

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for i := range p.Pairs {
		eg.Go(func() error {
			pair := &p.Pairs[i]

			file, err := g.generatePair(pair)
			if err != nil {
				return fmt.Errorf("generating %s: %w", pair.Pair(), err)
			}

			files[i] = *file

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	registry, err := g.generateRegistry(p.Pairs)
	if err != nil {
		return nil, fmt.Errorf("generating registry: %w", err)
	}

	files[len(p.Pairs)] = *registry

	return files, nil
}

type adapterData struct {
	PackageName string
	Imports     [][]importSpec
	Comments    bool

	Name        string
	Pair        string
	Mode        string
	Source      string
	Destination string
	Delegator   string
	Transparent bool
	Interface   bool

	InitCall string
	TermCall string

	Forwarders []forwarderData
	Stubs      []stubData
}

type forwarderData struct {
	Name    string
	Params  string
	Results string
	Args    string
	Field   string
	Target  string
	Return  bool
}

type stubData struct {
	Name    string
	Params  string
	Results string
	Method  string
	Reason  string
}

func (g *Generator) generatePair(pair *plan.ResolvedPair) (*GeneratedFile, error) {
	imports := newImportSet(g.config.PackagePath, pairPackages(pair)...)
	imports.add(accessorPkgPath, "accessor")

	data := &adapterData{
		PackageName: g.config.PackageName,
		Comments:    g.config.GenerateComments,
		Name:        pair.AdapterName,
		Pair:        common.ShortTypeName(pair.Pair()),
		Mode:        pair.Mode.String(),
		Source:      imports.typeString(pair.SourceRef),
		Destination: imports.typeString(pair.Destination.GoType),
		Transparent: pair.Mode == accessor.ModeTransparent,
		Interface:   pair.DestinationIsInterface(),
	}

	if pair.Constructor != nil {
		data.Delegator = imports.typeString(pair.Constructor.Delegator)

		if name := pair.Def.Initialize; name != "" {
			data.InitCall = "a.delegator." + name + "()"
		}

		if name := pair.Def.Terminate; name != "" {
			data.TermCall = "a.delegator." + name + "()"
		}
	}

	forwarded := make(map[string]bool, len(pair.Forwarders))

	for _, f := range pair.Forwarders {
		params, results, args := imports.signature(f.Method.Signature, true)

		data.Forwarders = append(data.Forwarders, forwarderData{
			Name:    f.Method.Descriptor.Name,
			Params:  params,
			Results: results,
			Args:    args,
			Field:   f.Target.String(),
			Target:  f.Candidate.Name,
			Return:  f.Method.Signature.Results().Len() > 0,
		})
		forwarded[f.Method.Descriptor.Name] = true
	}

	if data.Interface {
		data.Stubs = stubs(pair, imports, forwarded)
		if len(data.Stubs) > 0 {
			imports.add("fmt", "fmt")
		}
	}

	data.Imports = imports.specs()

	return render(adapterTemplate, data, snakeCase(pair.AdapterName)+".go", g.config.OutputDir)
}

// stubs returns a panicking method for every exported destination method
// the adapter does not forward, so calls fail with accessor.ErrNotForwarded
// instead of a nil dereference of the embedded interface.
func stubs(pair *plan.ResolvedPair, imports *importSet, forwarded map[string]bool) []stubData {
	reasons := make(map[string]string)

	for _, m := range pair.Plan.Unmatched {
		reasons[m.Name] = "no method matches"
	}

	for _, a := range pair.Plan.Ambiguities {
		reasons[a.Method.Name] = fmt.Sprintf("ambiguous: %d %s methods match", len(a.Candidates), a.Target)
	}

	for _, m := range pair.Plan.Skipped {
		reasons[m.Name] = "excluded by modifiers " + m.Modifiers.String()
	}

	var out []stubData

	for i := range pair.Destination.Methods {
		m := &pair.Destination.Methods[i]
		name := m.Descriptor.Name

		if forwarded[name] || !m.Descriptor.Exported() || accessor.IsReserved(name) {
			continue
		}

		params, results, _ := imports.signature(m.Signature, false)

		reason, ok := reasons[name]
		if !ok {
			reason = "not forwarded"
		}

		out = append(out, stubData{
			Name:    name,
			Params:  params,
			Results: results,
			Method:  common.ShortTypeName(pair.Destination.ID.String()) + "." + name,
			Reason:  reason,
		})
	}

	return out
}

type registryData struct {
	PackageName string
	Imports     [][]importSpec
	Comments    bool
	Entries     []registryEntry
}

type registryEntry struct {
	Adapter      string
	Pair         string
	Source       string
	Destination  string
	Delegator    string
	NewDelegator string
	Initialize   string
	Terminate    string
	Key          string
	Priority     int
	Transparent  bool
	Chain        string
}

// pairPackages returns the package paths of the types declared by pair.
func pairPackages(pair *plan.ResolvedPair) []string {
	out := []string{pair.Source.ID.PkgPath, pair.Destination.ID.PkgPath}
	if pair.Delegator != nil {
		out = append(out, pair.Delegator.ID.PkgPath)
	}

	return out
}

func (g *Generator) generateRegistry(pairs []plan.ResolvedPair) (*GeneratedFile, error) {
	var local []string
	for i := range pairs {
		local = append(local, pairPackages(&pairs[i])...)
	}

	imports := newImportSet(g.config.PackagePath, local...)
	imports.add(accessorPkgPath, "accessor")

	data := &registryData{
		PackageName: g.config.PackageName,
		Comments:    g.config.GenerateComments,
	}

	for i := range pairs {
		pair := &pairs[i]
		imports.add("reflect", "reflect")

		entry := registryEntry{
			Adapter:     pair.AdapterName,
			Pair:        common.ShortTypeName(pair.Pair()),
			Source:      imports.typeString(pair.SourceRef),
			Destination: imports.typeString(pair.Destination.GoType),
			Initialize:  pair.Def.Initialize,
			Terminate:   pair.Def.Terminate,
			Key:         pair.Def.Key,
			Priority:    int(pair.Def.Priority),
			Transparent: pair.Mode == accessor.ModeTransparent,
		}

		ctor := "New" + pair.AdapterName

		if c := pair.Constructor; c == nil {
			entry.Chain = fmt.Sprintf("accessor.Direct(%s)", ctor)
		} else {
			entry.Delegator = imports.typeString(c.Delegator)
			entry.NewDelegator = imports.qualified(c.Func.Func)

			helper := "Delegated"
			if entry.Transparent {
				helper = "Transparent"
			}

			if c.ReturnsError {
				helper += "Err"
			}

			entry.Chain = fmt.Sprintf("accessor.%s(%s, %s)", helper, newDelegatorExpr(pair, imports), ctor)
		}

		data.Entries = append(data.Entries, entry)
	}

	data.Imports = imports.specs()

	return render(registryTemplate, data, RegistryFilename, g.config.OutputDir)
}

// newDelegatorExpr returns the constructor reference handed to the chain
// helper, wrapped in a closure when its parameter is not exactly the
// source reference type.
func newDelegatorExpr(pair *plan.ResolvedPair, imports *importSet) string {
	c := pair.Constructor
	name := imports.qualified(c.Func.Func)

	if types.Identical(c.Func.Signature.Params().At(0).Type(), pair.SourceRef) {
		return name
	}

	results := imports.typeString(c.Delegator)
	if c.ReturnsError {
		results = "(" + results + ", error)"
	}

	return fmt.Sprintf("func(s %s) %s { return %s(s) }", imports.typeString(pair.SourceRef), results, name)
}

func render(tmpl *template.Template, data any, filename, outputDir string) (*GeneratedFile, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		_ = writeDebugUnformatted(outputDir, filename, buf.Bytes())

		return &GeneratedFile{
			Filename: filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{
		Filename: filename,
		Content:  formatted,
	}, nil
}

// snakeCase turns an adapter name into a file name stem:
// StoreOrderToWarehouseOrder becomes store_order_to_warehouse_order.
func snakeCase(name string) string {
	runes := []rune(name)

	var b strings.Builder

	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
