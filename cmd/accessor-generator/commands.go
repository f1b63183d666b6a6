package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-logr/logr"
	"github.com/goccy/go-json"

	"accessor-generator/internal/analyze"
	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/gen"
	"accessor-generator/internal/mapping"
	"accessor-generator/internal/plan"
)

var errMissingPackages = errors.New("-pkg is required")

// commonFlags are shared by every command that loads packages.
type commonFlags struct {
	pkgs    string
	dir     string
	mapping string
	verbose bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.pkgs, "pkg", "", "comma separated package patterns to load")
	fs.StringVar(&c.dir, "dir", "", "directory package patterns are resolved from")
	fs.StringVar(&c.mapping, "mapping", "", "accessor YAML file")
	fs.BoolVar(&c.verbose, "v", false, "verbose logging")
}

func (c *commonFlags) patterns() []string {
	var out []string

	for _, p := range strings.Split(c.pkgs, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

func (c *commonFlags) loadGraph() (*analyze.TypeGraph, error) {
	patterns := c.patterns()
	if len(patterns) == 0 {
		return nil, errMissingPackages
	}

	graph, err := analyze.NewAnalyzer().InDir(c.dir).LoadPackages(patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}

	return graph, nil
}

// loadDeclarations returns the accessor file merged with the directives of
// graph, plus the diagnostics of directives that could not be read.
func (c *commonFlags) loadDeclarations(graph *analyze.TypeGraph) (*mapping.AccessorFile, *diagnostic.Diagnostics, error) {
	file := &mapping.AccessorFile{
		Version: mapping.DefaultVersion,
		Package: mapping.DefaultPackage,
	}

	if c.mapping != "" {
		var err error
		if file, err = mapping.LoadFile(c.mapping); err != nil {
			return nil, nil, err
		}
	}

	defs, diags := mapping.FromDirectives(graph)
	mapping.Merge(file, defs, graph)

	return file, diags, nil
}

type resolveFlags struct {
	commonFlags
	strict bool
	json   bool
}

func (r *resolveFlags) register(fs *flag.FlagSet) {
	r.commonFlags.register(fs)
	fs.BoolVar(&r.strict, "strict", false, "treat unmatched interface methods as errors")
	fs.BoolVar(&r.json, "json", false, "print diagnostics as JSON")
}

// resolve runs analysis and resolution and prints the diagnostics to w.
func (r *resolveFlags) resolve(w io.Writer, log logr.Logger) (*plan.ResolvedPlan, error) {
	graph, err := r.loadGraph()
	if err != nil {
		return nil, err
	}

	file, directiveDiags, err := r.loadDeclarations(graph)
	if err != nil {
		return nil, err
	}

	config := plan.DefaultConfig()
	config.StrictMode = r.strict

	p, resolveErr := plan.NewResolver(graph, file, config).WithLogger(log).Resolve()
	if p == nil {
		return nil, resolveErr
	}

	p.Diagnostics.Merge(*directiveDiags)

	if err := printDiagnostics(w, &p.Diagnostics, r.json); err != nil {
		return nil, err
	}

	if resolveErr != nil {
		return nil, resolveErr
	}

	if p.Diagnostics.HasErrors() {
		return nil, fmt.Errorf("resolution failed with %d errors", len(p.Diagnostics.Errors))
	}

	return p, nil
}

func printDiagnostics(w io.Writer, diags *diagnostic.Diagnostics, asJSON bool) error {
	if asJSON {
		b, err := json.MarshalIndent(diags, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding diagnostics: %w", err)
		}

		_, err = fmt.Fprintf(w, "%s\n", b)

		return err
	}

	for _, d := range diags.All() {
		if _, err := fmt.Fprintf(w, "%s: %s\n", d.Severity, d); err != nil {
			return err
		}
	}

	return nil
}

func cmdCheck(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)

	var flags resolveFlags
	flags.register(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	log, sync, err := newLogger(flags.verbose)
	if err != nil {
		return err
	}
	defer sync()

	p, err := flags.resolve(w, log)
	if err != nil {
		return err
	}

	if !flags.json {
		fmt.Fprintf(w, "ok: %d adapters\n", len(p.Pairs))
	}

	return nil
}

func cmdGen(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)

	var flags resolveFlags
	flags.register(fs)

	config := gen.DefaultGeneratorConfig()
	pkgName := fs.String("package", "", "generated package name (default: the accessor file's package)")
	fs.StringVar(&config.OutputDir, "out", config.OutputDir, "output directory")
	fs.StringVar(&config.PackagePath, "import", "", "import path of the generated package")
	noComments := fs.Bool("no-comments", false, "omit explanatory comments")

	if err := fs.Parse(args); err != nil {
		return err
	}

	log, sync, err := newLogger(flags.verbose)
	if err != nil {
		return err
	}
	defer sync()

	p, err := flags.resolve(w, log)
	if err != nil {
		return err
	}

	config.PackageName = p.Package
	if *pkgName != "" {
		config.PackageName = *pkgName
	}

	config.GenerateComments = !*noComments

	files, err := gen.NewGenerator(config).Generate(p)
	if err != nil {
		return err
	}

	if err := gen.WriteFiles(files, config.OutputDir); err != nil {
		return err
	}

	for _, f := range files {
		log.V(1).Info("wrote file", "dir", config.OutputDir, "file", f.Filename, "bytes", len(f.Content))
	}

	log.Info("generated adapters", "package", config.PackageName, "adapters", len(p.Pairs), "dir", config.OutputDir)

	return nil
}

func cmdSuggest(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("suggest", flag.ContinueOnError)

	var flags commonFlags
	flags.register(fs)

	out := fs.String("o", "", "write the accessor file here instead of stdout")

	if err := fs.Parse(args); err != nil {
		return err
	}

	graph, err := flags.loadGraph()
	if err != nil {
		return err
	}

	file, diags, err := flags.loadDeclarations(graph)
	if err != nil {
		return err
	}

	if err := printDiagnostics(w, diags, false); err != nil {
		return err
	}

	if *out != "" {
		return mapping.WriteFile(file, *out)
	}

	b, err := mapping.Marshal(file)
	if err != nil {
		return err
	}

	_, err = w.Write(b)

	return err
}

func cmdAnalyze(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)

	var flags commonFlags
	flags.register(fs)

	asJSON := fs.Bool("json", false, "print the report as JSON")
	dump := fs.Bool("dump", false, "dump the report with go-spew")

	if err := fs.Parse(args); err != nil {
		return err
	}

	graph, err := flags.loadGraph()
	if err != nil {
		return err
	}

	report := buildReport(graph)

	switch {
	case *asJSON:
		b, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}

		_, err = fmt.Fprintf(w, "%s\n", b)

		return err
	case *dump:
		spew.Fdump(w, report)
		return nil
	default:
		return report.write(w)
	}
}
