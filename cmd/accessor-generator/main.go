// Package main provides the CLI entrypoint for accessor-generator.
//
// accessor-generator reads Go packages, collects adapter declarations from an
// accessor file and from //accessor:delegator directives, and generates the
// forwarding adapters together with a Declarations registry for
// accessor.Repository.Scan.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

// traceLevel is the zap level logr's V(2) maps to through zapr.
const traceLevel = zapcore.Level(-2)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	var err error

	switch os.Args[1] {
	case "analyze":
		err = cmdAnalyze(os.Args[2:], os.Stdout)
	case "suggest":
		err = cmdSuggest(os.Args[2:], os.Stdout)
	case "check":
		err = cmdCheck(os.Args[2:], os.Stdout)
	case "gen":
		err = cmdGen(os.Args[2:], os.Stdout)
	case "version":
		fmt.Printf("accessor-generator %s\n", version)
	case "help", "--help", "-h":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: accessor-generator <command> [flags]

Commands:
  analyze   List the types, method descriptors and directives of packages
  suggest   Write an accessor file from the //accessor: directives found
  check     Resolve declarations and report diagnostics
  gen       Resolve declarations and write the generated package
  version   Print version information
  help      Show this help

Common flags:
  -pkg <patterns>   Comma separated package patterns to load (required)
  -dir <path>       Directory patterns are resolved from
  -mapping <file>   Accessor YAML file merged with the directives
  -v                Verbose logging

Run 'accessor-generator <command> -h' for the flags of a command.
`)
}

// newLogger returns a zap backed logr.Logger; verbose enables V(1) and V(2)
// output.
func newLogger(verbose bool) (logr.Logger, func(), error) {
	config := zap.NewProductionConfig()
	if verbose {
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(traceLevel)
	}

	z, err := config.Build()
	if err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("creating logger: %w", err)
	}

	return zapr.NewLogger(z), func() { _ = z.Sync() }, nil
}
