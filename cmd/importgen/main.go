package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/toyz/importgen/internal/cli"
	"github.com/toyz/importgen/internal/utils"
)

// environment is what a run sees of the process
type environment struct {
	workDir   string
	stdout    io.Writer
	stderr    io.Writer
	lookupEnv func(string) (string, bool)
}

func main() {
	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], environment{
		workDir:   workDir,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		lookupEnv: os.LookupEnv,
	})
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, env environment) int {
	cfg, err := cli.LoadEnv(filepath.Join(env.workDir, ".env"), env.lookupEnv)
	if err != nil {
		cli.NewDiagnosticReporter(false, env.stderr).ReportError(err)
		return 1
	}
	cfg.WorkDir = env.workDir

	fs := flag.NewFlagSet("importgen", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	cfg.RegisterFlags(fs)
	helpFlag := fs.Bool("help", false, "Show help information")
	fs.Usage = func() { usage(fs, env.stderr) }

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if *helpFlag {
		fs.Usage()
		return 0
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(env.stderr, "Error: unexpected arguments: %v\n\n", fs.Args())
		fs.Usage()
		return 2
	}

	diagnostics := utils.NewDiagnosticSystem(cfg.LogLevel())
	if env.stdout != os.Stdout || env.stderr != os.Stderr {
		diagnostics.SetOutput(env.stdout, env.stderr)
	}
	reporter := cli.NewDiagnosticReporter(cfg.Verbose, env.stderr)
	generator := cli.NewGenerator(diagnostics)

	if cfg.Clean {
		removed, err := generator.Clean(cfg)
		if err != nil {
			reporter.ReportError(err)
			return 1
		}
		diagnostics.Info("Removed %d generated import factor%s", len(removed), plural(len(removed)))
		return 0
	}

	if err := generator.Run(ctx, cfg); err != nil {
		reporter.ReportError(err)
		return 1
	}

	summary := generator.GetSummary()
	keys := []string{"Dependencies matched", "Packages discovered", "Packages after filtering", "Factories"}
	stats := map[string]interface{}{
		"Dependencies matched":     summary.DependenciesMatched,
		"Packages discovered":      summary.PackagesDiscovered,
		"Packages after filtering": summary.PackagesFiltered,
		"Factories":                len(summary.GeneratedFiles),
	}
	title := "Generation Summary"
	if summary.DryRun {
		title = "Generation Summary (dry run)"
	}
	diagnostics.Summary(title, keys, stats)

	if diagnostics.Enabled(utils.DiagnosticVerbose) && len(summary.GeneratedFiles) > 0 {
		diagnostics.Section("Generated Files")
		diagnostics.Indent()
		for _, file := range summary.GeneratedFiles {
			diagnostics.List("%s", file)
		}
		diagnostics.Unindent()
	}

	if !summary.DryRun {
		diagnostics.GenerationComplete(len(summary.GeneratedFiles))
	}
	return 0
}

func usage(fs *flag.FlagSet, out io.Writer) {
	fmt.Fprintf(out, "Usage: importgen [options]\n\n")
	fmt.Fprintf(out, "Micronaut Import Factory Generator\n")
	fmt.Fprintf(out, "Scans the project's dependency archives for Java packages and writes\n")
	fmt.Fprintf(out, "ImportFactory.java classes that import them into the bean context.\n\n")
	fmt.Fprintf(out, "Options:\n")
	fs.PrintDefaults()
	fmt.Fprintf(out, "\nEnvironment:\n")
	fmt.Fprintf(out, "  Every option can be set as %s<NAME>, e.g. %sTARGET_PACKAGE.\n", cli.EnvPrefix, cli.EnvPrefix)
	fmt.Fprintf(out, "  A .env file in the working directory is loaded first.\n")
	fmt.Fprintf(out, "\nExamples:\n")
	fmt.Fprintf(out, "  importgen                                          # One factory per package of the nearest pom.xml\n")
	fmt.Fprintf(out, "  importgen -target-package com.example.gen          # A single aggregated factory\n")
	fmt.Fprintf(out, "  importgen -include-dependencies 'io\\.micronaut:.*' # Only scan matching dependencies\n")
	fmt.Fprintf(out, "  importgen -dependency io.codegen:stub:1.0.0        # Scan an artifact without a pom.xml\n")
	fmt.Fprintf(out, "  importgen -clean                                   # Delete generated factories\n")
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
