package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	web2pdf "github.com/alnah/go-web2pdf"
	"github.com/alnah/go-web2pdf/internal/config"
	"github.com/alnah/go-web2pdf/internal/hints"
)

// ErrNoSource indicates the compile command got no positional argument.
var ErrNoSource = errors.New("no source document specified")

// runCompileCmd executes the compile command and returns an exit code.
// Exit codes: 0 on success (including warnings), 4 on failure/timeout/
// missing tool, 2 on invalid input.
func runCompileCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseCompileFlags(args)
	if err != nil {
		return ExitUsage
	}

	result, binary, err := runCompile(ctx, positional, flags)
	if err != nil {
		fmt.Fprintf(env.Stderr, "%v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}

	reportCompile(result, binary, flags.common, env)
	return exitCodeForOutcome(result.Outcome)
}

// runCompile builds the compiler from config and flags and runs one
// request. The resolved compiler binary is returned for error reporting.
func runCompile(ctx context.Context, positional []string, flags *compileFlags) (*web2pdf.CompileResult, string, error) {
	if len(positional) == 0 {
		return nil, "", ErrNoSource
	}

	cfg := config.DefaultConfig()
	var err error
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return nil, "", fmt.Errorf("loading config: %w", err)
		}
	}

	binary := pick(flags.binary, cfg.Compile.Binary, web2pdf.DefaultCompilerBinary)

	var copts []web2pdf.CompilerOption
	copts = append(copts, web2pdf.WithCompilerBinary(binary))
	if timeout := pick(flags.timeout, cfg.Compile.PassTimeout); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil || d <= 0 {
			return nil, "", fmt.Errorf("%w: %q", ErrBadTimeout, timeout)
		}
		copts = append(copts, web2pdf.WithPassTimeout(d))
	}
	if len(cfg.Compile.FatalMarkers) > 0 || len(cfg.Compile.WarningMarkers) > 0 {
		copts = append(copts, web2pdf.WithExtraMarkers(cfg.Compile.FatalMarkers, cfg.Compile.WarningMarkers))
	}

	compiler := web2pdf.NewCompiler(copts...)

	result, err := compiler.Compile(ctx, web2pdf.CompileRequest{
		SourcePath: positional[0],
		SinglePass: flags.singlePass || cfg.Compile.SinglePass,
		Cleanup:    !(flags.noCleanup || cfg.Compile.NoCleanup),
		Verbose:    !flags.common.quiet,
	})
	return result, binary, err
}

// reportPasses writes one summary line per compiler pass.
func reportPasses(result *web2pdf.CompileResult, w io.Writer) {
	for i, pass := range result.Passes {
		fmt.Fprintf(w, "  pass %d: %s in %s (exit %d)\n",
			i+1, pass.Outcome, pass.Duration.Round(time.Millisecond), pass.ExitCode)
	}
}

// reportCompile prints the one-line result summary. With verbose, each
// pass gets its own line first.
func reportCompile(result *web2pdf.CompileResult, binary string, common commonFlags, env *Environment) {
	switch {
	case result.Outcome.OK():
		if common.quiet {
			fmt.Fprintln(env.Stdout, result.ArtifactPath)
			return
		}
		if common.verbose {
			reportPasses(result, env.Stdout)
		}
		fmt.Fprintf(env.Stdout, "%s (%s", filepath.Base(result.ArtifactPath), web2pdf.HumanSize(result.ArtifactSize))
		if result.Pages > 0 {
			fmt.Fprintf(env.Stdout, ", %d pages", result.Pages)
		}
		fmt.Fprintf(env.Stdout, ") in %s\n", result.Elapsed.Round(time.Millisecond))
	case result.Outcome == web2pdf.OutcomeTimedOut:
		fmt.Fprintf(env.Stderr, "compilation timed out after %s\n", result.Elapsed.Round(time.Second))
	case result.Outcome == web2pdf.OutcomeToolMissing:
		fmt.Fprintf(env.Stderr, "compiler not found%s\n", hints.ForToolMissing(binary))
	default:
		if common.verbose {
			reportPasses(result, env.Stderr)
		}
		fmt.Fprintln(env.Stderr, "compilation failed; the .log file is preserved for diagnosis")
	}
}
