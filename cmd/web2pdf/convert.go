package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	web2pdf "github.com/alnah/go-web2pdf"
	"github.com/alnah/go-web2pdf/internal/config"
	"github.com/alnah/go-web2pdf/internal/fileutil"
	"github.com/alnah/go-web2pdf/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoURL         = errors.New("no article URL specified")
	ErrBadURL        = errors.New("argument must be an http(s) URL")
	ErrBadTimeout    = errors.New("invalid timeout")
	ErrCompileFailed = errors.New("compilation failed")
)

// runConvertCmd executes the convert command and returns an exit code.
func runConvertCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		return ExitUsage
	}

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "%v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// hintFor appends an actionable hint for well-known failures.
func hintFor(err error) string {
	switch {
	case errors.Is(err, web2pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, web2pdf.ErrTemplateMissing):
		return hints.ForTemplateMissing()
	default:
		return ""
	}
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positional []string, flags *convertFlags, env *Environment) error {
	if len(positional) == 0 {
		return ErrNoURL
	}
	articleURL := positional[0]
	if !fileutil.IsURL(articleURL) {
		return fmt.Errorf("%w: got %q", ErrBadURL, articleURL)
	}

	cfg := config.DefaultConfig()
	var err error
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	opts, err := buildServiceOptions(flags, cfg, env)
	if err != nil {
		return err
	}

	svc := web2pdf.New(opts...)
	defer svc.Close()

	result, err := svc.Convert(ctx, articleURL)
	if err != nil {
		return err
	}

	return reportResult(result, flags.common.quiet, flags.common.verbose, env)
}

// buildServiceOptions merges config file values and CLI flags (CLI wins)
// into service options.
func buildServiceOptions(flags *convertFlags, cfg *config.Config, env *Environment) ([]web2pdf.Option, error) {
	var opts []web2pdf.Option

	verbose := !flags.common.quiet
	opts = append(opts, web2pdf.WithVerbose(verbose))

	if cfg.Fetch.Timeout != "" {
		d, err := time.ParseDuration(cfg.Fetch.Timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: fetch.timeout %q", ErrBadTimeout, cfg.Fetch.Timeout)
		}
		opts = append(opts, web2pdf.WithFetchTimeout(d))
	}
	if cfg.Fetch.UserAgent != "" {
		opts = append(opts, web2pdf.WithUserAgent(cfg.Fetch.UserAgent))
	}
	if cfg.Images.Workers > 0 {
		opts = append(opts, web2pdf.WithImageWorkers(cfg.Images.Workers))
	}

	if flags.singlePass || cfg.Compile.SinglePass {
		opts = append(opts, web2pdf.WithSinglePass(true))
	}
	if flags.noCleanup || cfg.Compile.NoCleanup {
		opts = append(opts, web2pdf.WithNoCleanup(true))
	}

	if flags.output != "" {
		opts = append(opts, web2pdf.WithWorkDir(flags.output))
	}

	template := cfg.Template.Path
	if flags.template != "" {
		template = flags.template
	}
	if template != "" {
		opts = append(opts, web2pdf.WithTemplate(template))
	}

	engine := cfg.Engine
	if flags.engine != "" {
		engine = flags.engine
	}
	switch engine {
	case "":
		// default engine
	case string(web2pdf.EngineXeLaTeX), string(web2pdf.EngineChrome):
		opts = append(opts, web2pdf.WithEngine(web2pdf.Engine(engine)))
	default:
		return nil, fmt.Errorf("%w: engine must be xelatex or chrome, got %q", config.ErrInvalidValue, engine)
	}

	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrBadTimeout, flags.timeout)
		}
		opts = append(opts, web2pdf.WithTimeout(d))
	}

	opts = append(opts, web2pdf.WithMetadata(web2pdf.Metadata{
		Title:  flags.title,
		Author: pick(flags.author, cfg.Metadata.Author),
		Editor: pick(flags.editor, cfg.Metadata.Editor),
		Date:   flags.date,
	}))

	compiler, err := buildCompiler(cfg, flags)
	if err != nil {
		return nil, err
	}
	opts = append(opts, web2pdf.WithCompiler(compiler))

	return opts, nil
}

// buildCompiler configures the XeLaTeX orchestrator from config and flags.
func buildCompiler(cfg *config.Config, flags *convertFlags) (*web2pdf.Compiler, error) {
	var copts []web2pdf.CompilerOption

	if cfg.Compile.Binary != "" {
		copts = append(copts, web2pdf.WithCompilerBinary(cfg.Compile.Binary))
	}
	if cfg.Compile.PassTimeout != "" {
		d, err := time.ParseDuration(cfg.Compile.PassTimeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: compile.passTimeout %q", ErrBadTimeout, cfg.Compile.PassTimeout)
		}
		copts = append(copts, web2pdf.WithPassTimeout(d))
	}
	if len(cfg.Compile.FatalMarkers) > 0 || len(cfg.Compile.WarningMarkers) > 0 {
		copts = append(copts, web2pdf.WithExtraMarkers(cfg.Compile.FatalMarkers, cfg.Compile.WarningMarkers))
	}

	return web2pdf.NewCompiler(copts...), nil
}

// reportResult prints the final file listing. With verbose, each compiler
// pass gets its own summary line.
func reportResult(result *web2pdf.Result, quiet, verbose bool, env *Environment) error {
	if result.Compile != nil && !result.Compile.Outcome.OK() {
		if verbose {
			reportPasses(result.Compile, env.Stderr)
		}
		return fmt.Errorf("%w (%s): see %s.log", ErrCompileFailed, result.Compile.Outcome, result.Slug)
	}

	if quiet {
		fmt.Fprintln(env.Stdout, result.PDFPath)
		return nil
	}

	if verbose && result.Compile != nil {
		reportPasses(result.Compile, env.Stdout)
	}

	fmt.Fprintln(env.Stdout, "Done! Generated files:")
	fmt.Fprintf(env.Stdout, "  PDF:      %s", result.PDFPath)
	if result.Compile != nil {
		fmt.Fprintf(env.Stdout, " (%s", web2pdf.HumanSize(result.Compile.ArtifactSize))
		if result.Compile.Pages > 0 {
			fmt.Fprintf(env.Stdout, ", %d pages", result.Compile.Pages)
		}
		fmt.Fprint(env.Stdout, ")")
	}
	fmt.Fprintln(env.Stdout)
	if result.TexPath != "" {
		fmt.Fprintf(env.Stdout, "  LaTeX:    %s\n", result.TexPath)
	}
	fmt.Fprintf(env.Stdout, "  Markdown: %s\n", result.MarkdownPath)
	fmt.Fprintf(env.Stdout, "  HTML:     %s\n", result.HTMLPath)
	fmt.Fprintf(env.Stdout, "Elapsed: %s\n", result.Elapsed.Round(time.Millisecond))
	return nil
}

// pick returns the first non-empty value.
func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
