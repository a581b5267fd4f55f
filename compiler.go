package web2pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Compiler defaults.
const (
	DefaultCompilerBinary = "xelatex"
	defaultPassTimeout    = 2 * time.Minute
	logExcerptLines       = 20
)

// sourceExtension is the only extension Compile accepts.
const sourceExtension = ".tex"

// Compiler drives multi-pass XeLaTeX compilation: availability check,
// pass sequencing, log classification, timeout enforcement, workspace
// cleanup, and artifact inspection.
//
// A Compiler is stateless between requests and safe for concurrent use as
// long as concurrent requests target distinct working directories; callers
// are responsible for serializing per-directory access.
type Compiler struct {
	binary      string
	passTimeout time.Duration
	checker     toolChecker
	runner      passRunner
	classifier  *logClassifier
}

// CompilerOption configures a Compiler.
type CompilerOption func(*Compiler)

// WithCompilerBinary overrides the compiler executable name or path.
func WithCompilerBinary(binary string) CompilerOption {
	return func(c *Compiler) { c.binary = binary }
}

// WithPassTimeout sets the wall-clock budget for each compilation pass.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithPassTimeout(d time.Duration) CompilerOption {
	if d <= 0 {
		panic("web2pdf: WithPassTimeout duration must be positive")
	}
	return func(c *Compiler) { c.passTimeout = d }
}

// WithExtraMarkers appends fatal and warning log markers to the built-in
// classification tables. The exact marker strings emitted by a TeX engine
// vary by distribution, so the table is configurable rather than hard fact.
func WithExtraMarkers(fatal, warning []string) CompilerOption {
	return func(c *Compiler) { c.classifier = newLogClassifier(fatal, warning) }
}

// NewCompiler creates a Compiler with default configuration.
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{
		binary:      DefaultCompilerBinary,
		passTimeout: defaultPassTimeout,
		classifier:  newLogClassifier(nil, nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.checker == nil {
		c.checker = &execChecker{binary: c.binary}
	}
	if c.runner == nil {
		c.runner = &execRunner{classifier: c.classifier}
	}
	return c
}

// Compile runs the compilation state machine for one request and always
// returns a CompileResult for requests that pass input validation: tool
// absence, compiler failure, and timeout are outcomes, not errors, so a
// caller can batch multiple documents.
//
// An error is returned only for invalid input (missing file or wrong
// extension), detected before any process is spawned.
func (c *Compiler) Compile(ctx context.Context, req CompileRequest) (*CompileResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	out := newConsole(req.Verbose)
	dir := filepath.Dir(req.SourcePath)
	base := filepath.Base(req.SourcePath)
	artifact := filepath.Join(dir, strings.TrimSuffix(base, sourceExtension)+".pdf")

	start := time.Now()
	result := &CompileResult{}

	out.boldf("Compiling: %s", base)

	// Checking tool. If the compiler cannot be invoked, no pass ran and
	// nothing was created, so there is nothing to clean up.
	if !c.checker.Available(ctx) {
		out.errorf("%s not found. Install TeX Live or MiKTeX.", c.binary)
		result.Outcome = OutcomeToolMissing
		result.Elapsed = time.Since(start)
		return result, nil
	}

	args := []string{"-interaction=nonstopmode", "-halt-on-error", base}

	// Pass 1.
	out.infof("Running: %s %s", c.binary, strings.Join(args, " "))
	pass1 := c.runner.Run(ctx, c.binary, args, dir, c.passTimeout)
	result.Passes = append(result.Passes, pass1)
	result.Outcome = pass1.Outcome
	c.reportPass(out, "First pass", pass1)

	// Pass 2 only when requested and pass 1 left a usable state: a second
	// pass cannot fix a fatal failure and would waste the timeout budget.
	if pass1.Outcome.OK() && !req.SinglePass {
		out.infof("Running second pass for references...")
		pass2 := c.runner.Run(ctx, c.binary, args, dir, c.passTimeout)
		result.Passes = append(result.Passes, pass2)
		result.Outcome = pass2.Outcome
		c.reportPass(out, "Second pass", pass2)
	}

	// Cleanup runs exactly once, after the final pass. Aux files are
	// removed only on success; on failure the log stays on disk for
	// diagnosis even when cleanup was requested.
	if req.Cleanup && result.Outcome.OK() {
		out.infof("Cleaning up auxiliary files...")
		result.Removed, result.CleanupWarnings = cleanWorkspace(req.SourcePath)
		for _, p := range result.Removed {
			out.warnf("Removed: %s", filepath.Base(p))
		}
		for _, w := range result.CleanupWarnings {
			out.warnf("%s", w)
		}
	}

	// Artifact inspection happens only on success, after cleanup. A
	// missing artifact here means the compiler claimed success without
	// producing a file: a late-detected failure. A stale PDF from a
	// previous run is never claimed on a failed outcome.
	if result.Outcome.OK() {
		size, err := artifactSize(artifact)
		if err != nil {
			out.errorf("PDF was not created")
			result.Outcome = OutcomeFailure
		} else {
			result.ArtifactPath = artifact
			result.ArtifactSize = size
			result.Pages = pageCount(artifact)
			out.successf("PDF created: %s (%s)", filepath.Base(artifact), HumanSize(size))
		}
	}

	result.Elapsed = time.Since(start)
	return result, nil
}

// reportPass emits the per-pass console line.
func (c *Compiler) reportPass(out *console, label string, pass PassResult) {
	switch pass.Outcome {
	case OutcomeTimedOut:
		out.warnf("%s timed out after %s", label, pass.Duration.Round(time.Millisecond))
	case OutcomeFailure:
		out.errorf("%s failed (exit code %d)", label, pass.ExitCode)
		if tail := excerpt(pass.Output, logExcerptLines); tail != "" {
			out.errorf("%s", tail)
		}
	case OutcomeToolMissing:
		out.errorf("%s: compiler disappeared mid-run", label)
	case OutcomeSuccessWithWarnings:
		out.warnf("%s completed with warnings", label)
	default:
		out.successf("%s successful", label)
	}
}

// validateRequest rejects malformed requests before any process spawns.
func validateRequest(req CompileRequest) error {
	if req.SourcePath == "" {
		return fmt.Errorf("%w: empty source path", ErrInvalidSource)
	}
	if !strings.EqualFold(filepath.Ext(req.SourcePath), sourceExtension) {
		return fmt.Errorf("%w: %s must have a %s extension", ErrInvalidSource, req.SourcePath, sourceExtension)
	}
	if _, err := os.Stat(req.SourcePath); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidSource, req.SourcePath, err)
	}
	return nil
}
