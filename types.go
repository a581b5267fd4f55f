package web2pdf

import "time"

// Outcome classifies the result of a compilation attempt.
type Outcome int

// Compilation outcomes, ordered from best to worst.
const (
	// OutcomeSuccess means the compiler exited cleanly with no recognized
	// diagnostics in its log.
	OutcomeSuccess Outcome = iota

	// OutcomeSuccessWithWarnings means the artifact is usable but the log
	// contains recognized warning markers (undefined references, overfull
	// boxes, font substitutions).
	OutcomeSuccessWithWarnings

	// OutcomeFailure means the compiler reported a fatal error, either via
	// a non-zero exit code or a recognized fatal marker in the log.
	OutcomeFailure

	// OutcomeTimedOut means the pass exceeded its wall-clock budget and
	// the process was forcibly terminated.
	OutcomeTimedOut

	// OutcomeToolMissing means the compiler binary could not be invoked.
	OutcomeToolMissing
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeSuccessWithWarnings:
		return "success with warnings"
	case OutcomeFailure:
		return "failure"
	case OutcomeTimedOut:
		return "timed out"
	case OutcomeToolMissing:
		return "tool missing"
	default:
		return "unknown"
	}
}

// OK reports whether the outcome produced a usable artifact.
func (o Outcome) OK() bool {
	return o == OutcomeSuccess || o == OutcomeSuccessWithWarnings
}

// CompileRequest describes one compilation of a LaTeX source document.
// Immutable once constructed; owned by the Compile call that receives it.
type CompileRequest struct {
	SourcePath string // absolute or working-directory-relative path to a .tex file
	SinglePass bool   // skip the second reference-resolution pass
	Cleanup    bool   // remove auxiliary files after a successful compile
	Verbose    bool   // emit colored progress to the console
}

// PassResult captures the observable surface of one compiler invocation:
// exit code, merged stdout+stderr text, and wall-clock duration.
type PassResult struct {
	ExitCode int
	Output   string
	Duration time.Duration
	Outcome  Outcome
}

// CompileResult aggregates one or two passes into a terminal value.
// It owns no live resources.
type CompileResult struct {
	Outcome         Outcome
	ArtifactPath    string // set only when Outcome.OK()
	ArtifactSize    int64  // bytes, set only when Outcome.OK()
	Pages           int    // best-effort PDF page count, 0 if unknown
	Removed         []string
	CleanupWarnings []string
	Passes          []PassResult
	Elapsed         time.Duration
}

// Metadata describes an article for the document front matter.
type Metadata struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	URL    string `yaml:"url"`
	Editor string `yaml:"editor"`
	Date   string `yaml:"date"`
}

// Engine selects the PDF generation backend.
type Engine string

// Available engines.
const (
	// EngineXeLaTeX generates LaTeX via Pandoc and compiles it with XeLaTeX.
	EngineXeLaTeX Engine = "xelatex"

	// EngineChrome renders a Goldmark HTML preview and prints it with
	// headless Chrome. Useful when no TeX distribution is installed.
	EngineChrome Engine = "chrome"
)

// Result holds the files produced by one article conversion.
type Result struct {
	Slug         string
	HTMLPath     string
	MarkdownPath string
	TexPath      string // empty for EngineChrome
	PDFPath      string
	Metadata     Metadata
	Images       int
	Compile      *CompileResult // nil for EngineChrome
	Elapsed      time.Duration
}
