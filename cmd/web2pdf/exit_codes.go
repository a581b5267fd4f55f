package main

import (
	"errors"
	"os"

	web2pdf "github.com/alnah/go-web2pdf"
	"github.com/alnah/go-web2pdf/internal/config"
)

// Exit codes for the web2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion or compilation
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Network/file problems
	ExitCompile = 4 // Compilation failed, timed out, or tool missing
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Compilation and typesetting errors (exit 4)
	if errors.Is(err, ErrCompileFailed) ||
		errors.Is(err, web2pdf.ErrTexGeneration) ||
		errors.Is(err, web2pdf.ErrArtifactMissing) ||
		errors.Is(err, web2pdf.ErrBrowserConnect) ||
		errors.Is(err, web2pdf.ErrPageCreate) ||
		errors.Is(err, web2pdf.ErrPageLoad) ||
		errors.Is(err, web2pdf.ErrPDFGeneration) {
		return ExitCompile
	}

	// I/O and network errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, web2pdf.ErrFetchFailed) ||
		errors.Is(err, web2pdf.ErrEmptyHTML) ||
		errors.Is(err, web2pdf.ErrMarkdownConvert) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, web2pdf.ErrEmptyURL) ||
		errors.Is(err, web2pdf.ErrInvalidSource) ||
		errors.Is(err, web2pdf.ErrTemplateMissing) {
		return ExitUsage
	}

	return ExitGeneral
}

// exitCodeForOutcome maps a compilation outcome to an exit code.
func exitCodeForOutcome(outcome web2pdf.Outcome) int {
	if outcome.OK() {
		return ExitSuccess
	}
	return ExitCompile
}
