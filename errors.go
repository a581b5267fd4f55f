package web2pdf

import "errors"

// Sentinel errors for library operations.
var (
	// Pipeline errors.
	ErrEmptyURL        = errors.New("article URL cannot be empty")
	ErrFetchFailed     = errors.New("article download failed")
	ErrEmptyHTML       = errors.New("article HTML is empty")
	ErrMarkdownConvert = errors.New("HTML to Markdown conversion failed")
	ErrTexGeneration   = errors.New("LaTeX generation failed")
	ErrTemplateMissing = errors.New("LaTeX template not found")

	// Compiler errors. Only contract violations are returned as errors;
	// compilation failures are reported through CompileResult.Outcome.
	ErrInvalidSource   = errors.New("invalid source document")
	ErrArtifactMissing = errors.New("artifact not found")

	// Chrome engine errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Preview errors.
	ErrHTMLConversion = errors.New("HTML conversion failed")
)
