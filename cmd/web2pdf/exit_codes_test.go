package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	web2pdf "github.com/alnah/go-web2pdf"
	"github.com/alnah/go-web2pdf/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"compile failed", ErrCompileFailed, ExitCompile},
		{"wrapped compile failed", fmt.Errorf("compilation failed (failure): see post.log: %w", ErrCompileFailed), ExitCompile},
		{"tex generation", web2pdf.ErrTexGeneration, ExitCompile},
		{"artifact missing", web2pdf.ErrArtifactMissing, ExitCompile},
		{"pdf generation", web2pdf.ErrPDFGeneration, ExitCompile},
		{"browser connect", web2pdf.ErrBrowserConnect, ExitCompile},
		{"fetch failed", web2pdf.ErrFetchFailed, ExitIO},
		{"empty html", web2pdf.ErrEmptyHTML, ExitIO},
		{"markdown convert", web2pdf.ErrMarkdownConvert, ExitIO},
		{"file not exist", os.ErrNotExist, ExitIO},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"empty url", web2pdf.ErrEmptyURL, ExitUsage},
		{"invalid source", web2pdf.ErrInvalidSource, ExitUsage},
		{"template missing", web2pdf.ErrTemplateMissing, ExitUsage},
		{"unknown error", errors.New("boom"), ExitGeneral},
		{"wrapped error", fmt.Errorf("context: %w", web2pdf.ErrFetchFailed), ExitIO},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeForOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		outcome web2pdf.Outcome
		want    int
	}{
		{web2pdf.OutcomeSuccess, ExitSuccess},
		{web2pdf.OutcomeSuccessWithWarnings, ExitSuccess},
		{web2pdf.OutcomeFailure, ExitCompile},
		{web2pdf.OutcomeTimedOut, ExitCompile},
		{web2pdf.OutcomeToolMissing, ExitCompile},
	}

	for _, tt := range tests {
		tt := tt
		if got := exitCodeForOutcome(tt.outcome); got != tt.want {
			t.Errorf("exitCodeForOutcome(%v) = %d, want %d", tt.outcome, got, tt.want)
		}
	}
}
