package web2pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"

	"github.com/alnah/go-web2pdf/internal/fileutil"
)

// CommandRunner abstracts command execution to enable testing without real
// subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = nil

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// PandocConverter drives Pandoc for the format conversions the pipeline
// needs: article HTML to Markdown, and Markdown to LaTeX via a template.
type PandocConverter struct {
	Runner CommandRunner
}

// NewPandocConverter creates a PandocConverter with a real command runner.
func NewPandocConverter() *PandocConverter {
	return &PandocConverter{Runner: &ExecRunner{}}
}

// ToMarkdown converts an HTML file to Markdown on disk.
func (c *PandocConverter) ToMarkdown(ctx context.Context, htmlPath, mdPath string) error {
	_, stderr, err := c.Runner.Run(ctx, "pandoc", htmlPath, "-f", "html", "-t", "markdown", "-o", mdPath)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMarkdownConvert, stderr, err)
	}
	return nil
}

// ToLaTeX converts a Markdown file to LaTeX using the given template, then
// post-processes the output for image handling.
func (c *PandocConverter) ToLaTeX(ctx context.Context, mdPath, templatePath, texPath string) error {
	if !fileutil.FileExists(templatePath) {
		return fmt.Errorf("%w: %s", ErrTemplateMissing, templatePath)
	}

	_, stderr, err := c.Runner.Run(ctx, "pandoc", mdPath,
		"--template", templatePath, "-o", texPath, "--highlight-style=pygments")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrTexGeneration, stderr, err)
	}

	return postprocessTex(texPath)
}

// pandocBounded matches Pandoc's \pandocbounded wrapper around image
// includes; the article template handles sizing itself.
var pandocBounded = regexp.MustCompile(`\\pandocbounded\{(\\includegraphics\[[^\]]*\]\{[^}]+\})\}`)

// postprocessTex unwraps \pandocbounded while keeping \includegraphics.
func postprocessTex(texPath string) error {
	content, err := os.ReadFile(texPath) // #nosec G304 -- path produced by this pipeline
	if err != nil {
		return fmt.Errorf("%w: reading generated LaTeX: %v", ErrTexGeneration, err)
	}

	fixed := pandocBounded.ReplaceAll(content, []byte("$1"))

	if err := os.WriteFile(texPath, fixed, 0o644); err != nil {
		return fmt.Errorf("%w: writing LaTeX: %v", ErrTexGeneration, err)
	}
	return nil
}
