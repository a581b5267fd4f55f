package web2pdf

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Service defaults.
const (
	defaultPipelineTimeout = 5 * time.Minute
	defaultTemplate        = "webarticle.latex"
	defaultSlug            = "article"
)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout      time.Duration
	fetchTimeout time.Duration
	userAgent    string
	imageWorkers int
	workDir      string
	templatePath string
	engine       Engine
	verbose      bool
	singlePass   bool
	noCleanup    bool
	meta         Metadata // non-empty fields override extracted metadata
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout sets the whole-pipeline timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("web2pdf: WithTimeout duration must be positive")
	}
	return func(s *Service) { s.cfg.timeout = d }
}

// WithFetchTimeout sets the per-request timeout for article and image
// downloads. Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithFetchTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("web2pdf: WithFetchTimeout duration must be positive")
	}
	return func(s *Service) { s.cfg.fetchTimeout = d }
}

// WithUserAgent sets the User-Agent header sent on article downloads.
func WithUserAgent(userAgent string) Option {
	return func(s *Service) { s.cfg.userAgent = userAgent }
}

// WithImageWorkers bounds the number of concurrent image downloads.
// Panics if n <= 0.
func WithImageWorkers(n int) Option {
	if n <= 0 {
		panic("web2pdf: WithImageWorkers count must be positive")
	}
	return func(s *Service) { s.cfg.imageWorkers = n }
}

// WithWorkDir sets the directory where all files are produced.
func WithWorkDir(dir string) Option {
	return func(s *Service) { s.cfg.workDir = dir }
}

// WithTemplate sets the Pandoc LaTeX template path.
func WithTemplate(path string) Option {
	return func(s *Service) { s.cfg.templatePath = path }
}

// WithEngine selects the PDF backend.
func WithEngine(engine Engine) Option {
	return func(s *Service) { s.cfg.engine = engine }
}

// WithVerbose enables colored progress output.
func WithVerbose(verbose bool) Option {
	return func(s *Service) { s.cfg.verbose = verbose }
}

// WithSinglePass limits compilation to one XeLaTeX pass.
func WithSinglePass(singlePass bool) Option {
	return func(s *Service) { s.cfg.singlePass = singlePass }
}

// WithNoCleanup keeps auxiliary LaTeX files after a successful compile.
func WithNoCleanup(noCleanup bool) Option {
	return func(s *Service) { s.cfg.noCleanup = noCleanup }
}

// WithMetadata overrides extracted metadata; empty fields keep the
// extracted values.
func WithMetadata(meta Metadata) Option {
	return func(s *Service) { s.cfg.meta = meta }
}

// WithCompiler injects a configured Compiler.
func WithCompiler(c *Compiler) Option {
	return func(s *Service) { s.compiler = c }
}

// Service orchestrates the article-to-PDF pipeline.
type Service struct {
	cfg        serviceConfig
	fetcher    htmlFetcher
	pandoc     *PandocConverter
	downloader *ImageDownloader
	previewer  htmlPreviewer
	renderer   pdfRenderer
	compiler   *Compiler
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithEngine, WithTimeout).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			timeout:      defaultPipelineTimeout,
			fetchTimeout: defaultFetchTimeout,
			imageWorkers: defaultImageWorkers,
			workDir:      ".",
			templatePath: defaultTemplate,
			engine:       EngineXeLaTeX,
		},
		pandoc:    NewPandocConverter(),
		previewer: newGoldmarkPreviewer(),
	}

	for _, opt := range opts {
		opt(s)
	}

	// Fetcher and downloader depend on option values, so they are built
	// after the options have been applied.
	s.fetcher = newHTTPFetcher(s.cfg.fetchTimeout, s.cfg.userAgent)
	s.downloader = NewImageDownloader(s.cfg.fetchTimeout, s.cfg.imageWorkers)

	if s.compiler == nil {
		s.compiler = NewCompiler()
	}
	if s.renderer == nil {
		s.renderer = newRodRenderer(s.cfg.timeout)
	}

	return s
}

// Close releases resources held by the Chrome engine, if it was used.
func (s *Service) Close() error {
	if s.renderer != nil {
		return s.renderer.Close()
	}
	return nil
}

// Convert runs the full pipeline for one article URL.
func (s *Service) Convert(ctx context.Context, articleURL string) (*Result, error) {
	if articleURL == "" {
		return nil, ErrEmptyURL
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.timeout)
	defer cancel()

	out := newConsole(s.cfg.verbose)
	start := time.Now()

	slug := slugFromURL(articleURL)
	result := &Result{
		Slug:         slug,
		HTMLPath:     filepath.Join(s.cfg.workDir, slug+".html"),
		MarkdownPath: filepath.Join(s.cfg.workDir, slug+".md"),
	}

	// Stale outputs from a previous run must not survive into this one.
	removeStaleOutputs(s.cfg.workDir, slug)

	// Fetch.
	out.infof("Downloading HTML...")
	htmlContent, err := s.fetcher.FetchHTML(ctx, articleURL)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(result.HTMLPath, []byte(htmlContent), 0o644); err != nil {
		return nil, fmt.Errorf("writing HTML: %w", err)
	}

	// Metadata.
	out.infof("Extracting metadata...")
	meta := ExtractMetadata(htmlContent)
	meta.URL = articleURL
	meta.Editor = defaultEditor()
	meta.Date = "auto"
	applyOverrides(&meta, s.cfg.meta)
	// The date override supports "auto" and "auto:FORMAT"; literal dates
	// pass through unchanged.
	resolvedDate, err := ResolveDate(meta.Date, time.Now())
	if err != nil {
		return nil, err
	}
	meta.Date = resolvedDate
	result.Metadata = meta

	// HTML -> Markdown.
	out.infof("Converting HTML to Markdown...")
	if err := s.pandoc.ToMarkdown(ctx, result.HTMLPath, result.MarkdownPath); err != nil {
		return nil, err
	}
	mdBytes, err := os.ReadFile(result.MarkdownPath)
	if err != nil {
		return nil, fmt.Errorf("reading Markdown: %w", err)
	}
	content := string(mdBytes)

	// Images.
	out.infof("Downloading and processing images...")
	images, err := s.downloader.Download(ctx, content, slug, s.cfg.workDir)
	if err != nil {
		return nil, err
	}
	result.Images = len(images)

	// Sanitize and write back with front matter.
	content = ReplaceImages(content, images)
	content = SanitizeMarkdown(content)
	content, err = InsertFrontMatter(content, meta)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(result.MarkdownPath, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("writing Markdown: %w", err)
	}

	// Typeset.
	switch s.cfg.engine {
	case EngineChrome:
		err = s.renderChrome(ctx, out, content, meta.Title, slug, result)
	default:
		err = s.compileXeLaTeX(ctx, out, slug, result)
	}
	if err != nil {
		return nil, err
	}

	result.Elapsed = time.Since(start)
	return result, nil
}

// compileXeLaTeX generates LaTeX via Pandoc and runs the compiler
// orchestrator.
func (s *Service) compileXeLaTeX(ctx context.Context, out *console, slug string, result *Result) error {
	out.infof("Generating LaTeX...")
	texPath := filepath.Join(s.cfg.workDir, slug+".tex")
	if err := s.pandoc.ToLaTeX(ctx, result.MarkdownPath, s.cfg.templatePath, texPath); err != nil {
		return err
	}
	result.TexPath = texPath

	compileResult, err := s.compiler.Compile(ctx, CompileRequest{
		SourcePath: texPath,
		SinglePass: s.cfg.singlePass,
		Cleanup:    !s.cfg.noCleanup,
		Verbose:    s.cfg.verbose,
	})
	if err != nil {
		return err
	}
	result.Compile = compileResult
	if compileResult.Outcome.OK() {
		result.PDFPath = compileResult.ArtifactPath
	}
	return nil
}

// renderChrome prints the Goldmark preview with headless Chrome.
func (s *Service) renderChrome(ctx context.Context, out *console, content, title, slug string, result *Result) error {
	out.infof("Rendering HTML preview...")
	previewHTML, err := s.previewer.ToHTML(ctx, title, content)
	if err != nil {
		return err
	}

	out.infof("Printing with headless Chrome...")
	pdfBytes, err := s.renderer.ToPDF(ctx, previewHTML)
	if err != nil {
		return err
	}

	pdfPath := filepath.Join(s.cfg.workDir, slug+".pdf")
	if err := os.WriteFile(pdfPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	result.PDFPath = pdfPath
	out.successf("PDF created: %s (%s)", filepath.Base(pdfPath), HumanSize(int64(len(pdfBytes))))
	return nil
}

// slugFromURL derives a file name stem from the last URL path segment.
func slugFromURL(articleURL string) string {
	parsed, err := url.Parse(articleURL)
	if err != nil {
		return defaultSlug
	}
	stem := strings.TrimSuffix(path.Base(parsed.Path), path.Ext(parsed.Path))
	if stem == "" || stem == "." || stem == "/" {
		return defaultSlug
	}
	return stem
}

// removeStaleOutputs deletes leftovers of a previous run for this slug.
func removeStaleOutputs(dir, slug string) {
	for _, ext := range []string{".html", ".md", ".tex", ".pdf"} {
		_ = os.Remove(filepath.Join(dir, slug+ext))
	}
}

// applyOverrides copies non-empty override fields onto meta.
func applyOverrides(meta *Metadata, overrides Metadata) {
	if overrides.Title != "" {
		meta.Title = overrides.Title
	}
	if overrides.Author != "" {
		meta.Author = overrides.Author
	}
	if overrides.Editor != "" {
		meta.Editor = overrides.Editor
	}
	if overrides.Date != "" {
		meta.Date = overrides.Date
	}
	if overrides.URL != "" {
		meta.URL = overrides.URL
	}
}

// defaultEditor resolves the editor name from the environment.
func defaultEditor() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	if user := os.Getenv("USERNAME"); user != "" {
		return user
	}
	return "Editor"
}
