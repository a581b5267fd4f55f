// Package web2pdf converts web articles into typeset PDF documents.
//
// # Quick Start
//
// Create a service, convert a URL, and inspect the result:
//
//	svc := web2pdf.New()
//	result, err := svc.Convert(ctx, "https://example.com/posts/some-article")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("PDF:", result.PDFPath)
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Article HTML download
//  2. Title/author metadata extraction
//  3. HTML to Markdown conversion via Pandoc
//  4. Image download and GIF to JPEG normalization
//  5. Markdown sanitation and YAML front matter injection
//  6. LaTeX generation via Pandoc and a document template
//  7. XeLaTeX compilation (two passes, log classification, aux cleanup)
//
// # Compilation
//
// The XeLaTeX orchestrator is usable on its own for any .tex document:
//
//	c := web2pdf.NewCompiler()
//	res, err := c.Compile(ctx, web2pdf.CompileRequest{
//	    SourcePath: "/path/to/doc.tex",
//	    Cleanup:    true,
//	})
//	if err != nil {
//	    log.Fatal(err) // invalid request, nothing was spawned
//	}
//	if res.Outcome.OK() {
//	    fmt.Println(res.ArtifactPath, web2pdf.HumanSize(res.ArtifactSize))
//	}
//
// Compilation failures are reported as result outcomes, never as errors,
// so callers can batch documents without aborting on the first bad one.
//
// # Chrome Engine
//
// When XeLaTeX is not installed, the service can render a Goldmark HTML
// preview of the article and print it with headless Chrome instead:
//
//	svc := web2pdf.New(web2pdf.WithEngine(web2pdf.EngineChrome))
//
// The go-rod library automatically downloads a managed Chromium instance
// on first run. For containers and CI environments, set ROD_NO_SANDBOX=1
// to disable the Chrome sandbox.
//
// # External Tools
//
// The pipeline shells out to pandoc and xelatex. Run `web2pdf doctor`
// from the CLI to verify both are installed and invocable.
package web2pdf
