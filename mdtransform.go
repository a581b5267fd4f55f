package web2pdf

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
)

// Sanitation rules. Pandoc's Markdown output carries HTML leftovers and
// tracking junk that either break LaTeX or pollute the document; each rule
// strips one category. Order matters: attribute-block removal must run
// after the rel-attribute rule it subsumes.
var (
	pdfLink       = regexp.MustCompile(`!\[[^\]]*\]\(([^\s)]+\.pdf[^)]*)\)`)
	dataImage     = regexp.MustCompile(`!\[[^\]]*\]\(data:image/[^)]*\)`)
	nextImage     = regexp.MustCompile(`!\[[^\]]*\]\(/_next/image/[^)]*\)`)
	relAttr       = regexp.MustCompile(`\{rel="[^"]*"\}`)
	hsencParam    = regexp.MustCompile(`_hsenc=[^&)\s]*`)
	utmQuery      = regexp.MustCompile(`\?utm_[^&)\s]*`)
	utmParam      = regexp.MustCompile(`&utm_[^&)\s]*`)
	doubleAmp     = regexp.MustCompile(`&&+`)
	trailingAmp   = regexp.MustCompile(`&\)`)
	trailingQuery = regexp.MustCompile(`\?\)`)
	attrBlock     = regexp.MustCompile(`\{[^}]*\}`)
	targetBlank   = regexp.MustCompile(`target="_blank"[^)]*`)
	pandocDiv     = regexp.MustCompile(`(?s):::+[^:]*:::+`)
	pandocSpan    = regexp.MustCompile(`(?s)::+[^:]*::+`)
	figureBlock   = regexp.MustCompile(`(?s)<figure[^>]*>.*?<img[^>]*src="([^"]*)"[^>]*alt="([^"]*)"[^>]*>.*?</figure>`)
)

// SanitizeMarkdown strips constructs that break LaTeX: embedded PDF image
// references become plain links, inline data URIs and proxy image URLs
// become placeholders, tracking parameters and Pandoc attribute blocks
// are removed.
func SanitizeMarkdown(content string) string {
	content = pdfLink.ReplaceAllString(content, "[PDF link]($1)")
	content = dataImage.ReplaceAllString(content, "[Image]")
	content = nextImage.ReplaceAllString(content, "[Image]")

	content = relAttr.ReplaceAllString(content, "")
	content = hsencParam.ReplaceAllString(content, "")
	content = utmQuery.ReplaceAllString(content, "")
	content = utmParam.ReplaceAllString(content, "")

	content = doubleAmp.ReplaceAllString(content, "&")
	content = trailingAmp.ReplaceAllString(content, ")")
	content = trailingQuery.ReplaceAllString(content, ")")

	content = attrBlock.ReplaceAllString(content, "")
	content = targetBlank.ReplaceAllString(content, "")

	content = pandocDiv.ReplaceAllString(content, "")
	content = pandocSpan.ReplaceAllString(content, "")

	return content
}

// ReplaceImages rewrites embedded <img> tags and <figure> blocks to plain
// Markdown image references pointing at the locally downloaded copies.
// Unknown URLs degrade to a bracketed alt-text note.
func ReplaceImages(content string, images map[string]ImageInfo) string {
	if len(images) == 0 {
		return content
	}

	replace := func(imgURL, alt string) string {
		info, ok := images[imgURL]
		if !ok {
			return fmt.Sprintf("[Image: %s]", alt)
		}
		if info.Filename == placeholderImage {
			return fmt.Sprintf("![%s](%s)", alt, placeholderImage)
		}
		return fmt.Sprintf("![%s](%s)", alt, info.Path)
	}

	content = imgTag.ReplaceAllStringFunc(content, func(tag string) string {
		m := imgTag.FindStringSubmatch(tag)
		return replace(m[1], m[2])
	})
	content = figureBlock.ReplaceAllStringFunc(content, func(block string) string {
		m := figureBlock.FindStringSubmatch(block)
		return replace(m[1], m[2])
	})
	return content
}

// InsertFrontMatter prepends a YAML front matter block with the article
// metadata, as consumed by the LaTeX template.
func InsertFrontMatter(content string, meta Metadata) (string, error) {
	header, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshaling front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(content)
	return b.String(), nil
}
