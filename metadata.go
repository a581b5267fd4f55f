package web2pdf

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Fallback values when the article carries no usable metadata.
const (
	UnknownTitle  = "Unknown Title"
	UnknownAuthor = "Unknown Author"
)

// nonPrintable matches everything outside printable ASCII. Titles often
// carry smart quotes and zero-width characters that break LaTeX.
var nonPrintable = regexp.MustCompile(`[^\x20-\x7E]`)

// ExtractMetadata pulls the title and author out of article HTML.
// The title comes from <title>; the author from a <meta> tag with
// name="author" or property="author". Missing values fall back to
// UnknownTitle / UnknownAuthor; parse errors are treated the same way
// since partial metadata is still useful.
func ExtractMetadata(htmlContent string) Metadata {
	meta := Metadata{Title: UnknownTitle, Author: UnknownAuthor}

	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return meta
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Title:
				if n.FirstChild != nil {
					if title := cleanMetaValue(n.FirstChild.Data); title != "" {
						meta.Title = title
					}
				}
			case atom.Meta:
				if isAuthorMeta(n) {
					if author := cleanMetaValue(attrValue(n, "content")); author != "" {
						meta.Author = author
					}
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return meta
}

// isAuthorMeta reports whether a <meta> node declares the article author.
func isAuthorMeta(n *html.Node) bool {
	return attrValue(n, "name") == "author" || attrValue(n, "property") == "author"
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// cleanMetaValue strips non-printable characters and surrounding space.
func cleanMetaValue(s string) string {
	return strings.TrimSpace(nonPrintable.ReplaceAllString(s, ""))
}
