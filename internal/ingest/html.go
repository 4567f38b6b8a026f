package ingest

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/cloo-solutions/veriflow/internal/domain"
)

// blockElements get a newline separator when extracting visible text, so the
// output reads as lines rather than one run-on string.
var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "br": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "header": true, "footer": true,
	"form": true, "fieldset": true, "label": true, "option": true,
	"table": true, "ul": true, "ol": true,
}

// SplitHTML reads the target page and returns exactly two segments: the
// visible text (for test reasoning) and the raw markup (for exact
// selector/ID grounding). Both carry the fixed artifact source name.
func SplitHTML(htmlPath string) ([]domain.Segment, error) {
	data, err := os.ReadFile(htmlPath)
	if err != nil {
		return nil, fmt.Errorf("read html: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	return []domain.Segment{
		{
			Content:  extractText(doc),
			Metadata: domain.Metadata{Source: domain.HTMLArtifactName, Type: domain.SegmentTypeText},
		},
		{
			Content:  string(data),
			Metadata: domain.Metadata{Source: domain.HTMLArtifactName, Type: domain.SegmentTypeCode},
		},
	}, nil
}

func extractText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		switch node.Type {
		case html.TextNode:
			if text := strings.TrimSpace(node.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		case html.ElementNode:
			if node.Data == "script" || node.Data == "style" {
				return
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
		if node.Type == html.ElementNode && blockElements[node.Data] {
			buf.WriteString("\n")
		}
	}
	walk(n)

	// Collapse runs of blank lines left by nested block elements.
	lines := strings.Split(buf.String(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, "\n")
}
