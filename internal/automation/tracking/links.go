package tracking

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"crm-automation/internal/store"

	"golang.org/x/net/html"
)

// LinkType classifies an anchor for click analytics.
func LinkType(style string) string {
	s := strings.ToLower(style)
	if strings.Contains(s, "padding") && strings.Contains(s, "background-color") {
		return store.LinkTypeCTA
	}
	return store.LinkTypeLink
}

// trackable reports whether href points somewhere a redirect can stand in for.
func trackable(href string) bool {
	h := strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(h, "http://") || strings.HasPrefix(h, "https://")
}

// rewriteLinks replaces every trackable anchor href with the result of wrap.
// Everything else in the document is emitted byte for byte.
func rewriteLinks(doc string, wrap func(href, linkType string, index int) string) (string, error) {
	z := html.NewTokenizer(strings.NewReader(doc))
	var out bytes.Buffer
	out.Grow(len(doc) + len(doc)/4)
	index := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				return out.String(), nil
			}
			return "", fmt.Errorf("failed to tokenize html: %w", z.Err())
		}

		raw := append([]byte(nil), z.Raw()...)
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			out.Write(raw)
			continue
		}

		tok := z.Token()
		if tok.Data != "a" {
			out.Write(raw)
			continue
		}

		hrefIdx, style := -1, ""
		for i, attr := range tok.Attr {
			switch attr.Key {
			case "href":
				hrefIdx = i
			case "style":
				style = attr.Val
			}
		}
		if hrefIdx < 0 || !trackable(tok.Attr[hrefIdx].Val) {
			out.Write(raw)
			continue
		}

		tok.Attr[hrefIdx].Val = wrap(strings.TrimSpace(tok.Attr[hrefIdx].Val), LinkType(style), index)
		index++
		out.WriteString(tok.String())
	}
}

// insertBeforeBodyClose places snippet before the last </body>, or appends it.
func insertBeforeBodyClose(doc, snippet string) string {
	i := strings.LastIndex(strings.ToLower(doc), "</body>")
	if i < 0 {
		return doc + snippet
	}
	return doc[:i] + snippet + doc[i:]
}
