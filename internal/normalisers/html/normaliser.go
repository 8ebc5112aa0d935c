package html

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
	"github.com/custodia-labs/narrator-cli/internal/core/ports/driven"
	"github.com/custodia-labs/narrator-cli/internal/normalisers/plaintext"
)

var _ driven.Normaliser = (*Normaliser)(nil)

type Normaliser struct{}

func New() *Normaliser {
	return &Normaliser{}
}

func (n *Normaliser) SupportedExtensions() []string {
	return []string{".html", ".htm", ".xhtml"}
}

func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Priority is above plaintext so .html never falls through to it.
func (n *Normaliser) Priority() int {
	return 50
}

func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawText) (*domain.ExtractedText, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content, err := plaintext.Decode(raw.Content)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", raw.URI, err)
	}
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", raw.URI, err)
	}

	var w textWriter
	w.walk(doc)

	return &domain.ExtractedText{
		Title:  pageTitle(doc, raw.URI),
		Text:   w.String(),
		Format: "html",
	}, nil
}

// breaks maps block elements to the line breaks around them: 2 for a
// paragraph break, 1 for a plain newline.
var breaks = map[atom.Atom]int{
	atom.P: 2, atom.H1: 2, atom.H2: 2, atom.H3: 2, atom.H4: 2, atom.H5: 2, atom.H6: 2,
	atom.Blockquote: 2, atom.Section: 2, atom.Article: 2, atom.Aside: 2,
	atom.Header: 2, atom.Footer: 2, atom.Main: 2,
	atom.Ul: 2, atom.Ol: 2, atom.Li: 2, atom.Table: 2, atom.Pre: 2, atom.Figure: 2,
	atom.Div: 1, atom.Tr: 1, atom.Dt: 1, atom.Dd: 1, atom.Figcaption: 1,
}

// skipped elements contribute no text.
var skipped = map[atom.Atom]bool{
	atom.Head: true, atom.Script: true, atom.Style: true, atom.Noscript: true,
	atom.Template: true, atom.Svg: true, atom.Iframe: true,
}

// textWriter collapses whitespace the way a browser renders it and defers
// breaks until the next text, so leading and trailing breaks vanish.
type textWriter struct {
	sb    strings.Builder
	brk   int
	space bool
}

func (w *textWriter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		if skipped[n.DataAtom] {
			return
		}
		if n.DataAtom == atom.Br {
			w.lineBreak(1)
			return
		}
	}

	brk := breaks[n.DataAtom]
	w.lineBreak(brk)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
	w.lineBreak(brk)
	if n.DataAtom == atom.Td || n.DataAtom == atom.Th {
		w.space = true
	}
}

func (w *textWriter) text(s string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s != "" && w.sb.Len() > 0 {
			w.space = true
		}
		return
	}

	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)
	if w.sb.Len() > 0 {
		switch {
		case w.brk > 0:
			w.sb.WriteString(strings.Repeat("\n", w.brk))
		case w.space || unicode.IsSpace(first):
			w.sb.WriteByte(' ')
		}
	}
	w.sb.WriteString(strings.Join(fields, " "))
	w.brk = 0
	w.space = unicode.IsSpace(last)
}

func (w *textWriter) lineBreak(n int) {
	if n == 0 {
		return
	}
	if n > w.brk {
		w.brk = n
	}
	w.space = false
}

func (w *textWriter) String() string {
	return w.sb.String()
}

// pageTitle reads <title>, falling back to the file name.
func pageTitle(doc *html.Node, uri string) string {
	if t := findTitle(doc); t != "" {
		return t
	}
	return plaintext.TitleFromURI(uri)
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.Title {
		var sb strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
		}
		return strings.Join(strings.Fields(sb.String()), " ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}
