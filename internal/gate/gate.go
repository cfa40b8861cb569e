// Package gate removes members-only content from rendered HTML before it leaves the server.
//
// Templates mark premium markup with the data-gated attribute. For non-members [Mask] swaps the children of every
// marked element for a placeholder so the content is not merely hidden with CSS but absent from the response.
package gate

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/alphafounders/site/internal/errors"
	"golang.org/x/net/html"
)

// Attribute marks gated elements. Its value is shown as the placeholder label.
const Attribute = "data-gated"

const (
	gatedClass       = "gated"
	placeholderClass = "gated-placeholder"
	defaultLabel     = "Members only"
)

// Mode tells Mask whether the input is a whole document or a fragment such as an htmx partial.
type Mode int

const (
	Document Mode = iota
	Fragment
)

// Mask copies the HTML from r to w with gated content replaced by placeholders.
func Mask(w io.Writer, r io.Reader, mode Mode) error {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return errors.Wrap(err, "parse html")
	}

	doc.Find("[" + Attribute + "]").Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.AttrOr(Attribute, ""))
		if label == "" {
			label = defaultLabel
		}
		placeholder := &html.Node{
			Type: html.ElementNode,
			Data: "span",
			Attr: []html.Attribute{{Key: "class", Val: placeholderClass}},
		}
		placeholder.AppendChild(&html.Node{Type: html.TextNode, Data: label})
		s.Empty()
		s.AppendNodes(placeholder)
		s.AddClass(gatedClass)
		s.SetAttr("aria-label", label)
	})

	if mode == Document {
		for _, node := range doc.Nodes {
			if err = html.Render(w, node); err != nil {
				return errors.Wrap(err, "render document")
			}
		}
		return nil
	}

	body := doc.Find("body")
	if len(body.Nodes) == 0 {
		return nil
	}
	for c := body.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if err = html.Render(w, c); err != nil {
			return errors.Wrap(err, "render fragment")
		}
	}
	return nil
}
