// SPDX-FileCopyrightText: © 2023 Hugh Cameron
//
// SPDX-License-Identifier: MIT

package markup

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
)

// Coalesce returns the first non-zero value in a list of arguments.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// ParseTime parses a timestamp in any common format and returns it
// in UTC.
func ParseTime(value string) (time.Time, error) {
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// StripHTML returns the text content of an HTML fragment.
func StripHTML(s string) string {
	if n, err := html.Parse(strings.NewReader(s)); err == nil {
		return dom.TextContent(n)
	}
	return s
}

// NewElement builds an element node with optional text content and
// attribute key/value pairs.
func NewElement(tag, text string, attrPairs ...string) *html.Node {
	node := dom.CreateElement(tag)
	for i := 0; i+1 < len(attrPairs); i += 2 {
		dom.SetAttribute(node, attrPairs[i], attrPairs[i+1])
	}
	if text != "" {
		node.AppendChild(dom.CreateTextNode(text))
	}
	return node
}

// QuoteCaption copies a figure's caption below the figure as a
// blockquote. The caption of an image is lost in a Markdown preview
// once rendered; the quote keeps it readable. Calling it again on the
// same figure is a no-op.
func QuoteCaption(figure *html.Node) {
	if figure == nil || figure.Parent == nil {
		return
	}

	captions := Loc("figcaption").Find(figure)
	if len(captions) == 0 {
		return
	}
	text := strings.TrimSpace(dom.TextContent(captions[0]))
	if text == "" {
		return
	}

	if next := dom.NextElementSibling(figure); next != nil &&
		dom.TagName(next) == "blockquote" &&
		strings.TrimSpace(dom.TextContent(next)) == text {
		return
	}

	figure.Parent.InsertBefore(NewElement("blockquote", text), figure.NextSibling)
}
