// SPDX-FileCopyrightText: © 2023 Hugh Cameron
//
// SPDX-License-Identifier: MIT

/*
Package markup converts HTML pages into Markdown text.

A [Markup] holds two document trees: the original, untouched page and
a working draft. An ordered [Pipeline] of named transforms reshapes the
draft (dropping navigation chrome, cleaning attributes, rewriting
links...) before the final Markdown rendering. Page metadata is
gathered from the meta tags on load and exposed as [Meta] and
[Properties].
*/
package markup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
)

// Markup is a page being converted to Markdown.
type Markup struct {
	URL        *url.URL
	Meta       Meta
	Properties Properties
	Logs       []string

	original   *html.Node
	draft      *html.Node
	client     *http.Client
	logger     *slog.Logger
	header     http.Header
	errors     Error
	metaArrays []string
	unshorten  bool
	trim       bool
}

// Option is a [Markup] creation option.
type Option func(*Markup)

func newMarkup(options []Option) *Markup {
	res := &Markup{
		Meta:       Meta{},
		Properties: Properties{},
		header:     http.Header{},
		unshorten:  true,
		trim:       true,
	}

	for _, fn := range options {
		if fn != nil {
			fn(res)
		}
	}

	if res.client == nil {
		res.client = http.DefaultClient
	}
	if res.logger == nil {
		res.logger = slog.Default()
	}
	res.logger = slog.New(newLogRecorder(res.logger.Handler(), res))

	return res
}

// New returns a Markup instance for a given URL. The page is not
// fetched until [Markup.Load] is called.
func New(src string, options ...Option) (*Markup, error) {
	URL, err := url.Parse(src)
	if err != nil {
		return nil, err
	}
	URL.Fragment = ""

	res := newMarkup(options)
	res.URL = URL
	return res, nil
}

// NewFromReader returns a Markup instance for raw HTML content,
// with no source URL attached.
func NewFromReader(r io.Reader, options ...Option) (*Markup, error) {
	res := newMarkup(options)

	doc, err := ParseDocument(r)
	if err != nil {
		return nil, err
	}
	res.SetDocument(doc)

	return res, nil
}

// WithClient sets the HTTP client used to fetch the page.
func WithClient(client *http.Client) Option {
	return func(m *Markup) {
		m.client = client
	}
}

// WithLogger sets the markup logger. Everything logged during the
// conversion is also recorded in [Markup.Logs].
func WithLogger(logger *slog.Logger) Option {
	return func(m *Markup) {
		m.logger = logger
	}
}

// WithHeader sets extra HTTP headers sent with every request.
func WithHeader(header http.Header) Option {
	return func(m *Markup) {
		m.header = header
	}
}

// WithMetaArrays adds meta tag names that collect every occurrence
// instead of keeping the last one. See [ParseMeta].
func WithMetaArrays(names ...string) Option {
	return func(m *Markup) {
		m.metaArrays = append(m.metaArrays, names...)
	}
}

// WithoutUnshorten disables redirect resolution before fetching.
func WithoutUnshorten() Option {
	return func(m *Markup) {
		m.unshorten = false
	}
}

// WithoutTrim keeps the URL query string when fetching.
func WithoutTrim() Option {
	return func(m *Markup) {
		m.trim = false
	}
}

// Load prepares the source URL, fetches the page and parses it.
// Metadata and properties are gathered from the parsed document.
func (m *Markup) Load(ctx context.Context) error {
	if m.URL == nil {
		return fmt.Errorf("%w: no source URL", ErrParse)
	}

	src, err := PrepareURL(ctx, m.client, m.URL.String(), m.unshorten, m.trim, m.header)
	if err != nil {
		return err
	}
	if m.URL, err = url.Parse(src); err != nil {
		return err
	}

	m.logger.Info("loading page", slog.String("url", src))

	rsp, err := Fetch(ctx, m.client, src, m.header)
	if err != nil {
		return err
	}
	defer rsp.Body.Close() //nolint:errcheck

	if rsp.StatusCode/100 != 2 {
		return fmt.Errorf("%w: invalid status %d for %s", ErrParse, rsp.StatusCode, src)
	}

	doc, err := ParseDocument(rsp.Body)
	if err != nil {
		return err
	}
	m.SetDocument(doc)

	m.logger.Debug("page loaded",
		slog.String("title", m.Properties.GetString("title")),
		slog.Int("meta", len(m.Meta)),
	)
	return nil
}

// SetDocument installs a parsed tree as the original document. The
// draft becomes a deep copy of it and metadata is gathered anew.
func (m *Markup) SetDocument(doc *html.Node) {
	m.original = doc
	m.draft = dom.Clone(doc, true)
	m.Meta = ParseMeta(doc, m.metaArrays...)
	m.Properties = m.gatherProperties()
}

// Original returns the untouched document tree.
func (m *Markup) Original() *html.Node {
	return m.original
}

// Draft returns the working document tree.
func (m *Markup) Draft() *html.Node {
	return m.draft
}

// ResetDraft discards every change made to the draft.
func (m *Markup) ResetDraft() {
	if m.original != nil {
		m.draft = dom.Clone(m.original, true)
	}
}

// Client returns the markup's HTTP client.
func (m *Markup) Client() *http.Client {
	return m.client
}

// Log returns the markup's logger.
func (m *Markup) Log() *slog.Logger {
	return m.logger
}

// Errors returns the non-fatal errors recorded during the conversion.
func (m *Markup) Errors() Error {
	return m.errors
}

// AddError records a non-fatal error.
func (m *Markup) AddError(err error) {
	m.errors = append(m.errors, err)
}

// Editor is a function applied to a matched element.
type Editor func(*Markup, *html.Node)

// Edit replaces the draft with the tree returned by fn. Returning nil
// keeps the current draft.
func (m *Markup) Edit(fn func(*Markup) *html.Node) {
	if n := fn(m); n != nil {
		m.draft = n
	}
}

// Apply runs an editor on every draft element matching the locators.
func (m *Markup) Apply(editor Editor, locators ...Locator) {
	for _, loc := range locators {
		for _, node := range loc.Find(m.draft) {
			editor(m, node)
		}
	}
}

// Filter keeps only the draft elements matching the locator. The new
// draft is a document holding a copy of every match, in order.
func (m *Markup) Filter(loc Locator) {
	doc := &html.Node{Type: html.DocumentNode}
	for _, node := range loc.Find(m.draft) {
		doc.AppendChild(dom.Clone(node, true))
	}
	m.draft = doc
}

// Drop removes every draft element matching the locators.
func (m *Markup) Drop(locators ...Locator) {
	for _, loc := range locators {
		for _, node := range loc.Find(m.draft) {
			if node.Parent != nil {
				node.Parent.RemoveChild(node)
			}
		}
	}
}

func (m *Markup) gatherProperties() Properties {
	res := Properties{}

	if title := Coalesce(
		m.Meta.LookupGet("og:title"),
		DocumentTitle(m.original),
	); title != "" {
		res["title"] = StripHTML(title)
	}

	if m.URL != nil {
		res["url"] = m.URL.String()
	}

	if description := m.Meta.LookupGet("og:description", "description"); description != "" {
		res["description"] = StripHTML(description)
	}

	if publisher := m.Meta.LookupGet("og:site_name"); publisher != "" {
		res["publisher"] = publisher
	}

	if authors := m.Meta.Lookup("article:author", "author"); len(authors) > 0 {
		res["authors"] = authors
	}

	if tags := m.Meta.Tags(); len(tags) > 0 {
		res["tags"] = tags
	}

	return res
}
