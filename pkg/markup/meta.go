// SPDX-FileCopyrightText: © 2023 Hugh Cameron
//
// SPDX-License-Identifier: MIT

package markup

import (
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
)

// defaultMetaArrays are the OpenGraph properties that can legally
// appear more than once on a page.
// See https://ogp.me/#array for the property list.
var defaultMetaArrays = []string{
	"article:author",
	"article:tag",
	"book:author",
	"book:tag",
	"music:album",
	"music:musician",
	"og:locale:alternate",
	"video:actor",
	"video:director",
	"video:tag",
	"video:writer",
}

// Meta is a multimap of raw metadata entries gathered from a page's
// meta tags, keyed by the tag's property or name attribute.
type Meta map[string][]string

// Add adds a value to a metadata name.
func (m Meta) Add(name, value string) {
	m[name] = append(m[name], value)
}

// Lookup returns the values of the first name present in the map.
func (m Meta) Lookup(names ...string) []string {
	for _, name := range names {
		if v, ok := m[name]; ok && len(v) > 0 {
			return v
		}
	}
	return nil
}

// LookupGet returns the first value of the first name present
// in the map.
func (m Meta) LookupGet(names ...string) string {
	if v := m.Lookup(names...); len(v) > 0 {
		return v[0]
	}
	return ""
}

// Tags returns the page tags, from the article:tag properties when
// present, otherwise from the comma separated keywords meta tag.
func (m Meta) Tags() []string {
	if tags := m.Lookup("article:tag"); len(tags) > 0 {
		return tags
	}

	res := []string{}
	for _, part := range strings.Split(m.LookupGet("keywords"), ",") {
		if part = strings.TrimSpace(part); part != "" {
			res = append(res, part)
		}
	}
	return res
}

// ParseMeta gathers metadata from every meta tag holding a content
// attribute. The key is the tag's property attribute, or its name
// attribute when there is no property. Keys listed in arrays, on top
// of the OpenGraph array properties, keep every occurrence; any other
// key keeps the last value seen.
func ParseMeta(doc *html.Node, arrays ...string) Meta {
	res := Meta{}
	if doc == nil {
		return res
	}

	isArray := map[string]bool{}
	for _, name := range defaultMetaArrays {
		isArray[name] = true
	}
	for _, name := range arrays {
		isArray[name] = true
	}

	nodes, _ := htmlquery.QueryAll(doc, "//meta[@content]")
	for _, node := range nodes {
		key := Coalesce(
			strings.TrimSpace(dom.GetAttribute(node, "property")),
			strings.TrimSpace(dom.GetAttribute(node, "name")),
		)
		value := strings.TrimSpace(dom.GetAttribute(node, "content"))
		if key == "" || value == "" {
			continue
		}

		if isArray[key] {
			res.Add(key, value)
		} else {
			res[key] = []string{value}
		}
	}

	return res
}

// DocumentTitle returns the text content of a document's title
// element.
func DocumentTitle(doc *html.Node) string {
	if doc == nil {
		return ""
	}
	if node, err := htmlquery.Query(doc, "//title"); err == nil && node != nil {
		return strings.TrimSpace(dom.TextContent(node))
	}
	return ""
}

// Properties is the metadata record extracted from a page. It holds
// the values (title, url, description, publisher, tags...) a
// note-taking tool would use to annotate the converted document.
type Properties map[string]any

// GetString returns a property as a string, or an empty string when
// the property is absent or not a string.
func (p Properties) GetString(name string) string {
	if v, ok := p[name].(string); ok {
		return v
	}
	return ""
}
