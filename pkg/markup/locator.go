// SPDX-FileCopyrightText: © 2023 Hugh Cameron
//
// SPDX-License-Identifier: MIT

package markup

import (
	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
)

// Locator designates elements in a document tree by tag name and
// attribute values. An empty Tag matches any element. An empty
// attribute value only requires the attribute to be present.
type Locator struct {
	Tag       string
	Attrs     map[string]string
	Recursive bool
	Limit     int
}

// Loc returns a [Locator] for a tag name, with optional attribute
// key/value pairs. The locator matches recursively and without limit.
func Loc(tag string, attrPairs ...string) Locator {
	l := Locator{Tag: tag, Recursive: true}
	for i := 0; i+1 < len(attrPairs); i += 2 {
		if l.Attrs == nil {
			l.Attrs = map[string]string{}
		}
		l.Attrs[attrPairs[i]] = attrPairs[i+1]
	}
	return l
}

// Find returns the elements matching the locator under root, in
// document order.
func (l Locator) Find(root *html.Node) []*html.Node {
	if root == nil {
		return nil
	}

	res := []*html.Node{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for _, c := range dom.Children(n) {
			if l.Limit > 0 && len(res) >= l.Limit {
				return
			}
			if l.match(c) {
				res = append(res, c)
			}
			if l.Recursive {
				walk(c)
			}
		}
	}
	walk(root)

	return res
}

func (l Locator) match(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if l.Tag != "" && dom.TagName(n) != l.Tag {
		return false
	}
	for k, v := range l.Attrs {
		if !dom.HasAttribute(n, k) {
			return false
		}
		if v != "" && dom.GetAttribute(n, k) != v {
			return false
		}
	}
	return true
}
