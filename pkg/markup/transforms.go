// SPDX-FileCopyrightText: © 2023 Hugh Cameron
//
// SPDX-License-Identifier: MIT

package markup

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
)

// defaultBlockAttrs are the attribute patterns removed by
// [CleanAttributes]: presentation and script hooks that carry no
// meaning once the document becomes Markdown.
var defaultBlockAttrs = []*regexp.Regexp{
	regexp.MustCompile(`^(class|style)$`),
	regexp.MustCompile(`^data-`),
	regexp.MustCompile(`^on[a-z]+`),
}

// keepEmptyTags are elements kept by [RemoveEmptyNodes] even when
// they have no content.
var keepEmptyTags = map[string]struct{}{
	"br":     {},
	"hr":     {},
	"img":    {},
	"source": {},
	"td":     {},
	"th":     {},
}

// DropElements removes every element matching the locators.
func DropElements(locators ...Locator) Transform {
	return Transform{
		Name: "drop",
		Run: func(m *Markup) error {
			m.Drop(locators...)
			return nil
		},
	}
}

// FilterElements keeps only the elements matching the locator.
// When nothing matches, the draft is left as it is.
func FilterElements(loc Locator) Transform {
	return Transform{
		Name: "filter",
		Run: func(m *Markup) error {
			if len(loc.Find(m.Draft())) == 0 {
				return fmt.Errorf("no element matches %q", loc.Tag)
			}
			m.Filter(loc)
			return nil
		},
	}
}

// ApplyEditor runs an editor on every element matching the locators.
func ApplyEditor(name string, editor Editor, locators ...Locator) Transform {
	return Transform{
		Name: name,
		Run: func(m *Markup) error {
			m.Apply(editor, locators...)
			return nil
		},
	}
}

// EditDocument replaces the draft with the tree returned by fn.
func EditDocument(name string, fn func(*Markup) *html.Node) Transform {
	return Transform{
		Name: name,
		Run: func(m *Markup) error {
			m.Edit(fn)
			return nil
		},
	}
}

// CleanAttributes discards unwanted attributes from every element.
// With no pattern, class, style, data-* and JS event attributes are
// removed.
func CleanAttributes(blockList ...*regexp.Regexp) Transform {
	if len(blockList) == 0 {
		blockList = defaultBlockAttrs
	}

	return Transform{
		Name: "clean_attributes",
		Run: func(m *Markup) error {
			dom.ForEachNode(dom.QuerySelectorAll(m.Draft(), "*"), func(n *html.Node, _ int) {
				for i := len(n.Attr) - 1; i >= 0; i-- {
					k := n.Attr[i].Key
					for _, r := range blockList {
						if r.MatchString(k) {
							dom.RemoveAttribute(n, k)
							break
						}
					}
				}
			})
			return nil
		},
	}
}

// RemoveEmptyNodes drops elements with no children, no attributes and
// no text content. Elements that are meaningful when empty, e.g.
// <hr> or <img>, are kept.
func RemoveEmptyNodes() Transform {
	return Transform{
		Name: "remove_empty",
		Run: func(m *Markup) error {
			dom.RemoveNodes(dom.QuerySelectorAll(m.Draft(), "*"), func(n *html.Node) bool {
				if n.Type != html.ElementNode {
					return false
				}
				if _, ok := keepEmptyTags[dom.TagName(n)]; ok {
					return false
				}
				if len(n.Attr) > 0 {
					return false
				}
				if len(dom.Children(n)) > 0 {
					return false
				}
				if strings.TrimSpace(dom.TextContent(n)) != "" {
					return false
				}
				return dom.TagName(n) != "body"
			})
			return nil
		},
	}
}

// AbsoluteURLs resolves href and src attributes against the page URL,
// so links and images survive outside their origin. A markup with no
// source URL is left untouched.
func AbsoluteURLs() Transform {
	return Transform{
		Name: "absolute_urls",
		Run: func(m *Markup) error {
			if m.URL == nil {
				return nil
			}
			for _, attr := range []string{"href", "src"} {
				dom.ForEachNode(dom.QuerySelectorAll(m.Draft(), "["+attr+"]"), func(n *html.Node, _ int) {
					v := strings.TrimSpace(dom.GetAttribute(n, attr))
					if v == "" {
						return
					}
					if u, err := m.URL.Parse(v); err == nil {
						dom.SetAttribute(n, attr, u.String())
					}
				})
			}
			return nil
		},
	}
}

// QuoteCaptions copies every figure caption below its figure as a
// blockquote. See [QuoteCaption].
func QuoteCaptions() Transform {
	return Transform{
		Name: "quote_captions",
		Run: func(m *Markup) error {
			for _, figure := range Loc("figure").Find(m.Draft()) {
				QuoteCaption(figure)
			}
			return nil
		},
	}
}
