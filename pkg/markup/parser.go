// SPDX-FileCopyrightText: © 2023 Hugh Cameron
//
// SPDX-License-Identifier: MIT

package markup

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
)

// ParseDocument builds a document tree from raw HTML. The parser
// recovers from malformed markup (unclosed tags, stray elements), so
// an error only occurs when the source cannot be read at all.
func ParseDocument(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, err)
	}
	return doc, nil
}
