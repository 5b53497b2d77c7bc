// SPDX-FileCopyrightText: © 2023 Hugh Cameron
//
// SPDX-License-Identifier: MIT

package markup

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"
)

// RenderOptions control the Markdown rendering.
type RenderOptions struct {
	// FrontMatter prepends the document properties to the output as
	// YAML front matter.
	FrontMatter bool
}

// RenderOption is a [Markup.Render] option.
type RenderOption func(*RenderOptions)

// WithFrontMatter enables the YAML front matter in the output.
func WithFrontMatter() RenderOption {
	return func(o *RenderOptions) {
		o.FrontMatter = true
	}
}

// ToHTML renders the draft tree as an HTML string.
func (m *Markup) ToHTML() (string, error) {
	if m.draft == nil {
		return "", fmt.Errorf("%w: no document", ErrRender)
	}

	buf := &bytes.Buffer{}
	if err := html.Render(buf, m.draft); err != nil {
		return "", fmt.Errorf("%w: %s", ErrRender, err)
	}
	return buf.String(), nil
}

// Render converts the draft document to Markdown. A new converter is
// created on every call; no state is shared between conversions.
func (m *Markup) Render(options ...RenderOption) (string, error) {
	opts := RenderOptions{}
	for _, fn := range options {
		fn(&opts)
	}

	src, err := m.ToHTML()
	if err != nil {
		return "", err
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithStrongDelimiter("**"),
			),
			table.NewTablePlugin(),
		),
	)

	text, err := conv.ConvertString(src)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrRender, err)
	}
	text = strings.TrimSpace(text)

	if opts.FrontMatter && len(m.Properties) > 0 {
		fm, err := yaml.Marshal(m.Properties)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrRender, err)
		}
		text = fmt.Sprintf("---\n%s---\n\n%s", fm, text)
	}

	return text, nil
}

// ToMarkdown renders the draft as Markdown with the default options.
func (m *Markup) ToMarkdown() (string, error) {
	return m.Render()
}
