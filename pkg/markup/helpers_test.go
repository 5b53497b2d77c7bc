// SPDX-FileCopyrightText: © 2023 Hugh Cameron
//
// SPDX-License-Identifier: MIT

package markup_test

import (
	"strings"
	"testing"
	"time"

	"github.com/go-shiori/dom"
	"github.com/stretchr/testify/require"

	"github.com/hughcameron/markline/pkg/markup"
)

func TestCoalesce(t *testing.T) {
	require.Equal(t, "default", markup.Coalesce("", "default"))
	require.Equal(t, "first", markup.Coalesce("first", "second"))
	require.Equal(t, 0, markup.Coalesce[int]())
}

func TestParseTime(t *testing.T) {
	expected := time.Date(2022, 8, 21, 3, 42, 10, 0, time.UTC)

	tests := []struct {
		timestamp string
	}{
		{"2022-08-21T03:42:10Z"},
		{"2022-08-21 03:42:10"},
		{"Sun, 21 Aug 2022 03:42:10 +0000"},
	}

	for _, test := range tests {
		t.Run(test.timestamp, func(t *testing.T) {
			ts, err := markup.ParseTime(test.timestamp)
			require.NoError(t, err)
			require.Equal(t, expected, ts)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		_, err := markup.ParseTime("not a date")
		require.Error(t, err)
	})
}

func TestStripHTML(t *testing.T) {
	require.Equal(t, "Hello world", markup.StripHTML("Hello <b>world</b>"))
	require.Equal(t, "plain", markup.StripHTML("plain"))
}

func TestNewElement(t *testing.T) {
	node := markup.NewElement("p", "test", "class", "test")
	require.Equal(t, "p", dom.TagName(node))
	require.Equal(t, "test", dom.TextContent(node))
	require.Equal(t, "test", dom.GetAttribute(node, "class"))
}

func TestQuoteCaption(t *testing.T) {
	src := `<article><figure>
		<img src="coffee.jpg" alt="Coffee cup on a newspaper.">
		<figcaption>A takeaway coffee with the morning news.</figcaption>
	</figure></article>`

	m, err := markup.NewFromReader(strings.NewReader(src))
	require.NoError(t, err)

	figure := markup.Loc("figure").Find(m.Draft())[0]
	markup.QuoteCaption(figure)
	// A second call must not add another quote.
	markup.QuoteCaption(figure)

	quotes := markup.Loc("blockquote").Find(m.Draft())
	require.Len(t, quotes, 1)
	require.Equal(t, "A takeaway coffee with the morning news.", dom.TextContent(quotes[0]))

	t.Run("no caption", func(t *testing.T) {
		m, err := markup.NewFromReader(strings.NewReader(`<figure><img src="x.jpg"></figure>`))
		require.NoError(t, err)

		markup.QuoteCaption(markup.Loc("figure").Find(m.Draft())[0])
		require.Empty(t, markup.Loc("blockquote").Find(m.Draft()))
	})
}
