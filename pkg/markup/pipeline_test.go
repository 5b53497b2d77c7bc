// SPDX-FileCopyrightText: © 2023 Hugh Cameron
//
// SPDX-License-Identifier: MIT

package markup_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hughcameron/markline/pkg/markup"
)

func TestPipelineRun(t *testing.T) {
	src := `<html><body>
		<article><h1>Title</h1><p>Content</p></article>
		<script>var x;</script>
	</body></html>`

	t.Run("ordered", func(t *testing.T) {
		m, err := markup.NewFromReader(strings.NewReader(src))
		require.NoError(t, err)

		var order []string
		p := markup.NewPipeline(
			markup.Transform{Name: "first", Run: func(*markup.Markup) error {
				order = append(order, "first")
				return nil
			}},
			markup.Transform{Name: "second", Run: func(*markup.Markup) error {
				order = append(order, "second")
				return nil
			}},
		)
		p.Append(markup.DropElements(markup.Loc("script")))

		require.NoError(t, p.Run(m))
		require.Equal(t, []string{"first", "second"}, order)
		require.Empty(t, markup.Loc("script").Find(m.Draft()))
	})

	t.Run("non-fatal error", func(t *testing.T) {
		m, err := markup.NewFromReader(strings.NewReader(src))
		require.NoError(t, err)

		ran := false
		p := markup.NewPipeline(
			markup.Transform{Name: "broken", Run: func(*markup.Markup) error {
				return errors.New("unexpected structure")
			}},
			markup.Transform{Name: "after", Run: func(*markup.Markup) error {
				ran = true
				return nil
			}},
		)

		require.NoError(t, p.Run(m))
		require.True(t, ran)
		require.Len(t, m.Errors(), 1)
	})

	t.Run("fatal error", func(t *testing.T) {
		m, err := markup.NewFromReader(strings.NewReader(src))
		require.NoError(t, err)

		ran := false
		p := markup.NewPipeline(
			markup.Transform{Name: "fatal", Run: func(*markup.Markup) error {
				return markup.ErrTransform
			}},
			markup.Transform{Name: "after", Run: func(*markup.Markup) error {
				ran = true
				return nil
			}},
		)

		require.ErrorIs(t, p.Run(m), markup.ErrTransform)
		require.False(t, ran)
	})
}

func TestBuildPipeline(t *testing.T) {
	t.Run("known steps", func(t *testing.T) {
		p, err := markup.BuildPipeline([]markup.StepConfig{
			{Name: "drop", Tags: []string{"script", "style"}},
			{Name: "filter", Tags: []string{"article"}},
			{Name: "clean_attributes"},
			{Name: "absolute_urls"},
			{Name: "quote_captions"},
			{Name: "remove_empty"},
		})
		require.NoError(t, err)
		require.Len(t, p.Transforms(), 6)
	})

	t.Run("unknown step", func(t *testing.T) {
		_, err := markup.BuildPipeline([]markup.StepConfig{{Name: "shuffle"}})
		require.ErrorContains(t, err, `unknown transform "shuffle"`)
	})

	t.Run("bad pattern", func(t *testing.T) {
		_, err := markup.BuildPipeline([]markup.StepConfig{
			{Name: "clean_attributes", Patterns: []string{"("}},
		})
		require.Error(t, err)
	})

	t.Run("run", func(t *testing.T) {
		p, err := markup.BuildPipeline([]markup.StepConfig{
			{Name: "drop", Tags: []string{"footer", "script"}},
			{Name: "filter", Tags: []string{"article"}},
		})
		require.NoError(t, err)

		m := loadTestPage(t)
		require.NoError(t, p.Run(m))

		text, err := m.Render()
		require.NoError(t, err)
		require.Contains(t, text, "# Tips for writing a news article")
		require.NotContains(t, text, "Webber Publishing")
	})
}

func TestTransformIdempotence(t *testing.T) {
	transforms := map[string]markup.Transform{
		"drop":             markup.DropElements(markup.Loc("script"), markup.Loc("section")),
		"filter":           markup.FilterElements(markup.Loc("article")),
		"clean_attributes": markup.CleanAttributes(),
		"remove_empty":     markup.RemoveEmptyNodes(),
		"absolute_urls":    markup.AbsoluteURLs(),
		"quote_captions":   markup.QuoteCaptions(),
	}

	for name, transform := range transforms {
		t.Run(name, func(t *testing.T) {
			m := loadTestPage(t)

			require.NoError(t, transform.Run(m))
			once, err := m.ToHTML()
			require.NoError(t, err)

			require.NoError(t, transform.Run(m))
			twice, err := m.ToHTML()
			require.NoError(t, err)

			require.Equal(t, once, twice)
		})
	}
}
