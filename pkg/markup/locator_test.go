// SPDX-FileCopyrightText: © 2023 Hugh Cameron
//
// SPDX-License-Identifier: MIT

package markup_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hughcameron/markline/pkg/markup"
)

func TestLocator(t *testing.T) {
	src := `<html><body>
		<div id="main" class="content">
			<p class="intro">first</p>
			<p>second</p>
			<div><p class="intro">nested</p></div>
		</div>
		<span data-role="note">aside</span>
	</body></html>`

	m, err := markup.NewFromReader(strings.NewReader(src))
	require.NoError(t, err)

	tests := []struct {
		loc      markup.Locator
		expected int
	}{
		{markup.Loc("p"), 3},
		{markup.Loc("p", "class", "intro"), 2},
		{markup.Loc("div", "id", "main"), 1},
		{markup.Loc("span", "data-role", ""), 1},
		{markup.Loc("", "class", "intro"), 2},
		{markup.Loc("table"), 0},
		{markup.Locator{Tag: "p", Recursive: true, Limit: 2}, 2},
		{markup.Locator{Tag: "p", Attrs: map[string]string{"class": "intro"}, Recursive: false}, 0},
	}

	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i+1), func(t *testing.T) {
			require.Len(t, test.loc.Find(m.Draft()), test.expected)
		})
	}

	t.Run("nil root", func(t *testing.T) {
		require.Empty(t, markup.Loc("p").Find(nil))
	})
}
