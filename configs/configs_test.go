// SPDX-FileCopyrightText: © 2023 Hugh Cameron
//
// SPDX-License-Identifier: MIT

package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	filename := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o600))
	return filename
}

func TestLoadConfiguration(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		assert := require.New(t)
		assert.NoError(LoadConfiguration(""))

		assert.Equal("info", Config.Main.LogLevel)
		assert.Equal(20*time.Second, Config.Client.Timeout.Duration())
		assert.True(Config.Client.Unshorten)
		assert.Empty(Config.Pipeline)
	})

	t.Run("file", func(t *testing.T) {
		filename := writeConfig(t, `
[main]
log_level = "debug"

[client]
timeout = "45s"
user_agent = "markline/test"
trim_query = false

[markdown]
front_matter = true

[[pipeline]]
name = "drop"
tags = ["script", "style"]

[[pipeline]]
name = "filter"
tags = ["article"]
`)

		assert := require.New(t)
		assert.NoError(LoadConfiguration(filename))

		assert.Equal("debug", Config.Main.LogLevel)
		assert.Equal(45*time.Second, Config.Client.Timeout.Duration())
		assert.Equal("markline/test", Config.Client.UserAgent)
		assert.False(Config.Client.TrimQuery)
		assert.True(Config.Markdown.FrontMatter)

		assert.Len(Config.Pipeline, 2)
		assert.Equal("drop", Config.Pipeline[0].Name)
		assert.Equal([]string{"script", "style"}, Config.Pipeline[0].Tags)
		assert.Equal("filter", Config.Pipeline[1].Name)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("MARKLINE_LOG_LEVEL", "warn")
		t.Setenv("MARKLINE_CLIENT_TIMEOUT", "5s")
		t.Setenv("MARKLINE_FRONT_MATTER", "true")

		assert := require.New(t)
		assert.NoError(LoadConfiguration(""))

		assert.Equal("warn", Config.Main.LogLevel)
		assert.Equal(5*time.Second, Config.Client.Timeout.Duration())
		assert.True(Config.Markdown.FrontMatter)
	})

	t.Run("missing file", func(t *testing.T) {
		require.Error(t, LoadConfiguration("/does/not/exist.toml"))
	})

	t.Run("invalid duration", func(t *testing.T) {
		filename := writeConfig(t, `
[client]
timeout = "soon"
`)
		require.Error(t, LoadConfiguration(filename))
	})
}
