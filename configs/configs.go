// SPDX-FileCopyrightText: © 2023 Hugh Cameron
//
// SPDX-License-Identifier: MIT

// Package configs handles markline's configuration, loaded from an
// optional TOML file and overridden by environment variables.
package configs

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/komkom/toml"

	"github.com/hughcameron/markline/pkg/markup"
)

// Duration is a [time.Duration] that loads from a string
// like "15s" or "2m".
type Duration time.Duration

// UnmarshalJSON implements [json.Unmarshaler].
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Duration returns the value as a [time.Duration].
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

type config struct {
	Main struct {
		LogLevel string `json:"log_level" env:"MARKLINE_LOG_LEVEL"`
	} `json:"main"`
	Client struct {
		Timeout   Duration `json:"timeout" env:"MARKLINE_CLIENT_TIMEOUT"`
		UserAgent string   `json:"user_agent" env:"MARKLINE_USER_AGENT"`
		Unshorten bool     `json:"unshorten" env:"MARKLINE_UNSHORTEN"`
		TrimQuery bool     `json:"trim_query" env:"MARKLINE_TRIM_QUERY"`
	} `json:"client"`
	Markdown struct {
		FrontMatter bool `json:"front_matter" env:"MARKLINE_FRONT_MATTER"`
	} `json:"markdown"`
	Pipeline []markup.StepConfig `json:"pipeline"`
}

// Config holds the configuration values.
var Config = newConfig()

func newConfig() config {
	c := config{}
	c.Main.LogLevel = "info"
	c.Client.Timeout = Duration(20 * time.Second)
	c.Client.Unshorten = true
	c.Client.TrimQuery = true
	return c
}

// LoadConfiguration loads the configuration file when a name is
// given, then applies the environment variables.
func LoadConfiguration(filename string) error {
	Config = newConfig()

	if filename != "" {
		fd, err := os.Open(filename)
		if err != nil {
			return err
		}
		defer fd.Close() //nolint:errcheck

		dec := json.NewDecoder(toml.New(fd))
		if err := dec.Decode(&Config); err != nil {
			return fmt.Errorf("error in configuration file %s: %w", filename, err)
		}
	}

	return env.Parse(&Config)
}
