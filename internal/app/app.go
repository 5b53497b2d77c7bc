// SPDX-FileCopyrightText: © 2023 Hugh Cameron
//
// SPDX-License-Identifier: MIT

// Package app provides the markline command line application.
package app

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/cristalhq/acmd"

	"github.com/hughcameron/markline/configs"
)

var commands = []acmd.Command{}

// appFlags holds the flags shared by every command.
type appFlags struct {
	configFile string
}

// Flags returns a FlagSet with the app's common flags.
func (f *appFlags) Flags() *flag.FlagSet {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.StringVar(&f.configFile, "config", "", "configuration file")
	return fs
}

// appPreRun loads the configuration and sets the default logger.
// It must be called by every command once its flags are parsed.
func appPreRun(flags *appFlags) error {
	if err := configs.LoadConfiguration(flags.configFile); err != nil {
		return fmt.Errorf("could not load configuration: %w", err)
	}

	initLogger(configs.Config.Main.LogLevel)
	return nil
}

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "devel"
}

// Run executes the markline command line and returns its exit code.
func Run() int {
	runner := acmd.RunnerOf(commands, acmd.Config{
		AppName:        "markline",
		AppDescription: "Convert web pages to Markdown notes",
		Version:        version(),
	})

	if err := runner.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err) //nolint:errcheck
		return 1
	}
	return 0
}
