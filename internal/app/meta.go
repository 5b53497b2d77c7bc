// SPDX-FileCopyrightText: © 2023 Hugh Cameron
//
// SPDX-License-Identifier: MIT

package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cristalhq/acmd"
	"gopkg.in/yaml.v3"
)

func init() {
	commands = append(commands, acmd.Command{
		Name:        "meta",
		Description: "Print the metadata extracted from a page",
		ExecFunc:    runMeta,
	})
}

func runMeta(ctx context.Context, args []string) error {
	var showAll bool

	var flags appFlags
	fs := flags.Flags()
	// nolint: errcheck
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: meta [arguments...] URL|FILE")
		fmt.Fprintln(fs.Output(), "  URL|FILE")
		fmt.Fprintln(fs.Output(), "    \tpage address or local HTML file")
		fs.PrintDefaults()
	}
	fs.BoolVar(&showAll, "all", false, "include every raw meta tag")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	src := strings.TrimSpace(fs.Arg(0))
	if src == "" {
		return errors.New("a URL or file is required")
	}

	if err := appPreRun(&flags); err != nil {
		return err
	}

	m, err := loadMarkup(ctx, src)
	if err != nil {
		return err
	}

	data := map[string]any{"properties": m.Properties}
	if showAll {
		data["meta"] = m.Meta
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close() //nolint:errcheck

	return enc.Encode(data)
}
