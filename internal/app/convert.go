// SPDX-FileCopyrightText: © 2023 Hugh Cameron
//
// SPDX-License-Identifier: MIT

package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/cristalhq/acmd"

	"github.com/hughcameron/markline/configs"
	"github.com/hughcameron/markline/internal/httpclient"
	"github.com/hughcameron/markline/pkg/markup"
)

func init() {
	commands = append(commands, acmd.Command{
		Name:        "convert",
		Description: "Convert a web page or an HTML file to Markdown",
		ExecFunc:    runConvert,
	})
}

func runConvert(ctx context.Context, args []string) error {
	var output string
	var frontMatter bool

	var flags appFlags
	fs := flags.Flags()
	// nolint: errcheck
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: convert [arguments...] URL|FILE")
		fmt.Fprintln(fs.Output(), "  URL|FILE")
		fmt.Fprintln(fs.Output(), "    \tpage address or local HTML file")
		fs.PrintDefaults()
	}
	fs.StringVar(&output, "o", "", "output file (default: standard output)")
	fs.BoolVar(&frontMatter, "front-matter", false, "prepend extracted properties as YAML front matter")

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

	pipeline := markup.DefaultPipeline()
	if len(configs.Config.Pipeline) > 0 {
		if pipeline, err = markup.BuildPipeline(configs.Config.Pipeline); err != nil {
			return err
		}
	}
	if err = pipeline.Run(m); err != nil {
		return err
	}
	for _, e := range m.Errors() {
		slog.Warn("transform issue", slog.Any("err", e))
	}

	options := []markup.RenderOption{}
	if frontMatter || configs.Config.Markdown.FrontMatter {
		options = append(options, markup.WithFrontMatter())
	}
	text, err := m.Render(options...)
	if err != nil {
		return err
	}

	fd := os.Stdout
	if output != "" {
		if fd, err = os.Create(output); err != nil {
			return err
		}
		defer fd.Close() //nolint:errcheck
	}

	_, err = fmt.Fprintln(fd, text)
	return err
}

// loadMarkup builds a Markup from a local file or a URL.
func loadMarkup(ctx context.Context, src string) (*markup.Markup, error) {
	if _, err := os.Stat(src); err == nil {
		fd, err := os.Open(src)
		if err != nil {
			return nil, err
		}
		defer fd.Close() //nolint:errcheck

		return markup.NewFromReader(fd)
	}

	options := []markup.Option{
		markup.WithClient(newClient()),
	}
	if !configs.Config.Client.Unshorten {
		options = append(options, markup.WithoutUnshorten())
	}
	if !configs.Config.Client.TrimQuery {
		options = append(options, markup.WithoutTrim())
	}

	m, err := markup.New(src, options...)
	if err != nil {
		return nil, err
	}
	if err = m.Load(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func newClient() *http.Client {
	client := httpclient.New(configs.Config.Client.Timeout.Duration())

	if ua := configs.Config.Client.UserAgent; ua != "" {
		client.Transport.(*httpclient.Transport).SetHeader(func(h http.Header) {
			h.Set("User-Agent", ua)
		})
	}
	return client
}
