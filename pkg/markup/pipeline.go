// SPDX-FileCopyrightText: © 2023 Hugh Cameron
//
// SPDX-License-Identifier: MIT

package markup

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
)

// TransformFunc reshapes a document draft. An error wrapping
// [ErrTransform] aborts the pipeline; any other error is recorded on
// the markup and the remaining transforms still run.
type TransformFunc func(*Markup) error

// Transform is a named pipeline step.
type Transform struct {
	Name string
	Run  TransformFunc
}

// Pipeline is an ordered list of transforms applied to a document
// draft before rendering. Transforms are independent; none relies on
// another's internal state beyond the shared draft tree.
type Pipeline struct {
	transforms []Transform
}

// NewPipeline returns a pipeline running the given transforms
// in order.
func NewPipeline(transforms ...Transform) *Pipeline {
	return &Pipeline{transforms: transforms}
}

// Append adds transforms at the end of the pipeline.
func (p *Pipeline) Append(transforms ...Transform) {
	p.transforms = append(p.transforms, transforms...)
}

// Transforms returns the pipeline's ordered transform list.
func (p *Pipeline) Transforms() []Transform {
	return p.transforms
}

// Run applies every transform, in order, to the markup draft.
func (p *Pipeline) Run(m *Markup) error {
	if m.Draft() == nil {
		return fmt.Errorf("%w: document has no root element", ErrTransform)
	}

	for _, t := range p.transforms {
		m.Log().Debug("transform", slog.String("name", t.Name))

		if err := t.Run(m); err != nil {
			if errors.Is(err, ErrTransform) {
				return fmt.Errorf("%s: %w", t.Name, err)
			}
			m.Log().Warn("transform skipped",
				slog.String("name", t.Name),
				slog.Any("err", err),
			)
			m.AddError(fmt.Errorf("%s: %w", t.Name, err))
		}
	}

	return nil
}

// StepConfig describes a pipeline step in a configuration file.
// Tags and Attrs select the elements a step works on; Patterns holds
// the attribute patterns of the clean_attributes step.
type StepConfig struct {
	Name     string            `json:"name"`
	Tags     []string          `json:"tags"`
	Attrs    map[string]string `json:"attrs"`
	Patterns []string          `json:"patterns"`
}

func (c StepConfig) locators() []Locator {
	res := make([]Locator, 0, len(c.Tags))
	for _, tag := range c.Tags {
		l := Loc(tag)
		l.Attrs = c.Attrs
		res = append(res, l)
	}
	if len(res) == 0 && len(c.Attrs) > 0 {
		res = append(res, Locator{Attrs: c.Attrs, Recursive: true})
	}
	return res
}

// BuildPipeline creates a pipeline from an ordered list of step
// configurations. An unknown step name fails at construction time,
// not during a run.
func BuildPipeline(specs []StepConfig) (*Pipeline, error) {
	p := NewPipeline()

	for _, step := range specs {
		switch step.Name {
		case "drop":
			p.Append(DropElements(step.locators()...))
		case "filter":
			locs := step.locators()
			if len(locs) != 1 {
				return nil, fmt.Errorf("filter: exactly one locator is required, got %d", len(locs))
			}
			p.Append(FilterElements(locs[0]))
		case "clean_attributes":
			patterns := make([]*regexp.Regexp, len(step.Patterns))
			for i, expr := range step.Patterns {
				r, err := regexp.Compile(expr)
				if err != nil {
					return nil, fmt.Errorf("clean_attributes: %w", err)
				}
				patterns[i] = r
			}
			p.Append(CleanAttributes(patterns...))
		case "remove_empty":
			p.Append(RemoveEmptyNodes())
		case "absolute_urls":
			p.Append(AbsoluteURLs())
		case "quote_captions":
			p.Append(QuoteCaptions())
		default:
			return nil, fmt.Errorf("unknown transform %q", step.Name)
		}
	}

	return p, nil
}

// DefaultPipeline returns the pipeline applied when no configuration
// provides one. It removes non-content elements, cleans presentation
// attributes, resolves relative links and keeps figure captions.
func DefaultPipeline() *Pipeline {
	return NewPipeline(
		DropElements(
			Loc("script"),
			Loc("style"),
			Loc("noscript"),
			Loc("template"),
			Loc("iframe"),
			Loc("form"),
			Loc("nav"),
		),
		CleanAttributes(),
		AbsoluteURLs(),
		QuoteCaptions(),
		RemoveEmptyNodes(),
	)
}
