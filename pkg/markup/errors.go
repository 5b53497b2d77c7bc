// SPDX-FileCopyrightText: © 2023 Hugh Cameron
//
// SPDX-License-Identifier: MIT

package markup

import (
	"errors"
	"strings"
)

var (
	// ErrParse is returned when a page cannot be read or parsed.
	ErrParse = errors.New("cannot parse document")

	// ErrTransform is returned when a transform hits a fatal
	// precondition. Any transform error not wrapping it is recorded
	// as non-fatal and the pipeline carries on.
	ErrTransform = errors.New("transform failed")

	// ErrRender is returned when the Markdown conversion fails.
	// It is surfaced to the caller and never retried.
	ErrRender = errors.New("cannot render document")
)

// Error holds all the non-fatal errors that were
// caught during a conversion.
type Error []error

func (e Error) Error() string {
	s := make([]string, len(e))
	for i, err := range e {
		s[i] = err.Error()
	}
	return strings.Join(s, ", ")
}
