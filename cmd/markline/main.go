// SPDX-FileCopyrightText: © 2023 Hugh Cameron
//
// SPDX-License-Identifier: MIT

// markline converts web pages to Markdown notes.
package main

import (
	"os"

	"github.com/hughcameron/markline/internal/app"
)

func main() {
	os.Exit(app.Run())
}
