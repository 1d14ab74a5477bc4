// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

// Distiller extracts RDFa, microdata and embedded Turtle or JSON-LD
// from HTML documents.
package main

import (
	"fmt"
	"os"

	"codeberg.org/readeck/distiller/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err) //nolint:errcheck
		os.Exit(1)
	}
}
