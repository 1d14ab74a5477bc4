// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package distill

import (
	"context"
	"log/slog"
	"net/http"

	"codeberg.org/readeck/distiller/pkg/ctxr"
)

type (
	ctxLoggerKey     struct{}
	ctxHTTPClientKey struct{}
)

var (
	withLogger  = ctxr.Setter[*slog.Logger](ctxLoggerKey{})
	checkLogger = ctxr.Checker[*slog.Logger](ctxLoggerKey{})

	// WithHTTPClient returns a context carrying the client used to
	// load remote JSON-LD contexts.
	WithHTTPClient, checkHTTPClient = ctxr.WithChecker[*http.Client](ctxHTTPClientKey{})
)

// Logger returns the logger of a distiller run, or the default logger.
func Logger(ctx context.Context) *slog.Logger {
	if l, ok := checkLogger(ctx); ok {
		return l
	}
	return slog.Default()
}
