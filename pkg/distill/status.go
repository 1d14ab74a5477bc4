// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package distill

import (
	"errors"
	"net/http"
)

// Status is the outcome of the last processed source.
type Status struct {
	Code int
	Kind Kind
}

func okStatus() Status {
	return Status{Code: http.StatusOK}
}

// OK returns true when no failure was recorded.
func (s Status) OK() bool {
	return s.Kind == KindNone
}

// statusOf returns the status matching an error.
func statusOf(err error) Status {
	if err == nil {
		return okStatus()
	}
	var e *Error
	if errors.As(err, &e) {
		return Status{Code: e.StatusCode(), Kind: e.Kind}
	}
	return Status{Code: http.StatusInternalServerError, Kind: KindInternal}
}
