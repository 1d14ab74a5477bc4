// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package graph

import (
	"regexp"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/geoknoesis/rdf-go/rdf"
)

var (
	rxDate      = regexp.MustCompile(`^-?\d{4,}-\d{2}-\d{2}(Z|[+-]\d{2}:\d{2})?$`)
	rxTime      = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2}(\.\d+)?)?(Z|[+-]\d{2}:\d{2})?$`)
	rxDateTime  = regexp.MustCompile(`^-?\d{4,}-\d{2}-\d{2}T\d{2}:\d{2}(:\d{2}(\.\d+)?)?(Z|[+-]\d{2}:\d{2})?$`)
	rxYearMonth = regexp.MustCompile(`^-?\d{4,}-\d{2}$`)
	rxYear      = regexp.MustCompile(`^-?\d{4,}$`)
	rxDuration  = regexp.MustCompile(`^-?P(\d+Y)?(\d+M)?(\d+D)?(T(\d+H)?(\d+M)?(\d+(\.\d+)?S)?)?$`)
)

// TimeLiteral returns a literal typed after the lexical form of a date,
// time or duration value, as found on HTML time elements. Date and
// date-time values must also be valid calendar dates. Any other value
// gives a plain literal.
func TimeLiteral(value, lang string) rdf.Literal {
	v := strings.TrimSpace(value)
	switch {
	case rxDateTime.MatchString(v):
		if _, err := dateparse.ParseStrict(v); err == nil {
			return TypedLiteral(v, XSDDateTime)
		}
	case rxDate.MatchString(v):
		if _, err := dateparse.ParseStrict(v[:10]); err == nil {
			return TypedLiteral(v, XSDDate)
		}
	case rxTime.MatchString(v):
		return TypedLiteral(v, XSDTime)
	case rxYearMonth.MatchString(v):
		return TypedLiteral(v, XSDGYearMonth)
	case rxYear.MatchString(v):
		return TypedLiteral(v, XSDGYear)
	case rxDuration.MatchString(v) && v != "P" && !strings.HasSuffix(v, "T"):
		return TypedLiteral(v, XSDDuration)
	}
	return LangLiteral(value, lang)
}
