// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package microdata

import (
	"strconv"
	"strings"

	"github.com/geoknoesis/rdf-go/rdf"

	"codeberg.org/readeck/distiller/pkg/graph"
)

func literal(value, lang string) rdf.Term {
	return graph.LangLiteral(value, lang)
}

// numericValue types the value of data and meter elements.
func numericValue(value, lang string) rdf.Term {
	v := strings.TrimSpace(value)
	if _, err := strconv.ParseInt(v, 10, 64); err == nil {
		return graph.TypedLiteral(v, graph.XSDInteger)
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil && !strings.ContainsAny(v, "xXnN") {
		return graph.TypedLiteral(v, graph.XSDDouble)
	}
	return literal(value, lang)
}
