// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package graph

import "github.com/geoknoesis/rdf-go/rdf"

// Well known namespaces.
const (
	NsRDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NsRDFS = "http://www.w3.org/2000/01/rdf-schema#"
	NsOWL  = "http://www.w3.org/2002/07/owl#"
	NsXSD  = "http://www.w3.org/2001/XMLSchema#"
	NsDC   = "http://purl.org/dc/terms/"
	NsRDFa = "http://www.w3.org/ns/rdfa#"
	NsHT   = "http://www.w3.org/2006/http#"
	NsSDE  = "http://www.w3.org/2012/pySde/vocab#"
)

// Frequently used terms.
var (
	RDFType        = rdf.IRI{Value: NsRDF + "type"}
	RDFSSubClassOf = rdf.IRI{Value: NsRDFS + "subClassOf"}
	RDFSSubPropOf  = rdf.IRI{Value: NsRDFS + "subPropertyOf"}
	OWLEquivClass  = rdf.IRI{Value: NsOWL + "equivalentClass"}
	OWLEquivProp   = rdf.IRI{Value: NsOWL + "equivalentProperty"}
	XSDString      = rdf.IRI{Value: NsXSD + "string"}
	XSDDate        = rdf.IRI{Value: NsXSD + "date"}
	XSDDateTime    = rdf.IRI{Value: NsXSD + "dateTime"}
	XSDTime        = rdf.IRI{Value: NsXSD + "time"}
	XSDGYearMonth  = rdf.IRI{Value: NsXSD + "gYearMonth"}
	XSDGYear       = rdf.IRI{Value: NsXSD + "gYear"}
	XSDDuration    = rdf.IRI{Value: NsXSD + "duration"}
	XSDInteger     = rdf.IRI{Value: NsXSD + "integer"}
	XSDDouble      = rdf.IRI{Value: NsXSD + "double"}
	RDFaUsesVocab  = rdf.IRI{Value: NsRDFa + "usesVocabulary"}
	RDFHTML        = rdf.IRI{Value: NsRDF + "HTML"}
	RDFXMLLiteral  = rdf.IRI{Value: NsRDF + "XMLLiteral"}
)

// IRI is a shortcut returning an [rdf.IRI].
func IRI(value string) rdf.IRI {
	return rdf.IRI{Value: value}
}

// Literal returns a plain literal.
func Literal(value string) rdf.Literal {
	return rdf.Literal{Lexical: value}
}

// TypedLiteral returns a literal with a datatype.
func TypedLiteral(value string, datatype rdf.IRI) rdf.Literal {
	return rdf.Literal{Lexical: value, Datatype: datatype}
}

// LangLiteral returns a literal with a language tag.
// An empty language returns a plain literal.
func LangLiteral(value, lang string) rdf.Literal {
	return rdf.Literal{Lexical: value, Lang: lang}
}
