// Package normalize reduces parsed grammar notation to the flat,
// JSON-safe schema consumed by the parse-node code generator.
//
// The schema is deliberately smaller than the notation: lookahead
// restrictions, parameter lists and "but not" exclusion clauses carry no
// structural information the generator needs, so they are elided rather
// than represented. An elision is meaningful ("no constraint expressible
// here"), never an error; only genuinely unrecognized notation aborts a
// run.
package normalize

import (
	"bytes"
	"encoding/json"
)

// Document is the complete normalized grammar: the one durable artifact of
// a run. Productions appear in the order they were encountered across
// fragments; names are not deduplicated.
type Document struct {
	SequenceProductions []SequenceProduction `json:"sequenceProductions"`
	OneOfProductions    []OneOfProduction    `json:"oneOfProductions"`
}

// NewDocument returns an empty document whose lists serialize as [] rather
// than null.
func NewDocument() *Document {
	return &Document{
		SequenceProductions: []SequenceProduction{},
		OneOfProductions:    []OneOfProduction{},
	}
}

// Append adds one fragment's productions, preserving encounter order.
func (d *Document) Append(r *Result) {
	d.SequenceProductions = append(d.SequenceProductions, r.Sequences...)
	d.OneOfProductions = append(d.OneOfProductions, r.OneOfs...)
}

// MarshalIndent renders the document as the generator's input file: two
// space indent, trailing newline.
func (d *Document) MarshalIndent() ([]byte, error) {
	return encodeJSON(d, "  ")
}

// encodeJSON marshals without HTML escaping so glyph symbol text such as
// <LF> keeps its exact source spelling.
func encodeJSON(v interface{}, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Result is the normalized content of a single fragment.
type Result struct {
	Sequences []SequenceProduction
	OneOfs    []OneOfProduction
}

// SequenceProduction is a production whose body is an ordered list of
// alternatives.
type SequenceProduction struct {
	Name string        `json:"name"`
	Body []Alternative `json:"body"`
}

// Alternative is one right-hand side: its verbatim source text and the
// normalized symbol sequence, in source order. Sequence is empty exactly
// when the source marks the alternative as producing nothing.
type Alternative struct {
	Source   string `json:"source"`
	Sequence []Node `json:"sequence"`
}

// Node is the closed union of normalized symbols. Exactly one field is
// populated; the zero fields stay out of the JSON entirely.
type Node struct {
	// Literal is an exact terminal match.
	Literal string `json:"literal,omitempty"`
	// Symbol is a non-literal terminal class, e.g. <LF>.
	Symbol string `json:"symbol,omitempty"`
	// Name references another production.
	Name *NameNode `json:"name,omitempty"`
	// OneOf is an inline choice between literal terminals.
	OneOf []string `json:"oneOf,omitempty"`
}

// NameNode is a reference to a production by name. Optional is emitted
// only when true; the generator treats absence as "required".
type NameNode struct {
	Name     string `json:"name"`
	Optional bool   `json:"optional,omitempty"`
}

// OneOfProduction is a production whose body is a flat ordered list of
// terminal choices, entity-decoded.
type OneOfProduction struct {
	Name      string   `json:"name"`
	Terminals []string `json:"terminals"`
}
