package normalize

import (
	"fmt"
	"html"
	"strings"

	"github.com/alecthomas/repr"

	"github.com/grammata/esgrammar/notation"
)

// lineTerminatorName marks the one inline-set member that suppresses its
// whole set: "any of these, as long as it is not a line terminator" needs
// no node in the schema. The rule is intentionally narrow; other named
// members are treated as unrecognized notation.
const lineTerminatorName = "LineTerminator"

// Error is a fatal normalization failure: notation the schema has no
// mapping for. It identifies the production, the offending alternative's
// source text and the fragment it came from, so coverage can be extended.
type Error struct {
	Production  string
	Alternative string
	Fragment    string
	Reason      string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("cannot normalize production %q: %s", e.Production, e.Reason)
	if e.Alternative != "" {
		msg += fmt.Sprintf(" (alternative %q)", e.Alternative)
	}
	return msg
}

// Fragment normalizes one parsed grammar file. src is the fragment text
// the file was parsed from; it supplies alternative source slices and
// error context. Productions that are neither sequence-form nor one-of
// form would be dropped silently, but the notation's closed symbol set
// already guarantees every parsed element is one of the two.
func Fragment(src string, file *notation.File) (*Result, error) {
	res := &Result{}
	for _, p := range file.Productions {
		switch {
		case p.IsOneOf():
			terms, err := oneOf(p)
			if err != nil {
				return nil, fatal(err, p.Name, "", src)
			}
			res.OneOfs = append(res.OneOfs, OneOfProduction{Name: p.Name, Terminals: terms})
		default:
			// An absent body (forward declaration) yields an empty
			// alternative list, not an error.
			sp := SequenceProduction{Name: p.Name, Body: []Alternative{}}
			for _, line := range p.RHS {
				alt, err := alternative(src, line)
				if err != nil {
					return nil, fatal(err, p.Name, line.Source(src), src)
				}
				sp.Body = append(sp.Body, alt)
			}
			res.Sequences = append(res.Sequences, sp)
		}
	}
	return res, nil
}

func fatal(err error, production, alternative, src string) error {
	return &Error{
		Production:  production,
		Alternative: alternative,
		Fragment:    src,
		Reason:      err.Error(),
	}
}

func alternative(src string, line *notation.RHSLine) (Alternative, error) {
	seq, err := sequence(line.Head)
	if err != nil {
		return Alternative{}, err
	}
	if seq == nil {
		seq = []Node{}
	}
	return Alternative{Source: line.Source(src), Sequence: seq}, nil
}

// sequence folds a span chain into its node list. Each span contributes
// zero or more nodes; a trailing "but not" exclusion contributes nothing
// beyond its left-hand symbol, which is the span's own.
func sequence(span *notation.Span) ([]Node, error) {
	if span == nil {
		return nil, nil
	}
	head, err := symbolNodes(span.Sym)
	if err != nil {
		return nil, err
	}
	rest, err := sequence(span.Next)
	if err != nil {
		return nil, err
	}
	if len(rest) == 0 {
		return head, nil
	}
	return append(head[:len(head):len(head)], rest...), nil
}

// symbolNodes maps one symbol to its nodes. The switch is exhaustive over
// notation.SymbolKind; an unhandled kind is a gap in coverage and fails
// the run rather than silently corrupting the generator's input.
func symbolNodes(sym *notation.Symbol) ([]Node, error) {
	switch sym.Kind() {
	case notation.KindTerminal:
		return []Node{{Literal: sym.Term.Text()}}, nil
	case notation.KindGlyph:
		return []Node{{Symbol: *sym.Glyph}}, nil
	case notation.KindName:
		// A bracketed chunk directly after a name is usually its parameter
		// arguments, but the parser cannot tell those apart from a
		// following [no ... here] assertion; classify here so unrecognized
		// content still fails the run.
		if sym.Name.Args != nil {
			if _, err := constraintNodes(*sym.Name.Args); err != nil {
				return nil, err
			}
		}
		return []Node{{Name: &NameNode{Name: sym.Name.Name, Optional: sym.Name.Optional}}}, nil
	case notation.KindInlineSet:
		return inlineSet(sym.Set)
	case notation.KindConstraint:
		return constraintNodes(*sym.Group)
	case notation.KindProse:
		return nil, fmt.Errorf("prose symbol %q has no schema representation", strings.TrimSpace(*sym.Prose))
	}
	return nil, fmt.Errorf("unrecognized symbol %s", repr.String(sym))
}

func constraintNodes(raw string) ([]Node, error) {
	c := notation.ParseConstraint(raw)
	switch c.Kind {
	case notation.ConstraintLookahead, notation.ConstraintParams, notation.ConstraintEmpty:
		// Parse-time hints only; nothing structural to keep.
		return nil, nil
	case notation.ConstraintNoSymbol:
		for _, name := range c.Symbols {
			if name == lineTerminatorName {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("no-symbol assertion %q excludes something other than %s", raw, lineTerminatorName)
	}
	return nil, fmt.Errorf("unrecognized constraint %q", raw)
}

// inlineSet collapses an inline "one of" into a single oneOf node, unless
// a member references the line terminator production, in which case the
// whole set is suppressed.
func inlineSet(set *notation.InlineSet) ([]Node, error) {
	lits := make([]string, 0, len(set.Members))
	for _, m := range set.Members {
		switch {
		case m.Name != nil && *m.Name == lineTerminatorName:
			return nil, nil
		case m.Name != nil:
			return nil, fmt.Errorf("inline set member %q is neither a literal nor %s", *m.Name, lineTerminatorName)
		case m.Term != nil:
			lits = append(lits, m.Term.Text())
		default:
			return nil, fmt.Errorf("unrecognized inline set member %s", repr.String(m))
		}
	}
	return []Node{{OneOf: lits}}, nil
}

// oneOf flattens a one-of body into decoded terminal strings, preserving
// source order and duplicates.
func oneOf(p *notation.Production) ([]string, error) {
	terms := make([]string, 0, len(p.OneOf.Terms))
	for _, t := range p.OneOf.Terms {
		terms = append(terms, html.UnescapeString(t.Text()))
	}
	return terms, nil
}
