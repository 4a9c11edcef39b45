// Package notation parses grammarkdown notation, the grammar metalanguage
// used by the ECMAScript specification inside <emu-grammar> regions.
//
// The parser covers the subset of the notation the language grammar itself
// uses: productions at the three punctuation levels (`:`, `::`, `:::`),
// "one of" bodies, backquoted terminals, named glyph terminals such as
// <LF>, nonterminal references with parameter lists and the `?` optional
// suffix, bracketed constraints (lookahead, [no ... here], [empty],
// parameter guards), "but not" exclusions, inline "one of" symbol sets and
// prose lines. Spans within one right-hand side form a chained list, one
// link per symbol.
package notation

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	Lexer = lexer.MustStateful(lexer.Rules{
		"Root": {
			{Name: "Backquote", Pattern: "```"},
			{Name: "Term", Pattern: "`[^`\n]+`"},
			{Name: "Glyph", Pattern: `<[A-Z][A-Z0-9]*>`},
			{Name: "Group", Pattern: `\[[^\]\n]*\]`},
			{Name: "Prose", Pattern: `>[^\n]*`},
			{Name: "Colon3", Pattern: `:::`},
			{Name: "Colon2", Pattern: `::`},
			{Name: "Colon", Pattern: `:`},
			{Name: "Question", Pattern: `\?`},
			{Name: "Ident", Pattern: `[A-Za-z_][0-9A-Za-z_]*`},
			{Name: "Newline", Pattern: `\n`},
			{Name: "whitespace", Pattern: `[ \t\r]+`},
		},
	})
	Parser = MustBuildParser(&File{})
)

func MustBuildParser(v interface{}) *participle.Parser {
	return participle.MustBuild(v,
		participle.Lexer(Lexer),
		participle.UseLookahead(4),
	)
}

// Parse turns one grammar fragment's text into its File. The returned error
// is the parser's own diagnostic; callers attach fragment context.
func Parse(text string) (*File, error) {
	dst := &File{}
	if err := Parser.ParseString("", text, dst); err != nil {
		return nil, err
	}
	return dst, nil
}

// File is the parse of one fragment: a sequence of productions.
type File struct {
	Productions []*Production `parser:"( Newline* @@ )* Newline*"`
}

type Production struct {
	Pos lexer.Position

	Name   string     `parser:"@Ident"`
	Params *string    `parser:"@Group?"`
	Level  string     `parser:"@(Colon3 | Colon2 | Colon)"`
	OneOf  *OneOfList `parser:"( 'one' 'of' @@"`
	RHS    []*RHSLine `parser:"| ( Newline ( (?! Ident Group? (Colon3 | Colon2 | Colon)) @@ )? )* )"`
}

// IsOneOf reports whether the production body is the flat "one of" form.
func (p *Production) IsOneOf() bool { return p.OneOf != nil }

// OneOfList is a "one of" body: terminals on the heading line and/or on
// following lines, until a line that is not made of terminals.
type OneOfList struct {
	Terms []*TermText `parser:"( Newline | @@ )+"`
}

// RHSLine is one alternative of a sequence-form production. Head is never
// nil; an explicitly empty alternative is written as the [empty] constraint
// and still occupies a line.
type RHSLine struct {
	Pos lexer.Position

	Head *Span `parser:"@@"`
}

// Source slices the verbatim text of the alternative's line out of the
// fragment the file was parsed from. An alternative never spans lines.
func (r *RHSLine) Source(fragment string) string {
	if r.Pos.Offset < 0 || r.Pos.Offset > len(fragment) {
		return ""
	}
	line := fragment[r.Pos.Offset:]
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// Span is one link of an alternative's symbol chain: this symbol, then the
// rest. A trailing "but not" exclusion binds to the current symbol.
type Span struct {
	Sym    *Symbol `parser:"@@"`
	ButNot *ButNot `parser:"@@?"`
	Next   *Span   `parser:"@@?"`
}

// Symbol is the closed set of things that can occupy one grammar position.
// Exactly one field is set.
type Symbol struct {
	Set   *InlineSet `parser:"@@"`
	Glyph *string    `parser:"| @Glyph"`
	Term  *TermText  `parser:"| @@"`
	Prose *string    `parser:"| @Prose"`
	Group *string    `parser:"| @Group"`
	Name  *NameRef   `parser:"| @@"`
}

// SymbolKind discriminates Symbol variants for exhaustive handling.
type SymbolKind int

const (
	KindInvalid SymbolKind = iota
	KindInlineSet
	KindTerminal
	KindGlyph
	KindProse
	KindConstraint
	KindName
)

func (s *Symbol) Kind() SymbolKind {
	switch {
	case s.Set != nil:
		return KindInlineSet
	case s.Term != nil:
		return KindTerminal
	case s.Glyph != nil:
		return KindGlyph
	case s.Prose != nil:
		return KindProse
	case s.Group != nil:
		return KindConstraint
	case s.Name != nil:
		return KindName
	}
	return KindInvalid
}

// ButNot is a "but not" exclusion: one or more excluded symbols, optionally
// in the "but not one of X or Y" phrasing.
type ButNot struct {
	Excluded []*Symbol `parser:"'but' 'not' ('one' 'of')? @@ ('or' @@)*"`
}

// InlineSet is an inline "one of" at a single grammar position. Members may
// be terminals or nonterminal references.
type InlineSet struct {
	Members []*SetMember `parser:"'one' 'of' @@+"`
}

type SetMember struct {
	Term *TermText `parser:"@@"`
	Name *string   `parser:"| @Ident"`
}

// NameRef is a reference to another production, with the grammar's optional
// parameter argument list and `?` suffix.
type NameRef struct {
	Name     string  `parser:"@Ident"`
	Args     *string `parser:"@Group?"`
	Optional bool    `parser:"@Question?"`
}

// TermText is a terminal token in any of its three spellings.
type TermText struct {
	Term      *string `parser:"@Term"`
	Backquote *string `parser:"| @Backquote"`
	Glyph     *string `parser:"| @Glyph"`
}

// Text returns the terminal's content: backquote delimiters are stripped,
// the three-backquote spelling denotes a literal backquote, and named
// glyphs keep their angle-bracketed form.
func (t *TermText) Text() string {
	switch {
	case t.Term != nil:
		return strings.TrimSuffix(strings.TrimPrefix(*t.Term, "`"), "`")
	case t.Backquote != nil:
		return "`"
	case t.Glyph != nil:
		return *t.Glyph
	}
	return ""
}
