package notation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spans flattens a chain into the symbols it carries, in order.
func spans(head *Span) []*Symbol {
	var syms []*Symbol
	for s := head; s != nil; s = s.Next {
		syms = append(syms, s.Sym)
	}
	return syms
}

func TestParseSequenceProduction(t *testing.T) {
	file, err := Parse(`
		AdditiveExpression :
			MultiplicativeExpression
			AdditiveExpression ` + "`+`" + ` MultiplicativeExpression
	`)
	require.NoError(t, err)
	require.Len(t, file.Productions, 1)

	p := file.Productions[0]
	assert.Equal(t, "AdditiveExpression", p.Name)
	assert.Equal(t, ":", p.Level)
	assert.False(t, p.IsOneOf())
	require.Len(t, p.RHS, 2)

	first := spans(p.RHS[0].Head)
	require.Len(t, first, 1)
	assert.Equal(t, KindName, first[0].Kind())
	assert.Equal(t, "MultiplicativeExpression", first[0].Name.Name)

	second := spans(p.RHS[1].Head)
	require.Len(t, second, 3)
	assert.Equal(t, KindName, second[0].Kind())
	assert.Equal(t, KindTerminal, second[1].Kind())
	assert.Equal(t, "+", second[1].Term.Text())
	assert.Equal(t, KindName, second[2].Kind())
}

func TestParseMultipleProductions(t *testing.T) {
	file, err := Parse(`
		Identifier :
			IdentifierName but not ReservedWord

		PrimaryExpression :
			Identifier
	`)
	require.NoError(t, err)
	require.Len(t, file.Productions, 2)
	assert.Equal(t, "Identifier", file.Productions[0].Name)
	assert.Equal(t, "PrimaryExpression", file.Productions[1].Name)
}

func TestParseOptionalAndParams(t *testing.T) {
	file, err := Parse(`
		CoverCallExpression[Yield, Await] :
			MemberExpression[?Yield, ?Await] Arguments?
	`)
	require.NoError(t, err)
	require.Len(t, file.Productions, 1)

	p := file.Productions[0]
	require.NotNil(t, p.Params)
	assert.Equal(t, "[Yield, Await]", *p.Params)

	syms := spans(p.RHS[0].Head)
	require.Len(t, syms, 2)
	require.NotNil(t, syms[0].Name.Args)
	assert.Equal(t, "[?Yield, ?Await]", *syms[0].Name.Args)
	assert.False(t, syms[0].Name.Optional)
	assert.True(t, syms[1].Name.Optional)
}

func TestParseButNot(t *testing.T) {
	tt := []struct {
		name     string
		code     string
		excluded int
	}{
		{"single exclusion", "Identifier :\n IdentifierName but not ReservedWord\n", 1},
		{"one of phrasing", "SingleChar ::\n SourceCharacter but not one of `\\` or LineTerminator\n", 2},
	}
	for _, test := range tt {
		t.Run(test.name, func(t *testing.T) {
			file, err := Parse(test.code)
			require.NoError(t, err)
			require.Len(t, file.Productions, 1)

			head := file.Productions[0].RHS[0].Head
			require.NotNil(t, head.ButNot)
			assert.Len(t, head.ButNot.Excluded, test.excluded)
			assert.Nil(t, head.Next)
		})
	}
}

func TestParseConstraintSpans(t *testing.T) {
	file, err := Parse(`
		CallExpression :
			IdentifierName [no LineTerminator here] Arguments?
			[lookahead != ` + "`let`" + `] Expression
			[empty]
	`)
	require.NoError(t, err)

	p := file.Productions[0]
	require.Len(t, p.RHS, 3)

	// A bracket directly after a name binds to it as Args; standalone
	// brackets are constraint symbols of their own.
	syms := spans(p.RHS[0].Head)
	require.Len(t, syms, 2)
	require.NotNil(t, syms[0].Name.Args)
	assert.Equal(t, "[no LineTerminator here]", *syms[0].Name.Args)
	assert.True(t, syms[1].Name.Optional)

	syms = spans(p.RHS[1].Head)
	require.Len(t, syms, 2)
	assert.Equal(t, KindConstraint, syms[0].Kind())

	syms = spans(p.RHS[2].Head)
	require.Len(t, syms, 1)
	assert.Equal(t, KindConstraint, syms[0].Kind())
	assert.Equal(t, "[empty]", *syms[0].Group)
}

func TestParseOneOf(t *testing.T) {
	tt := []struct {
		name  string
		code  string
		prod  string
		terms []string
	}{
		{
			"single line",
			"MultiplicativeOperator : one of `*` `/` `%`\n",
			"MultiplicativeOperator",
			[]string{"*", "/", "%"},
		},
		{
			"following lines",
			"DecimalDigit :: one of\n `0` `1` `2` `3` `4`\n `5` `6` `7` `8` `9`\n",
			"DecimalDigit",
			[]string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"},
		},
		{
			"backquote and glyph terminals",
			"Punctuator : one of ``` <TAB>\n",
			"Punctuator",
			[]string{"`", "<TAB>"},
		},
	}
	for _, test := range tt {
		t.Run(test.name, func(t *testing.T) {
			file, err := Parse(test.code)
			require.NoError(t, err)
			require.Len(t, file.Productions, 1)

			p := file.Productions[0]
			assert.Equal(t, test.prod, p.Name)
			require.True(t, p.IsOneOf())
			got := make([]string, 0, len(p.OneOf.Terms))
			for _, term := range p.OneOf.Terms {
				got = append(got, term.Text())
			}
			assert.Equal(t, test.terms, got)
		})
	}
}

func TestParseInlineSet(t *testing.T) {
	file, err := Parse("Operator :\n Left one of `+` `-` LineTerminator\n")
	require.NoError(t, err)

	syms := spans(file.Productions[0].RHS[0].Head)
	require.Len(t, syms, 2)
	require.Equal(t, KindInlineSet, syms[1].Kind())

	members := syms[1].Set.Members
	require.Len(t, members, 3)
	assert.Equal(t, "+", members[0].Term.Text())
	assert.Equal(t, "-", members[1].Term.Text())
	require.NotNil(t, members[2].Name)
	assert.Equal(t, "LineTerminator", *members[2].Name)
}

func TestParseGlyphs(t *testing.T) {
	file, err := Parse("LineTerminator ::\n <LF>\n <CR>\n <LS>\n <PS>\n")
	require.NoError(t, err)

	p := file.Productions[0]
	assert.Equal(t, "::", p.Level)
	require.Len(t, p.RHS, 4)
	assert.Equal(t, KindGlyph, p.RHS[0].Head.Sym.Kind())
	assert.Equal(t, "<LF>", *p.RHS[0].Head.Sym.Glyph)
}

func TestParseForwardDeclaration(t *testing.T) {
	file, err := Parse("Expression :\n")
	require.NoError(t, err)
	require.Len(t, file.Productions, 1)
	assert.Empty(t, file.Productions[0].RHS)
}

func TestRHSLineSource(t *testing.T) {
	src := "CallExpression :\n  IdentifierName [no LineTerminator here] Arguments?\n"
	file, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t,
		"IdentifierName [no LineTerminator here] Arguments?",
		file.Productions[0].RHS[0].Source(src))
}

func TestParseConstraintClassification(t *testing.T) {
	tt := []struct {
		raw     string
		kind    ConstraintKind
		symbols []string
	}{
		{"[empty]", ConstraintEmpty, nil},
		{"[lookahead != `let`]", ConstraintLookahead, nil},
		{"[lookahead ∉ DecimalDigit]", ConstraintLookahead, nil},
		{"[no LineTerminator here]", ConstraintNoSymbol, []string{"LineTerminator"}},
		{"[Yield, Await]", ConstraintParams, []string{"Yield", "Await"}},
		{"[?Yield, ?Await]", ConstraintParams, []string{"Yield", "Await"}},
		{"[+In]", ConstraintParams, []string{"In"}},
		{"[~Default]", ConstraintParams, []string{"Default"}},
		{"[something else entirely!]", ConstraintUnknown, nil},
	}
	for _, test := range tt {
		t.Run(test.raw, func(t *testing.T) {
			c := ParseConstraint(test.raw)
			assert.Equal(t, test.kind, c.Kind)
			assert.Equal(t, test.symbols, c.Symbols)
		})
	}
}
