package notation

import "strings"

// ConstraintKind classifies the content of a bracketed [...] chunk. The
// lexer keeps each chunk as a single token; the meaning lives in its text.
type ConstraintKind int

const (
	ConstraintUnknown ConstraintKind = iota
	// ConstraintLookahead is a [lookahead ...] restriction.
	ConstraintLookahead
	// ConstraintNoSymbol is a [no X here] assertion; Symbols carries the
	// excluded production names.
	ConstraintNoSymbol
	// ConstraintEmpty is the explicit [empty] alternative marker.
	ConstraintEmpty
	// ConstraintParams is a parameter list or guard: [Yield, Await],
	// [?Await], [+In], [~Default].
	ConstraintParams
)

// Constraint is the classified content of one bracketed chunk.
type Constraint struct {
	Kind    ConstraintKind
	Symbols []string
}

// ParseConstraint classifies a raw bracketed token, brackets included.
// Unrecognized content is reported as ConstraintUnknown rather than an
// error; the normalizer decides whether that is fatal.
func ParseConstraint(raw string) Constraint {
	content := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]"))
	switch {
	case content == "empty":
		return Constraint{Kind: ConstraintEmpty}
	case strings.HasPrefix(content, "lookahead"):
		return Constraint{Kind: ConstraintLookahead}
	case strings.HasPrefix(content, "no ") && strings.HasSuffix(content, " here"):
		inner := strings.TrimSuffix(strings.TrimPrefix(content, "no "), " here")
		return Constraint{Kind: ConstraintNoSymbol, Symbols: splitNames(inner)}
	case isParamList(content):
		return Constraint{Kind: ConstraintParams, Symbols: splitNames(content)}
	}
	return Constraint{Kind: ConstraintUnknown}
}

func splitNames(s string) []string {
	var names []string
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		f = strings.TrimLeft(f, "?+~")
		if f == "" || f == "or" {
			continue
		}
		names = append(names, f)
	}
	return names
}

func isParamList(s string) bool {
	if s == "" {
		return false
	}
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		f = strings.TrimLeft(f, "?+~")
		if !isIdent(f) {
			return false
		}
	}
	return true
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
