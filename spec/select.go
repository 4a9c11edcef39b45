package spec

// Section ids steering selection. The grammar of interest starts at the
// source-code clause; everything before it is notational preamble. The
// deny lists cover grammars that parse something other than the language
// itself: RegExp patterns, NativeFunction source text, URI component
// syntax, and the Annex B web-browser extensions.
const markerSection = "sec-ecmascript-language-source-code"

var (
	denySections = map[string]bool{
		"sec-patterns":                    true,
		"sec-native-function-source-text": true,
		"sec-uri-syntax":                  true,
	}
	denyWebSections = map[string]bool{
		"sec-additional-ecmascript-features-for-web-browsers": true,
	}
)

// predicate is one selection rule. Rules run in order and all must pass.
type predicate struct {
	name string
	keep func(s *selection, f Fragment) bool
}

// policy is the ordered rule set deciding which fragments belong to the
// core language grammar. Keeping it declarative makes each rule testable
// on its own.
var policy = []predicate{
	{"definition-role", func(_ *selection, f Fragment) bool { return f.Roles.Definition }},
	{"not-example", func(_ *selection, f Fragment) bool { return !f.Roles.Example }},
	{"past-marker", (*selection).pastMarker},
	{"not-denied-grammar", func(_ *selection, f Fragment) bool { return !deniedGrammar(f) }},
	{"not-web-extension", func(_ *selection, f Fragment) bool { return !webExtension(f) }},
}

// selection carries the positional gate. The gate opens when the stream
// reaches the marker section and never closes again; after that point
// fragments are excluded only by category, never by position.
type selection struct {
	open bool
}

func (s *selection) pastMarker(f Fragment) bool {
	if !s.open {
		for _, id := range f.Sections {
			if id == markerSection {
				s.open = true
				break
			}
		}
	}
	return s.open
}

// deniedGrammar reports whether the fragment's innermost or
// second-innermost section is one of the non-language grammars.
func deniedGrammar(f Fragment) bool {
	for i, id := range f.Sections {
		if i >= 2 {
			break
		}
		if denySections[id] {
			return true
		}
	}
	return false
}

// webExtension reports whether the fragment's third-level section is a
// web-platform-only grammar extension.
func webExtension(f Fragment) bool {
	return len(f.Sections) >= 3 && denyWebSections[f.Sections[2]]
}

// Select returns the ordered sub-sequence of fragments belonging to the
// core language grammar. An empty result is valid.
func Select(frags []Fragment) []Fragment {
	s := &selection{}
	var kept []Fragment
	for _, f := range frags {
		if s.admit(f) {
			kept = append(kept, f)
		}
	}
	return kept
}

func (s *selection) admit(f Fragment) bool {
	for _, p := range policy {
		if !p.keep(s, f) {
			return false
		}
	}
	return true
}
