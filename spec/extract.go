package spec

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
)

// Fragment is one grammar-notation region of the document: its raw text,
// the chain of enclosing section ids (innermost first) and its role
// markers.
type Fragment struct {
	Text     string
	Sections []string
	Roles    Roles
}

// Roles are the markers the selector filters on.
type Roles struct {
	// Definition is set for regions marked as defining grammar, as opposed
	// to restating it for illustration.
	Definition bool
	// Example is set for regions inside an example block.
	Example bool
}

// ExtractFragments pulls every grammar-notation region out of the document
// in document order, annotated with its section chain and roles.
func ExtractFragments(r io.Reader) ([]Fragment, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing specification document: %w", err)
	}
	var frags []Fragment
	doc.Find("emu-grammar").Each(func(_ int, s *goquery.Selection) {
		frag := Fragment{
			Text: s.Text(),
			Roles: Roles{
				Definition: s.AttrOr("type", "") == "definition",
				Example:    s.Closest("emu-example").Length() > 0,
			},
		}
		s.Parents().Filter("emu-clause, emu-annex").Each(func(_ int, clause *goquery.Selection) {
			if id, ok := clause.Attr("id"); ok {
				frag.Sections = append(frag.Sections, id)
			}
		})
		frags = append(frags, frag)
	})
	return frags, nil
}
