package cleanstyles

import "strings"

// Every representation of a non-breaking space that survives a paste:
// the named entity, decimal and hex character references, and the raw
// U+00A0 code point. All collapse to an ordinary space. Deliberately not
// html.UnescapeString, which would decode every entity in the text.
var nbspForms = []string{
	"&nbsp;",
	"&#160;",
	"&#xA0;",
	"&#xa0;",
	"\u00A0",
}

var nbspReplacer = func() *strings.Replacer {
	pairs := make([]string, 0, len(nbspForms)*2)
	for _, form := range nbspForms {
		pairs = append(pairs, form, " ")
	}
	return strings.NewReplacer(pairs...)
}()

// NormalizeEntities replaces every non-breaking-space representation with an
// ordinary space. Pure function; empty input comes back unchanged.
func NormalizeEntities(s string) string {
	return nbspReplacer.Replace(s)
}

// countNBSP counts the non-breaking-space occurrences NormalizeEntities
// would replace.
func countNBSP(s string) int {
	n := 0
	for _, form := range nbspForms {
		n += strings.Count(s, form)
	}
	return n
}
