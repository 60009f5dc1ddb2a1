package matcher

import "github.com/cloudflare/ahocorasick"

// prefilter skips the token walk entirely when no pattern can possibly
// match. Every literal token a pattern requires must appear verbatim in the
// subject bytes, so a subject containing none of the registered literals
// cannot complete any pattern. Patterns made only of wildcards disable the
// prefilter.
type prefilter struct {
	ac       *ahocorasick.Matcher
	literals []string
}

func newPrefilter(t *Trie) *prefilter {
	if t.unfiltered > 0 || len(t.literals) == 0 {
		return &prefilter{}
	}
	lits := make([]string, 0, len(t.literals))
	for lit := range t.literals {
		lits = append(lits, lit)
	}
	return &prefilter{
		ac:       ahocorasick.NewStringMatcher(lits),
		literals: lits,
	}
}

// skip reports whether scanning src can be skipped.
func (pf *prefilter) skip(src []byte) bool {
	if pf.ac == nil {
		return false
	}
	return len(pf.ac.Match(src)) == 0
}
