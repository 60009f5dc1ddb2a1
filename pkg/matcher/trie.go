// Package matcher implements the multi-pattern search engine: a trie over
// lexical tokens, plus a bounded execution engine that walks subject tokens
// through it.
package matcher

import (
	"fmt"

	"github.com/dlclark/regexp2"
	"github.com/lexgrep/lexgrep/pkg/lexer"
)

// Registration is one compiled pattern's metadata, attached to the trie node
// where the pattern completes.
type Registration struct {
	Name  string
	Group string
	Out   map[string][]byte

	transforms map[string]*regexp2.Regexp
}

// node is a trie state. Patterns from all registrations share prefixes.
type node struct {
	lits   map[string]*node // literal edges keyed by raw token text
	caps   []capEdge        // capture and unify edges
	gap    *node            // "..." state, self-looping over any token
	isGap  bool
	regs   []*Registration
	groups map[string]struct{} // groups of every pattern through this node
}

type capEdge struct {
	name  string
	unify bool
	next  *node
}

func newNode() *node {
	return &node{groups: make(map[string]struct{})}
}

// Trie is the shared multi-pattern search structure.
type Trie struct {
	root *node

	regCount int
	literals map[string]struct{} // literal token texts across all patterns
	// unfiltered counts patterns carrying no literal token at all; when
	// nonzero the literal prefilter cannot be used.
	unfiltered int
}

// NewTrie returns an empty trie.
func NewTrie() *Trie {
	return &Trie{root: newNode(), literals: make(map[string]struct{})}
}

// Len returns the number of registered patterns.
func (t *Trie) Len() int { return t.regCount }

// AddPattern lexes pattern with lx and registers it under name and group.
// out is copied into every match the pattern produces. transform maps capture
// names to regular expressions (named sub-captures become additional
// captures); a malformed expression or pattern is a registration error.
func (t *Trie) AddPattern(pattern []byte, out map[string][]byte, name, group string, transform map[string]string, lx lexer.Lexer) error {
	toks, err := lx.Tokens(pattern)
	if err != nil {
		return fmt.Errorf("pattern for %q: %w", name, err)
	}
	if len(toks) == 0 {
		return fmt.Errorf("pattern for %q has no tokens", name)
	}

	transforms := make(map[string]*regexp2.Regexp, len(transform))
	for key, expr := range transform {
		re, err := regexp2.Compile(expr, regexp2.None)
		if err != nil {
			return fmt.Errorf("transform %q for %q: %w", key, name, err)
		}
		transforms[key] = re
	}

	cur := t.root
	hasLiteral := false
	for _, tok := range toks {
		cur.groups[group] = struct{}{}
		switch tok.Kind {
		case lexer.Gap:
			if cur.isGap {
				continue // consecutive gaps collapse
			}
			if cur.gap == nil {
				cur.gap = newNode()
				cur.gap.isGap = true
			}
			cur = cur.gap
		case lexer.Capture, lexer.Unify:
			cur = cur.capEdge(tok.Name, tok.Kind == lexer.Unify)
		default:
			if cur.lits == nil {
				cur.lits = make(map[string]*node)
			}
			next, ok := cur.lits[tok.Text]
			if !ok {
				next = newNode()
				cur.lits[tok.Text] = next
			}
			cur = next
			t.literals[tok.Text] = struct{}{}
			hasLiteral = true
		}
	}
	cur.groups[group] = struct{}{}

	cur.regs = append(cur.regs, &Registration{
		Name:       name,
		Group:      group,
		Out:        out,
		transforms: transforms,
	})
	t.regCount++
	if !hasLiteral {
		t.unfiltered++
	}
	return nil
}

// capEdge returns the capture edge for name, sharing an existing edge of the
// same name and kind.
func (n *node) capEdge(name string, unify bool) *node {
	for _, ce := range n.caps {
		if ce.name == name && ce.unify == unify {
			return ce.next
		}
	}
	next := newNode()
	n.caps = append(n.caps, capEdge{name: name, unify: unify, next: next})
	return next
}

// hasOut reports whether any pattern continues past n.
func (n *node) hasOut() bool {
	return len(n.lits) > 0 || len(n.caps) > 0 || n.gap != nil || n.isGap
}
