package matcher

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/lexgrep/lexgrep/pkg/lexer"
	"github.com/lexgrep/lexgrep/pkg/types"
)

// Matcher executes a compiled trie against subject text under three resource
// bounds: a global cap on concurrently open match attempts, a per-group cap,
// and a maximum token length. When a bound is hit the oldest attempt in that
// scope is evicted.
type Matcher struct {
	trie          *Trie
	maxConcurrent int
	maxTokenLen   int
	groupCap      int
	prefilter     *prefilter
}

// New constructs an engine over trie with the given bounds. A bound of zero
// disables that bound.
func New(trie *Trie, maxConcurrent, maxTokenLen, groupCap int) *Matcher {
	return &Matcher{
		trie:          trie,
		maxConcurrent: maxConcurrent,
		maxTokenLen:   maxTokenLen,
		groupCap:      groupCap,
		prefilter:     newPrefilter(trie),
	}
}

// attempt is one in-flight partial match: a trie state plus the capture
// bindings accumulated so far. id preserves creation order for eviction.
type attempt struct {
	id    uint64
	node  *node
	binds map[string]string
	start types.SourcePoint
}

// ProcessAndDrain lexes src with lx and streams every completed match to
// sink. The sink owns accumulation; the engine buffers nothing.
func (m *Matcher) ProcessAndDrain(src []byte, lx lexer.Lexer, sink func(types.Match)) error {
	if m.prefilter.skip(src) {
		return nil
	}

	toks, err := lx.Tokens(src)
	if err != nil {
		return err
	}

	var (
		live   []*attempt
		nextID uint64
	)
	for _, tok := range toks {
		if m.maxTokenLen > 0 && len(tok.Text) > m.maxTokenLen {
			return fmt.Errorf("token exceeds maximum length %d at %d:%d",
				m.maxTokenLen, tok.Start.Line, tok.Start.Column)
		}

		next := make([]*attempt, 0, len(live)+1)
		for _, a := range live {
			if err := m.step(a, tok, &next, sink); err != nil {
				return err
			}
		}

		// open a fresh attempt anchored at this token
		fresh := &attempt{id: nextID, node: m.trie.root, start: tok.Start}
		nextID++
		if err := m.step(fresh, tok, &next, sink); err != nil {
			return err
		}

		live = m.enforce(next)
	}
	return nil
}

// step advances a by one token: the closure of its node (following gap
// entries) is tried against tok, successors are appended to next, and any
// completed registrations are emitted.
func (m *Matcher) step(a *attempt, tok lexer.Token, next *[]*attempt, sink func(types.Match)) error {
	for st := a.node; st != nil; st = st.gap {
		// gap states absorb any token
		if st.isGap {
			*next = append(*next, &attempt{id: a.id, node: st, binds: a.binds, start: a.start})
		}

		if succ, ok := st.lits[tok.Text]; ok {
			if err := m.arrive(a, succ, a.binds, tok, next, sink); err != nil {
				return err
			}
		}

		for _, ce := range st.caps {
			binds := a.binds
			if prev, bound := binds[ce.name]; bound && ce.unify {
				if prev != tok.Value {
					continue
				}
			} else {
				binds = copyBinds(binds)
				binds[ce.name] = tok.Value
			}
			if err := m.arrive(a, ce.next, binds, tok, next, sink); err != nil {
				return err
			}
		}
	}
	return nil
}

// arrive lands an attempt on succ after consuming tok: completions fire and
// the attempt stays live if the pattern can continue.
func (m *Matcher) arrive(a *attempt, succ *node, binds map[string]string, tok lexer.Token, next *[]*attempt, sink func(types.Match)) error {
	for _, reg := range succ.regs {
		if err := m.complete(reg, binds, a.start, tok.End, sink); err != nil {
			return err
		}
	}
	if succ.hasOut() {
		*next = append(*next, &attempt{id: a.id, node: succ, binds: binds, start: a.start})
	}
	return nil
}

// complete applies reg's transforms to the bindings and emits a match. A
// transform whose expression does not match abandons the attempt silently; a
// transform execution failure is a run error.
func (m *Matcher) complete(reg *Registration, binds map[string]string, start, end types.SourcePoint, sink func(types.Match)) error {
	captures := copyBinds(binds)
	for key, re := range reg.transforms {
		val, ok := captures[key]
		if !ok {
			return nil
		}
		match, err := re.FindStringMatch(val)
		if err != nil {
			return fmt.Errorf("transform %q for %q: %w", key, reg.Name, err)
		}
		if match == nil {
			return nil
		}
		for _, g := range match.Groups()[1:] {
			if isOrdinal(g.Name) || len(g.Captures) == 0 {
				continue
			}
			sub := g.Captures[len(g.Captures)-1].String()
			if prev, bound := captures[g.Name]; bound {
				if prev != sub {
					return nil
				}
				continue
			}
			captures[g.Name] = sub
		}
	}

	out := types.Match{Start: start, End: end, Name: reg.Name, Out: reg.Out}
	if len(captures) > 0 {
		out.Captures = make(map[string][]byte, len(captures))
		for k, v := range captures {
			out.Captures[k] = []byte(v)
		}
	}
	sink(out)
	return nil
}

// enforce applies the global and per-group attempt bounds, evicting oldest
// first within each scope.
func (m *Matcher) enforce(next []*attempt) []*attempt {
	sort.SliceStable(next, func(i, j int) bool { return next[i].id < next[j].id })

	if m.maxConcurrent > 0 && len(next) > m.maxConcurrent {
		next = next[len(next)-m.maxConcurrent:]
	}
	if m.groupCap <= 0 {
		return next
	}

	counts := make(map[string]int)
	kept := make([]*attempt, 0, len(next))
	// scan newest-to-oldest so the oldest attempts fall off a full group
	for i := len(next) - 1; i >= 0; i-- {
		a := next[i]
		over := false
		for g := range a.node.groups {
			if counts[g] >= m.groupCap {
				over = true
				break
			}
		}
		if over {
			continue
		}
		for g := range a.node.groups {
			counts[g]++
		}
		kept = append(kept, a)
	}
	// restore oldest-first order
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return kept
}

func copyBinds(binds map[string]string) map[string]string {
	out := make(map[string]string, len(binds)+1)
	for k, v := range binds {
		out[k] = v
	}
	return out
}

// isOrdinal reports whether a regexp2 group name is a positional ordinal
// rather than a named group.
func isOrdinal(name string) bool {
	_, err := strconv.Atoi(name)
	return err == nil
}
