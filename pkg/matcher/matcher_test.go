package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexgrep/lexgrep/pkg/lexer"
	"github.com/lexgrep/lexgrep/pkg/types"
)

func patternLexer() lexer.Lexer { return lexer.NewCLike(false, true, 5000) }
func subjectLexer() lexer.Lexer { return lexer.NewCLike(false, false, 5000) }

func mustAdd(t *testing.T, tr *Trie, pattern, name, group string, transform map[string]string) {
	t.Helper()
	require.NoError(t, tr.AddPattern([]byte(pattern), nil, name, group, transform, patternLexer()))
}

func collect(t *testing.T, tr *Trie, subject string) []types.Match {
	t.Helper()
	var got []types.Match
	m := New(tr, 0, 0, 0)
	require.NoError(t, m.ProcessAndDrain([]byte(subject), subjectLexer(), func(mt types.Match) {
		got = append(got, mt)
	}))
	return got
}

func TestLiteralSequence(t *testing.T) {
	tr := NewTrie()
	mustAdd(t, tr, "foo ( )", "call", "", nil)

	got := collect(t, tr, "x = 1; foo();")
	require.Len(t, got, 1)
	assert.Equal(t, "call", got[0].Name)
	assert.Equal(t, types.SourcePoint{Line: 1, Column: 8}, got[0].Start)
	assert.Equal(t, types.SourcePoint{Line: 1, Column: 13}, got[0].End)
}

func TestCaptureBinding(t *testing.T) {
	tr := NewTrie()
	mustAdd(t, tr, "$FN ( $ARG )", "unary-call", "", nil)

	got := collect(t, tr, `f(x)`)
	require.Len(t, got, 1)
	assert.Equal(t, []byte("f"), got[0].Captures["FN"])
	assert.Equal(t, []byte("x"), got[0].Captures["ARG"])
}

func TestCaptureCooksStrings(t *testing.T) {
	tr := NewTrie()
	mustAdd(t, tr, "f ( $S )", "str-arg", "", nil)

	got := collect(t, tr, `f("hello")`)
	require.Len(t, got, 1)
	assert.Equal(t, []byte("hello"), got[0].Captures["S"])
}

func TestGapSpansTokens(t *testing.T) {
	tr := NewTrie()
	mustAdd(t, tr, "open ... close", "span", "", nil)

	got := collect(t, tr, "open a b c close")
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Start.Column)

	// gap may also span zero tokens
	got = collect(t, tr, "open close")
	assert.Len(t, got, 1)
}

func TestUnification(t *testing.T) {
	tr := NewTrie()
	mustAdd(t, tr, "&X = ... = &X ;", "same-var", "", nil)

	got := collect(t, tr, "a = b = a;")
	require.Len(t, got, 1)
	assert.Equal(t, []byte("a"), got[0].Captures["X"])

	got = collect(t, tr, "a = b = c;")
	assert.Empty(t, got)
}

func TestSharedPrefixFiresBoth(t *testing.T) {
	tr := NewTrie()
	mustAdd(t, tr, "free ( $P )", "free-call", "mem", nil)
	mustAdd(t, tr, "free ( $P ) ;", "free-stmt", "mem", nil)
	assert.Equal(t, 2, tr.Len())

	got := collect(t, tr, "free(p);")
	require.Len(t, got, 2)
	names := []string{got[0].Name, got[1].Name}
	assert.ElementsMatch(t, []string{"free-call", "free-stmt"}, names)
}

func TestTransformExtractsCaptures(t *testing.T) {
	tr := NewTrie()
	mustAdd(t, tr, "url = $U ;", "url", "", map[string]string{
		"U": `^(?<scheme>[a-z]+)://(?<host>[^/]+)`,
	})

	got := collect(t, tr, `url = "https://example.com/path";`)
	require.Len(t, got, 1)
	assert.Equal(t, []byte("https"), got[0].Captures["scheme"])
	assert.Equal(t, []byte("example.com"), got[0].Captures["host"])
	assert.Equal(t, []byte("https://example.com/path"), got[0].Captures["U"])
}

func TestTransformNonMatchAbandons(t *testing.T) {
	tr := NewTrie()
	mustAdd(t, tr, "url = $U ;", "url", "", map[string]string{
		"U": `^https://`,
	})

	got := collect(t, tr, `url = "ftp://example.com";`)
	assert.Empty(t, got)
}

func TestTransformMissingCaptureAbandons(t *testing.T) {
	tr := NewTrie()
	mustAdd(t, tr, "x = $V ;", "v", "", map[string]string{
		"NOPE": `.*`,
	})

	got := collect(t, tr, "x = 1;")
	assert.Empty(t, got)
}

func TestTransformUnifyConflictAbandons(t *testing.T) {
	tr := NewTrie()
	// the subgroup VAR must agree with the capture of the same name
	mustAdd(t, tr, "$VAR = $FMT ;", "fmt", "", map[string]string{
		"FMT": `^\{(?<VAR>[^}]+)}$`,
	})

	got := collect(t, tr, `x = "{x}";`)
	require.Len(t, got, 1)
	assert.Equal(t, []byte("x"), got[0].Captures["VAR"])

	got = collect(t, tr, `y = "{x}";`)
	assert.Empty(t, got)
}

func TestAddPatternErrors(t *testing.T) {
	tr := NewTrie()

	err := tr.AddPattern([]byte("   "), nil, "empty", "", nil, patternLexer())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tokens")

	err = tr.AddPattern([]byte(`x = "unclosed`), nil, "bad-lex", "", nil, patternLexer())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated")

	err = tr.AddPattern([]byte("x"), nil, "bad-re", "", map[string]string{"x": "("}, patternLexer())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transform")
}

func TestOutPropagates(t *testing.T) {
	tr := NewTrie()
	out := map[string][]byte{"severity": []byte("high")}
	require.NoError(t, tr.AddPattern([]byte("panic"), out, "panic", "", nil, patternLexer()))

	got := collect(t, tr, "panic")
	require.Len(t, got, 1)
	assert.Equal(t, []byte("high"), got[0].Out["severity"])
}

func TestGroupCapEvictsOldest(t *testing.T) {
	tr := NewTrie()
	mustAdd(t, tr, "start ... stop", "window", "g", nil)

	var got []types.Match
	m := New(tr, 0, 0, 3)
	err := m.ProcessAndDrain([]byte("start start start start start stop"), subjectLexer(), func(mt types.Match) {
		got = append(got, mt)
	})
	require.NoError(t, err)

	// five anchors opened, the cap keeps the newest three
	require.Len(t, got, 3)
	for _, mt := range got {
		assert.GreaterOrEqual(t, mt.Start.Column, 13)
	}
}

func TestGlobalCapEvictsOldest(t *testing.T) {
	tr := NewTrie()
	mustAdd(t, tr, "start ... stop", "window", "g", nil)

	var got []types.Match
	m := New(tr, 2, 0, 0)
	err := m.ProcessAndDrain([]byte("start start start start stop"), subjectLexer(), func(mt types.Match) {
		got = append(got, mt)
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestTokenLengthBound(t *testing.T) {
	tr := NewTrie()
	mustAdd(t, tr, "x", "x", "", nil)

	m := New(tr, 0, 4, 0)
	err := m.ProcessAndDrain([]byte("x verylongident"), subjectLexer(), func(types.Match) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum length")
}

func TestPrefilterSkipsLiteralFreeSubjects(t *testing.T) {
	tr := NewTrie()
	mustAdd(t, tr, "needle ( )", "needle", "", nil)

	m := New(tr, 0, 0, 0)
	require.NotNil(t, m.prefilter.ac)

	// the subject cannot contain a match, so it is never lexed: the
	// unterminated string does not surface as an error
	err := m.ProcessAndDrain([]byte(`hay "unclosed`), subjectLexer(), func(types.Match) {
		t.Fatal("unexpected match")
	})
	assert.NoError(t, err)
}

func TestPrefilterDisabledForCaptureOnlyPatterns(t *testing.T) {
	tr := NewTrie()
	mustAdd(t, tr, "needle ( )", "needle", "", nil)
	mustAdd(t, tr, "$A $B", "pair", "", nil)

	m := New(tr, 0, 0, 0)
	assert.Nil(t, m.prefilter.ac)

	got := 0
	require.NoError(t, m.ProcessAndDrain([]byte("a b"), subjectLexer(), func(types.Match) { got++ }))
	assert.Positive(t, got)
}
