package share

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/lexgrep/lexgrep/pkg/session"
	"github.com/lexgrep/lexgrep/pkg/types"
)

func genUnit() *rapid.Generator[session.Unit] {
	return rapid.Custom(func(t *rapid.T) session.Unit {
		return session.Unit{
			Patterns:  rapid.SliceOfN(rapid.String(), 0, 3).Draw(t, "patterns"),
			Name:      rapid.String().Draw(t, "name"),
			Group:     rapid.String().Draw(t, "group"),
			Out:       rapid.MapOfN(rapid.String(), rapid.String(), 0, 3).Draw(t, "out"),
			Transform: rapid.MapOfN(rapid.String(), rapid.String(), 0, 3).Draw(t, "transform"),
		}
	})
}

func genConfig() *rapid.Generator[session.Config] {
	return rapid.Custom(func(t *rapid.T) session.Config {
		return session.Config{
			Subject:  rapid.String().Draw(t, "subject"),
			Language: rapid.SampledFrom(types.Languages()).Draw(t, "language"),
			LHS:      rapid.SliceOfN(genUnit(), 0, 4).Draw(t, "lhs"),
		}
	})
}

func TestCodecRoundTripDefault(t *testing.T) {
	c := New(DefaultPublicPrefix)
	token, err := c.Encode(session.Default())
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	got := c.Decode(token)
	assert.True(t, session.Default().Equal(got))
}

func TestCodecRoundTripRapid(t *testing.T) {
	c := New(DefaultPublicPrefix)
	rapid.Check(t, func(t *rapid.T) {
		cfg := genConfig().Draw(t, "config")
		token, err := c.Encode(cfg)
		if err != nil {
			t.Fatalf("encode failed: %v", err)
		}
		for _, b := range []byte(token) {
			if !strings.ContainsRune(Alphabet, rune(b)) {
				t.Fatalf("token symbol %q outside alphabet", b)
			}
		}
		got := c.Decode(token)
		assert.True(t, cfg.Equal(got), "decoded config differs")
	})
}

func TestCodecPrefixTolerance(t *testing.T) {
	c := New("playground/")
	cfg := session.Config{Subject: "x;", Language: types.LangC}
	token, err := c.Encode(cfg)
	require.NoError(t, err)

	assert.True(t, cfg.Equal(c.Decode(token)))
	assert.True(t, cfg.Equal(c.Decode("playground/"+token)))

	// a codec without a prefix decodes only bare tokens
	bare := New("")
	assert.True(t, cfg.Equal(bare.Decode(token)))
}

func TestDecodeFallsBackToDefault(t *testing.T) {
	c := New(DefaultPublicPrefix)
	def := session.Default()

	for name, token := range map[string]string{
		"empty":           "",
		"single zero":     "A",
		"foreign symbols": "not a token %%",
		"prefix only":     "playground/",
		"random":          "Zq3kP. . .x",
	} {
		got := c.Decode(token)
		assert.True(t, def.Equal(got), "token %s must fall back to the default session", name)
	}
}

func TestDecodeFallsBackOnTruncation(t *testing.T) {
	c := New(DefaultPublicPrefix)
	token, err := c.Encode(session.Default())
	require.NoError(t, err)

	def := session.Default()
	for _, cut := range []int{1, len(token) / 2, len(token) - 1} {
		got := c.Decode(token[:cut])
		assert.True(t, def.Equal(got), "prefix of %d symbols", cut)
	}
}

func TestDecodeFallsBackOnCorruption(t *testing.T) {
	c := New(DefaultPublicPrefix)
	token, err := c.Encode(session.Default())
	require.NoError(t, err)

	corrupted := []byte(token)
	for i := range corrupted {
		if corrupted[i] != Alphabet[0] {
			corrupted[i] = Alphabet[0]
			break
		}
	}
	got := c.Decode(string(corrupted))
	assert.True(t, session.Default().Equal(got))
}

func TestDecodeRandomStringsRapid(t *testing.T) {
	c := New(DefaultPublicPrefix)
	def := session.Default()
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[ -~]{0,40}`).Draw(t, "token")
		got := c.Decode(s)
		assert.True(t, def.Equal(got))
	})
}

func TestDecodeStageErrors(t *testing.T) {
	c := New(DefaultPublicPrefix)

	_, err := c.decode("has spaces")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alphabet")

	_, err = c.decode("A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decompress")
}
