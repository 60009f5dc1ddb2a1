package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguage_DisplayIsTotal(t *testing.T) {
	seen := make(map[string]Language)
	for _, lang := range Languages() {
		display := lang.Display()
		assert.NotEmpty(t, display, "language %d has no display name", lang)

		prev, dup := seen[display]
		assert.False(t, dup, "display %q shared by %v and %v", display, prev, lang)
		seen[display] = lang
	}
}

func TestLanguage_TagIsTotal(t *testing.T) {
	seen := make(map[string]bool)
	for _, lang := range Languages() {
		tag := lang.Tag()
		assert.NotEmpty(t, tag)
		assert.False(t, seen[tag], "duplicate tag %q", tag)
		seen[tag] = true
	}
}

func TestParseLanguage_RoundTrip(t *testing.T) {
	for _, lang := range Languages() {
		fromTag, err := ParseLanguage(lang.Tag())
		require.NoError(t, err)
		assert.Equal(t, lang, fromTag)

		fromDisplay, err := ParseLanguage(lang.Display())
		require.NoError(t, err)
		assert.Equal(t, lang, fromDisplay)
	}
}

func TestParseLanguage_Unknown(t *testing.T) {
	for _, input := range []string{"", "cobol", "Rust", "GO"} {
		_, err := ParseLanguage(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestLanguage_Valid(t *testing.T) {
	for _, lang := range Languages() {
		assert.True(t, lang.Valid())
	}
	assert.False(t, Language(-1).Valid())
	assert.False(t, Language(len(Languages())).Valid())
}

func TestMatch_CapturesJSON(t *testing.T) {
	m := Match{
		Name: "hello_world",
		Captures: map[string][]byte{
			"_VAR": []byte("x"),
			"_STR": []byte("hi"),
		},
	}
	assert.JSONEq(t, `{"_STR":"hi","_VAR":"x"}`, m.CapturesJSON())

	empty := Match{Name: "empty"}
	assert.Equal(t, "{}", empty.CapturesJSON())
}
