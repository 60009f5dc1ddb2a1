// Package session defines the shareable session configuration and drives
// pattern compilation and execution over it.
package session

import "github.com/lexgrep/lexgrep/pkg/types"

// Unit is one named, grouped set of alternative patterns sharing output and
// transform metadata.
type Unit struct {
	Patterns []string
	Name     string
	Group    string
	// Out is copied verbatim into every match the unit produces.
	Out map[string]string
	// Transform maps capture names to regular expressions applied to that
	// capture's text; named sub-captures become additional captures.
	Transform map[string]string
}

// Config is the unit of sharing and editing: a subject text, its language,
// and the ordered matching units.
type Config struct {
	Subject  string
	Language types.Language
	LHS      []Unit
}

// Default returns the built-in example session. It is used on first load and
// whenever share-token decoding fails, so it must always be runnable and
// produce at least one match.
func Default() Config {
	return Config{
		Subject:  "let x = \"hi\";\nprintln!(\"{x}\");",
		Language: types.LangRust,
		LHS: []Unit{{
			Patterns: []string{"&_VAR = $_STR;\n...\nprintln!($_FMT)"},
			Name:     "hello_world",
			Transform: map[string]string{
				"_FMT": `^\{(?<_VAR>[^}]+)}$`,
			},
		}},
	}
}

// Equal reports structural equality, treating nil and empty maps and slices
// as the same: neither the wire format nor the editor surface distinguishes
// them.
func (c Config) Equal(other Config) bool {
	if c.Subject != other.Subject || c.Language != other.Language {
		return false
	}
	if len(c.LHS) != len(other.LHS) {
		return false
	}
	for i := range c.LHS {
		if !c.LHS[i].Equal(other.LHS[i]) {
			return false
		}
	}
	return true
}

// Equal reports structural equality of two units, treating nil and empty
// collections as the same.
func (u Unit) Equal(other Unit) bool {
	if u.Name != other.Name || u.Group != other.Group {
		return false
	}
	if len(u.Patterns) != len(other.Patterns) {
		return false
	}
	for i := range u.Patterns {
		if u.Patterns[i] != other.Patterns[i] {
			return false
		}
	}
	return mapsEqual(u.Out, other.Out) && mapsEqual(u.Transform, other.Transform)
}

func mapsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		w, ok := b[k]
		if !ok || v != w {
			return false
		}
	}
	return true
}
