package main

import (
	"fmt"
	"os"

	"github.com/lexgrep/lexgrep/pkg/editor"
	"github.com/lexgrep/lexgrep/pkg/session"
	"gopkg.in/yaml.v3"
)

// sessionFile is the on-disk YAML form of a full session: the rule list the
// editor surface uses, plus subject and language.
type sessionFile struct {
	Language string           `yaml:"language"`
	Subject  string           `yaml:"subject"`
	Rules    []editor.UnitDoc `yaml:"rules"`
}

// loadSessionFile reads and parses a session YAML file.
func loadSessionFile(path string) (session.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return session.Config{}, fmt.Errorf("reading session file: %w", err)
	}

	var f sessionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return session.Config{}, fmt.Errorf("parsing session file: %w", err)
	}

	rules, err := yaml.Marshal(f.Rules)
	if err != nil {
		return session.Config{}, fmt.Errorf("parsing session file: %w", err)
	}
	return editor.FromParts(f.Subject, f.Language, string(rules))
}

// renderSessionFile serializes a config into the session file format.
func renderSessionFile(cfg session.Config) (string, error) {
	docs := make([]editor.UnitDoc, len(cfg.LHS))
	for i, u := range cfg.LHS {
		docs[i] = editor.DocFromUnit(u)
	}
	data, err := yaml.Marshal(sessionFile{
		Language: cfg.Language.Display(),
		Subject:  cfg.Subject,
		Rules:    docs,
	})
	if err != nil {
		return "", fmt.Errorf("rendering session: %w", err)
	}
	return string(data), nil
}
