// Package editor translates between a session Config and the flat text
// surfaces an editor UI works with: a YAML rule list, the subject text, and
// a display language identifier.
//
// Unlike the share-link codec, this path fails visibly: the user is actively
// editing and needs feedback, so parse errors carry a human-readable
// description and the caller is expected to preserve the unparsed editor
// text rather than resetting it.
package editor

import (
	"fmt"

	"github.com/lexgrep/lexgrep/pkg/session"
	"github.com/lexgrep/lexgrep/pkg/types"
	"gopkg.in/yaml.v3"
)

// UnitDoc is the YAML surface of one matching unit.
type UnitDoc struct {
	Patterns  []string          `yaml:"patterns"`
	Name      string            `yaml:"name"`
	Group     string            `yaml:"group,omitempty"`
	Out       map[string]string `yaml:"out,omitempty"`
	Transform map[string]string `yaml:"transform,omitempty"`
}

// Unit converts the document form back to the model.
func (d UnitDoc) Unit() session.Unit {
	return session.Unit{
		Patterns:  d.Patterns,
		Name:      d.Name,
		Group:     d.Group,
		Out:       d.Out,
		Transform: d.Transform,
	}
}

// DocFromUnit converts a model unit to its document form.
func DocFromUnit(u session.Unit) UnitDoc {
	return UnitDoc{
		Patterns:  u.Patterns,
		Name:      u.Name,
		Group:     u.Group,
		Out:       u.Out,
		Transform: u.Transform,
	}
}

// UnitsToYAML renders the ordered unit list as editable YAML.
func UnitsToYAML(units []session.Unit) (string, error) {
	docs := make([]UnitDoc, len(units))
	for i, u := range units {
		docs[i] = DocFromUnit(u)
	}
	data, err := yaml.Marshal(docs)
	if err != nil {
		return "", fmt.Errorf("rendering rules: %w", err)
	}
	return string(data), nil
}

// UnitsFromYAML parses the editable YAML back into the ordered unit list.
func UnitsFromYAML(text string) ([]session.Unit, error) {
	var docs []UnitDoc
	if err := yaml.Unmarshal([]byte(text), &docs); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	units := make([]session.Unit, len(docs))
	for i, d := range docs {
		units[i] = d.Unit()
	}
	return units, nil
}

// ToParts renders cfg into its three editor surfaces: the YAML rule list,
// the subject text verbatim, and the display language identifier.
func ToParts(cfg session.Config) (lhsText, subjectText, displayLanguage string, err error) {
	lhsText, err = UnitsToYAML(cfg.LHS)
	if err != nil {
		return "", "", "", err
	}
	return lhsText, cfg.Subject, cfg.Language.Display(), nil
}

// FromParts collects the editor surfaces back into a Config. The language
// accepts display identifiers and internal tags. Errors describe what failed
// to parse; the caller keeps the user's editor text untouched.
func FromParts(subjectText, language, lhsText string) (session.Config, error) {
	lang, err := types.ParseLanguage(language)
	if err != nil {
		return session.Config{}, err
	}
	units, err := UnitsFromYAML(lhsText)
	if err != nil {
		return session.Config{}, err
	}
	return session.Config{
		Subject:  subjectText,
		Language: lang,
		LHS:      units,
	}, nil
}
