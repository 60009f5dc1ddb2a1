package types

import (
	"encoding/json"
	"sort"
)

// Match is a single completed pattern match.
type Match struct {
	// Start is the position of the first matched token.
	Start SourcePoint `json:"start"`
	// End is the position just past the last matched token.
	End SourcePoint `json:"end"`
	// Name is the matching unit's name.
	Name string `json:"name"`
	// Captures maps capture names to matched text, including any
	// transform-produced sub-captures.
	Captures map[string][]byte `json:"captures,omitempty"`
	// Out carries the unit's output metadata verbatim.
	Out map[string][]byte `json:"out,omitempty"`
}

// CapturesJSON renders the capture map as a stable JSON object with string
// values, suitable for display and storage.
func (m *Match) CapturesJSON() string {
	if len(m.Captures) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(m.Captures))
	for k := range m.Captures {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	obj := make(map[string]string, len(keys))
	for _, k := range keys {
		obj[k] = string(m.Captures[k])
	}
	data, err := json.Marshal(obj)
	if err != nil {
		return "{}"
	}
	return string(data)
}
