package types

// SourcePoint is a line:column position (1-based).
type SourcePoint struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Before reports whether p is strictly before q in source order.
func (p SourcePoint) Before(q SourcePoint) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}
