package share

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/lexgrep/lexgrep/pkg/session"
	"github.com/lexgrep/lexgrep/pkg/types"
)

// The wire record is a fixed, versionless layout: uvarint lengths and
// counts, fields in declaration order, map entries sorted by key. Previously
// issued links must keep decoding, so the field order and the language
// ordinals are frozen.

func appendUvarint(buf []byte, v uint64) []byte {
	return binary.AppendUvarint(buf, v)
}

func appendString(buf []byte, s string) []byte {
	buf = appendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

func appendStringMap(buf []byte, m map[string]string) []byte {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	buf = appendUvarint(buf, uint64(len(keys)))
	for _, k := range keys {
		buf = appendString(buf, k)
		buf = appendString(buf, m[k])
	}
	return buf
}

// marshalWire serializes cfg into the wire record.
func marshalWire(cfg session.Config) []byte {
	buf := make([]byte, 0, 64+len(cfg.Subject))
	buf = appendString(buf, cfg.Subject)
	buf = appendUvarint(buf, uint64(cfg.Language))
	buf = appendUvarint(buf, uint64(len(cfg.LHS)))
	for _, unit := range cfg.LHS {
		buf = appendUvarint(buf, uint64(len(unit.Patterns)))
		for _, p := range unit.Patterns {
			buf = appendString(buf, p)
		}
		buf = appendString(buf, unit.Name)
		buf = appendString(buf, unit.Group)
		buf = appendStringMap(buf, unit.Out)
		buf = appendStringMap(buf, unit.Transform)
	}
	return buf
}

// wireReader decodes the record with bounds checking at every step.
type wireReader struct {
	buf []byte
	pos int
}

func (r *wireReader) uvarint() (uint64, error) {
	v, n := binary.Uvarint(r.buf[r.pos:])
	if n <= 0 {
		return 0, fmt.Errorf("truncated record at byte %d", r.pos)
	}
	r.pos += n
	return v, nil
}

func (r *wireReader) string() (string, error) {
	n, err := r.uvarint()
	if err != nil {
		return "", err
	}
	if n > uint64(len(r.buf)-r.pos) {
		return "", fmt.Errorf("string length %d overruns record at byte %d", n, r.pos)
	}
	s := string(r.buf[r.pos : r.pos+int(n)])
	r.pos += int(n)
	return s, nil
}

func (r *wireReader) stringMap() (map[string]string, error) {
	count, err := r.uvarint()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	if count > uint64(len(r.buf)-r.pos) {
		return nil, fmt.Errorf("map count %d overruns record at byte %d", count, r.pos)
	}
	m := make(map[string]string, count)
	for i := uint64(0); i < count; i++ {
		k, err := r.string()
		if err != nil {
			return nil, err
		}
		v, err := r.string()
		if err != nil {
			return nil, err
		}
		m[k] = v
	}
	return m, nil
}

// unmarshalWire deserializes a wire record. Truncated records, unknown
// language ordinals and trailing bytes are all errors.
func unmarshalWire(data []byte) (session.Config, error) {
	r := &wireReader{buf: data}
	var cfg session.Config

	subject, err := r.string()
	if err != nil {
		return cfg, err
	}
	cfg.Subject = subject

	ord, err := r.uvarint()
	if err != nil {
		return cfg, err
	}
	lang := types.Language(ord)
	if !lang.Valid() {
		return cfg, fmt.Errorf("unknown language ordinal %d", ord)
	}
	cfg.Language = lang

	unitCount, err := r.uvarint()
	if err != nil {
		return cfg, err
	}
	if unitCount > uint64(len(data)) {
		return cfg, fmt.Errorf("unit count %d overruns record", unitCount)
	}
	for i := uint64(0); i < unitCount; i++ {
		var unit session.Unit
		patCount, err := r.uvarint()
		if err != nil {
			return cfg, err
		}
		if patCount > uint64(len(data)) {
			return cfg, fmt.Errorf("pattern count %d overruns record", patCount)
		}
		for j := uint64(0); j < patCount; j++ {
			p, err := r.string()
			if err != nil {
				return cfg, err
			}
			unit.Patterns = append(unit.Patterns, p)
		}
		if unit.Name, err = r.string(); err != nil {
			return cfg, err
		}
		if unit.Group, err = r.string(); err != nil {
			return cfg, err
		}
		if unit.Out, err = r.stringMap(); err != nil {
			return cfg, err
		}
		if unit.Transform, err = r.stringMap(); err != nil {
			return cfg, err
		}
		cfg.LHS = append(cfg.LHS, unit)
	}

	if r.pos != len(data) {
		return cfg, fmt.Errorf("%d trailing bytes after record", len(data)-r.pos)
	}
	return cfg, nil
}
