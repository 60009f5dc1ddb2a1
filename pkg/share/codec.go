// Package share implements the session codec: a Config becomes a compact,
// URL-fragment-safe token (binary record → zstd → fixed token alphabet) and
// back. Decoding never fails visibly: a malformed, truncated, hand-edited or
// stale token silently yields the built-in default session, because a broken
// share link must never brick the receiving session.
package share

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/lexgrep/lexgrep/pkg/session"
)

// DefaultPublicPrefix is the compiled-in public path prefix under which the
// playground is served. The value is consumed, never computed: deployments
// inject their own via Codec.
const DefaultPublicPrefix = "playground/"

// Codec encodes and decodes share tokens. PublicPrefix is the build-time
// public path prefix; Decode tolerates tokens with or without it.
type Codec struct {
	PublicPrefix string
}

// New returns a codec with the given public path prefix.
func New(publicPrefix string) Codec {
	return Codec{PublicPrefix: publicPrefix}
}

// Encode serializes cfg into a share token. Compression runs at maximum
// effort: this path runs once per share action, far off the matching hot
// path, and the token rides in a URL.
func (c Codec) Encode(cfg session.Config) (string, error) {
	wire := marshalWire(cfg)

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return "", fmt.Errorf("compressor: %w", err)
	}
	compressed := enc.EncodeAll(wire, nil)
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("compressor: %w", err)
	}

	return encodeAlphabet(compressed), nil
}

// Decode reverses Encode. An optional public path prefix is stripped first.
// Every failure mode collapses to the built-in default session; no error is
// ever surfaced from this path.
func (c Codec) Decode(s string) session.Config {
	cfg, err := c.decode(s)
	if err != nil {
		return session.Default()
	}
	return cfg
}

// decode is the fallible three-stage chain behind Decode. Each stage keeps
// its own error so the recovery policy stays auditable even though every
// variant currently maps to the same default substitution.
func (c Codec) decode(s string) (session.Config, error) {
	if c.PublicPrefix != "" && len(s) >= len(c.PublicPrefix) && s[:len(c.PublicPrefix)] == c.PublicPrefix {
		s = s[len(c.PublicPrefix):]
	}

	compressed, err := decodeAlphabet(s)
	if err != nil {
		return session.Config{}, fmt.Errorf("alphabet: %w", err)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return session.Config{}, fmt.Errorf("decompressor: %w", err)
	}
	defer dec.Close()
	wire, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return session.Config{}, fmt.Errorf("decompress: %w", err)
	}

	cfg, err := unmarshalWire(wire)
	if err != nil {
		return session.Config{}, fmt.Errorf("record: %w", err)
	}
	return cfg, nil
}
