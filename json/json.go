// Package json provides a JSON codec for mapper.
package json

import (
	"bytes"
	"encoding/json"

	"github.com/zoobzio/mapper"
)

// jsonCodec implements mapper.Codec for JSON. Output is never HTML-escaped,
// so masked values such as "a***@example.com" encode as written.
type jsonCodec struct {
	prefix string
	indent string
}

// New returns a compact JSON codec.
func New() mapper.Codec {
	return &jsonCodec{}
}

// NewIndent returns a JSON codec that indents its output like
// json.MarshalIndent.
func NewIndent(prefix, indent string) mapper.Codec {
	return &jsonCodec{prefix: prefix, indent: indent}
}

func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v without a trailing newline.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if c.indent != "" || c.prefix != "" {
		enc.SetIndent(c.prefix, c.indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Unmarshal decodes data into v. Numbers decoded into an untyped value are
// float64.
func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
