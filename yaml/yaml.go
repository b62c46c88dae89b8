// Package yaml provides a YAML codec implementation.
package yaml

import (
	"fmt"

	"github.com/zoobzio/mapper"
	"gopkg.in/yaml.v3"
)

// yamlCodec implements mapper.Codec for YAML.
type yamlCodec struct{}

// New returns a YAML codec.
func New() mapper.Codec {
	return &yamlCodec{}
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML.
func (c *yamlCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal decodes YAML data into v. Mappings decoded into an untyped
// value always come back with string keys.
func (c *yamlCodec) Unmarshal(data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		return err
	}
	if p, ok := v.(*any); ok {
		*p = normalize(*p)
	}
	return nil
}

// normalize converts mappings with non-string keys to map[string]any.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = normalize(item)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		for i, item := range t {
			t[i] = normalize(item)
		}
		return t
	default:
		return v
	}
}
