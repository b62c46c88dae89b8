// Package msgpack provides a MessagePack codec for mapper.
package msgpack

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/mapper"
)

// structTag is read when a struct field carries no msgpack tag, so model
// types tagged for mapper encode under the same names.
const structTag = "mapper"

// msgpackCodec implements mapper.Codec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack codec. Map keys are written in sorted order, and
// integers and floats decoded into an untyped value come back as int64 and
// float64 whatever their wire width.
func New() mapper.Codec {
	return &msgpackCodec{}
}

func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

func (c *msgpackCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	enc.SetCustomStructTag(structTag)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *msgpackCodec) Unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag(structTag)
	dec.UseLooseInterfaceDecoding(true)
	return dec.Decode(v)
}
