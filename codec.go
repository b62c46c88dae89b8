package mapper

import (
	"context"
	"time"
)

// Codec provides content-type aware marshaling of plain data.
//
// Decode unmarshals into a *any and expects string-keyed maps and slices
// back, so codecs whose native document types differ normalize them.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// Decode unmarshals data with codec and maps the plain result with FromJS.
func (m *Mapper) Decode(ctx context.Context, codec Codec, data []byte, options, target any, wrap Wrap) (any, error) {
	start := time.Now()

	var plain any
	if err := codec.Unmarshal(data, &plain); err != nil {
		err = newCodecError(ErrUnmarshal, codec.ContentType(), err)
		emitDecodeComplete(ctx, codec.ContentType(), len(data), time.Since(start), err)
		return nil, err
	}

	result, err := m.FromJS(ctx, plain, options, target, wrap)
	if err == nil && IsIgnored(result) {
		err = ErrIgnored
	}
	emitDecodeComplete(ctx, codec.ContentType(), len(data), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Encode maps model with ToJS and marshals the plain result with codec.
func (m *Mapper) Encode(ctx context.Context, codec Codec, model, options any) ([]byte, error) {
	start := time.Now()

	plain, err := m.ToJS(ctx, model, options)
	if err == nil && IsIgnored(plain) {
		err = ErrIgnored
	}
	if err != nil {
		emitEncodeComplete(ctx, codec.ContentType(), 0, time.Since(start), err)
		return nil, err
	}

	data, err := codec.Marshal(plain)
	if err != nil {
		err = newCodecError(ErrMarshal, codec.ContentType(), err)
		emitEncodeComplete(ctx, codec.ContentType(), 0, time.Since(start), err)
		return nil, err
	}

	emitEncodeComplete(ctx, codec.ContentType(), len(data), time.Since(start), nil)
	return data, nil
}
