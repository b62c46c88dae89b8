// Package mapper maps plain data trees to reactive models and back.
//
// FromJS walks a plain value (maps, slices and scalars, as produced by any
// decoder) and builds a model of observable cells, sequences and keyed
// objects. ToJS walks a model and produces the plain value again. Both walks
// are driven by handlers selected per node, either explicitly through a
// Mapping or automatically from the kind of the value.
//
// # Options
//
// A Mapping configures one node. Keys starting with "$" configure the node
// itself; any other key holds the options of the property of that name:
//
//	opts := mapper.Mapping{
//	    "$default": "copy",
//	    "children": mapper.Mapping{
//	        "$key":         "id",
//	        "$merge":       true,
//	        "$itemOptions": mapper.Mapping{"secret": "ignore"},
//	    },
//	    "email": "mask.email",
//	}
//
// Reserved keys:
//
//   - $handler: handler name, Handler value, or a per-direction pair
//   - $default: handler name for properties without their own entry
//   - $create: builds the object the object handler populates
//   - $type: builds the complete model; its result is not recursed into
//   - $key: property name or KeyFunc identifying sequence items
//   - $merge: append to, or reconcile with, the existing sequence
//   - $itemOptions: options for sequence items, or a function returning them
//   - $fromJS / $toJS: a sub-tree replacing the mapping for one direction
//
// # Handlers
//
// Five handlers are built in: object, array, value, copy and ignore. Masking
// handlers are registered under "mask.<type>" names. Custom handlers are
// registered by name with Register, or placed directly in a Mapping.
//
// # Wrapping
//
// Wrap selects whether a FromJS result is placed in a container. WrapAuto
// writes into the target when one is given and otherwise returns the bare
// result, except for arrays, which always get a new sequence. WrapOn always
// returns a container; WrapOff returns the bare result and leaves the target
// untouched. Object properties are always mapped with WrapOn.
//
// # Basic Usage
//
//	model, err := mapper.FromJS(plain, opts, nil, mapper.WrapAuto)
//	...
//	out, err := mapper.ToJS(model, opts)
//
// # Codecs
//
// Decode and Encode bridge a Codec to the engine. Codec implementations are
// available as submodules: json, yaml, msgpack and bson.
//
// # Observability
//
// The engine emits capitan signals for every public call; see signals.go.
package mapper

import "context"

// FromJS maps source to its reactive form using the default Mapper.
func FromJS(source, options, target any, wrap Wrap) (any, error) {
	return Default().FromJS(context.Background(), source, options, target, wrap)
}

// ToJS maps a reactive value back to plain data using the default Mapper.
func ToJS(source, options any) (any, error) {
	return Default().ToJS(context.Background(), source, options)
}

// Decode unmarshals data with codec and maps it using the default Mapper.
func Decode(codec Codec, data []byte, options, target any, wrap Wrap) (any, error) {
	return Default().Decode(context.Background(), codec, data, options, target, wrap)
}

// Encode maps model to plain data and marshals it with codec using the
// default Mapper.
func Encode(codec Codec, model, options any) ([]byte, error) {
	return Default().Encode(context.Background(), codec, model, options)
}

// Fingerprint returns the digest of model's plain form using the default
// Mapper.
func Fingerprint(model, options any) (string, error) {
	return Default().Fingerprint(context.Background(), model, options)
}
