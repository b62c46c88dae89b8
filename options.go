package mapper

import "strings"

// Mapping is a raw options tree. Keys starting with "$" configure the node
// itself; every other key holds the options of the property of that name.
//
//	mapper.Mapping{
//	    "$default": "copy",
//	    "children": mapper.Mapping{
//	        "$key":   "id",
//	        "$merge": true,
//	    },
//	    "password": "ignore",
//	}
type Mapping map[string]any

// Reserved option keys.
const (
	KeyHandler     = "$handler"
	KeyDefault     = "$default"
	KeyCreate      = "$create"
	KeyType        = "$type"
	KeyKey         = "$key"
	KeyMerge       = "$merge"
	KeyItemOptions = "$itemOptions"
	KeyFromJS      = "$fromJS"
	KeyToJS        = "$toJS"
)

// reservedPrefix marks keys that configure the node rather than a property.
const reservedPrefix = "$"

// Direction is the mapping direction an options tree is resolved for.
type Direction int

const (
	DirFromJS Direction = iota
	DirToJS
)

func (d Direction) String() string {
	if d == DirToJS {
		return "toJS"
	}
	return "fromJS"
}

// CreateFunc builds the object the object handler populates.
type CreateFunc func(c *Context) (any, error)

// Constructor builds a complete model from the plain source. The engine does
// not recurse into its result.
type Constructor func(source any) (any, error)

// KeyFunc returns the identity of a sequence item. It is called with plain
// source items and with existing, possibly reactive, target items.
type KeyFunc func(item any) (any, error)

// Options is the resolved descriptor of one mapping node for one direction.
type Options struct {
	// Handler is the explicit handler name, empty for auto-resolution.
	Handler HandlerName

	// Custom is an explicit handler value; it wins over Handler.
	Custom Handler

	// Default is the handler name used for properties without their own entry.
	Default HandlerName

	Create  CreateFunc
	Type    Constructor
	Key     string
	KeyFunc KeyFunc
	Merge   bool

	// Raw is the options value this descriptor was resolved from.
	Raw any

	items      any
	properties map[string]any
}

// ItemOptions returns the raw options for sequence items. A function value is
// invoked on every call.
func (o *Options) ItemOptions() any {
	switch f := o.items.(type) {
	case func() any:
		return f()
	case func() Mapping:
		return f()
	default:
		return o.items
	}
}

// Property returns the raw options of the named property, falling back to
// the default handler.
func (o *Options) Property(name string) any {
	if v, ok := o.properties[name]; ok {
		return v
	}
	if o.Default != "" {
		return o.Default
	}
	return nil
}

// keyed reports whether sequence items are matched by identity.
func (o *Options) keyed() bool {
	return o.Key != "" || o.KeyFunc != nil
}

// resolveOptions normalizes a raw options value for dir.
func resolveOptions(raw any, dir Direction) (*Options, error) {
	opts := &Options{Raw: raw}
	switch t := raw.(type) {
	case nil:
	case string:
		opts.Handler = HandlerName(t)
	case HandlerName:
		opts.Handler = t
	case Handler:
		opts.Custom = t
	case Mapping:
		return resolveMapping(t, raw, dir)
	case map[string]any:
		return resolveMapping(Mapping(t), raw, dir)
	default:
		return nil, newOptionsError("", raw)
	}
	return opts, nil
}

// resolveMapping resolves a Mapping. A directional sub-tree replaces the
// whole mapping for its direction.
func resolveMapping(m Mapping, raw any, dir Direction) (*Options, error) {
	directional := KeyFromJS
	if dir == DirToJS {
		directional = KeyToJS
	}
	if sub, ok := m[directional]; ok {
		return resolveOptions(sub, dir)
	}

	opts := &Options{Raw: raw}
	for key, val := range m {
		if !strings.HasPrefix(key, reservedPrefix) {
			if opts.properties == nil {
				opts.properties = make(map[string]any)
			}
			opts.properties[key] = val
			continue
		}
		if err := opts.set(key, val, dir); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

func (o *Options) set(key string, val any, dir Direction) error {
	switch key {
	case KeyFromJS, KeyToJS:
		// The other direction's sub-tree.
	case KeyHandler:
		return o.setHandler(val, dir)
	case KeyDefault:
		name, ok := handlerNameOf(val)
		if !ok {
			return newOptionsError(key, val)
		}
		o.Default = name
	case KeyCreate:
		switch f := val.(type) {
		case CreateFunc:
			o.Create = f
		case func(*Context) (any, error):
			o.Create = f
		default:
			return newOptionsError(key, val)
		}
	case KeyType:
		switch f := val.(type) {
		case Constructor:
			o.Type = f
		case func(any) (any, error):
			o.Type = f
		default:
			return newOptionsError(key, val)
		}
	case KeyKey:
		switch f := val.(type) {
		case string:
			o.Key = f
		case KeyFunc:
			o.KeyFunc = f
		case func(any) (any, error):
			o.KeyFunc = f
		default:
			return newOptionsError(key, val)
		}
	case KeyMerge:
		b, ok := val.(bool)
		if !ok {
			return newOptionsError(key, val)
		}
		o.Merge = b
	case KeyItemOptions:
		switch val.(type) {
		case nil, string, HandlerName, Handler, Mapping, map[string]any, func() any, func() Mapping:
			o.items = val
		default:
			return newOptionsError(key, val)
		}
	default:
		return newOptionsError(key, val)
	}
	return nil
}

// setHandler applies a `$handler` value for dir.
func (o *Options) setHandler(val any, dir Direction) error {
	switch t := val.(type) {
	case Handlers:
		if dir == DirToJS {
			return o.setSide(t.ToJS, dir)
		}
		return o.setSide(t.FromJS, dir)
	case Mapping:
		return o.setSide(t[dir.String()], dir)
	case map[string]any:
		return o.setSide(t[dir.String()], dir)
	default:
		return o.setSide(val, dir)
	}
}

// setSide applies the handler selected for one direction. A function typed
// for the other direction leaves this one to auto-resolution, so a mapping
// written for FromJS still serves ToJS.
func (o *Options) setSide(side any, dir Direction) error {
	if name, ok := handlerNameOf(side); ok {
		o.Handler = name
		return nil
	}
	switch f := side.(type) {
	case nil:
		return nil
	case Handler:
		o.Custom = f
		return nil
	case FromJSFunc:
		return o.setFromJSFunc(f, dir)
	case func(*Context, any, any, Wrap) (any, error):
		return o.setFromJSFunc(f, dir)
	case ToJSFunc:
		return o.setToJSFunc(f, dir)
	case func(*Context, any) (any, error):
		return o.setToJSFunc(f, dir)
	}
	return newOptionsError(KeyHandler, side)
}

func (o *Options) setFromJSFunc(f FromJSFunc, dir Direction) error {
	if dir == DirFromJS {
		o.Custom = funcHandler{fromJS: f}
	}
	return nil
}

func (o *Options) setToJSFunc(f ToJSFunc, dir Direction) error {
	if dir == DirToJS {
		o.Custom = funcHandler{toJS: f}
	}
	return nil
}

func handlerNameOf(v any) (HandlerName, bool) {
	switch t := v.(type) {
	case string:
		return HandlerName(t), true
	case HandlerName:
		return t, true
	default:
		return "", false
	}
}
