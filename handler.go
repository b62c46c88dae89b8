package mapper

// HandlerName identifies a registered handler. The built-in names double as
// `$handler` shorthand strings.
type HandlerName string

const (
	// HandlerObject maps keyed objects property by property.
	HandlerObject HandlerName = "object"

	// HandlerArray maps sequences item by item, reconciling against a target.
	HandlerArray HandlerName = "array"

	// HandlerValue wraps and unwraps single values.
	HandlerValue HandlerName = "value"

	// HandlerIgnore drops the node from the output.
	HandlerIgnore HandlerName = "ignore"

	// HandlerCopy passes the node through untouched.
	HandlerCopy HandlerName = "copy"
)

// builtinHandlerNames contains the names every Mapper is seeded with.
var builtinHandlerNames = map[HandlerName]bool{
	HandlerObject: true,
	HandlerArray:  true,
	HandlerValue:  true,
	HandlerIgnore: true,
	HandlerCopy:   true,
}

// IsBuiltinHandler returns true if name is one of the five built-in handlers.
func IsBuiltinHandler(name HandlerName) bool {
	return builtinHandlerNames[name]
}

// ignored is the type of the Ignore sentinel.
type ignored struct{}

func (*ignored) String() string { return "mapper.Ignore" }

// Ignore is returned by a handler to omit its node: the property is dropped,
// the sequence item skipped, or the whole result discarded.
var Ignore any = &ignored{}

// IsIgnored reports whether v is the Ignore sentinel.
func IsIgnored(v any) bool {
	return v == Ignore
}

// Handler transforms one node in both directions.
//
// FromJS receives the plain source value, the node's target (nil when
// there is none) and the requested wrap mode. ToJS receives the reactive
// value. Either may return Ignore to omit the node.
type Handler interface {
	FromJS(c *Context, value, target any, wrap Wrap) (any, error)
	ToJS(c *Context, value any) (any, error)
}

// FromJSFunc is a function handler for the FromJS direction.
type FromJSFunc func(c *Context, value, target any, wrap Wrap) (any, error)

// ToJSFunc is a function handler for the ToJS direction.
type ToJSFunc func(c *Context, value any) (any, error)

// Handlers selects a handler per direction for `$handler`. Each side may be a
// handler name (string or HandlerName), a Handler, or the matching function
// type. A nil side falls back to auto-resolution.
type Handlers struct {
	FromJS any
	ToJS   any
}

// funcHandler serves one direction from a function and passes the other through.
type funcHandler struct {
	fromJS FromJSFunc
	toJS   ToJSFunc
}

func (h funcHandler) FromJS(c *Context, value, target any, wrap Wrap) (any, error) {
	if h.fromJS == nil {
		return value, nil
	}
	return h.fromJS(c, value, target, wrap)
}

func (h funcHandler) ToJS(c *Context, value any) (any, error) {
	if h.toJS == nil {
		return value, nil
	}
	return h.toJS(c, value)
}

// copyHandler returns its input unchanged in both directions.
type copyHandler struct{}

func (copyHandler) FromJS(_ *Context, value, _ any, _ Wrap) (any, error) {
	return value, nil
}

func (copyHandler) ToJS(_ *Context, value any) (any, error) {
	return value, nil
}

// ignoreHandler returns Ignore in both directions.
type ignoreHandler struct{}

func (ignoreHandler) FromJS(_ *Context, _, _ any, _ Wrap) (any, error) {
	return Ignore, nil
}

func (ignoreHandler) ToJS(_ *Context, _ any) (any, error) {
	return Ignore, nil
}
