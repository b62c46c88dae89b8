package mapper

// Wrap selects whether a mapped value is placed in a reactive container.
type Wrap int

const (
	// WrapAuto wraps when a usable target is given.
	WrapAuto Wrap = iota

	// WrapOn always wraps, allocating a container when there is no target.
	WrapOn

	// WrapOff never wraps; the target is left untouched.
	WrapOff
)

func (w Wrap) String() string {
	switch w {
	case WrapOn:
		return "on"
	case WrapOff:
		return "off"
	default:
		return "auto"
	}
}

// effective resolves the wrap mode against the presence of a usable target.
func (w Wrap) effective(hasTarget bool) bool {
	switch w {
	case WrapOn:
		return true
	case WrapOff:
		return false
	default:
		return hasTarget
	}
}

// writableTarget returns target as a writable container, or nil when target
// cannot receive a value.
func writableTarget(target any) Writable {
	if isNil(target) {
		return nil
	}
	w, ok := target.(Writable)
	if !ok {
		return nil
	}
	return w
}

// valueHandler wraps and unwraps single values without recursion.
type valueHandler struct{}

func (valueHandler) FromJS(c *Context, value, target any, wrap Wrap) (any, error) {
	v := unwrapAll(value)
	cell := writableTarget(target)
	if !wrap.effective(cell != nil) {
		return v, nil
	}
	if cell != nil {
		cell.Set(v)
		return cell, nil
	}
	return c.mapper.reactorOrDefault().NewCell(v), nil
}

func (valueHandler) ToJS(_ *Context, value any) (any, error) {
	return unwrapAll(value), nil
}
