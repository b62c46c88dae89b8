package mapper

import (
	"encoding"
	"fmt"
	"reflect"
)

// Container is a reactive box holding a current value.
type Container interface {
	Get() any
}

// Writable is a container that accepts new values.
type Writable interface {
	Container
	Set(v any)
}

// Derived is a container whose value is computed from other containers.
type Derived interface {
	Container
	Derived() bool
}

// Sequence is an ordered, mutable container of items.
type Sequence interface {
	Writable
	Items() []any
	Replace(items []any)
	Push(items ...any)
}

// Kind is the structural class of a value.
type Kind int

const (
	KindPrimitive Kind = iota
	KindObject
	KindSequence
	KindCallable

	// KindTotal is the number of kinds.
	KindTotal = int(iota)
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindObject:
		return "object"
	case KindSequence:
		return "sequence"
	case KindCallable:
		return "callable"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// kindHandlers maps every kind to the handler auto-resolution selects for it.
var kindHandlers = [KindTotal]HandlerName{
	KindPrimitive: HandlerValue,
	KindObject:    HandlerObject,
	KindSequence:  HandlerArray,
	KindCallable:  HandlerIgnore,
}

var textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()

// Classify returns the kind of v after unwrapping containers. Sequence
// containers classify as sequences without being unwrapped.
func Classify(v any) Kind {
	v = unwrap(v)
	if v == nil {
		return KindPrimitive
	}

	switch v.(type) {
	case Sequence:
		if isNil(v) {
			return KindPrimitive
		}
		return KindSequence
	case Keyed:
		return KindObject
	}

	rt := reflect.TypeOf(v)
	if rt.Implements(textMarshalerType) {
		return KindPrimitive
	}

	switch rt.Kind() {
	case reflect.Func:
		return KindCallable
	case reflect.Slice:
		if rt.Elem().Kind() == reflect.Uint8 {
			return KindPrimitive
		}
		return KindSequence
	case reflect.Array:
		return KindSequence
	case reflect.Map:
		if rt.Key().Kind() == reflect.String {
			return KindObject
		}
		return KindPrimitive
	case reflect.Struct:
		return KindObject
	case reflect.Ptr:
		if rt.Elem().Kind() == reflect.Struct && !reflect.ValueOf(v).IsNil() {
			return KindObject
		}
		return KindPrimitive
	default:
		return KindPrimitive
	}
}

// ResolveFromJSHandler returns the handler name FromJS selects for v when no
// explicit handler is configured.
func ResolveFromJSHandler(v any) HandlerName {
	return kindHandlers[Classify(v)]
}

// ResolveToJSHandler returns the handler name ToJS selects for v when no
// explicit handler is configured.
func ResolveToJSHandler(v any) HandlerName {
	return kindHandlers[Classify(v)]
}

// IsContainer reports whether v is a non-nil reactive container.
func IsContainer(v any) bool {
	_, ok := v.(Container)
	return ok && !isNil(v)
}

// IsDerived reports whether v is a non-nil derived container.
func IsDerived(v any) bool {
	d, ok := v.(Derived)
	return ok && !isNil(v) && d.Derived()
}

// IsSequence reports whether v is a non-nil sequence container.
func IsSequence(v any) bool {
	_, ok := v.(Sequence)
	return ok && !isNil(v)
}

// unwrap strips container layers until a plain value or a sequence remains.
func unwrap(v any) any {
	for {
		if _, ok := v.(Sequence); ok {
			return v
		}
		c, ok := v.(Container)
		if !ok || isNil(v) {
			return v
		}
		v = c.Get()
	}
}

// unwrapAll strips every container layer, sequences included.
func unwrapAll(v any) any {
	for {
		c, ok := v.(Container)
		if !ok || isNil(v) {
			return v
		}
		v = c.Get()
	}
}

// isNil reports whether v is nil or a nil pointer, map, slice, func or interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
