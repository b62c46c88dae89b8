package mapper

import (
	"fmt"
	"reflect"
)

// origin records who built the object the handler returns.
type origin int

const (
	// engineBuilt objects are populated property by property.
	engineBuilt origin = iota

	// userBuilt objects come from a Constructor and are returned as is.
	userBuilt

	// inPlace objects already sit in the target cell and are repopulated.
	inPlace
)

// objectHandler maps keyed objects property by property.
type objectHandler struct{}

func (objectHandler) FromJS(c *Context, value, target any, wrap Wrap) (any, error) {
	source := unwrap(value)

	var (
		object Keyed
		cell   Writable
	)
	if !isNil(target) {
		if _, ok := target.(Container); ok {
			cell = writableTarget(target)
		} else if k, ok := asKeyed(target); ok && mutable(target) {
			object = k
		}
	}

	if !wrap.effective(object != nil || cell != nil) {
		cell = nil
	} else if object != nil {
		if err := populate(c, target, object, source); err != nil {
			return nil, err
		}
		return target, nil
	}

	instance, from, err := instanceFor(c, cell, source)
	if err != nil {
		return nil, err
	}
	if from != userBuilt {
		k, ok := asKeyed(instance)
		if !ok {
			return nil, fmt.Errorf("%w: created %T", ErrNotKeyed, instance)
		}
		if err := populate(c, instance, k, source); err != nil {
			return nil, err
		}
	}

	if !wrap.effective(cell != nil) {
		return instance, nil
	}
	if cell != nil {
		if from != inPlace {
			cell.Set(instance)
		}
		return cell, nil
	}
	return c.mapper.reactorOrDefault().NewCell(instance), nil
}

// instanceFor picks the object to return: the keyed value already held by
// the target cell, then Create, then Type, then a fresh Model.
func instanceFor(c *Context, cell Writable, source any) (any, origin, error) {
	opts := c.Options
	if cell != nil {
		current := unwrap(cell.Get())
		if _, ok := asKeyed(current); ok && mutable(current) {
			return current, inPlace, nil
		}
	}

	switch {
	case opts.Create != nil:
		instance, err := opts.Create(c)
		return instance, engineBuilt, err
	case opts.Type != nil:
		instance, err := opts.Type(source)
		return instance, userBuilt, err
	default:
		return Model{}, engineBuilt, nil
	}
}

// mutable reports whether a keyed value can be repopulated in place.
// Struct values held by copy cannot.
func mutable(v any) bool {
	if isNil(v) {
		return false
	}
	if _, ok := v.(Keyed); ok {
		return true
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Map || k == reflect.Ptr
}

// populate maps every property of source into dst. object is the instance
// pushed onto the parent chain; dst is its keyed view.
func populate(c *Context, object any, dst Keyed, source any) error {
	if isNil(source) {
		return nil
	}
	src, ok := asKeyed(source)
	if !ok {
		return fmt.Errorf("%w: source %T", ErrNotKeyed, source)
	}

	parents := c.within(object)
	for _, key := range src.Keys() {
		value, _ := src.Get(key)
		existing, _ := dst.Get(key)
		if IsDerived(existing) {
			continue
		}

		mapped, err := c.mapper.fromJS(c.ctx, parents, value, c.Options.Property(key), existing, WrapOn)
		if err != nil {
			return err
		}
		if IsIgnored(mapped) {
			continue
		}
		if err := dst.Set(key, mapped); err != nil {
			return err
		}
	}
	return nil
}

func (objectHandler) ToJS(c *Context, value any) (any, error) {
	source := unwrapAll(value)
	out := make(map[string]any)
	if isNil(source) {
		return out, nil
	}
	src, ok := asKeyed(source)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotKeyed, source)
	}

	parents := c.within(source)
	for _, key := range src.Keys() {
		v, _ := src.Get(key)
		plain, err := c.mapper.toJS(c.ctx, parents, v, c.Options.Property(key))
		if err != nil {
			return nil, err
		}
		if IsIgnored(plain) {
			continue
		}
		out[key] = plain
	}
	return out, nil
}
