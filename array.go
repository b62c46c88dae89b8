package mapper

import (
	"fmt"
	"math"
	"reflect"
)

// arrayHandler maps sequences item by item.
//
// Without a target it allocates a new sequence unless wrapping is off. With a
// target it replaces the contents, appends to them ($merge), or reconciles
// them by item identity ($key).
type arrayHandler struct{}

func (arrayHandler) FromJS(c *Context, value, target any, wrap Wrap) (any, error) {
	source := itemsOf(unwrap(value))
	opts := c.Options
	itemOptions := opts.ItemOptions()

	if wrap == WrapOff {
		return mapItems(c, source, itemOptions)
	}

	cell := writableTarget(target)
	if cell == nil {
		items, err := mapItems(c, source, itemOptions)
		if err != nil {
			return nil, err
		}
		return c.mapper.reactorOrDefault().NewSequence(items), nil
	}

	existing := currentItems(cell)
	switch {
	case opts.keyed():
		items, err := reconcile(c, existing, source, itemOptions)
		if err != nil {
			return nil, err
		}
		replace(cell, items)
	case opts.Merge:
		added, err := mapItems(c, source, itemOptions)
		if err != nil {
			return nil, err
		}
		if seq, ok := cell.(Sequence); ok {
			seq.Push(added...)
		} else {
			cell.Set(append(append([]any(nil), existing...), added...))
		}
	default:
		items, err := mapItems(c, source, itemOptions)
		if err != nil {
			return nil, err
		}
		replace(cell, items)
	}
	return cell, nil
}

func (arrayHandler) ToJS(c *Context, value any) (any, error) {
	items := itemsOf(unwrap(value))
	itemOptions := c.Options.ItemOptions()

	out := make([]any, 0, len(items))
	for _, item := range items {
		plain, err := c.ToJS(item, itemOptions)
		if err != nil {
			return nil, err
		}
		if IsIgnored(plain) {
			continue
		}
		out = append(out, plain)
	}
	return out, nil
}

// mapItems maps every source item as a new item, skipping ignored ones.
func mapItems(c *Context, source []any, itemOptions any) ([]any, error) {
	items := make([]any, 0, len(source))
	for _, item := range source {
		mapped, err := c.FromJS(item, itemOptions, nil, WrapAuto)
		if err != nil {
			return nil, err
		}
		if IsIgnored(mapped) {
			continue
		}
		items = append(items, mapped)
	}
	return items, nil
}

// reconcile matches source items against existing items by key. Matched
// items are mapped onto the existing item in place. With $merge the result is
// every existing item in its original position followed by the unmatched
// source items; without it the result follows source order and unmatched
// existing items are dropped.
func reconcile(c *Context, existing, source []any, itemOptions any) ([]any, error) {
	opts := c.Options

	index := make(map[any]int, len(existing))
	for i, item := range existing {
		k, ok, err := keyOf(opts, item)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if _, dup := index[k]; !dup {
			index[k] = i
		}
	}

	kept := append([]any(nil), existing...)
	var ordered, added []any
	for _, item := range source {
		k, ok, err := keyOf(opts, item)
		if err != nil {
			return nil, err
		}

		if i, hit := index[k]; ok && hit {
			delete(index, k)
			mapped, err := c.FromJS(item, itemOptions, kept[i], WrapAuto)
			if err != nil {
				return nil, err
			}
			if IsIgnored(mapped) {
				continue
			}
			kept[i] = mapped
			ordered = append(ordered, mapped)
			continue
		}

		mapped, err := c.FromJS(item, itemOptions, nil, WrapAuto)
		if err != nil {
			return nil, err
		}
		if IsIgnored(mapped) {
			continue
		}
		added = append(added, mapped)
		ordered = append(ordered, mapped)
	}

	if opts.Merge {
		return append(kept, added...), nil
	}
	return ordered, nil
}

// keyOf returns the identity of item. ok is false for items without a key.
func keyOf(opts *Options, item any) (key any, ok bool, err error) {
	if opts.KeyFunc != nil {
		key, err = opts.KeyFunc(item)
		if err != nil {
			return nil, false, err
		}
	} else {
		obj, isKeyed := asKeyed(unwrap(item))
		if !isKeyed {
			return nil, false, nil
		}
		v, found := obj.Get(opts.Key)
		if !found {
			return nil, false, nil
		}
		key = unwrapAll(v)
	}

	if key == nil {
		return nil, false, nil
	}
	if !reflect.TypeOf(key).Comparable() {
		return nil, false, fmt.Errorf("%w: %T", ErrUnkeyable, key)
	}
	return numericKey(key), true, nil
}

// numericKey folds numbers of any Go type onto int64, or float64 when the
// value is not integral, so an int field matches a decoded float64 key.
func numericKey(key any) any {
	rv := reflect.ValueOf(key)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := rv.Uint(); u <= math.MaxInt64 {
			return int64(u)
		}
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			return int64(f)
		}
		return f
	default:
		return key
	}
}

// currentItems returns the items held by a sequence or writable cell.
func currentItems(cell Writable) []any {
	if seq, ok := cell.(Sequence); ok {
		return seq.Items()
	}
	return itemsOf(unwrap(cell.Get()))
}

func replace(cell Writable, items []any) {
	if seq, ok := cell.(Sequence); ok {
		seq.Replace(items)
		return
	}
	cell.Set(items)
}

// itemsOf converts a sequence, slice or array to []any. nil yields no items
// and any other value becomes a single item.
func itemsOf(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case Sequence:
		if isNil(t) {
			return nil
		}
		return t.Items()
	case []any:
		return t
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	default:
		return []any{v}
	}
}
