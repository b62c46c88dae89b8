package mapper_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/zoobzio/mapper"
	"github.com/zoobzio/mapper/reactive"
)

// testCodec is a simple JSON codec for testing without importing mapper/json.
type testCodec struct{}

func (c *testCodec) ContentType() string { return "application/json" }

func (c *testCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (c *testCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func simpleObject() map[string]any {
	return map[string]any{
		"FirstName": "John",
		"LastName":  "Doe",
	}
}

// SimpleModel holds its names in cells and derives FullName from them.
type SimpleModel struct {
	FirstName *reactive.Observable
	LastName  *reactive.Observable
	FullName  *reactive.Computed
}

func newSimpleModel(data map[string]any) *SimpleModel {
	m := &SimpleModel{
		FirstName: reactive.NewObservable(data["FirstName"]),
		LastName:  reactive.NewObservable(data["LastName"]),
	}
	m.FullName = reactive.NewComputed(func() any {
		first, _ := m.FirstName.Get().(string)
		last, _ := m.LastName.Get().(string)
		return first + " " + last
	}, m.FirstName, m.LastName)
	return m
}

// simpleModelType is a Constructor building a SimpleModel from plain data.
func simpleModelType(source any) (any, error) {
	data, _ := source.(map[string]any)
	return newSimpleModel(data), nil
}

func simpleArray() []any  { return []any{"Mary", "William"} }
func simpleArray2() []any { return []any{"Mary", "Linda", "James"} }

func complexArray() []any {
	return []any{
		map[string]any{"FirstName": "Mary", "Age": 20},
		map[string]any{"FirstName": "William", "Age": 21},
	}
}

func complexArray2() []any {
	return []any{
		map[string]any{"FirstName": "Mary", "Age": 22},
		map[string]any{"FirstName": "Linda", "Age": 23},
		map[string]any{"FirstName": "James", "Age": 24},
	}
}

// get reads a property of a keyed model.
func get(t testing.TB, model any, key string) any {
	t.Helper()
	obj, ok := model.(mapper.Model)
	if !ok {
		t.Fatalf("model is %T, want mapper.Model", model)
	}
	return obj[key]
}

// cellValue returns the value held by a container.
func cellValue(t testing.TB, v any) any {
	t.Helper()
	c, ok := v.(mapper.Container)
	if !ok {
		t.Fatalf("%T is not a container", v)
	}
	return c.Get()
}

// sameRef reports whether a and b are the same map, slice or pointer.
func sameRef(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() != rb.Kind() || ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Map, reflect.Slice, reflect.Ptr, reflect.Func:
		return ra.Pointer() == rb.Pointer()
	default:
		return a == b
	}
}
