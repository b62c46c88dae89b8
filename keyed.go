package mapper

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/zoobzio/sentinel"
)

func init() {
	sentinel.Tag(tagName)
}

// tagName is the struct tag renaming or skipping a field: `mapper:"name"`, `mapper:"-"`.
const tagName = "mapper"

// Keyed is implemented by objects the engine reads and populates by property
// name. Types implementing it bypass reflection entirely, which is the
// intended path for hand-written or generated model types.
type Keyed interface {
	// Keys returns the enumerable property names.
	Keys() []string

	// Get returns the value stored under key.
	Get(key string) (any, bool)

	// Set stores value under key.
	Set(key string, value any) error
}

// Model is the keyed container the object handler creates when no target,
// create function or constructor supplies one.
type Model map[string]any

// Keys returns the property names in sorted order.
func (m Model) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value stored under key.
func (m Model) Get(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// Set stores value under key.
func (m Model) Set(key string, value any) error {
	m[key] = value
	return nil
}

// asKeyed adapts v to Keyed. Maps with string keys, structs and non-nil
// struct pointers are adapted through reflection.
func asKeyed(v any) (Keyed, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case Keyed:
		return t, true
	case map[string]any:
		return Model(t), true
	case Container:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Type().Implements(textMarshalerType) {
		return nil, false
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return &mapKeyed{rv: rv}, true
		}
	case reflect.Ptr:
		if !rv.IsNil() && rv.Elem().Kind() == reflect.Struct {
			return newStructKeyed(rv.Elem()), true
		}
	case reflect.Struct:
		return newStructKeyed(rv), true
	}
	return nil, false
}

// mapKeyed adapts string-keyed maps of any element type.
type mapKeyed struct {
	rv reflect.Value
}

func (m *mapKeyed) Keys() []string {
	keys := make([]string, 0, m.rv.Len())
	for _, k := range m.rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)
	return keys
}

func (m *mapKeyed) Get(key string) (any, bool) {
	v := m.rv.MapIndex(reflect.ValueOf(key).Convert(m.rv.Type().Key()))
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}

func (m *mapKeyed) Set(key string, value any) error {
	if m.rv.IsNil() {
		return fmt.Errorf("%w: nil %s", ErrReadOnly, m.rv.Type())
	}
	elem, err := assignable(value, m.rv.Type().Elem())
	if err != nil {
		return fmt.Errorf("key %s: %w", key, err)
	}
	m.rv.SetMapIndex(reflect.ValueOf(key).Convert(m.rv.Type().Key()), elem)
	return nil
}

// structField locates one exported field by its mapped name.
type structField struct {
	name  string
	index []int
}

var (
	fieldCache   = make(map[reflect.Type][]structField)
	fieldCacheMu sync.RWMutex
)

// RegisterModel scans T with sentinel and caches its field layout. T must be a
// struct type. Registration is optional; unregistered types are scanned on
// first use.
func RegisterModel[T any]() {
	meta := sentinel.Scan[T]()
	rt := reflect.TypeFor[T]()

	fields := make([]structField, 0, len(meta.Fields))
	for _, f := range meta.Fields {
		sf := rt.FieldByIndex(f.Index)
		if !sf.IsExported() {
			continue
		}
		tag, ok := f.Tags[tagName]
		if !ok {
			tag = sf.Tag.Get(tagName)
		}
		if name, keep := fieldName(f.Name, tag); keep {
			fields = append(fields, structField{name: name, index: f.Index})
		}
	}

	fieldCacheMu.Lock()
	fieldCache[rt] = fields
	fieldCacheMu.Unlock()
}

// fieldsOf returns the cached layout of rt, scanning it on a miss.
func fieldsOf(rt reflect.Type) []structField {
	fieldCacheMu.RLock()
	fields, ok := fieldCache[rt]
	fieldCacheMu.RUnlock()
	if ok {
		return fields
	}

	fields = scanFields(rt)

	fieldCacheMu.Lock()
	fieldCache[rt] = fields
	fieldCacheMu.Unlock()
	return fields
}

// scanFields prefers sentinel's registry and falls back to reflection.
func scanFields(rt reflect.Type) []structField {
	if meta, ok := sentinel.Lookup(rt.String()); ok {
		fields := make([]structField, 0, len(meta.Fields))
		for _, f := range meta.Fields {
			sf := rt.FieldByIndex(f.Index)
			if !sf.IsExported() {
				continue
			}
			if name, keep := fieldName(f.Name, sf.Tag.Get(tagName)); keep {
				fields = append(fields, structField{name: name, index: f.Index})
			}
		}
		return fields
	}

	fields := make([]structField, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		if name, keep := fieldName(sf.Name, sf.Tag.Get(tagName)); keep {
			fields = append(fields, structField{name: name, index: sf.Index})
		}
	}
	return fields
}

func fieldName(goName, tag string) (string, bool) {
	if tag == "-" {
		return "", false
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, true
	}
	return goName, true
}

// structKeyed adapts a struct value. Set requires an addressable value,
// which asKeyed provides for struct pointers.
type structKeyed struct {
	rv     reflect.Value
	fields []structField
}

func newStructKeyed(rv reflect.Value) *structKeyed {
	return &structKeyed{rv: rv, fields: fieldsOf(rv.Type())}
}

func (s *structKeyed) Keys() []string {
	keys := make([]string, len(s.fields))
	for i, f := range s.fields {
		keys[i] = f.name
	}
	return keys
}

func (s *structKeyed) field(key string) (reflect.Value, bool) {
	for _, f := range s.fields {
		if f.name != key {
			continue
		}
		fv, err := s.rv.FieldByIndexErr(f.index)
		if err != nil {
			return reflect.Value{}, false
		}
		return fv, true
	}
	return reflect.Value{}, false
}

func (s *structKeyed) Get(key string) (any, bool) {
	fv, ok := s.field(key)
	if !ok {
		return nil, false
	}
	return fv.Interface(), true
}

// Set ignores keys without a matching field, like encoding/json.
func (s *structKeyed) Set(key string, value any) error {
	fv, ok := s.field(key)
	if !ok {
		return nil
	}
	if !fv.CanSet() {
		return fmt.Errorf("%w: field %s of %s", ErrReadOnly, key, s.rv.Type())
	}
	v, err := assignable(value, fv.Type())
	if err != nil {
		return fmt.Errorf("field %s: %w", key, err)
	}
	fv.Set(v)
	return nil
}

// assignable converts value for storage in a location of type to. A
// container that does not fit is unwrapped into a plain field. Numeric
// values convert between numeric kinds; everything else must be assignable.
func assignable(value any, to reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(to), nil
	}
	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(to) {
		return v, nil
	}
	if IsContainer(value) {
		return assignable(unwrapAll(value), to)
	}
	if isNumeric(v.Kind()) && isNumeric(to.Kind()) {
		return v.Convert(to), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %s into %s", ErrFieldType, v.Type(), to)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
