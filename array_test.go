package mapper_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/zoobzio/mapper"
	"github.com/zoobzio/mapper/reactive"
)

func TestArray_WrapsInSequence(t *testing.T) {
	source := simpleArray()

	result, err := mapper.FromJS(source, nil, nil, mapper.WrapAuto)
	if err != nil {
		t.Fatalf("FromJS error: %v", err)
	}
	seq, ok := result.(mapper.Sequence)
	if !ok {
		t.Fatalf("FromJS() = %T, want a sequence", result)
	}
	if sameRef(seq.Items(), source) {
		t.Error("sequence should not share the source slice")
	}
	if !reflect.DeepEqual(seq.Items(), source) {
		t.Errorf("Items() = %v, want %v", seq.Items(), source)
	}
}

func TestArray_Target(t *testing.T) {
	tests := []struct {
		name     string
		wrap     mapper.Wrap
		replaced bool
	}{
		{"wrap on", mapper.WrapOn, true},
		{"wrap auto", mapper.WrapAuto, true},
		{"wrap off", mapper.WrapOff, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := reactive.NewArray(simpleArray()...)

			result, err := mapper.FromJS(simpleArray2(), nil, target, tt.wrap)
			if err != nil {
				t.Fatalf("FromJS error: %v", err)
			}

			if got := result == any(target); got != tt.replaced {
				t.Errorf("result is target = %v, want %v", got, tt.replaced)
			}
			want := simpleArray()
			if tt.replaced {
				want = simpleArray2()
			}
			if !reflect.DeepEqual(target.Items(), want) {
				t.Errorf("target = %v, want %v", target.Items(), want)
			}
			if !tt.replaced && !reflect.DeepEqual(result, simpleArray2()) {
				t.Errorf("FromJS() = %v, want the bare mapped items", result)
			}
		})
	}
}

func TestArray_TargetCellHoldingSlice(t *testing.T) {
	target := reactive.NewObservable([]any{"old"})

	result, err := mapper.FromJS(simpleArray(), nil, target, mapper.WrapAuto)
	if err != nil {
		t.Fatalf("FromJS error: %v", err)
	}
	if result != any(target) {
		t.Error("FromJS() should return the target cell")
	}
	if !reflect.DeepEqual(target.Get(), simpleArray()) {
		t.Errorf("target = %v, want %v", target.Get(), simpleArray())
	}
}

func TestArray_Merge(t *testing.T) {
	target := reactive.NewArray(simpleArray()...)

	result, err := mapper.FromJS(simpleArray2(), mapper.Mapping{"$merge": true}, target, mapper.WrapAuto)
	if err != nil {
		t.Fatalf("FromJS error: %v", err)
	}
	if result != any(target) {
		t.Error("FromJS() should return the target")
	}
	want := append(simpleArray(), simpleArray2()...)
	if !reflect.DeepEqual(target.Items(), want) {
		t.Errorf("Items() = %v, want %v", target.Items(), want)
	}
}

func TestArray_MergeIntoCell(t *testing.T) {
	existing := []any{"a"}
	target := reactive.NewObservable(existing)

	if _, err := mapper.FromJS([]any{"b"}, mapper.Mapping{"$merge": true}, target, mapper.WrapAuto); err != nil {
		t.Fatalf("FromJS error: %v", err)
	}
	if want := []any{"a", "b"}; !reflect.DeepEqual(target.Get(), want) {
		t.Errorf("target = %v, want %v", target.Get(), want)
	}
	if len(existing) != 1 {
		t.Error("the previous slice should not be modified")
	}
}

func TestArray_KeyedMerge(t *testing.T) {
	target := reactive.NewArray(complexArray()...)
	opts := mapper.Mapping{
		"$key":         "FirstName",
		"$merge":       true,
		"$itemOptions": mapper.Mapping{"$default": "copy"},
	}

	result, err := mapper.FromJS(complexArray2(), opts, target, mapper.WrapAuto)
	if err != nil {
		t.Fatalf("FromJS error: %v", err)
	}
	if result != any(target) {
		t.Error("FromJS() should return the target")
	}

	plain, err := mapper.ToJS(target, nil)
	if err != nil {
		t.Fatalf("ToJS error: %v", err)
	}
	want := []any{
		map[string]any{"FirstName": "Mary", "Age": 22},
		map[string]any{"FirstName": "William", "Age": 21},
		map[string]any{"FirstName": "Linda", "Age": 23},
		map[string]any{"FirstName": "James", "Age": 24},
	}
	if !reflect.DeepEqual(plain, want) {
		t.Errorf("ToJS() = %v, want %v", plain, want)
	}
}

func TestArray_KeyedMergeUpdatesInPlace(t *testing.T) {
	model, err := mapper.FromJS(complexArray(), nil, nil, mapper.WrapAuto)
	if err != nil {
		t.Fatalf("FromJS error: %v", err)
	}
	seq := model.(mapper.Sequence)
	mary := seq.Items()[0]
	age := get(t, mary, "Age")

	opts := mapper.Mapping{"$key": "FirstName", "$merge": true}
	if _, err := mapper.FromJS(complexArray2(), opts, seq, mapper.WrapAuto); err != nil {
		t.Fatalf("FromJS error: %v", err)
	}

	items := seq.Items()
	if len(items) != 4 {
		t.Fatalf("len = %d, want 4", len(items))
	}
	if !sameRef(items[0], mary) {
		t.Error("matched item should keep its identity and position")
	}
	if get(t, items[0], "Age") != age {
		t.Error("matched item should keep its cells")
	}
	if got := cellValue(t, age); got != 22 {
		t.Errorf("Age = %v, want 22", got)
	}
}

func TestArray_KeyedReplace(t *testing.T) {
	model, err := mapper.FromJS(complexArray(), nil, nil, mapper.WrapAuto)
	if err != nil {
		t.Fatalf("FromJS error: %v", err)
	}
	seq := model.(mapper.Sequence)
	mary := seq.Items()[0]

	source := []any{
		map[string]any{"FirstName": "Linda", "Age": 23},
		map[string]any{"FirstName": "Mary", "Age": 30},
	}
	if _, err := mapper.FromJS(source, mapper.Mapping{"$key": "FirstName"}, seq, mapper.WrapAuto); err != nil {
		t.Fatalf("FromJS error: %v", err)
	}

	items := seq.Items()
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2 (William dropped)", len(items))
	}
	if got := cellValue(t, get(t, items[0], "FirstName")); got != "Linda" {
		t.Errorf("items[0] = %v, want Linda", got)
	}
	if !sameRef(items[1], mary) {
		t.Error("Mary should be the existing item, moved to source order")
	}
}

type keyedItem struct {
	ID   int    `mapper:"id"`
	Name string `mapper:"name"`
}

func TestArray_KeyedMergeNumericKeys(t *testing.T) {
	existing := &keyedItem{ID: 1, Name: "a"}
	target := reactive.NewArray(existing)
	opts := mapper.Mapping{"$key": "id", "$merge": true}

	source := []any{
		map[string]any{"id": float64(1), "name": "b"},
		map[string]any{"id": float64(2), "name": "c"},
	}
	if _, err := mapper.FromJS(source, opts, target, mapper.WrapAuto); err != nil {
		t.Fatalf("FromJS error: %v", err)
	}

	items := target.Items()
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2 (id 1 updated, id 2 appended)", len(items))
	}
	if items[0] != any(existing) {
		t.Errorf("items[0] = %v, want the existing item", items[0])
	}
	if existing.Name != "b" {
		t.Errorf("Name = %q, want b", existing.Name)
	}
}

func TestArray_KeyedReplaceDuplicateSourceKeys(t *testing.T) {
	model, err := mapper.FromJS([]any{map[string]any{"id": 1, "v": 1}}, nil, nil, mapper.WrapAuto)
	if err != nil {
		t.Fatalf("FromJS error: %v", err)
	}
	seq := model.(mapper.Sequence)
	first := seq.Items()[0]

	source := []any{
		map[string]any{"id": 1, "v": 2},
		map[string]any{"id": 1, "v": 3},
	}
	if _, err := mapper.FromJS(source, mapper.Mapping{"$key": "id"}, seq, mapper.WrapAuto); err != nil {
		t.Fatalf("FromJS error: %v", err)
	}

	items := seq.Items()
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if !sameRef(items[0], first) {
		t.Error("the first source item should update the existing item")
	}
	if sameRef(items[1], first) {
		t.Error("an existing item should be matched by one source item only")
	}
	if got := cellValue(t, get(t, items[0], "v")); got != 2 {
		t.Errorf("items[0].v = %v, want 2", got)
	}
	if got := cellValue(t, get(t, items[1], "v")); got != 3 {
		t.Errorf("items[1].v = %v, want 3", got)
	}
}

func TestArray_KeyFunction(t *testing.T) {
	target := reactive.NewArray(complexArray()...)
	opts := mapper.Mapping{
		"$key": func(item any) (any, error) {
			plain, err := mapper.ToJS(item, nil)
			if err != nil {
				return nil, err
			}
			return plain.(map[string]any)["FirstName"], nil
		},
		"$merge":       true,
		"$itemOptions": "copy",
	}

	source := []any{map[string]any{"FirstName": "William", "Age": 99}}
	if _, err := mapper.FromJS(source, opts, target, mapper.WrapAuto); err != nil {
		t.Fatalf("FromJS error: %v", err)
	}
	if target.Len() != 2 {
		t.Errorf("len = %d, want 2", target.Len())
	}
	if !reflect.DeepEqual(target.At(1), source[0]) {
		t.Errorf("At(1) = %v, want the copied source item", target.At(1))
	}
}

func TestArray_UnkeyableKey(t *testing.T) {
	target := reactive.NewArray(map[string]any{"id": []any{1}})

	_, err := mapper.FromJS([]any{map[string]any{"id": []any{1}}}, mapper.Mapping{"$key": "id"}, target, mapper.WrapAuto)
	if !errors.Is(err, mapper.ErrUnkeyable) {
		t.Errorf("FromJS() error = %v, want ErrUnkeyable", err)
	}
}

func TestArray_ItemOptionsFunction(t *testing.T) {
	calls := 0
	opts := mapper.Mapping{
		"$itemOptions": func() mapper.Mapping {
			calls++
			return mapper.Mapping{"LastName": "ignore"}
		},
	}
	source := []any{
		map[string]any{"FirstName": "Mary", "LastName": "Smith"},
		map[string]any{"FirstName": "William", "LastName": "Jones"},
	}

	result, err := mapper.FromJS(source, opts, nil, mapper.WrapAuto)
	if err != nil {
		t.Fatalf("FromJS error: %v", err)
	}
	items := result.(mapper.Sequence).Items()
	if len(items) != len(source) {
		t.Fatalf("len = %d, want %d", len(items), len(source))
	}
	if got := cellValue(t, get(t, items[0], "FirstName")); got != "Mary" {
		t.Errorf("FirstName = %v, want Mary", got)
	}
	if _, ok := items[0].(mapper.Model)["LastName"]; ok {
		t.Error("LastName should be ignored")
	}
	if calls == 0 {
		t.Error("$itemOptions function was not called")
	}
}

func TestArray_Nested(t *testing.T) {
	source := []any{[]any{1, 2}, []any{3, 4}}

	result, err := mapper.FromJS(source, nil, nil, mapper.WrapAuto)
	if err != nil {
		t.Fatalf("FromJS error: %v", err)
	}
	items := result.(mapper.Sequence).Items()
	for i, item := range items {
		inner, ok := item.(mapper.Sequence)
		if !ok {
			t.Fatalf("items[%d] = %T, want a sequence", i, item)
		}
		if !reflect.DeepEqual(inner.Items(), source[i]) {
			t.Errorf("items[%d] = %v, want %v", i, inner.Items(), source[i])
		}
	}
}

func TestArray_IgnoredItemsDropped(t *testing.T) {
	source := []any{"a", func() {}, "b"}

	result, err := mapper.FromJS(source, nil, nil, mapper.WrapAuto)
	if err != nil {
		t.Fatalf("FromJS error: %v", err)
	}
	if want := []any{"a", "b"}; !reflect.DeepEqual(result.(mapper.Sequence).Items(), want) {
		t.Errorf("Items() = %v, want %v", result.(mapper.Sequence).Items(), want)
	}

	plain, err := mapper.ToJS(reactive.NewArray("a", "secret", "b"), mapper.Mapping{
		"$itemOptions": mapper.Mapping{
			"$handler": mapper.Handlers{ToJS: mapper.ToJSFunc(func(_ *mapper.Context, v any) (any, error) {
				if v == "secret" {
					return mapper.Ignore, nil
				}
				return v, nil
			})},
		},
	})
	if err != nil {
		t.Fatalf("ToJS error: %v", err)
	}
	if want := []any{"a", "b"}; !reflect.DeepEqual(plain, want) {
		t.Errorf("ToJS() = %v, want %v", plain, want)
	}
}

func TestArray_ToJS(t *testing.T) {
	result, err := mapper.ToJS(reactive.NewArray(complexArray()...), nil)
	if err != nil {
		t.Fatalf("ToJS error: %v", err)
	}
	if !reflect.DeepEqual(result, complexArray()) {
		t.Errorf("ToJS() = %v, want %v", result, complexArray())
	}
}

func TestArray_TypedSlice(t *testing.T) {
	result, err := mapper.ToJS([]int{1, 2, 3}, nil)
	if err != nil {
		t.Fatalf("ToJS error: %v", err)
	}
	if want := []any{1, 2, 3}; !reflect.DeepEqual(result, want) {
		t.Errorf("ToJS() = %v, want %v", result, want)
	}
}
