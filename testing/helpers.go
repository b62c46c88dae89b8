// Package testing provides fixtures and assertions for mapper tests.
package testing

import (
	"context"
	"testing"

	"github.com/zoobzio/mapper"
	"github.com/zoobzio/mapper/reactive"
)

// SimpleObject returns a plain object tree exercising every kind.
func SimpleObject() map[string]any {
	return map[string]any{
		"name":   "Alice",
		"age":    float64(30),
		"active": true,
		"email":  "alice@example.com",
		"address": map[string]any{
			"city": "Lisbon",
			"zip":  "1000-001",
		},
		"tags": []any{"admin", "ops"},
	}
}

// SimpleArray returns a plain sequence of keyed items.
func SimpleArray() []any {
	return []any{
		map[string]any{"id": float64(1), "name": "one"},
		map[string]any{"id": float64(2), "name": "two"},
		map[string]any{"id": float64(3), "name": "three"},
	}
}

// Person is a struct model holding its properties in cells, with a derived
// cell the engine never writes.
type Person struct {
	First    *reactive.Observable `mapper:"first"`
	Last     *reactive.Observable `mapper:"last"`
	FullName *reactive.Computed   `mapper:"fullName"`
}

// NewPerson returns a Person whose FullName follows First and Last.
func NewPerson() *Person {
	p := &Person{
		First: reactive.NewObservable(""),
		Last:  reactive.NewObservable(""),
	}
	p.FullName = reactive.NewComputed(func() any {
		first, _ := p.First.Get().(string)
		last, _ := p.Last.Get().(string)
		return first + " " + last
	}, p.First, p.Last)
	return p
}

// PersonOptions returns options building every mapped object as a Person.
func PersonOptions() mapper.Mapping {
	return mapper.Mapping{
		"$create": func(*mapper.Context) (any, error) { return NewPerson(), nil },
	}
}

// RoundTrip maps v with FromJS and back with ToJS on a fresh Mapper.
func RoundTrip(tb testing.TB, v, options any) any {
	tb.Helper()
	m := mapper.New()

	model, err := m.FromJS(context.Background(), v, options, nil, mapper.WrapAuto)
	if err != nil {
		tb.Fatalf("FromJS error: %v", err)
	}
	out, err := m.ToJS(context.Background(), model, options)
	if err != nil {
		tb.Fatalf("ToJS error: %v", err)
	}
	return out
}

// AssertSameData fails tb unless got and want share a fingerprint.
func AssertSameData(tb testing.TB, got, want any) {
	tb.Helper()
	gotSum, err := mapper.Fingerprint(got, nil)
	if err != nil {
		tb.Fatalf("Fingerprint(got) error: %v", err)
	}
	wantSum, err := mapper.Fingerprint(want, nil)
	if err != nil {
		tb.Fatalf("Fingerprint(want) error: %v", err)
	}
	if gotSum != wantSum {
		tb.Errorf("data differs:\n got: %#v\nwant: %#v", got, want)
	}
}
