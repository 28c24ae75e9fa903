package dict

import (
	"errors"
	"testing"
)

// build constructs a dictionary from nested map literals, failing the test
// on unstorable values.
func build(t *testing.T, m map[string]any) *Dictionary {
	t.Helper()
	d, err := FromValue(m)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return d
}

func TestMergeLastWriteWins(t *testing.T) {
	acc := build(t, map[string]any{"a": int64(1)})
	next := build(t, map[string]any{"a": int64(2), "b": int64(3)})

	if err := acc.Merge(next); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if got := acc.String(); got != `{"a": 2, "b": 3}` {
		t.Fatalf("merged state = %s", got)
	}
}

func TestMergeIsShallow(t *testing.T) {
	acc := build(t, map[string]any{
		"server": map[string]any{"host": "localhost", "port": int64(8080)},
	})
	next := build(t, map[string]any{
		"server": map[string]any{"host": "api.example.com"},
	})

	if err := acc.Merge(next); err != nil {
		t.Fatalf("merge: %v", err)
	}
	server, _ := acc.Child("server")
	if server.Has("port") {
		t.Fatal("shallow merge must replace the whole entry, port should be gone")
	}
}

func TestMergeCopiesChildren(t *testing.T) {
	acc := New()
	next := build(t, map[string]any{"xs": []any{1.0, 2.0}})
	if err := acc.Merge(next); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if err := next.Set("xs", []float64{9}); err != nil {
		t.Fatalf("set: %v", err)
	}
	xs, err := acc.Floats("xs")
	if err != nil || len(xs) != 2 {
		t.Fatalf("merge should deep-copy entries: %v, %v", xs, err)
	}
}

func TestMergeRejectsValueNodes(t *testing.T) {
	acc := New()
	scalar := &Dictionary{value: int64(1)}
	if err := acc.Merge(scalar); err == nil {
		t.Fatal("expected error merging a value node")
	}
}

func TestUpdateIsDeep(t *testing.T) {
	acc := build(t, map[string]any{
		"server": map[string]any{"host": "localhost", "port": int64(8080)},
	})
	next := build(t, map[string]any{
		"server": map[string]any{"host": "api.example.com"},
	})

	if err := acc.Update(next); err != nil {
		t.Fatalf("update: %v", err)
	}
	server, _ := acc.Child("server")
	if host, _ := server.Str("host"); host != "api.example.com" {
		t.Fatalf("host = %q", host)
	}
	if port, err := server.Int("port"); err != nil || port != 8080 {
		t.Fatalf("deep update must keep untouched nested keys: %d, %v", port, err)
	}
}

func TestUpdateInsertsUnknownKeys(t *testing.T) {
	acc := build(t, map[string]any{"a": int64(1)})
	next := build(t, map[string]any{"b": map[string]any{"c": true}})

	if err := acc.Update(next); err != nil {
		t.Fatalf("update: %v", err)
	}
	b, ok := acc.Child("b")
	if !ok {
		t.Fatal("update must insert unknown keys")
	}
	if v, err := b.Bool("c"); err != nil || !v {
		t.Fatalf("Bool(c) = %v, %v", v, err)
	}
}

func TestUpdateKindMismatch(t *testing.T) {
	acc := build(t, map[string]any{"count": int64(1)})
	next := build(t, map[string]any{"count": "one"})

	err := acc.Update(next)
	var te *TypeError
	if !errors.As(err, &te) {
		t.Fatalf("expected TypeError, got %v", err)
	}
	if te.Path != "count" {
		t.Fatalf("TypeError path = %q, want count", te.Path)
	}
}

func TestUpdateShapeMismatchPath(t *testing.T) {
	acc := build(t, map[string]any{
		"outer": map[string]any{"inner": map[string]any{"leaf": int64(1)}},
	})
	next := build(t, map[string]any{
		"outer": map[string]any{"inner": "scalar"},
	})

	err := acc.Update(next)
	var te *TypeError
	if !errors.As(err, &te) {
		t.Fatalf("expected TypeError, got %v", err)
	}
	if te.Path != "outer.inner" {
		t.Fatalf("TypeError path = %q, want outer.inner", te.Path)
	}
}

func TestExtendSkipsExistingKeys(t *testing.T) {
	acc := build(t, map[string]any{"a": int64(1)})
	next := build(t, map[string]any{"a": int64(9), "b": int64(2)})

	skipped, err := acc.Extend(next)
	if err != nil {
		t.Fatalf("extend: %v", err)
	}
	if len(skipped) != 1 || skipped[0] != "a" {
		t.Fatalf("skipped = %v, want [a]", skipped)
	}
	if v, _ := acc.Int("a"); v != 1 {
		t.Fatalf("extend must not overwrite, a = %d", v)
	}
	if v, _ := acc.Int("b"); v != 2 {
		t.Fatalf("extend must insert new keys, b = %d", v)
	}
}

func TestDifference(t *testing.T) {
	v2 := build(t, map[string]any{
		"app":      map[string]any{"name": "MyApp", "version": "2.0.0"},
		"features": map[string]any{"logging": true, "analytics": true},
	})
	v1 := build(t, map[string]any{
		"app":      map[string]any{"name": "MyApp", "version": "1.0.0"},
		"features": map[string]any{"logging": true, "analytics": false},
	})

	diff := v2.Difference(v1)
	if diff == nil || diff.IsEmpty() {
		t.Fatal("expected a non-empty difference")
	}
	want := `{"app": {"version": "2.0.0"}, "features": {"analytics": true}}`
	if got := diff.String(); got != want {
		t.Fatalf("difference = %s, want %s", got, want)
	}
}

func TestDifferenceOfEqualDictionaries(t *testing.T) {
	a := build(t, map[string]any{"k": map[string]any{"xs": []any{1.0, 2.0}}})
	b := build(t, map[string]any{"k": map[string]any{"xs": []any{1.0, 2.0}}})

	diff := a.Difference(b)
	if diff != nil && !diff.IsEmpty() {
		t.Fatalf("expected empty difference, got %s", diff)
	}
}

func TestDifferenceIncludesMissingKeys(t *testing.T) {
	a := build(t, map[string]any{"only": int64(1)})
	b := New()

	diff := a.Difference(b)
	if got := diff.String(); got != `{"only": 1}` {
		t.Fatalf("difference = %s", got)
	}
}
