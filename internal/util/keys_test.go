package util

import (
	"reflect"
	"sort"
	"testing"
)

func TestSortedKeys(t *testing.T) {
	m := map[string]any{"b": 1, "a": 2, "c": 3}
	got := SortedKeys(m)
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("SortedKeys: %v", got)
	}

	if got := SortedKeys(map[string]any{}); len(got) != 0 {
		t.Fatalf("SortedKeys on empty map: %v", got)
	}
}

func TestWithPrefix(t *testing.T) {
	m := map[string]any{
		"user:1":  1,
		"user:2":  2,
		"order:1": 3,
		"User:3":  4, // case-sensitive: must not match "user:"
	}
	got := WithPrefix(m, "user:")
	sort.Strings(got)
	if !reflect.DeepEqual(got, []string{"user:1", "user:2"}) {
		t.Fatalf("WithPrefix: %v", got)
	}

	if got := WithPrefix(m, "zzz"); len(got) != 0 {
		t.Fatalf("WithPrefix no match: %v", got)
	}
}
