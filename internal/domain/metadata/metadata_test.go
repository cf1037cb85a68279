package metadata

import (
	"encoding/json"
	"testing"
)

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"equal strings", String("여름"), String("여름"), true},
		{"different strings", String("여름"), String("겨울"), false},
		{"equal numbers", Number(3.5), Number(3.5), true},
		{"different numbers", Number(3.5), Number(3.6), false},
		{"equal bools", Bool(true), Bool(true), true},
		{"different bools", Bool(true), Bool(false), false},
		{"equal lists", StringList("a", "b"), StringList("a", "b"), true},
		{"different list order", StringList("a", "b"), StringList("b", "a"), false},
		{"different list length", StringList("a"), StringList("a", "b"), false},
		{"kind mismatch", String("true"), Bool(true), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValue_Text(t *testing.T) {
	if got := String("여름").Text(); got != "여름" {
		t.Errorf("string text = %q", got)
	}
	if got := Number(2.5).Text(); got != "2.5" {
		t.Errorf("number text = %q", got)
	}
	if got := Bool(true).Text(); got != "true" {
		t.Errorf("bool text = %q", got)
	}
	if got := StringList("a", "b").Text(); got != "a,b" {
		t.Errorf("list text = %q", got)
	}
}

func TestFromAny(t *testing.T) {
	v, err := FromAny("문자열")
	if err != nil || v.Kind() != KindString {
		t.Errorf("string: %v, %v", v, err)
	}
	v, err = FromAny(1.5)
	if err != nil || v.Kind() != KindNumber {
		t.Errorf("number: %v, %v", v, err)
	}
	v, err = FromAny(true)
	if err != nil || v.Kind() != KindBool {
		t.Errorf("bool: %v, %v", v, err)
	}
	v, err = FromAny([]any{"a", "b"})
	if err != nil || v.Kind() != KindStringList {
		t.Errorf("list: %v, %v", v, err)
	}

	if _, err = FromAny(map[string]any{"k": "v"}); err == nil {
		t.Error("expected error for object value")
	}
	if _, err = FromAny([]any{"a", 1.0}); err == nil {
		t.Error("expected error for mixed-type array")
	}
}

func TestMap_JSONRoundTrip(t *testing.T) {
	m := Map{
		"season":   String("여름"),
		"rating":   Number(4.5),
		"hasImage": Bool(true),
		"tags":     StringList("펜션", "힐링"),
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Map
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for k, v := range m {
		if !got[k].Equal(v) {
			t.Errorf("key %s: got %v, want %v", k, got[k], v)
		}
	}
}

func TestMap_Clone(t *testing.T) {
	if got := Map(nil).Clone(); got != nil {
		t.Errorf("nil clone = %v, want nil", got)
	}

	m := Map{"k": String("v")}
	c := m.Clone()
	c["k2"] = String("v2")
	if _, ok := m["k2"]; ok {
		t.Error("mutating the clone must not affect the original")
	}
}

func TestMap_KeysSorted(t *testing.T) {
	m := Map{"c": String("3"), "a": String("1"), "b": String("2")}
	keys := m.Keys()
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Errorf("keys = %v, want sorted", keys)
	}
}
