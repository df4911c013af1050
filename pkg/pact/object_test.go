package pact

import (
	"encoding/json"
	"testing"
)

func TestObject_MarshalPreservesOrder(t *testing.T) {
	o := NewObject()
	if err := o.Set("zebra", 1); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := o.Set("alpha", "two"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := o.Set("mike", []int{3}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := `{"zebra":1,"alpha":"two","mike":[3]}`
	if string(got) != want {
		t.Errorf("marshal = %s, want %s", got, want)
	}
}

func TestObject_RoundTrip(t *testing.T) {
	in := `{"b":{"nested":true},"a":[1,2,3],"c":"text"}`

	var o Object
	if err := json.Unmarshal([]byte(in), &o); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	out, err := json.Marshal(&o)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(out) != in {
		t.Errorf("round trip = %s, want %s", out, in)
	}
}

func TestObject_SetReplacesInPlace(t *testing.T) {
	o := NewObject()
	o.Set("first", 1)
	o.Set("second", 2)
	o.Set("first", 10)

	got, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := `{"first":10,"second":2}`
	if string(got) != want {
		t.Errorf("marshal = %s, want %s", got, want)
	}
}

func TestObject_Empty(t *testing.T) {
	got, err := json.Marshal(NewObject())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(got) != "{}" {
		t.Errorf("marshal = %s, want {}", got)
	}

	var nilObj *Object
	got, err = nilObj.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error: %v", err)
	}
	if string(got) != "{}" {
		t.Errorf("nil marshal = %s, want {}", got)
	}
}

func TestObject_Get(t *testing.T) {
	o := NewObject()
	o.Set("k", 42)

	raw, ok := o.Get("k")
	if !ok {
		t.Fatal("Get() should find existing key")
	}
	if string(raw) != "42" {
		t.Errorf("value = %s, want 42", raw)
	}

	if _, ok := o.Get("missing"); ok {
		t.Error("Get() should not find absent key")
	}
}

func TestObject_UnmarshalRejectsNonObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"array", `[1,2]`},
		{"string", `"x"`},
		{"truncated", `{"a":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o Object
			if err := json.Unmarshal([]byte(tt.in), &o); err == nil {
				t.Errorf("Unmarshal(%q) should fail", tt.in)
			}
		})
	}
}
