package types

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want ID
	}{
		{`{"id":"a1b2"}`, "a1b2"},
		{`{"id":42}`, "42"},
		{`{"id":null}`, ""},
		{`{}`, ""},
	}

	for _, tt := range tests {
		var s Student
		if err := json.Unmarshal([]byte(tt.in), &s); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", tt.in, err)
		}
		if s.ID != tt.want {
			t.Errorf("Unmarshal(%s).ID = %q, want %q", tt.in, s.ID, tt.want)
		}
	}
}

func TestID_RejectsObjects(t *testing.T) {
	var s Student
	if err := json.Unmarshal([]byte(`{"id":{"x":1}}`), &s); err == nil {
		t.Error("Unmarshal() error = nil, want error")
	}
}

func TestStudent_MarshalOmitsEmptyID(t *testing.T) {
	b, err := json.Marshal(Student{FullName: "Jo"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(b), `"id"`) {
		t.Errorf("Marshal() = %s, want no id key", b)
	}

	b, _ = json.Marshal(Student{ID: "7"})
	if !strings.Contains(string(b), `"id":"7"`) {
		t.Errorf("Marshal() = %s, want id encoded as string", b)
	}
}

func TestStudent_SetTouchesOnlyNamedField(t *testing.T) {
	for _, f := range Fields {
		s := Student{ID: "1"}
		if err := s.Set(f, "v"); err != nil {
			t.Fatalf("Set(%q) error = %v", f, err)
		}
		for _, other := range Fields {
			got, _ := s.Get(other)
			want := ""
			if other == f {
				want = "v"
			}
			if got != want {
				t.Errorf("after Set(%q): Get(%q) = %q, want %q", f, other, got, want)
			}
		}
		if s.ID != "1" {
			t.Errorf("after Set(%q): ID = %q, want 1", f, s.ID)
		}
	}
}

func TestStudent_SetUnknown(t *testing.T) {
	var s Student
	if err := s.Set("id", "9"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Set(id) error = %v, want ErrUnknownField", err)
	}
	if _, err := s.Get("nope"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Get(nope) error = %v, want ErrUnknownField", err)
	}
}

func TestEnums(t *testing.T) {
	if !IsGender("female") || IsGender("Female") {
		t.Error("IsGender is not an exact, case-sensitive match")
	}
	if !IsCourse("Mobile Development") || IsCourse("mobile development") {
		t.Error("IsCourse is not an exact, case-sensitive match")
	}
}
