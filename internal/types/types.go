// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// validation, the state controllers, the HTTP client and the development
// backend can all import types without depending on each other.
package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// Field names accepted by Student.Set. They match the JSON keys so a
// field-level error map can be rendered next to the right input.
const (
	FieldFullName = "fullName"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldDOB      = "dob"
	FieldGender   = "gender"
	FieldAddress  = "address"
	FieldCourse   = "course"
	FieldPassword = "password"
)

// Fields lists every editable field in form order.
var Fields = []string{
	FieldFullName,
	FieldEmail,
	FieldPhone,
	FieldDOB,
	FieldAddress,
	FieldGender,
	FieldCourse,
	FieldPassword,
}

// Genders is the enumerated set offered by the registration form.
var Genders = []string{"male", "female", "other"}

// Courses is the fixed list of courses a student can enrol in.
var Courses = []string{
	"Web Development",
	"Data Science",
	"UI/UX Design",
	"Mobile Development",
	"Other",
}

// ErrUnknownField is returned by Set for a name that is not in Fields.
var ErrUnknownField = errors.New("unknown field")

// ID is the backend-assigned record identifier. It is opaque to the
// client: backends in the wild send it either as a JSON string or as a
// JSON number, so both are accepted and it is always written back as a
// string.
type ID string

// UnmarshalJSON accepts "abc", "42" and 42.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Student represents a student record exchanged with the backend.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  — controls how the field appears when encoded to JSON.
//     The keys are the ones the registration backend already stores.
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package (see internal/validation for the custom tags).
//
// The password is stored and transmitted in clear text; that is the
// backend's contract, not a recommendation.
type Student struct {
	ID       ID     `json:"id,omitempty"`
	FullName string `json:"fullName" validate:"notblank"`
	Email    string `json:"email"    validate:"emailaddr"`
	Phone    string `json:"phone"    validate:"phone"`
	DOB      string `json:"dob"      validate:"required"`
	Gender   string `json:"gender"   validate:"gender"`
	Address  string `json:"address"  validate:"notblank"`
	Course   string `json:"course"   validate:"course"`
	Password string `json:"password" validate:"min=6"`
}

// Get returns the value of the named field.
func (s Student) Get(name string) (string, error) {
	switch name {
	case FieldFullName:
		return s.FullName, nil
	case FieldEmail:
		return s.Email, nil
	case FieldPhone:
		return s.Phone, nil
	case FieldDOB:
		return s.DOB, nil
	case FieldGender:
		return s.Gender, nil
	case FieldAddress:
		return s.Address, nil
	case FieldCourse:
		return s.Course, nil
	case FieldPassword:
		return s.Password, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Set overwrites exactly one field. The ID cannot be set this way: it is
// assigned by the backend and immutable afterwards.
func (s *Student) Set(name, value string) error {
	switch name {
	case FieldFullName:
		s.FullName = value
	case FieldEmail:
		s.Email = value
	case FieldPhone:
		s.Phone = value
	case FieldDOB:
		s.DOB = value
	case FieldGender:
		s.Gender = value
	case FieldAddress:
		s.Address = value
	case FieldCourse:
		s.Course = value
	case FieldPassword:
		s.Password = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// IsGender reports whether g is one of Genders.
func IsGender(g string) bool { return slices.Contains(Genders, g) }

// IsCourse reports whether c is one of Courses.
func IsCourse(c string) bool { return slices.Contains(Courses, c) }

// Credentials is what the login form collects.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
