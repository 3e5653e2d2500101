// Package validation checks a candidate Student record field by field.
//
// The rules live on types.Student as validate:"..." struct tags and are
// enforced by go-playground/validator. The custom tags the struct uses
// are registered here:
//
//	notblank   non-empty after trimming whitespace
//	emailaddr  local@domain.tld, no whitespace, exactly one '@'
//	phone      optional '+' then 7 to 15 digits
//	gender     one of types.Genders
//	course     one of types.Courses
//
// Every rule is evaluated on every call; there are no cross-field rules.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/aanand-mishra/student-registration/internal/types"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// messages holds the text shown next to each offending field. A field
// has a single message regardless of which of its tags failed.
var messages = map[string]string{
	types.FieldFullName: "Full name is required",
	types.FieldEmail:    "Valid email required",
	types.FieldPhone:    "Valid phone number required",
	types.FieldDOB:      "Date of birth required",
	types.FieldGender:   "Please select gender",
	types.FieldAddress:  "Address is required",
	types.FieldCourse:   "Please choose a course",
	types.FieldPassword: "Password must be at least 6 characters",
}

// validate is safe for concurrent use and caches struct metadata, so one
// instance serves the whole process.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON key ("fullName") instead of the Go name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "notblank", validators.NotBlank)
	mustRegister(v, "emailaddr", matches(emailPattern))
	mustRegister(v, "phone", matches(phonePattern))
	mustRegister(v, "gender", oneOf(types.Genders))
	mustRegister(v, "course", oneOf(types.Courses))

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: register " + tag + ": " + err.Error())
	}
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func oneOf(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(allowed, fl.Field().String())
	}
}

// Errors maps a field name to its error message. An empty Errors means
// the candidate is valid for submission.
type Errors map[string]string

// Error joins the messages in field order so Errors can be returned
// wherever an error is expected.
func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, ", ")
}

// Fields returns the offending field names in form order, followed by
// any unknown names sorted alphabetically.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for _, f := range types.Fields {
		if _, ok := e[f]; ok {
			out = append(out, f)
		}
	}
	var rest []string
	for f := range e {
		if !slices.Contains(types.Fields, f) {
			rest = append(rest, f)
		}
	}
	slices.Sort(rest)
	return append(out, rest...)
}

// Validate checks every field of candidate and returns the failures.
// It has no side effects.
func Validate(candidate types.Student) Errors {
	errs := Errors{}

	err := validate.Struct(candidate)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Only reachable when the struct itself is unusable; report it
		// against every field rather than pretending the record is valid.
		for f, msg := range messages {
			errs[f] = msg
		}
		return errs
	}

	for _, fe := range fieldErrs {
		msg, ok := messages[fe.Field()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		errs[fe.Field()] = msg
	}
	return errs
}

// Message returns the message used for field, or "" for unknown fields.
func Message(field string) string { return messages[field] }
