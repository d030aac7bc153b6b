package equipment

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// entityValidate is shared by every entity. The "enum" tag accepts any value
// whose type has a Valid() bool method.
var entityValidate *validator.Validate

func init() {
	entityValidate = validator.New(validator.WithRequiredStructEnabled())
	entityValidate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	_ = entityValidate.RegisterValidation("enum", validateEnum)
}

type enumValue interface {
	Valid() bool
}

func validateEnum(fl validator.FieldLevel) bool {
	v, ok := fl.Field().Interface().(enumValue)
	return ok && v.Valid()
}

// Problem is one rejected field.
type Problem struct {
	Field   string
	Message string
}

// ValidationError reports why an entity was rejected.
type ValidationError struct {
	Entity   string
	Problems []Problem
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.Field+": "+p.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(parts, "; "))
}

// ErrorKind classifies the failure for callers that map errors to exit codes.
func (e *ValidationError) ErrorKind() string { return "validation" }

func (e *ValidationError) add(field, message string) {
	e.Problems = append(e.Problems, Problem{Field: field, Message: message})
}

func (e *ValidationError) orNil() error {
	if e == nil || len(e.Problems) == 0 {
		return nil
	}
	return e
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func checkStruct(entity string, v any) *ValidationError {
	verr := &ValidationError{Entity: entity}
	err := entityValidate.Struct(v)
	if err == nil {
		return verr
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.add("*", err.Error())
		return verr
	}
	for _, fe := range fieldErrs {
		verr.add(fieldPath(fe), describe(fe))
	}
	return verr
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "needs at least " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "enum":
		return fmt.Sprintf("unknown value %q", fmt.Sprint(fe.Value()))
	}
	return "failed " + fe.Tag()
}

// ValidateMember checks a member on its own.
func ValidateMember(m BandMember) error {
	return checkStruct("member", m).orNil()
}

// ValidateInstrument checks an instrument on its own. Drum kits can never be
// routed through an amplifier, and any other instrument routed that way names
// its amplifier.
func ValidateInstrument(i Instrument) error {
	verr := checkStruct("instrument", i)
	switch {
	case i.Routing != InstrumentViaAmp:
	case i.Type == InstrumentDrums:
		verr.add("routing", "drums cannot be routed through an amplifier")
	case strings.TrimSpace(i.AmpID) == "":
		verr.add("ampId", "routing via amplifier requires an amplifier")
	}
	return verr.orNil()
}

// ValidateAmplifier checks an amplifier on its own.
func ValidateAmplifier(a Amplifier) error {
	return checkStruct("amplifier", a).orNil()
}

// ValidateMicrophone checks a microphone on its own.
func ValidateMicrophone(m Microphone) error {
	return checkStruct("microphone", m).orNil()
}

// ValidatePA checks a PA item on its own.
func ValidatePA(p PaEquipment) error {
	return checkStruct("pa equipment", p).orNil()
}

// CheckMember validates m and its references against the snapshot.
func (x *Index) CheckMember(m BandMember) error {
	verr := checkStruct("member", m)
	if m.VocalMicID != "" {
		if _, ok := x.Microphone(m.VocalMicID); !ok {
			verr.add("vocalMicId", fmt.Sprintf("microphone %q does not exist", m.VocalMicID))
		}
	}
	return verr.orNil()
}

// CheckInstrument validates i and its references against the snapshot.
func (x *Index) CheckInstrument(i Instrument) error {
	if err := ValidateInstrument(i); err != nil {
		return err
	}
	verr := &ValidationError{Entity: "instrument"}
	if i.MemberID != "" {
		if _, ok := x.Member(i.MemberID); !ok {
			verr.add("memberId", fmt.Sprintf("member %q does not exist", i.MemberID))
		}
	}
	if i.Routing == InstrumentViaAmp && i.AmpID != "" {
		if _, ok := x.Amplifier(i.AmpID); !ok {
			verr.add("ampId", fmt.Sprintf("amplifier %q does not exist", i.AmpID))
		}
	}
	return verr.orNil()
}

// CheckAmplifier validates a and its references against the snapshot.
func (x *Index) CheckAmplifier(a Amplifier) error {
	verr := checkStruct("amplifier", a)
	if a.MemberID != "" {
		if _, ok := x.Member(a.MemberID); !ok {
			verr.add("memberId", fmt.Sprintf("member %q does not exist", a.MemberID))
		}
	}
	return verr.orNil()
}

// CheckMicrophone validates m and requires its assignment target to exist.
func (x *Index) CheckMicrophone(m Microphone) error {
	verr := checkStruct("microphone", m)
	if !m.Assignment.IsNone() && x.EffectiveAssignment(m).IsNone() {
		verr.add("assignment", fmt.Sprintf("%s %q does not exist", m.Assignment.Kind(), m.Assignment.ID()))
	}
	return verr.orNil()
}
