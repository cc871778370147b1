package features

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidInput = errors.New("invalid input")

// FieldError reports a single rejected form field.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidInput }

// Collect converts flat form values into a RawInput. Absent or blank fields
// keep their form default; anything present must parse and be in range.
func Collect(fields map[string]string) (RawInput, error) {
	in, errs := collect(fields)
	if len(errs) > 0 {
		return RawInput{}, errs[0]
	}
	return in, nil
}

// Prefill keeps every field that parses and falls back to the default for
// the rest, so a rejected form can be shown again with the user's values.
func Prefill(fields map[string]string) RawInput {
	in, _ := collect(fields)
	return in
}

// collect parses every field and returns the errors in form order.
func collect(fields map[string]string) (RawInput, []error) {
	in := DefaultInput()
	var errs []error
	ok := func(err error) bool {
		if err != nil {
			errs = append(errs, err)
			return false
		}
		return true
	}

	if v, err := intField(fields, FieldAge, in.Age, MinAge, MaxAge); ok(err) {
		in.Age = v
	}
	if v, err := enumField(fields, FieldGender, in.Gender, Genders); ok(err) {
		in.Gender = v
	}
	if v, err := enumField(fields, FieldCustomerType, in.CustomerType, CustomerTypes); ok(err) {
		in.CustomerType = v
	}
	if v, err := enumField(fields, FieldTravelType, in.TravelType, TravelTypes); ok(err) {
		in.TravelType = v
	}
	if v, err := enumField(fields, FieldClass, in.Class, Classes); ok(err) {
		in.Class = v
	}
	if v, err := floatField(fields, FieldFlightDistance, in.FlightDistance); ok(err) {
		in.FlightDistance = v
	}
	if v, err := intField(fields, FieldDepartureDelay, 0, 0, math.MaxInt32); ok(err) {
		in.DepartureDelayInMinutes = v
	}
	if v, err := intField(fields, FieldCleanliness, 0, 0, math.MaxInt32); ok(err) {
		in.Cleanliness = v
	}
	if v, err := intField(fields, FieldTimeConvenient, 0, 0, math.MaxInt32); ok(err) {
		in.DepartureArrivalTimeConvenient = v
	}
	if v, err := intField(fields, FieldEaseOfOnlineBooking, 0, 0, math.MaxInt32); ok(err) {
		in.EaseOfOnlineBooking = v
	}

	return in, errs
}

func lookup(fields map[string]string, name string) (string, bool) {
	raw, ok := fields[name]
	if !ok {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

func intField(fields map[string]string, name string, def, lo, hi int) (int, error) {
	raw, ok := lookup(fields, name)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &FieldError{Field: name, Value: raw, Reason: "not an integer"}
	}
	if n < lo || n > hi {
		return 0, &FieldError{Field: name, Value: raw, Reason: fmt.Sprintf("must be between %d and %d", lo, hi)}
	}
	return n, nil
}

func floatField(fields map[string]string, name string, def float64) (float64, error) {
	raw, ok := lookup(fields, name)
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &FieldError{Field: name, Value: raw, Reason: "not a number"}
	}
	if f < 0 {
		return 0, &FieldError{Field: name, Value: raw, Reason: "must not be negative"}
	}
	return f, nil
}

func enumField[T ~string](fields map[string]string, name string, def T, allowed []T) (T, error) {
	raw, ok := lookup(fields, name)
	if !ok {
		return def, nil
	}
	for _, a := range allowed {
		if string(a) == raw {
			return a, nil
		}
	}
	opts := make([]string, len(allowed))
	for i, a := range allowed {
		opts[i] = string(a)
	}
	return def, &FieldError{Field: name, Value: raw, Reason: "must be one of " + strings.Join(opts, ", ")}
}
