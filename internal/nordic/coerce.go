package nordic

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatError reports a non-blank fixed-column field that failed type
// coercion. It aborts the current event's parse only; a batch caller keeps
// going with its remaining bulletins.
type FormatError struct {
	Line  LineType
	Field string
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s line: field %s: bad value %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// field extracts the trimmed substring at [from:to). Short lines yield an
// empty string rather than an error: a truncated line reads as all-blank
// trailing fields.
func field(line string, from, to int) string {
	if from >= len(line) {
		return ""
	}
	if to > len(line) {
		to = len(line)
	}
	return strings.TrimSpace(line[from:to])
}

// floatField coerces the substring at [from:to) into a float. Blank means
// absent (nil, no error); a non-blank unparsable value is a FormatError.
func floatField(line string, from, to int, lt LineType, name string) (*float64, error) {
	s := field(line, from, to)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, &FormatError{Line: lt, Field: name, Value: s, Err: err}
	}
	return &v, nil
}

// intField coerces the substring at [from:to) into an int. Blank means
// absent (nil, no error); a non-blank unparsable value is a FormatError.
func intField(line string, from, to int, lt LineType, name string) (*int, error) {
	s := field(line, from, to)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, &FormatError{Line: lt, Field: name, Value: s, Err: err}
	}
	return &v, nil
}

// requireInt is intField for fields the record cannot do without, such as
// the date parts of a hypocenter line. Blank is a FormatError here.
func requireInt(line string, from, to int, lt LineType, name string) (int, error) {
	v, err := intField(line, from, to, lt, name)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, &FormatError{Line: lt, Field: name, Value: "", Err: errMissingField}
	}
	return *v, nil
}

var (
	errMissingField = fmt.Errorf("required field is blank")
	errOutOfRange   = fmt.Errorf("value out of range")
)
