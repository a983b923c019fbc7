// Package validation implements the declarative per-field rules applied to
// request bodies before handler logic runs.
package validation

import "strings"

// FieldError is one failed rule for one request field. The wire shape
// ({msg, param}) is part of the API contract for 400 responses.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param"`
}

// Rule checks a single named field.
type Rule struct {
	Param string
	Msg   string
	Check func(value string) bool
}

// NotEmpty fails when the field is empty or whitespace-only.
func NotEmpty(param, msg string) Rule {
	return Rule{
		Param: param,
		Msg:   msg,
		Check: func(v string) bool { return strings.TrimSpace(v) != "" },
	}
}

// MaxLen fails when the field exceeds n bytes.
func MaxLen(param string, n int, msg string) Rule {
	return Rule{
		Param: param,
		Msg:   msg,
		Check: func(v string) bool { return len(v) <= n },
	}
}

// Apply runs every rule against the supplied field values and collects
// failures in rule order. A nil result means the input passed.
func Apply(fields map[string]string, rules ...Rule) []FieldError {
	var errs []FieldError
	for _, r := range rules {
		if !r.Check(fields[r.Param]) {
			errs = append(errs, FieldError{Msg: r.Msg, Param: r.Param})
		}
	}
	return errs
}
