// Package validate collects client-side form errors keyed by field name.
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"slices"
	"strings"

	"github.com/jrsteele09/go-internship-client/apierr"
)

var (
	phonePattern    = regexp.MustCompile(`^\+\d{8,15}$`)
	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateTimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`)
)

// Fields accumulates the first failure reported for each field.
type Fields map[string]string

func (f Fields) add(field, msg string) {
	if _, exists := f[field]; !exists {
		f[field] = msg
	}
}

func (f Fields) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f.add(field, "Required")
	}
}

// Email checks for a bare address (no display name).
func (f Fields) Email(field, value string) {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		f.add(field, "Invalid email address")
	}
}

func (f Fields) MinLen(field, value string, n int) {
	if len(value) < n {
		f.add(field, fmt.Sprintf("Must be at least %d characters", n))
	}
}

func (f Fields) Len(field, value string, n int, msg string) {
	if len(value) != n {
		f.add(field, msg)
	}
}

func (f Fields) Suffix(field, value, suffix, msg string) {
	if !strings.HasSuffix(value, suffix) {
		f.add(field, msg)
	}
}

func (f Fields) OneOf(field, value string, allowed ...string) {
	if !slices.Contains(allowed, value) {
		f.add(field, "Must be one of: "+strings.Join(allowed, ", "))
	}
}

// Phone checks E.164 format, e.g. +233201234567.
func (f Fields) Phone(field, value string) {
	if !phonePattern.MatchString(value) {
		f.add(field, "Invalid phone number")
	}
}

// Date checks YYYY-MM-DD.
func (f Fields) Date(field, value string) {
	if !datePattern.MatchString(value) {
		f.add(field, "Invalid date")
	}
}

// DateTime checks YYYY-MM-DDTHH:MM:SSZ.
func (f Fields) DateTime(field, value string) {
	if !dateTimePattern.MatchString(value) {
		f.add(field, "Invalid date-time")
	}
}

// Err returns a VALIDATION error when any field failed, otherwise nil.
func (f Fields) Err() error {
	if len(f) == 0 {
		return nil
	}
	return apierr.Validation(f)
}
