package request

import (
	"net/url"
	"strconv"
	"strings"
)

// FieldErrors maps a form field to a human readable message.
type FieldErrors map[string]string

// FormBinder is implemented by requests that can be filled from an urlencoded form.
type FormBinder interface {
	FromForm(values url.Values) FieldErrors
}

func formString(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

// formOptional returns nil for a missing or blank field.
func formOptional(values url.Values, key string) *string {
	v := formString(values, key)
	if v == "" {
		return nil
	}
	return &v
}

func formInt(values url.Values, key string, errs FieldErrors) *int {
	v := formString(values, key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		errs[key] = "Enter a whole number"
		return nil
	}
	return &n
}

func formFloat(values url.Values, key string, errs FieldErrors) float64 {
	v := formString(values, key)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		errs[key] = "Enter a number"
		return 0
	}
	return f
}

func nilIfEmpty(errs FieldErrors) FieldErrors {
	if len(errs) == 0 {
		return nil
	}
	return errs
}
