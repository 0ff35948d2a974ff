// Package validate checks untyped submission payloads against the
// onboarding form shape and reports failures as a field-keyed error
// tree suitable for inline display.
package validate

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"github.com/evergreenwebsolutions/onboarding/internal/models"
)

// FieldErrors maps a field path ("email", "files.0.url") to the
// messages recorded against it. The empty map means no errors.
type FieldErrors map[string][]string

func (fe FieldErrors) add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Has reports whether any error is recorded under field or one of its
// nested paths.
func (fe FieldErrors) Has(field string) bool {
	if _, ok := fe[field]; ok {
		return true
	}
	prefix := field + "."
	for k := range fe {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// Result is the discriminated outcome of a validation run. Exactly one
// of Data and Errors is meaningful, selected by Valid.
type Result struct {
	Valid  bool
	Data   *models.Submission
	Errors FieldErrors
}

// Submission validates an arbitrary value (typically decoded JSON)
// against the form shape. It never panics; any malformed input comes
// back as Valid=false with errors attached to the offending fields.
func Submission(input any) Result {
	errs := FieldErrors{}

	obj, ok := asObject(input)
	if !ok {
		errs.add("body", "expected a JSON object")
		return Result{Errors: errs}
	}

	sub := &models.Submission{}

	sub.ClientName = requireString(obj, "clientName", errs, "Client name is required")
	sub.Details = requireString(obj, "details", errs, "Details are required")

	email := requireString(obj, "email", errs, "Email is required")
	if email != "" && !validEmail(email) {
		errs.add("email", "Invalid email address")
	}
	sub.Email = email

	if raw, ok := obj["files"]; ok && raw != nil {
		list, ok := raw.([]any)
		if !ok {
			errs.add("files", "files must be a list")
		} else {
			for i, item := range list {
				if fd, ok := fileDescriptor(item, i, errs); ok {
					fd.Position = i
					sub.Files = append(sub.Files, fd)
				}
			}
		}
	}

	if len(errs) > 0 {
		return Result{Errors: errs}
	}
	return Result{Valid: true, Data: sub}
}

// asObject coerces input into a generic JSON object. Structs and typed
// maps are round-tripped through encoding/json so callers can pass
// either decoded bodies or model values.
func asObject(input any) (map[string]any, bool) {
	if m, ok := input.(map[string]any); ok {
		return m, true
	}
	switch input.(type) {
	case nil, string, bool, float64, int, int64, []any:
		return nil, false
	}
	data, err := json.Marshal(input)
	if err != nil {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, false
	}
	return m, true
}

func requireString(obj map[string]any, field string, errs FieldErrors, msg string) string {
	raw, ok := obj[field]
	if !ok || raw == nil {
		errs.add(field, msg)
		return ""
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		errs.add(field, msg)
		return ""
	}
	return s
}

func fileDescriptor(item any, i int, errs FieldErrors) (models.FileMeta, bool) {
	key := func(f string) string { return fmt.Sprintf("files.%d.%s", i, f) }

	obj, ok := item.(map[string]any)
	if !ok {
		errs.add(fmt.Sprintf("files.%d", i), "expected a file object")
		return models.FileMeta{}, false
	}

	var fd models.FileMeta
	before := len(errs)

	if s, ok := obj["url"].(string); ok && validFileURL(s) {
		fd.URL = s
	} else {
		errs.add(key("url"), "Invalid url")
	}
	if s, ok := obj["name"].(string); ok && s != "" {
		fd.Name = s
	} else {
		errs.add(key("name"), "Name is required")
	}
	if s, ok := obj["type"].(string); ok {
		fd.Type = s
	} else {
		errs.add(key("type"), "Type must be a string")
	}
	switch n := obj["size"].(type) {
	case float64:
		if n < 0 {
			errs.add(key("size"), "Size must be non-negative")
		} else {
			fd.Size = int64(n)
		}
	case int:
		if n < 0 {
			errs.add(key("size"), "Size must be non-negative")
		} else {
			fd.Size = int64(n)
		}
	case int64:
		if n < 0 {
			errs.add(key("size"), "Size must be non-negative")
		} else {
			fd.Size = n
		}
	default:
		errs.add(key("size"), "Size must be a number")
	}

	return fd, len(errs) == before
}

func validEmail(s string) bool {
	if strings.Count(s, "@") != 1 {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	domain := s[strings.Index(s, "@")+1:]
	return strings.Contains(domain, ".")
}

func validFileURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
