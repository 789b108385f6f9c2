package validator

import "strings"

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

// ToMap keys messages by field. A later error on the same field replaces an
// earlier one.
func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, code, message string) {
	*v = append(*v, ValidationError{Field: field, Code: code, Message: message})
}

// HasCode reports whether any error carries code.
func (v ValidationErrors) HasCode(code string) bool {
	for _, err := range v {
		if err.Code == code {
			return true
		}
	}
	return false
}

// Codes returns the distinct codes in order of first appearance.
func (v ValidationErrors) Codes() []string {
	var codes []string
	seen := make(map[string]bool)
	for _, err := range v {
		if !seen[err.Code] {
			seen[err.Code] = true
			codes = append(codes, err.Code)
		}
	}
	return codes
}

// OrNil returns nil for an empty list so callers can return it as an error.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}
