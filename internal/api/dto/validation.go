package dto

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxDescriptionLength bounds catalog and issue descriptions, in characters.
const MaxDescriptionLength = 1024

// ValidationRule names the rule a field failed.
type ValidationRule string

const (
	RuleRequiredField ValidationRule = "RequiredField"
	RuleTooLong       ValidationRule = "TooLong"
)

// FieldError is a single failed rule on a request field.
type FieldError struct {
	Field   string
	Rule    ValidationRule
	Message string
}

// FieldErrors collects failures in the order they were found.
type FieldErrors []FieldError

// ToMap groups messages by field for the error payload.
func (fe FieldErrors) ToMap() map[string][]string {
	out := make(map[string][]string, len(fe))
	for _, e := range fe {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}

// For returns the failures recorded against field.
func (fe FieldErrors) For(field string) FieldErrors {
	var out FieldErrors
	for _, e := range fe {
		if e.Field == field {
			out = append(out, e)
		}
	}
	return out
}

// Validate checks a create request before anything is persisted.
func (r CreateCatalogItemRequest) Validate() FieldErrors {
	var errs FieldErrors
	if r.Title == "" {
		errs = append(errs, FieldError{Field: "title", Rule: RuleRequiredField, Message: "We need a title"})
	}
	if tooLong(r.Description) {
		errs = append(errs, descriptionTooLong())
	}
	return errs
}

// Validate applies the create rules to a replacement body.
func (r ReplaceCatalogItemRequest) Validate() FieldErrors {
	return CreateCatalogItemRequest{Title: r.Title, Description: r.Description}.Validate()
}

// Validate bounds the reporter's description.
func (r CreateIssueRequest) Validate() FieldErrors {
	if tooLong(strings.TrimSpace(r.Description)) {
		return FieldErrors{descriptionTooLong()}
	}
	return nil
}

func tooLong(s string) bool {
	return utf8.RuneCountInString(s) > MaxDescriptionLength
}

func descriptionTooLong() FieldError {
	return FieldError{
		Field:   "description",
		Rule:    RuleTooLong,
		Message: fmt.Sprintf("The description can be at most %d characters", MaxDescriptionLength),
	}
}
