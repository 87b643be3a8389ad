package entity

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorCode identifies the kind of a DomainError.
type ErrorCode string

const (
	CodeMissingField         ErrorCode = "missing_field"
	CodeEmptyReferenceSet    ErrorCode = "empty_reference_set"
	CodeDuplicateReference   ErrorCode = "duplicate_reference"
	CodeUnknownReference     ErrorCode = "unknown_reference"
	CodeEmptyImage           ErrorCode = "empty_image"
	CodeInvalidImage         ErrorCode = "invalid_image"
	CodeInvalidCookingTime   ErrorCode = "invalid_cooking_time"
	CodeInvalidAmount        ErrorCode = "invalid_amount"
	CodeAlreadyMember        ErrorCode = "already_member"
	CodeNotMember            ErrorCode = "not_member"
	CodeAlreadyFollowing     ErrorCode = "already_following"
	CodeNotFollowing         ErrorCode = "not_following"
	CodeSelfFollowNotAllowed ErrorCode = "self_follow_not_allowed"
	CodeRecipeNotFound       ErrorCode = "recipe_not_found"
	CodeUserNotFound         ErrorCode = "user_not_found"
	CodeProductNotFound      ErrorCode = "product_not_found"
	CodeTagNotFound          ErrorCode = "tag_not_found"
	CodeNotRecipeAuthor      ErrorCode = "not_recipe_author"
	CodeInvalidCredentials   ErrorCode = "invalid_credentials"
	CodeInvalidPassword      ErrorCode = "invalid_password"
	CodeAvatarNotSet         ErrorCode = "avatar_not_set"
	CodeUserExists           ErrorCode = "user_exists"
)

// DomainError is a field-addressable failure. Fields maps a payload field to
// its messages; Detail is used when the failure has no field.
type DomainError struct {
	Code   ErrorCode
	Fields map[string][]string
	Detail string
}

func (e *DomainError) Error() string {
	if len(e.Fields) == 0 {
		if e.Detail != "" {
			return fmt.Sprintf("%s: %s", e.Code, e.Detail)
		}
		return string(e.Code)
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return fmt.Sprintf("%s: %s", e.Code, strings.Join(parts, ", "))
}

// Is matches any DomainError with the same code, so callers can write
// errors.Is(err, entity.ErrAlreadyMember).
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// FieldError builds a DomainError with a single field message.
func FieldError(code ErrorCode, field, msg string) *DomainError {
	return &DomainError{Code: code, Fields: map[string][]string{field: {msg}}}
}

// DetailError builds a DomainError that is not tied to a payload field.
func DetailError(code ErrorCode, detail string) *DomainError {
	return &DomainError{Code: code, Detail: detail}
}

var (
	ErrMissingField         = &DomainError{Code: CodeMissingField}
	ErrEmptyReferenceSet    = &DomainError{Code: CodeEmptyReferenceSet}
	ErrDuplicateReference   = &DomainError{Code: CodeDuplicateReference}
	ErrUnknownReference     = &DomainError{Code: CodeUnknownReference}
	ErrEmptyImage           = &DomainError{Code: CodeEmptyImage}
	ErrInvalidImage         = &DomainError{Code: CodeInvalidImage}
	ErrInvalidCookingTime   = &DomainError{Code: CodeInvalidCookingTime}
	ErrInvalidAmount        = &DomainError{Code: CodeInvalidAmount}
	ErrAlreadyMember        = &DomainError{Code: CodeAlreadyMember}
	ErrNotMember            = &DomainError{Code: CodeNotMember}
	ErrAlreadyFollowing     = &DomainError{Code: CodeAlreadyFollowing}
	ErrNotFollowing         = &DomainError{Code: CodeNotFollowing}
	ErrSelfFollowNotAllowed = &DomainError{Code: CodeSelfFollowNotAllowed}
	ErrRecipeNotFound       = &DomainError{Code: CodeRecipeNotFound}
	ErrUserNotFound         = &DomainError{Code: CodeUserNotFound}
	ErrProductNotFound      = &DomainError{Code: CodeProductNotFound}
	ErrTagNotFound          = &DomainError{Code: CodeTagNotFound}
	ErrNotRecipeAuthor      = &DomainError{Code: CodeNotRecipeAuthor}
	ErrInvalidCredentials   = &DomainError{Code: CodeInvalidCredentials}
	ErrInvalidPassword      = &DomainError{Code: CodeInvalidPassword}
	ErrAvatarNotSet         = &DomainError{Code: CodeAvatarNotSet}
	ErrUserExists           = &DomainError{Code: CodeUserExists}
)
