package entity

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainErrorIsMatchesCode(t *testing.T) {
	err := fmt.Errorf("toggle: %w", FieldError(CodeAlreadyMember, "errors", "Recipe is already in favorites."))
	if !errors.Is(err, ErrAlreadyMember) {
		t.Error("wrapped error does not match its sentinel")
	}
	if errors.Is(err, ErrNotMember) {
		t.Error("error matched a different code")
	}
	var de *DomainError
	if !errors.As(err, &de) || de.Fields["errors"][0] != "Recipe is already in favorites." {
		t.Errorf("errors.As = %+v", de)
	}
}

func TestDomainErrorMessage(t *testing.T) {
	cases := []struct {
		err  *DomainError
		want string
	}{
		{ErrRecipeNotFound, "recipe_not_found"},
		{DetailError(CodeNotRecipeAuthor, "Only the author may edit."), "not_recipe_author: Only the author may edit."},
		{
			&DomainError{Code: CodeMissingField, Fields: map[string][]string{
				"text": {"This field is required."},
				"name": {"This field is required.", "Too short."},
			}},
			"missing_field: name: This field is required.; Too short., text: This field is required.",
		},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("Error() = %q, want %q", got, tc.want)
		}
	}
}
