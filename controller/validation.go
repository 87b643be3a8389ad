package controller

import (
	"context"
	"fmt"

	"github.com/RomanKim94/foodgram/entity"
)

// ReferenceCounter counts how many of ids exist in a reference table.
type ReferenceCounter interface {
	CountByIDs(ctx context.Context, ids []uint) (int64, error)
}

// ValidateReferenceSet checks that ids is non-empty, has no repeats and only
// names stored rows. Errors are addressed to field.
func ValidateReferenceSet(ctx context.Context, store ReferenceCounter, field string, ids []uint) error {
	if len(ids) == 0 {
		return entity.FieldError(entity.CodeEmptyReferenceSet, field, "This list must not be empty.")
	}

	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return entity.FieldError(entity.CodeDuplicateReference, field,
				fmt.Sprintf("Item %d is listed more than once.", id))
		}
		seen[id] = struct{}{}
	}

	n, err := store.CountByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("count %s: %w", field, err)
	}
	if n < int64(len(ids)) {
		return entity.FieldError(entity.CodeUnknownReference, field, "Some of the listed items do not exist.")
	}
	return nil
}
