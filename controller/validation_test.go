package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/RomanKim94/foodgram/entity"
)

type fakeCounter struct {
	known map[uint]bool
	calls int
	err   error
}

func (f *fakeCounter) CountByIDs(_ context.Context, ids []uint) (int64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	var n int64
	for _, id := range ids {
		if f.known[id] {
			n++
		}
	}
	return n, nil
}

func TestValidateReferenceSet(t *testing.T) {
	tests := []struct {
		name      string
		ids       []uint
		want      error
		wantCalls int
	}{
		{"valid", []uint{1, 2}, nil, 1},
		{"empty", nil, entity.ErrEmptyReferenceSet, 0},
		{"duplicate", []uint{1, 2, 1}, entity.ErrDuplicateReference, 0},
		{"unknown", []uint{1, 3}, entity.ErrUnknownReference, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeCounter{known: map[uint]bool{1: true, 2: true}}
			err := ValidateReferenceSet(context.Background(), store, "tags", tt.ids)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			} else {
				if !errors.Is(err, tt.want) {
					t.Fatalf("err = %v, want %v", err, tt.want)
				}
				if de := asDomain(t, err); len(de.Fields["tags"]) == 0 {
					t.Errorf("error not addressed to the field: %v", de.Fields)
				}
			}
			if store.calls != tt.wantCalls {
				t.Errorf("store called %d times, want %d", store.calls, tt.wantCalls)
			}
		})
	}
}

func TestValidateReferenceSetStoreFailure(t *testing.T) {
	boom := errors.New("boom")
	err := ValidateReferenceSet(context.Background(), &fakeCounter{err: boom}, "ingredients", []uint{1})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped store error", err)
	}
	var de *entity.DomainError
	if errors.As(err, &de) {
		t.Errorf("store failure reported as domain error %v", de)
	}
}
