package entity

import (
	"math"
	"testing"
)

func TestPageOffset(t *testing.T) {
	cases := []struct {
		page Page
		want int
	}{
		{Page{Number: 1, Size: 6}, 0},
		{Page{Number: 3, Size: 4}, 8},
		{Page{Number: 0, Size: 6}, 0},
		{Page{Number: 2, Size: 0}, 0},
		{Page{Number: math.MaxInt, Size: 100}, MaxOffset},
		{Page{Number: MaxOffset/10 + 2, Size: 10}, MaxOffset},
	}
	for _, tc := range cases {
		if got := tc.page.Offset(); got != tc.want {
			t.Errorf("%+v.Offset() = %d, want %d", tc.page, got, tc.want)
		}
	}
}
