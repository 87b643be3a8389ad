package util

import "testing"

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("S3cret-value")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPasswordHash("S3cret-value", string(hash)) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("s3cret-value", string(hash)) {
		t.Error("wrong password accepted")
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		personal []string
		problems int
	}{
		{"strong", "Gr33n-tea-pot", nil, 0},
		{"too short", "ab1", nil, 1},
		{"no digit", "onlyletters", nil, 1},
		{"no letter", "9081726354", nil, 1},
		{"space", "has space 123", nil, 1},
		{"common", "MyPassword1", nil, 1},
		{"personal data", "alice2024x", []string{"alice"}, 1},
		{"short personal data ignored", "ab2024xyzw", []string{"ab"}, 0},
		{"several problems", "short", nil, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidatePassword(tt.password, tt.personal...); len(got) != tt.problems {
				t.Errorf("ValidatePassword(%q) = %v, want %d problems", tt.password, got, tt.problems)
			}
		})
	}
}
