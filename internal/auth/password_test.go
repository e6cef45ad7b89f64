package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hashed, err := HashPassword("s3cret!", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hashed == "s3cret!" {
		t.Fatal("password stored in clear")
	}
	if err := ComparePassword(hashed, "s3cret!"); err != nil {
		t.Fatalf("ComparePassword(correct): %v", err)
	}
	if err := ComparePassword(hashed, "wrong"); err == nil {
		t.Fatal("ComparePassword(wrong) succeeded")
	}
}
