package util

import "testing"

func TestDeriveAndVerifyPassword(t *testing.T) {
	hash, salt, err := DerivePassword("s3cret-pass")
	if err != nil {
		t.Fatalf("DerivePassword returned error: %v", err)
	}
	if len(hash) == 0 || len(salt) == 0 {
		t.Fatalf("expected hash and salt to be populated")
	}
	if !VerifyPassword("s3cret-pass", salt, hash) {
		t.Fatalf("expected password verification to succeed")
	}
	if VerifyPassword("wrong-pass", salt, hash) {
		t.Fatalf("expected password verification to fail for wrong password")
	}
}

func TestHashPasswordEmptyInput(t *testing.T) {
	if _, err := HashPassword("", []byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error when password empty")
	}
	if _, err := HashPassword("secret", nil); err == nil {
		t.Fatalf("expected error when salt empty")
	}
}

func TestValidatePassword(t *testing.T) {
	cases := map[string]bool{
		"short1":       false,
		"lettersonly!": false,
		"12345678":     false,
		"ride2024now":  true,
	}
	for input, ok := range cases {
		err := ValidatePassword(input)
		if ok && err != nil {
			t.Fatalf("expected %q to be accepted, got %v", input, err)
		}
		if !ok && err == nil {
			t.Fatalf("expected %q to be rejected", input)
		}
	}
}

func TestAdminPasswordHash(t *testing.T) {
	hash, err := HashAdminPassword("dashboard-01")
	if err != nil {
		t.Fatalf("HashAdminPassword returned error: %v", err)
	}
	if hash == "dashboard-01" {
		t.Fatalf("expected hash to differ from plaintext")
	}
	if !CheckAdminPassword(hash, "dashboard-01") {
		t.Fatalf("expected admin password to verify")
	}
	if CheckAdminPassword(hash, "dashboard-02") {
		t.Fatalf("expected wrong admin password to fail")
	}
	if _, err := HashAdminPassword(""); err == nil {
		t.Fatalf("expected error for empty admin password")
	}
}
