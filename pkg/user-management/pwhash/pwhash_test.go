package pwhash

import "testing"

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	match, err := ComparePasswordWithHash(hash, "correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !match {
		t.Errorf("expected password to match its own hash")
	}

	match, err = ComparePasswordWithHash(hash, "wrong password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if match {
		t.Errorf("expected wrong password to not match")
	}
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	h1, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h1 == h2 {
		t.Errorf("two hashes of the same password should differ by salt")
	}
}

func TestComparePasswordWithInvalidHash(t *testing.T) {
	if _, err := ComparePasswordWithHash("not-a-hash", "pw"); err == nil {
		t.Errorf("expected error for malformed hash")
	}
}
