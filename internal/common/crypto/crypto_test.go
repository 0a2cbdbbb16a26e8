package crypto

import "testing"

func TestBcryptHasher_RoundTrip(t *testing.T) {
	hasher := &BcryptHasher{}

	hash, err := hasher.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if err := hasher.Compare(hash, "correct horse battery staple"); err != nil {
		t.Errorf("Compare rejected the original password: %v", err)
	}
}

func TestBcryptHasher_WrongPassword(t *testing.T) {
	hasher := &BcryptHasher{}

	hash, err := hasher.Hash("password-one")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	if err := hasher.Compare(hash, "password-two"); err == nil {
		t.Error("Compare accepted a different password")
	}
}

func TestRandomHex(t *testing.T) {
	first, err := RandomHex(8)
	if err != nil {
		t.Fatalf("RandomHex returned error: %v", err)
	}
	if len(first) != 16 {
		t.Errorf("expected 16 hex characters, got %d", len(first))
	}

	second, err := RandomHex(8)
	if err != nil {
		t.Fatalf("RandomHex returned error: %v", err)
	}
	if first == second {
		t.Error("consecutive RandomHex values collided")
	}
}

func TestUUIDGenerator(t *testing.T) {
	gen := NewUUIDGenerator()

	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("NewID returned error: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("NewID returned error: %v", err)
	}
	if first == second {
		t.Error("consecutive ids collided")
	}
}
