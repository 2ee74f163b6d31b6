package hash

import (
	"strings"
	"testing"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(4) // minimal cost keeps the test fast

	hashed, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hashed == "s3cret" {
		t.Fatalf("hash must not equal plaintext")
	}
	if !strings.HasPrefix(hashed, "$2") {
		t.Fatalf("expected self-describing bcrypt hash, got %q", hashed)
	}

	if !h.Verify("s3cret", hashed) {
		t.Fatalf("Verify should accept the original password")
	}
	if h.Verify("wrong", hashed) {
		t.Fatalf("Verify should reject a different password")
	}
}

func TestBcryptHasher_SaltRandomised(t *testing.T) {
	h := NewBcryptHasher(4)

	first, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password should differ (random salt)")
	}
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher(4)

	if h.Verify("anything", "not-a-bcrypt-hash") {
		t.Fatalf("Verify should return false for a malformed hash, not panic or succeed")
	}
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	h := NewBcryptHasher(-1)
	if h.cost < 4 {
		t.Fatalf("expected cost fallback, got %d", h.cost)
	}
}
