package adapter

import "testing"

func TestShortHasher_Deterministic(t *testing.T) {
	hasher := NewShortHasher()

	first := hasher.ShortHash("/specs/auth.yaml")
	second := hasher.ShortHash("/specs/auth.yaml")

	if first != second {
		t.Fatalf("ShortHash() not deterministic: %q vs %q", first, second)
	}
}

func TestShortHasher_Length(t *testing.T) {
	hasher := NewShortHasher()

	if got := hasher.ShortHash("anything"); len(got) != shortHashLength {
		t.Fatalf("ShortHash() length = %d, want %d", len(got), shortHashLength)
	}
}

func TestShortHasher_DistinctInputs(t *testing.T) {
	hasher := NewShortHasher()

	if hasher.ShortHash("/specs/a.yaml") == hasher.ShortHash("/specs/b.yaml") {
		t.Fatal("ShortHash() collided for distinct inputs")
	}
}
