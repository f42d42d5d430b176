package cache

import "testing"

func TestGenerateCacheKeyDeterministic(t *testing.T) {
	key1 := GenerateCacheKey("What is discussed?", []string{"a", "b"}, 5)
	key2 := GenerateCacheKey("What is discussed?", []string{"a", "b"}, 5)
	if key1 != key2 {
		t.Error("same inputs should produce the same key")
	}
}

func TestGenerateCacheKeyOrderInsensitive(t *testing.T) {
	key1 := GenerateCacheKey("question", []string{"a", "b"}, 5)
	key2 := GenerateCacheKey("question", []string{"b", "a"}, 5)
	if key1 != key2 {
		t.Error("transcript id order should not affect the key")
	}
}

func TestGenerateCacheKeyNormalizesQuestion(t *testing.T) {
	key1 := GenerateCacheKey("  What is GO?  ", []string{"a"}, 5)
	key2 := GenerateCacheKey("what is go?", []string{"a"}, 5)
	if key1 != key2 {
		t.Error("question case and surrounding whitespace should not affect the key")
	}
}

func TestGenerateCacheKeyVariesWithInputs(t *testing.T) {
	base := GenerateCacheKey("question", []string{"a"}, 5)
	if GenerateCacheKey("other question", []string{"a"}, 5) == base {
		t.Error("different questions should produce different keys")
	}
	if GenerateCacheKey("question", []string{"b"}, 5) == base {
		t.Error("different transcripts should produce different keys")
	}
	if GenerateCacheKey("question", []string{"a"}, 10) == base {
		t.Error("different k should produce different keys")
	}
}
