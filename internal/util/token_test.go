package util

import "testing"

func TestGenerateQuizToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok := GenerateQuizToken()
		if len(tok) != QuizTokenLength {
			t.Fatalf("token %q length = %d, want %d", tok, len(tok), QuizTokenLength)
		}
		for _, r := range tok {
			if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
				t.Fatalf("token %q contains unexpected rune %q", tok, r)
			}
		}
		if seen[tok] {
			t.Fatalf("duplicate token %q after %d draws", tok, i)
		}
		seen[tok] = true
	}
}
