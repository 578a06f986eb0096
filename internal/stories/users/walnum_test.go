package users

import (
	"strings"
	"testing"
)

func TestNewWalNum(t *testing.T) {
	seen := map[string]bool{}

	for i := 0; i < 100; i++ {
		num := NewWalNum()

		if len(num) != walNumLength {
			t.Fatalf("NewWalNum() = %q, want %d characters", num, walNumLength)
		}
		for _, c := range num {
			if !strings.ContainsRune(walNumAlphabet, c) {
				t.Fatalf("NewWalNum() = %q, character %q not in alphabet", num, c)
			}
		}
		seen[num] = true
	}

	// 100 подряд одинаковых номеров - это сломанный генератор
	if len(seen) < 2 {
		t.Errorf("NewWalNum() produced %d distinct values out of 100", len(seen))
	}
}
