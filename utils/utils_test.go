package utils

import "testing"

func TestGenerateNameLength(t *testing.T) {
	for _, n := range []int{4, 10} {
		if got := len(GenerateName(n)); got != n {
			t.Errorf("GenerateName(%d) length = %d", n, got)
		}
	}
}

func TestGetUUIDIsUniqueAndWellFormed(t *testing.T) {
	a, b := GetUUID(), GetUUID()
	if a == b {
		t.Fatal("two ids must differ")
	}
	if len(a) != 36 || a[8] != '-' || a[13] != '-' {
		t.Fatalf("unexpected id shape: %q", a)
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Farmer@Example.COM "); got != "farmer@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}
