package simhash

import "testing"

func TestFingerprint_IdenticalTitles(t *testing.T) {
	title := "Apple iPhone 16 Pro 256GB Black Titanium"
	fp1 := Fingerprint(title)
	fp2 := Fingerprint(title)

	if fp1 != fp2 {
		t.Errorf("identical titles produced different fingerprints: %064b vs %064b", fp1, fp2)
	}
}

func TestFingerprint_CaseInsensitive(t *testing.T) {
	fp1 := Fingerprint("Apple iPhone 16 Pro")
	fp2 := Fingerprint("apple IPHONE 16 pro")

	if fp1 != fp2 {
		t.Errorf("case variants should produce equal fingerprints, distance: %d", Distance(fp1, fp2))
	}
}

func TestFingerprint_SimilarTitles(t *testing.T) {
	fp1 := Fingerprint("Apple iPhone 16 Pro 256GB Black Titanium Unlocked")
	fp2 := Fingerprint("Apple iPhone 16 Pro 256GB Black Titanium Renewed")

	dist := Distance(fp1, fp2)
	if dist > 16 {
		t.Errorf("similar titles have too large distance: %d", dist)
	}
}

func TestFingerprint_DifferentTitles(t *testing.T) {
	fp1 := Fingerprint("Apple iPhone 16 Pro 256GB Black Titanium")
	fp2 := Fingerprint("Stainless steel kitchen sink strainer basket replacement")

	dist := Distance(fp1, fp2)
	if dist < 5 {
		t.Errorf("very different titles have too small distance: %d", dist)
	}
}

func TestFingerprint_EmptyInput(t *testing.T) {
	if fp := Fingerprint(""); fp != 0 {
		t.Errorf("empty input should produce fingerprint 0, got: %064b", fp)
	}
	if fp := Fingerprint("   \t\n  "); fp != 0 {
		t.Errorf("whitespace-only input should produce fingerprint 0, got: %064b", fp)
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b uint64
		want int
	}{
		{"identical", 0xFF, 0xFF, 0},
		{"all different", 0, ^uint64(0), 64},
		{"one bit", 0, 1, 1},
		{"two bits", 0, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Errorf("Distance(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilar(t *testing.T) {
	fp1 := Fingerprint("Samsung Galaxy S24 Ultra 512GB")
	fp2 := Fingerprint("Samsung Galaxy S24 Ultra 512GB")

	if !Similar(fp1, fp2, 0) {
		t.Error("identical fingerprints should be similar at threshold 0")
	}

	fp3 := Fingerprint("completely unrelated garden hose attachment")
	dist := Distance(fp1, fp3)

	if Similar(fp1, fp3, dist-1) {
		t.Errorf("should not be similar below the actual distance %d", dist)
	}
	if !Similar(fp1, fp3, dist) {
		t.Errorf("should be similar at threshold equal to distance (%d)", dist)
	}
}
