package platforms

import "testing"

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$1,049.99", 1049.99, true},
		{"$299.00", 299, true},
		{"$5", 5, true},
		{"1.049,99 €", 1049.99, true},
		{"49,99", 49.99, true},
		{"1,049", 1049, true},
		{"1,049,000", 1049000, true},
		{"From $129.99", 129.99, true},
		{"", 0, false},
		{"Call for price", 0, false},
	}
	for _, tt := range tests {
		got, ok := parsePrice(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parsePrice(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParsePriceEU(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42.999,00 TL", 42999, true},
		{"1.199,00 €", 1199, true},
		{"42,99", 42.99, true},
		{"1.199", 1199, true},
		{"899 TL", 899, true},
		{"", 0, false},
		{"Tükendi", 0, false},
	}
	for _, tt := range tests {
		got, ok := parsePriceEU(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parsePriceEU(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCleanNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"$1,049.99", "1,049.99"},
		{"42.999,00 TL", "42.999,00"},
		{"no digits", ""},
		{" 19 ", "19"},
	}
	for _, tt := range tests {
		if got := cleanNumeric(tt.in); got != tt.want {
			t.Errorf("cleanNumeric(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
