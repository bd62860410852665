package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"12.50", "12.5", true},
		{"12,50", "12.5", true},
		{"1.234,56", "1234.56", true},
		{"R$ 99,90", "99.9", true},
		{"  150  ", "150", true},
		{"", "0", false},
		{"abc", "0", false},
		{"12,34,56", "0", false},
	}

	for _, tc := range cases {
		got, ok := Parse(tc.raw)
		if ok != tc.ok {
			t.Fatalf("Parse(%q) ok = %v, want %v", tc.raw, ok, tc.ok)
		}
		want, err := decimal.NewFromString(tc.want)
		if err != nil {
			t.Fatalf("bad case %q: %v", tc.want, err)
		}
		if !got.Equal(want) {
			t.Fatalf("Parse(%q) = %s, want %s", tc.raw, got, want)
		}
	}
}

func TestFormatBRL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value string
		want  string
	}{
		{"0", "R$ 0,00"},
		{"12.5", "R$ 12,50"},
		{"1234.56", "R$ 1.234,56"},
		{"1234567.89", "R$ 1.234.567,89"},
		{"-42", "-R$ 42,00"},
	}

	for _, tc := range cases {
		value, err := decimal.NewFromString(tc.value)
		if err != nil {
			t.Fatalf("bad case %q: %v", tc.value, err)
		}
		if got := FormatBRL(value); got != tc.want {
			t.Fatalf("FormatBRL(%s) = %q, want %q", tc.value, got, tc.want)
		}
	}
}
