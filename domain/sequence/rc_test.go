package sequence

import (
	"errors"
	"strings"
	"testing"
)

func TestReverseComplement(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"single", "A", "T"},
		{"pair", "AC", "GT"},
		{"palindrome", "ACGT", "ACGT"},
		{"ctcf", "CCGCGTGGTGGCAGGAGC", "GCTCCTGCCACCACGCGG"},
		{"homopolymer", "AAAA", "TTTT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReverseComplement(tt.in)
			if got != tt.want {
				t.Errorf("ReverseComplement(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestReverseComplement_Involution(t *testing.T) {
	seqs := []string{
		"A",
		"ACGT",
		"CCGCGTGGTGGCAGGAGC",
		strings.Repeat("ACGGTTAC", 100),
	}
	for _, s := range seqs {
		if got := ReverseComplement(ReverseComplement(s)); got != s {
			t.Errorf("double reverse complement of %q = %q, want original", s, got)
		}
	}
}

func TestReverseComplement_PreservesLength(t *testing.T) {
	s := strings.Repeat("ACGT", 1000)
	if got := ReverseComplement(s); len(got) != len(s) {
		t.Errorf("length = %d, want %d", len(got), len(s))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"empty", "", false},
		{"canonical", "ACGTACGT", false},
		{"ambiguity code", "ACGTN", true},
		{"lowercase", "acgt", true},
		{"gap", "ACG-T", true},
		{"whitespace", "ACGT ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				if !errors.Is(err, ErrInvalidBase) {
					t.Errorf("error = %v, want ErrInvalidBase", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidate_ReportsPosition(t *testing.T) {
	err := Validate("ACGTXA")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "position 4") {
		t.Errorf("error %q should name position 4", err.Error())
	}
}
