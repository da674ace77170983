package filler

import (
	"errors"
	"sort"
	"strings"
	"testing"
)

func TestNewCycler_RejectsEmpty(t *testing.T) {
	_, err := NewCycler("")
	if !errors.Is(err, ErrEmptyFiller) {
		t.Fatalf("error = %v, want ErrEmptyFiller", err)
	}
}

func TestCycler_Take(t *testing.T) {
	tests := []struct {
		name string
		base string
		n    int
		want string
	}{
		{"within", "ACGT", 2, "AC"},
		{"exact", "ACGT", 4, "ACGT"},
		{"wrap once", "ACGT", 6, "ACGTAC"},
		{"wrap many", "AC", 7, "ACACACA"},
		{"zero", "ACGT", 0, ""},
		{"negative", "ACGT", -3, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCycler(tt.base)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := c.Take(tt.n); got != tt.want {
				t.Errorf("Take(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestCycler_CursorAdvances(t *testing.T) {
	c, _ := NewCycler("ACGT")

	if got := c.Take(3); got != "ACG" {
		t.Errorf("first Take(3) = %q, want ACG", got)
	}
	if c.Cursor() != 3 {
		t.Errorf("Cursor() = %d, want 3", c.Cursor())
	}
	if got := c.Take(3); got != "TAC" {
		t.Errorf("second Take(3) = %q, want TAC", got)
	}
	if c.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2 after wrap", c.Cursor())
	}
}

func TestCycler_ZeroTakeKeepsCursor(t *testing.T) {
	c, _ := NewCycler("ACGT")
	c.Take(2)
	c.Take(0)
	if c.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2", c.Cursor())
	}
}

func TestCycler_Deterministic(t *testing.T) {
	draws := []int{17, 1, 1000, 3, 0, 42}

	a, _ := NewCycler("ACGGTTACCA")
	b, _ := NewCycler("ACGGTTACCA")

	var gotA, gotB strings.Builder
	for _, n := range draws {
		gotA.WriteString(a.Take(n))
		gotB.WriteString(b.Take(n))
	}
	if gotA.String() != gotB.String() {
		t.Error("identical draw sequences from fresh cyclers should match byte for byte")
	}
}

func TestCycler_LargeDrawMatchesCyclicRepeat(t *testing.T) {
	base := "ACGGT"
	c, _ := NewCycler(base)

	got := c.Take(5 * 1000)
	want := strings.Repeat(base, 1000)
	if got != want {
		t.Error("large draw should equal cyclic repetition of the base sequence")
	}
}

func TestPermute_Deterministic(t *testing.T) {
	base := strings.Repeat("ACGGTTAACC", 50)

	if Permute(base, 42) != Permute(base, 42) {
		t.Error("same seed should produce the same permutation")
	}
	if Permute(base, 42) == Permute(base, 123) {
		t.Error("different seeds should produce different permutations")
	}
}

func TestPermute_PreservesComposition(t *testing.T) {
	base := "AAACCCGGGTTTACGT"
	got := Permute(base, 987)

	if len(got) != len(base) {
		t.Fatalf("length = %d, want %d", len(got), len(base))
	}
	a := []byte(base)
	b := []byte(got)
	sort.Slice(a, func(i, j int) bool { return a[i] < a[j] })
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	if string(a) != string(b) {
		t.Error("permutation should preserve the base multiset")
	}
}

func TestPermute_SeededCyclersDiverge(t *testing.T) {
	base := strings.Repeat("ACGGTTAACC", 20)

	a, _ := NewCycler(Permute(base, 42))
	b, _ := NewCycler(Permute(base, 123))

	if a.Take(100) == b.Take(100) {
		t.Error("cyclers over differently seeded permutations should diverge")
	}
}
