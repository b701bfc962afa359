package render

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestNamerSingle(t *testing.T) {
	dir := t.TempDir()
	n := NewNamer(dir, "/inputs/prompt_0003.html", false)

	if got, want := n.Single(1, 1), filepath.Join(dir, "prompt_0003.png"); got != want {
		t.Errorf("Single(1,1) = %s, want %s", got, want)
	}
	if got, want := n.Single(2, 3), filepath.Join(dir, "prompt_0003_v2.png"); got != want {
		t.Errorf("Single(2,3) = %s, want %s", got, want)
	}
}

func TestNamerSingleCollision(t *testing.T) {
	dir := t.TempDir()
	n := NewNamer(dir, "table.html", false)

	touch(t, filepath.Join(dir, "table.png"))
	touch(t, filepath.Join(dir, "table_1.png"))

	if got, want := n.Single(1, 1), filepath.Join(dir, "table_2.png"); got != want {
		t.Errorf("Single = %s, want %s", got, want)
	}
}

func TestNamerSingleOverwrite(t *testing.T) {
	dir := t.TempDir()
	n := NewNamer(dir, "table.html", true)

	touch(t, filepath.Join(dir, "table.png"))
	if got, want := n.Single(1, 1), filepath.Join(dir, "table.png"); got != want {
		t.Errorf("Single = %s, want %s", got, want)
	}
}

func TestNamerPairSharedCounter(t *testing.T) {
	dir := t.TempDir()
	n := NewNamer(dir, "table.html", false)

	// Only the colored half exists; the pair must still step together.
	touch(t, filepath.Join(dir, "table_colored.png"))

	std, colored := n.Pair(1, 1)
	if want := filepath.Join(dir, "table_1.png"); std != want {
		t.Errorf("std = %s, want %s", std, want)
	}
	if want := filepath.Join(dir, "table_1_colored.png"); colored != want {
		t.Errorf("colored = %s, want %s", colored, want)
	}
}

func TestNamerPairVariants(t *testing.T) {
	n := NewNamer("out", "table.html", true)
	std, colored := n.Pair(2, 3)
	if want := filepath.Join("out", "table_v2.png"); std != want {
		t.Errorf("std = %s, want %s", std, want)
	}
	if want := filepath.Join("out", "table_v2_colored.png"); colored != want {
		t.Errorf("colored = %s, want %s", colored, want)
	}
}

func TestSplitPartPath(t *testing.T) {
	tests := []struct {
		out  string
		part int
		want string
	}{
		{"dir/table.png", 1, "dir/table_1.png"},
		{"dir/table.png", 12, "dir/table_12.png"},
		{"table", 2, "table_2.png"},
	}
	for _, tt := range tests {
		if got := SplitPartPath(tt.out, tt.part); got != tt.want {
			t.Errorf("SplitPartPath(%q, %d) = %q, want %q", tt.out, tt.part, got, tt.want)
		}
	}
}
