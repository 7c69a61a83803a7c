package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %q: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %q: %v", path, err)
	}
}

func TestScanReturnsEligibleFilesInLexicalOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "zeta.md"), "[[def: zeta]]\n")
	writeFile(t, filepath.Join(root, "alpha.md"), "[[def: alpha]]\n")
	writeFile(t, filepath.Join(root, "nested", "beta.md"), "[[def: beta]]\n")
	writeFile(t, filepath.Join(root, "_partial.md"), "not scanned\n")
	writeFile(t, filepath.Join(root, "notes.txt"), "not markdown\n")

	s := New()
	files, err := s.Scan(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("expected 3 eligible files, got %d: %+v", len(files), files)
	}

	want := []string{"alpha.md", "nested/beta.md", "zeta.md"}
	for i, w := range want {
		if files[i].Path != w {
			t.Fatalf("expected files[%d].Path = %q, got %q", i, w, files[i].Path)
		}
	}
}

func TestScanMissingDirectoryReturnsNoError(t *testing.T) {
	s := New()
	files, err := s.Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no files, got %d", len(files))
	}
}

func TestEligibleExcludesUnderscoreAndNonMarkdown(t *testing.T) {
	cases := map[string]bool{
		"term.md":    true,
		"Term.MD":    true,
		"_hidden.md": false,
		"term.txt":   false,
	}
	for name, want := range cases {
		if got := eligible(name); got != want {
			t.Fatalf("eligible(%q) = %v, want %v", name, got, want)
		}
	}
}
