package build

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir string, termsDir string) string {
	t.Helper()
	doc := map[string]any{
		"specs": []map[string]any{
			{
				"title":                 "Test Spec",
				"description":           "A test specification",
				"author":                "Test Author",
				"source":                map[string]string{"account": "trustoverip", "repo": "spec-up-t-go"},
				"spec_directory":        dir,
				"spec_terms_directory":  termsDir,
				"output_path":           filepath.Join(dir, "output"),
				"markdown_paths":        []string{"index.md"},
			},
		},
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshaling manifest: %v", err)
	}
	path := filepath.Join(dir, "specs.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	return path
}

func setupProject(t *testing.T) (dir string, manifestPath string) {
	t.Helper()
	dir = t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "terms"), 0o755); err != nil {
		t.Fatalf("creating terms dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.md"),
		[]byte("# Title\n\n[[def: widget, gadget]]\n\nA widget is a thing.\n\nSee [[ref: widget]].\n"),
		0o644); err != nil {
		t.Fatalf("writing index.md: %v", err)
	}
	manifestPath = writeManifest(t, dir, "terms")
	return dir, manifestPath
}

func TestBuildWritesOutputDocument(t *testing.T) {
	dir, manifestPath := setupProject(t)

	result, err := Build(context.Background(), Config{ManifestPath: manifestPath})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if !result.Written {
		t.Fatal("expected result.Written to be true")
	}

	outPath := filepath.Join(dir, "output", "index.html")
	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output document: %v", err)
	}
	html := string(raw)

	if !strings.Contains(html, "Test Spec") {
		t.Error("expected output to contain manifest title")
	}
	if !strings.Contains(html, "widget") {
		t.Error("expected output to contain rendered term content")
	}
	if !strings.Contains(html, `name="spec-up-t:github-repo-info" content="trustoverip,spec-up-t-go,main"`) {
		t.Error("expected github repo info meta tag with default branch")
	}

	cacheDir := filepath.Join(dir, ".cache")
	for _, name := range []string{"xtrefs-data.json", "xtrefs-data.js", "term-index.json", "console-messages.json"} {
		if _, err := os.Stat(filepath.Join(cacheDir, name)); err != nil {
			t.Errorf("expected cache artifact %q to exist: %v", name, err)
		}
	}
}

func TestBuildCheckModeSkipsFinalWrite(t *testing.T) {
	dir, manifestPath := setupProject(t)

	result, err := Build(context.Background(), Config{ManifestPath: manifestPath, Check: true})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if result.Written {
		t.Fatal("expected result.Written to be false in check mode")
	}

	outPath := filepath.Join(dir, "output", "index.html")
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Errorf("expected no output document in check mode, stat err = %v", err)
	}

	cacheDir := filepath.Join(dir, ".cache")
	if _, err := os.Stat(filepath.Join(cacheDir, "term-index.json")); err != nil {
		t.Errorf("expected term index to still be written in check mode: %v", err)
	}
}

func TestBuildReturnsErrorWhenManifestMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := Build(context.Background(), Config{ManifestPath: filepath.Join(dir, "missing.json")})
	if err == nil {
		t.Fatal("expected an error when the manifest file does not exist")
	}
}

func TestBuildReportsUnresolvedReferences(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "terms"), 0o755); err != nil {
		t.Fatalf("creating terms dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.md"),
		[]byte("# Title\n\nSee [[ref: nonexistent]].\n"), 0o644); err != nil {
		t.Fatalf("writing index.md: %v", err)
	}
	manifestPath := writeManifest(t, dir, "terms")

	result, err := Build(context.Background(), Config{ManifestPath: manifestPath})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(result.Validation.Unresolved) == 0 {
		t.Error("expected an unresolved reference to be reported")
	}

	foundWarning := false
	for _, f := range result.Findings {
		if f.Kind == "UnresolvedRef" {
			foundWarning = true
		}
	}
	if !foundWarning {
		t.Error("expected an UnresolvedRef finding to be recorded in diagnostics")
	}
}
