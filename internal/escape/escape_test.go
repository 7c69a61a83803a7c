package escape

import (
	"strings"
	"testing"
)

func TestPreprocessPostprocessRoundTrip(t *testing.T) {
	input := `\[[def: literal]] and [[def: real]]`
	pre := Preprocess(input)
	if strings.Contains(pre, `\[[`) {
		t.Fatalf("pre-processed content should not retain the escaped opener: %q", pre)
	}

	// Tag pipeline would run here, untouched by the placeholder.
	tagProcessed := strings.ReplaceAll(pre, "[[def: real]]", `<span id="term:real">real</span>`)

	out := Postprocess(tagProcessed)
	if !strings.Contains(out, "[[def: literal]]") {
		t.Fatalf("expected literal [[def: literal]] in output, got %q", out)
	}
	if strings.Contains(out, `id="term:literal"`) {
		t.Fatalf("escaped def must not produce a term anchor: %q", out)
	}
	if !strings.Contains(out, `id="term:real"`) {
		t.Fatalf("expected real term anchor in output, got %q", out)
	}
}

func TestPreprocessDoubleBackslash(t *testing.T) {
	pre := Preprocess(`\\[[def: x]]`)
	out := Postprocess(pre)
	if out != `\[[def: x]]` {
		t.Fatalf("expected single backslash preserved, got %q", out)
	}
}

func TestPreprocessLeavesOrdinaryTagsAlone(t *testing.T) {
	pre := Preprocess("[[ref: alpha]]")
	if pre != "[[ref: alpha]]" {
		t.Fatalf("expected unescaped tag untouched, got %q", pre)
	}
}
