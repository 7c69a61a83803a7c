package postprocess

import (
	"strings"
	"testing"
)

func TestProcessMergesSubsequentDL(t *testing.T) {
	in := `<dl class="terms-and-definitions-list">
<dt id="term:alpha">Alpha</dt><dd>first</dd>
</dl>
<dl>
<dt id="term:beta">Beta</dt><dd>second</dd>
</dl>`

	out, err := New().Process(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(out, "<dl") != 1 {
		t.Fatalf("expected exactly one <dl> after merge, got %q", out)
	}
	if !strings.Contains(out, "Alpha") || !strings.Contains(out, "Beta") {
		t.Fatalf("expected both terms present, got %q", out)
	}
}

func TestProcessNeverMergesReferenceList(t *testing.T) {
	in := `<dl class="terms-and-definitions-list">
<dt id="term:alpha">Alpha</dt><dd>first</dd>
</dl>
<dl>
<dt id="ref:rfc1234">RFC 1234</dt><dd>a reference</dd>
</dl>`

	out, err := New().Process(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(out, "<dl") != 2 {
		t.Fatalf("expected reference dl left untouched, got %q", out)
	}
}

func TestProcessConvertsStandaloneExternalParagraph(t *testing.T) {
	in := `<div id="terminology-section-start"></div>
<p><span class="term-external">Witness</span></p>`

	out, err := New().Process(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `<dt class="term-external">`) {
		t.Fatalf("expected a dt wrapping the external span, got %q", out)
	}
	if strings.Contains(out, "<p>") {
		t.Fatalf("expected the original paragraph removed, got %q", out)
	}
}

func TestProcessRegroupsStrayDTAndDD(t *testing.T) {
	in := `<dl class="terms-and-definitions-list">
<dt id="term:alpha">Alpha</dt><dd>first</dd>
</dl>
<dt class="term-local">Gamma</dt><dd>third</dd>`

	out, err := New().Process(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Gamma") || !strings.Contains(out, "third") {
		t.Fatalf("expected stray dt/dd regrouped, got %q", out)
	}
}

func TestProcessRemovesEmptyParagraphsAndDTs(t *testing.T) {
	in := `<dl class="terms-and-definitions-list">
<dt id="term:alpha">Alpha</dt><dd>first</dd>
<dt></dt>
</dl>
<p></p>`

	out, err := New().Process(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "<p></p>") {
		t.Fatalf("expected empty paragraph removed, got %q", out)
	}
	if strings.Contains(out, "<dt></dt>") {
		t.Fatalf("expected empty dt removed, got %q", out)
	}
}

func TestProcessSortsGroupsCaseInsensitively(t *testing.T) {
	in := `<dl class="terms-and-definitions-list">
<dt id="term:zebra">zebra</dt><dd>z</dd>
<dt id="term:Apple">Apple</dt><dd>a</dd>
<dt id="term:mango">mango</dt><dd>m</dd>
</dl>`

	out, err := New().Process(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	appleIdx := strings.Index(out, "Apple")
	mangoIdx := strings.Index(out, "mango")
	zebraIdx := strings.Index(out, "zebra")
	if !(appleIdx < mangoIdx && mangoIdx < zebraIdx) {
		t.Fatalf("expected alphabetical order Apple < mango < zebra, got %q", out)
	}
}

func TestProcessCreatesMainDLWhenAbsent(t *testing.T) {
	in := `<div id="terminology-section-start"></div>
<dt class="term-local">Alpha</dt><dd>first</dd>`

	out, err := New().Process(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `<dl class="terms-and-definitions-list">`) {
		t.Fatalf("expected a main dl created, got %q", out)
	}
}
