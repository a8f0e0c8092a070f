package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/docstruct/internal/codec"
	"github.com/dgallion1/docstruct/internal/doctree"
)

const markdownDoc = "# Title\n\nIntro text with *strong words* inside.\n\n" +
	"## Section A\n\nSection A content is here.\n\n" +
	"## Section B\n\nClosing words for the text.\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConvertCommand_JSON(t *testing.T) {
	path := writeFile(t, "notes.md", markdownDoc)
	out, err := run(t, "convert", path, "--format", "json", "--pretty=false", "--lang", "en", "-o", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc, err := codec.DecodeJSON(strings.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if doc.Meta.Title != "notes" || doc.Meta.Language != "en" {
		t.Errorf("unexpected meta %+v", doc.Meta)
	}
	if top := doc.Sections(); len(top) != 1 || len(top[0].Sections()) != 2 {
		t.Errorf("unexpected outline")
	}
}

func TestConvertCommand_XMLToFile(t *testing.T) {
	a := writeFile(t, "a.md", markdownDoc)
	b := writeFile(t, "b.txt", "A first block of text.\n\nA second block of text.\n")
	target := filepath.Join(t.TempDir(), "out.xml")

	if _, err := run(t, "convert", a, b, "--format", "xml", "--pretty", "-o", target, "--lang", "de"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, err := os.Open(target)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	docs, err := codec.DecodeXML(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(docs) != 2 || docs[0].Meta.Title != "a" || docs[1].Meta.Title != "b" {
		t.Errorf("expected two documents in argument order")
	}
}

func TestConvertCommand_Errors(t *testing.T) {
	path := writeFile(t, "notes.md", markdownDoc)
	if _, err := run(t, "convert", path, "--format", "yaml", "-o", ""); err == nil {
		t.Error("expected an error for an unknown format")
	}
	csv := writeFile(t, "table.csv", "a,b")
	if _, err := run(t, "convert", csv, "--format", "xml", "-o", ""); err == nil {
		t.Error("expected an error for an unsupported file")
	}
	if _, err := run(t, "convert", filepath.Join(t.TempDir(), "missing.md"), "--format", "xml", "-o", ""); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestReportCommand(t *testing.T) {
	path := writeFile(t, "notes.md", markdownDoc)

	out, err := run(t, "report", path, "--lang", "en", "--json=false", "--no-color")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "# notes [en]") {
		t.Errorf("unexpected report header in %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("expected no ANSI escapes with --no-color")
	}

	out, err = run(t, "report", path, "--lang", "en", "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"language": "en"`) {
		t.Errorf("expected JSON report, got %q", out)
	}

	if _, err := run(t, "report", path, "--lang", "fr", "--json=false"); err == nil {
		t.Error("expected an error for an unknown language")
	}
}

func TestValidateCommand(t *testing.T) {
	doc := doctree.NewDocument(&doctree.Meta{Title: "T"})
	doc.Append(doctree.NewSection("1 Intro", "1", "1"))
	var buf bytes.Buffer
	if err := codec.EncodeJSON(&buf, doc, true); err != nil {
		t.Fatal(err)
	}
	good := writeFile(t, "good.json", buf.String())
	bad := writeFile(t, "bad.json", `{"kind":"banana"}`)

	out, err := run(t, "validate", good)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "good.json: ok") {
		t.Errorf("unexpected output %q", out)
	}

	out, err = run(t, "validate", good, bad)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if !strings.Contains(out, "bad.json: invalid") {
		t.Errorf("expected the invalid file to be listed, got %q", out)
	}
}

func TestWriteOutline(t *testing.T) {
	doc := doctree.NewDocument(&doctree.Meta{Title: "Handbook"})
	ch := doctree.NewSection("1 Introduction", "1", "3")
	doc.Append(ch)
	ch.Append(
		doctree.NewParagraph("First paragraph\nsecond line", "3", "Times", 10, nil, 4),
		doctree.NewSection("1.1 A rather long section title that will not fit", "1.1", "4"),
		doctree.NewFloat("Figure 1: Overview", "1", "4"),
	)

	var buf bytes.Buffer
	if err := writeOutline(&buf, doc, 0, false); err != nil {
		t.Fatal(err)
	}
	want := "Handbook\n" +
		"  1 Introduction (p. 3)\n" +
		"    1.1 A rather long section title that will not fit (p. 4)\n"
	if buf.String() != want {
		t.Errorf("outline mismatch:\n got %q\nwant %q", buf.String(), want)
	}

	buf.Reset()
	if err := writeOutline(&buf, doc, 0, true); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 || lines[2] != "    ¶ First paragraph" || lines[4] != "    ▭ Figure 1: Overview" {
		t.Errorf("unexpected full outline %q", lines)
	}

	buf.Reset()
	if err := writeOutline(&buf, doc, 20, false); err != nil {
		t.Fatal(err)
	}
	for _, l := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if len([]rune(l)) > 20 {
			t.Errorf("line %q exceeds 20 cells", l)
		}
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"much longer text", 8, "much lo…"},
		{"日本語のタイトル", 7, "日本語…"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := fit(tt.in, tt.width); got != tt.want {
			t.Errorf("fit(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
