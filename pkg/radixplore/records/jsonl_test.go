package records

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriterTruncatesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	if err := os.WriteFile(path, []byte("stale content\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	for _, name := range []string{"Acme Gold", "Iron Ridge"} {
		rec := FinalRecord{
			Mention:       Mention{ProjectName: name, PageNumber: 1},
			Justification: "no candidates",
		}
		if err := w.Append(rec); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if strings.Contains(content, "stale") {
		t.Errorf("Output file should be truncated at run start")
	}
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), content)
	}
	if !strings.Contains(lines[0], `"project_name":"Acme Gold"`) {
		t.Errorf("Unexpected first line: %s", lines[0])
	}
	if !strings.Contains(lines[0], `"coordinates":null`) {
		t.Errorf("Null coordinates must serialize as null: %s", lines[0])
	}
}

func TestLoadMentionsSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mentions.jsonl")
	content := `{"pdf_file":"a.pdf","page_number":2,"project_name":"Acme Gold","ner_confidence":0.98,"context_sentence":"Acme Gold is in WA.","coordinates":null}
not json
{"pdf_file":"b.pdf","page_number":1,"project_name":"Iron Ridge","ner_confidence":0.91,"context_sentence":"Iron Ridge update.","coordinates":null}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	mentions, err := LoadMentions(path)
	if err != nil {
		t.Fatalf("LoadMentions: %v", err)
	}
	if len(mentions) != 2 {
		t.Fatalf("Expected 2 mentions, got %d", len(mentions))
	}
	if mentions[0].ProjectName != "Acme Gold" || mentions[0].PageNumber != 2 {
		t.Errorf("Unexpected mention: %+v", mentions[0])
	}
	if mentions[1].PDFFile != "b.pdf" {
		t.Errorf("Unexpected mention: %+v", mentions[1])
	}
}

func TestLoadMentionsMissingFile(t *testing.T) {
	if _, err := LoadMentions(filepath.Join(t.TempDir(), "none.jsonl")); err == nil {
		t.Fatal("Expected error for missing file")
	}
}
