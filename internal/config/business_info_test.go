package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBusinessInfo_Defaults(t *testing.T) {
	t.Setenv("BUSINESS_INFO_FILE", "")

	topics, err := LoadBusinessInfo()
	if err != nil {
		t.Fatalf("LoadBusinessInfo() error = %v", err)
	}
	if len(topics) != len(DefaultBusinessInfo) {
		t.Fatalf("LoadBusinessInfo() returned %d topics, want %d", len(topics), len(DefaultBusinessInfo))
	}
	if topics[0].Topic != "hours" {
		t.Errorf("first topic = %q, want %q", topics[0].Topic, "hours")
	}
}

func TestLoadBusinessInfo_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "business.yml")
	content := `topics:
  - topic: hours
    keywords: [open]
    answer: Open all day.
  - topic: parking
    answer: Free parking out back.
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BUSINESS_INFO_FILE", path)

	topics, err := LoadBusinessInfo()
	if err != nil {
		t.Fatalf("LoadBusinessInfo() error = %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("LoadBusinessInfo() returned %d topics, want 2", len(topics))
	}
	if topics[1].Topic != "parking" || topics[1].Answer != "Free parking out back." {
		t.Errorf("loaded topic = %+v", topics[1])
	}
	if len(topics[0].Keywords) != 1 || topics[0].Keywords[0] != "open" {
		t.Errorf("loaded keywords = %v", topics[0].Keywords)
	}
}

func TestLoadBusinessInfo_RejectsBadFile(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yml")
	if err := os.WriteFile(empty, []byte("topics: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BUSINESS_INFO_FILE", empty)
	if _, err := LoadBusinessInfo(); err == nil {
		t.Error("LoadBusinessInfo() accepted a file with no topics")
	}

	missingAnswer := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(missingAnswer, []byte("topics:\n  - topic: hours\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BUSINESS_INFO_FILE", missingAnswer)
	if _, err := LoadBusinessInfo(); err == nil {
		t.Error("LoadBusinessInfo() accepted a topic without an answer")
	}

	t.Setenv("BUSINESS_INFO_FILE", filepath.Join(dir, "nope.yml"))
	if _, err := LoadBusinessInfo(); err == nil {
		t.Error("LoadBusinessInfo() accepted a missing file")
	}
}
