package audio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"voicenote/internal/logger"
)

func newTestStager(t *testing.T) (*Stager, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStager(dir, logger.NewDefault("test"))
	if err != nil {
		t.Fatalf("NewStager: %v", err)
	}
	return s, dir
}

func TestStage_WritesRequestScopedFile(t *testing.T) {
	s, dir := newTestStager(t)

	staged, err := s.Stage("req-123", "note.wav", strings.NewReader("RIFF fake audio"))
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}

	want := filepath.Join(dir, "upload_req-123.wav")
	if staged.Path != want {
		t.Errorf("expected path %s, got %s", want, staged.Path)
	}
	if staged.MP3Path != want+".mp3" {
		t.Errorf("expected mp3 path %s, got %s", want+".mp3", staged.MP3Path)
	}

	content, err := os.ReadFile(staged.Path)
	if err != nil {
		t.Fatalf("read staged file: %v", err)
	}
	if string(content) != "RIFF fake audio" {
		t.Errorf("staged content mismatch: %q", content)
	}
}

func TestStage_DistinctRequestsDoNotCollide(t *testing.T) {
	s, _ := newTestStager(t)

	a, err := s.Stage("req-a", "note.wav", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Stage a: %v", err)
	}
	b, err := s.Stage("req-b", "note.wav", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("Stage b: %v", err)
	}
	if a.Path == b.Path {
		t.Errorf("staged paths collide: %s", a.Path)
	}
}

func TestCleanup_RemovesBothFiles(t *testing.T) {
	s, dir := newTestStager(t)

	staged, err := s.Stage("req-1", "note.ogg", strings.NewReader("audio"))
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if err := os.WriteFile(staged.MP3Path, []byte("mp3"), 0o600); err != nil {
		t.Fatalf("write derivative: %v", err)
	}

	staged.Cleanup()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty temp dir after cleanup, found %d entries", len(entries))
	}
}

func TestCleanup_MissingDerivativeIsFine(t *testing.T) {
	s, dir := newTestStager(t)

	staged, err := s.Stage("req-1", "note.wav", strings.NewReader("audio"))
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}

	// No mp3 was ever produced (e.g. conversion failed before writing).
	staged.Cleanup()
	staged.Cleanup() // idempotent

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected empty temp dir, found %d entries", len(entries))
	}
}

func TestStage_RejectsPathComponentsInRequestID(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "staging")
	s, err := NewStager(dir, logger.NewDefault("test"))
	if err != nil {
		t.Fatalf("NewStager: %v", err)
	}
	outside := filepath.Join(filepath.Dir(dir), "evil")

	ids := []string{
		"",
		"..",
		"a/b",
		`a\b`,
		"../../../evil",
		"../../../../../../tmp/evil",
	}
	for _, id := range ids {
		if _, err := s.Stage(id, "note.wav", strings.NewReader("audio")); err == nil {
			t.Errorf("Stage(%q) should be rejected", id)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no staged files for rejected ids, found %d entries", len(entries))
	}
	if _, err := os.Stat(outside + ".wav"); !os.IsNotExist(err) {
		t.Errorf("file written outside the staging directory: %s.wav", outside)
	}
}

func TestSafeExt(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"note.wav", ".wav"},
		{"note.m4a", ".m4a"},
		{"no-extension", ""},
		{"weird.reallylongext", ""},
		{"../../../etc/passwd", ""},
		{"trailing space. mp3", ""},
	}
	for _, tc := range cases {
		if got := safeExt(tc.filename); got != tc.want {
			t.Errorf("safeExt(%q) = %q, want %q", tc.filename, got, tc.want)
		}
	}
}
