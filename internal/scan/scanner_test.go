package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	mustWrite := func(rel string) {
		t.Helper()
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	mustWrite("chat1.txt")
	mustWrite("nested/chat2.TXT")
	mustWrite("notes.md")
	mustWrite(".hidden/chat3.txt")

	files, err := ScanDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2 (.txt only, hidden dirs skipped)", len(files))
	}
	for _, f := range files {
		if f.Size == 0 {
			t.Errorf("Size not recorded for %s", f.Path)
		}
	}
}

func TestScanDir_Missing(t *testing.T) {
	// Unreadable entries are skipped, so a missing root yields nothing
	// rather than an error.
	files, err := ScanDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("len(files) = %d, want 0", len(files))
	}
}
