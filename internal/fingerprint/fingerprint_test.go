package fingerprint

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFile_SameContentSameFingerprint(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "identical bytes")
	b := writeFile(t, dir, "b.txt", "identical bytes")

	if File(a) != File(b) {
		t.Error("identical content at different paths should fingerprint equal")
	}
}

func TestFile_DifferentContent(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "one")
	b := writeFile(t, dir, "b.txt", "two")

	if File(a) == File(b) {
		t.Error("different content should fingerprint differently")
	}
}

func TestFile_Deterministic(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "stable")
	if File(path) != File(path) {
		t.Error("fingerprint should be stable across calls")
	}
}

func TestFile_UnreadableFallback(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")

	fp1 := File(missing)
	fp2 := File(missing)

	if !strings.HasPrefix(fp1, "unhashed-") {
		t.Errorf("fallback fingerprint = %q, want unhashed- prefix", fp1)
	}
	if fp1 == fp2 {
		t.Error("fallback fingerprints must be unique per attempt")
	}
}
