// Package fingerprint computes the content identity used to deduplicate
// imports: a digest of the exact source bytes, independent of path.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
)

const hashChunkSize = 64 * 1024

// File returns the hex SHA-256 of the file's contents, streamed in fixed
// size chunks. When the file can't be read it falls back to an identity
// that is unique per attempt, trading dedup for import robustness; the
// degraded mode is logged, never returned as an error.
func File(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return fallback(path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.CopyBuffer(h, f, make([]byte, hashChunkSize)); err != nil {
		return fallback(path, err)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func fallback(path string, err error) string {
	fmt.Fprintf(os.Stderr, "WARN: fingerprint %s: %v (dedup disabled for this import)\n", path, err)
	return "unhashed-" + uuid.NewString()
}
