// Package sid computes stable fingerprints for diagnostics: a hash of a
// diagnostic's source location, code, and message that stays the same
// across repeated analyser runs over the same input, so a driver that
// re-checks a file after a trial edit can recognise "the same complaint"
// even though the Diagnostic values themselves are freshly allocated.
package sid

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// SID is a stable fingerprint, truncated to 16 hex characters for
// readability in logs and JSON output.
type SID string

// New computes a fingerprint from a diagnostic's canonicalised file path,
// character offset, code, and message. Two diagnostics produced from the
// same location with the same code and message always hash identically,
// regardless of which run or which order produced them.
func New(path string, offset int, code, message string) SID {
	parts := []string{
		canonicalizePath(path),
		fmt.Sprintf("%d", offset),
		code,
		message,
	}
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return SID(hex.EncodeToString(hash[:])[:16])
}

// canonicalizePath normalizes a file path so the same file always
// fingerprints identically regardless of how it was referenced (relative
// vs. absolute, symlinked, differently-cased on a case-insensitive FS).
func canonicalizePath(path string) string {
	path = filepath.Clean(path)
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	if isCaseInsensitive() {
		path = strings.ToLower(path)
	}
	return filepath.ToSlash(path)
}

func isCaseInsensitive() bool {
	return runtime.GOOS == "windows" || runtime.GOOS == "darwin"
}
