// file: internals/features/assessments/evidence/service/sanitize.go
package service

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	unsafeChars     = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)
	repeatedUnders  = regexp.MustCompile(`_{2,}`)
)

// SanitizeFileName produces a storage-safe name: characters outside
// alphanumeric/underscore/hyphen/dot become underscores, runs of
// underscores collapse to one, and the original extension is preserved.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(filepath.Base(name))
	if name == "" || name == "." || name == ".." {
		return "file"
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	clean := func(s string) string {
		s = unsafeChars.ReplaceAllString(s, "_")
		s = repeatedUnders.ReplaceAllString(s, "_")
		return strings.Trim(s, "_")
	}

	stem = clean(stem)
	if stem == "" {
		stem = "file"
	}

	// The extension keeps its dot; the rest of it is cleaned the same way.
	if ext != "" {
		ext = "." + clean(strings.TrimPrefix(ext, "."))
		if ext == "." {
			ext = ""
		}
	}
	return stem + ext
}

// BuildObjectKey renders the blob path convention:
// {assessment_id}/{owner_id}/{unix_ts}_{sanitized_name}, under the
// configured storage prefix.
func BuildObjectKey(prefix string, assessmentID, ownerID uuid.UUID, at time.Time, safeName string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	key := fmt.Sprintf("%s/%s/%d_%s", assessmentID, ownerID, at.Unix(), safeName)
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}
