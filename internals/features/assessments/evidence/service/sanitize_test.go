package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"annual report 2024.pdf", "annual_report_2024.pdf"},
		{"ผลตรวจ.xlsx", "file.xlsx"},
		{"a@@@b###c.png", "a_b_c.png"},
		{"___already___messy___.txt", "already_messy.txt"},
		{"noext", "noext"},
		{"", "file"},
		{"..", "file"},
		{"weird..name..doc", "weird..name..doc"},
		{"UPPER-case_ok.JPG", "UPPER-case_ok.JPG"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeFileName(tc.in), "input %q", tc.in)
	}
}

// Sanitizing and then re-deriving the extension yields the original
// extension unchanged for single-dot inputs.
func TestSanitizePreservesExtension(t *testing.T) {
	for _, name := range []string{
		"scan result.pdf",
		"evidence (final).docx",
		"photo 01!!.jpeg",
		"x.a",
	} {
		orig := filepath.Ext(name)
		got := filepath.Ext(SanitizeFileName(name))
		assert.Equal(t, orig, got, "input %q", name)
	}
}

func TestSanitizeStripsPathComponents(t *testing.T) {
	assert.Equal(t, "passwd", SanitizeFileName("../../etc/passwd"))
	assert.Equal(t, "report.pdf", SanitizeFileName("/tmp/report.pdf"))
}

func TestBuildObjectKey(t *testing.T) {
	aid := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	oid := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	at := time.Unix(1700000000, 0)

	key := BuildObjectKey("evidence/", aid, oid, at, "report.pdf")
	assert.Equal(t,
		"evidence/11111111-1111-1111-1111-111111111111/22222222-2222-2222-2222-222222222222/1700000000_report.pdf",
		key)

	// No prefix still yields a clean relative key.
	key = BuildObjectKey("", aid, oid, at, "report.pdf")
	assert.Equal(t,
		"11111111-1111-1111-1111-111111111111/22222222-2222-2222-2222-222222222222/1700000000_report.pdf",
		key)
}
