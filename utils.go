package docshelf

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// PDFExtension is the only file extension accepted for uploads.
const PDFExtension = ".pdf"

// NamespacedKey returns the object key of a user's document.
func NamespacedKey(user, filename string) string {
	return user + "/" + filename
}

// UserPrefix returns the key prefix shared by all of a user's documents.
func UserPrefix(user string) string {
	return user + "/"
}

// IsValidFilename validates that a name can be used as the filename segment
// of an object key. It checks that the name:
//   - is not empty, "." or ".."
//   - does not contain "/" or "\" (it must stay a single key segment)
//   - does not contain ".." (path traversal in scratch directories)
//   - is valid UTF-8
//   - does not contain null bytes, control characters (< 0x20) or DEL (0x7f)
//
// Spaces are allowed; uploaded documents often have them.
func IsValidFilename(name string) bool {
	if name == "" || name == "." {
		return false
	}

	if strings.ContainsAny(name, `/\`) {
		return false
	}

	if strings.Contains(name, "..") {
		return false
	}

	if !utf8.ValidString(name) {
		return false
	}

	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}

	return strings.TrimSpace(name) != ""
}

// HasPDFExtension reports whether name ends in ".pdf". The check is case
// sensitive.
func HasPDFExtension(name string) bool {
	return strings.HasSuffix(name, PDFExtension)
}

// IsValidUsername checks that a username is non-empty, has no whitespace or
// control characters, and contains no "/" so it forms exactly one key segment.
func IsValidUsername(name string) bool {
	if name == "" || !utf8.ValidString(name) {
		return false
	}

	for _, r := range name {
		if r == '/' || r == '\\' || r < 0x20 || r == 0x7f || unicode.IsSpace(r) {
			return false
		}
	}

	return true
}

var validBucketNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]*[a-z0-9]$`)

// IsValidBucketName checks a bucket name against the S3 naming rules
// (3-63 chars, lowercase letters, digits, dots and hyphens, no "..").
func IsValidBucketName(name string) bool {
	if len(name) < 3 || len(name) > 63 {
		return false
	}
	return validBucketNameRegex.MatchString(name) && !strings.Contains(name, "..")
}
