package docshelf_test

import (
	"testing"

	"github.com/sagarc03/docshelf"
	"github.com/stretchr/testify/assert"
)

func TestNamespacedKey(t *testing.T) {
	assert.Equal(t, "user1/file.pdf", docshelf.NamespacedKey("user1", "file.pdf"))
	assert.Equal(t, "user1/", docshelf.UserPrefix("user1"))
}

func TestIsValidFilename(t *testing.T) {
	invalidUTF8 := string([]byte{'a', 0xff, 'b'})

	tt := []struct {
		Name     string
		Filename string
		Want     bool
	}{
		{Name: "plain pdf", Filename: "file.pdf", Want: true},
		{Name: "with spaces", Filename: "annual report.pdf", Want: true},
		{Name: "unicode", Filename: "résumé.pdf", Want: true},
		{Name: "no extension", Filename: "README", Want: true},

		{Name: "empty", Filename: "", Want: false},
		{Name: "only spaces", Filename: "   ", Want: false},
		{Name: "single dot", Filename: ".", Want: false},
		{Name: "double dot", Filename: "..", Want: false},
		{Name: "double dots in name", Filename: "a..pdf", Want: false},
		{Name: "slash", Filename: "user2/file.pdf", Want: false},
		{Name: "leading slash", Filename: "/file.pdf", Want: false},
		{Name: "backslash", Filename: `dir\file.pdf`, Want: false},
		{Name: "nul byte", Filename: "a\x00.pdf", Want: false},
		{Name: "newline", Filename: "a\n.pdf", Want: false},
		{Name: "DEL", Filename: "a\x7f.pdf", Want: false},
		{Name: "invalid utf8", Filename: invalidUTF8, Want: false},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Want, docshelf.IsValidFilename(tc.Filename))
		})
	}
}

func TestHasPDFExtension(t *testing.T) {
	assert.True(t, docshelf.HasPDFExtension("a.pdf"))
	assert.True(t, docshelf.HasPDFExtension(".pdf"))
	assert.False(t, docshelf.HasPDFExtension("a.PDF"))
	assert.False(t, docshelf.HasPDFExtension("a.pdf.exe"))
	assert.False(t, docshelf.HasPDFExtension("a.txt"))
	assert.False(t, docshelf.HasPDFExtension(""))
}

func TestIsValidUsername(t *testing.T) {
	assert.True(t, docshelf.IsValidUsername("user1"))
	assert.True(t, docshelf.IsValidUsername("jane.doe@example.com"))
	assert.False(t, docshelf.IsValidUsername(""))
	assert.False(t, docshelf.IsValidUsername("a b"))
	assert.False(t, docshelf.IsValidUsername("a/b"))
	assert.False(t, docshelf.IsValidUsername("a\tb"))
}

func TestIsValidBucketName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"apt-pdf-browser", true},
		{"abc", true},
		{"my.bucket.1", true},
		{"ab", false},
		{"Uppercase", false},
		{"-leading", false},
		{"trailing-", false},
		{"double..dot", false},
		{"under_score", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, docshelf.IsValidBucketName(tt.name))
		})
	}
}
