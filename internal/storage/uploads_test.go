package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/localnerve/recipedb/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newStore(t *testing.T, maxBytes int64) *Uploads {
	t.Helper()
	u, err := NewUploads(filepath.Join(t.TempDir(), "uploads"), "/uploads/", maxBytes, testhelpers.NopLogger())
	require.NoError(t, err)
	return u
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":          "photo.jpg",
		"my photo (1).png":   "my_photo__1_.png",
		"../../etc/passwd":   "passwd",
		`C:\Users\me\x.gif`:  "x.gif",
		"résumé.pdf":         "r_sum_.pdf",
		"":                   "file",
		"..":                 "file",
		"some-file_v2.2.mp4": "some-file_v2.2.mp4",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeFilename(in), in)
	}
}

func TestUniqueNameIsPrefixed(t *testing.T) {
	a := UniqueName("cake.jpg")
	b := UniqueName("cake.jpg")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, "-cake.jpg"))
	// uuid string plus separator
	assert.Len(t, a, 36+1+len("cake.jpg"))
}

func TestSaveWritesFileAndMeta(t *testing.T) {
	u := newStore(t, 1<<20)
	assert.Equal(t, "/uploads", u.Prefix)

	content := append(append([]byte{}, pngHeader...), make([]byte, 64)...)
	fh := testhelpers.MultipartFileHeader(t, "cover shot.png", content)

	stored, err := u.Save(fh)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored.URL, "/uploads/"))
	assert.True(t, strings.HasSuffix(stored.Name, "-cover_shot.png"))
	assert.Equal(t, "image/png", stored.Meta["content_type"])
	assert.Equal(t, "cover shot.png", stored.Meta["original_name"])
	assert.EqualValues(t, len(content), stored.Meta["size"])

	data, err := os.ReadFile(stored.Path)
	require.NoError(t, err)
	assert.Equal(t, content, data)
	assert.True(t, u.IsHosted(stored.URL))
}

func TestSaveRejectsOversize(t *testing.T) {
	u := newStore(t, 8)
	fh := testhelpers.MultipartFileHeader(t, "big.bin", make([]byte, 9))

	_, err := u.Save(fh)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	entries, err := os.ReadDir(u.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveRejectsMissing(t *testing.T) {
	u := newStore(t, 8)
	_, err := u.Save(nil)
	assert.ErrorIs(t, err, ErrMissingFile)
}

func TestIsHosted(t *testing.T) {
	u := newStore(t, 8)
	assert.True(t, u.IsHosted("/uploads/abc.png"))
	assert.False(t, u.IsHosted("https://example.com/uploads/abc.png"))
	assert.False(t, u.IsHosted("/uploads/"))
	assert.False(t, u.IsHosted("/uploads/../secret"))
	assert.False(t, u.IsHosted("/uploads/nested/abc.png"))
	assert.False(t, u.IsHosted("/uploadsx/abc.png"))
}

func TestRemoveBestEffort(t *testing.T) {
	u := newStore(t, 1<<20)
	fh := testhelpers.MultipartFileHeader(t, "a.txt", []byte("hello"))
	stored, err := u.Save(fh)
	require.NoError(t, err)

	// Missing files and external urls are ignored
	u.RemoveBestEffort(stored.URL, "/uploads/missing.txt", "https://example.com/x.png")

	_, err = os.Stat(stored.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestWritable(t *testing.T) {
	u := newStore(t, 8)
	assert.NoError(t, u.Writable())

	entries, err := os.ReadDir(u.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
