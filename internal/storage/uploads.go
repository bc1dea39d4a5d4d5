package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

var (
	// ErrFileTooLarge is returned when an upload exceeds the configured cap
	ErrFileTooLarge = errors.New("file size exceeds limit")
	// ErrMissingFile is returned for an empty upload
	ErrMissingFile = errors.New("missing file")

	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
)

const maxNameLength = 100

// Uploads stores uploaded media files in a single flat directory
// and maps them to relative URLs under Prefix
type Uploads struct {
	Dir      string
	Prefix   string
	MaxBytes int64
	Log      *zap.SugaredLogger
}

// StoredFile describes a file written by Save
type StoredFile struct {
	Name string
	Path string
	URL  string
	Meta datatypes.JSONMap
}

// NewUploads creates the upload directory if needed
func NewUploads(dir, prefix string, maxBytes int64, log *zap.SugaredLogger) (*Uploads, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}
	return &Uploads{
		Dir:      dir,
		Prefix:   strings.TrimRight(prefix, "/"),
		MaxBytes: maxBytes,
		Log:      log,
	}, nil
}

// SanitizeFilename reduces name to a safe character set
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		name = ""
	}
	name = unsafeChars.ReplaceAllString(name, "_")
	if len(name) > maxNameLength {
		name = name[len(name)-maxNameLength:]
	}
	if strings.Trim(name, "._") == "" {
		return "file"
	}
	return name
}

// UniqueName prefixes the sanitized name with a uuid
func UniqueName(original string) string {
	return uuid.NewString() + "-" + SanitizeFilename(original)
}

// Save writes the uploaded file into Dir, enforcing MaxBytes
func (u *Uploads) Save(fh *multipart.FileHeader) (*StoredFile, error) {
	if fh == nil || fh.Size == 0 {
		return nil, ErrMissingFile
	}
	if fh.Size > u.MaxBytes {
		return nil, ErrFileTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("cannot open upload: %w", err)
	}
	defer src.Close()

	detected, err := mimetype.DetectReader(src)
	if err != nil {
		return nil, fmt.Errorf("cannot read upload: %w", err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("cannot rewind upload: %w", err)
	}

	name := UniqueName(fh.Filename)
	path := filepath.Join(u.Dir, name)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot create upload file: %w", err)
	}

	// Read one byte past the cap so a lying header is still caught
	written, err := io.Copy(dst, io.LimitReader(src, u.MaxBytes+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > u.MaxBytes {
		err = ErrFileTooLarge
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	return &StoredFile{
		Name: name,
		Path: path,
		URL:  u.Prefix + "/" + name,
		Meta: datatypes.JSONMap{
			"original_name": fh.Filename,
			"content_type":  detected.String(),
			"size":          written,
		},
	}, nil
}

// Writable checks that Dir accepts new files
func (u *Uploads) Writable() error {
	f, err := os.CreateTemp(u.Dir, ".writable-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

// IsHosted reports whether url points at a file this store manages
func (u *Uploads) IsHosted(url string) bool {
	_, ok := u.fileName(url)
	return ok
}

func (u *Uploads) fileName(url string) (string, bool) {
	name, found := strings.CutPrefix(url, u.Prefix+"/")
	if !found || name == "" {
		return "", false
	}
	// Flat directory only, never follow a path out of Dir
	if name != filepath.Base(name) || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return "", false
	}
	return name, true
}

// Remove deletes the file behind a hosted url
func (u *Uploads) Remove(url string) error {
	name, ok := u.fileName(url)
	if !ok {
		return nil
	}
	return os.Remove(filepath.Join(u.Dir, name))
}

// RemoveBestEffort deletes every hosted url, logging failures instead of returning them
func (u *Uploads) RemoveBestEffort(urls ...string) {
	for _, url := range urls {
		if !u.IsHosted(url) {
			continue
		}
		if err := u.Remove(url); err != nil && u.Log != nil {
			u.Log.Warnw("Could not delete upload", "url", url, "error", err)
		}
	}
}
