package log

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/keboola/kbc-conform/internal/pkg/utils/errors"
)

type File struct {
	file *os.File
	path string
	temp bool
}

// NewLogFile opens the log file defined by the flag or creates a temp file.
// The log file can be outside the working directory, so it is NOT using the afero filesystem.
func NewLogFile(path string) (*File, error) {
	f := &File{}
	if len(path) == 0 {
		randomHash := ``
		randomBytes := make([]byte, 6)
		if _, err := rand.Read(randomBytes); err == nil {
			randomHash = fmt.Sprintf(`-%x`, randomBytes)
		}

		// nolint: forbidigo
		f.path = filepath.Join(os.TempDir(), fmt.Sprintf("kbc-conform-%d%s.txt", time.Now().Unix(), randomHash))
		f.temp = true
	} else {
		// nolint: forbidigo
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		f.path = abs
	}

	// nolint: forbidigo
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, errors.Errorf("cannot open log file \"%s\": %w", f.path, err)
	}
	f.file = file
	return f, nil
}

func (f *File) File() *os.File {
	return f.file
}

func (f *File) Path() string {
	return f.path
}

func (f *File) IsTemp() bool {
	return f.temp
}

// TearDown closes the file, a temp file is preserved only if an error occurred.
func (f *File) TearDown(errorOccurred bool) error {
	if f == nil {
		return nil
	}

	if err := f.file.Close(); err != nil {
		return errors.Errorf("cannot close log file \"%s\": %w", f.path, err)
	}

	if !errorOccurred && f.temp {
		// nolint: forbidigo
		if err := os.Remove(f.path); err != nil {
			return errors.Errorf("cannot remove temp log file \"%s\": %w", f.path, err)
		}
	}
	return nil
}
