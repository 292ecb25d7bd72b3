package files

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store writes attachment bytes to local disk. Writes are namespaced by a
// meeting-id subdirectory plus a generated name, so the user-supplied file
// name never touches the filesystem.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &Store{baseDir: baseDir}, nil
}

// GenerateName produces a collision-resistant storage name, keeping only
// the extension of the original name.
func GenerateName(originalName string) string {
	return uuid.New().String() + filepath.Ext(originalName)
}

func (s *Store) Save(meetingID, fileName string, src io.Reader) (string, int64, error) {
	dir := filepath.Join(s.baseDir, meetingID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, err
	}

	path := filepath.Join(dir, fileName)
	dst, err := os.Create(path)
	if err != nil {
		return "", 0, err
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(path)
		return "", 0, err
	}
	return path, size, nil
}

func (s *Store) Open(path string) (*os.File, error) {
	return os.Open(path)
}

func (s *Store) Remove(path string) error {
	return os.Remove(path)
}
