package attachments

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/existflow/daybook/internal/logger"
	"github.com/existflow/daybook/internal/model"
	"github.com/google/uuid"
	"github.com/zeebo/blake3"
)

// ErrInvalidName is returned for filenames that would escape the directory
var ErrInvalidName = errors.New("attachments: invalid filename")

// Manager stores note attachments as randomly named files in one directory
type Manager struct {
	dir string
}

// New creates a manager rooted at dir, creating the directory if needed
func New(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create attachments directory: %w", err)
	}
	return &Manager{dir: dir}, nil
}

// Dir returns the directory holding the files
func (m *Manager) Dir() string {
	return m.dir
}

// Save writes data under a new unique name and returns its reference
func (m *Manager) Save(data []byte) (model.Attachment, error) {
	contentType := http.DetectContentType(data)
	filename := uuid.New().String() + extensionFor(contentType)

	path := filepath.Join(m.dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		logger.Error("Failed to save attachment", logger.F("file", filename), logger.F("error", err))
		return model.Attachment{}, fmt.Errorf("failed to write attachment: %w", err)
	}

	sum := blake3.Sum256(data)
	return model.Attachment{
		Filename:    filename,
		Size:        int64(len(data)),
		Checksum:    hex.EncodeToString(sum[:]),
		ContentType: contentType,
	}, nil
}

// Load reads a stored file
func (m *Manager) Load(filename string) ([]byte, error) {
	path, err := m.Path(filename)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// Path resolves filename inside the managed directory
func (m *Manager) Path(filename string) (string, error) {
	if !validName(filename) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, filename)
	}
	return filepath.Join(m.dir, filename), nil
}

// Delete removes the named files. Missing files and invalid names are skipped.
func (m *Manager) Delete(filenames ...string) {
	for _, name := range filenames {
		path, err := m.Path(name)
		if err != nil {
			logger.Warn("Skipping attachment delete", logger.F("file", name), logger.F("error", err))
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn("Failed to delete attachment", logger.F("file", name), logger.F("error", err))
		}
	}
}

// CleanOrphans deletes every stored file not in referenced and returns the
// names it removed
func (m *Manager) CleanOrphans(referenced map[string]struct{}) ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	var removed []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if _, ok := referenced[e.Name()]; ok {
			continue
		}
		if err := os.Remove(filepath.Join(m.dir, e.Name())); err != nil {
			logger.Warn("Failed to remove orphan attachment", logger.F("file", e.Name()), logger.F("error", err))
			continue
		}
		logger.Debug("Cleaned orphan attachment", logger.F("file", e.Name()))
		removed = append(removed, e.Name())
	}
	return removed, nil
}

func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	default:
		return ".png"
	}
}
