package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"
)

// ErrNotUTF8 is returned when a file holds bytes that are not valid UTF-8.
var ErrNotUTF8 = errors.New("file is not valid UTF-8")

// Files is the persistence collaborator of a Session.
type Files interface {
	Exists(name string) (bool, error)
	Load(name string) (string, error)
	Save(name, text string) error
}

// OSFiles reads and writes the local file system.
type OSFiles struct{}

func (OSFiles) Exists(name string) (bool, error) {
	_, err := os.Stat(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", name, err)
}

func (OSFiles) Load(name string) (string, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", name, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("load %s: %w", name, ErrNotUTF8)
	}
	return string(data), nil
}

// Save writes text verbatim; no trailing newline is added.
func (OSFiles) Save(name, text string) error {
	if err := os.WriteFile(name, []byte(text), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}
