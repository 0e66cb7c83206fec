package credstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// DefaultCredentialsFile is the file name used under the user config directory.
const DefaultCredentialsFile = "credentials.yaml"

type credentialsDoc struct {
	Token   string `yaml:"token"`
	SavedAt string `yaml:"saved_at,omitempty"`
}

// File keeps the token in a YAML file readable only by the owner.
type File struct {
	snapshot
	path string
}

// DefaultCredentialsPath returns <UserConfigDir>/chupacabra/credentials.yaml.
func DefaultCredentialsPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "chupacabra", DefaultCredentialsFile), nil
}

// NewFile opens a file-backed store at path, loading any token already there.
// A missing or unreadable file yields an empty store.
func NewFile(path string) *File {
	f := &File{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", path).Msg("unable to read credentials file")
		}
		return f
	}
	var doc credentialsDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("unable to parse credentials file")
		return f
	}
	if doc.Token != "" {
		f.set(doc.Token)
	}
	return f
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

func (f *File) Save(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.set(token)
	doc := credentialsDoc{Token: token, SavedAt: time.Now().UTC().Format(time.RFC3339)}
	if err := f.write(doc); err != nil {
		log.Warn().Err(err).Str("path", f.path).Msg("unable to persist token")
	}
}

func (f *File) Delete() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.clear()
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Str("path", f.path).Msg("unable to remove credentials file")
	}
}

// write replaces the file through a temp file and rename so that a crash
// never leaves a partial token on disk.
func (f *File) write(doc credentialsDoc) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("unable to create credentials directory: %w", err)
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("unable to encode credentials: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".credentials-*")
	if err != nil {
		return fmt.Errorf("unable to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}
