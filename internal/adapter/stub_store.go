package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/pulp/docstub/internal/model"
)

// ManifestFileName is the generation manifest kept next to the stubs. The
// leading dot keeps it out of the documentation tool's glob patterns.
const ManifestFileName = ".docstub.yaml"

const (
	stubFilePerm = os.FileMode(0o644)
	stubDirPerm  = os.FileMode(0o750)
)

// StubStore persists rendered stub documents and the generation manifest in
// an output directory. Stubs are overwritten unconditionally; clearing stale
// files is the caller's responsibility.
type StubStore interface {
	// WriteStub stores one rendered stub under dir, creating dir if needed.
	WriteStub(dir m.Path, stub m.Stub) error

	// ReadStub returns the current on-disk content of the named stub file.
	ReadStub(dir m.Path, fileName string) (string, error)

	// ListStubFiles returns the stub file names present in dir, sorted.
	// A missing directory yields an empty list, not an error.
	ListStubFiles(dir m.Path, docExt string) ([]string, error)

	// SaveManifest writes the generation manifest into dir.
	SaveManifest(dir m.Path, manifest m.Manifest) error

	// LoadManifest reads the manifest from dir. A missing manifest returns
	// an empty one so first runs and pre-manifest directories behave alike.
	LoadManifest(dir m.Path) (m.Manifest, error)
}

// LocalStubStore implements StubStore on the local filesystem.
type LocalStubStore struct{}

// NewLocalStubStore constructs a LocalStubStore.
func NewLocalStubStore() *LocalStubStore {
	return &LocalStubStore{}
}

// WriteStub stores one rendered stub under dir, creating dir if needed.
func (s *LocalStubStore) WriteStub(dir m.Path, stub m.Stub) error {
	if err := os.MkdirAll(string(dir), stubDirPerm); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}

	target := filepath.Join(string(dir), stub.FileName)
	if err := os.WriteFile(target, []byte(stub.Content), stubFilePerm); err != nil {
		return fmt.Errorf("write stub %s: %w", target, err)
	}

	return nil
}

// ReadStub returns the current on-disk content of the named stub file.
func (s *LocalStubStore) ReadStub(dir m.Path, fileName string) (string, error) {
	content, err := os.ReadFile(filepath.Join(string(dir), fileName))
	if err != nil {
		return "", err
	}

	return string(content), nil
}

// ListStubFiles returns the stub file names present in dir, sorted.
func (s *LocalStubStore) ListStubFiles(dir m.Path, docExt string) ([]string, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("list stubs in %s: %w", dir, err)
	}

	var names []string

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), docExt) {
			continue
		}

		names = append(names, entry.Name())
	}

	sort.Strings(names)

	return names, nil
}

// SaveManifest writes the generation manifest into dir.
func (s *LocalStubStore) SaveManifest(dir m.Path, manifest m.Manifest) error {
	content, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	target := filepath.Join(string(dir), ManifestFileName)
	if err := os.WriteFile(target, content, stubFilePerm); err != nil {
		return fmt.Errorf("write manifest %s: %w", target, err)
	}

	return nil
}

// LoadManifest reads the manifest from dir.
func (s *LocalStubStore) LoadManifest(dir m.Path) (m.Manifest, error) {
	content, err := os.ReadFile(filepath.Join(string(dir), ManifestFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return m.Manifest{Version: m.ManifestVersion}, nil
		}

		return m.Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	var manifest m.Manifest
	if err := yaml.Unmarshal(content, &manifest); err != nil {
		return m.Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}

	return manifest, nil
}
