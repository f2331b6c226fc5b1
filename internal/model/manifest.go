package model

// ManifestVersion is the current schema version of the generation manifest.
const ManifestVersion = 1

// Manifest records what a generation run produced so that later check runs
// can detect stubs whose source module no longer exists.
type Manifest struct {
	Version int             `yaml:"version"`
	Modules []ManifestEntry `yaml:"modules"`
}

// ManifestEntry is one generated stub in the manifest.
type ManifestEntry struct {
	Name   Name   `yaml:"name"`
	Source Path   `yaml:"source"`
	Hash   string `yaml:"hash"`
}
