// Package model defines the data structures for documentation stub generation.
package model

// Path represents a file system path.
type Path string

// Name is a dotted module identifier derived from a source file's path
// relative to the scan root, e.g. "tests.rpm.api_v2.test_sync_publish".
// It doubles as the discovery identifier the downstream test runner uses.
type Name string

// Module pairs a discovered source file with its derived name.
type Module struct {
	Name   Name
	Source Path   // path relative to the scan root
	Hash   string // SHA-256 of the source file contents
}

// Stub is a rendered reference-documentation document for one module.
// FileName and Content are pure functions of the module name.
type Stub struct {
	Module   Module
	FileName string
	Content  string
}
