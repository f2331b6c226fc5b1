package model

// DriftKind classifies one way a stub directory can disagree with the
// scanned tree.
type DriftKind string

// Available DriftKind values.
const (
	// DriftModified marks a stub whose content differs from a fresh render.
	DriftModified DriftKind = "modified"
	// DriftMissing marks a module with no stub on disk.
	DriftMissing DriftKind = "missing"
	// DriftStale marks a stub with no corresponding module in the tree.
	DriftStale DriftKind = "stale"
)

// Drift describes a single out-of-date stub file.
type Drift struct {
	File string
	Kind DriftKind
	Diff string
}
