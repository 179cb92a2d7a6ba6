// Package storage defines the import drop-directory file-system
// abstraction: operators (or sibling instances) place project snapshot
// files here and the importer picks them up.
package storage

import "time"

// FileMeta describes one snapshot file in the drop directory.
type FileMeta struct {
	Path      string
	Checksum  string
	UpdatedAt time.Time
}

// Provider is the interface for drop-directory file operations.
type Provider interface {
	// List returns metadata for every .json file under dir (relative to the drop root).
	List(dir string) ([]FileMeta, error)
	// Read returns the raw bytes of the file at path (relative to the drop root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to the drop root).
	Write(path string, content []byte) error
	// Delete removes the file at path (relative to the drop root).
	Delete(path string) error
	// Move renames oldPath to newPath (both relative to the drop root).
	Move(oldPath, newPath string) error
}
