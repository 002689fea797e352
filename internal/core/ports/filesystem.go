package ports

import "go.trai.ch/tape/internal/core/domain"

// FileSystem performs the filesystem mutations of a batch.
//
//go:generate mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// MakeDir creates path and its parents. An existing directory is not an error.
	MakeDir(path string) error
	// Remove removes path recursively. A missing path is not an error.
	Remove(path string) error
	// Copy copies a file or directory tree.
	Copy(src, dst string, opts domain.CopyOptions) error
	// Move renames src to dst, falling back to copy and remove across devices.
	Move(src, dst string, opts domain.MoveOptions) error
	// Link makes dst a link to src.
	Link(src, dst string, opts domain.LinkOptions) error
	// ChangeDir changes the working directory of the process.
	ChangeDir(path string, opts domain.ChangeDirOptions) error
}
