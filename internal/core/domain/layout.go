package domain

import "path/filepath"

const (
	// StateDirName is the name of the hidden state directory.
	StateDirName = ".tape"

	// DependDirName is the name of the dependency record directory.
	DependDirName = "depend"

	// TapeFileName is the name of the default tapefile.
	TapeFileName = "tape.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStatePath returns the default root directory for tape state.
func DefaultStatePath() string {
	return StateDirName
}

// DefaultDependPath returns the default path of the dependency record store.
// It joins .tape and depend.
func DefaultDependPath() string {
	return filepath.Join(StateDirName, DependDirName)
}
