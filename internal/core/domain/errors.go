package domain

import "go.trai.ch/zerr"

var (
	// ErrOperationFailed is returned when a record of a batch fails to execute.
	// Execution of the batch stops at the failing record.
	ErrOperationFailed = zerr.New("build operation failed")

	// ErrCommandFailed is returned when a spawned process exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrCommandNotFound is returned when the program of a spawn cannot be located.
	ErrCommandNotFound = zerr.New("command not found")

	// ErrCommandStartFailed is returned when a process cannot be started.
	ErrCommandStartFailed = zerr.New("failed to start command")

	// ErrUnknownCommand is returned when the executor is handed a record it cannot dispatch.
	ErrUnknownCommand = zerr.New("unknown command record")

	// ErrMakeDirFailed is returned when a directory cannot be created.
	ErrMakeDirFailed = zerr.New("failed to create directory")

	// ErrRemoveFailed is returned when a path cannot be removed.
	ErrRemoveFailed = zerr.New("failed to remove path")

	// ErrCopyFailed is returned when a file or directory cannot be copied.
	ErrCopyFailed = zerr.New("failed to copy")

	// ErrMoveFailed is returned when a path cannot be moved.
	ErrMoveFailed = zerr.New("failed to move")

	// ErrLinkFailed is returned when a link cannot be created.
	ErrLinkFailed = zerr.New("failed to create link")

	// ErrChangeDirFailed is returned when the working directory cannot be changed.
	ErrChangeDirFailed = zerr.New("failed to change directory")

	// ErrDestinationExists is returned when a copy or move refuses to overwrite its destination.
	ErrDestinationExists = zerr.New("destination already exists")

	// ErrPresentFailed is returned when a status line cannot be written.
	ErrPresentFailed = zerr.New("failed to write status")

	// ErrCompilerNotFound is returned when no compiler is known for a source kind.
	ErrCompilerNotFound = zerr.New("no compiler for source kind")

	// ErrLinkerNotFound is returned when no linker is known for a target kind.
	ErrLinkerNotFound = zerr.New("no linker for target kind")

	// ErrNoToolchain is returned when compile or link is requested on a batch without a toolchain.
	ErrNoToolchain = zerr.New("batch has no toolchain")

	// ErrNoSources is returned when compile is requested without any source file.
	ErrNoSources = zerr.New("no source files")

	// ErrDependencyCheckFailed is returned when the change detector cannot evaluate a descriptor.
	ErrDependencyCheckFailed = zerr.New("failed to evaluate dependencies")

	// ErrDependencyCommitFailed is returned when the change detector cannot persist a descriptor.
	ErrDependencyCommitFailed = zerr.New("failed to record dependencies")

	// ErrFileHashFailed is returned when a tracked file cannot be hashed.
	ErrFileHashFailed = zerr.New("failed to hash file")

	// ErrStoreCreateFailed is returned when the dependency store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create dependency store directory")

	// ErrStoreReadFailed is returned when a dependency record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read dependency record")

	// ErrStoreUnmarshalFailed is returned when a dependency record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal dependency record")

	// ErrStoreMarshalFailed is returned when a dependency record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal dependency record")

	// ErrStoreWriteFailed is returned when a dependency record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write dependency record")

	// ErrConfigReadFailed is returned when the tapefile cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read tapefile")

	// ErrConfigNotFound is returned when no tapefile exists in the directory or its parents.
	ErrConfigNotFound = zerr.New("no tape.yaml found")

	// ErrConfigParseFailed is returned when the tapefile cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse tapefile")

	// ErrInvalidStep is returned when a tapefile step does not name exactly one operation.
	ErrInvalidStep = zerr.New("step must name exactly one operation")

	// ErrInvalidEcho is returned when a run step carries an unknown echo level.
	ErrInvalidEcho = zerr.New("invalid echo, expected 'visible', 'verbose' or 'silent'")

	// ErrInvalidTargetKind is returned when a target kind is not binary, static or shared.
	ErrInvalidTargetKind = zerr.New("invalid target kind, expected 'binary', 'static' or 'shared'")

	// ErrInvalidLastMtime is returned when the tapefile lastmtime is not an RFC 3339 timestamp.
	ErrInvalidLastMtime = zerr.New("invalid lastmtime, expected RFC 3339 timestamp")

	// ErrWatcherCreateFailed is returned when the file watcher cannot be created.
	ErrWatcherCreateFailed = zerr.New("failed to create file watcher")

	// ErrWatcherAddFailed is returned when a path cannot be added to the watcher.
	ErrWatcherAddFailed = zerr.New("failed to watch path")

	// ErrCleanFailed is returned when the state directory cannot be removed.
	ErrCleanFailed = zerr.New("failed to remove state directory")
)
