package ports

import "go.trai.ch/tape/internal/core/domain"

//go:generate mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks

// Compiler turns sources into an object file invocation.
type Compiler interface {
	// CompileArgv returns the program and arguments compiling sources into object.
	CompileArgv(sources []string, object string, opts domain.ToolOptions) (string, []string, error)
	// RunEnvs returns the environment the compiler needs.
	RunEnvs() map[string]string
}

// Linker turns objects into a target invocation.
type Linker interface {
	// LinkArgv returns the program and arguments linking objects into target.
	LinkArgv(objects []string, target string, opts domain.ToolOptions) (string, []string, error)
	// RunEnvs returns the environment the linker needs.
	RunEnvs() map[string]string
}

// Toolchain resolves compilers and linkers.
type Toolchain interface {
	// Compiler returns the compiler for a source kind.
	Compiler(sourceKind string) (Compiler, error)
	// Linker returns the linker for a target kind built from the given source kinds.
	Linker(kind domain.TargetKind, sourceKinds []string) (Linker, error)
}
