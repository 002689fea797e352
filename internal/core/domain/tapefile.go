package domain

import "time"

// CompilerOptions configures the compile convenience builder.
type CompilerOptions struct {
	// SourceKind selects the compiler. Empty means derived from the first source.
	SourceKind string
	// Env is merged over the compiler's run environment.
	Env map[string]string
	// Tool is appended to the owner target's tool options.
	Tool ToolOptions
}

// LinkerOptions configures the link convenience builder.
type LinkerOptions struct {
	// TargetKind and SourceKinds select a standalone linker when the batch has no owner.
	TargetKind  TargetKind
	SourceKinds []string
	// Env is merged over the linker's run environment.
	Env map[string]string
	// Tool is appended to the owner target's tool options.
	Tool ToolOptions
}

// CompileStep is a declarative compile entry of a tapefile.
type CompileStep struct {
	Sources []string
	Object  string
	Options CompilerOptions
}

// LinkStep is a declarative link entry of a tapefile.
type LinkStep struct {
	Objects []string
	Target  string
	Options LinkerOptions
}

// Step is one entry of a tapefile. Exactly one field is set.
type Step struct {
	Command Command
	Compile *CompileStep
	Link    *LinkStep
}

// DependSpec is the dependency section of a tapefile.
type DependSpec struct {
	Files     []string
	Values    []any
	CacheKey  string
	LastMtime time.Time
}

// Tapefile is a parsed batch description.
type Tapefile struct {
	Path      string
	Target    *Target
	Toolchain ToolchainConfig
	Depend    DependSpec
	Steps     []Step
}
