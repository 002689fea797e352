package domain

import (
	"path/filepath"
	"strings"
)

// TargetKind is the kind of artifact a target links.
type TargetKind string

const (
	// TargetBinary is an executable.
	TargetBinary TargetKind = "binary"
	// TargetStatic is a static library archive.
	TargetStatic TargetKind = "static"
	// TargetShared is a shared library.
	TargetShared TargetKind = "shared"
)

// ParseTargetKind validates s. An empty string means binary.
func ParseTargetKind(s string) (TargetKind, error) {
	switch TargetKind(s) {
	case "", TargetBinary:
		return TargetBinary, nil
	case TargetStatic, TargetShared:
		return TargetKind(s), nil
	default:
		return "", ErrInvalidTargetKind
	}
}

// Source kinds understood by the toolchain.
const (
	SourceKindC   = "cc"
	SourceKindCXX = "cxx"
	SourceKindAsm = "as"
)

// SourceKindOf derives the source kind from a file extension.
// Unknown extensions return an empty string.
func SourceKindOf(path string) string {
	switch ext := filepath.Ext(path); ext {
	case ".c":
		return SourceKindC
	case ".S", ".s", ".asm":
		return SourceKindAsm
	default:
		switch strings.ToLower(ext) {
		case ".cc", ".cpp", ".cxx", ".c++", ".mm":
			return SourceKindCXX
		}
		return ""
	}
}

// ToolOptions are the flags a compiler or linker provider turns into arguments.
type ToolOptions struct {
	Defines     []string
	IncludeDirs []string
	Flags       []string
	LinkDirs    []string
	Links       []string
	LDFlags     []string
}

// Merge returns o with the lists of other appended.
func (o ToolOptions) Merge(other ToolOptions) ToolOptions {
	return ToolOptions{
		Defines:     append(append([]string(nil), o.Defines...), other.Defines...),
		IncludeDirs: append(append([]string(nil), o.IncludeDirs...), other.IncludeDirs...),
		Flags:       append(append([]string(nil), o.Flags...), other.Flags...),
		LinkDirs:    append(append([]string(nil), o.LinkDirs...), other.LinkDirs...),
		Links:       append(append([]string(nil), o.Links...), other.Links...),
		LDFlags:     append(append([]string(nil), o.LDFlags...), other.LDFlags...),
	}
}

// Target is the build target owning a batch.
// A batch only reads it to resolve default toolchain context.
type Target struct {
	Name        string
	Kind        TargetKind
	SourceKinds []string
	Options     ToolOptions
}

// ToolchainConfig names the programs of a gcc-style toolchain.
type ToolchainConfig struct {
	CC  string
	CXX string
	AS  string
	LD  string
	AR  string
	Env map[string]string
}
