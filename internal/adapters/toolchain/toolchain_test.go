package toolchain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tape/internal/adapters/toolchain"
	"go.trai.ch/tape/internal/core/domain"
)

func env(values map[string]string) func(string) string {
	return func(k string) string { return values[k] }
}

func TestNew_ProgramResolution(t *testing.T) {
	tests := []struct {
		name       string
		cfg        domain.ToolchainConfig
		env        map[string]string
		sourceKind string
		want       string
	}{
		{name: "default C driver", sourceKind: domain.SourceKindC, want: "cc"},
		{name: "default C++ driver", sourceKind: domain.SourceKindCXX, want: "c++"},
		{name: "assembler follows C driver", env: map[string]string{"CC": "clang"}, sourceKind: domain.SourceKindAsm, want: "clang"},
		{name: "CC env", env: map[string]string{"CC": "clang"}, sourceKind: domain.SourceKindC, want: "clang"},
		{name: "CXX env", env: map[string]string{"CXX": "clang++"}, sourceKind: domain.SourceKindCXX, want: "clang++"},
		{name: "config wins over env", cfg: domain.ToolchainConfig{CC: "gcc-14"}, env: map[string]string{"CC": "clang"}, sourceKind: domain.SourceKindC, want: "gcc-14"},
		{name: "explicit assembler", cfg: domain.ToolchainConfig{AS: "nasm"}, sourceKind: domain.SourceKindAsm, want: "nasm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := toolchain.New(tt.cfg, env(tt.env))

			c, err := r.Compiler(tt.sourceKind)
			require.NoError(t, err)

			program, _, err := c.CompileArgv([]string{"a.c"}, "a.o", domain.ToolOptions{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, program)
		})
	}
}

func TestCompiler_Argv(t *testing.T) {
	r := toolchain.New(domain.ToolchainConfig{Env: map[string]string{"LANG": "C"}}, env(nil))

	c, err := r.Compiler(domain.SourceKindC)
	require.NoError(t, err)

	program, args, err := c.CompileArgv([]string{"src/a.c"}, "build/a.o", domain.ToolOptions{
		Defines:     []string{"NDEBUG", "LEVEL=2"},
		IncludeDirs: []string{"include"},
		Flags:       []string{"-O2", "-Wall"},
	})

	require.NoError(t, err)
	assert.Equal(t, "cc", program)
	assert.Equal(t, []string{"-O2", "-Wall", "-DNDEBUG", "-DLEVEL=2", "-Iinclude", "-c", "src/a.c", "-o", "build/a.o"}, args)
	assert.Equal(t, map[string]string{"LANG": "C"}, c.RunEnvs())
}

func TestCompiler_NoSources(t *testing.T) {
	c, err := toolchain.New(domain.ToolchainConfig{}, env(nil)).Compiler(domain.SourceKindC)
	require.NoError(t, err)

	_, _, err = c.CompileArgv(nil, "a.o", domain.ToolOptions{})
	require.ErrorIs(t, err, domain.ErrNoSources)
}

func TestRegistry_UnknownSourceKind(t *testing.T) {
	_, err := toolchain.New(domain.ToolchainConfig{}, env(nil)).Compiler("fortran")
	require.ErrorIs(t, err, domain.ErrCompilerNotFound)
}

func TestLinker_Argv(t *testing.T) {
	opts := domain.ToolOptions{
		LinkDirs: []string{"lib"},
		Links:    []string{"m", "pthread"},
		LDFlags:  []string{"-static-libgcc"},
	}

	tests := []struct {
		name        string
		cfg         domain.ToolchainConfig
		kind        domain.TargetKind
		sourceKinds []string
		wantProgram string
		wantArgs    []string
	}{
		{
			name:        "C binary",
			kind:        domain.TargetBinary,
			sourceKinds: []string{domain.SourceKindC},
			wantProgram: "cc",
			wantArgs:    []string{"a.o", "b.o", "-o", "out/app", "-Llib", "-static-libgcc", "-lm", "-lpthread"},
		},
		{
			name:        "mixed binary uses C++ driver",
			kind:        domain.TargetBinary,
			sourceKinds: []string{domain.SourceKindC, domain.SourceKindCXX},
			wantProgram: "c++",
			wantArgs:    []string{"a.o", "b.o", "-o", "out/app", "-Llib", "-static-libgcc", "-lm", "-lpthread"},
		},
		{
			name:        "shared library",
			kind:        domain.TargetShared,
			sourceKinds: []string{domain.SourceKindC},
			wantProgram: "cc",
			wantArgs:    []string{"-shared", "a.o", "b.o", "-o", "out/app", "-Llib", "-static-libgcc", "-lm", "-lpthread"},
		},
		{
			name:        "explicit linker",
			cfg:         domain.ToolchainConfig{LD: "mold-cc"},
			kind:        domain.TargetBinary,
			wantProgram: "mold-cc",
			wantArgs:    []string{"a.o", "b.o", "-o", "out/app", "-Llib", "-static-libgcc", "-lm", "-lpthread"},
		},
		{
			name:        "static archive",
			kind:        domain.TargetStatic,
			sourceKinds: []string{domain.SourceKindCXX},
			wantProgram: "ar",
			wantArgs:    []string{"-cr", "out/app", "a.o", "b.o"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := toolchain.New(tt.cfg, env(nil)).Linker(tt.kind, tt.sourceKinds)
			require.NoError(t, err)

			program, args, err := l.LinkArgv([]string{"a.o", "b.o"}, "out/app", opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantProgram, program)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestRegistry_UnknownTargetKind(t *testing.T) {
	_, err := toolchain.New(domain.ToolchainConfig{}, env(nil)).Linker("plugin", nil)
	require.ErrorIs(t, err, domain.ErrLinkerNotFound)
}

func TestRunEnvs_AreCopies(t *testing.T) {
	r := toolchain.New(domain.ToolchainConfig{Env: map[string]string{"A": "1"}}, env(nil))
	c, err := r.Compiler(domain.SourceKindC)
	require.NoError(t, err)

	envs := c.RunEnvs()
	envs["A"] = "2"

	assert.Equal(t, "1", c.RunEnvs()["A"])
}
