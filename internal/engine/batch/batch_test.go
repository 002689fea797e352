package batch_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tape/internal/core/domain"
	"go.trai.ch/tape/internal/core/ports/mocks"
	"go.trai.ch/tape/internal/engine/batch"
	"go.uber.org/mock/gomock"
)

func intPtr(v int) *int { return &v }

func TestBatch_IsEmpty(t *testing.T) {
	b := batch.New()
	assert.True(t, b.IsEmpty())
	assert.Nil(t, b.Dependencies())

	b.AddDependencyValues("release")
	assert.True(t, b.IsEmpty(), "dependency data does not append records")

	b.MakeDir("build")
	assert.False(t, b.IsEmpty())
	assert.Equal(t, 1, b.Len())
}

func TestBatch_PreservesAppendOrder(t *testing.T) {
	b := batch.New()

	b.Show("start")
	b.MakeDir("out")
	b.SpawnSilent("true", nil, domain.ExecOptions{})
	b.Copy("a", "out/a", domain.CopyOptions{Symlink: true})
	b.Move("out/a", "out/b", domain.MoveOptions{})
	b.LinkPath("b", "out/c", domain.LinkOptions{Force: true})
	b.Remove("out/b")
	b.ChangeDir("out", domain.ChangeDirOptions{})
	b.SpawnVisible("ls", []string{"-l"}, domain.ExecOptions{Dir: "out"})

	assert.Equal(t, []domain.Command{
		domain.Show{Text: "start"},
		domain.MakeDir{Path: "out"},
		domain.Exec{Echo: domain.EchoSilent, Program: "true"},
		domain.Copy{Src: "a", Dst: "out/a", Options: domain.CopyOptions{Symlink: true}},
		domain.Move{Src: "out/a", Dst: "out/b"},
		domain.Link{Src: "b", Dst: "out/c", Options: domain.LinkOptions{Force: true}},
		domain.Remove{Path: "out/b"},
		domain.ChangeDir{Path: "out"},
		domain.Exec{Echo: domain.EchoVisible, Program: "ls", Args: []string{"-l"}, Options: domain.ExecOptions{Dir: "out"}},
	}, b.Records())
}

func TestBatch_SpawnFoldsInvocationIntoValues(t *testing.T) {
	b := batch.New()
	args := []string{"-c", "a.c"}

	b.SpawnVerbose("gcc", args, domain.ExecOptions{Env: map[string]string{"LANG": "C"}})
	args[1] = "mutated.c"

	deps := b.Dependencies()
	require.NotNil(t, deps)
	assert.Equal(t, []any{"gcc", []string{"-c", "a.c"}}, deps.Values())
	assert.False(t, deps.HasFiles())

	rec, ok := b.Records()[0].(domain.Exec)
	require.True(t, ok)
	assert.Equal(t, domain.EchoVerbose, rec.Echo)
	assert.Equal(t, []string{"-c", "a.c"}, rec.Args)
}

func TestBatch_DependencyAccumulation(t *testing.T) {
	b := batch.New()

	b.AddDependencyValues("a")
	b.AddDependencyValues()
	assert.Equal(t, []any{"a"}, b.Dependencies().Values())

	b.AddDependencyValues("b")
	assert.Equal(t, []any{"a", "b"}, b.Dependencies().Values())

	ts := time.Unix(1700000000, 0)
	b.AddDependencyFiles("src/a.c")
	b.AddDependencyFiles("src/b.c", "src/a.c")
	b.SetLastMtime(ts)
	b.SetDependencyCache("app")

	deps := b.Dependencies()
	assert.Equal(t, []string{"src/a.c", "src/b.c"}, deps.Files())
	assert.Equal(t, ts, deps.LastMtime())
	assert.Equal(t, "app", deps.CacheKey())
}

func TestBatch_DependenciesReturnsCopy(t *testing.T) {
	b := batch.New()
	b.AddDependencyFiles("a.c")

	b.Dependencies().AddFiles("b.c")

	assert.Equal(t, []string{"a.c"}, b.Dependencies().Files())
}

func TestBatch_Show(t *testing.T) {
	b := batch.New()

	b.Show("building %s", "app")
	b.Show("100% literal")

	assert.Equal(t, []domain.Command{
		domain.Show{Text: "building app"},
		domain.Show{Text: "100% literal"},
	}, b.Records())
}

func TestBatch_ShowProgressNilIsNoop(t *testing.T) {
	b := batch.New()

	b.ShowProgress(nil, "building %s", "a.c")

	assert.True(t, b.IsEmpty())
}

func TestBatch_ShowProgress(t *testing.T) {
	progress := 45
	b := batch.New()

	b.ShowProgress(&progress, "compiling %s", "a.c")
	progress = 99

	assert.Equal(t, []domain.Command{
		domain.Show{Text: "[ 45%]: compiling a.c", Progress: intPtr(45)},
	}, b.Records())
}

func TestBatch_ShowProgressCustomFormatter(t *testing.T) {
	b := batch.New(batch.WithProgressFormatter(func(p int, text string) string {
		return text + "@" + string(rune('0'+p/10))
	}))

	b.ShowProgress(intPtr(70), "link")

	rec, ok := b.Records()[0].(domain.Show)
	require.True(t, ok)
	assert.Equal(t, "link@7", rec.Text)
}

func TestBatch_CompileAndLink(t *testing.T) {
	ctrl := gomock.NewController(t)
	toolchain := mocks.NewMockToolchain(ctrl)
	compiler := mocks.NewMockCompiler(ctrl)
	linker := mocks.NewMockLinker(ctrl)

	toolchain.EXPECT().Compiler(domain.SourceKindC).Return(compiler, nil)
	compiler.EXPECT().
		CompileArgv([]string{"a.c"}, "/out/a.o", domain.ToolOptions{}).
		Return("gcc", []string{"-c", "-o", "/out/a.o", "a.c"}, nil)
	compiler.EXPECT().RunEnvs().Return(map[string]string{"LANG": "C", "CCACHE": "0"})

	toolchain.EXPECT().Linker(domain.TargetBinary, nil).Return(linker, nil)
	linker.EXPECT().
		LinkArgv([]string{"/out/a.o"}, "/out/app", domain.ToolOptions{}).
		Return("gcc", []string{"-o", "/out/app", "/out/a.o"}, nil)
	linker.EXPECT().RunEnvs().Return(nil)

	b := batch.New(batch.WithToolchain(toolchain))
	b.MakeDir("/out")
	require.NoError(t, b.Compile([]string{"a.c"}, "/out/a.o", domain.CompilerOptions{
		Env: map[string]string{"CCACHE": "1"},
	}))
	require.NoError(t, b.Link([]string{"/out/a.o"}, "/out/app", domain.LinkerOptions{}))

	assert.Equal(t, []domain.Command{
		domain.MakeDir{Path: "/out"},
		domain.MakeDir{Path: "/out"},
		domain.Exec{
			Echo:    domain.EchoVerbose,
			Program: "gcc",
			Args:    []string{"-c", "-o", "/out/a.o", "a.c"},
			Options: domain.ExecOptions{Env: map[string]string{"LANG": "C", "CCACHE": "1"}},
		},
		domain.MakeDir{Path: "/out"},
		domain.Exec{
			Echo:    domain.EchoVerbose,
			Program: "gcc",
			Args:    []string{"-o", "/out/app", "/out/a.o"},
		},
	}, b.Records())

	assert.Equal(t, []any{
		"gcc", []string{"-c", "-o", "/out/a.o", "a.c"},
		"gcc", []string{"-o", "/out/app", "/out/a.o"},
	}, b.Dependencies().Values())
}

func TestBatch_LinkUsesOwnerTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	toolchain := mocks.NewMockToolchain(ctrl)
	linker := mocks.NewMockLinker(ctrl)

	owner := &domain.Target{
		Name:        "core",
		Kind:        domain.TargetStatic,
		SourceKinds: []string{domain.SourceKindCXX},
		Options:     domain.ToolOptions{Links: []string{"m"}},
	}

	toolchain.EXPECT().Linker(domain.TargetStatic, []string{domain.SourceKindCXX}).Return(linker, nil)
	linker.EXPECT().
		LinkArgv([]string{"a.o"}, "lib/libcore.a", domain.ToolOptions{Links: []string{"m", "pthread"}}).
		Return("ar", []string{"-cr", "lib/libcore.a", "a.o"}, nil)
	linker.EXPECT().RunEnvs().Return(nil)

	b := batch.New(batch.WithOwner(owner), batch.WithToolchain(toolchain))
	err := b.Link([]string{"a.o"}, "lib/libcore.a", domain.LinkerOptions{
		TargetKind: domain.TargetShared,
		Tool:       domain.ToolOptions{Links: []string{"pthread"}},
	})
	require.NoError(t, err)

	assert.Same(t, owner, b.Owner())
	assert.Equal(t, domain.MakeDir{Path: "lib"}, b.Records()[0])
}

func TestBatch_CompileErrors(t *testing.T) {
	t.Run("no sources", func(t *testing.T) {
		err := batch.New().Compile(nil, "a.o", domain.CompilerOptions{})
		require.ErrorIs(t, err, domain.ErrNoSources)
	})

	t.Run("no toolchain", func(t *testing.T) {
		err := batch.New().Compile([]string{"a.c"}, "a.o", domain.CompilerOptions{})
		require.ErrorIs(t, err, domain.ErrNoToolchain)
	})

	t.Run("unknown source kind", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		toolchain := mocks.NewMockToolchain(ctrl)
		toolchain.EXPECT().Compiler("").Return(nil, domain.ErrCompilerNotFound)

		b := batch.New(batch.WithToolchain(toolchain))
		err := b.Compile([]string{"notes.txt"}, "a.o", domain.CompilerOptions{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrCompilerNotFound.Error())
		assert.True(t, b.IsEmpty())
	})

	t.Run("explicit source kind", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		toolchain := mocks.NewMockToolchain(ctrl)
		compiler := mocks.NewMockCompiler(ctrl)
		toolchain.EXPECT().Compiler(domain.SourceKindCXX).Return(compiler, nil)
		compiler.EXPECT().CompileArgv(gomock.Any(), "x.o", gomock.Any()).Return("c++", []string{"-c", "x.inc"}, nil)
		compiler.EXPECT().RunEnvs().Return(nil)

		b := batch.New(batch.WithToolchain(toolchain))
		require.NoError(t, b.Compile([]string{"x.inc"}, "x.o", domain.CompilerOptions{SourceKind: domain.SourceKindCXX}))
		assert.Equal(t, 2, b.Len())
	})
}
