package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tape/internal/core/domain"
)

func TestDependencies_AddValuesAppends(t *testing.T) {
	d := domain.NewDependencies()

	d.AddValues("a")
	d.AddValues()
	assert.Equal(t, []any{"a"}, d.Values())

	d.AddValues("b", 3)
	assert.Equal(t, []any{"a", "b", 3}, d.Values())
}

func TestDependencies_AddFilesIsOrderedSet(t *testing.T) {
	d := domain.NewDependencies()
	assert.False(t, d.HasFiles())

	d.AddFiles("src/b.c", "src/a.c")
	d.AddFiles("src/b.c", "./src/a.c", "")
	d.AddFiles("include/a.h")

	assert.True(t, d.HasFiles())
	assert.Equal(t, []string{"src/b.c", "src/a.c", "include/a.h"}, d.Files())
}

func TestDependencies_Fields(t *testing.T) {
	d := domain.NewDependencies()
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	d.SetLastMtime(ts)
	d.SetCacheKey("app/a.o")

	assert.Equal(t, ts, d.LastMtime())
	assert.Equal(t, "app/a.o", d.CacheKey())
}

func TestDependencies_CloneIsIndependent(t *testing.T) {
	d := domain.NewDependencies()
	d.AddFiles("a.c")
	d.AddValues("gcc")

	c := d.Clone()
	c.AddFiles("b.c")
	c.AddValues("-O2")
	c.SetCacheKey("other")

	require.Equal(t, []string{"a.c"}, d.Files())
	assert.Equal(t, []any{"gcc"}, d.Values())
	assert.Empty(t, d.CacheKey())
	assert.Equal(t, []string{"a.c", "b.c"}, c.Files())

	c.AddFiles("a.c")
	assert.Len(t, c.Files(), 2)
}

func TestDependencies_ValuesReturnsCopy(t *testing.T) {
	d := domain.NewDependencies()
	d.AddValues("x")

	v := d.Values()
	v[0] = "mutated"

	assert.Equal(t, []any{"x"}, d.Values())
}

func TestDependencies_AddValuesCopiesSlices(t *testing.T) {
	args := []string{"-c", "a.c"}
	nested := []any{[]string{"-O2"}}
	d := domain.NewDependencies()
	d.AddValues(args, nested)

	c := d.Clone()
	args[0] = "-S"
	nested[0].([]string)[0] = "-O0"

	want := []any{[]string{"-c", "a.c"}, []any{[]string{"-O2"}}}
	assert.Equal(t, want, d.Values())
	assert.Equal(t, want, c.Values())
}

func TestDependencies_Resolve(t *testing.T) {
	d := domain.NewDependencies()
	d.AddFiles("src/a.c", "/abs/b.h", "../c.h")
	d.AddValues("gcc")
	d.SetCacheKey("app")

	r := d.Resolve("/work/proj")

	assert.Equal(t, []string{"/work/proj/src/a.c", "/abs/b.h", "/work/c.h"}, r.Files())
	assert.Equal(t, []any{"gcc"}, r.Values())
	assert.Equal(t, "app", r.CacheKey())
	assert.Equal(t, []string{"src/a.c", "/abs/b.h", "../c.h"}, d.Files())
}
