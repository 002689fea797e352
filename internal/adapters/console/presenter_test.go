package console_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tape/internal/adapters/console"
	"go.trai.ch/tape/internal/adapters/detector"
)

func progress(p int) *int {
	return &p
}

func newPresenter(t *testing.T, opts ...console.Option) (*console.Presenter, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	return console.New(buf, opts...), buf
}

func TestPresenter_Scroll(t *testing.T) {
	p, buf := newPresenter(t, console.WithMode(detector.ModeScroll))

	require.NoError(t, p.Render("[ 10%]: compiling a.c", progress(10)))
	require.NoError(t, p.Render("[100%]: linking app", progress(100)))
	require.NoError(t, p.Render("plain message", nil))
	require.NoError(t, p.Println("cc -c a.c"))
	require.NoError(t, p.Break())

	g := goldie.New(t)
	g.Assert(t, "scroll", buf.Bytes())
}

func TestPresenter_Overwrite(t *testing.T) {
	p, buf := newPresenter(t,
		console.WithMode(detector.ModeOverwrite),
		console.WithWidth(func() int { return 40 }),
	)

	require.NoError(t, p.Render("[ 50%]: compiling a.c", progress(50)))
	require.NoError(t, p.Println("cc -c a.c -o a.o"))
	require.NoError(t, p.Render("[100%]: linking app", progress(100)))
	require.NoError(t, p.Render("note", nil))
	require.NoError(t, p.Break())
	require.NoError(t, p.Break())

	g := goldie.New(t)
	g.Assert(t, "overwrite", buf.Bytes())
}

func TestPresenter_OverwriteElidesLongLines(t *testing.T) {
	p, buf := newPresenter(t,
		console.WithMode(detector.ModeOverwrite),
		console.WithWidth(func() int { return 10 }),
	)

	require.NoError(t, p.Render("abcdefghijklmnopqrst", progress(100)))

	assert.Equal(t, "\r\x1b[2Kab...st\n", buf.String())
}

func TestPresenter_Verbose(t *testing.T) {
	p, buf := newPresenter(t,
		console.WithVerbose(true),
		console.WithMode(detector.ModeOverwrite),
		console.WithWidth(func() int { return 10 }),
	)

	require.NoError(t, p.Render("[ 25%]: a status line longer than the terminal", progress(25)))
	require.NoError(t, p.Println("cc -c a.c"))
	require.NoError(t, p.Render("done", nil))

	g := goldie.New(t)
	g.Assert(t, "verbose", buf.Bytes())
}

func TestPresenter_ModeResolvedOnce(t *testing.T) {
	calls := 0
	mode := detector.ModeOverwrite
	p, buf := newPresenter(t,
		console.WithDetector(func() detector.OutputMode {
			calls++
			return mode
		}),
		console.WithWidth(func() int { return 80 }),
	)

	require.NoError(t, p.Render("first", nil))
	mode = detector.ModeScroll
	require.NoError(t, p.Render("second", nil))

	assert.Equal(t, 1, calls)
	assert.Equal(t, "\r\x1b[2Kfirst\r\x1b[2Ksecond", buf.String())
}

func TestPresenter_ExplicitModeSkipsDetection(t *testing.T) {
	called := false
	p, _ := newPresenter(t,
		console.WithMode(detector.ModeScroll),
		console.WithDetector(func() detector.OutputMode {
			called = true
			return detector.ModeOverwrite
		}),
	)

	require.NoError(t, p.Render("line", nil))
	assert.False(t, called)
}

func TestPresenter_VerboseSkipsDetection(t *testing.T) {
	called := false
	p, buf := newPresenter(t,
		console.WithVerbose(true),
		console.WithDetector(func() detector.OutputMode {
			called = true
			return detector.ModeOverwrite
		}),
	)

	require.NoError(t, p.Render("line", progress(10)))
	assert.False(t, called)
	assert.Equal(t, "line\n", buf.String())
}

func TestElide(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{name: "fits", text: "short", width: 10, want: "short"},
		{name: "exact fit", text: "0123456789", width: 10, want: "0123456789"},
		{name: "elided", text: "abcdefghijklmnopqrst", width: 10, want: "ab...st"},
		{name: "odd width", text: "abcdefghijklmnopqrst", width: 11, want: "ab...st"},
		{name: "wider", text: "abcdefghijklmnopqrst", width: 16, want: "abcde...pqrst"},
		{name: "too narrow", text: "abcdefghijklmnopqrst", width: 5, want: "abcde"},
		{name: "zero width", text: "abc", width: 0, want: ""},
		{name: "styled fits", text: "\x1b[1mbold\x1b[0m", width: 10, want: "\x1b[1mbold\x1b[0m"},
		{name: "styled elided", text: "\x1b[1mabcdefghijklmnopqrst\x1b[0m", width: 10, want: "ab...st"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, console.Elide(tt.text, tt.width))
		})
	}
}

func TestElide_Property(t *testing.T) {
	for width := 8; width <= 80; width++ {
		for length := width + 1; length <= 2*width+5; length++ {
			var sb strings.Builder
			for i := range length {
				sb.WriteByte(byte('a' + i%26))
			}
			text := "<" + sb.String() + ">"

			got := console.Elide(text, width)

			assert.LessOrEqual(t, ansi.StringWidth(got), width, "width %d length %d", width, length)
			assert.Contains(t, got, "...")
			assert.True(t, strings.HasPrefix(got, "<"), "first character kept: %q", got)
			assert.True(t, strings.HasSuffix(got, ">"), "last character kept: %q", got)
		}
	}
}

func TestProgressText(t *testing.T) {
	got := ansi.Strip(console.ProgressText(7, "compiling a.c"))
	assert.Equal(t, "[  7%]: compiling a.c", got)
}
