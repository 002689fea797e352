// Package console renders batch status lines on a terminal.
package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"go.trai.ch/tape/internal/adapters/detector"
	"go.trai.ch/tape/internal/ui/output"
	"go.trai.ch/tape/internal/ui/style"
)

const ellipsis = "..."

// Presenter implements ports.Presenter.
// In overwrite mode it redraws a single status line in place; in scroll mode
// every status line is printed on its own line.
type Presenter struct {
	out     *termenv.Output
	verbose bool
	mode    detector.OutputMode
	detect  func() detector.OutputMode
	width   func() int

	mu        sync.Mutex
	resolved  bool
	overwrite bool
	midLine   bool
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithVerbose prints every status line unmodified.
func WithVerbose(verbose bool) Option {
	return func(p *Presenter) {
		p.verbose = verbose
	}
}

// WithMode fixes the output mode. ModeAuto defers to detection.
func WithMode(mode detector.OutputMode) Option {
	return func(p *Presenter) {
		p.mode = mode
	}
}

// WithDetector replaces the environment detection used by ModeAuto.
func WithDetector(detect func() detector.OutputMode) Option {
	return func(p *Presenter) {
		if detect != nil {
			p.detect = detect
		}
	}
}

// WithWidth replaces the terminal width query.
func WithWidth(width func() int) Option {
	return func(p *Presenter) {
		if width != nil {
			p.width = width
		}
	}
}

// New creates a Presenter writing to w. A nil writer means stdout.
func New(w io.Writer, opts ...Option) *Presenter {
	if w == nil {
		w = os.Stdout
	}

	p := &Presenter{
		out:    output.New(w),
		detect: detector.DetectEnvironment,
		width:  func() int { return output.Width(w) },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Render shows a status line.
func (p *Presenter) Render(text string, progress *int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.verbose {
		if err := p.breakLocked(); err != nil {
			return err
		}
		return p.writeLine(text)
	}

	if !p.overwriteMode() {
		return p.writeLine(text)
	}

	if _, err := p.out.WriteString("\r"); err != nil {
		return err
	}
	p.out.ClearLine()

	line := Elide(text, p.width())
	if progress != nil && *progress >= 100 {
		p.midLine = false
		return p.writeLine(line)
	}

	if _, err := p.out.WriteString(line); err != nil {
		return err
	}
	p.midLine = true
	return nil
}

// Println ends any in-place status line and prints text on its own line.
func (p *Presenter) Println(text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.breakLocked(); err != nil {
		return err
	}
	return p.writeLine(text)
}

// Break ends any in-place status line.
func (p *Presenter) Break() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.breakLocked()
}

// overwriteMode resolves the mode on first use and keeps it for the
// lifetime of the Presenter.
func (p *Presenter) overwriteMode() bool {
	if !p.resolved {
		mode := p.mode
		if mode == detector.ModeAuto {
			mode = p.detect()
		}
		p.overwrite = mode == detector.ModeOverwrite
		p.resolved = true
	}
	return p.overwrite
}

func (p *Presenter) breakLocked() error {
	if !p.midLine {
		return nil
	}
	p.midLine = false
	_, err := p.out.WriteString("\n")
	return err
}

func (p *Presenter) writeLine(text string) error {
	_, err := p.out.WriteString(text + "\n")
	return err
}

// Elide fits text into width terminal cells.
// Text that fits is returned unchanged. Otherwise escape sequences are dropped
// and the middle is replaced by "...", keeping width/2-3 cells on each side.
// Widths too small for that are cut from the right.
func Elide(text string, width int) string {
	if ansi.StringWidth(text) <= width {
		return text
	}

	plain := ansi.Strip(text)
	keep := width/2 - len(ellipsis)
	if keep <= 0 {
		return ansi.Truncate(plain, max(width, 0), "")
	}

	head := ansi.Truncate(plain, keep, "")
	tail := ansi.TruncateLeft(plain, ansi.StringWidth(plain)-keep, "")
	return head + ellipsis + tail
}

// ProgressText renders a progress status line with the percentage highlighted.
func ProgressText(progress int, text string) string {
	return style.Progress.Render(fmt.Sprintf("[%3d%%]:", progress)) + " " + text
}
