package domain

import (
	"strconv"
	"strings"
)

// Kind identifies the operation a Command record performs.
type Kind uint8

const (
	// KindShow emits a status line.
	KindShow Kind = iota + 1
	// KindRunVisible spawns a process whose output is always shown.
	KindRunVisible
	// KindRunVerbose spawns a process whose invocation is shown in verbose and dry-run mode.
	KindRunVerbose
	// KindRunSilent spawns a process that is never shown.
	KindRunSilent
	// KindMakeDir creates a directory.
	KindMakeDir
	// KindRemove removes a path.
	KindRemove
	// KindCopy copies a file or directory.
	KindCopy
	// KindMove moves a file or directory.
	KindMove
	// KindLink creates a symbolic or hard link.
	KindLink
	// KindChangeDir changes the working directory.
	KindChangeDir
)

var kindNames = [...]string{
	KindShow:       "show",
	KindRunVisible: "run-visible",
	KindRunVerbose: "run-verbose",
	KindRunSilent:  "run-silent",
	KindMakeDir:    "mkdir",
	KindRemove:     "rm",
	KindCopy:       "cp",
	KindMove:       "mv",
	KindLink:       "ln",
	KindChangeDir:  "cd",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Command is one deferred operation of a batch.
// The set of implementations is closed: only the types of this file satisfy it.
type Command interface {
	Kind() Kind
	String() string
	command()
}

// Echo selects how much of a spawned process is shown to the user.
type Echo uint8

const (
	// EchoVisible streams the process output to the console.
	EchoVisible Echo = iota
	// EchoVerbose captures the output and shows the invocation only on request.
	EchoVerbose
	// EchoSilent captures the output and never shows the invocation.
	EchoSilent
)

// ParseEcho parses the textual form used by tapefiles.
func ParseEcho(s string) (Echo, error) {
	switch s {
	case "visible":
		return EchoVisible, nil
	case "", "verbose":
		return EchoVerbose, nil
	case "silent":
		return EchoSilent, nil
	default:
		return 0, ErrInvalidEcho
	}
}

// ExecOptions configures a spawned process.
type ExecOptions struct {
	// Env overrides variables of the inherited environment.
	Env map[string]string
	// Dir is the working directory of the process. Empty means the current one.
	Dir string
	// LogOutput logs the captured output of a verbose process that succeeded.
	// The executor sets it for verbose runs.
	LogOutput bool
}

// CopyOptions configures a copy.
type CopyOptions struct {
	// Symlink copies symbolic links as links instead of following them.
	Symlink bool
	// NoClobber refuses to overwrite an existing destination file.
	NoClobber bool
}

// MoveOptions configures a move.
type MoveOptions struct {
	// NoClobber refuses to overwrite an existing destination.
	NoClobber bool
}

// LinkOptions configures link creation.
type LinkOptions struct {
	// Hard creates a hard link instead of a symbolic one.
	Hard bool
	// Force replaces an existing destination.
	Force bool
}

// ChangeDirOptions configures a working directory change.
type ChangeDirOptions struct {
	// Create makes the directory before entering it.
	Create bool
}

// Show emits a status line. Progress is optional and ranges from 0 to 100.
type Show struct {
	Text     string
	Progress *int
}

// Exec spawns a process.
type Exec struct {
	Echo    Echo
	Program string
	Args    []string
	Options ExecOptions
}

// MakeDir creates a directory and its parents.
type MakeDir struct {
	Path string
}

// Remove removes a path. A missing path is not an error.
type Remove struct {
	Path string
}

// Copy copies Src to Dst.
type Copy struct {
	Src     string
	Dst     string
	Options CopyOptions
}

// Move moves Src to Dst.
type Move struct {
	Src     string
	Dst     string
	Options MoveOptions
}

// Link makes Dst point at Src.
type Link struct {
	Src     string
	Dst     string
	Options LinkOptions
}

// ChangeDir changes the working directory of the running process.
type ChangeDir struct {
	Path    string
	Options ChangeDirOptions
}

func (Show) Kind() Kind      { return KindShow }
func (MakeDir) Kind() Kind   { return KindMakeDir }
func (Remove) Kind() Kind    { return KindRemove }
func (Copy) Kind() Kind      { return KindCopy }
func (Move) Kind() Kind      { return KindMove }
func (Link) Kind() Kind      { return KindLink }
func (ChangeDir) Kind() Kind { return KindChangeDir }

// Kind reports the run kind matching the echo level.
func (e Exec) Kind() Kind {
	switch e.Echo {
	case EchoVisible:
		return KindRunVisible
	case EchoSilent:
		return KindRunSilent
	default:
		return KindRunVerbose
	}
}

func (Show) command()      {}
func (Exec) command()      {}
func (MakeDir) command()   {}
func (Remove) command()    {}
func (Copy) command()      {}
func (Move) command()      {}
func (Link) command()      {}
func (ChangeDir) command() {}

func (s Show) String() string {
	return "echo " + Quote(s.Text)
}

// String renders the invocation as a shell command line.
func (e Exec) String() string {
	return QuoteArgs(append([]string{e.Program}, e.Args...))
}

func (m MakeDir) String() string {
	return "mkdir -p " + Quote(m.Path)
}

func (r Remove) String() string {
	return "rm -rf " + Quote(r.Path)
}

func (c Copy) String() string {
	flags := "-R"
	if c.Options.Symlink {
		flags = "-RP"
	}
	if c.Options.NoClobber {
		flags += "n"
	}
	return "cp " + flags + " " + Quote(c.Src) + " " + Quote(c.Dst)
}

func (m Move) String() string {
	if m.Options.NoClobber {
		return "mv -n " + Quote(m.Src) + " " + Quote(m.Dst)
	}
	return "mv " + Quote(m.Src) + " " + Quote(m.Dst)
}

func (l Link) String() string {
	flags := "-s"
	if l.Options.Hard {
		flags = ""
	}
	if l.Options.Force {
		flags += "f"
	}
	if flags != "" {
		flags = " -" + strings.TrimPrefix(flags, "-")
	}
	return "ln" + flags + " " + Quote(l.Src) + " " + Quote(l.Dst)
}

func (c ChangeDir) String() string {
	if c.Options.Create {
		return "mkdir -p " + Quote(c.Path) + " && cd " + Quote(c.Path)
	}
	return "cd " + Quote(c.Path)
}

// QuoteArgs joins argv into a single shell-safe line.
func QuoteArgs(argv []string) string {
	parts := make([]string, len(argv))
	for i, a := range argv {
		parts[i] = Quote(a)
	}
	return strings.Join(parts, " ")
}

// Quote returns s unchanged when it is shell-safe, single-quoted otherwise.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, unsafeShellRune) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func unsafeShellRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("_@%+=:,./-", r)
}
