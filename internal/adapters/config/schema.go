package config

import (
	"gopkg.in/yaml.v3"
)

// Tapefile is the YAML document of a tape.yaml file.
type Tapefile struct {
	Target    *TargetDTO   `yaml:"target"`
	Toolchain ToolchainDTO `yaml:"toolchain"`
	Depend    DependDTO    `yaml:"depend"`
	Steps     []StepDTO    `yaml:"steps"`
}

// ToolOptionsDTO holds the compiler and linker flags shared by targets and steps.
type ToolOptionsDTO struct {
	Defines     []string `yaml:"defines"`
	IncludeDirs []string `yaml:"includedirs"`
	Flags       []string `yaml:"flags"`
	LinkDirs    []string `yaml:"linkdirs"`
	Links       []string `yaml:"links"`
	LDFlags     []string `yaml:"ldflags"`
}

// TargetDTO describes the target owning the batch.
type TargetDTO struct {
	Name           string   `yaml:"name"`
	Kind           string   `yaml:"kind"`
	SourceKinds    []string `yaml:"sourcekinds"`
	ToolOptionsDTO `yaml:",inline"`
}

// ToolchainDTO names the toolchain programs.
type ToolchainDTO struct {
	CC  string            `yaml:"cc"`
	CXX string            `yaml:"cxx"`
	AS  string            `yaml:"as"`
	LD  string            `yaml:"ld"`
	AR  string            `yaml:"ar"`
	Env map[string]string `yaml:"env"`
}

// DependDTO lists what the batch depends on.
type DependDTO struct {
	Files     []string `yaml:"files"`
	Values    []any    `yaml:"values"`
	Cache     string   `yaml:"cache"`
	LastMtime string   `yaml:"lastmtime"`
}

// StepDTO is one entry of the steps list. Exactly one field must be set.
type StepDTO struct {
	Show    *ShowDTO      `yaml:"show"`
	Run     *RunDTO       `yaml:"run"`
	MkDir   *string       `yaml:"mkdir"`
	Rm      *string       `yaml:"rm"`
	Cp      *CopyDTO      `yaml:"cp"`
	Mv      *MoveDTO      `yaml:"mv"`
	Ln      *LinkPathDTO  `yaml:"ln"`
	Cd      *ChangeDirDTO `yaml:"cd"`
	Compile *CompileDTO   `yaml:"compile"`
	Link    *LinkDTO      `yaml:"link"`
}

// ShowDTO is a status message. It is either a plain string or a mapping
// with a format, its arguments and an optional progress percentage.
type ShowDTO struct {
	Text     string `yaml:"text"`
	Args     []any  `yaml:"args"`
	Progress *int   `yaml:"progress"`
}

// UnmarshalYAML accepts the scalar shorthand.
func (s *ShowDTO) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&s.Text)
	}
	type plain ShowDTO
	return value.Decode((*plain)(s))
}

// RunDTO spawns a program.
type RunDTO struct {
	Program string            `yaml:"program"`
	Args    []string          `yaml:"args"`
	Echo    string            `yaml:"echo"`
	Env     map[string]string `yaml:"env"`
	Dir     string            `yaml:"dir"`
}

// CopyDTO copies src to dst.
type CopyDTO struct {
	Src       string `yaml:"src"`
	Dst       string `yaml:"dst"`
	Symlink   bool   `yaml:"symlink"`
	NoClobber bool   `yaml:"noclobber"`
}

// MoveDTO moves src to dst.
type MoveDTO struct {
	Src       string `yaml:"src"`
	Dst       string `yaml:"dst"`
	NoClobber bool   `yaml:"noclobber"`
}

// LinkPathDTO links dst to src.
type LinkPathDTO struct {
	Src   string `yaml:"src"`
	Dst   string `yaml:"dst"`
	Hard  bool   `yaml:"hard"`
	Force bool   `yaml:"force"`
}

// ChangeDirDTO changes the working directory. It is either a path or a
// mapping with the path and whether to create it.
type ChangeDirDTO struct {
	Path   string `yaml:"path"`
	Create bool   `yaml:"create"`
}

// UnmarshalYAML accepts the scalar shorthand.
func (c *ChangeDirDTO) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&c.Path)
	}
	type plain ChangeDirDTO
	return value.Decode((*plain)(c))
}

// CompileDTO compiles sources into an object.
type CompileDTO struct {
	Sources        []string          `yaml:"sources"`
	Object         string            `yaml:"object"`
	SourceKind     string            `yaml:"sourcekind"`
	Env            map[string]string `yaml:"env"`
	ToolOptionsDTO `yaml:",inline"`
}

// LinkDTO links objects into a target.
type LinkDTO struct {
	Objects        []string          `yaml:"objects"`
	Target         string            `yaml:"target"`
	TargetKind     string            `yaml:"targetkind"`
	SourceKinds    []string          `yaml:"sourcekinds"`
	Env            map[string]string `yaml:"env"`
	ToolOptionsDTO `yaml:",inline"`
}
