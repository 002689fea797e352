package app

import (
	"go.trai.ch/tape/internal/adapters/console"
	"go.trai.ch/tape/internal/core/domain"
	"go.trai.ch/tape/internal/core/ports"
	"go.trai.ch/tape/internal/engine/batch"
	"go.trai.ch/zerr"
)

// NewBatch records the steps and the depend section of tf into a fresh batch.
// Steps are appended in file order. Compile and link steps are resolved
// through tc.
func NewBatch(tf *domain.Tapefile, tc ports.Toolchain) (*batch.Batch, error) {
	b := batch.New(
		batch.WithOwner(tf.Target),
		batch.WithToolchain(tc),
		batch.WithProgressFormatter(console.ProgressText),
	)

	for i, step := range tf.Steps {
		if err := appendStep(b, step); err != nil {
			return nil, zerr.With(err, "step", i+1)
		}
	}

	applyDepend(b, tf.Depend)
	return b, nil
}

func appendStep(b *batch.Batch, step domain.Step) error {
	switch {
	case step.Compile != nil:
		c := step.Compile
		return b.Compile(c.Sources, c.Object, c.Options)
	case step.Link != nil:
		l := step.Link
		return b.Link(l.Objects, l.Target, l.Options)
	}

	switch c := step.Command.(type) {
	case domain.Show:
		if c.Progress != nil {
			b.ShowProgress(c.Progress, c.Text)
		} else {
			b.Show(c.Text)
		}
	case domain.Exec:
		b.Spawn(c.Echo, c.Program, c.Args, c.Options)
	case domain.MakeDir:
		b.MakeDir(c.Path)
	case domain.Remove:
		b.Remove(c.Path)
	case domain.Copy:
		b.Copy(c.Src, c.Dst, c.Options)
	case domain.Move:
		b.Move(c.Src, c.Dst, c.Options)
	case domain.Link:
		b.LinkPath(c.Src, c.Dst, c.Options)
	case domain.ChangeDir:
		b.ChangeDir(c.Path, c.Options)
	default:
		return domain.ErrUnknownCommand
	}
	return nil
}

func applyDepend(b *batch.Batch, spec domain.DependSpec) {
	if len(spec.Files) > 0 {
		b.AddDependencyFiles(spec.Files...)
	}
	if len(spec.Values) > 0 {
		b.AddDependencyValues(spec.Values...)
	}
	if !spec.LastMtime.IsZero() {
		b.SetLastMtime(spec.LastMtime)
	}
	if spec.CacheKey != "" {
		b.SetDependencyCache(spec.CacheKey)
	}
}
