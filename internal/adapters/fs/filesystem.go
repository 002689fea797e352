package fs

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"go.trai.ch/tape/internal/core/domain"
	"go.trai.ch/tape/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileSystem = (*FileSystem)(nil)

// FileSystem performs batch file operations on the host filesystem.
type FileSystem struct{}

// NewFileSystem creates a new FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{}
}

// MakeDir creates path and any missing parents.
func (f *FileSystem) MakeDir(path string) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return nil
	}
	if err := os.MkdirAll(path, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMakeDirFailed.Error()), "path", path)
	}
	return nil
}

// Remove deletes path and everything below it. A missing path is not an error.
func (f *FileSystem) Remove(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRemoveFailed.Error()), "path", path)
	}
	return nil
}

// Copy copies src to dst. When dst is an existing directory, src is copied into it.
func (f *FileSystem) Copy(src, dst string, opts domain.CopyOptions) error {
	if err := f.copy(src, dst, opts); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "src", src), "dst", dst)
	}
	return nil
}

func (f *FileSystem) copy(src, dst string, opts domain.CopyOptions) error {
	info, err := stat(src, opts.Symlink)
	if err != nil {
		return err
	}
	dst = into(src, dst)

	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		return copySymlink(src, dst, opts.NoClobber)
	case info.IsDir():
		resolved, err := filepath.EvalSymlinks(src)
		if err != nil {
			return err
		}
		return copyTree(resolved, dst, opts)
	default:
		return copyFile(src, dst, info.Mode().Perm(), opts.NoClobber)
	}
}

// Move renames src to dst, copying across devices. When dst is an existing
// directory, src is moved into it.
func (f *FileSystem) Move(src, dst string, opts domain.MoveOptions) error {
	if err := f.move(src, dst, opts); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrMoveFailed.Error()), "src", src), "dst", dst)
	}
	return nil
}

func (f *FileSystem) move(src, dst string, opts domain.MoveOptions) error {
	dst = into(src, dst)
	if opts.NoClobber && exists(dst) {
		return domain.ErrDestinationExists
	}
	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return err
	}

	err := os.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}

	if err := f.copy(src, dst, domain.CopyOptions{Symlink: true}); err != nil {
		return err
	}
	return os.RemoveAll(src)
}

// Link creates dst pointing at src.
func (f *FileSystem) Link(src, dst string, opts domain.LinkOptions) error {
	if err := link(src, dst, opts); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrLinkFailed.Error()), "src", src), "dst", dst)
	}
	return nil
}

func link(src, dst string, opts domain.LinkOptions) error {
	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return err
	}
	if opts.Force {
		if err := os.Remove(dst); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if opts.Hard {
		return os.Link(src, dst)
	}
	return os.Symlink(src, dst)
}

// ChangeDir changes the working directory of the process.
func (f *FileSystem) ChangeDir(path string, opts domain.ChangeDirOptions) error {
	if opts.Create {
		if err := f.MakeDir(path); err != nil {
			return err
		}
	}
	if err := os.Chdir(path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrChangeDirFailed.Error()), "path", path)
	}
	return nil
}

func stat(path string, keepLinks bool) (fs.FileInfo, error) {
	if keepLinks {
		return os.Lstat(path)
	}
	return os.Stat(path)
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// into resolves dst to dst/base(src) when dst is an existing directory.
func into(src, dst string) string {
	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		return filepath.Join(dst, filepath.Base(src))
	}
	return dst
}

func copyTree(src, dst string, opts domain.CopyOptions) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, domain.DirPerm)
		}

		info, err := stat(path, opts.Symlink)
		if err != nil {
			return err
		}
		switch {
		case info.Mode()&fs.ModeSymlink != 0:
			return copySymlink(path, target, opts.NoClobber)
		case info.IsDir():
			resolved, err := filepath.EvalSymlinks(path)
			if err != nil {
				return err
			}
			return copyTree(resolved, target, opts)
		default:
			return copyFile(path, target, info.Mode().Perm(), opts.NoClobber)
		}
	})
}

func copyFile(src, dst string, perm fs.FileMode, noClobber bool) error {
	if noClobber && exists(dst) {
		return domain.ErrDestinationExists
	}
	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return err
	}

	in, err := os.Open(src) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // Read-only file

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chmod(dst, perm)
}

func copySymlink(src, dst string, noClobber bool) error {
	target, err := os.Readlink(src)
	if err != nil {
		return err
	}
	if exists(dst) {
		if noClobber {
			return domain.ErrDestinationExists
		}
		if err := os.Remove(dst); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return err
	}
	return os.Symlink(target, dst)
}
