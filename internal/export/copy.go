package export

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// copyTree recursively copies the contents of fsys into dst.
func copyTree(fsys fs.FS, dst string) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		dstPath := filepath.Join(dst, filepath.FromSlash(p))

		if d.IsDir() {
			if err := os.MkdirAll(dstPath, os.ModePerm); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dstPath, err)
			}
			return nil
		}
		if err := copyFile(fsys, p, dstPath); err != nil {
			return fmt.Errorf("failed to copy file from %s to %s: %w", p, dstPath, err)
		}
		return nil
	})
}

// copyFile copies the file src of fsys to dstFile, creating parent
// directories and keeping the permission bits.
func copyFile(fsys fs.FS, src, dstFile string) error {
	srcF, err := fsys.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", src, err)
	}
	defer srcF.Close()

	dstDir := filepath.Dir(dstFile)
	if err := os.MkdirAll(dstDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create destination directory %s: %w", dstDir, err)
	}

	mode := fs.FileMode(0644)
	if info, err := srcF.Stat(); err == nil && info.Mode().Perm() != 0 {
		mode = info.Mode().Perm()
	}

	dstF, err := os.OpenFile(dstFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", dstFile, err)
	}
	defer dstF.Close()

	if _, err := io.Copy(dstF, srcF); err != nil {
		return fmt.Errorf("failed to copy data from %s to %s: %w", src, dstFile, err)
	}
	return dstF.Close()
}
