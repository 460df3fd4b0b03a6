package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

var skipEntries = map[string]bool{
	".git":         true,
	".scriptorium": true,
	".DS_Store":    true,
	"node_modules": true,
}

// DirBackup implements domain.BackupMaker by copying the project tree to a
// timestamped sibling directory next to the project root.
type DirBackup struct{}

func New() *DirBackup {
	return &DirBackup{}
}

func (b *DirBackup) Backup(projectPath string) (string, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return "", err
	}

	stamp := time.Now().Format("20060102_150405")
	backupPath := filepath.Join(filepath.Dir(absPath),
		fmt.Sprintf("%s_backup_%s", filepath.Base(absPath), stamp))

	if err := copyTree(absPath, backupPath); err != nil {
		os.RemoveAll(backupPath)
		return "", fmt.Errorf("copying project to %s: %w", backupPath, err)
	}
	return backupPath, nil
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if skipEntries[d.Name()] && path != src {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, relPath)

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
