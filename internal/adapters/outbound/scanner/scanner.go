package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/scriptorium/scriptorium/internal/domain"
)

var skipDirs = map[string]bool{
	"node_modules":   true,
	domain.ExportDir: true,
}

// FileScanner implements domain.VaultScanner by walking the filesystem.
// Hidden entries (dot-prefixed) are skipped everywhere, which covers .git
// and the tool's own state directory.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

func (s *FileScanner) Scan(projectPath string, excludePaths ...string) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, err
	}

	extraSkip := make(map[string]bool, len(excludePaths))
	for _, p := range excludePaths {
		extraSkip[strings.TrimSuffix(p, "/")] = true
	}

	result := &domain.ScanResult{
		RootPath: absPath,
	}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == absPath {
			return nil
		}

		relPath, _ := filepath.Rel(absPath, path)
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") || skipDirs[d.Name()] || extraSkip[relPath] {
				return filepath.SkipDir
			}
			if !strings.Contains(relPath, "/") {
				result.RootDirs = append(result.RootDirs, relPath)
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") || extraSkip[relPath] {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".md") {
			result.MarkdownFiles = append(result.MarkdownFiles, relPath)
		}
		return nil
	})

	return result, err
}
