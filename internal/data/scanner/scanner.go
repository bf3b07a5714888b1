package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/util"
)

const (
	projectsDir = "projects"
	logExt      = ".jsonl"
)

// FileScanner discovers session logs under one Claude data directory,
// laid out as <base>/projects/<project>/<session-id>.jsonl.
type FileScanner struct {
	baseDir string
}

// SessionFile is one discovered session log.
type SessionFile struct {
	Path        string
	ProjectName string
	SessionID   model.SessionID
}

// NewFileScanner creates a new FileScanner instance
func NewFileScanner(baseDir string) *FileScanner {
	return &FileScanner{baseDir: baseDir}
}

// BaseDir returns the directory being scanned.
func (s *FileScanner) BaseDir() string {
	return s.baseDir
}

// Scan lists every session log in the immediate project directories. A
// missing base or projects directory yields no files. Failing to read an
// existing directory is an error, since a partial listing would under-count.
func (s *FileScanner) Scan() ([]SessionFile, error) {
	start := time.Now()
	root := filepath.Join(s.baseDir, projectsDir)

	util.LogDebug(fmt.Sprintf("Start scanning directory: %s", root))

	projects, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			util.LogDebug(fmt.Sprintf("Projects directory not found, skipping: %s", root))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read projects directory %s: %w", root, err)
	}

	var (
		files    []SessionFile
		dirCount int
	)
	for _, project := range projects {
		projectPath := filepath.Join(root, project.Name())
		if !isDir(projectPath, project) {
			continue
		}
		dirCount++

		children, err := os.ReadDir(projectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read project directory %s: %w", projectPath, err)
		}
		for _, child := range children {
			if child.IsDir() {
				continue
			}
			name := child.Name()
			if !strings.HasSuffix(strings.ToLower(name), logExt) {
				continue
			}
			files = append(files, SessionFile{
				Path:        filepath.Join(projectPath, name),
				ProjectName: project.Name(),
				SessionID:   model.NewSessionID(name[:len(name)-len(logExt)]),
			})
		}
	}

	util.LogDebug(fmt.Sprintf("File scan completed: duration %v, scanned %d projects, found %d JSONL files",
		time.Since(start), dirCount, len(files)))

	return files, nil
}

// isDir follows symlinked project directories.
func isDir(path string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
