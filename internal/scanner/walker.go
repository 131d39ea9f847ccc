package scanner

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// collectFiles enumerates the scan candidates under root: regular files on
// the extension allowlist, not hidden (unless configured), not excluded by
// gitignore rules or the configured exclude patterns, and under the size cap.
func (s *Scanner) collectFiles(root string) ([]string, error) {
	matcher, err := s.buildIgnoreMatcher(root)
	if err != nil {
		// Unreadable .gitignore files disable ignore handling, they do not
		// fail the scan.
		s.logger.Debug("gitignore rules unavailable", "root", root, "error", err)
		matcher = gitignore.NewMatcher(nil)
	}

	maxBytes := int64(s.config.Scan.MaxFileSizeMB) * 1024 * 1024

	var fileList []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			s.logger.Debug("skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		segments := strings.Split(filepath.ToSlash(rel), "/")

		if d.IsDir() {
			if d.Name() == ".git" {
				return fs.SkipDir
			}
			if !s.config.Scan.IncludeHidden && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			if matcher.Match(segments, true) {
				return fs.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if !s.config.Scan.IncludeHidden && strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		ext := strings.TrimPrefix(filepath.Ext(d.Name()), ".")
		if !supportedExtensions[ext] {
			return nil
		}
		if matcher.Match(segments, false) {
			return nil
		}

		if maxBytes > 0 {
			info, infoErr := d.Info()
			if infoErr != nil {
				// Stat failures still count the file as a candidate; the
				// read failure is contained later, per file.
				fileList = append(fileList, path)
				return nil
			}
			if info.Size() > maxBytes {
				s.logger.Debug("skipping oversized file", "path", path, "size", info.Size())
				return nil
			}
		}

		fileList = append(fileList, path)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return fileList, nil
}

// buildIgnoreMatcher reads .gitignore files across the tree and appends the
// configured exclude patterns on top of them.
func (s *Scanner) buildIgnoreMatcher(root string) (gitignore.Matcher, error) {
	ps, err := gitignore.ReadPatterns(osfs.New(root), nil)
	if err != nil {
		return nil, err
	}

	for _, pattern := range s.config.Scan.ExcludePatterns {
		ps = append(ps, gitignore.ParsePattern(pattern, nil))
	}

	return gitignore.NewMatcher(ps), nil
}
