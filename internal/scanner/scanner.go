package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/haasonsaas/aiscan/internal/inventory"
	"github.com/haasonsaas/aiscan/internal/parser"
	"github.com/haasonsaas/aiscan/internal/patterns"
	"github.com/haasonsaas/aiscan/pkg/shared/config"
)

// supportedExtensions is the allowlist of source extensions considered by a
// scan. Extensions without a structural grammar still get lexical matching.
var supportedExtensions = map[string]bool{
	"rs": true, "py": true, "js": true, "ts": true, "jsx": true, "tsx": true,
	"go": true, "java": true, "rb": true, "cpp": true, "c": true, "cs": true,
}

// Scanner walks a file tree and runs both matchers over every eligible file.
type Scanner struct {
	config  *config.Config
	logger  hclog.Logger
	parser  *parser.FileParser
	matcher *patterns.Matcher
}

// New creates a Scanner with freshly constructed matchers.
func New(cfg *config.Config, logger hclog.Logger) (*Scanner, error) {
	fileParser, err := parser.NewFileParser()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize structural matcher: %w", err)
	}

	return &Scanner{
		config:  cfg,
		logger:  logger,
		parser:  fileParser,
		matcher: patterns.NewMatcher(),
	}, nil
}

// ScanDirectory walks the tree under root and aggregates per-file results
// into an Inventory. Per-file failures are contained: an unreadable or
// unparsable file contributes zero calls, while a failure to enumerate the
// tree itself is fatal.
func (s *Scanner) ScanDirectory(root string) (*inventory.Inventory, error) {
	startTime := time.Now()

	fileList, err := s.collectFiles(root)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %q: %w", root, err)
	}
	s.logger.Debug("collected scan candidates", "root", root, "files", len(fileList))

	workers := s.config.Scan.Threads
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		results    = make(map[string][]inventory.Call)
		totalLines int64
	)

	jobs := make(chan string)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				calls, lines, err := s.scanFile(path)
				if err != nil {
					s.logger.Debug("skipping file", "path", path, "error", err)
					continue
				}
				atomic.AddInt64(&totalLines, int64(lines))
				if len(calls) > 0 {
					mu.Lock()
					results[path] = calls
					mu.Unlock()
				}
			}
		}()
	}

	for _, path := range fileList {
		jobs <- path
	}
	close(jobs)
	wg.Wait()

	var allCalls []inventory.Call
	for _, calls := range results {
		allCalls = append(allCalls, calls...)
	}

	return &inventory.Inventory{
		Calls:          allCalls,
		FilesScanned:   len(fileList),
		TotalLines:     int(totalLines),
		ScanDurationMs: time.Since(startTime).Milliseconds(),
	}, nil
}

// scanFile runs both matchers over one file and normalizes the combined
// result. A structural parse failure still lets lexical matching proceed.
func (s *Scanner) scanFile(path string) ([]inventory.Call, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read %q: %w", path, err)
	}
	content := string(data)

	lines := strings.Count(content, "\n")
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		lines++
	}

	ext := strings.TrimPrefix(filepath.Ext(path), ".")

	var calls []inventory.Call
	parsed, err := s.parser.ParseFile(path, ext, content)
	if err != nil {
		s.logger.Trace("structural matching unavailable", "path", path, "error", err)
	} else {
		calls = append(calls, parsed...)
	}

	calls = append(calls, s.matcher.FindMatches(path, content)...)

	return inventory.Normalize(calls), lines, nil
}
