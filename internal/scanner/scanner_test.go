package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haasonsaas/aiscan/pkg/shared/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestScanner(t *testing.T) *Scanner {
	t.Helper()
	s, err := New(config.DefaultConfig(), hclog.NewNullLogger())
	require.NoError(t, err)
	return s
}

func TestScanDirectoryFindsCalls(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.py", `client = OpenAI(api_key="sk-test")
resp = client.chat(prompt)
`)
	writeFile(t, dir, "util.py", `def add(a, b):
    return a + b
`)

	s := newTestScanner(t)
	inv, err := s.ScanDirectory(dir)
	require.NoError(t, err)

	assert.Equal(t, 2, inv.FilesScanned)
	assert.Equal(t, 4, inv.TotalLines)
	require.NotEmpty(t, inv.Calls)
	for _, call := range inv.Calls {
		assert.Equal(t, filepath.Join(dir, "app.py"), call.File)
	}
}

func TestScanDirectoryDeduplicatesPerFile(t *testing.T) {
	dir := t.TempDir()
	// One site the structural matcher and a lexical pattern could both hit.
	writeFile(t, dir, "chain.py", `llm = ChatOpenAI(model="gpt-4")
`)

	s := newTestScanner(t)
	inv, err := s.ScanDirectory(dir)
	require.NoError(t, err)

	seen := make(map[[3]interface{}]bool)
	for _, call := range inv.Calls {
		key := [3]interface{}{call.File, call.Line, call.Column}
		assert.False(t, seen[key], "duplicate call at %v", key)
		seen[key] = true
	}
}

func TestScanDirectoryHonorsGitignore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "generated/\n")
	writeFile(t, dir, "app.py", `resp = client.chat(prompt)
`)
	writeFile(t, dir, filepath.Join("generated", "gen.py"), `resp = client.chat(prompt)
`)

	s := newTestScanner(t)
	inv, err := s.ScanDirectory(dir)
	require.NoError(t, err)

	assert.Equal(t, 1, inv.FilesScanned)
	for _, call := range inv.Calls {
		assert.NotContains(t, call.File, "generated")
	}
}

func TestScanDirectoryHonorsExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, filepath.Join("node_modules", "pkg", "index.js"), `openai.createCompletion({})
`)
	writeFile(t, dir, "index.js", `openai.createCompletion({})
`)

	s := newTestScanner(t)
	inv, err := s.ScanDirectory(dir)
	require.NoError(t, err)

	assert.Equal(t, 1, inv.FilesScanned)
}

func TestScanDirectorySkipsHiddenAndUnsupported(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".hidden.py", `resp = client.chat(prompt)
`)
	writeFile(t, dir, "notes.txt", "openai everywhere")
	writeFile(t, dir, "app.py", `resp = client.chat(prompt)
`)

	s := newTestScanner(t)
	inv, err := s.ScanDirectory(dir)
	require.NoError(t, err)

	assert.Equal(t, 1, inv.FilesScanned)
}

func TestScanDirectoryContainsUnreadableFiles(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	dir := t.TempDir()
	writeFile(t, dir, "ok.py", `resp = client.chat(prompt)
`)
	locked := writeFile(t, dir, "locked.py", `resp = client.chat(prompt)
`)
	require.NoError(t, os.Chmod(locked, 0000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0644) })

	s := newTestScanner(t)
	inv, err := s.ScanDirectory(dir)
	require.NoError(t, err)

	// Unreadable files stay in the candidate count; only their calls are lost.
	assert.Equal(t, 2, inv.FilesScanned)
	for _, call := range inv.Calls {
		assert.Equal(t, filepath.Join(dir, "ok.py"), call.File)
	}
}

func TestScanDirectoryMissingRoot(t *testing.T) {
	s := newTestScanner(t)
	_, err := s.ScanDirectory(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}

func TestScanDirectoryEmptyTree(t *testing.T) {
	s := newTestScanner(t)
	inv, err := s.ScanDirectory(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 0, inv.FilesScanned)
	assert.Empty(t, inv.Calls)
	assert.Equal(t, 0, inv.TotalLines)
}
