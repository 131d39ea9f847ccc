package parser

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/haasonsaas/aiscan/internal/inventory"
	"github.com/haasonsaas/aiscan/pkg/shared/errors"
)

// modelArgRe scans a call's argument text for a model parameter.
var modelArgRe = regexp.MustCompile(`model\s*[:=]\s*["']([^"']+)["']`)

// FileParser runs the per-language structural queries against file contents.
//
// One parser instance exists per supported extension; all of them are guarded
// by a single mutex shared across worker goroutines, so concurrent parse
// requests serialize. That is a simplicity/safety trade-off, not a
// performance target: the compiled queries are immutable and query execution
// happens outside the lock on the already-built tree.
type FileParser struct {
	mu      sync.Mutex
	parsers map[string]*sitter.Parser
	queries map[string][]*sitter.Query
}

// NewFileParser constructs parser instances and compiles the query sets for
// every supported language.
func NewFileParser() (*FileParser, error) {
	parsers := make(map[string]*sitter.Parser, len(languageConfigs))
	queries := make(map[string][]*sitter.Query, len(languageConfigs))

	for ext, cfg := range languageConfigs {
		p := sitter.NewParser()
		p.SetLanguage(cfg.language)
		parsers[ext] = p

		compiled := make([]*sitter.Query, 0, len(cfg.queries))
		for _, q := range cfg.queries {
			query, err := sitter.NewQuery([]byte(q), cfg.language)
			if err != nil {
				return nil, fmt.Errorf("failed to compile query for %q: %w", ext, err)
			}
			compiled = append(compiled, query)
		}
		queries[ext] = compiled
	}

	return &FileParser{parsers: parsers, queries: queries}, nil
}

// ParseFile matches the structural queries for the file's extension against
// its content. Extensions without a grammar yield an UnsupportedLanguageError,
// which callers treat as "zero structural calls", not a failure.
func (fp *FileParser) ParseFile(path, ext, content string) ([]inventory.Call, error) {
	if _, ok := languageConfigs[ext]; !ok {
		return nil, errors.NewUnsupportedLanguageError(ext)
	}

	src := []byte(content)

	fp.mu.Lock()
	tree, err := fp.parsers[ext].ParseCtx(context.Background(), nil, src)
	fp.mu.Unlock()
	if err != nil {
		return nil, errors.NewParseError(path, err)
	}
	defer tree.Close()

	var calls []inventory.Call
	for _, query := range fp.queries[ext] {
		cursor := sitter.NewQueryCursor()
		cursor.Exec(query, tree.RootNode())

		for {
			match, ok := cursor.NextMatch()
			if !ok {
				break
			}
			match = cursor.FilterPredicates(match, src)
			if len(match.Captures) == 0 {
				continue
			}

			if call, ok := extractCall(path, content, src, match.Captures[0].Node); ok {
				calls = append(calls, call)
			}
		}
		cursor.Close()
	}

	return calls, nil
}

// extractCall climbs from the captured node to the nearest enclosing call
// expression and derives wrapper, model and context from its source text.
func extractCall(path, content string, src []byte, node *sitter.Node) (inventory.Call, bool) {
	start := node.StartPoint()

	callNode := node
	for !callNodeKinds[callNode.Type()] && callNode.Parent() != nil {
		callNode = callNode.Parent()
	}

	text := callNode.Content(src)
	wrapper := strings.TrimSpace(strings.SplitN(text, "(", 2)[0])
	if wrapper == "" {
		return inventory.Call{}, false
	}

	model := ""
	if m := modelArgRe.FindStringSubmatch(text); m != nil {
		model = m[1]
	}

	return inventory.Call{
		File:    path,
		Line:    int(start.Row) + 1,
		Column:  int(start.Column) + 1,
		Wrapper: wrapper,
		Model:   model,
		Params:  map[string]interface{}{},
		Context: inventory.ContextSnippet(content, int(start.Row)),
	}, true
}
