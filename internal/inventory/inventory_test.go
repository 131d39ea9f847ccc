package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSortsAndDeduplicates(t *testing.T) {
	calls := []Call{
		{File: "b.py", Line: 5, Column: 1, Wrapper: "openai_config"},
		{File: "a.py", Line: 10, Column: 3, Wrapper: "langchain"},
		{File: "a.py", Line: 10, Column: 3, Wrapper: "structural"},
		{File: "a.py", Line: 2, Column: 7, Wrapper: "anthropic_api"},
	}

	normalized := Normalize(calls)

	require.Len(t, normalized, 3)
	assert.Equal(t, "a.py", normalized[0].File)
	assert.Equal(t, 2, normalized[0].Line)
	assert.Equal(t, "a.py", normalized[1].File)
	assert.Equal(t, 10, normalized[1].Line)
	assert.Equal(t, "b.py", normalized[2].File)

	// First-seen record wins on a duplicate key.
	assert.Equal(t, "langchain", normalized[1].Wrapper)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	calls := []Call{
		{File: "x.rs", Line: 1, Column: 1},
		{File: "x.rs", Line: 1, Column: 1},
		{File: "x.rs", Line: 3, Column: 2},
	}

	once := Normalize(calls)
	twice := Normalize(append([]Call(nil), once...))
	assert.Equal(t, once, twice)
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Empty(t, Normalize(nil))
	assert.Empty(t, Normalize([]Call{}))
}

func TestTopWrappers(t *testing.T) {
	inv := &Inventory{Calls: []Call{
		{Wrapper: "openai_config"},
		{Wrapper: "langchain"},
		{Wrapper: "langchain"},
		{Wrapper: "anthropic_api"},
	}}

	top := inv.TopWrappers()
	require.Len(t, top, 3)
	assert.Equal(t, WrapperCount{Wrapper: "langchain", Count: 2}, top[0])
	// Ties break alphabetically.
	assert.Equal(t, "anthropic_api", top[1].Wrapper)
	assert.Equal(t, "openai_config", top[2].Wrapper)
}

func TestContextSnippet(t *testing.T) {
	content := "l0\nl1\nl2\nl3\nl4\nl5"

	tests := []struct {
		name string
		row  int
		want string
	}{
		{"middle", 2, "l0\nl1\nl2\nl3\nl4"},
		{"start clips low end", 0, "l0\nl1\nl2"},
		{"end clips high end", 5, "l3\nl4\nl5"},
		{"past end clips to tail", 9, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContextSnippet(content, tt.row))
		})
	}
}
