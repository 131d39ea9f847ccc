package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMatchesOpenAIKey(t *testing.T) {
	m := NewMatcher()
	content := `
import os
OPENAI_API_KEY = "sk-1234567890"
client = OpenAI(api_key=OPENAI_API_KEY)
`

	matches := m.FindMatches("test.py", content)
	require.NotEmpty(t, matches)
	assert.Equal(t, "openai_config", matches[0].Wrapper)
	assert.Equal(t, "test.py", matches[0].File)
	assert.Equal(t, 3, matches[0].Line)
	assert.Equal(t, 1, matches[0].Column)
	assert.Equal(t, "openai_api_key", matches[0].Params["pattern"])
	assert.Contains(t, matches[0].Context, "client = OpenAI")
}

func TestFindMatchesLangchain(t *testing.T) {
	m := NewMatcher()
	content := `llm = langchain.ChatOpenAI(model="gpt-4", temperature=0.7)`

	matches := m.FindMatches("test.py", content)
	require.NotEmpty(t, matches)
	assert.Equal(t, "langchain", matches[0].Wrapper)
}

func TestFindMatchesEnvKeyAndEndpoint(t *testing.T) {
	m := NewMatcher()
	content := `
key = os.getenv("OPENAI_API_KEY")
url = "https://api.openai.com/v1/chat/completions"
`

	matches := m.FindMatches("app.py", content)
	require.Len(t, matches, 2)

	wrappers := []string{matches[0].Wrapper, matches[1].Wrapper}
	assert.Contains(t, wrappers, "env_config")
	assert.Contains(t, wrappers, "openai_api")
}

func TestFindMatchesModelExtraction(t *testing.T) {
	m := NewMatcher()
	content := `model = load_model("llama-2-7b")`

	matches := m.FindMatches("load.py", content)
	require.Len(t, matches, 1)
	assert.Equal(t, "model_loader", matches[0].Wrapper)
	assert.Equal(t, "llama-2-7b", matches[0].Model)
}

func TestFindMatchesAnthropicKey(t *testing.T) {
	m := NewMatcher()
	content := `ANTHROPIC_API_KEY = 'sk-ant-xyz'`

	matches := m.FindMatches("cfg.py", content)
	require.NotEmpty(t, matches)
	assert.Equal(t, "anthropic_config", matches[0].Wrapper)
}

func TestOffsetToLineColMultibyte(t *testing.T) {
	// The match sits after a multi-byte prefix; columns count runes.
	content := "héllo wörld\nkey = ANTHROPIC_API_KEY = \"abc\"\n"

	m := NewMatcher()
	matches := m.FindMatches("uni.py", content)
	require.NotEmpty(t, matches)
	assert.Equal(t, 2, matches[0].Line)
	assert.Equal(t, 7, matches[0].Column)
}

func TestFindMatchesNoFalsePositives(t *testing.T) {
	m := NewMatcher()
	content := `
def add(a, b):
    return a + b
`
	assert.Empty(t, m.FindMatches("math.py", content))
}

func TestTableIsCopied(t *testing.T) {
	table := Table()
	require.NotEmpty(t, table)
	table[0].Name = "mutated"
	assert.NotEqual(t, "mutated", Table()[0].Name)
}
