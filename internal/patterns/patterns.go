package patterns

import "regexp"

// Pattern is one lexical detection rule. The table is static and process-wide;
// it is compiled once at startup and never mutated.
type Pattern struct {
	Name         string `json:"name"`
	Regex        string `json:"regex"`
	WrapperType  string `json:"wrapper_type"`
	ExtractModel bool   `json:"extract_model"`
}

var aiPatterns = []Pattern{
	// OpenAI
	{
		Name:        "openai_api_key",
		Regex:       `(?i)(openai[_-]?api[_-]?key|OPENAI_API_KEY)\s*[:=]\s*["']([^"']+)["']`,
		WrapperType: "openai_config",
	},
	{
		Name:        "openai_endpoint",
		Regex:       `https?://api\.openai\.com/v\d+/[\w/]+`,
		WrapperType: "openai_api",
	},

	// Anthropic / Claude
	{
		Name:        "anthropic_api_key",
		Regex:       `(?i)(anthropic[_-]?api[_-]?key|ANTHROPIC_API_KEY)\s*[:=]\s*["']([^"']+)["']`,
		WrapperType: "anthropic_config",
	},
	{
		Name:        "claude_endpoint",
		Regex:       `https?://api\.anthropic\.com/v\d+/[\w/]+`,
		WrapperType: "anthropic_api",
	},

	// LangChain
	{
		Name:         "langchain_llm",
		Regex:        `(?:from\s+langchain[.\w]*\s+import|langchain[.\w]*\.)(?:ChatOpenAI|Claude|ChatAnthropic|LLM)`,
		WrapperType:  "langchain",
		ExtractModel: true,
	},

	// Autogen
	{
		Name:         "autogen_agent",
		Regex:        `(?:from\s+autogen\s+import|autogen\.)(?:AssistantAgent|UserProxyAgent|GroupChat)`,
		WrapperType:  "autogen",
		ExtractModel: true,
	},

	// CrewAI
	{
		Name:         "crewai_agent",
		Regex:        `(?:from\s+crewai\s+import|crewai\.)(?:Agent|Task|Crew)`,
		WrapperType:  "crewai",
		ExtractModel: true,
	},

	// Hugging Face
	{
		Name:         "huggingface_pipeline",
		Regex:        `(?:from\s+transformers\s+import|transformers\.)(?:pipeline|AutoModel|AutoTokenizer)`,
		WrapperType:  "huggingface",
		ExtractModel: true,
	},

	// Generic model loading
	{
		Name:         "model_load",
		Regex:        `(?i)(?:load_model|from_pretrained|load_checkpoint)\s*\(\s*["']([^"']+)["']`,
		WrapperType:  "model_loader",
		ExtractModel: true,
	},

	// API keys read from the environment
	{
		Name:        "env_api_key",
		Regex:       `(?i)(?:getenv|environ\.get|process\.env)\s*\(\s*["'](?:OPENAI_API_KEY|ANTHROPIC_API_KEY|HUGGINGFACE_TOKEN)["']`,
		WrapperType: "env_config",
	},
}

type compiledPattern struct {
	Pattern
	re *regexp.Regexp
}

var compiledPatterns = compileAll()

func compileAll() []compiledPattern {
	compiled := make([]compiledPattern, 0, len(aiPatterns))
	for _, p := range aiPatterns {
		compiled = append(compiled, compiledPattern{Pattern: p, re: regexp.MustCompile(p.Regex)})
	}
	return compiled
}

// Table returns a copy of the lexical pattern table, mainly for introspection
// and tests.
func Table() []Pattern {
	out := make([]Pattern, len(aiPatterns))
	copy(out, aiPatterns)
	return out
}
