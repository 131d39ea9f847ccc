package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// languageConfig binds a grammar to the structural queries that describe
// AI-client call shapes for that language.
type languageConfig struct {
	language *sitter.Language
	queries  []string
}

// Call-expression node kinds across the supported grammars. The ancestor
// climb stops at the first node whose type is in this set.
var callNodeKinds = map[string]bool{
	"call_expression":   true, // rust, javascript, typescript, go
	"call":              true, // python, ruby
	"method_invocation": true, // java
}

var jsQueries = []string{
	// OpenAI-style SDK member calls
	`(call_expression
      function: (member_expression
        object: (identifier) @client
        property: (property_identifier) @method)
      (#match? @client "openai|gpt|claude|anthropic")
      (#match? @method "chat|completion|create|generate"))`,
	// fetch() to known AI endpoints
	`(call_expression
      function: (identifier) @func
      arguments: (arguments
        (string) @url)
      (#eq? @func "fetch")
      (#match? @url "openai\\.com|anthropic\\.com|api\\.openai|api\\.anthropic"))`,
}

// languageConfigs maps a file extension to its grammar and query set.
// Built once at startup and read-only afterwards.
var languageConfigs = map[string]*languageConfig{
	"rs": {
		language: rust.GetLanguage(),
		queries: []string{
			`(call_expression
              function: (field_expression
                value: (identifier) @client
                field: (field_identifier) @method)
              (#match? @client "openai|client|gpt|claude|anthropic")
              (#match? @method "chat|completion|create|generate"))`,
			`(call_expression
              function: (scoped_identifier
                path: (identifier) @module
                name: (identifier) @type)
              (#match? @module "langchain|llm|ai")
              (#match? @type "ChatOpenAI|Claude|LLM"))`,
		},
	},
	"py": {
		language: python.GetLanguage(),
		queries: []string{
			`(call
              function: (attribute
                object: (identifier) @client
                attribute: (identifier) @method)
              (#match? @client "openai|client|gpt|claude|anthropic")
              (#match? @method "chat|completion|create|generate|ChatCompletion"))`,
			// agent-framework constructors
			`(call
              function: (identifier) @wrapper
              (#match? @wrapper "ChatOpenAI|Claude|ChatAnthropic|LLMChain|ConversationChain|OpenAI"))`,
			`(call
              function: (attribute
                object: (identifier) @module
                attribute: (identifier) @type)
              (#match? @module "autogen")
              (#match? @type "AssistantAgent|UserProxyAgent|GroupChat"))`,
		},
	},
	"js": {
		language: javascript.GetLanguage(),
		queries:  jsQueries,
	},
	"jsx": {
		language: javascript.GetLanguage(),
		queries:  jsQueries,
	},
	"ts": {
		language: typescript.GetLanguage(),
		queries: []string{
			`(call_expression
              function: (member_expression
                object: (identifier) @client
                property: (property_identifier) @method)
              (#match? @client "openai|gpt|claude|anthropic")
              (#match? @method "chat|completion|create|generate"))`,
		},
	},
	"tsx": {
		language: tsx.GetLanguage(),
		queries: []string{
			`(call_expression
              function: (member_expression
                object: (identifier) @client
                property: (property_identifier) @method)
              (#match? @client "openai|gpt|claude|anthropic")
              (#match? @method "chat|completion|create|generate"))`,
		},
	},
	"go": {
		language: golang.GetLanguage(),
		queries: []string{
			`(call_expression
              function: (selector_expression
                operand: (identifier) @client
                field: (field_identifier) @method)
              (#match? @client "(?i)openai|client|gpt|claude|anthropic")
              (#match? @method "(?i)chat|completion|create|generate"))`,
		},
	},
	"java": {
		language: java.GetLanguage(),
		queries: []string{
			`(method_invocation
              object: (identifier) @client
              name: (identifier) @method
              (#match? @client "(?i)openai|client|gpt|claude|anthropic")
              (#match? @method "(?i)chat|completion|create|generate"))`,
		},
	},
}

// SupportedExtensions lists the extensions with a structural grammar.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(languageConfigs))
	for ext := range languageConfigs {
		exts = append(exts, ext)
	}
	return exts
}
