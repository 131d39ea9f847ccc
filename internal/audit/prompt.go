package audit

import "fmt"

// securityPrompt frames the LLM review: task framing, the enumerated risk
// taxonomy, the inventory payload, and the expected JSON-array schema.
func securityPrompt(inventoryJSON string) string {
	return fmt.Sprintf(`You are a senior AI-security reviewer. Analyze the following AI/LLM usage inventory for security vulnerabilities.

Focus on OWASP LLM Top 10 (2024) and MITRE ATT&CK issues:
- LLM01: Prompt Injection
- LLM02: Insecure Output Handling
- LLM03: Training Data Poisoning
- LLM04: Model Denial of Service
- LLM05: Supply Chain Vulnerabilities
- LLM06: Sensitive Information Disclosure
- LLM07: Insecure Plugin Design
- LLM08: Excessive Agency
- LLM09: Overreliance
- LLM10: Model Theft

Inventory:
%s

Return a JSON array of findings:
[{
  "id": "unique-id",
  "severity": "critical|high|medium|low|info",
  "file": "path/to/file",
  "line": 123,
  "issue_type": "LLM01PromptInjection",
  "description": "Brief description",
  "rationale": "Why this is a security issue",
  "fix": "How to fix it"
}]`, inventoryJSON)
}
