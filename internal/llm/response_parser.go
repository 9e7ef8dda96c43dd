package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON extracts the first valid JSON object from a string that may
// contain extra text. This handles cases where models add explanations or
// markdown fences around the JSON despite instructions.
func ExtractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	if start == -1 {
		return text // No JSON found, return as-is and let the parser fail
	}

	// Find the matching closing brace, ignoring braces inside strings.
	braceCount := 0
	inString := false
	escape := false

	for i := start; i < len(text); i++ {
		char := text[i]

		if escape {
			escape = false
			continue
		}
		if char == '\\' {
			escape = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}

		if !inString {
			switch char {
			case '{':
				braceCount++
			case '}':
				braceCount--
				if braceCount == 0 {
					return text[start : i+1]
				}
			}
		}
	}

	return text // No complete JSON object found
}

// tagResponse is the expected shape of the tag classifier's JSON output.
type tagResponse struct {
	Tags []string `json:"tags"`
}

// ParseTagResponse parses the classifier's JSON output into a tag list.
// It recovers JSON embedded in surrounding prose or markdown fences and
// returns an error only when no parseable object is present.
func ParseTagResponse(raw string) ([]string, error) {
	cleanJSON := ExtractJSON(raw)

	var response tagResponse
	if err := json.Unmarshal([]byte(cleanJSON), &response); err != nil {
		return nil, fmt.Errorf("failed to parse tag JSON: %w", err)
	}
	return response.Tags, nil
}

// ParseToolArguments parses a tool call's raw JSON arguments into the given
// destination struct.
func ParseToolArguments(raw string, dest interface{}) error {
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("failed to parse tool arguments: %w", err)
	}
	return nil
}
