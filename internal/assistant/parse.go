package assistant

import (
	"encoding/json"
	"errors"
	"strings"
)

var errNoJSON = errors.New("no JSON object in model output")

// extractJSON trims markdown fences around a model reply. When the result is
// still not valid JSON it falls back to the span between the first '{' and the last '}'.
func extractJSON(text string) (string, error) {
	s := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(s, "```json"):
		s = s[len("```json"):]
	case strings.HasPrefix(s, "```"):
		s = s[len("```"):]
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, "```"))

	if json.Valid([]byte(s)) {
		return s, nil
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return "", errNoJSON
	}
	s = s[start : end+1]
	if !json.Valid([]byte(s)) {
		return "", errNoJSON
	}
	return s, nil
}
