package service

import (
	"regexp"
	"strings"

	json "github.com/goccy/go-json"
)

const (
	maxSuggestions      = 4
	minSuggestionLength = 10
)

// ReplyParser extracts an answer and follow-up suggestions from a webhook
// body. Parsing is best effort: either value may come back empty.
type ReplyParser interface {
	Parse(body []byte) (answer string, suggestions []string)
}

var (
	suggestionHeader = regexp.MustCompile(`(?i)\**\s*(suggested\s+(?:follow[- ]up\s+)?questions|follow[- ]up\s+questions|you\s+might\s+also\s+ask|related\s+questions)\s*\**\s*:?\s*\**`)
	listMarker       = regexp.MustCompile(`^\s*(?:[-*•]+|\d+[.)]|\(\d+\))\s*`)
	answerKeys       = []string{"output", "answer", "response", "text", "message"}
	suggestionKeys   = []string{"suggestions", "suggestedQuestions", "followUps"}
)

// RegexParser understands the loose shapes chat webhooks tend to return:
// a JSON object (or one-element array of objects) with a text field, a
// JSON string, or plain text with a trailing suggestions section.
type RegexParser struct{}

func (RegexParser) Parse(body []byte) (string, []string) {
	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return "", nil
	}

	text := raw
	var explicit []string
	var decoded interface{}
	if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
		text, explicit = fromJSON(decoded)
	}

	answer, tail := splitSuggestions(text)
	if len(explicit) > 0 {
		return answer, cleanSuggestions(explicit)
	}
	if tail == "" {
		return answer, nil
	}
	return answer, cleanSuggestions(strings.Split(tail, "\n"))
}

func fromJSON(v interface{}) (string, []string) {
	if arr, ok := v.([]interface{}); ok {
		if len(arr) == 0 {
			return "", nil
		}
		v = arr[0]
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case map[string]interface{}:
		var text string
		for _, k := range answerKeys {
			if s, ok := t[k].(string); ok && strings.TrimSpace(s) != "" {
				text = s
				break
			}
		}
		var suggestions []string
		for _, k := range suggestionKeys {
			items, ok := t[k].([]interface{})
			if !ok {
				continue
			}
			for _, item := range items {
				if s, ok := item.(string); ok {
					suggestions = append(suggestions, s)
				}
			}
			break
		}
		return text, suggestions
	}
	return "", nil
}

func splitSuggestions(text string) (string, string) {
	loc := suggestionHeader.FindStringIndex(text)
	if loc == nil {
		return strings.TrimSpace(text), ""
	}
	answer := strings.TrimRight(strings.TrimSpace(text[:loc[0]]), "#")
	return strings.TrimSpace(answer), text[loc[1]:]
}

func cleanSuggestions(lines []string) []string {
	out := []string{}
	for _, line := range lines {
		s := listMarker.ReplaceAllString(line, "")
		s = strings.Trim(strings.TrimSpace(s), `*"'`)
		s = strings.TrimSpace(s)
		if len([]rune(s)) < minSuggestionLength {
			continue
		}
		out = append(out, s)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
