package generation

import (
	"encoding/json"
	"errors"
	"strings"
)

var errNoJSON = errors.New("no JSON object in model output")

// DecodeJSON unmarshals the first JSON object found in model output into v.
// Markdown code fences and surrounding prose are ignored.
func DecodeJSON(text string, v any) error {
	obj, ok := extractObject(text)
	if !ok {
		return errNoJSON
	}
	return json.Unmarshal([]byte(obj), v)
}

func extractObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
