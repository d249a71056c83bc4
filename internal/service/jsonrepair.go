package service

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Model responses nominally contain JSON but often arrive wrapped in code
// fences, surrounded by prose, or with trailing commas. The repair steps run
// in a fixed order and are bounded; anything still unparseable afterwards is
// treated as an empty contribution by the caller.
var (
	fenceOpenRe     = regexp.MustCompile("(?i)^```(?:json)?\\s*\\n?")
	fenceCloseRe    = regexp.MustCompile("(?i)\\n?\\s*```\\s*$")
	trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)
)

// RepairJSON applies the repair heuristics to raw model output: strip a
// leading/trailing code fence, trim, slice to the outermost object, and drop
// trailing commas before closing brackets. Already-valid JSON objects pass
// through unchanged.
func RepairJSON(raw string) string {
	s := fenceOpenRe.ReplaceAllString(raw, "")
	s = fenceCloseRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	first := strings.Index(s, "{")
	last := strings.LastIndex(s, "}")
	if first != -1 && last > first {
		s = s[first : last+1]
	}

	return trailingCommaRe.ReplaceAllString(s, "$1")
}

// ParseAgentJSON repairs raw model output and unmarshals it into v.
func ParseAgentJSON(raw string, v interface{}) error {
	return json.Unmarshal([]byte(RepairJSON(raw)), v)
}
