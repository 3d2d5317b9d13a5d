package agent

import (
	"encoding/json"
	"regexp"
	"strings"

	"pathwise.app/mentor/common"
)

// Verdict is the reviewer's structured answer.
type Verdict struct {
	Valid    bool   `json:"valid"`
	Deadline string `json:"deadline"`
}

type rawVerdict struct {
	Valid    *bool  `json:"valid"`
	Deadline string `json:"deadline"`
}

var (
	validKV    = regexp.MustCompile(`(?i)["']?valid["']?\s*[:=]\s*(true|false)`)
	deadlineKV = regexp.MustCompile(`(?i)["']?deadline["']?\s*[:=]\s*["']?([^"'\n,}]+)`)
)

// parseVerdict runs a ladder of increasingly lax strategies over raw model
// output. All of them fail closed: a payload that never states valid=true is
// not a valid objective, no matter how plausible the rest looks.
func parseVerdict(text string) (Verdict, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Verdict{}, false
	}

	for _, parse := range []func(string) (Verdict, bool){
		parseStrict,
		parseEmbedded,
		parseKeyValues,
	} {
		if v, ok := parse(text); ok {
			return v, true
		}
	}
	return Verdict{}, false
}

func parseStrict(text string) (Verdict, bool) {
	var raw rawVerdict
	if err := json.Unmarshal([]byte(text), &raw); err != nil || raw.Valid == nil {
		return Verdict{}, false
	}
	return finishVerdict(raw), true
}

// parseEmbedded extracts the outermost {...} fragment from prose-wrapped
// output, e.g. a code fence or a "Here is the JSON:" preamble.
func parseEmbedded(text string) (Verdict, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return Verdict{}, false
	}
	return parseStrict(text[start : end+1])
}

// parseKeyValues scrapes valid/deadline pairs out of malformed JSON with
// regular expressions. Last resort before the deterministic classifier.
func parseKeyValues(text string) (Verdict, bool) {
	m := validKV.FindStringSubmatch(text)
	if m == nil {
		return Verdict{}, false
	}
	valid := strings.EqualFold(m[1], "true")

	raw := rawVerdict{Valid: &valid}
	if dm := deadlineKV.FindStringSubmatch(text); dm != nil {
		raw.Deadline = strings.TrimSpace(dm[1])
	}
	return finishVerdict(raw), true
}

func finishVerdict(raw rawVerdict) Verdict {
	v := Verdict{Valid: raw.Valid != nil && *raw.Valid}
	v.Deadline = strings.TrimSpace(raw.Deadline)
	if v.Deadline == "" {
		v.Deadline = common.DefaultDeadline
	}
	return v
}
