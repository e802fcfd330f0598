package jsonx

import (
	"errors"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ErrNoObject reports that no JSON object could be recovered from the input,
// even after repair.
var ErrNoObject = errors.New("no JSON object found in output")

var (
	fencedBlockRe   = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
)

// ExtractObject locates a JSON object embedded in arbitrary surrounding
// prose and returns it as valid JSON. Content inside a fenced code block is
// preferred; otherwise the first top-level {...} span is taken. Lenient
// repairs (trailing commas, single-quoted strings) are tried before handing
// the candidate to the jsonrepair library.
func ExtractObject(raw string) ([]byte, error) {
	candidate := raw
	if m := fencedBlockRe.FindStringSubmatch(raw); m != nil {
		candidate = strings.TrimSpace(m[1])
	}

	// First '{' through last '}' — models pad both sides with commentary.
	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start == -1 || end == -1 || end < start {
		return nil, ErrNoObject
	}
	candidate = candidate[start : end+1]

	if Valid([]byte(candidate)) {
		return []byte(candidate), nil
	}

	cleaned := trailingCommaRe.ReplaceAllString(candidate, "$1")
	cleaned = strings.ReplaceAll(cleaned, "'", `"`)
	if Valid([]byte(cleaned)) {
		return []byte(cleaned), nil
	}

	repaired, err := jsonrepair.JSONRepair(candidate)
	if err == nil && Valid([]byte(repaired)) {
		return []byte(repaired), nil
	}

	return nil, ErrNoObject
}
