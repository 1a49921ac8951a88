package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	a "github.com/petar-dambovaliev/aho-corasick"

	"github.com/FACorreiaa/cohana-api/internal/types"
)

// Markdown fence markers, removed in order: every "```json" first, then
// every remaining "```".
var fenceMatchers = []a.AhoCorasick{
	newFenceMatcher("```json"),
	newFenceMatcher("```"),
}

func newFenceMatcher(marker string) a.AhoCorasick {
	builder := a.NewAhoCorasickBuilder(a.Opts{
		MatchKind: a.LeftMostLongestMatch,
	})
	return builder.Build([]string{marker})
}

// Spans from the first '[' to the last ']' so nested
// arrays inside objects are kept whole.
var arrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// CleanLLMResponse removes every markdown fence marker from the response and
// trims surrounding whitespace.
func CleanLLMResponse(response string) string {
	for _, matcher := range fenceMatchers {
		response = removeMatches(matcher, response)
	}
	return strings.TrimSpace(response)
}

func removeMatches(matcher a.AhoCorasick, s string) string {
	matches := matcher.FindAll(s)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	prev := 0
	for _, m := range matches {
		b.WriteString(s[prev:m.Start()])
		prev = m.End()
	}
	b.WriteString(s[prev:])
	return b.String()
}

// ExtractJSONArray parses a JSON array out of free-form model output.
// It first decodes the fence-stripped text directly and, failing that, the
// greedy bracketed region of it. Output with two top-level arrays or stray
// brackets after the array is not recovered.
func ExtractJSONArray[T any](response string) ([]T, error) {
	cleaned := CleanLLMResponse(response)

	var items []T
	directErr := json.Unmarshal([]byte(cleaned), &items)
	if directErr == nil {
		return items, nil
	}

	match := arrayPattern.FindString(cleaned)
	if match == "" {
		return nil, fmt.Errorf("%w: no JSON array found: %v", types.ErrInvalidAIOutput, directErr)
	}

	items = nil
	if err := json.Unmarshal([]byte(match), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidAIOutput, err)
	}
	return items, nil
}
