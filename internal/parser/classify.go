package parser

import (
	"regexp"
	"strings"

	"tempo/internal/intent"
)

var (
	deleteKeywordRe = regexp.MustCompile(`\b(delete|remove|cancel|clear)\b`)
	editKeywordRe   = regexp.MustCompile(`\b(edit|change|move|reschedule|update)\b`)
	queryPrefixRe   = regexp.MustCompile(`^(what|when|how many|do i have|show|list|display)\b`)

	deleteStopwordsRe = regexp.MustCompile(`\b(delete|remove|cancel|clear|the|my|please|event)\b`)
	editStopwordsRe   = regexp.MustCompile(`\b(edit|change|move|reschedule|update|the|my|to|event)\b`)
)

// ClassifyCommand detects delete/edit/query commands with cheap keyword
// rules before any heavier processing runs. Ordering matters: edit and
// delete detection must win over time extraction so "change my 3pm meeting"
// is an Edit, not an Event. The second return is false when no command
// pattern applies.
func ClassifyCommand(text string) (intent.Intent, bool) {
	switch {
	case deleteKeywordRe.MatchString(text):
		return intent.Delete{Target: stripCommandWords(text, deleteStopwordsRe)}, true
	case editKeywordRe.MatchString(text):
		return intent.Edit{
			Target: stripCommandWords(text, editStopwordsRe),
			// Downstream resolves the specifics against the matched event.
			Changes: map[string]string{},
		}, true
	case queryPrefixRe.MatchString(text):
		return intent.Query{Question: text}, true
	}
	return nil, false
}

func stripCommandWords(text string, stopwords *regexp.Regexp) string {
	target := stopwords.ReplaceAllString(text, " ")
	target = strings.TrimSpace(whitespaceRe.ReplaceAllString(target, " "))
	if target == "" {
		return "event"
	}
	return target
}
