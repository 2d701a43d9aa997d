package ui

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/dpshade/dsinit/internal/models"
)

const maxSuggestions = 5

// splitCurrentTag separates the tag being typed from the tags before it.
func splitCurrentTag(value string) (prefix, current string) {
	i := strings.LastIndex(value, models.TagSeparator)
	if i < 0 {
		return "", value
	}
	end := i + len(models.TagSeparator)
	return value[:end], value[end:]
}

// suggestTags ranks known tags against the tag being typed. Tags already
// entered and an exact match are left out.
func suggestTags(value string, known []string) []string {
	prefix, current := splitCurrentTag(value)
	if current == "" || len(known) == 0 {
		return nil
	}

	entered := make(map[string]bool)
	if prefix != "" {
		for _, tag := range models.SplitTags(strings.TrimSuffix(prefix, models.TagSeparator)) {
			entered[tag] = true
		}
	}

	var out []string
	for _, m := range fuzzy.Find(current, known) {
		if m.Str == current || entered[m.Str] {
			continue
		}
		out = append(out, m.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// completeTag replaces the tag being typed with tag.
func completeTag(value, tag string) string {
	prefix, _ := splitCurrentTag(value)
	return prefix + tag
}
