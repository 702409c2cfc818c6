package ui

import (
	"strconv"
	"strings"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// formatStars renders a star count with thousands separators.
func formatStars(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return s
	}
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// topicLabels returns the chips shown for a repository: at most MaxTopics
// names followed by a "+N more" label when topics were left out.
func topicLabels(topics []string) []string {
	if len(topics) == 0 {
		return nil
	}
	if len(topics) <= MaxTopics {
		return append([]string(nil), topics...)
	}
	labels := append([]string(nil), topics[:MaxTopics]...)
	return append(labels, "+"+strconv.Itoa(len(topics)-MaxTopics)+" more")
}

// lineCount returns the number of terminal lines s occupies.
func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
