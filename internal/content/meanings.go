package content

import (
	"strings"

	"github.com/verte-zerg/tuivoca/internal/model"
)

// ParseMeanings pairs part-of-speech tags with meanings. Several
// comma-separated tags pair positionally with the comma-separated meanings;
// a single tag keeps the whole meaning string.
func ParseMeanings(pos, meaning string) []model.Meaning {
	if strings.TrimSpace(meaning) == "" {
		return nil
	}
	pos = strings.TrimSpace(pos)
	if strings.Contains(pos, ",") {
		parts := splitTrim(meaning)
		tags := splitTrim(pos)
		out := make([]model.Meaning, 0, len(tags))
		for i, tag := range tags {
			if i >= len(parts) || parts[i] == "" {
				continue
			}
			out = append(out, model.Meaning{POS: tag, Text: parts[i]})
		}
		return out
	}
	return []model.Meaning{{POS: pos, Text: meaning}}
}

func splitTrim(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
