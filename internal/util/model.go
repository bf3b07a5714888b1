package util

import (
	"regexp"
	"sort"
	"strings"
)

var datedModel = regexp.MustCompile(`^claude-(.+)-(\d{8})$`)

// SimplifyModelName turns claude-{name}-{yyyymmdd} into {Name}.
// Anything else is returned unchanged.
func SimplifyModelName(modelName string) string {
	if modelName == "<synthetic>" || modelName == "synthetic" {
		return modelName
	}

	matches := datedModel.FindStringSubmatch(modelName)
	if len(matches) != 3 || matches[1] == "" {
		return modelName
	}
	part := matches[1]
	return strings.ToUpper(part[:1]) + part[1:]
}

// GetModelOrder returns the sort order for a model (lower number = higher priority)
func GetModelOrder(modelName string) int {
	lower := strings.ToLower(modelName)
	switch {
	case strings.Contains(lower, "synthetic"):
		return 999
	case strings.Contains(lower, "opus"):
		return 1
	case strings.Contains(lower, "sonnet"):
		return 2
	case strings.Contains(lower, "haiku"):
		return 3
	default:
		return 100
	}
}

// SortModels returns a copy of models ordered by family, then name.
func SortModels(models []string) []string {
	sorted := make([]string, len(models))
	copy(sorted, models)

	sort.Slice(sorted, func(i, j int) bool {
		orderI := GetModelOrder(sorted[i])
		orderJ := GetModelOrder(sorted[j])
		if orderI != orderJ {
			return orderI < orderJ
		}
		return sorted[i] < sorted[j]
	})

	return sorted
}
