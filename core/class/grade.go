package class

import (
	"strconv"
	"strings"
)

// ParseGrade interprets the class name as an integer grade.
// It reports false for names that are not purely numeric, e.g. "Nursery", "LKG" or "9A".
// A leading sign is accepted, as by strconv.Atoi: "+9" is grade 9 and "-1" is grade -1.
func ParseGrade(name string) (int, bool) {
	grade, err := strconv.Atoi(strings.TrimSpace(name))
	if err != nil {
		return 0, false
	}
	return grade, true
}

// PromotionCandidates returns the classes one grade above source.
// When source has no numeric grade, or no class holds the next grade,
// every class other than source is returned so that a manual pick stays possible.
func PromotionCandidates(all []Class, source Class) []Class {
	if grade, ok := ParseGrade(source.Name); ok {
		next := make([]Class, 0)
		for _, c := range all {
			if g, ok := ParseGrade(c.Name); ok && g == grade+1 {
				next = append(next, c)
			}
		}
		if len(next) > 0 {
			return next
		}
	}
	return allExcept(all, source)
}

// RetentionCandidates returns the classes sharing the source's name (any section),
// compared case-insensitively. It falls back to the source class alone.
func RetentionCandidates(all []Class, source Class) []Class {
	name := strings.TrimSpace(source.Name)
	same := make([]Class, 0)
	for _, c := range all {
		if strings.EqualFold(strings.TrimSpace(c.Name), name) {
			same = append(same, c)
		}
	}
	if len(same) == 0 {
		return []Class{source}
	}
	return same
}

func allExcept(all []Class, source Class) []Class {
	others := make([]Class, 0, len(all))
	for _, c := range all {
		if c.ID != source.ID {
			others = append(others, c)
		}
	}
	return others
}
