package reconcile

import (
	"strconv"
	"strings"
)

// CompareVersions orders version labels component-wise: dot-separated numeric
// components compare numerically (so "v1.10" orders after "v1.2"), mixed or
// textual components fall back to lexical order, and a missing component
// orders before any present one. A leading "v" or "V" is ignored.
func CompareVersions(a, b string) int {
	partsA := splitVersion(a)
	partsB := splitVersion(b)

	max := len(partsA)
	if len(partsB) > max {
		max = len(partsB)
	}
	for i := 0; i < max; i++ {
		var compA, compB string
		if i < len(partsA) {
			compA = partsA[i]
		}
		if i < len(partsB) {
			compB = partsB[i]
		}
		if compA == compB {
			continue
		}
		if compA == "" {
			return -1
		}
		if compB == "" {
			return 1
		}
		numA, okA := parseComponent(compA)
		numB, okB := parseComponent(compB)
		if okA && okB {
			switch {
			case numA < numB:
				return -1
			case numA > numB:
				return 1
			}
			continue
		}
		if cmp := strings.Compare(compA, compB); cmp != 0 {
			return cmp
		}
	}
	return 0
}

// MaxVersion returns the later of two version labels under version-aware
// ordering; ties resolve to the first argument.
func MaxVersion(a, b string) string {
	if CompareVersions(b, a) > 0 {
		return b
	}
	return a
}

func splitVersion(version string) []string {
	trimmed := strings.TrimSpace(version)
	if len(trimmed) > 0 && (trimmed[0] == 'v' || trimmed[0] == 'V') {
		trimmed = trimmed[1:]
	}
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, ".")
}

func parseComponent(component string) (int64, bool) {
	value, err := strconv.ParseInt(component, 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
