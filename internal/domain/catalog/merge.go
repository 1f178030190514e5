package catalog

import (
	"strings"
)

// ConflictPolicy decides what happens to an incoming product whose name is
// already in the catalogue
type ConflictPolicy string

const (
	ConflictSkip   ConflictPolicy = "skip"
	ConflictUpdate ConflictPolicy = "update"
	ConflictFail   ConflictPolicy = "fail"
)

// IsValid checks if the policy is known
func (p ConflictPolicy) IsValid() bool {
	switch p {
	case ConflictSkip, ConflictUpdate, ConflictFail:
		return true
	}
	return false
}

// MergeResult is the catalogue after a bulk import
type MergeResult struct {
	Budgets []ProductBudget
	Added   int
	Updated int
	Skipped int
	// Conflicts holds the indexes of incoming products whose name matched
	Conflicts []int
}

// Changed reports whether the catalogue differs from before the merge
func (r MergeResult) Changed() bool {
	return r.Added > 0 || r.Updated > 0
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Merge folds incoming products into existing. Names match
// case-insensitively. New products come first, in incoming order. Updated
// products keep their id and position and take the incoming cost and price.
// Under ConflictFail any conflict leaves the catalogue untouched.
func Merge(existing, incoming []ProductBudget, policy ConflictPolicy) MergeResult {
	byName := make(map[string]int, len(existing))
	for i, b := range existing {
		if _, ok := byName[nameKey(b.Name)]; !ok {
			byName[nameKey(b.Name)] = i
		}
	}

	result := MergeResult{}
	updated := append([]ProductBudget{}, existing...)
	var added []ProductBudget
	for i, in := range incoming {
		j, ok := byName[nameKey(in.Name)]
		if !ok {
			added = append(added, in)
			continue
		}
		result.Conflicts = append(result.Conflicts, i)
		switch policy {
		case ConflictUpdate:
			updated[j].Cost = in.Cost
			updated[j].Price = in.Price
			result.Updated++
		default:
			result.Skipped++
		}
	}

	if policy == ConflictFail && len(result.Conflicts) > 0 {
		return MergeResult{Budgets: existing, Skipped: len(incoming), Conflicts: result.Conflicts}
	}

	result.Added = len(added)
	result.Budgets = append(added, updated...)
	return result
}
