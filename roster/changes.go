package roster

import "fmt"

// ManagerChanges returns the number of identities present in exactly one of
// the two sets.
func ManagerChanges(original, working []int) int {
	orig := toSet(original)
	work := toSet(working)

	changes := 0
	for id := range work {
		if _, ok := orig[id]; !ok {
			changes++
		}
	}
	for id := range orig {
		if _, ok := work[id]; !ok {
			changes++
		}
	}
	return changes
}

// OwnerChanges counts working entries that are new or whose count differs
// from the original. Only the working list is scanned: an owner removed from
// the working list entirely is not counted.
func OwnerChanges(original, working []OwnerCount) int {
	counts := make(map[int]int, len(original))
	for _, o := range original {
		counts[o.ID] = o.Count
	}

	changes := 0
	for _, w := range working {
		count, ok := counts[w.ID]
		if !ok || count != w.Count {
			changes++
		}
	}
	return changes
}

// SubmitLabel is the caption of the submit button for the given change count.
func SubmitLabel(changes int) string {
	switch {
	case changes <= 0:
		return "Submit"
	case changes == 1:
		return "Submit 1 change"
	default:
		return fmt.Sprintf("Submit %d changes", changes)
	}
}

func toSet(ids []int) map[int]struct{} {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
