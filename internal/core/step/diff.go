package step

import "sort"

// FrameDiff describes what changed between two consecutive steps, for
// incremental animation: only newly highlighted or eliminated indices are
// animated, and only pointers that actually moved are redrawn.
type FrameDiff struct {
	// NewlyHighlighted are indices highlighted by next but not by prev.
	NewlyHighlighted []int `json:"newlyHighlighted"`
	// Unhighlighted are indices highlighted by prev but no longer by next.
	Unhighlighted []int `json:"unhighlighted"`
	// NewlyEliminated are indices eliminated by next but not by prev.
	NewlyEliminated []int `json:"newlyEliminated"`
	// Pointers holds only the pointers whose values changed.
	Pointers map[string]int `json:"pointers,omitempty"`
}

// Empty reports whether the diff carries no visual change.
func (d FrameDiff) Empty() bool {
	return len(d.NewlyHighlighted) == 0 &&
		len(d.Unhighlighted) == 0 &&
		len(d.NewlyEliminated) == 0 &&
		len(d.Pointers) == 0
}

// Diff computes the incremental animation delta from prev to next. It is a
// pure function of the two steps and is order-independent on their index
// sets: [1,2,3] and [3,1,2] describe the same highlight set. prev may be nil
// for the first step of a trace.
func Diff(prev, next *Step) FrameDiff {
	var d FrameDiff
	if next == nil {
		return d
	}

	prevHi := highlightSet(prev)
	nextHi := highlightSet(next)
	d.NewlyHighlighted = setDifference(nextHi, prevHi)
	d.Unhighlighted = setDifference(prevHi, nextHi)
	d.NewlyEliminated = setDifference(eliminateSet(next), eliminateSet(prev))

	for _, key := range []string{MetaLeft, MetaRight, MetaMid} {
		nv, ok := next.Metadata.Int(key)
		if !ok {
			continue
		}
		if pv, ok := pointerOf(prev, key); ok && pv == nv {
			continue
		}
		if d.Pointers == nil {
			d.Pointers = make(map[string]int, 3)
		}
		d.Pointers[key] = nv
	}
	return d
}

func pointerOf(s *Step, key string) (int, bool) {
	if s == nil {
		return 0, false
	}
	return s.Metadata.Int(key)
}

// highlightSet returns the indices a step presents as active.
func highlightSet(s *Step) map[int]struct{} {
	if s == nil {
		return nil
	}
	switch s.Type {
	case TypeHighlight, TypeCompare, TypeFound:
		return indexSet(s.Indices)
	}
	return nil
}

// eliminateSet returns the indices a step removes from the search space.
func eliminateSet(s *Step) map[int]struct{} {
	if s == nil || s.Type != TypeEliminate {
		return nil
	}
	return indexSet(s.Indices)
}

func indexSet(indices []int) map[int]struct{} {
	if len(indices) == 0 {
		return nil
	}
	set := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		set[i] = struct{}{}
	}
	return set
}

// setDifference returns a\b as a sorted slice for deterministic rendering.
func setDifference(a, b map[int]struct{}) []int {
	if len(a) == 0 {
		return nil
	}
	var out []int
	for i := range a {
		if _, shared := b[i]; !shared {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}
