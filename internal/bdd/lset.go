package bdd

// minBound/maxBound stand in for the open-ended tails of the memo table:
// every K' below minBound behaves like -infinity (always false), every
// K' above maxBound like +infinity (always true). They are kept well
// clear of any real coefficient sum so addSat's saturation never fires
// on a legitimate interval.
const (
	minBound = -(1 << 30)
	maxBound = 1 << 30
)

// interval is a closed range [lo, hi] of remaining-threshold values K'
// that all map to the same BDD node at a given level.
type interval struct {
	lo, hi int
}

// lset is the per-level memo table L[i]: a set of disjoint intervals
// of K', each mapped to the node index already built for that range.
// It replaces a pointer-linked BST with a slice kept sorted by lo,
// searched and extended by interval, preserving the same disjointness
// invariant without manual tree-node ownership.
type lset struct {
	entries []lsetEntry
}

type lsetEntry struct {
	iv   interval
	node int
}

func newLSet() *lset {
	return &lset{}
}

// search returns the entry whose interval contains k, if any.
func (s *lset) search(k int) (interval, int, bool) {
	lo, hi := 0, len(s.entries)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case k < s.entries[mid].iv.lo:
			hi = mid
		case k > s.entries[mid].iv.hi:
			lo = mid + 1
		default:
			return s.entries[mid].iv, s.entries[mid].node, true
		}
	}
	return interval{}, 0, false
}

// insert adds iv->node, maintaining sort order by lo. iv is assumed
// disjoint from every interval already present; that invariant holds by
// construction of the BDD algorithm in Compile, which only ever inserts
// the gap it has just resolved.
func (s *lset) insert(iv interval, node int) {
	pos := 0
	for pos < len(s.entries) && s.entries[pos].iv.lo < iv.lo {
		pos++
	}
	s.entries = append(s.entries, lsetEntry{})
	copy(s.entries[pos+1:], s.entries[pos:])
	s.entries[pos] = lsetEntry{iv: iv, node: node}
}
