package threshold

import "sort"

// Tier is one (threshold, payload) pair of a Table.
type Tier struct {
	Threshold int
	Payload   string
}

// Table is an immutable threshold -> payload mapping.
// Tiers are unique by threshold and kept sorted ascending.
type Table struct {
	tiers []Tier
}

// Empty is the table served before anything was built.
var Empty = &Table{}

// newTable takes ownership of byThreshold.
func newTable(byThreshold map[int]string) *Table {
	if len(byThreshold) == 0 {
		return Empty
	}
	tiers := make([]Tier, 0, len(byThreshold))
	for threshold, payload := range byThreshold {
		tiers = append(tiers, Tier{Threshold: threshold, Payload: payload})
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].Threshold < tiers[j].Threshold })
	return &Table{tiers: tiers}
}

func (t *Table) Len() int { return len(t.tiers) }

// Get returns the payload stored exactly at threshold.
func (t *Table) Get(threshold int) (string, bool) {
	i := t.search(threshold)
	if i < len(t.tiers) && t.tiers[i].Threshold == threshold {
		return t.tiers[i].Payload, true
	}
	return "", false
}

// Nearest returns the tier with the smallest threshold that is >= n.
func (t *Table) Nearest(n int) (Tier, bool) {
	if i := t.search(n); i < len(t.tiers) {
		return t.tiers[i], true
	}
	return Tier{}, false
}

// Tiers returns a copy of the tiers in ascending threshold order.
func (t *Table) Tiers() []Tier {
	out := make([]Tier, len(t.tiers))
	copy(out, t.tiers)
	return out
}

// Equal compares contents, not identity.
func (t *Table) Equal(other *Table) bool {
	if len(t.tiers) != len(other.tiers) {
		return false
	}
	for i := range t.tiers {
		if t.tiers[i] != other.tiers[i] {
			return false
		}
	}
	return true
}

func (t *Table) search(n int) int {
	return sort.Search(len(t.tiers), func(i int) bool { return t.tiers[i].Threshold >= n })
}
