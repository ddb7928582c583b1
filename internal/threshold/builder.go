package threshold

import (
	"github.com/Borislavv/go-reserved-slots/config"
	"github.com/Borislavv/go-reserved-slots/internal/shared/scalar"
)

// Builder turns raw section entries into a Table. Builders are pure and never
// fail: malformed entries are dropped and counted.
type Builder func(entries []config.Entry) (table *Table, dropped int)

// Capabilities builds the reserved-slots table: each entry reads
// "capability name -> boundary", the boundary must be > 0.
func Capabilities(entries []config.Entry) (*Table, int) {
	return build(entries, func(key, value string) (int, string, bool) {
		threshold, ok := scalar.Int(value)
		return threshold, key, ok && threshold > 0
	})
}

// Messages builds the custom-messages table: each entry reads
// "boundary -> message", the boundary must be >= 0 (0 means completely full).
func Messages(entries []config.Entry) (*Table, int) {
	return build(entries, func(key, value string) (int, string, bool) {
		threshold, ok := scalar.Int(key)
		return threshold, value, ok && threshold >= 0
	})
}

// build applies pick to every entry with both sides present; on equal
// thresholds the later entry wins.
func build(entries []config.Entry, pick func(key, value string) (threshold int, payload string, ok bool)) (*Table, int) {
	var (
		dropped     int
		byThreshold = make(map[int]string, len(entries))
	)
	for _, e := range entries {
		key, keyOK := scalar.String(e.Key)
		value, valueOK := scalar.String(e.Value)
		if !keyOK || !valueOK {
			dropped++
			continue
		}

		threshold, payload, ok := pick(key, value)
		if !ok {
			dropped++
			continue
		}
		byThreshold[threshold] = payload
	}
	return newTable(byThreshold), dropped
}
