package config

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Borislavv/go-reserved-slots/internal/shared/scalar"
	"github.com/zeebo/xxh3"
	"gopkg.in/yaml.v3"
)

// Entry is one raw key/value pair of a Section. Value keeps whatever scalar
// type the source produced (string, int, float64, bool or nil).
type Entry struct {
	Key   string
	Value any
}

// Snapshot is an immutable view of a Section. Fingerprint is always the one
// computed from exactly these Entries.
type Snapshot struct {
	Entries     []Entry
	Fingerprint uint64
}

// Section is an ordered string-keyed table of scalar values.
// Reads are lock-free: every mutation builds a new Snapshot and publishes it
// with a single pointer swap. Writers are serialized.
type Section struct {
	mu   sync.Mutex
	snap atomic.Pointer[Snapshot]
}

func NewSection(entries ...Entry) *Section {
	s := &Section{}
	s.publish(entries)
	return s
}

// Snapshot returns the current contents. Never nil.
func (s *Section) Snapshot() *Snapshot {
	if snap := s.snap.Load(); snap != nil {
		return snap
	}
	// zero Section, nothing was ever published
	return emptySnapshot
}

func (s *Section) Fingerprint() uint64 { return s.Snapshot().Fingerprint }
func (s *Section) Len() int            { return len(s.Snapshot().Entries) }

// Get returns the value stored under key.
func (s *Section) Get(key string) (any, bool) {
	for _, e := range s.Snapshot().Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Set replaces the value of an existing key in place or appends a new entry.
func (s *Section) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.Snapshot().Entries
	next := make([]Entry, len(cur), len(cur)+1)
	copy(next, cur)

	for i := range next {
		if next[i].Key == key {
			next[i].Value = value
			s.publish(next)
			return
		}
	}
	s.publish(append(next, Entry{Key: key, Value: value}))
}

// Delete removes key and reports whether it was present.
func (s *Section) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.Snapshot().Entries
	for i := range cur {
		if cur[i].Key == key {
			next := make([]Entry, 0, len(cur)-1)
			next = append(next, cur[:i]...)
			next = append(next, cur[i+1:]...)
			s.publish(next)
			return true
		}
	}
	return false
}

// Replace swaps the whole contents. Used on configuration reload.
func (s *Section) Replace(entries []Entry) {
	next := make([]Entry, len(entries))
	copy(next, entries)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.publish(next)
}

// UnmarshalYAML decodes a mapping node keeping document order.
// A null node yields an empty section; a non-mapping node is an error.
func (s *Section) UnmarshalYAML(node *yaml.Node) error {
	entries, err := decodeEntries(node)
	if err != nil {
		return err
	}
	s.Replace(entries)
	return nil
}

// MarshalYAML renders the section as an ordered mapping.
func (s *Section) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range s.Snapshot().Entries {
		var val yaml.Node
		if err := val.Encode(e.Value); err != nil {
			return nil, fmt.Errorf("encode section value of %q: %w", e.Key, err)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key}, &val)
	}
	return node, nil
}

var emptySnapshot = &Snapshot{Fingerprint: fingerprint(nil)}

func (s *Section) publish(entries []Entry) {
	s.snap.Store(&Snapshot{Entries: entries, Fingerprint: fingerprint(entries)})
}

var hasherPool = sync.Pool{New: func() any { return xxh3.New() }}

// fingerprint hashes keys, value types and rendered values in order.
func fingerprint(entries []Entry) uint64 {
	hasher := hasherPool.Get().(*xxh3.Hasher)
	hasher.Reset()

	var sep = []byte{0}
	for _, e := range entries {
		_, _ = hasher.WriteString(e.Key)
		_, _ = hasher.Write(sep)
		_, _ = hasher.WriteString(fmt.Sprintf("%T", e.Value))
		_, _ = hasher.Write(sep)
		if v, ok := scalar.String(e.Value); ok {
			_, _ = hasher.WriteString(v)
		} else if e.Value != nil {
			_, _ = hasher.WriteString(fmt.Sprint(e.Value))
		}
		_, _ = hasher.Write(sep)
	}

	sum := hasher.Sum64()
	hasherPool.Put(hasher)
	return sum
}

func decodeEntries(node *yaml.Node) ([]Entry, error) {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("section at line %d: expected a mapping", node.Line)
	}

	entries := make([]Entry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind == yaml.AliasNode && keyNode.Alias != nil {
			keyNode = keyNode.Alias
		}

		var value any
		if err := valNode.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode value of %q at line %d: %w", keyNode.Value, valNode.Line, err)
		}
		entries = append(entries, Entry{Key: keyNode.Value, Value: value})
	}
	return entries, nil
}
