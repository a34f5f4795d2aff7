package value

// KV is one key/value pair of an ordered map.
type KV struct {
	Key   string
	Value any
}

// Map is an ordered string-keyed map: DICTN's element order is part of
// the wire contract, and a plain Go map gives no iteration guarantee,
// so decode always reconstructs into a Map. Encode accepts a Map or a
// plain map[string]any; the latter's wire order follows whatever Go's
// map iteration produces for that process run.
type Map struct {
	pairs []KV
}

// NewMap creates an empty ordered map with room for n pairs.
func NewMap(n int) *Map {
	return &Map{pairs: make([]KV, 0, n)}
}

// Append adds a key/value pair, preserving insertion order.
func (m *Map) Append(key string, v any) {
	m.pairs = append(m.pairs, KV{Key: key, Value: v})
}

// Len returns the number of pairs.
func (m *Map) Len() int { return len(m.pairs) }

// At returns the pair at index i.
func (m *Map) At(i int) KV { return m.pairs[i] }

// Pairs returns the map's pairs in order. The caller must not mutate
// the returned slice.
func (m *Map) Pairs() []KV { return m.pairs }

// Get returns the value for key and whether it was found, scanning in
// order and returning the first match.
func (m *Map) Get(key string) (any, bool) {
	for _, kv := range m.pairs {
		if kv.Key == key {
			return kv.Value, true
		}
	}

	return nil, false
}

// ToGoMap copies the ordered map into a plain map[string]any, losing
// order.
func (m *Map) ToGoMap() map[string]any {
	out := make(map[string]any, len(m.pairs))
	for _, kv := range m.pairs {
		out[kv.Key] = kv.Value
	}

	return out
}
