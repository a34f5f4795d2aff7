// Package usertype implements the open, capped registries that back the
// UTYPE wire kind: an encode-side registry keyed by the host Go type,
// and a decode-side registry keyed by the wire index a UTYPE frame
// carries. Both are capped at 32 entries, the range a 5-bit frame index
// can address.
package usertype

import (
	"reflect"
	"sync"
)

// MaxTypes is the number of distinct user types that can be registered
// on either side, matching the 5-bit index field of a UTYPE frame head.
const MaxTypes = 32

// Encoder converts a registered host value into its UTYPE payload bytes.
type Encoder func(v any) ([]byte, error)

// Decoder converts a UTYPE payload back into a host value.
type Decoder func(payload []byte) (any, error)

type encodeEntry struct {
	idx    int
	encode Encoder
}

// EncodeRegistry maps a host Go type to the index and encoder function
// registered for it. It is built fresh per encode session via
// NewEncoderTypes so that two goroutines encoding concurrently with
// different type sets never see each other's registrations.
type EncodeRegistry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]encodeEntry
}

// NewEncodeRegistry creates an empty encode-side registry.
func NewEncodeRegistry() *EncodeRegistry {
	return &EncodeRegistry{byType: make(map[reflect.Type]encodeEntry)}
}

// Register assigns the next free index to sample's type and associates
// enc with it. It fails once MaxTypes types have been registered, or if
// sample's type is already registered.
func (r *EncodeRegistry) Register(sample any, enc Encoder) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := reflect.TypeOf(sample)
	if _, exists := r.byType[t]; exists {
		return 0, errTypeAlreadyRegistered
	}
	if len(r.byType) >= MaxTypes {
		return 0, errRegistryFull
	}

	idx := len(r.byType)
	r.byType[t] = encodeEntry{idx: idx, encode: enc}

	return idx, nil
}

// Lookup returns the registered index and encoder for v's dynamic type.
func (r *EncodeRegistry) Lookup(v any) (idx int, enc Encoder, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, found := r.byType[reflect.TypeOf(v)]
	if !found {
		return 0, nil, false
	}

	return e.idx, e.encode, true
}

// DecodeRegistry maps a UTYPE wire index to the decoder function
// registered for it. Like EncodeRegistry, it is built fresh per decode
// session via NewDecoderTypes.
type DecodeRegistry struct {
	mu    sync.RWMutex
	slots [MaxTypes]Decoder
}

// NewDecodeRegistry creates an empty decode-side registry.
func NewDecodeRegistry() *DecodeRegistry {
	return &DecodeRegistry{}
}

// Register associates dec with wire index idx.
func (r *DecodeRegistry) Register(idx int, dec Decoder) error {
	if idx < 0 || idx >= MaxTypes {
		return errIndexOutOfRange
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slots[idx] != nil {
		return errTypeAlreadyRegistered
	}
	r.slots[idx] = dec

	return nil
}

// Lookup returns the decoder registered for idx, if any.
func (r *DecodeRegistry) Lookup(idx int) (Decoder, bool) {
	if idx < 0 || idx >= MaxTypes {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	dec := r.slots[idx]

	return dec, dec != nil
}
