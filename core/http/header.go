package http

import "strings"

// Header is a multimap of header names to values. Lookups are
// case-insensitive; the order in which names are first added and the
// order of values within a name are both preserved. The name's casing
// from its first insertion is kept for serialization.
type Header struct {
	names  []string            // display casing, first-insertion order
	values map[string][]string // keyed by lowercased name
}

// NewHeader creates an empty header container.
func NewHeader() *Header {
	return &Header{values: make(map[string][]string)}
}

// Add appends value to the list of values for name.
func (h *Header) Add(name, value string) {
	key := strings.ToLower(name)
	if _, ok := h.values[key]; !ok {
		h.names = append(h.names, name)
	}
	h.values[key] = append(h.values[key], value)
}

// Set replaces all values for name with a single value.
func (h *Header) Set(name, value string) {
	key := strings.ToLower(name)
	if _, ok := h.values[key]; !ok {
		h.names = append(h.names, name)
	}
	h.values[key] = []string{value}
}

// Get returns the first value recorded for name, or "" if absent.
func (h *Header) Get(name string) string {
	if vs := h.values[strings.ToLower(name)]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Has reports whether at least one value is recorded for name.
func (h *Header) Has(name string) bool {
	return len(h.values[strings.ToLower(name)]) > 0
}

// Values returns all values recorded for name, in insertion order.
func (h *Header) Values(name string) []string {
	return h.values[strings.ToLower(name)]
}

// Del removes all values for name.
func (h *Header) Del(name string) {
	key := strings.ToLower(name)
	if _, ok := h.values[key]; !ok {
		return
	}
	delete(h.values, key)
	for i, n := range h.names {
		if strings.ToLower(n) == key {
			h.names = append(h.names[:i], h.names[i+1:]...)
			break
		}
	}
}

// Len returns the number of distinct header names.
func (h *Header) Len() int {
	return len(h.names)
}

// Names returns the header names in first-insertion order, using the
// casing of each name's first insertion.
func (h *Header) Names() []string {
	return append([]string(nil), h.names...)
}

// Clone returns a deep copy of the header container.
func (h *Header) Clone() *Header {
	c := NewHeader()
	c.names = append(c.names, h.names...)
	for k, vs := range h.values {
		c.values[k] = append([]string(nil), vs...)
	}
	return c
}
