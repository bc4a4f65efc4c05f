package request

import "strings"

// Header is one header entry.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered header map with case-insensitive names. Overwriting a header
// keeps its original position and takes the new spelling.
type Headers struct {
	entries []Header
}

func NewHeaders() *Headers {
	return &Headers{}
}

func (h *Headers) index(name string) int {
	for i, e := range h.entries {
		if strings.EqualFold(e.Name, name) {
			return i
		}
	}
	return -1
}

// Set writes name=value, replacing an existing entry with the same name.
func (h *Headers) Set(name, value string) {
	if i := h.index(name); i >= 0 {
		h.entries[i] = Header{Name: name, Value: value}
		return
	}
	h.entries = append(h.entries, Header{Name: name, Value: value})
}

// Add appends value to an existing entry separated by a comma, or creates it.
func (h *Headers) Add(name, value string) {
	if i := h.index(name); i >= 0 {
		h.entries[i].Value += "," + value
		return
	}
	h.entries = append(h.entries, Header{Name: name, Value: value})
}

func (h *Headers) Get(name string) (string, bool) {
	if h == nil {
		return "", false
	}
	if i := h.index(name); i >= 0 {
		return h.entries[i].Value, true
	}
	return "", false
}

func (h *Headers) Has(name string) bool {
	_, ok := h.Get(name)
	return ok
}

func (h *Headers) Delete(name string) {
	if i := h.index(name); i >= 0 {
		h.entries = append(h.entries[:i:i], h.entries[i+1:]...)
	}
}

// Merge sets every entry of other onto h in order.
func (h *Headers) Merge(other *Headers) {
	if other == nil {
		return
	}
	for _, e := range other.entries {
		h.Set(e.Name, e.Value)
	}
}

func (h *Headers) Len() int {
	if h == nil {
		return 0
	}
	return len(h.entries)
}

// Entries returns a copy of the headers in order.
func (h *Headers) Entries() []Header {
	if h == nil {
		return nil
	}
	return append([]Header(nil), h.entries...)
}

func (h *Headers) clone() *Headers {
	return &Headers{entries: h.Entries()}
}
