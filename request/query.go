package request

import (
	"net/url"
	"strings"
)

// QueryParam is one query string entry.
type QueryParam struct {
	Key   string
	Value string
}

// Query is an ordered query string that allows repeated keys.
type Query struct {
	params []QueryParam
}

// ParseQuery decodes a raw query string, keeping entry order. Malformed escapes are kept
// as written.
func ParseQuery(raw string) *Query {
	q := &Query{}
	raw = strings.TrimPrefix(raw, "?")
	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		q.Append(unescapeQuery(k), unescapeQuery(v))
	}
	return q
}

func unescapeQuery(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}

// Append adds an entry after all existing ones.
func (q *Query) Append(key, value string) {
	q.params = append(q.params, QueryParam{Key: key, Value: value})
}

// Set replaces the first entry for key and removes the rest. A new key is appended.
func (q *Query) Set(key, value string) {
	out := q.params[:0:0]
	found := false
	for _, p := range q.params {
		if p.Key != key {
			out = append(out, p)
			continue
		}
		if !found {
			out = append(out, QueryParam{Key: key, Value: value})
			found = true
		}
	}
	if !found {
		out = append(out, QueryParam{Key: key, Value: value})
	}
	q.params = out
}

// Get returns the first value for key.
func (q *Query) Get(key string) (string, bool) {
	for _, p := range q.params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Values returns every value stored for key.
func (q *Query) Values(key string) []string {
	var out []string
	for _, p := range q.params {
		if p.Key == key {
			out = append(out, p.Value)
		}
	}
	return out
}

func (q *Query) Has(key string) bool {
	_, ok := q.Get(key)
	return ok
}

// Delete removes every entry for key.
func (q *Query) Delete(key string) {
	out := q.params[:0:0]
	for _, p := range q.params {
		if p.Key != key {
			out = append(out, p)
		}
	}
	q.params = out
}

// Keys returns distinct keys in first-seen order.
func (q *Query) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, p := range q.params {
		if !seen[p.Key] {
			seen[p.Key] = true
			keys = append(keys, p.Key)
		}
	}
	return keys
}

func (q *Query) Len() int {
	if q == nil {
		return 0
	}
	return len(q.params)
}

// Params returns a copy of the entries in order.
func (q *Query) Params() []QueryParam {
	if q == nil {
		return nil
	}
	return append([]QueryParam(nil), q.params...)
}

func (q *Query) clone() *Query {
	return &Query{params: q.Params()}
}

// Merge overlays other onto q: every key present in other replaces all of its entries
// in q, keeping the entries from other in their order.
func (q *Query) Merge(other *Query) {
	if other == nil {
		return
	}
	for _, key := range other.Keys() {
		q.Delete(key)
		for _, v := range other.Values(key) {
			q.Append(key, v)
		}
	}
}

// Encode renders the query in application/x-www-form-urlencoded form without sorting.
func (q *Query) Encode() string {
	if q.Len() == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range q.params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}
