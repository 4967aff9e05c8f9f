package resource

import (
	"net/url"
	"sort"
	"strings"
)

// Query is anything that can be rendered as a URL query string, without the
// leading "?".
type Query interface {
	Encode() string
}

// RawQuery is passed through untouched. A leading "?" is tolerated.
type RawQuery string

func (q RawQuery) Encode() string {
	return strings.TrimPrefix(string(q), "?")
}

// QueryList holds preformatted "key=value" pieces joined with "&".
type QueryList []string

func (q QueryList) Encode() string {
	parts := make([]string, 0, len(q))
	for _, p := range q {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "&")
}

// QueryParam is a single key/value pair.
type QueryParam struct {
	Key   string
	Value string
}

// QueryPairs keeps its parameters in insertion order.
type QueryPairs []QueryParam

// Pairs builds QueryPairs from alternating keys and values. A trailing key
// without a value gets an empty value.
func Pairs(kv ...string) QueryPairs {
	q := make(QueryPairs, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		p := QueryParam{Key: kv[i]}
		if i+1 < len(kv) {
			p.Value = kv[i+1]
		}
		q = append(q, p)
	}
	return q
}

func (q QueryPairs) Encode() string {
	parts := make([]string, 0, len(q))
	for _, p := range q {
		parts = append(parts, escapeComponent(p.Key)+"="+escapeComponent(p.Value))
	}
	return strings.Join(parts, "&")
}

// QueryMap is encoded with its keys in sorted order, since Go maps carry no
// order of their own. Use QueryPairs when order matters:
// Pairs("name", "a", "age", "3") encodes as "name=a&age=3", while the same
// QueryMap encodes as "age=3&name=a".
type QueryMap map[string]string

func (q QueryMap) Encode() string {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make(QueryPairs, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, QueryParam{Key: k, Value: q[k]})
	}
	return pairs.Encode()
}

// escapeComponent percent-encodes s the way encodeURIComponent does, using
// %20 for spaces rather than "+".
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// withQuery appends q to target, omitting the separator when q is empty.
func withQuery(target string, q Query) string {
	if q == nil {
		return target
	}
	encoded := q.Encode()
	if encoded == "" {
		return target
	}
	if strings.Contains(target, "?") {
		return target + "&" + encoded
	}
	return target + "?" + encoded
}
