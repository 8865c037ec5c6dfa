package mock

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// MatchKey is the comparison identity of a request or a descriptor.
type MatchKey struct {
	URL    string
	Method string
	Body   any
	// HasBody is false when the body takes no part in the comparison.
	HasBody bool
}

// Equal reports whether both keys serialize to the same canonical JSON.
func (k MatchKey) Equal(o MatchKey) bool {
	a, b := k.canonical(), o.canonical()
	if xxhash.Sum64(a) != xxhash.Sum64(b) {
		return false
	}
	return bytes.Equal(a, b)
}

// Sum is the digest of the canonical serialization.
func (k MatchKey) Sum() uint64 {
	return xxhash.Sum64(k.canonical())
}

// canonical relies on encoding/json sorting map keys, which makes object key
// order irrelevant.
func (k MatchKey) canonical() []byte {
	m := map[string]any{
		"url":    k.URL,
		"method": k.Method,
	}
	if k.HasBody {
		m["body"] = k.Body
	}

	b, err := json.Marshal(m)
	if err != nil {
		// Bodies are either decoded JSON or validated on registration.
		return []byte(k.Method + " " + k.URL)
	}
	return b
}

// normalizeJSON turns v into the shape json.Unmarshal produces, so that Go
// values compare equal to decoded request bodies.
func normalizeJSON(v any) (any, error) {
	var raw []byte
	switch b := v.(type) {
	case []byte:
		raw = b
	case json.RawMessage:
		raw = b
	default:
		var err error
		if raw, err = json.Marshal(v); err != nil {
			return nil, err
		}
	}

	return decodeJSON(raw)
}

// decodeJSON decodes raw keeping numbers exact. Integers above 2^53 would
// collapse if decoded as float64.
func decodeJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after the JSON value")
	}
	return canonicalNumbers(out), nil
}

// canonicalNumbers rewrites numbers so that equal values have one spelling:
// 1, 1.0 and 1e0 all become 1.
func canonicalNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = canonicalNumbers(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = canonicalNumbers(e)
		}
		return t
	case json.Number:
		return canonicalNumber(t)
	}
	return v
}

func canonicalNumber(n json.Number) json.Number {
	if i, err := n.Int64(); err == nil {
		return json.Number(strconv.FormatInt(i, 10))
	}
	if !strings.ContainsAny(n.String(), ".eE") {
		// An integer out of the int64 range keeps its literal.
		return n
	}

	f, err := n.Float64()
	if err != nil {
		return n
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<63 {
		return json.Number(strconv.FormatInt(int64(f), 10))
	}
	return json.Number(strconv.FormatFloat(f, 'g', -1, 64))
}

// location is a URL split into the parts taking part in matching. The scheme does not.
type location struct {
	host  string
	path  string
	query string
}

func (l location) String(stripQuery bool) string {
	s := l.host + l.path
	if !stripQuery && l.query != "" {
		s += "?" + l.query
	}
	return s
}

func isAbsolute(p string) bool {
	return strings.Contains(p, "://") || strings.HasPrefix(p, "//")
}

// resolveLocation joins host and path unless path is absolute. An empty host
// yields a location without host.
func resolveLocation(host, path string) location {
	if isAbsolute(path) {
		return parseLocation(path)
	}

	if host == "" {
		l := parseLocation("//placeholder/" + strings.TrimLeft(path, "/"))
		l.host = ""
		return l
	}

	full := strings.TrimRight(host, "/") + "/" + strings.TrimLeft(path, "/")
	if !isAbsolute(full) {
		full = "//" + full
	}
	return parseLocation(full)
}

func parseLocation(raw string) location {
	u, err := url.Parse(raw)
	if err != nil {
		return location{path: raw}
	}

	l := location{
		host:  strings.ToLower(u.Host),
		path:  u.Path,
		query: canonicalQuery(u.RawQuery),
	}
	if l.path == "" {
		l.path = "/"
	}
	return l
}

// canonicalQuery sorts the parameters so that their order does not matter.
func canonicalQuery(raw string) string {
	if raw == "" {
		return ""
	}

	v, err := url.ParseQuery(raw)
	if err != nil {
		return raw
	}
	return v.Encode()
}

// JSONEqual reports whether a and b have the same JSON structure. Object key
// order is irrelevant.
func JSONEqual(a, b any) bool {
	na, err := normalizeJSON(a)
	if err != nil {
		return false
	}
	nb, err := normalizeJSON(b)
	if err != nil {
		return false
	}

	ja, _ := json.Marshal(na)
	jb, _ := json.Marshal(nb)
	return bytes.Equal(ja, jb)
}
