package navigation

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Parameter is an ordered string-keyed bag passed through navigation calls.
// The zero value is an empty parameter. Parameters are not retained beyond the
// call that delivers them.
type Parameter struct {
	entries *orderedmap.OrderedMap[string, any]
}

// NewParameter creates a parameter from alternating key/value pairs.
// Non-string keys and a trailing key without a value are ignored.
func NewParameter(pairs ...any) Parameter {
	p := Parameter{entries: orderedmap.New[string, any]()}
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			continue
		}
		p.entries.Set(key, pairs[i+1])
	}
	return p
}

// Set stores value under key, keeping the original position of an existing key.
func (p *Parameter) Set(key string, value any) *Parameter {
	if p.entries == nil {
		p.entries = orderedmap.New[string, any]()
	}
	p.entries.Set(key, value)
	return p
}

// Get returns the value stored under key.
func (p Parameter) Get(key string) (any, bool) {
	if p.entries == nil {
		return nil, false
	}
	return p.entries.Get(key)
}

// GetString returns the value under key when it is a string.
func (p Parameter) GetString(key string) (string, bool) {
	v, ok := p.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Len returns the number of entries.
func (p Parameter) Len() int {
	if p.entries == nil {
		return 0
	}
	return p.entries.Len()
}

// Keys returns the keys in insertion order.
func (p Parameter) Keys() []string {
	if p.entries == nil {
		return nil
	}
	keys := make([]string, 0, p.entries.Len())
	for pair := p.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Range calls fn for each entry in insertion order until fn returns false.
func (p Parameter) Range(fn func(key string, value any) bool) {
	if p.entries == nil {
		return
	}
	for pair := p.entries.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

func (p Parameter) String() string {
	var b strings.Builder
	b.WriteString("{")
	first := true
	p.Range(func(key string, value any) bool {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%s: %v", key, value)
		return true
	})
	b.WriteString("}")
	return b.String()
}
