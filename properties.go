package jgen

import "slices"

// Properties is an insertion-ordered string-keyed property bag.
type Properties struct {
	keys   []string
	values map[string]any
}

// NewProperties creates an empty property bag.
func NewProperties() *Properties {
	return &Properties{values: make(map[string]any)}
}

// Set stores value under key. Re-setting a key keeps its original position.
func (p *Properties) Set(key string, value any) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}

	p.values[key] = value
}

// Get returns the value stored under key.
func (p *Properties) Get(key string) (any, bool) {
	v, ok := p.values[key]

	return v, ok
}

// String returns the value under key if it is a string.
func (p *Properties) String(key string) (string, bool) {
	v, ok := p.values[key]
	if !ok {
		return "", false
	}

	s, ok := v.(string)

	return s, ok
}

// Delete removes key.
func (p *Properties) Delete(key string) {
	if _, ok := p.values[key]; !ok {
		return
	}

	delete(p.values, key)
	p.keys = slices.DeleteFunc(p.keys, func(k string) bool { return k == key })
}

// Keys returns the keys in insertion order.
func (p *Properties) Keys() []string {
	return slices.Clone(p.keys)
}

// Len returns the number of properties.
func (p *Properties) Len() int {
	return len(p.keys)
}
