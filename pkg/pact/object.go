// Package pact builds signed Pact exec commands and the wire types for
// the Pact REST API's /send and /listen endpoints.
package pact

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Object is a JSON object that preserves key insertion order through
// marshal/unmarshal round trips. It backs the exec "data" payload, where
// encoding/json's map type would reorder keys.
type Object struct {
	keys   []string
	values map[string]json.RawMessage
}

// NewObject creates an empty ordered object.
func NewObject() *Object {
	return &Object{values: make(map[string]json.RawMessage)}
}

// Set marshals value and stores it under key. Setting an existing key
// replaces its value without changing its position.
func (o *Object) Set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value for %q: %w", key, err)
	}
	o.SetRaw(key, raw)
	return nil
}

// SetRaw stores a pre-encoded JSON value under key.
func (o *Object) SetRaw(key string, raw json.RawMessage) {
	if o.values == nil {
		o.values = make(map[string]json.RawMessage)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = raw
}

// Get returns the raw JSON value stored under key.
func (o *Object) Get(key string) (json.RawMessage, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of entries.
func (o *Object) Len() int {
	return len(o.keys)
}

// MarshalJSON encodes the object with keys in insertion order and each
// value compacted.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil || len(o.keys) == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		if err := json.Compact(&buf, o.values[k]); err != nil {
			return nil, fmt.Errorf("compact value for %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, recording keys in the order they
// appear in the input.
func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode object: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("decode object: expected '{', got %v", tok)
	}

	o.keys = nil
	o.values = make(map[string]json.RawMessage)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode object key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("decode object key: got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decode value for %q: %w", key, err)
		}
		o.SetRaw(key, raw)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode object: %w", err)
	}
	return nil
}
