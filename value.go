package mxyaml

import (
	"bytes"
	"encoding/json"
)

// Object is an insertion-ordered string-keyed map, the mapping shape of the
// generic value space (nil, bool, int64, float64, string, []any, *Object).
// Plain Go maps drop ordering, which both projections are required to keep.
type Object struct {
	fields []Field
	index  map[string]int
}

// Field is a single key/value pair of an Object.
type Field struct {
	Key   string
	Value any
}

func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

func (o *Object) Len() int { return len(o.fields) }

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.fields[i].Value, true
}

// Set stores value under key. An existing key keeps its original position
// and only its value changes.
func (o *Object) Set(key string, value any) {
	if i, ok := o.index[key]; ok {
		o.fields[i].Value = value
		return
	}
	o.index[key] = len(o.fields)
	o.fields = append(o.fields, Field{Key: key, Value: value})
}

// Prepend stores value under key at the front of the Object, removing any
// existing occurrence first.
func (o *Object) Prepend(key string, value any) {
	if i, ok := o.index[key]; ok {
		o.fields = append(o.fields[:i], o.fields[i+1:]...)
	}
	o.fields = append([]Field{{Key: key, Value: value}}, o.fields...)
	for i, f := range o.fields {
		o.index[f.Key] = i
	}
}

// Fields returns the pairs in insertion order. The slice is shared; callers
// must not mutate it.
func (o *Object) Fields() []Field { return o.fields }

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.fields))
	for i, f := range o.fields {
		keys[i] = f.Key
	}
	return keys
}

// MarshalJSON writes the fields in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
