package bot

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Result is the outcome of one dispatched delivery.
type Result struct {
	Event   string  `json:"event"`
	Action  *string `json:"action"`
	Results Results `json:"results"`

	matched bool
}

// Matched reports whether at least one handler was resolved.
func (r Result) Matched() bool {
	return r.matched
}

// StatusCode is 200 when any handler matched and 404 otherwise. Handler
// return values do not affect it.
func (r Result) StatusCode() int {
	if r.matched {
		return http.StatusOK
	}
	return http.StatusNotFound
}

// Results maps handler names to return values in execution order.
type Results struct {
	entries []entry
	index   map[string]int
}

type entry struct {
	name  string
	value any
}

// Set records value for name. A repeated name keeps its original position.
func (r *Results) Set(name string, value any) {
	if r.index == nil {
		r.index = map[string]int{}
	}
	if i, ok := r.index[name]; ok {
		r.entries[i].value = value
		return
	}
	r.index[name] = len(r.entries)
	r.entries = append(r.entries, entry{name: name, value: value})
}

// Get returns the value recorded for name.
func (r Results) Get(name string) (any, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.entries[i].value, true
}

// Names returns handler names in order.
func (r Results) Names() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.name
	}
	return out
}

func (r Results) Len() int {
	return len(r.entries)
}

// MarshalJSON writes the results as a JSON object preserving order.
func (r Results) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
