// Package matcher assigns learning-objective codes by approximate text
// matching against a mapping of normalized reference descriptions.
package matcher

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Threshold is the score a match has to exceed to be accepted.
const Threshold = 80

// Mapping is an insertion-ordered map from normalized description to
// code. Re-adding a key replaces its code but keeps its original position.
type Mapping struct {
	keys  []string
	codes map[string]string
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{codes: make(map[string]string)}
}

// Add stores code under NormalizeKey(description).
func (m *Mapping) Add(description, code string) {
	m.put(NormalizeKey(description), code)
}

func (m *Mapping) put(key, code string) {
	if _, ok := m.codes[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.codes[key] = code
}

// Len returns the number of distinct keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Code returns the code stored under an already normalized key.
func (m *Mapping) Code(key string) (string, bool) {
	c, ok := m.codes[key]
	return c, ok
}

// Result describes the best candidate found for a text.
type Result struct {
	Key     string
	Code    string
	Score   int
	Matched bool
}

// Best scores text against every key of m and returns the highest
// scoring one. Equal scores keep the earliest key. Matched is set only
// when the score is above Threshold.
func Best(text string, m *Mapping) Result {
	var r Result
	if m.Len() == 0 {
		return r
	}

	query := Normalize(text)
	r.Score = -1
	for _, key := range m.keys {
		score := fuzzy.WRatio(query, key)
		if score > r.Score {
			r.Key, r.Score = key, score
		}
	}

	r.Code = m.codes[r.Key]
	r.Matched = r.Score > Threshold
	return r
}

// Match returns the code for text, or false when nothing in m is close
// enough.
func Match(text string, m *Mapping) (string, bool) {
	r := Best(text, m)
	if !r.Matched {
		return "", false
	}
	return r.Code, true
}
