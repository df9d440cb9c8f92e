// Package command provides the argument patterns and the command registry
// shared by every catbot front end.
package command

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DescriptionParam is the name the leading free text of a slash argument is
// stored under.
const DescriptionParam = "description"

// NamedParameterMap is an ordered name to value mapping produced by parsing a
// slash argument. It is read-only once built.
type NamedParameterMap struct {
	keys   []string
	values map[string]string
}

// NewNamedParameterMap builds a map from name/value pairs given as
// consecutive strings. A repeated name keeps its first position and takes the
// last value. A trailing name without a value maps to the empty string.
func NewNamedParameterMap(pairs ...string) *NamedParameterMap {
	m := &NamedParameterMap{values: make(map[string]string, len(pairs)/2)}
	for i := 0; i < len(pairs); i += 2 {
		value := ""
		if i+1 < len(pairs) {
			value = pairs[i+1]
		}
		m.set(pairs[i], value)
	}
	return m
}

func (m *NamedParameterMap) set(name, value string) {
	if _, exists := m.values[name]; !exists {
		m.keys = append(m.keys, name)
	}
	m.values[name] = value
}

// Keys returns the parameter names in the order they were first seen.
func (m *NamedParameterMap) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Get returns the value for name and whether the name is present.
func (m *NamedParameterMap) Get(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	value, ok := m.values[name]
	return value, ok
}

// Len returns the number of parameters.
func (m *NamedParameterMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// String renders the map back in slash form, for logs.
func (m *NamedParameterMap) String() string {
	var b strings.Builder
	for i, key := range m.Keys() {
		value, _ := m.Get(key)
		if i > 0 {
			b.WriteByte(' ')
		}
		if key != DescriptionParam || i != 0 {
			b.WriteString("/" + key)
			if value != "" {
				b.WriteByte(' ')
			}
		}
		b.WriteString(value)
	}
	return strings.TrimSpace(b.String())
}

// paramToken is one "/name" occurrence inside a slash argument.
type paramToken struct {
	name       string
	start, end int // byte range of "/name" in the source string
}

// ParseSlash parses "leading text /name value /other value" into a
// NamedParameterMap. The leading text is stored under DescriptionParam and is
// always present. A "/" only opens a parameter when it starts the string or
// follows whitespace, and the name is followed by whitespace or the end of
// the string, so values such as "2024/01/01" or "and/or" stay intact. A
// typed "/description" is text, never a parameter.
func ParseSlash(raw string) *NamedParameterMap {
	tokens := scanParamTokens(raw)
	m := NewNamedParameterMap()

	leadingEnd := len(raw)
	if len(tokens) > 0 {
		leadingEnd = tokens[0].start
	}
	m.set(DescriptionParam, strings.TrimSpace(raw[:leadingEnd]))

	for i, tok := range tokens {
		valueEnd := len(raw)
		if i+1 < len(tokens) {
			valueEnd = tokens[i+1].start
		}
		m.set(tok.name, strings.TrimSpace(raw[tok.end:valueEnd]))
	}
	return m
}

func scanParamTokens(raw string) []paramToken {
	var tokens []paramToken
	for i := 0; i < len(raw); i++ {
		if raw[i] != '/' {
			continue
		}
		if i > 0 {
			if prev, _ := utf8.DecodeLastRuneInString(raw[:i]); !unicode.IsSpace(prev) {
				continue
			}
		}
		j := i + 1
		for j < len(raw) && isNameByte(raw[j]) {
			j++
		}
		if j == i+1 {
			continue
		}
		if j < len(raw) {
			if next, _ := utf8.DecodeRuneInString(raw[j:]); !unicode.IsSpace(next) {
				continue
			}
		}
		if raw[i+1:j] == DescriptionParam {
			continue
		}
		tokens = append(tokens, paramToken{name: raw[i+1 : j], start: i, end: j})
		i = j - 1
	}
	return tokens
}

func isNameByte(b byte) bool {
	return b == '_' || b == '-' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
