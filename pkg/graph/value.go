package graph

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ValueKind discriminates the metadata value union.
type ValueKind int

const (
	KindString ValueKind = iota
	KindNumber
	KindBool
	KindStringList
	KindMapping
)

// Value is a tagged union over the scalar and nested shapes a metadata entry
// may take. Presentation code switches on Kind instead of runtime type
// inspection, so every shape is handled explicitly.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
	list []string
	m    map[string]Value
}

// String wraps a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool wraps a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Strings wraps a list of strings (e.g. inbound rule summaries).
func Strings(list []string) Value { return Value{kind: KindStringList, list: list} }

// Mapping wraps a nested key/value mapping.
func Mapping(m map[string]Value) Value { return Value{kind: KindMapping, m: m} }

// Kind returns the discriminator.
func (v Value) Kind() ValueKind { return v.kind }

// Str returns the string payload. Valid only for KindString.
func (v Value) Str() string { return v.str }

// Num returns the numeric payload. Valid only for KindNumber.
func (v Value) Num() float64 { return v.num }

// Boolean returns the bool payload. Valid only for KindBool.
func (v Value) Boolean() bool { return v.b }

// List returns the string-list payload. Valid only for KindStringList.
func (v Value) List() []string { return v.list }

// Map returns the mapping payload. Valid only for KindMapping.
func (v Value) Map() map[string]Value { return v.m }

// IsEmpty reports whether the value should be omitted from detail
// projections: empty strings, empty lists, and empty mappings carry no
// information. Numbers and booleans are never empty.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindString:
		return v.str == ""
	case KindStringList:
		return len(v.list) == 0
	case KindMapping:
		return len(v.m) == 0
	default:
		return false
	}
}

// Display renders the value as text for detail panels. Mappings are truncated
// to maxLen runes so nested structures never flood the panel; pass 0 for no
// truncation. Booleans render as yes/no.
func (v Value) Display(maxLen int) string {
	var s string
	switch v.kind {
	case KindString:
		s = v.str
	case KindNumber:
		s = strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		if v.b {
			return "yes"
		}
		return "no"
	case KindStringList:
		s = strings.Join(v.list, ", ")
	case KindMapping:
		keys := make([]string, 0, len(v.m))
		for k := range v.m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s: %s", k, v.m[k].Display(0))
		}
		s = "{" + strings.Join(parts, ", ") + "}"
	}
	if maxLen > 0 {
		if r := []rune(s); len(r) > maxLen {
			return string(r[:maxLen]) + "…"
		}
	}
	return s
}

// MarshalJSON emits the underlying value without the kind wrapper.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindStringList:
		if v.list == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.list)
	case KindMapping:
		if v.m == nil {
			return json.Marshal(map[string]Value{})
		}
		return json.Marshal(v.m)
	}
	return json.Marshal(nil)
}

// UnmarshalJSON infers the kind from the JSON shape. Null decodes to an empty
// string value, which detail projections then exclude. Mixed-type arrays are
// stringified element-wise.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}

// FromAny converts a decoded JSON value into the tagged union.
func FromAny(raw any) Value {
	switch t := raw.(type) {
	case nil:
		return String("")
	case string:
		return String(t)
	case float64:
		return Number(t)
	case bool:
		return Bool(t)
	case []any:
		list := make([]string, len(t))
		for i, e := range t {
			if s, ok := e.(string); ok {
				list[i] = s
			} else {
				list[i] = fmt.Sprintf("%v", e)
			}
		}
		return Strings(list)
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, e := range t {
			m[k] = FromAny(e)
		}
		return Mapping(m)
	default:
		return String(fmt.Sprintf("%v", t))
	}
}

// Metadata is the open key/value mapping attached to a node.
type Metadata map[string]Value
