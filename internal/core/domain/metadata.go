package domain

import "strings"

// NotSpecified is the sentinel the analysis service uses for unknown fields.
const NotSpecified = "Not specified"

// MetadataKind distinguishes the shapes a metadata value can take.
type MetadataKind int

const (
	// MetadataAbsent is a null or missing value.
	MetadataAbsent MetadataKind = iota
	// MetadataText is a single string.
	MetadataText
	// MetadataList is a sequence of strings.
	MetadataList
)

// MetadataValue is one metadata value: text, a list of text, or absent.
type MetadataValue struct {
	Kind MetadataKind
	Text string
	List []string
}

// TextValue builds a text metadata value.
func TextValue(s string) MetadataValue {
	return MetadataValue{Kind: MetadataText, Text: s}
}

// ListValue builds a list metadata value.
func ListValue(items ...string) MetadataValue {
	return MetadataValue{Kind: MetadataList, List: items}
}

// AbsentValue builds an absent metadata value.
func AbsentValue() MetadataValue {
	return MetadataValue{Kind: MetadataAbsent}
}

// IsDisplayable reports whether the value should be shown.
// Empty, absent and "Not specified" values are hidden but stay in the model.
// Numeric zero and false arrive as "0" and "false" and are shown.
func (v MetadataValue) IsDisplayable() bool {
	switch v.Kind {
	case MetadataText:
		return v.Text != "" && v.Text != NotSpecified
	case MetadataList:
		return len(v.List) > 0
	default:
		return false
	}
}

// String renders the value; lists are comma separated.
func (v MetadataValue) String() string {
	switch v.Kind {
	case MetadataText:
		return v.Text
	case MetadataList:
		return strings.Join(v.List, ", ")
	default:
		return ""
	}
}

// MetadataEntry is a key and its value.
type MetadataEntry struct {
	Key   string
	Value MetadataValue
}

// Metadata is an ordered set of entries, kept in the order the service sent them.
type Metadata []MetadataEntry

// Get returns the value for key.
func (m Metadata) Get(key string) (MetadataValue, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return MetadataValue{}, false
}

// Keys returns the keys in order.
func (m Metadata) Keys() []string {
	keys := make([]string, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}
	return keys
}

// Displayable returns only the entries that should be shown.
func (m Metadata) Displayable() Metadata {
	out := make(Metadata, 0, len(m))
	for _, e := range m {
		if e.Value.IsDisplayable() {
			out = append(out, e)
		}
	}
	return out
}
