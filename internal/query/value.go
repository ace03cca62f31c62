package query

import (
	"strconv"
	"strings"

	"github.com/llehouerou/flaq/internal/tags"
)

// Kind names the type of a Value.
type Kind int

const (
	KindBool Kind = iota
	KindDate
	KindInteger
	KindStrings
	KindTagRef
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "boolean"
	case KindDate:
		return "date"
	case KindInteger:
		return "integer"
	case KindStrings:
		return "string"
	case KindTagRef:
		return "tag"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a typed value produced by a literal or by evaluation.
// The set of implementations is closed: Bool, Date, Integer, Strings and
// TagRef. TagRef only appears in unevaluated trees.
type Value interface {
	Kind() Kind
	String() string
	isValue()
}

// Bool is a boolean value.
type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (Bool) isValue()   {}

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// Integer is an unsigned 32-bit integer value.
type Integer uint32

func (Integer) Kind() Kind { return KindInteger }
func (Integer) isValue()   {}

func (i Integer) String() string { return strconv.FormatUint(uint64(i), 10) }

// Strings is an ordered list of text values. Tags may carry several values
// (e.g. multiple artists), so string values are always lists.
type Strings []string

func (Strings) Kind() Kind { return KindStrings }
func (Strings) isValue()   {}

// String renders the values as query literals. String literals carry no
// escapes, so values are quoted verbatim.
func (s Strings) String() string {
	if len(s) == 1 {
		return `"` + s[0] + `"`
	}
	quoted := make([]string, len(s))
	for i, v := range s {
		quoted[i] = `"` + v + `"`
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// TagRef is an unresolved reference to a tag field of the file being
// evaluated.
type TagRef struct {
	Field tags.Field
}

func (TagRef) Kind() Kind { return KindTagRef }
func (TagRef) isValue()   {}

func (r TagRef) String() string { return strings.ToLower(r.Field.Name()) }
