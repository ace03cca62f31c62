package edit

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/llehouerou/flaq/internal/tags"
)

// ErrNonStandardField is returned by Validate for edits to fields outside
// the standard catalogue when AllowOther is not set.
var ErrNonStandardField = errors.New("non-standard field")

// Plan is the set of edits applied to every selected file.
type Plan struct {
	// Set replaces the values of each field, or appends to them when
	// Append is true. Repeated fields are merged in order.
	Set    []Assignment
	Append bool
	// Delete removes every value of each field before Set runs.
	Delete []tags.Field
	// StripOther removes every non-standard field after Set.
	StripOther bool
	// Clean removes repeated values within each field, after all other edits.
	Clean bool
	// AllowOther permits Set and Delete on non-standard fields.
	AllowOther bool
}

// Empty reports whether applying the plan would never change anything.
func (p Plan) Empty() bool {
	return len(p.Set) == 0 && len(p.Delete) == 0 && !p.StripOther && !p.Clean
}

// Validate checks the plan before it touches any file.
func (p Plan) Validate() error {
	if p.AllowOther {
		return nil
	}
	for _, a := range p.Set {
		if !a.Field.IsStandard() {
			return fmt.Errorf("%w %s (allow it with --other)", ErrNonStandardField, a.Field.Name())
		}
	}
	for _, f := range p.Delete {
		if !f.IsStandard() {
			return fmt.Errorf("%w %s (allow it with --other)", ErrNonStandardField, f.Name())
		}
	}
	return nil
}

// Apply edits c in place: delete, then set or append, then strip
// non-standard fields, then clean duplicates. It reports whether the
// comments changed.
func (p Plan) Apply(c *tags.Comments) bool {
	before := c.Map()

	for _, f := range p.Delete {
		c.Delete(f)
	}

	for _, a := range p.merged() {
		if p.Append {
			c.Append(a.Field, a.Values)
		} else {
			c.Set(a.Field, a.Values)
		}
	}

	if p.StripOther {
		c.StripNonStandard()
	}
	if p.Clean {
		c.Dedupe()
	}

	return !maps.EqualFunc(before, c.Map(), slices.Equal[[]string])
}

// merged folds repeated assignments to one field into a single one,
// keeping first-appearance order.
func (p Plan) merged() []Assignment {
	var out []Assignment
	index := make(map[tags.Field]int, len(p.Set))
	for _, a := range p.Set {
		if i, ok := index[a.Field]; ok {
			out[i].Values = append(out[i].Values, a.Values...)
			continue
		}
		index[a.Field] = len(out)
		out = append(out, Assignment{Field: a.Field, Values: slices.Clone(a.Values)})
	}
	return out
}
