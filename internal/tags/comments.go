package tags

import (
	"slices"
	"strings"
)

// Comments is the decoded Vorbis comment block of one file: an ordered
// mapping from canonical field name to its list of values.
// Field order is the order in which fields first appeared in the file.
type Comments struct {
	vendor string
	order  []string
	values map[string][]string
}

// NewComments returns an empty comment set.
func NewComments(vendor string) *Comments {
	return &Comments{
		vendor: vendor,
		values: make(map[string][]string),
	}
}

// Vendor returns the encoder vendor string stored with the comments.
func (c *Comments) Vendor() string { return c.vendor }

// Get returns the values stored under the canonical name.
// The second result is false if the field is absent.
func (c *Comments) Get(name string) ([]string, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Values returns the values of a field, nil if it is absent.
func (c *Comments) Values(f Field) []string {
	return c.values[f.Name()]
}

// Has reports whether the field has at least one value.
func (c *Comments) Has(f Field) bool {
	return len(c.values[f.Name()]) > 0
}

// Set replaces all values of f.
// Setting an empty list removes the field.
func (c *Comments) Set(f Field, values []string) {
	if len(values) == 0 {
		c.Delete(f)
		return
	}
	name := f.Name()
	if _, ok := c.values[name]; !ok {
		c.order = append(c.order, name)
	}
	c.values[name] = slices.Clone(values)
}

// Append adds values after the existing values of f.
func (c *Comments) Append(f Field, values []string) {
	if len(values) == 0 {
		return
	}
	c.Set(f, append(slices.Clone(c.values[f.Name()]), values...))
}

// Delete removes every value of f.
func (c *Comments) Delete(f Field) {
	c.remove(f.Name())
}

func (c *Comments) remove(name string) {
	if _, ok := c.values[name]; !ok {
		return
	}
	delete(c.values, name)
	c.order = slices.DeleteFunc(c.order, func(n string) bool { return n == name })
}

// Dedupe drops repeated values within each field, keeping the first
// occurrence of each value.
func (c *Comments) Dedupe() {
	for name, values := range c.values {
		seen := make(map[string]struct{}, len(values))
		kept := values[:0:0]
		for _, v := range values {
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			kept = append(kept, v)
		}
		c.values[name] = kept
	}
}

// StripNonStandard removes every field outside the standard catalogue and
// returns the names it removed.
func (c *Comments) StripNonStandard() []string {
	var removed []string
	for _, name := range slices.Clone(c.order) {
		if _, standard := fieldsByName[name]; standard {
			continue
		}
		c.remove(name)
		removed = append(removed, name)
	}
	return removed
}

// Fields returns the stored field names in sorted order.
func (c *Comments) Fields() []string {
	names := slices.Clone(c.order)
	slices.Sort(names)
	return names
}

// Len returns the number of fields.
func (c *Comments) Len() int { return len(c.order) }

// Map returns a copy of the comments as a plain map.
func (c *Comments) Map() map[string][]string {
	m := make(map[string][]string, len(c.values))
	for name, values := range c.values {
		m[name] = slices.Clone(values)
	}
	return m
}

// add appends one raw KEY=value pair, normalizing the key.
func (c *Comments) add(key, value string) {
	name := strings.ToUpper(key)
	if _, ok := c.values[name]; !ok {
		c.order = append(c.order, name)
	}
	c.values[name] = append(c.values[name], value)
}

// each visits every field in stored order.
func (c *Comments) each(fn func(name string, values []string)) {
	for _, name := range c.order {
		fn(name, c.values[name])
	}
}
