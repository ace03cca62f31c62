package tags

import (
	"fmt"
	"strings"

	"github.com/go-flac/flacvorbis"
)

// FieldID identifies one of the standard Vorbis comment fields.
// Other marks any field outside the standard catalogue.
type FieldID int

const (
	Other FieldID = iota
	Title
	Version
	Album
	TrackNumber
	Artist
	Performer
	Copyright
	License
	Organization
	Description
	Genre
	Date
	Location
	Contact
	ISRC
)

// Source: https://www.xiph.org/vorbis/doc/v-comment.html
var standardFields = [...]struct {
	name string
	info string
}{
	Title:        {flacvorbis.FIELD_TITLE, "Track/Work name"},
	Version:      {flacvorbis.FIELD_VERSION, "Differentiates multiple versions of the same track title (e.g. remix info)"},
	Album:        {flacvorbis.FIELD_ALBUM, "The collection name to which this track belongs"},
	TrackNumber:  {flacvorbis.FIELD_TRACKNUMBER, "The track number of this piece within its collection"},
	Artist:       {flacvorbis.FIELD_ARTIST, "The artist generally considered responsible for the work"},
	Performer:    {flacvorbis.FIELD_PERFORMER, "The artist(s) who performed the work"},
	Copyright:    {flacvorbis.FIELD_COPYRIGHT, "Copyright attribution"},
	License:      {flacvorbis.FIELD_LICENSE, "License information"},
	Organization: {flacvorbis.FIELD_ORGANIZATION, "Name of the organization producing the track (record label)"},
	Description:  {flacvorbis.FIELD_DESCRIPTION, "A short text description of the contents"},
	Genre:        {flacvorbis.FIELD_GENRE, "A short text indication of music genre"},
	Date:         {flacvorbis.FIELD_DATE, "Date the track was recorded"},
	Location:     {flacvorbis.FIELD_LOCATION, "Location where track was recorded"},
	Contact:      {flacvorbis.FIELD_CONTACT, "Contact information for the creators or distributors"},
	ISRC:         {flacvorbis.FIELD_ISRC, "ISRC number for the track"},
}

var fieldsByName = func() map[string]FieldID {
	m := make(map[string]FieldID, len(standardFields))
	for id := Title; id <= ISRC; id++ {
		m[standardFields[id].name] = id
	}
	return m
}()

// Field is a tag field name in canonical (upper-case) form.
// Fields are comparable: two fields are equal iff their names are equal.
type Field struct {
	id   FieldID
	name string
}

// NameError reports a field name that can never be stored.
type NameError struct {
	Name string
	Char rune
}

func (e *NameError) Error() string {
	if e.Char == 0 {
		return "empty tag field name"
	}
	return fmt.Sprintf("tag field %q contains illegal character %q", e.Name, e.Char)
}

// ParseField normalizes name to upper case and maps it onto the standard
// catalogue. Names outside the catalogue yield an Other field.
// ':' is reserved by the query and assignment grammars and '=' by the
// Vorbis comment format, so names containing either are rejected.
func ParseField(name string) (Field, error) {
	upper := strings.ToUpper(name)
	if upper == "" {
		return Field{}, &NameError{}
	}
	if i := strings.IndexAny(upper, ":="); i >= 0 {
		return Field{}, &NameError{Name: upper, Char: rune(upper[i])}
	}
	if id, ok := fieldsByName[upper]; ok {
		return Field{id: id, name: upper}, nil
	}
	return Field{id: Other, name: upper}, nil
}

// MustField is ParseField for names known at compile time.
func MustField(name string) Field {
	f, err := ParseField(name)
	if err != nil {
		panic(err)
	}
	return f
}

// StandardField returns the field for a standard ID.
func StandardField(id FieldID) Field {
	if id <= Other || id > ISRC {
		panic(fmt.Sprintf("tags: %d is not a standard field", id))
	}
	return Field{id: id, name: standardFields[id].name}
}

// ID returns the catalogue entry of the field, Other if it has none.
func (f Field) ID() FieldID { return f.id }

// Name returns the canonical upper-case name.
func (f Field) Name() string { return f.name }

func (f Field) String() string { return f.name }

// IsStandard reports whether f is one of the standard Vorbis fields.
func (f Field) IsStandard() bool { return f.id != Other }

// Description returns the catalogue description, or "" for Other fields.
func (f Field) Description() string {
	if !f.IsStandard() {
		return ""
	}
	return standardFields[f.id].info
}

// StandardFields lists the standard fields in catalogue order.
func StandardFields() []Field {
	fields := make([]Field, 0, len(standardFields)-1)
	for id := Title; id <= ISRC; id++ {
		fields = append(fields, StandardField(id))
	}
	return fields
}
