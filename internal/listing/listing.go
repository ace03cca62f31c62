// Package listing prints selected files, either as a plain path list or
// with their tags.
package listing

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/flaq/internal/tags"
)

// Entry is one file of a detailed listing.
type Entry struct {
	Path     string
	Size     int64
	Tags     map[string][]string
	Pictures []tags.Picture
}

// FromFile builds the listing entry of an opened file.
func FromFile(f *tags.File) Entry {
	return Entry{
		Path:     f.Path,
		Size:     f.Size,
		Tags:     f.Comments.Map(),
		Pictures: f.Pictures(),
	}
}

// Printer writes listings to one destination.
type Printer struct {
	w      io.Writer
	styles styles
}

type styles struct {
	header lipgloss.Style
	path   lipgloss.Style
	size   lipgloss.Style
	field  lipgloss.Style
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer, mode ColorMode) *Printer {
	r := NewRenderer(w, mode)
	return &Printer{
		w: w,
		styles: styles{
			header: r.NewStyle().Bold(true),
			path:   r.NewStyle().Foreground(lipgloss.Color("2")),
			size:   r.NewStyle().Faint(true),
			field:  r.NewStyle().Foreground(lipgloss.Color("4")),
		},
	}
}

// Paths prints one path per line, ready for piping into other programs.
func (p *Printer) Paths(paths []string) error {
	for _, path := range paths {
		if _, err := fmt.Fprintln(p.w, path); err != nil {
			return err
		}
	}
	return nil
}

// Detailed prints every file with its tags and embedded pictures.
func (p *Printer) Detailed(entries []Entry) error {
	var b strings.Builder
	for _, e := range entries {
		p.writeEntry(&b, e)
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

const indent = "      "

func (p *Printer) writeEntry(b *strings.Builder, e Entry) {
	fmt.Fprintf(b, "%s %s %s\n",
		p.styles.header.Render(fmt.Sprintf("%-6s", "File:")),
		p.styles.path.Render(e.Path),
		p.styles.size.Render("("+humanize.Bytes(uint64(max(e.Size, 0)))+")"),
	)

	b.WriteString(p.styles.header.Render("Tags:") + "\n")
	for _, name := range sortedKeys(e.Tags) {
		fmt.Fprintf(b, "%s%s:%s\n", indent, p.styles.field.Render(name), quoteList(e.Tags[name]))
	}

	if len(e.Pictures) == 0 {
		return
	}
	b.WriteString(p.styles.header.Render("Pictures:") + "\n")
	for _, pic := range e.Pictures {
		fmt.Fprintf(b, "%s%s: %s", indent, p.styles.field.Render(pic.Kind), pic.MIME)
		if pic.Width > 0 && pic.Height > 0 {
			fmt.Fprintf(b, " %dx%d", pic.Width, pic.Height)
		}
		fmt.Fprintf(b, " (%s)", humanize.Bytes(uint64(pic.Size)))
		if pic.Description != "" {
			fmt.Fprintf(b, " %q", pic.Description)
		}
		b.WriteByte('\n')
	}
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
