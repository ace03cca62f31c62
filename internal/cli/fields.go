package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llehouerou/flaq/internal/listing"
	"github.com/llehouerou/flaq/internal/tags"
)

func newFieldsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the standard tag fields usable in queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printFields(cmd.OutOrStdout(), opts.colorMode())
		},
	}
}

func printFields(w io.Writer, mode listing.ColorMode) error {
	name := listing.NewRenderer(w, mode).NewStyle().Bold(true)

	var b strings.Builder
	for _, f := range tags.StandardFields() {
		fmt.Fprintf(&b, "%s %s\n", name.Render(fmt.Sprintf("%-12s", strings.ToLower(f.Name()))), f.Description())
	}
	_, err := io.WriteString(w, b.String())
	return err
}
