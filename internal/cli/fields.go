package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/querytools/wiqlint/internal/wiql"
)

// fieldRow is one field in the fields command output.
type fieldRow struct {
	Name       string `json:"name"`
	Reference  string `json:"reference"`
	Type       string `json:"type"`
	LiteralOps string `json:"literalOps"`
	FieldOps   string `json:"fieldOps,omitempty"`
	GroupOps   string `json:"groupOps,omitempty"`
}

// NewFieldsCommand creates the fields command: list the known fields with
// their types and allowed operators.
func NewFieldsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List known fields and their allowed operators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := &Formatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}

			md, err := loadMetadata(cmd.Context(), opts, f)
			if err != nil {
				return err
			}

			rows := make([]fieldRow, 0, len(md.Fields))
			for _, d := range md.Fields {
				info, ok := md.Lookup.Get(d.ReferenceName)
				if !ok {
					continue
				}
				rows = append(rows, fieldRow{
					Name:       d.Name,
					Reference:  d.ReferenceName,
					Type:       info.Type.String(),
					LiteralOps: wiql.JoinOperators(info.LiteralOps),
					FieldOps:   wiql.JoinOperators(info.FieldOps),
					GroupOps:   wiql.JoinOperators(info.GroupOps),
				})
			}

			if f.Format == "json" {
				return f.JSON(rows)
			}

			w := tabwriter.NewWriter(f.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tREFERENCE\tTYPE\tOPERATORS")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Name, r.Reference, r.Type, r.LiteralOps)
			}
			return w.Flush()
		},
	}
}
