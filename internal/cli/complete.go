package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/querytools/wiqlint/internal/complete"
	"github.com/querytools/wiqlint/internal/wiql"
)

// completeReport is the JSON payload of the complete command.
type completeReport struct {
	Offset      int                   `json:"offset"`
	Suggestions []complete.Suggestion `json:"suggestions"`
}

// NewCompleteCommand creates the complete command: variable completion
// suggestions for a cursor offset into a query.
func NewCompleteCommand(opts *RootOptions) *cobra.Command {
	offset := -1

	cmd := &cobra.Command{
		Use:   "complete <query-file>",
		Short: "Suggest variables at a cursor offset",
		Long: `Derives the parse context at the given byte offset and lists the
predefined variables that are valid there, filtered to the compared field's
type inside a condition. With no --offset the end of the query is used.
Use "-" to read the query from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := &Formatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}

			source, err := readQuery(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			source = strings.TrimRight(source, "\n")

			cursor := offset
			if cursor < 0 {
				cursor = len(source)
			}
			if cursor > len(source) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("offset %d is past the end of the query (%d bytes)", cursor, len(source)))
			}

			md, err := loadMetadata(cmd.Context(), opts, f)
			if err != nil {
				return err
			}

			parse := wiql.Parse(source)
			ctx := wiql.ContextAt(parse, cursor)

			suggestions, ok := complete.CurrentVariableCompletions(md.Variables, md.Lookup, ctx, cursor)
			if !ok {
				complete.IncludeIfExpected(md.Variables, md.Lookup, ctx, &suggestions)
			}

			if f.Format == "json" {
				return f.JSON(completeReport{Offset: cursor, Suggestions: suggestions})
			}
			if len(suggestions) == 0 {
				fmt.Fprintln(f.Writer, "no suggestions")
				return nil
			}
			for _, s := range suggestions {
				fmt.Fprintf(f.Writer, "%s\t%s\n", s.Label, s.InsertText)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", -1, "byte offset of the cursor (default: end of query)")
	return cmd
}
