package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/querytools/wiqlint/internal/semantic"
	"github.com/querytools/wiqlint/internal/wiql"
)

// checkReport is the JSON payload of the check command.
type checkReport struct {
	Query       string                `json:"query"`
	SyntaxError string                `json:"syntaxError,omitempty"`
	Diagnostics []semantic.Diagnostic `json:"diagnostics"`
}

// NewCheckCommand creates the check command: parse a query, validate it
// against the field metadata, and report positioned diagnostics.
func NewCheckCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <query-file>",
		Short: "Validate a work-item query",
		Long: `Parses the query and checks every field comparison against the
field metadata: operator compatibility, right-hand-side shape, and variable
types. Use "-" to read the query from stdin.`,
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

			md, err := loadMetadata(cmd.Context(), opts, f)
			if err != nil {
				return err
			}

			parse := wiql.Parse(source)
			if len(parse.Errors) > 0 {
				return reportSyntaxError(f, source, parse.Errors[0])
			}

			diags := semantic.Check(parse, md.Lookup, md.Variables)
			report := checkReport{Query: source, Diagnostics: diags}

			if f.Format == "json" {
				if len(diags) > 0 {
					if err := f.JSONError("query has diagnostics", report); err != nil {
						return err
					}
					return NewExitError(ExitDiagnostics,
						fmt.Sprintf("%d diagnostic(s)", len(diags)))
				}
				return f.JSON(report)
			}

			if len(diags) == 0 {
				fmt.Fprintln(f.Writer, "ok: no diagnostics")
				return nil
			}
			for _, d := range diags {
				fmt.Fprintln(f.Writer, d.String())
			}
			return NewExitError(ExitDiagnostics,
				fmt.Sprintf("%d diagnostic(s)", len(diags)))
		},
	}
}

func reportSyntaxError(f *Formatter, source string, perr wiql.ParseError) error {
	if f.Format == "json" {
		report := checkReport{Query: source, SyntaxError: perr.Message}
		if err := f.JSONError("syntax error", report); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(f.Writer, "%d-%d: syntax error: %s\n",
			perr.Span.Start, perr.Span.End, perr.Message)
	}
	return NewExitError(ExitDiagnostics, "syntax error")
}
