package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/querytools/wiqlint/internal/catalog"
	"github.com/querytools/wiqlint/internal/config"
	"github.com/querytools/wiqlint/internal/fields"
	"github.com/querytools/wiqlint/internal/metacache"
	"github.com/querytools/wiqlint/internal/vartab"
)

// metadata is the resolved analysis environment: field descriptors, the
// lookup built from them, and the variable table.
type metadata struct {
	Fields    []fields.FieldDescriptor
	Lookup    fields.Lookup
	Variables *vartab.Table
}

// loadMetadata resolves field and variable metadata from the global flags.
//
// Precedence: a --db catalog supplies fields through the metadata cache; a
// --config directory supplies variables and, when no catalog is given, may
// also supply fields. With neither flag the built-in field set and default
// variable table apply.
func loadMetadata(ctx context.Context, opts *RootOptions, f *Formatter) (*metadata, error) {
	md := &metadata{Variables: vartab.Default()}

	if opts.Config != "" {
		cfg, err := config.LoadDir(opts.Config)
		if err != nil {
			return nil, &ExitError{Code: ExitCommandError, Message: "loading config", Err: err}
		}
		md.Variables = cfg.Variables
		md.Fields = cfg.Fields
		f.Verbosef("loaded config from %s (%d fields, %d variables)",
			opts.Config, len(cfg.Fields), cfg.Variables.Len())
	}

	if opts.DBPath != "" {
		cat, err := catalog.Open(opts.DBPath)
		if err != nil {
			return nil, &ExitError{Code: ExitCommandError, Message: "opening catalog", Err: err}
		}
		defer cat.Close()

		cache := metacache.New(cat.FetchFields)
		snap, err := cache.GetOrFetch(ctx)
		if err != nil {
			return nil, &ExitError{Code: ExitCommandError, Message: "fetching fields", Err: err}
		}
		md.Fields = snap.Fields
		md.Lookup = snap.Lookup
		f.Verbosef("loaded %d fields from catalog %s (snapshot %s)",
			len(snap.Fields), opts.DBPath, snap.Version)
		return md, nil
	}

	if len(md.Fields) == 0 {
		md.Fields = fields.Builtin()
	}
	md.Lookup = fields.BuildLookup(md.Fields)
	return md, nil
}

// readQuery reads the query source from a file argument, or from stdin when
// the argument is "-".
func readQuery(arg string, stdin io.Reader) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", &ExitError{Code: ExitCommandError, Message: "reading stdin", Err: err}
		}
		return string(data), nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", &ExitError{Code: ExitCommandError, Message: fmt.Sprintf("reading query file %s", arg), Err: err}
	}
	return string(data), nil
}
